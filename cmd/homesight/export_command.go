package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"homesight/internal/config"
	"homesight/internal/csvio"
	"homesight/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath   string
		household string
		day       int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored chapters to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				filter := store.ChapterFilter{Household: household, DayNumber: day}
				chapters, err := st.Chapters(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if len(chapters) == 0 {
					return fmt.Errorf("no chapters match the export filter")
				}

				path, err := config.ExpandPath(outPath)
				if err != nil {
					return err
				}
				file, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer file.Close()

				if err := csvio.WriteMultiHousehold(file, chapters); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d chapters to %s\n", len(chapters), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "multi_household_analysis.csv", "Output CSV path")
	cmd.Flags().StringVar(&household, "household", "", "Limit export to one household")
	cmd.Flags().IntVar(&day, "day", 0, "Limit export to one day number")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import chapters from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer file.Close()

				chapters, err := csvio.Import(file)
				if err != nil {
					return err
				}
				if err := st.SaveChapters(cmd.Context(), chapters); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d chapters from %s\n", len(chapters), path)
				return nil
			})
		},
	}
	return cmd
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored chapters and runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear without --yes")
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				removed, err := st.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d chapters\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deletion")
	return cmd
}
