package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"homesight/internal/config"
	"homesight/internal/csvio"
	"homesight/internal/services/twelvelabs"
	"homesight/internal/store"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var household string
	var day int
	var csvOut string

	cmd := &cobra.Command{
		Use:   "analyze <video-file>",
		Short: "Generate activity chapters for a single video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if err := cfg.RequireTwelveLabs(); err != nil {
					return err
				}
				videoPath, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}

				client, err := twelvelabs.NewClient(cfg.TwelveLabs)
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Uploading %s...\n", videoPath)
				videoID, chapters, err := client.ProcessVideo(runCtx, videoPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Video %s indexed; %d chapters generated\n\n", videoID, len(chapters))

				records := make([]store.Chapter, 0, len(chapters))
				for _, ch := range chapters {
					records = append(records, store.Chapter{
						Household:     household,
						DayNumber:     day,
						DayType:       store.DayTypeForDay(day),
						VideoID:       videoID,
						ChapterNumber: ch.Number,
						Start:         ch.Start,
						End:           ch.End,
						TimeOfDay:     store.TimeOfDayFor(ch.Start),
						Title:         ch.Title,
						Summary:       ch.Summary,
					})
				}

				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						fmt.Sprintf("%d", rec.ChapterNumber),
						rec.TimeRange(),
						rec.Title,
						rec.Summary,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Time", "Title", "Summary"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))

				if household != "" {
					if err := st.SaveChapters(runCtx, records); err != nil {
						return err
					}
					fmt.Fprintf(out, "\nSaved %d chapters for household %s day %d\n", len(records), household, day)
				}

				if csvOut != "" {
					path, err := config.ExpandPath(csvOut)
					if err != nil {
						return err
					}
					file, err := os.Create(path)
					if err != nil {
						return fmt.Errorf("create csv output: %w", err)
					}
					defer file.Close()
					if err := csvio.WriteChapters(file, records); err != nil {
						return err
					}
					fmt.Fprintf(out, "\nWrote %s\n", path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&household, "household", "", "Persist results under this household")
	cmd.Flags().IntVar(&day, "day", 1, "Day number for persisted results")
	cmd.Flags().StringVar(&csvOut, "csv", "", "Also write chapters to this CSV file")
	return cmd
}
