package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"homesight/internal/batch"
	"homesight/internal/config"
	"homesight/internal/services/twelvelabs"
	"homesight/internal/store"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var households []string
	var days []int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze videos for every configured household and day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if err := cfg.RequireTwelveLabs(); err != nil {
					return err
				}
				client, err := twelvelabs.NewClient(cfg.TwelveLabs)
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				runner := batch.NewRunner(cfg, st, client, ctx.ensureLogger())
				summary, err := runner.Run(runCtx, households, days)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				rows := [][]string{
					{"Run", summary.RunID},
					{"Videos processed", fmt.Sprintf("%d", summary.Processed)},
					{"Videos skipped", fmt.Sprintf("%d", summary.Skipped)},
					{"Chapters generated", fmt.Sprintf("%d", summary.Chapters)},
					{"Elapsed", summary.Elapsed.Round(time.Second).String()},
				}
				fmt.Fprintln(out, renderTable([]string{"Batch Run", "Result"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&households, "households", nil, "Households to process (default: configured set)")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Day numbers to process (default: configured set)")
	return cmd
}
