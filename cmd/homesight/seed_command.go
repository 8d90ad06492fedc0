package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"homesight/internal/config"
	"homesight/internal/seed"
	"homesight/internal/store"
)

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var (
		households []string
		days       []int
		randSeed   int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with generated sample chapters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				opts := seed.Options{
					Households: households,
					Days:       days,
					Seed:       randSeed,
				}
				if len(opts.Households) == 0 {
					opts.Households = cfg.Batch.Households
				}
				if len(opts.Days) == 0 {
					opts.Days = cfg.Batch.Days
				}

				chapters := seed.Generate(opts)
				if err := st.SaveChapters(cmd.Context(), chapters); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d chapters across %d households\n",
					len(chapters), len(opts.Households))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&households, "households", nil, "Households to seed (default: configured set)")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Day numbers to seed (default: configured set)")
	cmd.Flags().Int64Var(&randSeed, "seed", 0, "Random seed for reproducible data (0 = random)")
	return cmd
}
