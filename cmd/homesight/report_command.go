package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"homesight/internal/config"
	"homesight/internal/report"
	"homesight/internal/segment"
	"homesight/internal/store"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregated views over stored chapters",
	}

	reportCmd.AddCommand(newReportOverviewCommand(ctx))
	reportCmd.AddCommand(newReportHouseholdsCommand(ctx))
	reportCmd.AddCommand(newReportTimeOfDayCommand(ctx))
	reportCmd.AddCommand(newReportRunsCommand(ctx))

	return reportCmd
}

func newReportOverviewCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Headline metrics across all households",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				chapters, err := st.Chapters(cmd.Context(), store.ChapterFilter{})
				if err != nil {
					return err
				}
				overview := report.BuildOverview(chapters)

				if asJSON {
					return writeJSON(cmd, overview)
				}

				rows := [][]string{
					{"Households", fmt.Sprintf("%d", overview.Households)},
					{"Chapters", fmt.Sprintf("%d", overview.Chapters)},
					{"Total activity", formatSecondsHuman(overview.TotalSeconds)},
					{"Average chapter", formatSecondsHuman(overview.AverageSeconds)},
					{"Weekday chapters", fmt.Sprintf("%d", overview.WeekdayChapters)},
					{"Weekend chapters", fmt.Sprintf("%d", overview.WeekendChapters)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newReportHouseholdsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "households",
		Short: "Per-household activity summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				chapters, err := st.Chapters(cmd.Context(), store.ChapterFilter{})
				if err != nil {
					return err
				}
				summaries := report.HouseholdSummaries(chapters)

				if asJSON {
					return writeJSON(cmd, summaries)
				}

				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{
						s.Household,
						fmt.Sprintf("%d", s.Chapters),
						fmt.Sprintf("%d", s.Days),
						formatSecondsHuman(s.TotalSeconds),
						s.BusiestTime,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Household", "Chapters", "Days", "Activity", "Busiest"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newReportTimeOfDayCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var dayType string

	cmd := &cobra.Command{
		Use:   "timeofday",
		Short: "Activity distribution by time of day",
		RunE: func(cmd *cobra.Command, args []string) error {
			dt := strings.ToLower(strings.TrimSpace(dayType))
			switch dt {
			case "", store.DayTypeWeekday, store.DayTypeWeekend:
			default:
				return fmt.Errorf("invalid day type %q (use weekday or weekend)", dayType)
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				chapters, err := st.Chapters(cmd.Context(), store.ChapterFilter{DayType: dt})
				if err != nil {
					return err
				}
				rows := report.TimeOfDayDistribution(chapters)

				if asJSON {
					return writeJSON(cmd, rows)
				}

				titler := cases.Title(language.English)
				display := make([][]string, 0, len(rows))
				for _, row := range rows {
					display = append(display, []string{
						titler.String(row.Bucket),
						fmt.Sprintf("%d", row.Chapters),
						formatSecondsHuman(row.TotalSeconds),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Time of Day", "Chapters", "Activity"},
					display,
					[]columnAlignment{alignLeft, alignRight, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	cmd.Flags().StringVar(&dayType, "day-type", "", "Limit to weekday or weekend chapters")
	return cmd
}

func newReportRunsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded batch runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				runs, err := st.Runs(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, runs)
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					status := "running"
					if run.FinishedAt != nil {
						status = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
					}
					rows = append(rows, []string{
						run.ID,
						run.StartedAt.Format(time.RFC3339),
						status,
						strings.Join(run.Households, ","),
						joinDays(run.Days),
						fmt.Sprintf("%d", run.ChapterCount),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Run", "Started", "Duration", "Households", "Days", "Chapters"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func formatSecondsHuman(seconds float64) string {
	if seconds < 3600 {
		return segment.Clock(seconds)
	}
	d := time.Duration(seconds * float64(time.Second))
	return d.Round(time.Minute).String()
}
