package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"homesight/internal/config"
	"homesight/internal/insights"
	"homesight/internal/report"
	"homesight/internal/services/translate"
	"homesight/internal/store"
)

func newFeedCommand(ctx *commandContext) *cobra.Command {
	var (
		hideStatic  bool
		personOnly  bool
		search      string
		gap         float64
		asJSON      bool
		doTranslate bool
	)

	cmd := &cobra.Command{
		Use:   "feed <household> <day>",
		Short: "Show the consolidated activity feed for a household's day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			household := strings.ToUpper(strings.TrimSpace(args[0]))
			day, err := strconv.Atoi(args[1])
			if err != nil || day < 1 {
				return fmt.Errorf("invalid day %q", args[1])
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				chapters, err := st.Chapters(cmd.Context(), store.ChapterFilter{
					Household: household,
					DayNumber: day,
				})
				if err != nil {
					return err
				}

				threshold := cfg.Insights.GapThreshold
				if cmd.Flags().Changed("gap") {
					threshold = gap
				}
				filter := insights.Filter{
					HideStatic: hideStatic,
					PersonOnly: personOnly,
					Search:     search,
				}
				feed, err := report.BuildFeed(chapters, filter, threshold)
				if err != nil {
					return err
				}

				if doTranslate || cfg.Translate.Enabled {
					translateFeed(cmd, cfg, feed)
				}

				if asJSON {
					return writeJSON(cmd, feed)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader(
					fmt.Sprintf("Household %s, Day %d", household, day), colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintf(out, "%d events from %d segments (%d merged away)\n\n",
					len(feed.Items), feed.Segments, feed.Merged)

				if len(feed.Items) == 0 {
					fmt.Fprintln(out, "No activity recorded.")
					return nil
				}

				rows := make([][]string, 0, len(feed.Items))
				for _, item := range feed.Items {
					entity := fmt.Sprintf("%s %s", item.Icon, item.Entity)
					count := ""
					if item.OriginalCount > 1 {
						count = fmt.Sprintf("x%d", item.OriginalCount)
					}
					rows = append(rows, []string{
						item.StartDisplay() + " - " + item.EndDisplay(),
						entity,
						count,
						item.Description,
						strings.Join(item.Tags, " "),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Time", "Entity", "Merged", "Description", "Tags"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft}))

				breakdown := report.EntityBreakdown(feed.Items)
				summaryRows := make([][]string, 0, len(breakdown))
				for _, row := range breakdown {
					summaryRows = append(summaryRows, []string{
						fmt.Sprintf("%s %s", row.Icon, row.Entity),
						fmt.Sprintf("%d", row.Events),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Entity", "Events"}, summaryRows,
					[]columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&hideStatic, "hide-static", false, "Hide segments that describe a static scene")
	cmd.Flags().BoolVar(&personOnly, "person-only", false, "Show only segments that mention a person")
	cmd.Flags().StringVar(&search, "search", "", "Show only segments containing this term")
	cmd.Flags().Float64Var(&gap, "gap", insights.DefaultGapThreshold, "Merge gap threshold in seconds")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	cmd.Flags().BoolVar(&doTranslate, "translate", false, "Translate descriptions to the configured language")
	return cmd
}

// translateFeed rewrites event descriptions in place, best effort. A failed
// translation keeps the original text and warns once.
func translateFeed(cmd *cobra.Command, cfg *config.Config, feed *report.Feed) {
	client, err := translate.NewClient(cfg.Translate)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), renderWarning(err.Error(), shouldColorize(cmd.ErrOrStderr())))
		return
	}
	warned := false
	for i := range feed.Items {
		translated, err := client.Translate(cmd.Context(), feed.Items[i].Description)
		if err != nil {
			if !warned {
				fmt.Fprintln(cmd.ErrOrStderr(), renderWarning(
					"translation unavailable, showing original text: "+err.Error(),
					shouldColorize(cmd.ErrOrStderr())))
				warned = true
			}
			continue
		}
		feed.Items[i].Description = translated
	}
}
