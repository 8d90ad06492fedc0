package report_test

import (
	"testing"

	"homesight/internal/insights"
	"homesight/internal/report"
	"homesight/internal/store"
)

func chapter(household string, day int, start, end float64, summary string) store.Chapter {
	return store.Chapter{
		Household: household,
		DayNumber: day,
		DayType:   store.DayTypeForDay(day),
		Start:     start,
		End:       end,
		TimeOfDay: store.TimeOfDayFor(start),
		Summary:   summary,
	}
}

func TestBuildOverview(t *testing.T) {
	chapters := []store.Chapter{
		chapter("A", 1, 0, 100, "one"),
		chapter("A", 3, 0, 60, "two"),
		chapter("B", 2, 0, 40, "three"),
	}

	o := report.BuildOverview(chapters)
	if o.Households != 2 || o.Chapters != 3 {
		t.Fatalf("unexpected overview: %#v", o)
	}
	if o.TotalSeconds != 200 {
		t.Fatalf("total seconds = %v", o.TotalSeconds)
	}
	if o.AverageSeconds < 66.6 || o.AverageSeconds > 66.7 {
		t.Fatalf("average seconds = %v", o.AverageSeconds)
	}
	if o.WeekdayChapters != 2 || o.WeekendChapters != 1 {
		t.Fatalf("day type split: %#v", o)
	}
}

func TestBuildOverviewEmpty(t *testing.T) {
	o := report.BuildOverview(nil)
	if o.Households != 0 || o.Chapters != 0 || o.AverageSeconds != 0 {
		t.Fatalf("unexpected empty overview: %#v", o)
	}
}

func TestTimeOfDayDistribution(t *testing.T) {
	chapters := []store.Chapter{
		chapter("A", 1, 7*3600, 7*3600+60, "morning one"),
		chapter("A", 1, 8*3600, 8*3600+30, "morning two"),
		chapter("A", 1, 19*3600, 19*3600+10, "evening"),
	}

	rows := report.TimeOfDayDistribution(chapters)
	if len(rows) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(rows))
	}
	if rows[0].Bucket != store.TimeOfDayMorning || rows[0].Chapters != 2 || rows[0].TotalSeconds != 90 {
		t.Fatalf("unexpected morning row: %#v", rows[0])
	}
	if rows[1].Chapters != 0 {
		t.Fatalf("afternoon should be empty: %#v", rows[1])
	}
	if rows[2].Bucket != store.TimeOfDayEvening || rows[2].Chapters != 1 {
		t.Fatalf("unexpected evening row: %#v", rows[2])
	}
	if rows[3].Bucket != store.TimeOfDayNight || rows[3].Chapters != 0 {
		t.Fatalf("unexpected night row: %#v", rows[3])
	}
}

func TestHouseholdSummaries(t *testing.T) {
	chapters := []store.Chapter{
		chapter("B", 1, 7*3600, 7*3600+60, "b one"),
		chapter("A", 1, 7*3600, 7*3600+100, "a one"),
		chapter("A", 2, 8*3600, 8*3600+20, "a two"),
		chapter("A", 2, 19*3600, 19*3600+10, "a three"),
	}

	rows := report.HouseholdSummaries(chapters)
	if len(rows) != 2 {
		t.Fatalf("expected 2 households, got %d", len(rows))
	}
	a := rows[0]
	if a.Household != "A" || a.Chapters != 3 || a.Days != 2 {
		t.Fatalf("unexpected A summary: %#v", a)
	}
	if a.TotalSeconds != 130 {
		t.Fatalf("A total seconds = %v", a.TotalSeconds)
	}
	if a.BusiestTime != store.TimeOfDayMorning {
		t.Fatalf("A busiest time = %q", a.BusiestTime)
	}
	if rows[1].Household != "B" || rows[1].Chapters != 1 {
		t.Fatalf("unexpected B summary: %#v", rows[1])
	}
}

func TestBuildFeedMergesAndTags(t *testing.T) {
	chapters := []store.Chapter{
		chapter("A", 1, 0, 10, "A man in a black jacket picks up a plate"),
		chapter("A", 1, 12, 20, "The man in the black jacket carries the plate away"),
		chapter("A", 1, 100, 110, "Someone in a hoodie drops off a bag"),
	}

	feed, err := report.BuildFeed(chapters, insights.Filter{}, insights.DefaultGapThreshold)
	if err != nil {
		t.Fatalf("BuildFeed failed: %v", err)
	}
	if feed.Segments != 3 {
		t.Fatalf("segments = %d", feed.Segments)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 events, got %d", len(feed.Items))
	}
	if feed.Merged != 1 {
		t.Fatalf("merged = %d", feed.Merged)
	}

	staff := feed.Items[0]
	if staff.Entity != insights.EntityStaffBlackJacket || staff.OriginalCount != 2 {
		t.Fatalf("unexpected first event: %#v", staff)
	}
	if !hasTag(staff.Tags, "🍽️ Plate") {
		t.Fatalf("expected plate tag, got %v", staff.Tags)
	}

	delivery := feed.Items[1]
	if delivery.Entity != insights.EntityDeliveryHoodie {
		t.Fatalf("unexpected second event: %#v", delivery)
	}
	if !hasTag(delivery.Tags, "👜 Bag") {
		t.Fatalf("expected bag tag, got %v", delivery.Tags)
	}
}

func TestBuildFeedAppliesFilter(t *testing.T) {
	chapters := []store.Chapter{
		chapter("A", 1, 0, 10, "empty hallway with no motion"),
		chapter("A", 1, 20, 30, "person walking through the hallway"),
	}

	feed, err := report.BuildFeed(chapters, insights.Filter{HideStatic: true}, insights.DefaultGapThreshold)
	if err != nil {
		t.Fatalf("BuildFeed failed: %v", err)
	}
	if feed.Segments != 1 || len(feed.Items) != 1 {
		t.Fatalf("expected static segment filtered out: %#v", feed)
	}
	if feed.Total != 2 {
		t.Fatalf("total = %d", feed.Total)
	}
	if ratio := feed.ActivityRatio(); ratio != 0.5 {
		t.Fatalf("activity ratio = %v", ratio)
	}
	if avg := feed.AverageSeconds(); avg != 10 {
		t.Fatalf("average seconds = %v", avg)
	}
}

func TestBuildFeedPropagatesValidationError(t *testing.T) {
	chapters := []store.Chapter{chapter("A", 1, 50, 10, "reversed span")}
	if _, err := report.BuildFeed(chapters, insights.Filter{}, insights.DefaultGapThreshold); err == nil {
		t.Fatal("expected error for invalid segment")
	}
}

func TestEntityBreakdown(t *testing.T) {
	items := []report.FeedItem{
		{MergedEvent: insights.MergedEvent{Entity: insights.EntityStaffBlackJacket, Icon: "👨‍💼"}},
		{MergedEvent: insights.MergedEvent{Entity: insights.EntityUnknown, Icon: insights.UnknownIcon}},
		{MergedEvent: insights.MergedEvent{Entity: insights.EntityUnknown, Icon: insights.UnknownIcon}},
	}

	rows := report.EntityBreakdown(items)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Entity != insights.EntityUnknown || rows[0].Events != 2 {
		t.Fatalf("unexpected first row: %#v", rows[0])
	}
	if rows[1].Entity != insights.EntityStaffBlackJacket || rows[1].Events != 1 {
		t.Fatalf("unexpected second row: %#v", rows[1])
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
