package report

import (
	"sort"

	"homesight/internal/insights"
	"homesight/internal/segment"
	"homesight/internal/store"
)

// Overview aggregates every stored chapter into headline metrics.
type Overview struct {
	Households      int
	Chapters        int
	TotalSeconds    float64
	AverageSeconds  float64
	WeekdayChapters int
	WeekendChapters int
}

// BuildOverview computes headline metrics across all chapters.
func BuildOverview(chapters []store.Chapter) Overview {
	var o Overview
	seen := make(map[string]struct{})
	for _, ch := range chapters {
		seen[ch.Household] = struct{}{}
		o.Chapters++
		o.TotalSeconds += ch.Duration()
		switch ch.DayType {
		case store.DayTypeWeekday:
			o.WeekdayChapters++
		case store.DayTypeWeekend:
			o.WeekendChapters++
		}
	}
	o.Households = len(seen)
	if o.Chapters > 0 {
		o.AverageSeconds = o.TotalSeconds / float64(o.Chapters)
	}
	return o
}

// TimeOfDayCount is one row of the activity-by-time-of-day distribution.
type TimeOfDayCount struct {
	Bucket       string
	Chapters     int
	TotalSeconds float64
}

// TimeOfDayDistribution buckets chapters into the standard display order.
// Buckets with no activity still appear so dashboards render a stable shape.
func TimeOfDayDistribution(chapters []store.Chapter) []TimeOfDayCount {
	counts := make(map[string]*TimeOfDayCount, len(store.TimeOfDayOrder))
	for _, bucket := range store.TimeOfDayOrder {
		counts[bucket] = &TimeOfDayCount{Bucket: bucket}
	}
	for _, ch := range chapters {
		row, ok := counts[ch.TimeOfDay]
		if !ok {
			continue
		}
		row.Chapters++
		row.TotalSeconds += ch.Duration()
	}

	out := make([]TimeOfDayCount, 0, len(store.TimeOfDayOrder))
	for _, bucket := range store.TimeOfDayOrder {
		out = append(out, *counts[bucket])
	}
	return out
}

// HouseholdSummary aggregates one household's chapters.
type HouseholdSummary struct {
	Household    string
	Chapters     int
	TotalSeconds float64
	Days         int
	BusiestTime  string
}

// HouseholdSummaries aggregates chapters per household, sorted by household.
func HouseholdSummaries(chapters []store.Chapter) []HouseholdSummary {
	type acc struct {
		summary HouseholdSummary
		days    map[int]struct{}
		byTime  map[string]int
	}
	byHousehold := make(map[string]*acc)
	for _, ch := range chapters {
		a, ok := byHousehold[ch.Household]
		if !ok {
			a = &acc{
				summary: HouseholdSummary{Household: ch.Household},
				days:    make(map[int]struct{}),
				byTime:  make(map[string]int),
			}
			byHousehold[ch.Household] = a
		}
		a.summary.Chapters++
		a.summary.TotalSeconds += ch.Duration()
		a.days[ch.DayNumber] = struct{}{}
		a.byTime[ch.TimeOfDay]++
	}

	out := make([]HouseholdSummary, 0, len(byHousehold))
	for _, a := range byHousehold {
		a.summary.Days = len(a.days)
		best := 0
		for _, bucket := range store.TimeOfDayOrder {
			if n := a.byTime[bucket]; n > best {
				best = n
				a.summary.BusiestTime = bucket
			}
		}
		out = append(out, a.summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Household < out[j].Household })
	return out
}

// FeedItem is one consolidated event in the activity feed, decorated with
// context tags extracted from its description.
type FeedItem struct {
	insights.MergedEvent
	Tags []string
}

// Feed is the consolidated event view for a household/day slice.
type Feed struct {
	Items []FeedItem
	// Total is the raw segment count before filtering.
	Total int
	// Segments is the count that survived the display filters.
	Segments int
	// Merged is how many segments were folded into a neighbor.
	Merged int
}

// ActivityRatio is the share of raw segments that survived filtering.
func (f *Feed) ActivityRatio() float64 {
	if f.Total == 0 {
		return 0
	}
	return float64(f.Segments) / float64(f.Total)
}

// AverageSeconds is the mean duration of the consolidated events.
func (f *Feed) AverageSeconds() float64 {
	if len(f.Items) == 0 {
		return 0
	}
	var total float64
	for _, item := range f.Items {
		total += item.Duration()
	}
	return total / float64(len(f.Items))
}

// BuildFeed runs chapters through the event consolidation pass, optionally
// applying display filters, and decorates each event with tags.
func BuildFeed(chapters []store.Chapter, filter insights.Filter, gapThreshold float64) (*Feed, error) {
	inputs := make([]segment.Segment, 0, len(chapters))
	for _, ch := range chapters {
		inputs = append(inputs, ch.Segment())
	}
	inputs = filter.Apply(inputs)

	events, err := insights.Merge(inputs, gapThreshold)
	if err != nil {
		return nil, err
	}

	feed := &Feed{Total: len(chapters), Segments: len(inputs)}
	for _, event := range events {
		feed.Items = append(feed.Items, FeedItem{
			MergedEvent: event,
			Tags:        insights.Tags(event.Description),
		})
		if event.OriginalCount > 1 {
			feed.Merged += event.OriginalCount - 1
		}
	}
	return feed, nil
}

// EntityCount is one row of the feed's per-entity breakdown.
type EntityCount struct {
	Entity insights.Entity
	Icon   string
	Events int
}

// EntityBreakdown counts consolidated events per entity, most frequent first.
func EntityBreakdown(items []FeedItem) []EntityCount {
	index := make(map[insights.Entity]*EntityCount)
	order := make([]insights.Entity, 0, 4)
	for _, item := range items {
		row, ok := index[item.Entity]
		if !ok {
			row = &EntityCount{Entity: item.Entity, Icon: item.Icon}
			index[item.Entity] = row
			order = append(order, item.Entity)
		}
		row.Events++
	}

	out := make([]EntityCount, 0, len(order))
	for _, entity := range order {
		out = append(out, *index[entity])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Events > out[j].Events })
	return out
}
