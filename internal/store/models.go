package store

import (
	"time"

	"homesight/internal/segment"
)

// Day types assigned to batch days. Days 1-2 are recorded as weekdays,
// later days as weekend footage.
const (
	DayTypeWeekday = "weekday"
	DayTypeWeekend = "weekend"
)

// Time-of-day buckets derived from a chapter's start offset.
const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
	TimeOfDayNight     = "night"
)

// TimeOfDayOrder lists the buckets in display order.
var TimeOfDayOrder = []string{TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening, TimeOfDayNight}

// Chapter is one persisted AI-generated chapter annotation.
type Chapter struct {
	ID            int64
	RunID         string
	Household     string
	DayNumber     int
	DayType       string
	VideoID       string
	ChapterNumber int
	Start         float64
	End           float64
	TimeOfDay     string
	Title         string
	Summary       string
	CreatedAt     time.Time
}

// Duration returns the chapter span in seconds.
func (c Chapter) Duration() float64 {
	return c.End - c.Start
}

// TimeRange renders the chapter span as "mm:ss - mm:ss".
func (c Chapter) TimeRange() string {
	return segment.ClockRange(c.Start, c.End)
}

// Description returns the text the insight engine classifies: the summary
// when present, otherwise the title.
func (c Chapter) Description() string {
	if c.Summary != "" {
		return c.Summary
	}
	return c.Title
}

// Segment converts the chapter to the insight engine's input unit.
func (c Chapter) Segment() segment.Segment {
	return segment.Segment{Start: c.Start, End: c.End, Description: c.Description()}
}

// Run records one batch analysis invocation.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   *time.Time
	Households   []string
	Days         []int
	ChapterCount int
}

// ChapterFilter narrows chapter queries. Zero values match everything.
type ChapterFilter struct {
	Household string
	DayNumber int
	DayType   string
}

// HouseholdStat aggregates chapters per household.
type HouseholdStat struct {
	Household    string
	Chapters     int
	TotalSeconds float64
}

// DayTypeForDay maps a batch day number to its day type.
func DayTypeForDay(day int) string {
	if day <= 2 {
		return DayTypeWeekday
	}
	return DayTypeWeekend
}

// TimeOfDayFor buckets a start offset (seconds) into a time-of-day label.
func TimeOfDayFor(startSeconds float64) string {
	hour := int(startSeconds/3600) % 24
	switch {
	case hour >= 6 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 18:
		return TimeOfDayAfternoon
	case hour >= 18:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}
