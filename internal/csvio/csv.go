package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"homesight/internal/store"
)

// Column layout for exported chapter files. Single-household exports omit
// the household columns; multi-household exports include them so the file
// round-trips through Import without losing context.
var (
	chapterHeader = []string{
		"video_id", "chapter_number", "start_time", "end_time",
		"duration_seconds", "time_range", "chapter_title", "chapter_summary",
		"timestamp",
	}
	multiHouseholdHeader = []string{
		"household_id", "day_number", "day_type", "video_id",
		"chapter_number", "start_time", "end_time", "duration_seconds",
		"time_range", "time_of_day", "chapter_title", "chapter_summary",
		"timestamp",
	}
)

// WriteChapters exports chapters for a single video without household columns.
func WriteChapters(w io.Writer, chapters []store.Chapter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(chapterHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, ch := range chapters {
		record := []string{
			ch.VideoID,
			strconv.Itoa(ch.ChapterNumber),
			formatSeconds(ch.Start),
			formatSeconds(ch.End),
			formatSeconds(ch.Duration()),
			ch.TimeRange(),
			ch.Title,
			ch.Summary,
			formatTimestamp(ch.CreatedAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write chapter %d: %w", ch.ChapterNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMultiHousehold exports chapters with household and day context.
func WriteMultiHousehold(w io.Writer, chapters []store.Chapter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(multiHouseholdHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, ch := range chapters {
		record := []string{
			ch.Household,
			strconv.Itoa(ch.DayNumber),
			ch.DayType,
			ch.VideoID,
			strconv.Itoa(ch.ChapterNumber),
			formatSeconds(ch.Start),
			formatSeconds(ch.End),
			formatSeconds(ch.Duration()),
			ch.TimeRange(),
			ch.TimeOfDay,
			ch.Title,
			ch.Summary,
			formatTimestamp(ch.CreatedAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write chapter %s/%d: %w", ch.Household, ch.ChapterNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import reads a multi-household chapter export back into chapter records.
// Derived columns (duration, time range) are recomputed rather than trusted.
func Import(r io.Reader) ([]store.Chapter, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"household_id", "day_number", "chapter_number", "start_time", "end_time"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var chapters []store.Chapter
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line++

		day, err := strconv.Atoi(field(record, "day_number"))
		if err != nil {
			return nil, fmt.Errorf("line %d: day_number: %w", line, err)
		}
		number, err := strconv.Atoi(field(record, "chapter_number"))
		if err != nil {
			return nil, fmt.Errorf("line %d: chapter_number: %w", line, err)
		}
		start, err := strconv.ParseFloat(field(record, "start_time"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: start_time: %w", line, err)
		}
		end, err := strconv.ParseFloat(field(record, "end_time"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: end_time: %w", line, err)
		}
		if end < start {
			return nil, fmt.Errorf("line %d: end %.3f precedes start %.3f", line, end, start)
		}

		ch := store.Chapter{
			Household:     field(record, "household_id"),
			DayNumber:     day,
			DayType:       field(record, "day_type"),
			VideoID:       field(record, "video_id"),
			ChapterNumber: number,
			Start:         start,
			End:           end,
			TimeOfDay:     field(record, "time_of_day"),
			Title:         field(record, "chapter_title"),
			Summary:       field(record, "chapter_summary"),
		}
		if ch.DayType == "" {
			ch.DayType = store.DayTypeForDay(day)
		}
		if ch.TimeOfDay == "" {
			ch.TimeOfDay = store.TimeOfDayFor(start)
		}
		if raw := field(record, "timestamp"); raw != "" {
			if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
				ch.CreatedAt = ts
			}
		}
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339Nano)
}
