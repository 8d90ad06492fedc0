package csvio_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"homesight/internal/csvio"
	"homesight/internal/store"
)

func sampleChapters() []store.Chapter {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return []store.Chapter{
		{
			Household:     "A",
			DayNumber:     1,
			DayType:       store.DayTypeWeekday,
			VideoID:       "vid-a1",
			ChapterNumber: 1,
			Start:         25200,
			End:           25320,
			TimeOfDay:     store.TimeOfDayMorning,
			Title:         "Morning delivery",
			Summary:       "person in hoodie carrying a bag",
			CreatedAt:     created,
		},
		{
			Household:     "B",
			DayNumber:     3,
			DayType:       store.DayTypeWeekend,
			VideoID:       "vid-b3",
			ChapterNumber: 2,
			Start:         68400,
			End:           68430,
			TimeOfDay:     store.TimeOfDayEvening,
			Title:         "Evening visitor",
			Summary:       "visitor holding phone case",
			CreatedAt:     created,
		},
	}
}

func TestWriteChaptersHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	if err := csvio.WriteChapters(&buf, sampleChapters()); err != nil {
		t.Fatalf("WriteChapters failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "video_id,chapter_number,start_time,end_time,duration_seconds,time_range,chapter_title,chapter_summary,timestamp" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "vid-a1,1,25200.000,25320.000,120.000,") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
}

func TestMultiHouseholdRoundTrip(t *testing.T) {
	want := sampleChapters()

	var buf bytes.Buffer
	if err := csvio.WriteMultiHousehold(&buf, want); err != nil {
		t.Fatalf("WriteMultiHousehold failed: %v", err)
	}

	got, err := csvio.Import(&buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d chapters, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.Household != w.Household || g.DayNumber != w.DayNumber || g.DayType != w.DayType {
			t.Fatalf("chapter %d household context mismatch: %#v", i, g)
		}
		if g.Start != w.Start || g.End != w.End || g.ChapterNumber != w.ChapterNumber {
			t.Fatalf("chapter %d span mismatch: %#v", i, g)
		}
		if g.Title != w.Title || g.Summary != w.Summary || g.TimeOfDay != w.TimeOfDay {
			t.Fatalf("chapter %d content mismatch: %#v", i, g)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) {
			t.Fatalf("chapter %d timestamp mismatch: %v != %v", i, g.CreatedAt, w.CreatedAt)
		}
	}
}

func TestImportDerivesMissingContext(t *testing.T) {
	input := strings.Join([]string{
		"household_id,day_number,chapter_number,start_time,end_time,chapter_summary",
		"C,4,1,21600,21660,man in black jacket with plate",
	}, "\n")

	chapters, err := csvio.Import(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(chapters))
	}
	ch := chapters[0]
	if ch.DayType != store.DayTypeWeekend {
		t.Fatalf("expected derived weekend day type, got %q", ch.DayType)
	}
	if ch.TimeOfDay != store.TimeOfDayMorning {
		t.Fatalf("expected derived morning bucket, got %q", ch.TimeOfDay)
	}
}

func TestImportErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing columns", "video_id,start_time\nv,1"},
		{"bad day", "household_id,day_number,chapter_number,start_time,end_time\nA,x,1,0,10"},
		{"reversed span", "household_id,day_number,chapter_number,start_time,end_time\nA,1,1,50,10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := csvio.Import(strings.NewReader(tc.input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
