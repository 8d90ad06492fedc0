package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"homesight/internal/batch"
	"homesight/internal/config"
	"homesight/internal/services"
	"homesight/internal/services/twelvelabs"
	"homesight/internal/store"
	"homesight/internal/testsupport"
)

type fakeSource struct {
	chapters map[string][]twelvelabs.Chapter
	errs     map[string]error
	calls    []string
}

func (f *fakeSource) ProcessVideo(ctx context.Context, videoPath string) (string, []twelvelabs.Chapter, error) {
	name := filepath.Base(videoPath)
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return "", nil, err
	}
	return "vid-" + name, f.chapters[name], nil
}

func writeVideos(t *testing.T, cfg *config.Config, names ...string) {
	t.Helper()
	if err := os.MkdirAll(cfg.Paths.VideoDir, 0o755); err != nil {
		t.Fatalf("create video dir: %v", err)
	}
	for _, name := range names {
		path := filepath.Join(cfg.Paths.VideoDir, name)
		if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
			t.Fatalf("write video %s: %v", name, err)
		}
	}
}

func defaultChapters() []twelvelabs.Chapter {
	return []twelvelabs.Chapter{
		{Number: 1, Start: 0, End: 120, Title: "Morning", Summary: "person in hoodie carrying a bag"},
		{Number: 2, Start: 300, End: 420, Title: "Midday", Summary: "man in black jacket with plate"},
	}
}

func TestRunProcessesAllPairs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Batch.PacingSeconds = 0
	st := testsupport.MustOpenStore(t, cfg)
	writeVideos(t, cfg,
		"household_A_day1.mp4", "household_A_day2.mp4",
		"household_B_day1.mp4", "household_B_day2.mp4")

	source := &fakeSource{chapters: map[string][]twelvelabs.Chapter{
		"household_A_day1.mp4": defaultChapters(),
		"household_A_day2.mp4": defaultChapters(),
		"household_B_day1.mp4": defaultChapters(),
		"household_B_day2.mp4": defaultChapters(),
	}}

	runner := batch.NewRunner(cfg, st, source, nil)
	summary, err := runner.Run(context.Background(), []string{"A", "B"}, []int{1, 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Processed != 4 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if summary.Chapters != 8 {
		t.Fatalf("expected 8 chapters, got %d", summary.Chapters)
	}
	if len(source.calls) != 4 {
		t.Fatalf("expected 4 process calls, got %d", len(source.calls))
	}

	chapters, err := st.Chapters(context.Background(), store.ChapterFilter{Household: "A", DayNumber: 1})
	if err != nil {
		t.Fatalf("Chapters failed: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("expected 2 persisted chapters, got %d", len(chapters))
	}
	ch := chapters[0]
	if ch.RunID != summary.RunID {
		t.Fatalf("chapter not tied to run: %q != %q", ch.RunID, summary.RunID)
	}
	if ch.DayType != store.DayTypeWeekday {
		t.Fatalf("unexpected day type %q", ch.DayType)
	}
	if ch.VideoID != "vid-household_A_day1.mp4" {
		t.Fatalf("unexpected video id %q", ch.VideoID)
	}

	runs, err := st.Runs(context.Background())
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ChapterCount != 8 || runs[0].FinishedAt == nil {
		t.Fatalf("unexpected run record: %#v", runs[0])
	}
}

func TestRunSkipsMissingVideos(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Batch.PacingSeconds = 0
	st := testsupport.MustOpenStore(t, cfg)
	writeVideos(t, cfg, "household_A_day1.mp4")

	source := &fakeSource{chapters: map[string][]twelvelabs.Chapter{
		"household_A_day1.mp4": defaultChapters(),
	}}

	runner := batch.NewRunner(cfg, st, source, nil)
	summary, err := runner.Run(context.Background(), []string{"A"}, []int{1, 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Processed != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if len(source.calls) != 1 {
		t.Fatalf("missing video should not reach the source: %v", source.calls)
	}
}

func TestRunSkipsTransientFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Batch.PacingSeconds = 0
	st := testsupport.MustOpenStore(t, cfg)
	writeVideos(t, cfg, "household_A_day1.mp4", "household_A_day2.mp4")

	source := &fakeSource{
		chapters: map[string][]twelvelabs.Chapter{
			"household_A_day2.mp4": defaultChapters(),
		},
		errs: map[string]error{
			"household_A_day1.mp4": services.Wrap(services.ErrTransient, "twelvelabs", "upload", "", errors.New("503")),
		},
	}

	runner := batch.NewRunner(cfg, st, source, nil)
	summary, err := runner.Run(context.Background(), []string{"A"}, []int{1, 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Processed != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
}

func TestRunAbortsOnConfigurationError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Batch.PacingSeconds = 0
	st := testsupport.MustOpenStore(t, cfg)
	writeVideos(t, cfg, "household_A_day1.mp4", "household_A_day2.mp4")

	source := &fakeSource{
		errs: map[string]error{
			"household_A_day1.mp4": services.Wrap(services.ErrConfiguration, "twelvelabs", "upload", "bad api key", nil),
		},
	}

	runner := batch.NewRunner(cfg, st, source, nil)
	_, err := runner.Run(context.Background(), []string{"A"}, []int{1, 2})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if len(source.calls) != 1 {
		t.Fatalf("expected abort after first failure, got calls %v", source.calls)
	}
}

func TestRunRejectsEmptyScope(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Batch.Households = nil
	cfg.Batch.Days = nil
	st := testsupport.MustOpenStore(t, cfg)

	runner := batch.NewRunner(cfg, st, &fakeSource{}, nil)
	_, err := runner.Run(context.Background(), nil, nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Batch.PacingSeconds = 0
	st := testsupport.MustOpenStore(t, cfg)
	writeVideos(t, cfg, "household_A_day1.mp4")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := batch.NewRunner(cfg, st, &fakeSource{}, nil)
	_, err := runner.Run(ctx, []string{"A"}, []int{1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestVideoPath(t *testing.T) {
	got := batch.VideoPath("/videos", "C", 3)
	want := filepath.Join("/videos", "household_C_day3.mp4")
	if got != want {
		t.Fatalf("VideoPath = %q, want %q", got, want)
	}
}
