package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"homesight/internal/config"
	"homesight/internal/logging"
	"homesight/internal/services"
	"homesight/internal/services/twelvelabs"
	"homesight/internal/store"
)

// ChapterSource produces chapters for a video file. The Twelve Labs client
// satisfies this; tests substitute a fake.
type ChapterSource interface {
	ProcessVideo(ctx context.Context, videoPath string) (string, []twelvelabs.Chapter, error)
}

// Runner walks the configured households and days, generates chapters for
// each video, and persists the results under a single run record.
type Runner struct {
	cfg    *config.Config
	store  *store.Store
	source ChapterSource
	logger *slog.Logger
	pacing time.Duration
}

// Summary reports what a batch run accomplished.
type Summary struct {
	RunID     string
	Processed int
	Skipped   int
	Chapters  int
	Elapsed   time.Duration
}

// NewRunner constructs a batch runner.
func NewRunner(cfg *config.Config, st *store.Store, source ChapterSource, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	pacing := time.Duration(cfg.Batch.PacingSeconds) * time.Second
	return &Runner{
		cfg:    cfg,
		store:  st,
		source: source,
		logger: logger.With(logging.FieldComponent, "batch"),
		pacing: pacing,
	}
}

// VideoPath returns the expected file location for a household's day video.
func VideoPath(videoDir, household string, day int) string {
	return filepath.Join(videoDir, fmt.Sprintf("household_%s_day%d.mp4", household, day))
}

// Run processes every household/day pair. Missing videos and transient
// upload failures skip the pair and continue; configuration and validation
// errors abort the run since they would repeat for every remaining video.
// Only one run may touch the data directory at a time.
func (r *Runner) Run(ctx context.Context, households []string, days []int) (*Summary, error) {
	if len(households) == 0 {
		households = r.cfg.Batch.Households
	}
	if len(days) == 0 {
		days = r.cfg.Batch.Days
	}
	if len(households) == 0 || len(days) == 0 {
		return nil, services.Wrap(services.ErrValidation, "batch", "run", "no households or days to process", nil)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.DataDir, "batch.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another batch run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	run, err := r.store.BeginRun(ctx, households, days)
	if err != nil {
		return nil, err
	}
	ctx = services.WithRunID(ctx, run.ID)
	logger := r.logger.With(logging.FieldRunID, run.ID)
	logger.Info("batch run started",
		"households", len(households),
		"days", len(days))

	started := time.Now()
	summary := &Summary{RunID: run.ID}
	first := true

	for _, household := range households {
		for _, day := range days {
			if err := ctx.Err(); err != nil {
				r.finish(ctx, run.ID, summary, started)
				return summary, err
			}
			if !first {
				if err := r.pace(ctx); err != nil {
					r.finish(ctx, run.ID, summary, started)
					return summary, err
				}
			}
			first = false

			pairLogger := logger.With(
				logging.FieldHousehold, household,
				logging.FieldDay, day)

			videoPath := VideoPath(r.cfg.Paths.VideoDir, household, day)
			if _, err := os.Stat(videoPath); err != nil {
				pairLogger.Warn("video not found, skipping", "path", videoPath)
				summary.Skipped++
				continue
			}

			pairLogger.Info("processing video", "path", videoPath)
			pairCtx := services.WithDay(services.WithHousehold(ctx, household), day)
			videoID, chapters, err := r.source.ProcessVideo(pairCtx, videoPath)
			if err != nil {
				if !services.IsRetryable(err) {
					r.finish(ctx, run.ID, summary, started)
					return summary, err
				}
				pairLogger.Warn("chapter generation failed, skipping", logging.FieldError, err)
				summary.Skipped++
				continue
			}

			records := make([]store.Chapter, 0, len(chapters))
			for _, ch := range chapters {
				records = append(records, store.Chapter{
					RunID:         run.ID,
					Household:     household,
					DayNumber:     day,
					DayType:       store.DayTypeForDay(day),
					VideoID:       videoID,
					ChapterNumber: ch.Number,
					Start:         ch.Start,
					End:           ch.End,
					TimeOfDay:     store.TimeOfDayFor(ch.Start),
					Title:         ch.Title,
					Summary:       ch.Summary,
				})
			}
			if err := r.store.SaveChapters(pairCtx, records); err != nil {
				r.finish(ctx, run.ID, summary, started)
				return summary, err
			}

			summary.Processed++
			summary.Chapters += len(records)
			pairLogger.Info("video processed",
				logging.FieldVideoID, videoID,
				"chapters", len(records))
		}
	}

	r.finish(ctx, run.ID, summary, started)
	logger.Info("batch run complete",
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"chapters", summary.Chapters,
		"elapsed", summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}

func (r *Runner) finish(ctx context.Context, runID string, summary *Summary, started time.Time) {
	summary.Elapsed = time.Since(started)
	if err := r.store.FinishRun(context.WithoutCancel(ctx), runID, summary.Chapters); err != nil {
		r.logger.Warn("failed to finalize run record", logging.FieldRunID, runID, logging.FieldError, err)
	}
}

// pace waits between API calls so consecutive uploads do not hammer the
// service.
func (r *Runner) pace(ctx context.Context) error {
	if r.pacing <= 0 {
		return nil
	}
	timer := time.NewTimer(r.pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
