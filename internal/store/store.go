package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"homesight/internal/config"
)

// Store manages chapter persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the chapter database in the data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "homesight.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun records the start of a batch analysis run and returns it.
func (s *Store) BeginRun(ctx context.Context, households []string, days []int) (*Run, error) {
	run := &Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Households: households,
		Days:       days,
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, households, days, chapter_count) VALUES (?, ?, ?, ?, 0)`,
		run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		strings.Join(households, ","),
		joinInts(days),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps a run's finish time and final chapter count.
func (s *Store) FinishRun(ctx context.Context, runID string, chapterCount int) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, chapter_count = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		chapterCount,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Runs returns recorded batch runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, households, days, chapter_count FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			run         Run
			startedRaw  string
			finishedRaw sql.NullString
			households  string
			days        string
		)
		if err := rows.Scan(&run.ID, &startedRaw, &finishedRaw, &households, &days, &run.ChapterCount); err != nil {
			return nil, err
		}
		if started, err := parseTimeString(startedRaw); err == nil {
			run.StartedAt = started
		}
		if finishedRaw.Valid {
			if finished, err := parseTimeString(finishedRaw.String); err == nil {
				run.FinishedAt = &finished
			}
		}
		if households != "" {
			run.Households = strings.Split(households, ",")
		}
		run.Days = splitInts(days)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// SaveChapters persists chapters in one transaction. Chapters with an end
// before their start are rejected before anything is written.
func (s *Store) SaveChapters(ctx context.Context, chapters []Chapter) error {
	for i, ch := range chapters {
		if ch.End < ch.Start {
			return fmt.Errorf("chapter %d (%s day %d #%d): end %.3fs precedes start %.3fs",
				i, ch.Household, ch.DayNumber, ch.ChapterNumber, ch.End, ch.Start)
		}
	}
	if len(chapters) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chapters (
        run_id, household, day_number, day_type, video_id, chapter_number,
        start_time, end_time, time_of_day, title, summary, created_at
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, ch := range chapters {
		createdAt := now
		if !ch.CreatedAt.IsZero() {
			createdAt = ch.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := stmt.ExecContext(
			ctx,
			nullableString(ch.RunID),
			ch.Household,
			ch.DayNumber,
			ch.DayType,
			ch.VideoID,
			ch.ChapterNumber,
			ch.Start,
			ch.End,
			ch.TimeOfDay,
			nullableString(ch.Title),
			nullableString(ch.Summary),
			createdAt,
		); err != nil {
			return fmt.Errorf("insert chapter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit chapters: %w", err)
	}
	return nil
}

// Chapters returns chapters matching the filter ordered by household, day,
// and start time.
func (s *Store) Chapters(ctx context.Context, filter ChapterFilter) ([]Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters`
	var (
		clauses []string
		args    []any
	)
	if filter.Household != "" {
		clauses = append(clauses, "household = ?")
		args = append(args, filter.Household)
	}
	if filter.DayNumber > 0 {
		clauses = append(clauses, "day_number = ?")
		args = append(args, filter.DayNumber)
	}
	if filter.DayType != "" {
		clauses = append(clauses, "day_type = ?")
		args = append(args, filter.DayType)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY household, day_number, start_time, chapter_number"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}
	return chapters, rows.Err()
}

// Households returns the distinct household identifiers present in the store.
func (s *Store) Households(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT household FROM chapters ORDER BY household`)
	if err != nil {
		return nil, fmt.Errorf("query households: %w", err)
	}
	defer rows.Close()

	var households []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, rows.Err()
}

// HouseholdStats aggregates chapter count and total duration per household.
func (s *Store) HouseholdStats(ctx context.Context) ([]HouseholdStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT household, COUNT(1), COALESCE(SUM(end_time - start_time), 0)
         FROM chapters GROUP BY household ORDER BY household`)
	if err != nil {
		return nil, fmt.Errorf("household stats: %w", err)
	}
	defer rows.Close()

	var stats []HouseholdStat
	for rows.Next() {
		var stat HouseholdStat
		if err := rows.Scan(&stat.Household, &stat.Chapters, &stat.TotalSeconds); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

// Clear removes all chapters and runs.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chapters`)
	if err != nil {
		return 0, fmt.Errorf("clear chapters: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

const chapterColumns = "id, run_id, household, day_number, day_type, video_id, chapter_number, start_time, end_time, time_of_day, title, summary, created_at"

func scanChapter(scanner interface{ Scan(dest ...any) error }) (Chapter, error) {
	var (
		chapter    Chapter
		runID      sql.NullString
		title      sql.NullString
		summary    sql.NullString
		createdRaw string
	)
	if err := scanner.Scan(
		&chapter.ID,
		&runID,
		&chapter.Household,
		&chapter.DayNumber,
		&chapter.DayType,
		&chapter.VideoID,
		&chapter.ChapterNumber,
		&chapter.Start,
		&chapter.End,
		&chapter.TimeOfDay,
		&title,
		&summary,
		&createdRaw,
	); err != nil {
		return Chapter{}, err
	}
	chapter.RunID = runID.String
	chapter.Title = title.String
	chapter.Summary = summary.String
	if created, err := parseTimeString(createdRaw); err == nil {
		chapter.CreatedAt = created
	}
	return chapter, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(value string) []int {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
