// Package logging assembles structured slog loggers shared by the homesight
// CLI and pipeline code.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standardized attribute keys (component,
// household, day, run_id, video_id) so every subsystem emits log lines with
// the same shape. A no-op logger is available for tests.
package logging
