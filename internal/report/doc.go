// Package report aggregates stored chapters into dashboard views: headline
// metrics, time-of-day distributions, per-household summaries, and the
// consolidated activity feed.
package report
