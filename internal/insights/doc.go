// Package insights consolidates noisy per-segment AI chapter output into a
// human-readable activity feed.
//
// Classification is a fixed ordered keyword-rule table mapping free-text
// descriptions to a small closed set of actor entities; it performs no real
// re-identification. Merge folds a time-ordered segment sequence left to
// right, combining consecutive same-entity segments whose gap is below a
// configurable threshold into one event with aggregated metadata. Filters and
// tag extraction mirror the upstream feed controls.
//
// Everything here is pure and reentrant: no I/O, no shared state, safe to run
// per household in parallel.
package insights
