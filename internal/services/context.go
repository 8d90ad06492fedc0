package services

import "context"

type contextKey string

const (
	householdKey contextKey = "household"
	dayKey       contextKey = "day"
	runIDKey     contextKey = "run_id"
)

// WithHousehold annotates context with the household being processed.
func WithHousehold(ctx context.Context, household string) context.Context {
	if household == "" {
		return ctx
	}
	return context.WithValue(ctx, householdKey, household)
}

// HouseholdFromContext returns the household identifier if present.
func HouseholdFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(householdKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithDay annotates context with the day number being processed.
func WithDay(ctx context.Context, day int) context.Context {
	if day <= 0 {
		return ctx
	}
	return context.WithValue(ctx, dayKey, day)
}

// DayFromContext returns the day number if present.
func DayFromContext(ctx context.Context) (int, bool) {
	if v, ok := ctx.Value(dayKey).(int); ok && v > 0 {
		return v, true
	}
	return 0, false
}

// WithRunID annotates context with a batch run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
