package testsupport

import (
	"path/filepath"
	"testing"

	"homesight/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.VideoDir = filepath.Join(base, "videos")
	cfg.TwelveLabs.APIKey = "test"
	cfg.TwelveLabs.IndexID = "test-index"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithGapThreshold overrides the merge gap threshold on the test config.
func WithGapThreshold(threshold float64) ConfigOption {
	return func(c *config.Config) {
		c.Insights.GapThreshold = threshold
	}
}

// WithHouseholds overrides the batch household set on the test config.
func WithHouseholds(households ...string) ConfigOption {
	return func(c *config.Config) {
		c.Batch.Households = households
	}
}
