package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInsights(); err != nil {
		return err
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInsights() error {
	if c.Insights.GapThreshold < 0 {
		return errors.New("insights.gap_threshold must not be negative")
	}
	return nil
}

func (c *Config) validateTranslate() error {
	if !c.Translate.Enabled {
		return nil
	}
	if c.Translate.TargetLanguage == "" {
		return errors.New("translate.target_language must be set when translate.enabled is true")
	}
	return nil
}

func (c *Config) validateBatch() error {
	for _, day := range c.Batch.Days {
		if day < 1 {
			return fmt.Errorf("batch.days contains invalid day %d", day)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireTwelveLabs reports an error when the API credentials needed by
// analyze/batch commands are missing. Feed and report paths work without
// them, so this is checked at the call sites that talk to the API rather
// than during Load.
func (c *Config) RequireTwelveLabs() error {
	if c.TwelveLabs.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/homesight/config.toml"
		}
		return fmt.Errorf("twelvelabs.api_key is required. Set TWELVELABS_API_KEY env var or edit %s (create with 'homesight config init')", defaultPath)
	}
	if c.TwelveLabs.IndexID == "" {
		return errors.New("twelvelabs.index_id is required. Set TWELVELABS_INDEX_ID env var or the twelvelabs.index_id config key")
	}
	return nil
}
