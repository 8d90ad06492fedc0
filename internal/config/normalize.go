package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTwelveLabs()
	c.normalizeTranslate()
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.VideoDir, err = expandPath(c.Paths.VideoDir); err != nil {
		return fmt.Errorf("paths.video_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTwelveLabs() {
	c.TwelveLabs.APIKey = strings.TrimSpace(c.TwelveLabs.APIKey)
	if c.TwelveLabs.APIKey == "" {
		c.TwelveLabs.APIKey = strings.TrimSpace(os.Getenv("TWELVELABS_API_KEY"))
	}
	c.TwelveLabs.IndexID = strings.TrimSpace(c.TwelveLabs.IndexID)
	if c.TwelveLabs.IndexID == "" {
		c.TwelveLabs.IndexID = strings.TrimSpace(os.Getenv("TWELVELABS_INDEX_ID"))
	}
	c.TwelveLabs.BaseURL = strings.TrimRight(strings.TrimSpace(c.TwelveLabs.BaseURL), "/")
	if c.TwelveLabs.BaseURL == "" {
		c.TwelveLabs.BaseURL = defaultTwelveLabsBaseURL
	}
	if c.TwelveLabs.RequestTimeout <= 0 {
		c.TwelveLabs.RequestTimeout = defaultRequestTimeout
	}
	if c.TwelveLabs.IndexPollInterval <= 0 {
		c.TwelveLabs.IndexPollInterval = defaultIndexPollInterval
	}
	if c.TwelveLabs.IndexTimeout <= 0 {
		c.TwelveLabs.IndexTimeout = defaultIndexTimeout
	}
	if c.TwelveLabs.SummarizeTimeout <= 0 {
		c.TwelveLabs.SummarizeTimeout = defaultSummarizeTimeout
	}
}

func (c *Config) normalizeTranslate() {
	c.Translate.TargetLanguage = strings.ToLower(strings.TrimSpace(c.Translate.TargetLanguage))
	if c.Translate.TargetLanguage == "" {
		c.Translate.TargetLanguage = defaultTargetLanguage
	}
	c.Translate.BaseURL = strings.TrimRight(strings.TrimSpace(c.Translate.BaseURL), "/")
	if c.Translate.RequestTimeout <= 0 {
		c.Translate.RequestTimeout = defaultTranslateTimeout
	}
}

func (c *Config) normalizeBatch() {
	households := make([]string, 0, len(c.Batch.Households))
	for _, h := range c.Batch.Households {
		h = strings.ToUpper(strings.TrimSpace(h))
		if h != "" {
			households = append(households, h)
		}
	}
	if len(households) == 0 {
		households = defaultHouseholds()
	}
	c.Batch.Households = households
	if len(c.Batch.Days) == 0 {
		c.Batch.Days = defaultDays()
	}
	if c.Batch.PacingSeconds < 0 {
		c.Batch.PacingSeconds = defaultPacingSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
