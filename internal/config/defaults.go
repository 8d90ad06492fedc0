package config

const (
	defaultDataDir            = "~/.local/share/homesight/data"
	defaultLogDir             = "~/.local/share/homesight/logs"
	defaultVideoDir           = "~/videos"
	defaultTwelveLabsBaseURL  = "https://api.twelvelabs.io/v1.3"
	defaultRequestTimeout     = 30
	defaultIndexPollInterval  = 10
	defaultIndexTimeout       = 3600
	defaultSummarizeTimeout   = 300
	defaultChapterTemperature = 0.2
	defaultTargetLanguage     = "ko"
	defaultTranslateTimeout   = 10
	defaultGapThreshold       = 5.0
	defaultPacingSeconds      = 2
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

func defaultHouseholds() []string {
	return []string{"A", "B", "C", "D", "E", "F"}
}

func defaultDays() []int {
	return []int{1, 2, 3, 4}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			VideoDir: defaultVideoDir,
		},
		TwelveLabs: TwelveLabs{
			BaseURL:            defaultTwelveLabsBaseURL,
			RequestTimeout:     defaultRequestTimeout,
			IndexPollInterval:  defaultIndexPollInterval,
			IndexTimeout:       defaultIndexTimeout,
			SummarizeTimeout:   defaultSummarizeTimeout,
			ChapterTemperature: defaultChapterTemperature,
		},
		Translate: Translate{
			TargetLanguage: defaultTargetLanguage,
			RequestTimeout: defaultTranslateTimeout,
		},
		Insights: Insights{
			GapThreshold: defaultGapThreshold,
		},
		Batch: Batch{
			Households:    defaultHouseholds(),
			Days:          defaultDays(),
			PacingSeconds: defaultPacingSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
