package config

import "github.com/bnema/tabmatch/internal/domain/url"

const (
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 28
)

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAge:     defaultLogMaxAgeDays,
		},
		Matching: MatchingConfig{
			Strictness: string(url.StrictnessLaxUpToPath),
		},
	}
}
