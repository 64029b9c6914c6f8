// Package config loads tabmatch settings from TOML, environment and defaults.
package config

// Config represents the complete configuration for tabmatch.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	// Matching selects how loosely URLs are compared when looking for an open tab.
	Matching MatchingConfig `mapstructure:"matching" toml:"matching" json:"matching"`
	Metrics  MetricsConfig  `mapstructure:"metrics" toml:"metrics" json:"metrics"`
}

// DatabaseConfig holds the session store location.
type DatabaseConfig struct {
	// Path to the SQLite file. Empty means $XDG_DATA_HOME/tabmatch/tabmatch.sqlite.
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level" validate:"oneof=trace debug info warn error disabled" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format        string `mapstructure:"format" toml:"format" json:"format" validate:"oneof=json console" jsonschema:"enum=json,enum=console"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" validate:"gte=0"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" validate:"gte=0"`
	// MaxAge is the number of days rotated log files are kept.
	MaxAge int `mapstructure:"max_age" toml:"max_age" json:"max_age" validate:"gte=0"`
}

// MatchingConfig picks a strictness preset. The lax_* keys, when set,
// override the corresponding flag of the preset.
type MatchingConfig struct {
	Strictness    string `mapstructure:"strictness" toml:"strictness" json:"strictness" jsonschema:"enum=strict,enum=lax_up_to_ref,enum=lax_up_to_query,enum=lax_up_to_path"`
	LaxSchemeHost *bool  `mapstructure:"lax_scheme_host" toml:"lax_scheme_host,omitempty" json:"lax_scheme_host,omitempty"`
	LaxRef        *bool  `mapstructure:"lax_ref" toml:"lax_ref,omitempty" json:"lax_ref,omitempty"`
	LaxQuery      *bool  `mapstructure:"lax_query" toml:"lax_query,omitempty" json:"lax_query,omitempty"`
	LaxPath       *bool  `mapstructure:"lax_path" toml:"lax_path,omitempty" json:"lax_path,omitempty"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// TextfilePath, when set, receives the lookup metrics after each command
	// in the node_exporter textfile format.
	TextfilePath string `mapstructure:"textfile_path" toml:"textfile_path" json:"textfile_path,omitempty"`
}
