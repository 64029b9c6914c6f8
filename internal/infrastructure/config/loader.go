package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const envPrefix = "TABMATCH"

// Manager handles configuration loading.
type Manager struct {
	config *Config
	viper  *viper.Viper
	mu     sync.RWMutex

	// explicitFile is set when the user named a config file. It is never
	// created on their behalf.
	explicitFile string
	notices      io.Writer
}

// NewManager creates a manager reading config.toml from the XDG config
// directory, or the current directory during development.
func NewManager() (*Manager, error) {
	v := newViper()

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	if err := bindEnv(v); err != nil {
		return nil, err
	}
	return &Manager{viper: v, notices: os.Stderr}, nil
}

// NewManagerWithFile creates a manager bound to a specific TOML file.
func NewManagerWithFile(path string) (*Manager, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := bindEnv(v); err != nil {
		return nil, err
	}
	return &Manager{viper: v, explicitFile: path, notices: os.Stderr}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// bindEnv covers keys AutomaticEnv cannot see: keys without defaults and
// the short logging names shared with logging.NewFromEnv.
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"logging.level":            envPrefix + "_LOG_LEVEL",
		"logging.format":           envPrefix + "_LOG_FORMAT",
		"database.path":            envPrefix + "_DATABASE_PATH",
		"metrics.textfile_path":    envPrefix + "_METRICS_TEXTFILE_PATH",
		"matching.lax_scheme_host": envPrefix + "_MATCHING_LAX_SCHEME_HOST",
		"matching.lax_ref":         envPrefix + "_MATCHING_LAX_REF",
		"matching.lax_query":       envPrefix + "_MATCHING_LAX_QUERY",
		"matching.lax_path":        envPrefix + "_MATCHING_LAX_PATH",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.explicitFile == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensurePaths(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	switch {
	case m.explicitFile != "":
		return fmt.Errorf("failed to read config file at %s: %w", m.explicitFile, err)
	case errors.As(err, &notFound):
		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
		return nil
	default:
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func ensurePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "warning" {
		config.Logging.Level = "warn"
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Matching.Strictness = strings.ToLower(strings.TrimSpace(config.Matching.Strictness))
}

// Get returns a copy of the loaded configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path of the file that was read.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(m.notices, "Created default configuration file: %s\n", configFile)
	return nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)

	m.viper.SetDefault("matching.strictness", defaults.Matching.Strictness)
}
