package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "tabmatch"
	databaseName = "tabmatch.sqlite"
	configName   = "config.toml"

	dirPerm  = 0o755
	filePerm = 0o644
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetXDGDirs returns the XDG Base Directory paths for tabmatch:
// - $XDG_CONFIG_HOME/tabmatch (default: ~/.config/tabmatch)
// - $XDG_DATA_HOME/tabmatch (default: ~/.local/share/tabmatch)
// - $XDG_STATE_HOME/tabmatch (default: ~/.local/state/tabmatch)
func GetXDGDirs() (*XDGDirs, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &XDGDirs{
		ConfigHome: xdgDir("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config")),
		DataHome:   xdgDir("XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share")),
		StateHome:  xdgDir("XDG_STATE_HOME", filepath.Join(homeDir, ".local", "state")),
	}, nil
}

func xdgDir(env, fallback string) string {
	base := os.Getenv(env)
	if base == "" {
		base = fallback
	}
	return filepath.Join(base, appName)
}

// GetConfigDir returns the XDG config directory for tabmatch.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the XDG data directory for tabmatch.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetStateDir returns the XDG state directory for tabmatch.
func GetStateDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.StateHome, nil
}

// GetLogDir returns the log directory. Logs live in XDG_STATE_HOME.
func GetLogDir() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "logs"), nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configName), nil
}

// GetDatabaseFile returns the path to the session database.
// Saved sessions are user data and belong in XDG_DATA_HOME.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// EnsureDirectories creates the XDG directories if they don't exist.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}

	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
