package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabmatch/internal/domain/url"
)

func setXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func boolPtr(b bool) *bool { return &b }

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "warn", mgr.viper.GetString("logging.level"))
	assert.Equal(t, "console", mgr.viper.GetString("logging.format"))
	assert.Equal(t, "lax_up_to_path", mgr.viper.GetString("matching.strictness"))
}

func TestGetXDGDirs(t *testing.T) {
	root := setXDG(t)

	dirs, err := GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config", "tabmatch"), dirs.ConfigHome)
	assert.Equal(t, filepath.Join(root, "data", "tabmatch"), dirs.DataHome)
	assert.Equal(t, filepath.Join(root, "state", "tabmatch"), dirs.StateHome)

	dbFile, err := GetDatabaseFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "tabmatch", "tabmatch.sqlite"), dbFile)

	logDir, err := GetLogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "state", "tabmatch", "logs"), logDir)
}

func TestManager_Load_CreatesDefaultFile(t *testing.T) {
	root := setXDG(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	mgr.notices = io.Discard

	require.NoError(t, mgr.Load())

	configFile := filepath.Join(root, "config", "tabmatch", "config.toml")
	assert.FileExists(t, configFile)

	cfg := mgr.Get()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "lax_up_to_path", cfg.Matching.Strictness)
	assert.Equal(t, filepath.Join(root, "data", "tabmatch", "tabmatch.sqlite"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(root, "state", "tabmatch", "logs"), cfg.Logging.LogDir)
}

func TestManager_Load_ExplicitFileAndEnv(t *testing.T) {
	setXDG(t)

	path := filepath.Join(t.TempDir(), "tabmatch.toml")
	content := `
[database]
path = "/tmp/sessions.sqlite"

[logging]
level = "DEBUG"
format = "json"

[matching]
strictness = "lax_up_to_query"
lax_ref = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), filePerm))
	t.Setenv("TABMATCH_METRICS_TEXTFILE_PATH", "/tmp/tabmatch.prom")

	mgr, err := NewManagerWithFile(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, path, mgr.GetConfigFile())
	assert.Equal(t, "/tmp/sessions.sqlite", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "lax_up_to_query", cfg.Matching.Strictness)
	require.NotNil(t, cfg.Matching.LaxRef)
	assert.False(t, *cfg.Matching.LaxRef)
	assert.Nil(t, cfg.Matching.LaxPath)
	assert.Equal(t, "/tmp/tabmatch.prom", cfg.Metrics.TextfilePath)
}

func TestManager_Load_MissingExplicitFile(t *testing.T) {
	setXDG(t)

	mgr, err := NewManagerWithFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Error(t, mgr.Load())
}

func TestManager_Load_InvalidValues(t *testing.T) {
	setXDG(t)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[matching]\nstrictness = \"sloppy\"\n"), filePerm))

	mgr, err := NewManagerWithFile(path)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matching.strictness")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "negative backups", mutate: func(c *Config) { c.Logging.MaxBackups = -1 }, wantErr: "logging.max_backups"},
		{name: "bad strictness", mutate: func(c *Config) { c.Matching.Strictness = "loose" }, wantErr: "matching.strictness"},
		{
			name: "file log without dir",
			mutate: func(c *Config) {
				c.Logging.EnableFileLog = true
				c.Logging.LogDir = ""
			},
			wantErr: "logging.log_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ScorerFlags(t *testing.T) {
	cfg := DefaultConfig()

	flags, err := cfg.ScorerFlags()
	require.NoError(t, err)
	assert.Equal(t, url.StrictnessLaxUpToPath.Laxness(), flags)

	cfg.Matching.Strictness = "strict"
	cfg.Matching.LaxSchemeHost = boolPtr(true)
	flags, err = cfg.ScorerFlags()
	require.NoError(t, err)
	assert.Equal(t, url.Laxness{SchemeHost: true}, flags)

	cfg.Matching.Strictness = "nope"
	_, err = cfg.ScorerFlags()
	assert.ErrorIs(t, err, url.ErrUnknownStrictness)
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema struct {
		ID         string `json:"$id"`
		Properties map[string]struct {
			Properties map[string]struct {
				Enum []string `json:"enum"`
			} `json:"properties"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, schemaID, schema.ID)
	require.Contains(t, schema.Properties, "matching")
	assert.Equal(t,
		[]string{"strict", "lax_up_to_ref", "lax_up_to_query", "lax_up_to_path"},
		schema.Properties["matching"].Properties["strictness"].Enum,
	)
	assert.Contains(t, schema.Properties["logging"].Properties, "max_size_mb")
}
