package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/pkg/dateutil"
	"github.com/garretreichenbach/gooselib/pkg/logging"
)

// isolate points the user config lookup at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"GOOSELIB_LOG_DIR", "GOOSELIB_MAX_LOGS", "GOOSELIB_TIME_PATTERN",
		"GOOSELIB_LOG_LEVEL", "GOOSELIB_CONSOLE", "GOOSELIB_COLOR",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	// Given: no configuration file exists
	cfg := NewConfig()

	// Then: all defaults should be applied
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "./logs", cfg.Logging.Dir)
	assert.Equal(t, 10, cfg.Logging.MaxLogs)
	assert.Equal(t, dateutil.DefaultPattern, cfg.Logging.TimePattern)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.NotNil(t, cfg.Logging.Console)
	assert.True(t, *cfg.Logging.Console)
	assert.Equal(t, "auto", cfg.Logging.Color)
	assert.Equal(t, 50, cfg.View.Lines)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFiles_ReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoad_ProjectYAML(t *testing.T) {
	// Given: a project config file
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gooselib.yaml"), `
logging:
  dir: /var/log/goose
  max_logs: 5
  level: warning
  console: false
view:
  lines: 20
`)

	// When: loading
	cfg, err := Load(dir)

	// Then: file values override defaults and unset values keep defaults
	require.NoError(t, err)
	assert.Equal(t, "/var/log/goose", cfg.Logging.Dir)
	assert.Equal(t, 5, cfg.Logging.MaxLogs)
	assert.Equal(t, "warning", cfg.Logging.Level)
	assert.False(t, *cfg.Logging.Console)
	assert.Equal(t, "auto", cfg.Logging.Color)
	assert.Equal(t, 20, cfg.View.Lines)
}

func TestLoad_YmlFallback(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gooselib.yml"), "logging:\n  max_logs: 4\n")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Logging.MaxLogs)
}

func TestLoad_UserConfigThenProjectThenEnv(t *testing.T) {
	// Given: user config, project config and env all set
	isolate(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "gooselib", "config.yaml"), "logging:\n  dir: user-logs\n  max_logs: 7\n  color: never\n")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gooselib.yaml"), "logging:\n  max_logs: 6\n")
	t.Setenv("GOOSELIB_COLOR", "always")

	// When: loading
	cfg, err := Load(dir)

	// Then: each layer overrides the previous one
	require.NoError(t, err)
	assert.Equal(t, "user-logs", cfg.Logging.Dir)
	assert.Equal(t, 6, cfg.Logging.MaxLogs)
	assert.Equal(t, "always", cfg.Logging.Color)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gooselib.yaml"), "logging:\n  dir: from-file\n")

	t.Setenv("GOOSELIB_LOG_DIR", "from-env")
	t.Setenv("GOOSELIB_MAX_LOGS", "3")
	t.Setenv("GOOSELIB_TIME_PATTERN", "HH:mm")
	t.Setenv("GOOSELIB_LOG_LEVEL", "error")
	t.Setenv("GOOSELIB_CONSOLE", "false")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Logging.Dir)
	assert.Equal(t, 3, cfg.Logging.MaxLogs)
	assert.Equal(t, "HH:mm", cfg.Logging.TimePattern)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.False(t, *cfg.Logging.Console)
}

func TestLoad_EnvIgnoresUnparseableValues(t *testing.T) {
	isolate(t)
	t.Setenv("GOOSELIB_MAX_LOGS", "lots")
	t.Setenv("GOOSELIB_CONSOLE", "maybe")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Logging.MaxLogs)
	assert.True(t, *cfg.Logging.Console)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gooselib.yaml"), "logging: [not, a, map\n")

	_, err := Load(dir)

	require.Error(t, err)
	assert.Equal(t, goerrors.ErrCodeConfigInvalid, goerrors.GetCode(err))
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dir", func(c *Config) { c.Logging.Dir = "  " }},
		{"max logs", func(c *Config) { c.Logging.MaxLogs = 1 }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"color", func(c *Config) { c.Logging.Color = "sepia" }},
		{"view lines", func(c *Config) { c.View.Lines = -1 }},
		{"view level", func(c *Config) { c.View.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, goerrors.CategoryConfig, goerrors.GetCategory(err))
		})
	}
}

func TestLoggerConfig_ConvertsValues(t *testing.T) {
	// Given: a customized config
	cfg := NewConfig()
	cfg.Logging.Dir = "out"
	cfg.Logging.MaxLogs = 4
	cfg.Logging.TimePattern = "HH:mm:ss"
	cfg.Logging.Level = "warn"
	off := false
	cfg.Logging.Console = &off
	cfg.Logging.Color = "NEVER"

	// When: converting
	lc := cfg.LoggerConfig()

	// Then: the logging config reflects it
	assert.Equal(t, "out", lc.Dir)
	assert.Equal(t, 4, lc.MaxLogs)
	assert.Equal(t, "HH:mm:ss", lc.TimePattern)
	assert.Equal(t, logging.LevelWarning, lc.MinLevel)
	assert.False(t, lc.Console)
	assert.Equal(t, logging.ColorNever, lc.Color)
	assert.NoError(t, lc.Validate())
}

func TestWriteYAML_RoundTripsThroughLoad(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Logging.MaxLogs = 8

	require.NoError(t, cfg.WriteYAML(filepath.Join(dir, ".gooselib.yaml")))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Logging.MaxLogs)
}
