// Package config handles gooselog CLI configuration.
//
// The gooselib logging library itself reads no files or environment; this
// package builds a logging.Config for the command-line tool from defaults,
// YAML files and GOOSELIB_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/internal/ui"
	"github.com/garretreichenbach/gooselib/pkg/dateutil"
	"github.com/garretreichenbach/gooselib/pkg/logging"
)

// Config represents the gooselog configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	View    ViewConfig    `yaml:"view" json:"view"`
}

// LoggingConfig mirrors logging.Config in file form.
type LoggingConfig struct {
	Dir         string `yaml:"dir" json:"dir"`
	MaxLogs     int    `yaml:"max_logs" json:"max_logs"`
	TimePattern string `yaml:"time_pattern" json:"time_pattern"`
	Level       string `yaml:"level" json:"level"`
	// Console is a pointer so an explicit false in YAML can be told from unset.
	Console *bool  `yaml:"console,omitempty" json:"console,omitempty"`
	Color   string `yaml:"color" json:"color"`
}

// ViewConfig holds defaults for `gooselog view`.
type ViewConfig struct {
	Lines int    `yaml:"lines" json:"lines"`
	Level string `yaml:"level" json:"level"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	console := true
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Dir:         logging.DefaultDir,
			MaxLogs:     logging.DefaultMaxLogs,
			TimePattern: dateutil.DefaultPattern,
			Level:       "debug",
			Console:     &console,
			Color:       string(ui.ColorAuto),
		},
		View: ViewConfig{
			Lines: 50,
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/gooselib/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/gooselib/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gooselib", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "gooselib", "config.yaml")
	}
	return filepath.Join(home, ".config", "gooselib", "config.yaml")
}

// loadUserConfig loads the user/global configuration file if it exists.
// Returns nil config and nil error if the file doesn't exist.
func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	cfg := &Config{}
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads configuration for the given directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/gooselib/config.yaml)
//  3. Project config (.gooselib.yaml in dir)
//  4. Environment variables (GOOSELIB_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load configuration from .gooselib.yaml or .gooselib.yml.
func (c *Config) loadFromFile(dir string) error {
	// .yaml takes precedence
	yamlPath := filepath.Join(dir, ".gooselib.yaml")
	if fileExists(yamlPath) {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".gooselib.yml")
	if fileExists(ymlPath) {
		return c.loadYAML(ymlPath)
	}

	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerrors.New(goerrors.ErrCodeConfigNotFound, "failed to read config file", err).
			WithDetail("path", path)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return goerrors.ConfigError("failed to parse config file", err).
			WithDetail("path", path)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Logging.Dir != "" {
		c.Logging.Dir = other.Logging.Dir
	}
	if other.Logging.MaxLogs != 0 {
		c.Logging.MaxLogs = other.Logging.MaxLogs
	}
	if other.Logging.TimePattern != "" {
		c.Logging.TimePattern = other.Logging.TimePattern
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.Console != nil {
		console := *other.Logging.Console
		c.Logging.Console = &console
	}
	if other.Logging.Color != "" {
		c.Logging.Color = other.Logging.Color
	}

	if other.View.Lines != 0 {
		c.View.Lines = other.View.Lines
	}
	if other.View.Level != "" {
		c.View.Level = other.View.Level
	}
}

// applyEnvOverrides applies GOOSELIB_* environment variables.
// Unparseable numeric and boolean values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOOSELIB_LOG_DIR"); v != "" {
		c.Logging.Dir = v
	}
	if v := os.Getenv("GOOSELIB_MAX_LOGS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Logging.MaxLogs = n
		}
	}
	if v := os.Getenv("GOOSELIB_TIME_PATTERN"); v != "" {
		c.Logging.TimePattern = v
	}
	if v := os.Getenv("GOOSELIB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GOOSELIB_CONSOLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Console = &b
		}
	}
	if v := os.Getenv("GOOSELIB_COLOR"); v != "" {
		c.Logging.Color = v
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Logging.Dir) == "" {
		return goerrors.ConfigError("logging.dir must not be empty", nil)
	}
	if c.Logging.MaxLogs < 2 {
		return goerrors.ConfigError(fmt.Sprintf("logging.max_logs must be at least 2, got %d", c.Logging.MaxLogs), nil)
	}
	if _, ok := logging.ParseMessageType(c.Logging.Level); !ok {
		return goerrors.ConfigError(fmt.Sprintf("logging.level must be debug, info, warning, error or critical, got %s", c.Logging.Level), nil)
	}
	if _, ok := ui.ParseColorMode(c.Logging.Color); !ok {
		return goerrors.ConfigError(fmt.Sprintf("logging.color must be auto, always or never, got %s", c.Logging.Color), nil)
	}
	if c.View.Lines < 0 {
		return goerrors.ConfigError(fmt.Sprintf("view.lines must be non-negative, got %d", c.View.Lines), nil)
	}
	if c.View.Level != "" {
		if _, ok := logging.ParseMessageType(c.View.Level); !ok {
			return goerrors.ConfigError(fmt.Sprintf("view.level is not a known level: %s", c.View.Level), nil)
		}
	}
	return nil
}

// LoggerConfig converts the file form into a logging.Config.
// Call Validate first; unknown values fall back to defaults.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Dir = c.Logging.Dir
	cfg.MaxLogs = c.Logging.MaxLogs
	cfg.TimePattern = c.Logging.TimePattern
	if level, ok := logging.ParseMessageType(c.Logging.Level); ok {
		cfg.MinLevel = level
	}
	if c.Logging.Console != nil {
		cfg.Console = *c.Logging.Console
	}
	if mode, ok := ui.ParseColorMode(c.Logging.Color); ok {
		cfg.Color = string(mode)
	}
	return cfg
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
