package logging

import (
	"io"
	"strconv"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/internal/ui"
	"github.com/garretreichenbach/gooselib/pkg/dateutil"
)

const (
	// DefaultDir is the log directory relative to the working directory.
	DefaultDir = "./logs"
	// DefaultMaxLogs is the number of log files kept across runs.
	DefaultMaxLogs = 10
)

// Color modes for console output.
const (
	ColorAuto   = string(ui.ColorAuto)
	ColorAlways = string(ui.ColorAlways)
	ColorNever  = string(ui.ColorNever)
)

// Config contains logger configuration.
type Config struct {
	// Dir is the directory holding log0.txt .. log<MaxLogs-1>.txt.
	Dir string
	// MaxLogs bounds the number of log files kept (default: 10).
	MaxLogs int
	// TimePattern is the Java-style timestamp pattern for line prefixes.
	TimePattern string
	// MinLevel drops messages below this level (default: LevelDebug).
	MinLevel MessageType
	// Console enables writing each line to Stdout (default: true).
	Console bool
	// Color is one of ColorAuto, ColorAlways or ColorNever.
	Color string
	// Stdout receives console lines. Nil means os.Stdout.
	Stdout io.Writer
	// Stderr receives stack traces and failure reports. Nil means os.Stderr.
	Stderr io.Writer
}

// DefaultConfig returns the defaults: ./logs, 10 files, console on.
func DefaultConfig() Config {
	return Config{
		Dir:         DefaultDir,
		MaxLogs:     DefaultMaxLogs,
		TimePattern: dateutil.DefaultPattern,
		MinLevel:    LevelDebug,
		Console:     true,
		Color:       ColorAuto,
	}
}

// Validate reports configuration values the logger cannot work with.
func (c Config) Validate() error {
	if c.Dir == "" {
		return goerrors.ValidationError("log directory must not be empty", nil)
	}
	if c.MaxLogs < 2 {
		return goerrors.ValidationError("max logs must be at least 2", nil).
			WithDetail("max_logs", strconv.Itoa(c.MaxLogs))
	}
	if _, ok := ui.ParseColorMode(c.Color); !ok {
		return goerrors.ValidationError("color must be auto, always or never, got "+c.Color, nil)
	}
	if c.MinLevel < LevelDebug || c.MinLevel > LevelCritical {
		return goerrors.ValidationError("min level out of range", nil)
	}
	return nil
}
