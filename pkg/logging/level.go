package logging

import (
	"log/slog"
	"strings"
)

// MessageType is the severity of a log message.
type MessageType int

// Levels in increasing severity. The order is used for MinLevel filtering.
const (
	LevelDebug MessageType = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// LevelCriticalSlog is the slog level that maps to LevelCritical.
const LevelCriticalSlog = slog.LevelError + 4

// String returns the level name, e.g. "WARNING".
func (m MessageType) String() string {
	switch m {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Tag returns the bracketed level tag, e.g. "[WARNING]:".
func (m MessageType) Tag() string {
	return "[" + m.String() + "]:"
}

// Prefix returns the tag followed by a space, as it appears in log lines.
func (m MessageType) Prefix() string {
	return m.Tag() + " "
}

// SlogLevel maps the message type onto the slog level scale.
func (m MessageType) SlogLevel() slog.Level {
	switch m {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return LevelCriticalSlog
	default:
		return slog.LevelInfo
	}
}

// FromSlogLevel maps an slog level to the nearest message type at or below it.
func FromSlogLevel(level slog.Level) MessageType {
	switch {
	case level < slog.LevelInfo:
		return LevelDebug
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarning
	case level < LevelCriticalSlog:
		return LevelError
	default:
		return LevelCritical
	}
}

// ParseMessageType converts a level name to a MessageType.
// It accepts the String forms case-insensitively plus "warn" and "fatal".
func ParseMessageType(s string) (MessageType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarning, true
	case "error":
		return LevelError, true
	case "critical", "fatal":
		return LevelCritical, true
	default:
		return LevelInfo, false
	}
}
