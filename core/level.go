package core

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log entry
type Level int8

const (
	// NotSet is only valid as a sink level. A NotSet sink accepts
	// everything that passes the logger's own threshold.
	NotSet Level = 0
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages (default)
	InfoLevel Level = 20
	// WarningLevel for warning messages
	WarningLevel Level = 30
	// ErrorLevel for error messages
	ErrorLevel Level = 40
	// CriticalLevel for failures that need immediate attention
	CriticalLevel Level = 50
)

// EventName is the synthetic level name used by events. It shares the
// priority of InfoLevel.
const EventName = "event"

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case NotSet:
		return "NOTSET"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Enabled reports whether an entry at level passes a threshold of l.
func (l Level) Enabled(level Level) bool {
	return level >= l
}

// LevelNames lists the accepted level names in ascending priority.
var LevelNames = []string{"debug", "info", "warning", "warn", "error", "critical", EventName}

// ParseLevel converts a case-insensitive level name to a Level.
// Unknown names return an error wrapping ErrInvalidLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", EventName:
		return InfoLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "error":
		return ErrorLevel, nil
	case "critical":
		return CriticalLevel, nil
	default:
		return NotSet, fmt.Errorf("%w %q: must be one of %s", ErrInvalidLevel, s, strings.Join(LevelNames, ", "))
	}
}

// ValidLevel reports whether s names a level ParseLevel accepts.
func ValidLevel(s string) bool {
	_, err := ParseLevel(s)
	return err == nil
}
