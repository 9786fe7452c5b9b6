package logger

import (
	"time"

	"github.com/philipp01105/wryte/core"
)

// SetLevelKey is the field key of the inline level directive. It is
// never emitted.
const SetLevelKey = "_set_level"

// Field helper functions for convenience

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Value: val}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Value: val}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Value: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Value: val}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	return core.Field{Key: key, Value: val}
}

// Time creates a time field rendered in UTC with microsecond precision
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Value: core.FormatTimestamp(val)}
}

// Duration creates a duration field rendered as text, e.g. "1.5s"
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Value: val.String()}
}

// Err creates an error field
func Err(err error) core.Field {
	if err == nil {
		return core.Field{Key: "error", Value: nil}
	}
	return core.Field{Key: "error", Value: err.Error()}
}

// Any creates a field with any value
func Any(key string, val interface{}) core.Field {
	return core.Field{Key: key, Value: val}
}

// CID sets the correlation id of an Event instead of generating one.
func CID(cid string) core.Field {
	return core.Field{Key: core.CIDKey, Value: cid}
}

// ChangeLevel asks Error, Critical and Log to change the logger's level
// before the entry is emitted.
func ChangeLevel(level string) core.Field {
	return core.Field{Key: SetLevelKey, Value: level}
}
