package core

import (
	"strings"
	"time"
)

// Reserved and identity keys of an Entry.
const (
	MessageKey   = "message"
	LevelKey     = "level"
	TimestampKey = "timestamp"
	NameKey      = "name"
	HostnameKey  = "hostname"
	PIDKey       = "pid"
	TypeKey      = "type"
	CIDKey       = "cid"
)

// Values of the TypeKey field.
const (
	TypeLog   = "log"
	TypeEvent = "event"
)

// TimestampFormat is the ISO-8601 layout of the timestamp field. Times are
// always rendered in UTC.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// IdentityKeys are present in every bound context and every entry.
var IdentityKeys = []string{NameKey, HostnameKey, PIDKey, TypeKey}

// IsIdentityKey reports whether key is one of IdentityKeys.
func IsIdentityKey(key string) bool {
	switch key {
	case NameKey, HostnameKey, PIDKey, TypeKey:
		return true
	}
	return false
}

// Entry represents a single log record. It is built fresh per call and
// must not be modified once handed to a sink.
type Entry map[string]any

// Message returns the message field.
func (e Entry) Message() string {
	s, _ := e[MessageKey].(string)
	return s
}

// Level returns the upper-case level field.
func (e Entry) Level() string {
	s, _ := e[LevelKey].(string)
	return s
}

// IsEvent reports whether the entry was emitted as an event.
func (e Entry) IsEvent() bool {
	return e[TypeKey] == TypeEvent
}

// Clone returns a shallow copy of the entry.
func (e Entry) Clone() Entry {
	return Entry(Fields(e).Clone())
}

// Enrich builds an Entry. base is copied, then the normalized objects and
// the keyword fields are merged in that order. message, level and
// timestamp are written last so caller context never shadows them.
func Enrich(base Fields, message, level string, objects []any, fields []Field, now time.Time) Entry {
	entry := base.Clone()

	if len(objects) > 0 {
		entry.Merge(Normalize(objects...))
	}
	if len(fields) > 0 {
		entry.Apply(fields)
	}

	entry[MessageKey] = message
	entry[LevelKey] = strings.ToUpper(level)
	entry[TimestampKey] = FormatTimestamp(now)

	return Entry(entry)
}

// FormatTimestamp renders t in UTC using TimestampFormat.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
