package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/fatih/color"

	"github.com/philipp01105/wryte/core"
)

// ConsoleFormatter formats log entries as human-readable text
type ConsoleFormatter struct {
	Options
}

// NewConsoleFormatter creates a new console formatter. Color is turned
// off when Simple is set.
func NewConsoleFormatter(opts Options) *ConsoleFormatter {
	if opts.Simple {
		opts.Color = false
	}
	return &ConsoleFormatter{Options: opts}
}

// eventLabel replaces the level of entries whose type is event.
const eventLabel = "EVENT"

func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	// The caller already decided that colors are wanted; don't let the
	// package-level tty detection override that.
	c.EnableColor()
	return c
}

var (
	timestampColor = newColor(color.FgGreen)
	nameColor      = newColor(color.FgMagenta)

	levelColors = map[string]*color.Color{
		"DEBUG":    newColor(color.FgCyan),
		"INFO":     newColor(color.FgGreen),
		"WARNING":  newColor(color.FgYellow),
		"WARN":     newColor(color.FgYellow),
		"ERROR":    newColor(color.FgRed),
		"CRITICAL": newColor(color.Bold, color.FgRed),
		eventLabel: newColor(color.Bold, color.FgGreen),
	}
)

// consoleDropKeys are rendered in the header or not at all.
var consoleDropKeys = []string{
	core.LevelKey, core.TypeKey, core.HostnameKey, core.PIDKey,
	core.NameKey, core.MessageKey, core.TimestampKey,
}

// Format formats an entry as text
func (f *ConsoleFormatter) Format(entry core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.formatToBuffer(entry, buf); err != nil {
		return nil, err
	}
	return detach(buf), nil
}

// formatToBuffer writes the formatted entry into the given buffer
func (f *ConsoleFormatter) formatToBuffer(entry core.Entry, buf *bytes.Buffer) error {
	message := valueString(entry[core.MessageKey])

	if f.Simple {
		buf.WriteString(message)
		buf.WriteByte('\n')
		return nil
	}

	timestamp := valueString(entry[core.TimestampKey])
	name := valueString(entry[core.NameKey])
	level := entry.Level()
	if entry.IsEvent() {
		level = eventLabel
	}

	if f.Color {
		timestamp = timestampColor.Sprint(timestamp)
		name = nameColor.Sprint(name)
		if c, ok := levelColors[level]; ok {
			level = c.Sprint(level)
		}
	}

	buf.WriteString(timestamp)
	buf.WriteString(" - ")
	buf.WriteString(name)
	buf.WriteString(" - ")
	buf.WriteString(level)
	buf.WriteString(" - ")
	buf.WriteString(message)

	rest := make(map[string]any, len(entry))
	for k, v := range entry {
		if !slices.Contains(consoleDropKeys, k) {
			rest[k] = v
		}
	}

	if f.Pretty {
		keys := make([]string, 0, len(rest))
		for k := range rest {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			buf.WriteString("\n  ")
			buf.WriteString(k)
			buf.WriteByte('=')
			buf.WriteString(valueString(rest[k]))
		}
	} else if len(rest) > 0 {
		block, err := json.MarshalIndent(rest, "", "    ")
		if err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		buf.WriteByte('\n')
		buf.Write(block)
	}

	buf.WriteByte('\n')
	return nil
}
