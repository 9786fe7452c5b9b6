package logger

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/wryte/config"
)

// DefaultName is the logger name used when Options.Name is empty.
const DefaultName = "wryte"

// DefaultMetadataTimeout bounds each instance metadata request.
const DefaultMetadataTimeout = time.Second

// PrettyMode selects how formatters lay out fields.
type PrettyMode int

const (
	// PrettyAuto prints console fields as key=value lines and JSON compact.
	PrettyAuto PrettyMode = iota
	// PrettyOn prints console fields as key=value lines and indents JSON.
	PrettyOn
	// PrettyOff prints console fields as a JSON block and JSON compact.
	PrettyOff
)

func (p PrettyMode) console() bool { return p != PrettyOff }

func (p PrettyMode) json() bool { return p == PrettyOn }

// Options configures a Logger. The zero value is a usable configuration:
// an INFO console logger named "wryte" whose sinks also follow the
// WRYTE_* environment variables.
type Options struct {
	// Name identifies the logger in every entry and selects the
	// WRYTE_<NAME>_* variables (default: "wryte")
	Name string
	// Hostname overrides the detected host name
	Hostname string
	// Level is the initial minimum level (default: "info")
	Level string
	// Pretty selects the field layout of the default formatters
	Pretty PrettyMode
	// Bare skips the default console sink and the environment sinks
	Bare bool
	// JSON makes the default console sink print JSON
	JSON bool
	// NoColor disables colors even on a terminal
	NoColor bool
	// Simple prints only the message on the console
	Simple bool

	// EnableEC2 adds instance metadata fields to the bound context
	EnableEC2 bool
	// MetadataURL overrides the instance metadata endpoint
	MetadataURL string
	// MetadataTimeout bounds each metadata request (default: 1s)
	MetadataTimeout time.Duration

	// Registry shares sinks between loggers of the same name. A nil
	// Registry gives the logger a private one.
	Registry *Registry
	// Output is the writer of the default console sink (default: stdout)
	Output io.Writer
	// Diagnostics receives internal failures (default: warnings on stderr)
	Diagnostics *zap.Logger
	// Clock returns the time of each entry (default: time.Now)
	Clock func() time.Time
	// Settings replaces the settings read from the environment
	Settings *config.Settings
}
