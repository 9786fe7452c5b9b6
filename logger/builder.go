package logger

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/wryte/config"
)

// Builder provides a fluent API for building Logger instances
type Builder struct {
	opts Options
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithName sets the logger name
func (b *Builder) WithName(name string) *Builder {
	b.opts.Name = name
	return b
}

// WithHostname overrides the detected host name
func (b *Builder) WithHostname(hostname string) *Builder {
	b.opts.Hostname = hostname
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level string) *Builder {
	b.opts.Level = level
	return b
}

// WithPretty sets the field layout of the default formatters
func (b *Builder) WithPretty(mode PrettyMode) *Builder {
	b.opts.Pretty = mode
	return b
}

// Bare skips the default and environment sinks
func (b *Builder) Bare() *Builder {
	b.opts.Bare = true
	return b
}

// WithJSON makes the default console sink print JSON
func (b *Builder) WithJSON(enabled bool) *Builder {
	b.opts.JSON = enabled
	return b
}

// WithColor enables or disables console colors
func (b *Builder) WithColor(enabled bool) *Builder {
	b.opts.NoColor = !enabled
	return b
}

// WithSimple prints only the message on the console
func (b *Builder) WithSimple(enabled bool) *Builder {
	b.opts.Simple = enabled
	return b
}

// WithEC2 adds instance metadata fields to the bound context
func (b *Builder) WithEC2(enabled bool) *Builder {
	b.opts.EnableEC2 = enabled
	return b
}

// WithRegistry shares sinks with other loggers of the same registry
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.opts.Registry = r
	return b
}

// WithOutput sets the writer of the default console sink
func (b *Builder) WithOutput(w io.Writer) *Builder {
	b.opts.Output = w
	return b
}

// WithDiagnostics sets the logger that receives internal failures
func (b *Builder) WithDiagnostics(diag *zap.Logger) *Builder {
	b.opts.Diagnostics = diag
	return b
}

// WithClock sets the time source of entries
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.opts.Clock = clock
	return b
}

// WithSettings replaces the settings read from the environment
func (b *Builder) WithSettings(s *config.Settings) *Builder {
	b.opts.Settings = s
	return b
}

// Options returns the options collected so far
func (b *Builder) Options() Options {
	return b.opts
}

// Build creates the Logger instance
func (b *Builder) Build() (*Logger, error) {
	return New(b.opts)
}
