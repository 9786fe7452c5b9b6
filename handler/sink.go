package handler

import (
	"github.com/philipp01105/wryte/core"
	"github.com/philipp01105/wryte/formatter"
)

// Sink is a named destination: a formatter, an output medium and a
// minimum level.
type Sink struct {
	name      string
	level     core.Level
	formatter formatter.Formatter
	handler   Handler
	stats     *Stats
}

// NewSink creates a new sink. A NotSet level accepts whatever passes the
// fallback threshold given to Enabled.
func NewSink(name string, level core.Level, f formatter.Formatter, h Handler) *Sink {
	return &Sink{
		name:      name,
		level:     level,
		formatter: f,
		handler:   h,
		stats:     NewStats(),
	}
}

// Name returns the sink name
func (s *Sink) Name() string { return s.name }

// Level returns the sink's own level, NotSet if it follows the logger
func (s *Sink) Level() core.Level { return s.level }

// Formatter returns the sink's formatter
func (s *Sink) Formatter() formatter.Formatter { return s.formatter }

// Handler returns the sink's output medium
func (s *Sink) Handler() Handler { return s.handler }

// Stats returns the sink's counters
func (s *Sink) Stats() *Stats { return s.stats }

// Enabled reports whether the sink accepts an entry at level. fallback is
// the threshold of a NotSet sink.
func (s *Sink) Enabled(level, fallback core.Level) bool {
	threshold := s.level
	if threshold == core.NotSet {
		threshold = fallback
	}
	return threshold.Enabled(level)
}

// emit formats and writes one entry.
func (s *Sink) emit(level core.Level, entry core.Entry) error {
	p, err := s.formatter.Format(entry)
	if err != nil {
		return err
	}
	return s.handler.Handle(level, p)
}
