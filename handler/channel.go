package handler

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/wryte/core"
)

// Channel holds the sinks of one logger name and routes entries to them.
// Loggers sharing a name share its Channel.
type Channel struct {
	name string
	diag *zap.Logger

	mu    sync.RWMutex
	sinks []*Sink
}

// NewChannel creates an empty channel. Format and write failures are
// reported on diag; a nil diag discards them.
func NewChannel(name string, diag *zap.Logger) *Channel {
	if diag == nil {
		diag = zap.NewNop()
	}
	return &Channel{
		name: name,
		diag: diag.With(zap.String("logger", name)),
	}
}

// Name returns the logger name the channel belongs to
func (c *Channel) Name() string {
	return c.name
}

// Add registers a sink. A duplicate name leaves the channel unchanged.
func (c *Channel) Add(s *Sink) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexLocked(s.name) >= 0 {
		return core.NewConfigurationError("add sink",
			fmt.Errorf("%w: %q", core.ErrDuplicateSink, s.name))
	}
	c.sinks = append(c.sinks, s)
	return nil
}

// Remove closes and removes the named sink. It reports whether the sink
// existed; removing an unknown name does nothing.
func (c *Channel) Remove(name string) bool {
	c.mu.Lock()
	i := c.indexLocked(name)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	s := c.sinks[i]
	c.sinks = slices.Delete(c.sinks, i, i+1)
	c.mu.Unlock()

	if err := s.handler.Close(); err != nil {
		c.diag.Warn("closing removed sink failed", zap.String("sink", name), zap.Error(err))
	}
	return true
}

func (c *Channel) indexLocked(name string) int {
	return slices.IndexFunc(c.sinks, func(s *Sink) bool { return s.name == name })
}

// Has reports whether a sink with the given name is registered
func (c *Channel) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexLocked(name) >= 0
}

// Names returns the sink names in insertion order
func (c *Channel) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.sinks))
	for i, s := range c.sinks {
		names[i] = s.name
	}
	return names
}

// Len returns the number of sinks
func (c *Channel) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sinks)
}

// Enabled reports whether any sink would accept an entry at level
func (c *Channel) Enabled(level, fallback core.Level) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.sinks {
		if s.Enabled(level, fallback) {
			return true
		}
	}
	return false
}

// Dispatch offers entry to every sink. Each sink applies its own level;
// NotSet sinks use fallback. Failures are counted and reported on the
// diagnostics logger, never returned.
func (c *Channel) Dispatch(level, fallback core.Level, entry core.Entry) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.sinks {
		if !s.Enabled(level, fallback) {
			s.stats.IncrementFiltered()
			continue
		}
		if err := c.emit(s, level, entry); err != nil {
			s.stats.IncrementFailed()
			c.diag.Warn("sink write failed",
				zap.String("sink", s.name),
				zap.String("level", level.String()),
				zap.Error(err))
			continue
		}
		s.stats.IncrementProcessed()
	}
}

// emit isolates a panicking formatter or handler from the other sinks.
func (c *Channel) emit(s *Sink, level core.Level, entry core.Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.emit(level, entry)
}

// Stats returns a snapshot of every sink's counters keyed by sink name
func (c *Channel) Stats() map[string]Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Snapshot, len(c.sinks))
	for _, s := range c.sinks {
		out[s.name] = s.stats.GetSnapshot()
	}
	return out
}

// Close closes and removes all sinks
func (c *Channel) Close() error {
	c.mu.Lock()
	sinks := c.sinks
	c.sinks = nil
	c.mu.Unlock()

	var err error
	for _, s := range sinks {
		if closeErr := s.handler.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close sink %q: %w", s.name, closeErr))
		}
	}
	return err
}
