package logger

import (
	"maps"
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/wryte/handler"
)

// Registry maps logger names to their sink channels. Loggers built with
// the same Registry and name write to the same sinks.
type Registry struct {
	mu       sync.Mutex
	channels map[string]*handler.Channel
	diag     *zap.Logger
}

// NewRegistry creates an empty registry. Channels it creates report sink
// failures on diag; a nil diag uses NewDiagnostics(nil).
func NewRegistry(diag *zap.Logger) *Registry {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}
	return &Registry{
		channels: make(map[string]*handler.Channel),
		diag:     diag,
	}
}

// Channel returns the channel of name, creating it on first use
func (r *Registry) Channel(name string) *handler.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[name]
	if !ok {
		ch = handler.NewChannel(name, r.diag)
		r.channels[name] = ch
	}
	return ch
}

// Names returns the registered logger names in sorted order
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.channels))
}

// Stats returns the counters of every sink keyed by logger and sink name
func (r *Registry) Stats() map[string]map[string]handler.Snapshot {
	r.mu.Lock()
	channels := maps.Clone(r.channels)
	r.mu.Unlock()

	out := make(map[string]map[string]handler.Snapshot, len(channels))
	for name, ch := range channels {
		out[name] = ch.Stats()
	}
	return out
}

// Close closes every sink of every logger in the registry
func (r *Registry) Close() error {
	r.mu.Lock()
	channels := maps.Clone(r.channels)
	r.mu.Unlock()

	var err error
	for _, name := range slices.Sorted(maps.Keys(channels)) {
		err = multierr.Append(err, channels[name].Close())
	}
	return err
}
