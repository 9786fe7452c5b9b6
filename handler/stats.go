package handler

import "sync/atomic"

// Stats tracks the outcome of every entry offered to a sink
type Stats struct {
	// ProcessedTotal counts entries that were formatted and written
	ProcessedTotal atomic.Uint64
	// FilteredTotal counts entries below the sink's level. Entries no
	// sink of the channel accepts are dropped before dispatch and are
	// not counted.
	FilteredTotal atomic.Uint64
	// FailedTotal counts entries whose formatting or writing failed
	FailedTotal atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.ProcessedTotal.Add(1)
}

// IncrementFiltered atomically increments the filtered counter
func (s *Stats) IncrementFiltered() {
	s.FilteredTotal.Add(1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	s.FailedTotal.Add(1)
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return s.ProcessedTotal.Load()
}

// GetFiltered returns the filtered count
func (s *Stats) GetFiltered() uint64 {
	return s.FilteredTotal.Load()
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return s.FailedTotal.Load()
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	s.ProcessedTotal.Store(0)
	s.FilteredTotal.Store(0)
	s.FailedTotal.Store(0)
}

// Snapshot returns a snapshot of current stats
type Snapshot struct {
	Processed uint64
	Filtered  uint64
	Failed    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Processed: s.GetProcessed(),
		Filtered:  s.GetFiltered(),
		Failed:    s.GetFailed(),
	}
}
