package handler

import (
	"errors"

	"github.com/philipp01105/wryte/core"
)

// ErrClosed is returned by Handle after Close.
var ErrClosed = errors.New("handler closed")

// Handler defines the interface for output mediums. A Handler receives
// records that are already formatted.
type Handler interface {
	// Handle writes one formatted record. level is the record's priority
	// for mediums that carry it out of band (syslog).
	Handle(level core.Level, p []byte) error

	// Close closes the handler and releases resources
	Close() error
}
