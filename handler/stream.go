package handler

import (
	"io"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/philipp01105/wryte/core"
)

// StreamHandler writes records to an io.Writer
type StreamHandler struct {
	mu     sync.Mutex
	writer io.Writer
	closed bool
}

// NewStreamHandler creates a new stream handler. A nil writer selects
// Stdout.
func NewStreamHandler(w io.Writer) *StreamHandler {
	if w == nil {
		w = Stdout()
	}
	return &StreamHandler{writer: w}
}

// Stdout returns a writer for standard output that understands ANSI
// colors on every platform.
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}

// SupportsColor reports whether w is a terminal. Writers without a file
// descriptor never are.
func SupportsColor(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Terminal reports whether the handler writes to a terminal
func (h *StreamHandler) Terminal() bool {
	return SupportsColor(h.writer)
}

// Handle writes p to the underlying writer
func (h *StreamHandler) Handle(_ core.Level, p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	_, err := h.writer.Write(p)
	return err
}

// Close stops the handler. The writer itself is left open.
func (h *StreamHandler) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}
