package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/philipp01105/wryte/core"
)

// WatchedFileHandler appends records to a file. Before each write it
// checks whether the path still refers to the open file and reopens it
// if an external rotator moved or removed it.
type WatchedFileHandler struct {
	mu       sync.Mutex
	filename string
	file     *os.File
	info     os.FileInfo
}

// NewWatchedFileHandler creates a new watched file handler. Missing parent
// directories are created.
func NewWatchedFileHandler(filename string) (*WatchedFileHandler, error) {
	if filename == "" {
		return nil, core.NewConfigurationError("new file handler",
			fmt.Errorf("%w: filename is required", core.ErrInvalidSettings))
	}

	h := &WatchedFileHandler{filename: filename}
	if err := h.open(); err != nil {
		return nil, err
	}
	return h, nil
}

// Filename returns the path the handler writes to.
func (h *WatchedFileHandler) Filename() string {
	return h.filename
}

func (h *WatchedFileHandler) open() error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(h.filename), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		return errors.Join(err, file.Close())
	}

	h.file = file
	h.info = info
	return nil
}

// reopenIfNeeded reopens the file when the path no longer points at it
func (h *WatchedFileHandler) reopenIfNeeded() error {
	info, err := os.Stat(h.filename)
	if err == nil && os.SameFile(info, h.info) {
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if h.file != nil {
		// The old descriptor may refer to a deleted file
		_ = h.file.Close()
		h.file = nil
	}
	return h.open()
}

// Handle appends p to the file
func (h *WatchedFileHandler) Handle(_ core.Level, p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.info == nil {
		return ErrClosed
	}
	if err := h.reopenIfNeeded(); err != nil {
		return fmt.Errorf("reopen %s: %w", h.filename, err)
	}

	_, err := h.file.Write(p)
	return err
}

// Close closes the handler
func (h *WatchedFileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A failed reopen leaves info set without a file
	h.info = nil
	if h.file == nil {
		return nil
	}
	err := errors.Join(h.file.Sync(), h.file.Close())
	h.file = nil
	return err
}
