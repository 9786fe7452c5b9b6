package handler

import (
	"fmt"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/wryte/core"
)

const megabyte = 1024 * 1024

// RotatingConfig holds configuration for the rotating file handler
type RotatingConfig struct {
	// Filename is the path to the log file
	Filename string
	// MaxBytes is the size that triggers a rotation. lumberjack rotates in
	// whole megabytes, so the value is rounded up to at least 1 MiB.
	MaxBytes int64
	// BackupCount is the number of rotated files to keep (0 = keep all)
	BackupCount int
	// Compress gzips rotated files
	Compress bool
}

// RotatingFileHandler writes records to a file that is rotated when it
// grows past MaxBytes.
type RotatingFileHandler struct {
	mu     sync.Mutex
	out    *lumberjack.Logger
	closed bool
}

// NewRotatingFileHandler creates a new rotating file handler
func NewRotatingFileHandler(cfg RotatingConfig) (*RotatingFileHandler, error) {
	if cfg.Filename == "" {
		return nil, core.NewConfigurationError("new rotating file handler",
			fmt.Errorf("%w: filename is required", core.ErrInvalidSettings))
	}
	if cfg.MaxBytes < 0 || cfg.BackupCount < 0 {
		return nil, core.NewConfigurationError("new rotating file handler",
			fmt.Errorf("%w: max bytes and backup count must not be negative", core.ErrInvalidSettings))
	}

	return &RotatingFileHandler{
		out: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    maxSizeMB(cfg.MaxBytes),
			MaxBackups: cfg.BackupCount,
			LocalTime:  false,
			Compress:   cfg.Compress,
		},
	}, nil
}

// maxSizeMB converts a byte limit to lumberjack's megabyte granularity.
func maxSizeMB(maxBytes int64) int {
	if maxBytes <= 0 {
		return 0 // lumberjack default
	}
	mb := (maxBytes + megabyte - 1) / megabyte
	return int(mb)
}

// Handle appends p to the current file, rotating first if needed
func (h *RotatingFileHandler) Handle(_ core.Level, p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	_, err := h.out.Write(p)
	return err
}

// Rotate forces a rotation
func (h *RotatingFileHandler) Rotate() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	return h.out.Rotate()
}

// Close closes the handler
func (h *RotatingFileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	return h.out.Close()
}
