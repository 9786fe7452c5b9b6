package logger

import (
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/wryte/config"
)

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
	defaultMu     sync.RWMutex
)

// initDefault builds the default logger from the environment. Invalid
// settings fall back to a plain console logger.
func initDefault() {
	l, err := New(Options{})
	if err != nil {
		diag := NewDiagnostics(nil)
		diag.Warn("invalid environment settings, using a console logger", zap.Error(err))
		l, _ = New(Options{Diagnostics: diag, Settings: &config.Settings{}})
	}
	defaultLogger = l
}

// Default returns the default logger
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		if defaultLogger == nil {
			initDefault()
		}
	})

	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs an info message using the default logger
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warning logs a warning message using the default logger
func Warning(msg string, args ...any) {
	Default().Warning(msg, args...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs an error message using the default logger
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// Critical logs a critical message using the default logger
func Critical(msg string, args ...any) {
	Default().Critical(msg, args...)
}

// Event logs an event using the default logger and returns its cid
func Event(msg string, args ...any) string {
	return Default().Event(msg, args...)
}

// Log logs at a runtime level using the default logger
func Log(level, msg string, args ...any) {
	Default().Log(level, msg, args...)
}

// SetLevel changes the level of the default logger
func SetLevel(level string) {
	Default().SetLevel(level)
}

// Bind adds context to the default logger
func Bind(args ...any) {
	Default().Bind(args...)
}
