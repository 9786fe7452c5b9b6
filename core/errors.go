package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLevel indicates a level name outside LevelNames.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrUnknownFormatter indicates a formatter kind other than json or console.
	ErrUnknownFormatter = errors.New("unknown formatter")

	// ErrDuplicateSink indicates a sink name that is already registered.
	ErrDuplicateSink = errors.New("sink already exists")

	// ErrInvalidSettings indicates sink settings that failed validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// ConfigurationError is returned by configuration calls (building a
// logger, adding a sink, loading settings). Emission calls never return it.
type ConfigurationError struct {
	// Op names the configuration call that failed, e.g. "add sink".
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("wryte: %s: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError wraps err for op. A nil err returns nil.
func NewConfigurationError(op string, err error) error {
	if err == nil {
		return nil
	}
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &ConfigurationError{Op: op, Err: err}
}
