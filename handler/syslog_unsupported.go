//go:build windows || plan9

package handler

import (
	"errors"

	"github.com/philipp01105/wryte/core"
)

// SyslogConfig holds configuration for the syslog handler
type SyslogConfig struct {
	Network  string
	Address  string
	Facility string
	Tag      string
}

// SyslogHandler is not available on this platform.
type SyslogHandler struct{}

// NewSyslogHandler always fails on this platform.
func NewSyslogHandler(cfg SyslogConfig) (*SyslogHandler, error) {
	if cfg.Facility != "" {
		if _, err := facilityName(cfg.Facility); err != nil {
			return nil, err
		}
	}
	return nil, errors.New("syslog is not supported on this platform")
}

func (h *SyslogHandler) Handle(core.Level, []byte) error { return ErrClosed }

func (h *SyslogHandler) Close() error { return nil }
