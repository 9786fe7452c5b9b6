//go:build !windows && !plan9

package handler

import (
	"fmt"
	"log/syslog"
	"strings"
	"sync"

	"github.com/philipp01105/wryte/core"
)

// SyslogConfig holds configuration for the syslog handler
type SyslogConfig struct {
	// Network is udp, tcp or unix (default: udp)
	Network string
	// Address is host:port for udp and tcp, or a socket path. A udp or
	// tcp address without a port is also taken as a socket path. An empty
	// unix address uses the local syslog daemon.
	Address string
	// Facility is a name from SyslogFacilities (default: LOG_USER)
	Facility string
	// Tag is prepended to every message (default: program name)
	Tag string
}

var syslogFacilities = map[string]syslog.Priority{
	"LOG_KERN":     syslog.LOG_KERN,
	"LOG_USER":     syslog.LOG_USER,
	"LOG_MAIL":     syslog.LOG_MAIL,
	"LOG_DAEMON":   syslog.LOG_DAEMON,
	"LOG_AUTH":     syslog.LOG_AUTH,
	"LOG_SYSLOG":   syslog.LOG_SYSLOG,
	"LOG_LPR":      syslog.LOG_LPR,
	"LOG_NEWS":     syslog.LOG_NEWS,
	"LOG_UUCP":     syslog.LOG_UUCP,
	"LOG_CRON":     syslog.LOG_CRON,
	"LOG_AUTHPRIV": syslog.LOG_AUTHPRIV,
	"LOG_FTP":      syslog.LOG_FTP,
	"LOG_LOCAL0":   syslog.LOG_LOCAL0,
	"LOG_LOCAL1":   syslog.LOG_LOCAL1,
	"LOG_LOCAL2":   syslog.LOG_LOCAL2,
	"LOG_LOCAL3":   syslog.LOG_LOCAL3,
	"LOG_LOCAL4":   syslog.LOG_LOCAL4,
	"LOG_LOCAL5":   syslog.LOG_LOCAL5,
	"LOG_LOCAL6":   syslog.LOG_LOCAL6,
	"LOG_LOCAL7":   syslog.LOG_LOCAL7,
}

// facilityPriority returns the facility part of a syslog priority.
func facilityPriority(name string) (syslog.Priority, error) {
	name, err := facilityName(name)
	if err != nil {
		return 0, err
	}
	return syslogFacilities[name], nil
}

// SyslogHandler sends records to a syslog daemon. The record's level is
// mapped to the syslog severity.
type SyslogHandler struct {
	mu     sync.Mutex
	writer *syslog.Writer
}

// NewSyslogHandler dials the syslog daemon
func NewSyslogHandler(cfg SyslogConfig) (*SyslogHandler, error) {
	if cfg.Network == "" {
		cfg.Network = "udp"
	}
	if cfg.Facility == "" {
		cfg.Facility = "LOG_USER"
	}
	facility, err := facilityPriority(cfg.Facility)
	if err != nil {
		return nil, err
	}

	network, address := strings.ToLower(cfg.Network), cfg.Address
	switch network {
	case "udp", "tcp":
		if address == "" {
			return nil, core.NewConfigurationError("new syslog handler",
				fmt.Errorf("%w: address is required for %s", core.ErrInvalidSettings, network))
		}
		// An address without a port is a local socket path
		if !strings.Contains(address, ":") {
			network = unixNetwork(network)
		}
	case "unix":
		network = ""
		if address != "" {
			network = "unixgram"
		}
	default:
		return nil, core.NewConfigurationError("new syslog handler",
			fmt.Errorf("%w: unknown socket type %q", core.ErrInvalidSettings, cfg.Network))
	}

	w, err := syslog.Dial(network, address, facility|syslog.LOG_INFO, cfg.Tag)
	if err != nil {
		return nil, fmt.Errorf("dial syslog: %w", err)
	}
	return &SyslogHandler{writer: w}, nil
}

// unixNetwork maps a udp or tcp socket type to the unix socket family
// with the same semantics.
func unixNetwork(network string) string {
	if network == "tcp" {
		return "unix"
	}
	return "unixgram"
}

// Handle sends p with the severity matching level
func (h *SyslogHandler) Handle(level core.Level, p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.writer == nil {
		return ErrClosed
	}

	msg := strings.TrimRight(string(p), "\n")
	switch {
	case level >= core.CriticalLevel:
		return h.writer.Crit(msg)
	case level >= core.ErrorLevel:
		return h.writer.Err(msg)
	case level >= core.WarningLevel:
		return h.writer.Warning(msg)
	case level >= core.InfoLevel:
		return h.writer.Info(msg)
	default:
		return h.writer.Debug(msg)
	}
}

// Close closes the connection to the daemon
func (h *SyslogHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.writer == nil {
		return nil
	}
	err := h.writer.Close()
	h.writer = nil
	return err
}
