// Package logger is the public API of wryte. Most users only need to
// import this package.
//
// A Logger enriches every call with its bound context (name, hostname,
// pid, type and whatever was bound) and hands the entry to its sinks.
// Each sink has its own formatter and level; sinks without a level
// follow the logger's level, which SetLevel changes at runtime:
//
//	log, err := logger.New(logger.Options{Name: "api"})
//	log.Info("ready", logger.Int("port", 8080), "region=eu")
//
// Context objects may be maps, JSON object strings or key=value strings.
// Anything else is kept under a "_bad_object_<uuid>" key rather than
// failing the call.
//
// Events are INFO entries with a correlation id:
//
//	cid := log.Event("order placed", logger.String("order", id))
//
// Error, Critical and Log accept a ChangeLevel field that changes the
// level before the entry is emitted:
//
//	log.Error("payment failed", logger.ChangeLevel("debug"))
//
// Logging calls never return errors or panic. Failures are reported on
// the diagnostics logger (zap, warnings on stderr by default).
//
// The package initializes a default Logger on first use. The
// package-level functions Info, Error, Event, etc. delegate to it.
package logger
