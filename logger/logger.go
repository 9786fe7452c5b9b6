package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipp01105/wryte/config"
	"github.com/philipp01105/wryte/core"
	"github.com/philipp01105/wryte/handler"
)

// Logger emits enriched entries to the sinks registered under its name.
// All methods are safe for concurrent use.
type Logger struct {
	name     string
	registry *Registry
	channel  *handler.Channel
	diag     *zap.Logger
	clock    func() time.Time
	level    atomic.Int32

	mu   sync.RWMutex
	base core.Fields

	pretty   PrettyMode
	color    bool
	simple   bool
	output   io.Writer
	settings *config.Settings
}

// New creates a Logger. Unless opts.Bare is set, it registers the default
// console (or JSON) sink and every sink enabled in the environment.
func New(opts Options) (*Logger, error) {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Level == "" {
		opts.Level = "info"
	}
	level, err := core.ParseLevel(opts.Level)
	if err != nil {
		return nil, core.NewConfigurationError("new logger", err)
	}
	if opts.Hostname == "" {
		opts.Hostname, _ = os.Hostname()
	}
	if opts.Output == nil {
		opts.Output = handler.Stdout()
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = NewDiagnostics(nil)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry(opts.Diagnostics)
	}
	if opts.MetadataTimeout <= 0 {
		opts.MetadataTimeout = DefaultMetadataTimeout
	}
	if opts.Settings == nil {
		opts.Settings, err = config.Load(opts.Name)
		if err != nil {
			return nil, err
		}
	}

	simple := opts.Simple || opts.Settings.Console.Simple
	l := &Logger{
		name:     opts.Name,
		registry: opts.Registry,
		channel:  opts.Registry.Channel(opts.Name),
		diag:     opts.Diagnostics.With(zap.String("logger", opts.Name)),
		clock:    opts.Clock,
		pretty:   opts.Pretty,
		simple:   simple,
		color:    !opts.NoColor && !simple,
		output:   opts.Output,
		settings: opts.Settings,
		base: core.Fields{
			core.NameKey:     opts.Name,
			core.HostnameKey: opts.Hostname,
			core.PIDKey:      os.Getpid(),
			core.TypeKey:     core.TypeLog,
		},
	}
	l.level.Store(int32(level))

	if opts.EnableEC2 || opts.Settings.EC2Enabled {
		fields, err := fetchMetadata(opts.MetadataURL, opts.MetadataTimeout)
		if err != nil {
			l.diag.Warn("EC2 metadata is enabled but the endpoint is unavailable", zap.Error(err))
		} else {
			l.base.Merge(fields)
		}
	}

	if !opts.Bare {
		if err := l.configureSinks(opts.JSON); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Registry returns the registry holding the logger's sinks
func (l *Logger) Registry() *Registry {
	return l.registry
}

// Level returns the current minimum level of sinks without their own
func (l *Logger) Level() core.Level {
	return core.Level(l.level.Load())
}

// SetLevel changes the minimum level. An unknown level is reported as an
// ERROR entry and the previous level is kept.
func (l *Logger) SetLevel(level string) {
	defer l.recover("set level")
	l.setLevel(level)
}

func (l *Logger) setLevel(level string) {
	lvl, err := core.ParseLevel(level)
	if err != nil {
		l.reportInvalidLevel(level, err)
		return
	}
	l.level.Store(int32(lvl))
}

// applyDirective applies the value of a ChangeLevel field.
func (l *Logger) applyDirective(value any) {
	switch v := value.(type) {
	case string:
		l.setLevel(v)
	case core.Level:
		l.setLevel(v.String())
	default:
		l.setLevel(fmt.Sprint(v))
	}
}

// reportInvalidLevel emits the failure through the logger's own sinks.
func (l *Logger) reportInvalidLevel(level string, err error) {
	msg := "Level must be one of " + strings.Join(core.LevelNames, ", ")
	l.emit(core.ErrorLevel, core.ErrorLevel.String(), msg, nil,
		[]core.Field{{Key: "invalid_level", Value: level}, Err(err)}, l.clock())
}

// Debug logs a debug message. args may mix core.Field values with context
// objects: maps, JSON strings and key=value strings.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(core.DebugLevel, "debug", msg, args, false)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.log(core.InfoLevel, "info", msg, args, false)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, args ...any) {
	l.log(core.WarningLevel, "warning", msg, args, false)
}

// Warn is an alias of Warning
func (l *Logger) Warn(msg string, args ...any) {
	l.log(core.WarningLevel, "warning", msg, args, false)
}

// Error logs an error message. A ChangeLevel field changes the logger's
// level before the message is emitted.
func (l *Logger) Error(msg string, args ...any) {
	l.log(core.ErrorLevel, "error", msg, args, true)
}

// Critical logs a critical message. A ChangeLevel field changes the
// logger's level before the message is emitted.
func (l *Logger) Critical(msg string, args ...any) {
	l.log(core.CriticalLevel, "critical", msg, args, true)
}

// Event logs an INFO entry of type event and returns its correlation id:
// the CID field if given, a new UUID otherwise.
func (l *Logger) Event(msg string, args ...any) string {
	objects, fields, _ := splitArgs(args)

	cid := ""
	for _, f := range fields {
		if f.Key == core.CIDKey {
			cid = fmt.Sprint(f.Value)
		}
	}
	if cid == "" {
		cid = uuid.NewString()
	}
	fields = append(fields,
		core.Field{Key: core.TypeKey, Value: core.TypeEvent},
		core.Field{Key: core.CIDKey, Value: cid})

	func() {
		defer l.recover("event")
		l.emit(core.InfoLevel, "info", msg, objects, fields, l.clock())
	}()
	return cid
}

// Log logs at a level chosen at runtime. A ChangeLevel field is applied
// first; an unknown level is reported and the message is dropped.
func (l *Logger) Log(level string, msg string, args ...any) {
	defer l.recover("log")

	objects, fields, directive := splitArgs(args)
	if directive != nil {
		l.applyDirective(directive)
	}
	lvl, err := core.ParseLevel(level)
	if err != nil {
		l.reportInvalidLevel(level, err)
		return
	}
	l.emit(lvl, level, msg, objects, fields, l.clock())
}

// log is the common path of the fixed-level methods
func (l *Logger) log(level core.Level, name, msg string, args []any, directives bool) {
	defer l.recover(name)

	objects, fields, directive := splitArgs(args)
	if directives && directive != nil {
		l.applyDirective(directive)
	}
	l.emit(level, name, msg, objects, fields, l.clock())
}

// emit enriches and dispatches one entry. Level checks happen before
// the entry is built.
func (l *Logger) emit(level core.Level, name, msg string, objects []any, fields []core.Field, now time.Time) {
	threshold := l.Level()
	if !l.channel.Enabled(level, threshold) {
		return
	}

	l.mu.RLock()
	entry := core.Enrich(l.base, msg, name, objects, fields, now)
	l.mu.RUnlock()

	l.channel.Dispatch(level, threshold, entry)
}

// recover keeps a failing logging call from reaching the caller.
func (l *Logger) recover(op string) {
	if r := recover(); r != nil {
		l.diag.Error("logging call failed", zap.String("op", op), zap.Any("panic", r))
	}
}

// splitArgs separates keyword fields from context objects and extracts
// the level directive, which is never emitted.
func splitArgs(args []any) (objects []any, fields []core.Field, directive any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case core.Field:
			if v.Key == SetLevelKey {
				directive = v.Value
				continue
			}
			fields = append(fields, v)
		case []core.Field:
			for _, f := range v {
				if f.Key == SetLevelKey {
					directive = f.Value
					continue
				}
				fields = append(fields, f)
			}
		default:
			objects = append(objects, arg)
		}
	}
	return objects, fields, directive
}

// Bind adds context to every following entry. args are split like the
// arguments of Info.
func (l *Logger) Bind(args ...any) {
	defer l.recover("bind")

	objects, fields, _ := splitArgs(args)
	normalized := core.Normalize(objects...)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.base.Merge(normalized)
	l.base.Apply(fields)
}

// Unbind removes bound keys. Missing keys are skipped; identity fields
// (name, hostname, pid, type) cannot be removed.
func (l *Logger) Unbind(keys ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range keys {
		if core.IsIdentityKey(key) {
			l.diag.Warn("refusing to unbind identity field", zap.String("key", key))
			continue
		}
		delete(l.base, key)
	}
}

// Context returns a copy of the bound context
func (l *Logger) Context() core.Fields {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.base.Clone()
}

// Close closes every sink registered under the logger's name, including
// sinks shared with other loggers of the same registry.
func (l *Logger) Close() error {
	return l.channel.Close()
}
