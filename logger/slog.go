package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/philipp01105/wryte/core"
)

// Trace correlation field names.
const (
	TraceIDKey = "trace_id"
	SpanIDKey  = "span_id"
)

// TraceFields returns the trace and span ids of the active OpenTelemetry
// span in ctx as fields, or nil without one. The result can be passed
// straight to a logging call:
//
//	log.Info("charged", logger.TraceFields(ctx)...)
func TraceFields(ctx context.Context) []any {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []any{
		core.Field{Key: TraceIDKey, Value: sc.TraceID().String()},
		core.Field{Key: SpanIDKey, Value: sc.SpanID().String()},
	}
}

// SlogHandler is an adapter that implements slog.Handler on top of a Logger.
// Records go through the logger's bound context and sinks.
type SlogHandler struct {
	logger *Logger
	attrs  []core.Field
	group  string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Logger.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether any sink of the logger accepts the level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.channel.Enabled(slogLevelToCore(level), s.logger.Level())
}

// Handle converts the record's attributes to fields and emits it. Trace
// ids of an active span in ctx are added as fields.
func (s *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	defer s.logger.recover("slog")

	fields := make([]core.Field, len(s.attrs), len(s.attrs)+record.NumAttrs()+2)
	copy(fields, s.attrs)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, s.group, a)
		return true
	})
	for _, f := range TraceFields(ctx) {
		fields = append(fields, f.(core.Field))
	}

	now := record.Time
	if now.IsZero() {
		now = s.logger.clock()
	}
	level := slogLevelToCore(record.Level)
	s.logger.emit(level, level.String(), record.Message, nil, fields, now)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  newAttrs,
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  s.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level. Levels above
// error map to critical.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level > slog.LevelError:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr flattens a into fields, joining group names with dots.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Value: core.FormatTimestamp(a.Value.Time())})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Value: a.Value.Duration().String()})
	default:
		return append(fields, core.Field{Key: key, Value: a.Value.Any()})
	}
}
