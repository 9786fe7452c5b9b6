package logger

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/philipp01105/wryte/config"
	"github.com/philipp01105/wryte/core"
	"github.com/philipp01105/wryte/formatter"
	"github.com/philipp01105/wryte/handler"
)

// Names of the sinks New registers by default.
const (
	ConsoleSinkName = "_console"
	JSONSinkName    = "_json"
)

// SinkOptions configures AddSink
type SinkOptions struct {
	// Name must be unique within the logger (default: a new UUID)
	Name string
	// Formatter selects a built-in formatter (default: json)
	Formatter formatter.Kind
	// Custom replaces the built-in formatter
	Custom formatter.Formatter
	// Level is the sink's own minimum level. Empty follows the logger.
	Level string
}

// AddSink registers h and returns the sink name. An unknown level or
// formatter, or a name already in use, is a *core.ConfigurationError and
// leaves the sinks unchanged.
func (l *Logger) AddSink(h handler.Handler, opts SinkOptions) (string, error) {
	if h == nil {
		return "", core.NewConfigurationError("add sink",
			fmt.Errorf("%w: handler is required", core.ErrInvalidSettings))
	}
	if opts.Name == "" {
		opts.Name = uuid.NewString()
	}

	level := core.NotSet
	if opts.Level != "" {
		var err error
		if level, err = core.ParseLevel(opts.Level); err != nil {
			return "", core.NewConfigurationError("add sink", err)
		}
	}

	f := opts.Custom
	if f == nil {
		if opts.Formatter == "" {
			opts.Formatter = formatter.JSON
		}
		var err error
		if f, err = l.newFormatter(opts.Formatter, l.colorFor(h)); err != nil {
			return "", err
		}
	}

	if err := l.channel.Add(handler.NewSink(opts.Name, level, f, h)); err != nil {
		return "", err
	}
	return opts.Name, nil
}

// newFormatter builds a built-in formatter with the logger's rendering
// switches.
func (l *Logger) newFormatter(kind formatter.Kind, color bool) (formatter.Formatter, error) {
	pretty := l.pretty.console()
	if kind == formatter.JSON {
		pretty = l.pretty.json()
	}
	return formatter.New(kind, formatter.Options{
		Pretty: pretty,
		Color:  color,
		Simple: l.simple,
	})
}

// terminal is implemented by handlers that can tell whether they write
// to a terminal.
type terminal interface {
	Terminal() bool
}

// colorFor reports whether records for h are colored. Only handlers
// writing to a terminal qualify.
func (l *Logger) colorFor(h handler.Handler) bool {
	t, ok := h.(terminal)
	return l.color && ok && t.Terminal()
}

// RemoveSink closes and removes the named sink. Unknown names are ignored.
func (l *Logger) RemoveSink(name string) {
	l.channel.Remove(name)
}

// ListSinks returns the sink names in the order they were added
func (l *Logger) ListSinks() []string {
	return l.channel.Names()
}

// Stats returns the counters of the logger's sinks keyed by sink name
func (l *Logger) Stats() map[string]handler.Snapshot {
	return l.channel.Stats()
}

// AddDefaultConsoleSink registers the "_console" sink writing human
// readable lines to the logger's output. An empty level follows the
// logger.
func (l *Logger) AddDefaultConsoleSink(level string) (string, error) {
	return l.AddSink(handler.NewStreamHandler(l.output), SinkOptions{
		Name:      ConsoleSinkName,
		Formatter: formatter.Console,
		Level:     level,
	})
}

// AddDefaultJSONSink registers the "_json" sink writing JSON documents to
// the logger's output. An empty level follows the logger.
func (l *Logger) AddDefaultJSONSink(level string) (string, error) {
	return l.AddSink(handler.NewStreamHandler(l.output), SinkOptions{
		Name:      JSONSinkName,
		Formatter: formatter.JSON,
		Level:     level,
	})
}

// configureSinks registers the default and environment sinks. Sinks that
// another logger of the same name already registered are kept as they are.
func (l *Logger) configureSinks(jsonify bool) (err error) {
	s := l.settings
	var added []string
	defer func() {
		if err != nil {
			for _, name := range added {
				l.channel.Remove(name)
			}
		}
	}()

	add := func(name string, build func() (string, error)) error {
		if l.channel.Has(name) {
			return nil
		}
		n, err := build()
		if err != nil {
			return err
		}
		added = append(added, n)
		return nil
	}

	if !s.Console.Disabled {
		if jsonify || s.Console.JSONify {
			err = add(JSONSinkName, func() (string, error) { return l.AddDefaultJSONSink(s.Console.Level) })
		} else {
			err = add(ConsoleSinkName, func() (string, error) { return l.AddDefaultConsoleSink(s.Console.Level) })
		}
		if err != nil {
			return err
		}
	}

	if h := s.Handlers.Syslog; h.Enabled {
		if err = add(h.Name, func() (string, error) { return l.AddSyslogSink(h) }); err != nil {
			return err
		}
	}
	if h := s.Handlers.Logzio; h.Enabled {
		if err = add(h.Name, func() (string, error) { return l.AddLogzioSink(h) }); err != nil {
			return err
		}
	}
	if h := s.Handlers.File; h.Enabled {
		if err = add(h.Name, func() (string, error) { return l.AddFileSink(h) }); err != nil {
			return err
		}
	}
	if h := s.Handlers.Elasticsearch; h.Enabled {
		if err = add(h.Name, func() (string, error) { return l.AddElasticsearchSink(h) }); err != nil {
			return err
		}
	}
	return nil
}

// addConfigured registers a handler built from settings, closing it if
// the sink cannot be added.
func (l *Logger) addConfigured(h handler.Handler, s config.SinkSettings) (string, error) {
	name, err := l.AddSink(h, SinkOptions{
		Name:      s.Name,
		Formatter: formatter.Kind(s.Formatter),
		Level:     s.Level,
	})
	if err != nil {
		return "", multierr.Append(err, h.Close())
	}
	return name, nil
}

// AddFileSink registers a file sink. With Rotate set the file is rotated
// by size; otherwise it is reopened when an external rotator moves it.
func (l *Logger) AddFileSink(s config.FileSettings) (string, error) {
	var (
		h   handler.Handler
		err error
	)
	if s.Rotate {
		h, err = handler.NewRotatingFileHandler(handler.RotatingConfig{
			Filename:    s.Path,
			MaxBytes:    s.MaxBytes,
			BackupCount: s.BackupCount,
			Compress:    s.Compress,
		})
	} else {
		h, err = handler.NewWatchedFileHandler(s.Path)
	}
	if err != nil {
		return "", core.NewConfigurationError("add file sink", err)
	}
	return l.addConfigured(h, s.SinkSettings)
}

// AddSyslogSink registers a syslog sink
func (l *Logger) AddSyslogSink(s config.SyslogSettings) (string, error) {
	h, err := handler.NewSyslogHandler(handler.SyslogConfig{
		Network:  s.SocketType,
		Address:  s.Host,
		Facility: s.Facility,
		Tag:      l.name,
	})
	if err != nil {
		return "", core.NewConfigurationError("add syslog sink", err)
	}
	return l.addConfigured(h, s.SinkSettings)
}

// AddLogzioSink registers a logz.io sink
func (l *Logger) AddLogzioSink(s config.LogzioSettings) (string, error) {
	h, err := handler.NewLogzioHandler(s.URL, s.Token, l.name)
	if err != nil {
		return "", core.NewConfigurationError("add logzio sink", err)
	}
	return l.addConfigured(h, s.SinkSettings)
}

// AddElasticsearchSink registers an Elasticsearch sink
func (l *Logger) AddElasticsearchSink(s config.ElasticsearchSettings) (string, error) {
	h, err := handler.NewElasticsearchHandler(s.Host, s.Index)
	if err != nil {
		return "", core.NewConfigurationError("add elasticsearch sink", err)
	}
	return l.addConfigured(h, s.SinkSettings)
}
