package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/wryte/config"
	"github.com/philipp01105/wryte/core"
	"github.com/philipp01105/wryte/formatter"
	"github.com/philipp01105/wryte/handler"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 123456000, time.UTC)

const fixedTimestamp = "2026-01-02T03:04:05.123456Z"

func newTestLogger(t *testing.T, opts Options) (*Logger, *bytes.Buffer, *observer.ObservedLogs) {
	t.Helper()

	buf := &bytes.Buffer{}
	obs, logs := observer.New(zapcore.DebugLevel)
	if opts.Output == nil {
		opts.Output = buf
	}
	if opts.Settings == nil {
		opts.Settings = &config.Settings{}
	}
	if opts.Hostname == "" {
		opts.Hostname = "test-host"
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return fixedTime }
	}
	opts.Diagnostics = zap.New(obs)

	l, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, buf, logs
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), "line: %s", sc.Text())
		out = append(out, m)
	}
	return out
}

func TestScenario_LevelFiltering(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Name: "svc", JSON: true})

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Info("shown", map[string]any{"a": 1})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(1), entry["a"])
	assert.Equal(t, fixedTimestamp, entry["timestamp"])
	assert.Equal(t, "svc", entry["name"])
	assert.Equal(t, "test-host", entry["hostname"])
	assert.Equal(t, float64(os.Getpid()), entry["pid"])
	assert.Equal(t, "log", entry["type"])
}

func TestConsoleOutput(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Name: "svc"})

	l.Info("shown", map[string]any{"a": 1}, "b=two")

	assert.Equal(t, fixedTimestamp+" - svc - INFO - shown\n  a=1\n  b=two\n", buf.String())
	assert.Equal(t, []string{ConsoleSinkName}, l.ListSinks())
}

func TestConsoleOutput_Ugly(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Name: "svc", Pretty: PrettyOff})

	l.Warning("careful", String("k", "v"))

	assert.Equal(t, fixedTimestamp+" - svc - WARNING - careful\n{\n    \"k\": \"v\"\n}\n", buf.String())
}

func TestConsoleOutput_Simple(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Simple: true})

	l.Info("just this", String("k", "v"))

	assert.Equal(t, "just this\n", buf.String())
}

func TestJSONOutput_Pretty(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true, Pretty: PrettyOn})

	l.Info("indented")

	assert.Contains(t, buf.String(), "\n    \"message\": \"indented\"")
	assert.Equal(t, []string{JSONSinkName}, l.ListSinks())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud", Settings: &config.Settings{}})

	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, core.ErrInvalidLevel)
}

func TestNew_Bare(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Bare: true})

	l.Critical("nowhere")

	assert.Empty(t, l.ListSinks())
	assert.Empty(t, buf.String())
}

func TestBindUnbind(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true})

	l.Bind(map[string]any{"k": "v"}, `{"j": 2}`, String("f", "x"))
	l.Info("bound")
	l.Unbind("k", "missing")
	l.Info("unbound")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "v", lines[0]["k"])
	assert.Equal(t, float64(2), lines[0]["j"])
	assert.Equal(t, "x", lines[0]["f"])
	assert.NotContains(t, lines[1], "k")
	assert.Equal(t, "x", lines[1]["f"])
}

func TestUnbind_IdentityRefused(t *testing.T) {
	l, buf, logs := newTestLogger(t, Options{JSON: true})

	l.Unbind("name", "hostname", "pid", "type")
	l.Info("still identified")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	for _, key := range core.IdentityKeys {
		assert.Contains(t, lines[0], key)
	}
	assert.Equal(t, 4, logs.FilterMessage("refusing to unbind identity field").Len())
}

func TestContext_IsCopy(t *testing.T) {
	l, _, _ := newTestLogger(t, Options{Bare: true})

	ctx := l.Context()
	ctx["injected"] = true

	assert.NotContains(t, l.Context(), "injected")
	assert.Equal(t, DefaultName, l.Context()[core.NameKey])
}

func TestEvent(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true})

	first := l.Event("E")
	second := l.Event("E")
	fixed := l.Event("E", CID("fixed"))

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "fixed", fixed)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "event", lines[0]["type"])
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, first, lines[0]["cid"])
	assert.Equal(t, "fixed", lines[2]["cid"])
}

func TestEvent_ConsoleLabel(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Name: "svc"})

	cid := l.Event("deployed")

	assert.Equal(t, fixedTimestamp+" - svc - EVENT - deployed\n  cid="+cid+"\n", buf.String())
}

func TestEvent_Filtered(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Level: "error"})

	cid := l.Event("quiet")

	assert.NotEmpty(t, cid)
	assert.Empty(t, buf.String())
}

func TestChangeLevel(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Simple: true})

	l.Debug("before")
	l.Error("switch", ChangeLevel("debug"))
	l.Debug("after")

	assert.Equal(t, "switch\nafter\n", buf.String())
	assert.Equal(t, core.DebugLevel, l.Level())
}

func TestChangeLevel_Critical(t *testing.T) {
	l, _, _ := newTestLogger(t, Options{Bare: true})

	l.Critical("switch", ChangeLevel("warning"))

	assert.Equal(t, core.WarningLevel, l.Level())
}

func TestChangeLevel_StrippedEverywhere(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true})

	l.Info("ignored", ChangeLevel("debug"))
	l.Error("applied", ChangeLevel("debug"))

	assert.Equal(t, core.DebugLevel, l.Level())
	for _, line := range decodeLines(t, buf) {
		assert.NotContains(t, line, SetLevelKey)
	}
}

func TestChangeLevel_InfoDoesNotApply(t *testing.T) {
	l, _, _ := newTestLogger(t, Options{Bare: true})

	l.Info("ignored", ChangeLevel("debug"))
	l.Warning("ignored", ChangeLevel("debug"))

	assert.Equal(t, core.InfoLevel, l.Level())
}

func TestSetLevel_Invalid(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true, Level: "warning"})

	assert.NotPanics(t, func() { l.SetLevel("loud") })
	assert.Equal(t, core.WarningLevel, l.Level())

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "loud", lines[0]["invalid_level"])
	assert.Contains(t, lines[0]["message"], "Level must be one of")
}

func TestSetLevel(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Simple: true})

	l.SetLevel("ERROR")
	l.Warning("hidden")
	l.Error("shown")
	l.SetLevel("warn")
	l.Warn("shown too")

	assert.Equal(t, "shown\nshown too\n", buf.String())
}

func TestLog(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true})

	l.Log("warning", "w")
	l.Log("debug", "hidden")
	l.Log("event", "e")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "WARNING", lines[0]["level"])
	assert.Equal(t, "EVENT", lines[1]["level"])
}

func TestLog_InvalidLevel(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true})

	l.Log("loud", "dropped", ChangeLevel("error"))

	assert.Equal(t, core.ErrorLevel, l.Level())
	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "loud", lines[0]["invalid_level"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestLog_Directive(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Simple: true})

	l.Log("info", "switch", ChangeLevel("debug"))
	l.Debug("visible")

	assert.Equal(t, "switch\nvisible\n", buf.String())
}

func TestPlaceholderKey(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true})

	l.Info("odd", 42, "no separator")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)

	placeholder := regexp.MustCompile(`^_bad_object_[0-9a-f-]{36}$`)
	var values []any
	for k, v := range lines[0] {
		if placeholder.MatchString(k) {
			values = append(values, v)
		}
	}
	assert.ElementsMatch(t, []any{float64(42), "no separator"}, values)
}

func TestAddSink(t *testing.T) {
	l, _, _ := newTestLogger(t, Options{Bare: true})
	var buf bytes.Buffer

	name, err := l.AddSink(handler.NewStreamHandler(&buf), SinkOptions{})
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f-]{36}$`, name)

	named, err := l.AddSink(handler.NewStreamHandler(&buf), SinkOptions{Name: "audit", Formatter: formatter.Console, Level: "error"})
	require.NoError(t, err)
	assert.Equal(t, "audit", named)

	assert.Equal(t, []string{name, "audit"}, l.ListSinks())
}

func TestAddSink_Errors(t *testing.T) {
	l, _, _ := newTestLogger(t, Options{Bare: true})
	var buf bytes.Buffer
	_, err := l.AddSink(handler.NewStreamHandler(&buf), SinkOptions{Name: "taken"})
	require.NoError(t, err)

	tests := []struct {
		name string
		opts SinkOptions
		want error
	}{
		{"duplicate", SinkOptions{Name: "taken"}, core.ErrDuplicateSink},
		{"formatter", SinkOptions{Name: "x", Formatter: "xml"}, core.ErrUnknownFormatter},
		{"level", SinkOptions{Name: "y", Level: "loud"}, core.ErrInvalidLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.AddSink(handler.NewStreamHandler(&buf), tt.opts)

			var cfgErr *core.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, []string{"taken"}, l.ListSinks())
		})
	}

	_, err = l.AddSink(nil, SinkOptions{})
	assert.ErrorIs(t, err, core.ErrInvalidSettings)
}

// ttyHandler is a stream handler that claims to write to a terminal
type ttyHandler struct {
	*handler.StreamHandler
}

func (ttyHandler) Terminal() bool { return true }

func TestAddSink_ColorOnlyForTerminals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, _, _ := newTestLogger(t, Options{Name: "svc", Bare: true})
	require.True(t, l.color, "colors are allowed unless disabled")

	fh, err := handler.NewWatchedFileHandler(path)
	require.NoError(t, err)
	_, err = l.AddSink(fh, SinkOptions{Name: "file", Formatter: formatter.Console})
	require.NoError(t, err)

	var tty bytes.Buffer
	_, err = l.AddSink(ttyHandler{handler.NewStreamHandler(&tty)}, SinkOptions{Name: "tty", Formatter: formatter.Console})
	require.NoError(t, err)

	l.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixedTimestamp+" - svc - INFO - hello\n", string(data))
	assert.NotContains(t, string(data), "\x1b[")
	assert.Contains(t, tty.String(), "\x1b[")
}

func TestAddSink_NoColor(t *testing.T) {
	var tty bytes.Buffer
	l, _, _ := newTestLogger(t, Options{Name: "svc", Bare: true, NoColor: true})

	_, err := l.AddSink(ttyHandler{handler.NewStreamHandler(&tty)}, SinkOptions{Formatter: formatter.Console})
	require.NoError(t, err)
	l.Info("hello")

	assert.Equal(t, fixedTimestamp+" - svc - INFO - hello\n", tty.String())
}

func TestAddSink_CustomFormatter(t *testing.T) {
	l, _, _ := newTestLogger(t, Options{Bare: true})
	var buf bytes.Buffer

	_, err := l.AddSink(handler.NewStreamHandler(&buf), SinkOptions{
		Formatter: "xml",
		Custom:    formatter.NewConsoleFormatter(formatter.Options{Simple: true}),
	})
	require.NoError(t, err)

	l.Info("custom")
	assert.Equal(t, "custom\n", buf.String())
}

func TestRemoveSink(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{Simple: true})

	l.RemoveSink("missing")
	assert.Equal(t, []string{ConsoleSinkName}, l.ListSinks())

	l.RemoveSink(ConsoleSinkName)
	l.Info("gone")

	assert.Empty(t, l.ListSinks())
	assert.Empty(t, buf.String())
}

func TestPerSinkLevels(t *testing.T) {
	l, console, _ := newTestLogger(t, Options{Simple: true})
	var debug, errs bytes.Buffer
	simple := formatter.NewConsoleFormatter(formatter.Options{Simple: true})

	_, err := l.AddSink(handler.NewStreamHandler(&debug), SinkOptions{Name: "debug", Custom: simple, Level: "debug"})
	require.NoError(t, err)
	_, err = l.AddSink(handler.NewStreamHandler(&errs), SinkOptions{Name: "errors", Custom: simple, Level: "error"})
	require.NoError(t, err)

	l.Debug("d")
	l.Info("i")
	l.Error("e")

	assert.Equal(t, "i\ne\n", console.String())
	assert.Equal(t, "d\ni\ne\n", debug.String())
	assert.Equal(t, "e\n", errs.String())

	stats := l.Stats()
	assert.Equal(t, handler.Snapshot{Processed: 2, Filtered: 1}, stats[ConsoleSinkName])
	assert.Equal(t, handler.Snapshot{Processed: 1, Filtered: 2}, stats["errors"])
}

func TestLevelFieldReflectsRequest(t *testing.T) {
	l, _, _ := newTestLogger(t, Options{Bare: true})
	var buf bytes.Buffer
	_, err := l.AddSink(handler.NewStreamHandler(&buf), SinkOptions{Level: "debug"})
	require.NoError(t, err)

	l.Debug("below logger level")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "DEBUG", lines[0]["level"])
}

// panicHandler panics on every write
type panicHandler struct{}

func (panicHandler) Handle(core.Level, []byte) error { panic("broken sink") }
func (panicHandler) Close() error                    { return nil }

func TestEmission_NeverPanics(t *testing.T) {
	l, buf, logs := newTestLogger(t, Options{Simple: true})
	_, err := l.AddSink(panicHandler{}, SinkOptions{Name: "broken"})
	require.NoError(t, err)

	assert.NotPanics(t, func() { l.Info("survives") })
	assert.NotPanics(t, func() { l.Event("survives") })

	assert.Equal(t, "survives\nsurvives\n", buf.String())
	assert.Equal(t, 2, logs.FilterMessage("sink write failed").Len())
	assert.Equal(t, uint64(2), l.Stats()["broken"].Failed)
}

func TestSharedRegistry(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var buf bytes.Buffer

	a, _, _ := newTestLogger(t, Options{Name: "shared", Registry: reg, Output: &buf, Simple: true})
	b, _, _ := newTestLogger(t, Options{Name: "shared", Registry: reg, Output: &buf, Simple: true})
	other, _, _ := newTestLogger(t, Options{Name: "other", Registry: reg, Output: &buf, Simple: true, Bare: true})

	assert.Equal(t, []string{ConsoleSinkName}, a.ListSinks())

	_, err := a.AddSink(handler.NewStreamHandler(&buf), SinkOptions{Name: "extra", Custom: formatter.NewConsoleFormatter(formatter.Options{Simple: true})})
	require.NoError(t, err)
	assert.Equal(t, []string{ConsoleSinkName, "extra"}, b.ListSinks())
	assert.Empty(t, other.ListSinks())

	b.Info("once per sink")
	assert.Equal(t, "once per sink\nonce per sink\n", buf.String())

	assert.Equal(t, []string{"other", "shared"}, reg.Names())
	assert.Len(t, reg.Stats()["shared"], 2)
	require.NoError(t, reg.Close())
	assert.Empty(t, a.ListSinks())
}

func TestEnvironmentSinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	settings := &config.Settings{}
	settings.Handlers.File = config.FileSettings{
		SinkSettings: config.SinkSettings{Enabled: true, Name: "file", Level: "info", Formatter: "json"},
		Path:         path,
	}

	l, _, _ := newTestLogger(t, Options{Name: "svc", Settings: settings})
	assert.Equal(t, []string{ConsoleSinkName, "file"}, l.ListSinks())

	l.SetLevel("debug")
	l.Debug("console only")
	l.Info("both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "console only")
	assert.Contains(t, string(data), `"message":"both"`)
}

func TestEnvironmentSinks_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	settings := &config.Settings{}
	settings.Handlers.File = config.FileSettings{
		SinkSettings: config.SinkSettings{Enabled: true, Name: "rotating", Level: "info", Formatter: "console"},
		Path:         path,
		Rotate:       true,
		MaxBytes:     config.DefaultMaxBytes,
		BackupCount:  config.DefaultBackupCount,
	}

	l, _, _ := newTestLogger(t, Options{Name: "svc", Settings: settings})
	l.Info("rotated")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), " - svc - INFO - rotated")
}

func TestEnvironmentSinks_Invalid(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	settings := &config.Settings{}
	settings.Handlers.Elasticsearch = config.ElasticsearchSettings{
		SinkSettings: config.SinkSettings{Enabled: true, Name: "es", Level: "info", Formatter: "json"},
	}

	_, err := New(Options{Name: "svc", Registry: reg, Settings: settings, Output: &bytes.Buffer{}})

	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, core.ErrInvalidSettings)
	assert.Empty(t, reg.Channel("svc").Names(), "sinks added before the failure are removed")
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("WRYTE_ENV_TEST_CONSOLE_JSONIFY", "true")
	t.Setenv("WRYTE_ENV_TEST_CONSOLE_LEVEL", "error")

	var buf bytes.Buffer
	l, err := New(Options{Name: "env-test", Output: &buf, Diagnostics: zap.NewNop()})
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, []string{JSONSinkName}, l.ListSinks())
	l.Warning("below console level")
	l.Error("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestEnvironmentVariables_Invalid(t *testing.T) {
	t.Setenv("WRYTE_BROKEN_CONSOLE_LEVEL", "loud")

	_, err := New(Options{Name: "broken", Output: &bytes.Buffer{}, Diagnostics: zap.NewNop()})
	assert.ErrorIs(t, err, core.ErrInvalidSettings)
}

func TestConcurrentUse(t *testing.T) {
	l, buf, _ := newTestLogger(t, Options{JSON: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Bind(Int("worker", j))
				l.Info("tick", String("k", "v"))
				l.Unbind("worker")
			}
		}()
	}
	wg.Wait()

	assert.Len(t, decodeLines(t, buf), 400)
}

func TestBuilder(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewBuilder().
		WithName("built").
		WithHostname("h").
		WithLevel("debug").
		WithSimple(true).
		WithColor(false).
		WithOutput(&buf).
		WithDiagnostics(zap.NewNop()).
		WithSettings(&config.Settings{}).
		Build()
	require.NoError(t, err)
	defer l.Close()

	l.Debug("from builder")

	assert.Equal(t, "built", l.Name())
	assert.Equal(t, "from builder\n", buf.String())
}

func TestDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	l, buf, _ := newTestLogger(t, Options{Simple: true})
	SetDefault(l)

	Info("package level")
	cid := Event("package event", CID("abc"))
	Log("nope", "dropped")

	assert.Equal(t, "abc", cid)
	assert.True(t, strings.HasPrefix(buf.String(), "package level\npackage event\n"))
	assert.Same(t, l, Default())
}

func TestFields(t *testing.T) {
	tests := []struct {
		field core.Field
		key   string
		value any
	}{
		{String("s", "v"), "s", "v"},
		{Int("i", 1), "i", 1},
		{Int64("i64", 2), "i64", int64(2)},
		{Float64("f", 1.5), "f", 1.5},
		{Bool("b", true), "b", true},
		{Time("t", fixedTime), "t", fixedTimestamp},
		{Duration("d", 1500*time.Millisecond), "d", "1.5s"},
		{Err(errors.New("boom")), "error", "boom"},
		{Err(nil), "error", nil},
		{Any("a", []int{1}), "a", []int{1}},
		{CID("c"), "cid", "c"},
		{ChangeLevel("debug"), SetLevelKey, "debug"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.field.Key)
		assert.Equal(t, tt.value, tt.field.Value)
	}
}
