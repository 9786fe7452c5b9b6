package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/philipp01105/wryte/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes, terminated by a newline
	Format(entry core.Entry) ([]byte, error)
}

// Kind names a built-in formatter.
type Kind string

const (
	// JSON selects JSONFormatter.
	JSON Kind = "json"
	// Console selects ConsoleFormatter.
	Console Kind = "console"
)

// Kinds lists the built-in formatter kinds.
var Kinds = []string{string(JSON), string(Console)}

// Options holds the rendering switches shared by the built-in formatters.
// JSONFormatter only honours Pretty.
type Options struct {
	// Pretty indents JSON output, or prints console fields as key=value lines
	Pretty bool
	// Color enables ANSI colors in console output
	Color bool
	// Simple prints only the message in console output
	Simple bool
}

// New creates a built-in formatter by kind.
func New(kind Kind, opts Options) (Formatter, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case JSON:
		return NewJSONFormatter(opts.Pretty), nil
	case Console:
		return NewConsoleFormatter(opts), nil
	default:
		return nil, core.NewConfigurationError("new formatter",
			fmt.Errorf("%w %q: must be one of %s", core.ErrUnknownFormatter, kind, strings.Join(Kinds, ", ")))
	}
}

// ValidKind reports whether kind names a built-in formatter.
func ValidKind(kind string) bool {
	switch Kind(strings.ToLower(kind)) {
	case JSON, Console:
		return true
	}
	return false
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// detach copies the buffer content so the buffer can go back to the pool.
func detach(buf *bytes.Buffer) []byte {
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}
