package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/philipp01105/wryte/core"
)

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	// Pretty indents the document by four spaces
	Pretty bool
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{Pretty: pretty}
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if f.Pretty {
		enc.SetIndent("", "    ")
	}
	// Encode terminates the document with '\n'
	if err := enc.Encode(map[string]any(entry)); err != nil {
		return nil, fmt.Errorf("encode entry: %w", err)
	}

	return detach(buf), nil
}
