package core

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// BadObjectPrefix prefixes the key under which an unparseable context
// object is preserved.
const BadObjectPrefix = "_bad_object_"

// NewPlaceholderKey is the generator of placeholder keys. Every call
// returns a key that has not been returned before.
var NewPlaceholderKey = func() string {
	return BadObjectPrefix + uuid.NewString()
}

// Normalize merges heterogeneous context objects into one flat Fields
// value, in input order, later keys overwriting earlier ones.
//
//   - maps are merged directly
//   - text is decoded as a JSON object and merged
//   - text that is not a JSON object but contains '=' becomes a single
//     key/value pair, split on the first '='
//   - anything else is kept under a placeholder key
func Normalize(objects ...any) Fields {
	consolidated := make(Fields, len(objects))

	for _, obj := range objects {
		switch v := obj.(type) {
		case Fields:
			consolidated.Merge(v)
		case map[string]any:
			consolidated.Merge(v)
		case Entry:
			consolidated.Merge(v)
		case map[string]string:
			for k, s := range v {
				consolidated[k] = s
			}
		case string:
			normalizeText(consolidated, v, v)
		case []byte:
			normalizeText(consolidated, string(v), string(v))
		case json.RawMessage:
			normalizeText(consolidated, string(v), string(v))
		default:
			consolidated[NewPlaceholderKey()] = obj
		}
	}

	return consolidated
}

// normalizeText merges text into dst. raw is what gets preserved when the
// text fits no supported shape.
func normalizeText(dst Fields, text string, raw any) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(text), &decoded); err == nil && decoded != nil {
		dst.Merge(decoded)
		return
	}

	if key, value, ok := SplitKeyValue(text); ok {
		dst[key] = value
		return
	}

	dst[NewPlaceholderKey()] = raw
}

// SplitKeyValue splits "key=value" on the first '='.
func SplitKeyValue(s string) (key, value string, ok bool) {
	return strings.Cut(s, "=")
}
