package core

import "maps"

// Field is a keyword-style value passed at a call site. Fields take
// precedence over normalized context objects.
type Field struct {
	Key   string
	Value any
}

// Fields is a flat mapping of field names to values.
type Fields map[string]any

// Clone returns a shallow copy of f. The result is never nil.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f)+8)
	maps.Copy(out, f)
	return out
}

// Merge copies src into f, overwriting existing keys.
func (f Fields) Merge(src map[string]any) {
	maps.Copy(f, src)
}

// Apply sets every field in order, so later fields win.
func (f Fields) Apply(fields []Field) {
	for _, field := range fields {
		f[field.Key] = field.Value
	}
}
