// Package patch provides the optional field type used by merge-patch
// update requests.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field records whether a JSON key was present and whether it was null.
// A missing key leaves Set false, so the stored value must not change.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Value builds a set, non-null field. Handy in tests and internal callers.
func Value[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

// Clear builds a field that was sent as JSON null.
func Clear[T any]() Field[T] { return Field[T]{Set: true, Null: true} }

// Apply overwrites dst when the field was sent with a value.
func (f Field[T]) Apply(dst *T) {
	if f.Set && !f.Null {
		*dst = f.Value
	}
}

// ApplyNullable overwrites dst when the field was sent, clearing it on null.
func (f Field[T]) ApplyNullable(dst **T) {
	if !f.Set {
		return
	}
	if f.Null {
		*dst = nil
		return
	}
	v := f.Value
	*dst = &v
}
