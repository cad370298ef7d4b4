package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a sparse update. Its three states are absent (the
// zero value), present-null and present with a value.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns a present Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was present in the input at all.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was present with a null value.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and true only for a present, non-null field.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what marks the field as set.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.value, o.null = zero, true
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.value)
}
