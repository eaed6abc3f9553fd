package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a three-state field: absent from the request entirely,
// explicitly null, or present with a value. Update paths need the
// distinction so "don't touch this field" and "clear this field" stay
// separate operations.
type Optional[T any] struct {
	// Set is true when the field appeared in the request at all.
	Set bool
	// Valid is true when the field carried a non-null value.
	Valid bool
	Value T
}

// Some returns an Optional holding the given value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that is present but explicitly null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Unset returns an Optional for a field omitted from the request.
func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

// Ptr returns the value as a pointer, or nil when unset or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

var jsonNull = []byte("null")

// UnmarshalJSON marks the field as present. A JSON null leaves Valid
// false; any other value is decoded into Value. Omitted keys never
// reach UnmarshalJSON, so Set stays false for them.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON encodes null for unset or null fields.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}
