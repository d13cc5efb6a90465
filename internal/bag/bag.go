// Package bag implements the portable key-value carrier used to flatten a
// test case to, and reconstruct it from, a form that can cross a process
// boundary. Strings, ints, and string lists round-trip exactly; optional
// fields are represented by the absence of their key, never by a zero value.
package bag

import (
	"fmt"
	"sort"

	"xtp/internal/domain"
)

// Bag holds typed values under string keys.
type Bag struct {
	values map[string]any
}

// New creates an empty bag.
func New() *Bag {
	return &Bag{values: make(map[string]any)}
}

// AddString stores a string value under key.
func (b *Bag) AddString(key, value string) {
	b.values[key] = value
}

// AddInt stores an int value under key.
func (b *Bag) AddInt(key string, value int) {
	b.values[key] = value
}

// AddStrings stores a string list under key.
func (b *Bag) AddStrings(key string, values []string) {
	copied := make([]string, len(values))
	copy(copied, values)
	b.values[key] = copied
}

// Has reports whether key is present.
func (b *Bag) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Keys returns the present keys in sorted order.
func (b *Bag) Keys() []string {
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value is the set of primitive kinds a bag carries.
type Value interface {
	string | int | []string
}

// Get reads a required value. A missing key fails with a MissingFieldError
// naming the key and the owning type; a present key of the wrong kind is a
// caller defect and fails with a plain error.
func Get[T Value](b *Bag, owner, key string) (T, error) {
	var zero T
	v, ok := b.values[key]
	if !ok {
		return zero, &domain.MissingFieldError{Type: owner, Key: key}
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("serialized field %q for %s has kind %T", key, owner, v)
	}
	return t, nil
}

// GetOptional reads an optional value; absence is reported through the
// second return, not an error.
func GetOptional[T Value](b *Bag, key string) (T, bool) {
	var zero T
	v, ok := b.values[key]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
