// Package traits implements the classification-tag model: an ordered
// case-insensitive multimap of trait names to values, the discoverer
// registry that extracts pairs from annotations, and the memoized
// aggregation of assembly-, method-, and class-level trait sources.
package traits

import "strings"

// KeyValue is one (name, value) pair yielded by a discoverer.
type KeyValue struct {
	Name  string
	Value string
}

// Map is an ordered multimap from case-insensitive trait name to values.
// A name may accumulate several values; values are never overwritten and
// exact duplicates are preserved.
type Map struct {
	order  []string            // first-seen casing, insertion order
	values map[string][]string // lowercased name → values
}

// NewMap creates an empty trait map.
func NewMap() *Map {
	return &Map{values: make(map[string][]string)}
}

// Add appends value under name. Names added with differing casing merge
// under one key; the first-seen casing is kept for listing.
func (m *Map) Add(name, value string) {
	key := strings.ToLower(name)
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, name)
	}
	m.values[key] = append(m.values[key], value)
}

// Get returns the values recorded under name, in insertion order. Absence of
// a name means no classification under it.
func (m *Map) Get(name string) []string {
	return m.values[strings.ToLower(name)]
}

// Names returns the trait names in first-insertion order, each in the casing
// it was first added with.
func (m *Map) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of distinct trait names.
func (m *Map) Len() int {
	return len(m.order)
}
