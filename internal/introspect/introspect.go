// Package introspect is the boundary to the annotation layer: it exposes the
// declarative markers on assemblies, classes, and methods that the discovery
// and trait components read. The core only reads through these interfaces and
// never mutates the introspected target.
package introspect

// Annotation is one declarative marker on an assembly, class, or method.
// The kind tag selects behavior ("fact", "theory", "trait", ...). An
// annotation that contributes traits declares which discoverer services it
// via the Discoverer tag; annotations with an empty Discoverer tag are
// ignored by trait aggregation.
type Annotation struct {
	Kind       string
	Discoverer string
	Args       []any
	Named      map[string]any
}

// NamedString reads a named argument as a string.
func (a Annotation) NamedString(name string) (string, bool) {
	v, ok := a.Named[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NamedInt reads a named argument as an int. YAML decoding and JSON decoding
// deliver numbers as int or float64 depending on the source; both are
// accepted.
func (a Annotation) NamedInt(name string) (int, bool) {
	v, ok := a.Named[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// ArgString reads a positional argument as a string.
func (a Annotation) ArgString(i int) (string, bool) {
	if i < 0 || i >= len(a.Args) {
		return "", false
	}
	s, ok := a.Args[i].(string)
	return s, ok
}

// Rows interprets the positional arguments as parameter rows (one argument
// list per row, as declared on a theory annotation).
func (a Annotation) Rows() [][]any {
	var rows [][]any
	for _, arg := range a.Args {
		if row, ok := arg.([]any); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// Member is anything that reports a stable name and carries annotations.
type Member interface {
	// Name returns the member's stable name string.
	Name() string
	// Annotations enumerates the member's annotations, filtered by kind.
	// An empty kind returns all annotations in declaration order.
	Annotations(kind string) []Annotation
}

// Assembly is the introspection view of one test assembly.
type Assembly interface {
	Member
	Collections() []Collection
}

// Collection groups classes for execution purposes. Collections carry no
// annotations of their own; trait aggregation reads assembly, method, and
// class only.
type Collection interface {
	Name() string
	Classes() []Class
}

// Class is the introspection view of one test class.
type Class interface {
	Member
	Assembly() Assembly
	Methods() []Method
}

// Method is the introspection view of one test method.
type Method interface {
	Member
	Class() Class
	// Source reports where the method was declared; a zero line means the
	// location is unknown.
	Source() (file string, line int)
}
