package traits

import (
	"strings"

	"xtp/internal/introspect"
)

// Discoverer extracts trait pairs from a single annotation instance.
type Discoverer interface {
	Traits(a introspect.Annotation) []KeyValue
}

// DiscovererFunc adapts a function to the Discoverer interface.
type DiscovererFunc func(a introspect.Annotation) []KeyValue

// Traits calls the wrapped function.
func (f DiscovererFunc) Traits(a introspect.Annotation) []KeyValue { return f(a) }

// DiagnosticSink accepts informational messages, e.g. an annotation naming a
// discoverer that was never registered. Non-fatal, fire-and-forget.
type DiagnosticSink interface {
	Message(format string, args ...any)
}

// DiagnosticFunc adapts a function to the DiagnosticSink interface.
type DiagnosticFunc func(format string, args ...any)

// Message calls the wrapped function.
func (f DiagnosticFunc) Message(format string, args ...any) { f(format, args...) }

// PairDiscovererName is the registry name of the standard discoverer for
// plain "trait" annotations carrying positional (name, value) arguments.
const PairDiscovererName = "trait"

// PairDiscoverer reads a (name, value) pair from the annotation's first two
// positional arguments. Annotations without both arguments contribute
// nothing.
func PairDiscoverer() Discoverer {
	return DiscovererFunc(func(a introspect.Annotation) []KeyValue {
		name, ok := a.ArgString(0)
		if !ok {
			return nil
		}
		value, ok := a.ArgString(1)
		if !ok {
			return nil
		}
		return []KeyValue{{Name: name, Value: value}}
	})
}

// Registry maps discoverer names (as declared on annotations) to discoverer
// implementations. It is populated at discovery-configuration time and read
// during aggregation.
type Registry struct {
	byName map[string]Discoverer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Discoverer)}
}

// NewDefaultRegistry creates a registry with the standard pair discoverer
// registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(PairDiscovererName, PairDiscoverer())
	return r
}

// Register associates a discoverer name with an implementation. Names are
// case-insensitive; a later registration replaces an earlier one.
func (r *Registry) Register(name string, d Discoverer) {
	r.byName[strings.ToLower(name)] = d
}

// Lookup resolves a discoverer by name.
func (r *Registry) Lookup(name string) (Discoverer, bool) {
	d, ok := r.byName[strings.ToLower(name)]
	return d, ok
}
