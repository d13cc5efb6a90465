package traits

import "xtp/internal/introspect"

// Aggregator produces the merged trait map for a test method by combining
// assembly-level, method-level, and class-level trait annotations, in that
// fixed order. Assembly and class annotation lists are memoized in the two
// injected caches; method annotations are queried fresh per method.
type Aggregator struct {
	registry      *Registry
	assemblyCache *Cache
	classCache    *Cache
	diagnostics   DiagnosticSink
}

// NewAggregator creates an Aggregator. The diagnostics sink may be nil, in
// which case unresolved discoverers are silently skipped.
func NewAggregator(registry *Registry, assemblyCache, classCache *Cache, diagnostics DiagnosticSink) *Aggregator {
	return &Aggregator{
		registry:      registry,
		assemblyCache: assemblyCache,
		classCache:    classCache,
		diagnostics:   diagnostics,
	}
}

// TraitsFor builds the merged trait map for method. Every pair yielded by a
// resolved discoverer is appended under its name; no pair overwrites
// another, and duplicate pairs across sources are preserved.
func (ag *Aggregator) TraitsFor(method introspect.Method) *Map {
	class := method.Class()
	assembly := class.Assembly()

	merged := NewMap()
	ag.apply(merged, ag.assemblyCache.GetOrCompute(assembly.Name(), func() []introspect.Annotation {
		return traitAnnotations(assembly)
	}))
	ag.apply(merged, traitAnnotations(method))
	ag.apply(merged, ag.classCache.GetOrCompute(class.Name(), func() []introspect.Annotation {
		return traitAnnotations(class)
	}))
	return merged
}

// apply resolves each annotation through its declared discoverer and appends
// the yielded pairs. An annotation naming an unregistered discoverer emits a
// diagnostic and contributes nothing, so one misconfigured annotation does
// not abort discovery of the whole case.
func (ag *Aggregator) apply(merged *Map, annotations []introspect.Annotation) {
	for _, a := range annotations {
		d, ok := ag.registry.Lookup(a.Discoverer)
		if !ok {
			if ag.diagnostics != nil {
				ag.diagnostics.Message("annotation %q names trait discoverer %q, which is not registered", a.Kind, a.Discoverer)
			}
			continue
		}
		for _, kv := range d.Traits(a) {
			merged.Add(kv.Name, kv.Value)
		}
	}
}

// traitAnnotations selects the annotations on member that declare a trait
// discoverer association.
func traitAnnotations(member introspect.Member) []introspect.Annotation {
	var out []introspect.Annotation
	for _, a := range member.Annotations("") {
		if a.Discoverer != "" {
			out = append(out, a)
		}
	}
	return out
}
