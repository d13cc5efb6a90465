package traits

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xtp/internal/introspect"
)

func pair(name, value string) introspect.Annotation {
	return introspect.Annotation{
		Kind:       "trait",
		Discoverer: PairDiscovererName,
		Args:       []any{name, value},
	}
}

func methodWith(assemblyAnnotations, classAnnotations, methodAnnotations []introspect.Annotation) introspect.Method {
	assembly := introspect.NewAssembly("asm", assemblyAnnotations...)
	collection := assembly.AddCollection("col")
	class := collection.AddClass("cls", classAnnotations...)
	return class.AddMethod("mth", methodAnnotations...)
}

func newTestAggregator(diagnostics DiagnosticSink) *Aggregator {
	return NewAggregator(NewDefaultRegistry(), NewCache(), NewCache(), diagnostics)
}

func TestAggregator_MergeOrderAssemblyMethodClass(t *testing.T) {
	method := methodWith(
		[]introspect.Annotation{pair("A", "1"), pair("B", "2")},
		[]introspect.Annotation{pair("A", "3")},
		nil,
	)

	merged := newTestAggregator(nil).TraitsFor(method)

	assert.Equal(t, []string{"1", "3"}, merged.Get("A"))
	assert.Equal(t, []string{"2"}, merged.Get("B"))
}

func TestAggregator_MethodBetweenAssemblyAndClass(t *testing.T) {
	method := methodWith(
		[]introspect.Annotation{pair("order", "assembly")},
		[]introspect.Annotation{pair("order", "class")},
		[]introspect.Annotation{pair("order", "method")},
	)

	merged := newTestAggregator(nil).TraitsFor(method)

	assert.Equal(t, []string{"assembly", "method", "class"}, merged.Get("order"))
}

func TestAggregator_CaseInsensitiveMergeAcrossSources(t *testing.T) {
	method := methodWith(
		[]introspect.Annotation{pair("Category", "Integration")},
		[]introspect.Annotation{pair("CATEGORY", "Slow")},
		nil,
	)

	merged := newTestAggregator(nil).TraitsFor(method)

	assert.Equal(t, []string{"Integration", "Slow"}, merged.Get("category"))
	assert.Equal(t, []string{"Category"}, merged.Names())
}

func TestAggregator_DuplicatePairsAcrossSourcesPreserved(t *testing.T) {
	method := methodWith(
		[]introspect.Annotation{pair("Category", "Slow")},
		[]introspect.Annotation{pair("Category", "Slow")},
		[]introspect.Annotation{pair("Category", "Slow")},
	)

	merged := newTestAggregator(nil).TraitsFor(method)

	assert.Equal(t, []string{"Slow", "Slow", "Slow"}, merged.Get("Category"))
}

func TestAggregator_UnresolvedDiscovererEmitsDiagnostic(t *testing.T) {
	method := methodWith(nil, nil, []introspect.Annotation{
		{Kind: "custom", Discoverer: "nowhere", Args: []any{"x", "y"}},
		pair("kept", "yes"),
	})

	var diagnostics []string
	sink := DiagnosticFunc(func(format string, args ...any) {
		diagnostics = append(diagnostics, fmt.Sprintf(format, args...))
	})

	merged := newTestAggregator(sink).TraitsFor(method)

	// The misconfigured annotation is skipped, the rest still aggregate.
	assert.Equal(t, []string{"yes"}, merged.Get("kept"))
	require.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0], "nowhere")
}

func TestAggregator_NilDiagnosticsSkipsSilently(t *testing.T) {
	method := methodWith(nil, nil, []introspect.Annotation{
		{Kind: "custom", Discoverer: "nowhere"},
	})

	merged := newTestAggregator(nil).TraitsFor(method)
	assert.Equal(t, 0, merged.Len())
}

func TestAggregator_AssemblyAndClassLookupsAreCached(t *testing.T) {
	assemblyCache := NewCache()
	classCache := NewCache()
	ag := NewAggregator(NewDefaultRegistry(), assemblyCache, classCache, nil)

	assembly := introspect.NewAssembly("asm", pair("level", "assembly"))
	class := assembly.AddCollection("col").AddClass("cls", pair("level", "class"))
	first := class.AddMethod("m1")
	second := class.AddMethod("m2")

	ag.TraitsFor(first)
	ag.TraitsFor(second)

	assert.Equal(t, 1, assemblyCache.Len())
	assert.Equal(t, 1, classCache.Len())
}

func TestAggregator_CustomDiscoverer(t *testing.T) {
	registry := NewDefaultRegistry()
	registry.Register("fanout", DiscovererFunc(func(a introspect.Annotation) []KeyValue {
		return []KeyValue{
			{Name: "Speed", Value: "Fast"},
			{Name: "Speed", Value: "Parallel"},
		}
	}))
	ag := NewAggregator(registry, NewCache(), NewCache(), nil)

	method := methodWith(nil, nil, []introspect.Annotation{
		{Kind: "custom", Discoverer: "FANOUT"},
	})

	merged := ag.TraitsFor(method)
	assert.Equal(t, []string{"Fast", "Parallel"}, merged.Get("Speed"))
}

func TestPairDiscoverer_IgnoresIncompleteAnnotations(t *testing.T) {
	d := PairDiscoverer()

	assert.Nil(t, d.Traits(introspect.Annotation{Kind: "trait"}))
	assert.Nil(t, d.Traits(introspect.Annotation{Kind: "trait", Args: []any{"only-name"}}))
	assert.Nil(t, d.Traits(introspect.Annotation{Kind: "trait", Args: []any{1, 2}}))
}
