// Package testcase implements the central test case entity: identity,
// display name, skip reason, timeout, trait map, and source location. A case
// is built one of exactly two ways — fresh from annotations followed by a
// single Initialize call, or reconstructed from its serialized form with all
// fields pre-populated. Reading derived metadata before either path has
// completed fails with an uninitialized-read error.
package testcase

import (
	"fmt"

	"xtp/internal/domain"
	"xtp/internal/ident"
	"xtp/internal/introspect"
	"xtp/internal/traits"
)

// FactKinds are the annotation kinds that mark a method as a test. The
// first matching annotation on a method is its primary declarative
// annotation.
var FactKinds = []string{"fact", "theory"}

// metadata holds the annotation-derived fields. It exists only in populated
// form: a nil metadata pointer is the "uninitialized" state, so a mis-ordered
// read is detectable rather than silently returning zero values.
type metadata struct {
	displayName string
	skipReason  string
	timeoutMS   int
	traits      *traits.Map
}

// Case is one executable unit of test work, possibly parameterized.
type Case struct {
	id     ident.Identity
	method introspect.Method
	args   []any

	sourceFile string
	sourceLine int

	meta *metadata
}

// FromAnnotations constructs an uninitialized case for a discovered method.
// args carries the parameter row for parameterized cases and is nil
// otherwise. The caller must run Initialize exactly once before the case is
// published; the entity does not serialize concurrent Initialize calls.
func FromAnnotations(id ident.Identity, method introspect.Method, args []any) *Case {
	c := &Case{id: id, method: method, args: args}
	if method != nil {
		c.sourceFile, c.sourceLine = method.Source()
	}
	return c
}

// Initialize derives the case's observable metadata from its declarative
// annotations. deriver may be nil, selecting the default derivation. The
// derived display name must be non-empty and the timeout non-negative;
// Initialize fails rather than publish a case violating either.
func (c *Case) Initialize(aggregator *traits.Aggregator, deriver Deriver) error {
	if c.meta != nil {
		return fmt.Errorf("%T initialized twice", c)
	}
	if c.method == nil {
		return fmt.Errorf("%T has no method to initialize from", c)
	}
	fact, ok := PrimaryAnnotation(c.method)
	if !ok {
		return fmt.Errorf("method %s carries no fact-like annotation", c.method.Name())
	}
	if deriver == nil {
		deriver = DefaultDeriver{}
	}

	displayName := deriver.DisplayName(c, fact)
	if displayName == "" {
		return fmt.Errorf("derived display name for method %s is empty", c.method.Name())
	}
	timeout := deriver.Timeout(c, fact)
	if timeout < 0 {
		return fmt.Errorf("derived timeout %d for method %s is negative", timeout, c.method.Name())
	}

	var merged *traits.Map
	if aggregator != nil {
		merged = aggregator.TraitsFor(c.method)
	} else {
		merged = traits.NewMap()
	}

	c.meta = &metadata{
		displayName: displayName,
		skipReason:  deriver.SkipReason(c, fact),
		timeoutMS:   timeout,
		traits:      merged,
	}
	return nil
}

// Identity returns the case's identity IDs. Always available.
func (c *Case) Identity() ident.Identity { return c.id }

// Method returns the owning method abstraction, or nil for a case
// reconstructed from serialized form.
func (c *Case) Method() introspect.Method { return c.method }

// Args returns the parameter row for parameterized cases; nil otherwise.
func (c *Case) Args() []any { return c.args }

// Source returns the optional source location; a zero line means unknown.
func (c *Case) Source() (file string, line int) { return c.sourceFile, c.sourceLine }

// SetSource records the source location. Discovery may set this after
// construction when a separate source provider resolves it.
func (c *Case) SetSource(file string, line int) {
	c.sourceFile = file
	c.sourceLine = line
}

// DisplayName returns the derived human-readable name.
func (c *Case) DisplayName() (string, error) {
	if c.meta == nil {
		return "", c.uninitialized("DisplayName")
	}
	return c.meta.displayName, nil
}

// SkipReason returns the derived skip reason; "" means the case runs.
func (c *Case) SkipReason() (string, error) {
	if c.meta == nil {
		return "", c.uninitialized("SkipReason")
	}
	return c.meta.skipReason, nil
}

// Timeout returns the derived timeout in milliseconds; 0 means unbounded.
// The value is descriptive metadata for the runner; the entity does not
// enforce it.
func (c *Case) Timeout() (int, error) {
	if c.meta == nil {
		return 0, c.uninitialized("Timeout")
	}
	return c.meta.timeoutMS, nil
}

// Traits returns the merged trait map. Callers must treat it as read-only.
func (c *Case) Traits() (*traits.Map, error) {
	if c.meta == nil {
		return nil, c.uninitialized("Traits")
	}
	return c.meta.traits, nil
}

func (c *Case) uninitialized(property string) error {
	return &domain.UninitializedError{Type: fmt.Sprintf("%T", c), Property: property}
}

// PrimaryAnnotation locates the first fact-like annotation on method. A
// method without one is not a test method.
func PrimaryAnnotation(method introspect.Method) (introspect.Annotation, bool) {
	for _, kind := range FactKinds {
		if annotations := method.Annotations(kind); len(annotations) > 0 {
			return annotations[0], true
		}
	}
	return introspect.Annotation{}, false
}
