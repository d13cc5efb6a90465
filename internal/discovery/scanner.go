// Package discovery turns the introspection view of an assembly into
// initialized test cases and discovery messages.
package discovery

import (
	"fmt"

	"xtp/internal/ident"
	"xtp/internal/introspect"
	"xtp/internal/messages"
	"xtp/internal/testcase"
	"xtp/internal/traits"
)

// Scanner walks an assembly for test methods and builds test cases
type Scanner struct {
	aggregator *traits.Aggregator
	deriver    testcase.Deriver

	// includeSerialization embeds the serialized case in each discovery
	// message, for cross-process transfer.
	includeSerialization bool
}

// NewScanner creates a Scanner. deriver may be nil, selecting the default
// metadata derivation.
func NewScanner(aggregator *traits.Aggregator, deriver testcase.Deriver, includeSerialization bool) *Scanner {
	return &Scanner{
		aggregator:           aggregator,
		deriver:              deriver,
		includeSerialization: includeSerialization,
	}
}

// Scan discovers every test case in the assembly: methods carrying a
// fact-like annotation become one case each, with theory parameter rows
// expanded into one case per row. Each case is initialized exactly once
// before it is returned or published; when bus is non-nil a discovery
// message is emitted per case.
func (s *Scanner) Scan(assembly introspect.Assembly, bus messages.Bus) ([]*testcase.Case, error) {
	var cases []*testcase.Case

	for _, collection := range assembly.Collections() {
		for _, class := range collection.Classes() {
			for _, method := range class.Methods() {
				fact, ok := testcase.PrimaryAnnotation(method)
				if !ok {
					continue
				}
				for _, args := range parameterRows(fact) {
					c, err := s.buildCase(assembly, collection, class, method, args)
					if err != nil {
						return nil, err
					}
					if bus != nil {
						msg, err := messages.NewCaseDiscovered(c, s.includeSerialization)
						if err != nil {
							return nil, err
						}
						if err := bus.Publish(msg); err != nil {
							return nil, fmt.Errorf("publish discovery of %s: %w", method.Name(), err)
						}
					}
					cases = append(cases, c)
				}
			}
		}
	}
	return cases, nil
}

func (s *Scanner) buildCase(
	assembly introspect.Assembly,
	collection introspect.Collection,
	class introspect.Class,
	method introspect.Method,
	args []any,
) (*testcase.Case, error) {
	id, err := ident.New(assembly.Name(), collection.Name(), class.Name(), method.Name(), ident.NewCaseID())
	if err != nil {
		return nil, err
	}
	c := testcase.FromAnnotations(id, method, args)
	if err := c.Initialize(s.aggregator, s.deriver); err != nil {
		return nil, fmt.Errorf("initialize case for %s: %w", method.Name(), err)
	}
	return c, nil
}

// parameterRows expands the primary annotation into argument lists: one nil
// row for facts, one row per declared parameter row for theories. A theory
// without rows degrades to a single unparameterized case.
func parameterRows(fact introspect.Annotation) [][]any {
	if fact.Kind != "theory" {
		return [][]any{nil}
	}
	rows := fact.Rows()
	if len(rows) == 0 {
		return [][]any{nil}
	}
	return rows
}
