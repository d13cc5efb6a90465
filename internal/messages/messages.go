// Package messages defines the discovery and execution-summary message
// shapes the core hands to the message bus. Messages are pure data carriers:
// they perform no I/O, and transport, ordering, and delivery guarantees
// belong to the bus collaborator.
package messages

import (
	"fmt"

	"xtp/internal/bag"
	"xtp/internal/testcase"
	"xtp/internal/traits"
)

// Bus is the opaque transport handle the core publishes messages to.
type Bus interface {
	Publish(msg any) error
}

// BusFunc adapts a function to the Bus interface.
type BusFunc func(msg any) error

// Publish calls the wrapped function.
func (f BusFunc) Publish(msg any) error { return f(msg) }

// CaseDiscovered is emitted once per discovered test case. It is an
// immutable snapshot taken at emission time: the scalar and string fields
// are independent copies, so the message survives the originating entity,
// e.g. after cross-process transfer.
type CaseDiscovered struct {
	testCase    *testcase.Case
	displayName string
	payload     []byte
	sourceFile  string
	sourceLine  int
	traits      *traits.Map
}

// NewCaseDiscovered snapshots c into a discovery message. When
// includePayload is set the case is serialized into the message for
// cross-process transfer. c must be initialized.
func NewCaseDiscovered(c *testcase.Case, includePayload bool) (*CaseDiscovered, error) {
	displayName, err := c.DisplayName()
	if err != nil {
		return nil, err
	}
	caseTraits, err := c.Traits()
	if err != nil {
		return nil, err
	}
	file, line := c.Source()

	msg := &CaseDiscovered{
		testCase:    c,
		displayName: displayName,
		sourceFile:  file,
		sourceLine:  line,
		traits:      caseTraits,
	}
	if includePayload {
		b := bag.New()
		if err := c.Serialize(b); err != nil {
			return nil, err
		}
		payload, err := b.Encode()
		if err != nil {
			return nil, fmt.Errorf("serialize discovered case: %w", err)
		}
		msg.payload = payload
	}
	return msg, nil
}

// TestCase returns the originating case reference.
func (m *CaseDiscovered) TestCase() *testcase.Case { return m.testCase }

// DisplayName returns the case's display name. Never empty.
func (m *CaseDiscovered) DisplayName() string { return m.displayName }

// Payload returns the serialized case, present only when the discovery pass
// was configured to include serialization.
func (m *CaseDiscovered) Payload() ([]byte, bool) {
	return m.payload, m.payload != nil
}

// Source returns the optional source location; a zero line means unknown.
func (m *CaseDiscovered) Source() (file string, line int) {
	return m.sourceFile, m.sourceLine
}

// Traits returns a read-only view of the case's trait map.
func (m *CaseDiscovered) Traits() *traits.Map { return m.traits }
