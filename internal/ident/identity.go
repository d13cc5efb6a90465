// Package ident implements the hierarchical addressing scheme for test
// entities: assembly → collection → class → method → case. IDs are opaque
// strings assigned once at discovery time; equality of a test entity across
// processes is defined by its IDs, never by object identity.
package ident

import (
	"github.com/google/uuid"

	"xtp/internal/domain"
)

// Identity addresses a single test case. Assembly and collection IDs are
// always present; class and method IDs are empty for dynamically generated
// cases that do not belong to a class or method.
type Identity struct {
	assemblyID   string
	collectionID string
	classID      string
	methodID     string
	caseID       string
}

// New creates an Identity. Assembly and collection IDs are required and
// validated non-empty; class and method IDs may be empty.
func New(assemblyID, collectionID, classID, methodID, caseID string) (Identity, error) {
	if assemblyID == "" {
		return Identity{}, &domain.InvalidArgumentError{Field: "assemblyID"}
	}
	if collectionID == "" {
		return Identity{}, &domain.InvalidArgumentError{Field: "collectionID"}
	}
	return Identity{
		assemblyID:   assemblyID,
		collectionID: collectionID,
		classID:      classID,
		methodID:     methodID,
		caseID:       caseID,
	}, nil
}

// NewCaseID returns a fresh opaque case ID.
func NewCaseID() string {
	return uuid.NewString()
}

// AssemblyID returns the owning assembly's unique ID.
func (id Identity) AssemblyID() string { return id.assemblyID }

// CollectionID returns the owning collection's unique ID.
func (id Identity) CollectionID() string { return id.collectionID }

// ClassID returns the owning class's unique ID, or "" when the case does not
// belong to a class.
func (id Identity) ClassID() string { return id.classID }

// MethodID returns the owning method's unique ID, or "" when the case does
// not belong to a method.
func (id Identity) MethodID() string { return id.methodID }

// CaseID returns the case's own unique ID.
func (id Identity) CaseID() string { return id.caseID }
