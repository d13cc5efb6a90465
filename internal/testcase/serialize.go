package testcase

import (
	"fmt"

	"xtp/internal/bag"
	"xtp/internal/ident"
	"xtp/internal/traits"
)

// Serialization keys written by the base Case. Types embedding Case add
// their own keys after delegating here; keys are never reused.
const (
	keyAssemblyID   = "AssemblyID"
	keyCollectionID = "CollectionID"
	keyClassID      = "ClassID"
	keyMethodID     = "MethodID"
	keyCaseID       = "CaseID"
	keyTimeout      = "Timeout"
	keyDisplayName  = "DisplayName"
	keySkipReason   = "SkipReason"
	keySourceFile   = "SourceFile"
	keySourceLine   = "SourceLine"
	keyTraitNames   = "TraitNames"
	keyTraitPrefix  = "Trait:"
)

// Serialize flattens the case into b. The required identity IDs and the
// timeout are always written; optional IDs and fields are written only when
// present, so absence round-trips as absence. Embedding types must call this
// before adding their own keys. Serializing an uninitialized case is a
// caller defect and fails.
func (c *Case) Serialize(b *bag.Bag) error {
	if c.meta == nil {
		return c.uninitialized("Serialize")
	}
	b.AddString(keyAssemblyID, c.id.AssemblyID())
	b.AddString(keyCollectionID, c.id.CollectionID())
	if classID := c.id.ClassID(); classID != "" {
		b.AddString(keyClassID, classID)
	}
	if methodID := c.id.MethodID(); methodID != "" {
		b.AddString(keyMethodID, methodID)
	}
	b.AddString(keyCaseID, c.id.CaseID())
	b.AddInt(keyTimeout, c.meta.timeoutMS)

	b.AddString(keyDisplayName, c.meta.displayName)
	if c.meta.skipReason != "" {
		b.AddString(keySkipReason, c.meta.skipReason)
	}
	if c.sourceFile != "" {
		b.AddString(keySourceFile, c.sourceFile)
		b.AddInt(keySourceLine, c.sourceLine)
	}

	names := c.meta.traits.Names()
	b.AddStrings(keyTraitNames, names)
	for _, name := range names {
		b.AddStrings(keyTraitPrefix+name, c.meta.traits.Get(name))
	}
	return nil
}

// Deserialize is the exact inverse of Serialize: it reads back every key
// Serialize writes, tolerating absent optional fields, and leaves the case
// fully initialized. Embedding types must call this before reading their own
// keys. A missing required key fails with a MissingFieldError; no partially
// reconstructed case is published.
func (c *Case) Deserialize(b *bag.Bag) error {
	owner := fmt.Sprintf("%T", c)

	assemblyID, err := bag.Get[string](b, owner, keyAssemblyID)
	if err != nil {
		return err
	}
	collectionID, err := bag.Get[string](b, owner, keyCollectionID)
	if err != nil {
		return err
	}
	classID, _ := bag.GetOptional[string](b, keyClassID)
	methodID, _ := bag.GetOptional[string](b, keyMethodID)
	caseID, err := bag.Get[string](b, owner, keyCaseID)
	if err != nil {
		return err
	}
	id, err := ident.New(assemblyID, collectionID, classID, methodID, caseID)
	if err != nil {
		return err
	}

	timeout, err := bag.Get[int](b, owner, keyTimeout)
	if err != nil {
		return err
	}
	displayName, err := bag.Get[string](b, owner, keyDisplayName)
	if err != nil {
		return err
	}
	skipReason, _ := bag.GetOptional[string](b, keySkipReason)

	if file, ok := bag.GetOptional[string](b, keySourceFile); ok {
		line, _ := bag.GetOptional[int](b, keySourceLine)
		c.sourceFile = file
		c.sourceLine = line
	}

	names, err := bag.Get[[]string](b, owner, keyTraitNames)
	if err != nil {
		return err
	}
	merged := traits.NewMap()
	for _, name := range names {
		values, err := bag.Get[[]string](b, owner, keyTraitPrefix+name)
		if err != nil {
			return err
		}
		for _, value := range values {
			merged.Add(name, value)
		}
	}

	c.id = id
	c.meta = &metadata{
		displayName: displayName,
		skipReason:  skipReason,
		timeoutMS:   timeout,
		traits:      merged,
	}
	return nil
}

// FromSerialized reconstructs a case from its portable form. The result
// arrives fully initialized; annotation-derived initialization is skipped
// entirely and the method reference is absent.
func FromSerialized(b *bag.Bag) (*Case, error) {
	c := &Case{}
	if err := c.Deserialize(b); err != nil {
		return nil, err
	}
	return c, nil
}
