package domain

import "fmt"

// InvalidArgumentError reports a required identity field that was empty at
// construction time. Construction fails fast; no partial value escapes.
type InvalidArgumentError struct {
	Field string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// UninitializedError reports a read of a metadata or summary property before
// its one-time initialization or write. This is a programming defect in the
// caller, not a recoverable condition.
type UninitializedError struct {
	Type     string
	Property string
}

func (e *UninitializedError) Error() string {
	return fmt.Sprintf("%s accessed before %s was initialized", e.Property, e.Type)
}

// MissingFieldError reports a required serialization key that was absent
// while reconstructing an entity from its portable form.
type MissingFieldError struct {
	Type string
	Key  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing serialized field %q for %s", e.Key, e.Type)
}
