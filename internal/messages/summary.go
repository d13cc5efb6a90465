package messages

import (
	"fmt"
	"time"

	"xtp/internal/domain"
)

// writeOnce holds a value that becomes readable only after it is set.
type writeOnce[T any] struct {
	set   bool
	value T
}

func (w *writeOnce[T]) store(v T) {
	w.value = v
	w.set = true
}

func (w *writeOnce[T]) load() (T, bool) {
	return w.value, w.set
}

// CollectionFinished reports aggregate execution counts and elapsed time for
// one collection. Each numeric field is independently write-once: reading a
// field before it was set is a programming defect, not a recoverable
// condition. The entity does not validate ranges; callers are expected to
// uphold TestsRun ≥ TestsFailed + TestsSkipped.
type CollectionFinished struct {
	collectionID string

	elapsed      writeOnce[time.Duration]
	testsRun     writeOnce[int]
	testsFailed  writeOnce[int]
	testsSkipped writeOnce[int]
}

// NewCollectionFinished creates a summary for the given collection with all
// fields unset.
func NewCollectionFinished(collectionID string) *CollectionFinished {
	return &CollectionFinished{collectionID: collectionID}
}

// CollectionID returns the collection this summary describes.
func (m *CollectionFinished) CollectionID() string { return m.collectionID }

// SetElapsed stores the execution time.
func (m *CollectionFinished) SetElapsed(d time.Duration) { m.elapsed.store(d) }

// Elapsed returns the execution time set earlier.
func (m *CollectionFinished) Elapsed() (time.Duration, error) {
	v, ok := m.elapsed.load()
	if !ok {
		return 0, m.unset("Elapsed")
	}
	return v, nil
}

// SetTestsRun stores the number of cases run.
func (m *CollectionFinished) SetTestsRun(n int) { m.testsRun.store(n) }

// TestsRun returns the number of cases run set earlier.
func (m *CollectionFinished) TestsRun() (int, error) {
	v, ok := m.testsRun.load()
	if !ok {
		return 0, m.unset("TestsRun")
	}
	return v, nil
}

// SetTestsFailed stores the number of failed cases.
func (m *CollectionFinished) SetTestsFailed(n int) { m.testsFailed.store(n) }

// TestsFailed returns the number of failed cases set earlier.
func (m *CollectionFinished) TestsFailed() (int, error) {
	v, ok := m.testsFailed.load()
	if !ok {
		return 0, m.unset("TestsFailed")
	}
	return v, nil
}

// SetTestsSkipped stores the number of skipped cases.
func (m *CollectionFinished) SetTestsSkipped(n int) { m.testsSkipped.store(n) }

// TestsSkipped returns the number of skipped cases set earlier.
func (m *CollectionFinished) TestsSkipped() (int, error) {
	v, ok := m.testsSkipped.load()
	if !ok {
		return 0, m.unset("TestsSkipped")
	}
	return v, nil
}

func (m *CollectionFinished) unset(field string) error {
	return &domain.UninitializedError{Type: fmt.Sprintf("%T", m), Property: field}
}
