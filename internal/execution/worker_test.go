package execution

import (
	"context"
	"sync"
	"testing"

	"xtp/internal/domain"
	"xtp/internal/ident"
	"xtp/internal/introspect"
	"xtp/internal/messages"
	"xtp/internal/testcase"
)

// fakeRunner records which cases it ran and fails the configured ones.
type fakeRunner struct {
	mu   sync.Mutex
	ran  []string
	fail map[string]bool
}

func (r *fakeRunner) Run(ctx context.Context, c *testcase.Case, workerID int) domain.CaseResult {
	name, _ := c.DisplayName()
	r.mu.Lock()
	r.ran = append(r.ran, name)
	r.mu.Unlock()

	status := domain.StatusPassed
	if r.fail[name] {
		status = domain.StatusFailed
	}
	return domain.CaseResult{
		CaseID:      c.Identity().CaseID(),
		DisplayName: name,
		Status:      status,
	}
}

func buildCases(t *testing.T, collection string, specs map[string]map[string]any) []*testcase.Case {
	t.Helper()
	assembly := introspect.NewAssembly("asm")
	class := assembly.AddCollection(collection).AddClass("cls")

	var cases []*testcase.Case
	for name, named := range specs {
		merged := map[string]any{"name": name}
		for k, v := range named {
			merged[k] = v
		}
		method := class.AddMethod(name, introspect.Annotation{Kind: "fact", Named: merged})
		id, err := ident.New("asm", collection, "cls", name, ident.NewCaseID())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		c := testcase.FromAnnotations(id, method, nil)
		if err := c.Initialize(nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cases = append(cases, c)
	}
	return cases
}

func TestPool_ExecuteAll(t *testing.T) {
	cases := buildCases(t, "col", map[string]map[string]any{
		"a": nil, "b": nil, "c": nil,
	})
	runner := &fakeRunner{fail: map[string]bool{"b": true}}
	pool := NewPool(2, runner)

	results, duration, err := pool.Execute(cases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if duration <= 0 {
		t.Error("expected a positive duration")
	}

	var failed int
	for _, r := range results {
		if r.Status == domain.StatusFailed {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
}

func TestPool_SkippedCasesNeverRun(t *testing.T) {
	cases := buildCases(t, "col", map[string]map[string]any{
		"runs":    nil,
		"skipped": {"skip": "not ready"},
	})
	runner := &fakeRunner{}
	pool := NewPool(1, runner)

	results, _, err := pool.Execute(cases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := make(map[string]domain.CaseResult)
	for _, r := range results {
		byName[r.DisplayName] = r
	}
	if byName["skipped"].Status != domain.StatusSkipped {
		t.Errorf("expected skipped status, got %s", byName["skipped"].Status)
	}
	if byName["skipped"].Output != "not ready" {
		t.Errorf("expected skip reason as output, got %q", byName["skipped"].Output)
	}
	for _, name := range runner.ran {
		if name == "skipped" {
			t.Error("skipped case body must not run")
		}
	}
}

func TestPool_FailFastStops(t *testing.T) {
	specs := make(map[string]map[string]any)
	fail := make(map[string]bool)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		specs[name] = nil
	}
	fail["a"] = true
	fail["b"] = true
	fail["c"] = true
	fail["d"] = true
	fail["e"] = true
	fail["f"] = true
	fail["g"] = true
	fail["h"] = true

	cases := buildCases(t, "col", specs)
	runner := &fakeRunner{fail: fail}
	pool := NewPool(1, runner)

	results, _, err := pool.ExecuteWithOptions(cases, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With one worker and every case failing, the run stops after the first.
	if len(results) != 1 {
		t.Errorf("expected 1 result with fail-fast, got %d", len(results))
	}
	if results[0].Status != domain.StatusFailed {
		t.Errorf("expected a failed result, got %s", results[0].Status)
	}
}

func TestPool_EmptyCaseList(t *testing.T) {
	pool := NewPool(2, &fakeRunner{})
	results, duration, err := pool.Execute(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil || duration != 0 {
		t.Errorf("expected empty run, got %d results in %s", len(results), duration)
	}
}

func TestPool_PublishesCollectionSummaries(t *testing.T) {
	first := buildCases(t, "col-a", map[string]map[string]any{
		"a1": nil,
		"a2": {"skip": "later"},
	})
	second := buildCases(t, "col-b", map[string]map[string]any{
		"b1": nil,
	})
	cases := append(first, second...)

	runner := &fakeRunner{fail: map[string]bool{"a1": true}}
	pool := NewPool(2, runner)

	summaries := make(map[string]*messages.CollectionFinished)
	pool.SetBus(messages.BusFunc(func(msg any) error {
		if m, ok := msg.(*messages.CollectionFinished); ok {
			summaries[m.CollectionID()] = m
		}
		return nil
	}))

	if _, _, err := pool.Execute(cases); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	colA := summaries["col-a"]
	if colA == nil {
		t.Fatal("missing summary for col-a")
	}
	if run, err := colA.TestsRun(); err != nil || run != 2 {
		t.Errorf("expected 2 run for col-a, got %d (%v)", run, err)
	}
	if failed, err := colA.TestsFailed(); err != nil || failed != 1 {
		t.Errorf("expected 1 failed for col-a, got %d (%v)", failed, err)
	}
	if skipped, err := colA.TestsSkipped(); err != nil || skipped != 1 {
		t.Errorf("expected 1 skipped for col-a, got %d (%v)", skipped, err)
	}
	if _, err := colA.Elapsed(); err != nil {
		t.Errorf("elapsed should be set: %v", err)
	}

	colB := summaries["col-b"]
	if colB == nil {
		t.Fatal("missing summary for col-b")
	}
	if failed, _ := colB.TestsFailed(); failed != 0 {
		t.Errorf("expected 0 failed for col-b, got %d", failed)
	}
}
