// Package execution runs discovered test cases in parallel and publishes
// per-collection summaries. The pool imposes no threading on the core
// entities: every case is initialized before it reaches the pool, and each
// case runs on exactly one worker.
package execution

import (
	"context"
	"sync"
	"time"

	"xtp/internal/domain"
	"xtp/internal/messages"
	"xtp/internal/testcase"
	"xtp/internal/ui"
)

// Pool manages a set of workers for parallel case execution
type Pool struct {
	workers  int
	runner   CaseRunner
	progress *ui.ProgressBar
	bus      messages.Bus
}

// NewPool creates a new Pool
func NewPool(workers int, runner CaseRunner) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, runner: runner}
}

// SetProgress sets the progress bar for the pool
func (p *Pool) SetProgress(progress *ui.ProgressBar) {
	p.progress = progress
}

// SetBus sets the message bus that collection summaries are published to
func (p *Pool) SetBus(bus messages.Bus) {
	p.bus = bus
}

// Execute runs all cases in parallel (no fail-fast).
func (p *Pool) Execute(cases []*testcase.Case) ([]domain.CaseResult, time.Duration, error) {
	return p.ExecuteWithOptions(cases, false)
}

// ExecuteWithOptions runs cases with optional fail-fast (stop on first failure).
func (p *Pool) ExecuteWithOptions(cases []*testcase.Case, failFast bool) ([]domain.CaseResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	var results []domain.CaseResult
	var duration time.Duration
	var err error
	if failFast {
		results, duration, err = p.executeFailFast(cases)
	} else {
		results, duration, err = p.executeAll(cases)
	}
	if err != nil {
		return nil, 0, err
	}
	if p.bus != nil {
		if err := p.publishSummaries(cases, results, duration); err != nil {
			return nil, 0, err
		}
	}
	return results, duration, nil
}

// executeAll runs every case to completion.
func (p *Pool) executeAll(cases []*testcase.Case) ([]domain.CaseResult, time.Duration, error) {
	queue := make(chan *testcase.Case, len(cases))
	results := make(chan domain.CaseResult, len(cases))
	for _, c := range cases {
		queue <- c
	}
	close(queue)

	var mu sync.Mutex
	var completed, passed, failed int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for c := range queue {
				result := p.runOne(context.Background(), c, workerID)
				results <- result
				mu.Lock()
				completed++
				switch result.Status {
				case domain.StatusFailed:
					failed++
				case domain.StatusPassed:
					passed++
				}
				if p.progress != nil {
					p.progress.Update(completed, passed, failed)
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.CaseResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if p.progress != nil {
		p.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast runs cases and stops after the first failure.
func (p *Pool) executeFailFast(cases []*testcase.Case) ([]domain.CaseResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan *testcase.Case, 1)
	results := make(chan domain.CaseResult, len(cases))

	go func() {
		defer close(queue)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case queue <- c:
			}
		}
	}()

	var mu sync.Mutex
	var completed, passed, failed int
	var seenFailure bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for c := range queue {
				result := p.runOne(ctx, c, workerID)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completed++
				switch result.Status {
				case domain.StatusFailed:
					failed++
				case domain.StatusPassed:
					passed++
				}
				if p.progress != nil {
					p.progress.Update(completed, passed, failed)
				}
				if result.Status == domain.StatusFailed {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.CaseResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if p.progress != nil {
		p.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// runOne executes a single case, honoring its skip reason: a case with a
// skip reason is reported as skipped and its body never runs.
func (p *Pool) runOne(ctx context.Context, c *testcase.Case, workerID int) domain.CaseResult {
	displayName, err := c.DisplayName()
	if err != nil {
		return domain.CaseResult{
			CaseID: c.Identity().CaseID(),
			Status: domain.StatusFailed,
			Err:    err,
		}
	}
	skipReason, err := c.SkipReason()
	if err == nil && skipReason != "" {
		return domain.CaseResult{
			CaseID:      c.Identity().CaseID(),
			DisplayName: displayName,
			Status:      domain.StatusSkipped,
			Output:      skipReason,
		}
	}
	return p.runner.Run(ctx, c, workerID)
}

// publishSummaries emits one collection-finished message per collection that
// contributed cases, in first-seen collection order.
func (p *Pool) publishSummaries(cases []*testcase.Case, results []domain.CaseResult, duration time.Duration) error {
	collectionOf := make(map[string]string, len(cases))
	var order []string
	seen := make(map[string]bool)
	for _, c := range cases {
		collectionID := c.Identity().CollectionID()
		collectionOf[c.Identity().CaseID()] = collectionID
		if !seen[collectionID] {
			seen[collectionID] = true
			order = append(order, collectionID)
		}
	}

	type tally struct{ run, failed, skipped int }
	tallies := make(map[string]*tally)
	for _, r := range results {
		collectionID := collectionOf[r.CaseID]
		t := tallies[collectionID]
		if t == nil {
			t = &tally{}
			tallies[collectionID] = t
		}
		t.run++
		switch r.Status {
		case domain.StatusFailed:
			t.failed++
		case domain.StatusSkipped:
			t.skipped++
		}
	}

	for _, collectionID := range order {
		t := tallies[collectionID]
		if t == nil {
			continue
		}
		summary := messages.NewCollectionFinished(collectionID)
		summary.SetElapsed(duration)
		summary.SetTestsRun(t.run)
		summary.SetTestsFailed(t.failed)
		summary.SetTestsSkipped(t.skipped)
		if err := p.bus.Publish(summary); err != nil {
			return err
		}
	}
	return nil
}
