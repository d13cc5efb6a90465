package execution

import (
	"context"
	"time"

	"xtp/internal/domain"
	"xtp/internal/testcase"
)

// CaseRunner invokes one test case body. The core supplies identity and
// metadata only; how the body runs is the runner's concern. Implementations
// are responsible for honoring the case's descriptive timeout.
type CaseRunner interface {
	Run(ctx context.Context, c *testcase.Case, workerID int) domain.CaseResult
}

// Executor executes discovered cases and returns results
type Executor interface {
	Execute(cases []*testcase.Case) ([]domain.CaseResult, time.Duration, error)
}
