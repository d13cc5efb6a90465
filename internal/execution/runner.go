package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"xtp/internal/domain"
	"xtp/internal/testcase"
)

// CommandRunner executes the external command declared on a case's method
// via a "command" annotation. Cases without a command (or reconstructed
// without a method reference) pass trivially; the framework core carries
// no in-process test bodies of its own.
type CommandRunner struct {
	workDir string
}

// NewCommandRunner creates a CommandRunner that runs commands in workDir.
func NewCommandRunner(workDir string) *CommandRunner {
	return &CommandRunner{workDir: workDir}
}

// Run executes the case's command, applying the case timeout as a context
// deadline. A zero timeout means unbounded.
func (r *CommandRunner) Run(ctx context.Context, c *testcase.Case, workerID int) domain.CaseResult {
	displayName, err := c.DisplayName()
	if err != nil {
		return failed(c, "", err, 0)
	}

	argv := commandOf(c)
	if len(argv) == 0 {
		return domain.CaseResult{
			CaseID:      c.Identity().CaseID(),
			DisplayName: displayName,
			Status:      domain.StatusPassed,
		}
	}

	timeoutMS, err := c.Timeout()
	if err != nil {
		return failed(c, displayName, err, 0)
	}
	if timeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMS)*time.Millisecond)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("XTP_WORKER_ID=%d", workerID),
		fmt.Sprintf("XTP_CASE_ID=%s", c.Identity().CaseID()),
	)

	start := time.Now()
	output, runErr := cmd.CombinedOutput()
	duration := time.Since(start)

	status := domain.StatusPassed
	if runErr != nil {
		status = domain.StatusFailed
	}
	return domain.CaseResult{
		CaseID:      c.Identity().CaseID(),
		DisplayName: displayName,
		Status:      status,
		Output:      string(output),
		Err:         runErr,
		Duration:    duration,
	}
}

func failed(c *testcase.Case, displayName string, err error, duration time.Duration) domain.CaseResult {
	return domain.CaseResult{
		CaseID:      c.Identity().CaseID(),
		DisplayName: displayName,
		Status:      domain.StatusFailed,
		Err:         err,
		Duration:    duration,
	}
}

// commandOf reads the argv declared on the case's method.
func commandOf(c *testcase.Case) []string {
	method := c.Method()
	if method == nil {
		return nil
	}
	annotations := method.Annotations("command")
	if len(annotations) == 0 {
		return nil
	}
	var argv []string
	for i := range annotations[0].Args {
		if word, ok := annotations[0].ArgString(i); ok {
			argv = append(argv, word)
		}
	}
	return argv
}
