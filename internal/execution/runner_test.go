package execution

import (
	"context"
	"strings"
	"testing"

	"xtp/internal/domain"
	"xtp/internal/ident"
	"xtp/internal/introspect"
	"xtp/internal/testcase"
)

func commandCase(t *testing.T, argv []string, named map[string]any) *testcase.Case {
	t.Helper()
	annotations := []introspect.Annotation{{Kind: "fact", Named: named}}
	if len(argv) > 0 {
		args := make([]any, len(argv))
		for i, word := range argv {
			args[i] = word
		}
		annotations = append(annotations, introspect.Annotation{Kind: "command", Args: args})
	}

	assembly := introspect.NewAssembly("asm")
	method := assembly.AddCollection("col").AddClass("cls").AddMethod("m", annotations...)
	id, err := ident.New("asm", "col", "cls", "m", ident.NewCaseID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := testcase.FromAnnotations(id, method, nil)
	if err := c.Initialize(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestCommandRunner_NoCommandPassesTrivially(t *testing.T) {
	runner := NewCommandRunner(t.TempDir())
	result := runner.Run(context.Background(), commandCase(t, nil, nil), 1)

	if result.Status != domain.StatusPassed {
		t.Errorf("expected passed, got %s", result.Status)
	}
}

func TestCommandRunner_CommandSuccess(t *testing.T) {
	runner := NewCommandRunner(t.TempDir())
	c := commandCase(t, []string{"sh", "-c", "echo hello"}, nil)

	result := runner.Run(context.Background(), c, 1)

	if result.Status != domain.StatusPassed {
		t.Fatalf("expected passed, got %s (err: %v)", result.Status, result.Err)
	}
	if !strings.Contains(result.Output, "hello") {
		t.Errorf("expected command output, got %q", result.Output)
	}
	if result.Duration <= 0 {
		t.Error("expected a positive duration")
	}
}

func TestCommandRunner_CommandFailure(t *testing.T) {
	runner := NewCommandRunner(t.TempDir())
	c := commandCase(t, []string{"sh", "-c", "exit 3"}, nil)

	result := runner.Run(context.Background(), c, 1)

	if result.Status != domain.StatusFailed {
		t.Errorf("expected failed, got %s", result.Status)
	}
	if result.Err == nil {
		t.Error("expected the exit error to be recorded")
	}
}

func TestCommandRunner_WorkerAndCaseEnv(t *testing.T) {
	runner := NewCommandRunner(t.TempDir())
	c := commandCase(t, []string{"sh", "-c", "echo $XTP_WORKER_ID $XTP_CASE_ID"}, nil)

	result := runner.Run(context.Background(), c, 7)

	if result.Status != domain.StatusPassed {
		t.Fatalf("expected passed, got %s (err: %v)", result.Status, result.Err)
	}
	if !strings.Contains(result.Output, "7 "+c.Identity().CaseID()) {
		t.Errorf("expected worker and case IDs in output, got %q", result.Output)
	}
}

func TestCommandRunner_TimeoutKillsCommand(t *testing.T) {
	runner := NewCommandRunner(t.TempDir())
	c := commandCase(t, []string{"sleep", "5"}, map[string]any{"timeout": 50})

	result := runner.Run(context.Background(), c, 1)

	if result.Status != domain.StatusFailed {
		t.Errorf("expected failed after timeout, got %s", result.Status)
	}
}
