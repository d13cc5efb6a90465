package history

import (
	"strings"
	"testing"
)

func TestIsValidDatabaseName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "simple name", input: "xtp", valid: true},
		{name: "with underscore and digits", input: "xtp_runs_2", valid: true},
		{name: "empty", input: "", valid: false},
		{name: "dash", input: "xtp-runs", valid: false},
		{name: "semicolon injection", input: "xtp;DROP", valid: false},
		{name: "reserved word", input: "DROP", valid: false},
		{name: "too long", input: strings.Repeat("a", 65), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidDatabaseName(tt.input); got != tt.valid {
				t.Errorf("isValidDatabaseName(%q) = %v, expected %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestEnvOr(t *testing.T) {
	t.Run("set variable wins", func(t *testing.T) {
		t.Setenv("XTP_TEST_ENV", "value")
		if got := envOr("XTP_TEST_ENV", "fallback"); got != "value" {
			t.Errorf("expected value, got %s", got)
		}
	})

	t.Run("fallback on unset", func(t *testing.T) {
		if got := envOr("XTP_TEST_ENV_UNSET", "fallback"); got != "fallback" {
			t.Errorf("expected fallback, got %s", got)
		}
	})
}
