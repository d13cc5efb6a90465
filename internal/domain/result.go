package domain

import "time"

// Status is the terminal state of an executed test case.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// CaseResult represents the result of executing a single test case
type CaseResult struct {
	CaseID      string        // Unique ID of the executed case
	DisplayName string        // Human-readable case name
	Status      Status        // Terminal state of the case
	Output      string        // Raw output from the case body
	Err         error         // Error if execution itself failed
	Duration    time.Duration // Time taken to execute
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	SkippedCases    int     `json:"skipped_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure for a test run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []CaseFailure `json:"details"`
}
