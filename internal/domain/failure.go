package domain

// CaseFailure represents a failed test case
type CaseFailure struct {
	CaseID      string `json:"case_id"`
	DisplayName string `json:"display_name"`
	Message     string `json:"message"`
	Output      string `json:"output,omitempty"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Resolved    bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// FailuresOf extracts a failure record for every failed result.
func FailuresOf(results []CaseResult) []CaseFailure {
	var failures []CaseFailure
	for _, r := range results {
		if r.Status != StatusFailed {
			continue
		}
		message := ""
		if r.Err != nil {
			message = r.Err.Error()
		}
		failures = append(failures, CaseFailure{
			CaseID:      r.CaseID,
			DisplayName: r.DisplayName,
			Message:     message,
			Output:      r.Output,
		})
	}
	return failures
}
