package model

import "time"

// RemediationOutcome records one remediation attempt. Outcomes are appended
// in attempt order; a category's list ends at its first success.
type RemediationOutcome struct {
	Action    string `json:"action"`
	Succeeded bool   `json:"succeeded"`
	Detail    string `json:"detail"`
}

// DiagnosticReport is the top-level aggregate handed to the response layer.
// Problems preserves classification order; each outcome list preserves the
// dispatcher's attempt order.
type DiagnosticReport struct {
	Timestamp     time.Time         `json:"timestamp"`
	Hostname      string            `json:"hostname,omitempty"`
	TotalScore    int               `json:"totalScore"`
	OverallStatus Status            `json:"overallStatus"`
	Assessment    QualityAssessment `json:"assessment"`
	Problems      []ProblemCategory `json:"problems"`

	Remediations map[ProblemCategory][]RemediationOutcome `json:"remediations,omitempty"`
}

// CategoryExhausted reports whether a category was dispatched and every one
// of its actions failed. Guidance-only categories count as exhausted since
// no automated fix was applied.
func (r *DiagnosticReport) CategoryExhausted(cat ProblemCategory) bool {
	outcomes, ok := r.Remediations[cat]
	if !ok || len(outcomes) == 0 {
		return false
	}
	for _, o := range outcomes {
		if o.Succeeded {
			return false
		}
	}
	return true
}

// AnyExhausted reports whether any dispatched category ran out of actions
// without a success.
func (r *DiagnosticReport) AnyExhausted() bool {
	for _, cat := range r.Problems {
		if r.CategoryExhausted(cat) {
			return true
		}
	}
	return false
}
