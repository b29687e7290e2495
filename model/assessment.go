package model

// Status is the overall quality tier derived from the total score.
type Status int

const (
	StatusPoor      Status = 0
	StatusFair      Status = 1
	StatusGood      Status = 2
	StatusExcellent Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusExcellent:
		return "excellent"
	case StatusGood:
		return "good"
	case StatusFair:
		return "fair"
	case StatusPoor:
		return "poor"
	}
	return "unknown"
}

// MarshalText renders the tier name, so JSON carries "excellent" not 3.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusForScore maps a total score to its tier. Boundaries are inclusive
// on the lower bound: exactly 80 is excellent, exactly 60 is good.
func StatusForScore(total int) Status {
	switch {
	case total >= 80:
		return StatusExcellent
	case total >= 60:
		return StatusGood
	case total >= 40:
		return StatusFair
	default:
		return StatusPoor
	}
}

// QualityAssessment is the scored view of one probe result. TotalScore is
// always the sum of the four dimension scores.
type QualityAssessment struct {
	SignalScore      int    `json:"signal_score"`
	LatencyScore     int    `json:"latency_score"`
	ReliabilityScore int    `json:"reliability_score"`
	DNSScore         int    `json:"dns_score"`
	TotalScore       int    `json:"total_score"`
	OverallStatus    Status `json:"overall_status"`
}
