package model

import "fmt"

// ProblemCategory names one class of detected network problem. Categories
// are independent; several can be active at once. Declaration order is the
// dispatch and report order.
type ProblemCategory int

const (
	WifiDisconnected ProblemCategory = iota
	InternetDown
	PoorSignal
	ExtremeLatency
	DNSFailure
	GeneralDegradation
)

// AllProblemCategories lists every category in declaration order.
var AllProblemCategories = []ProblemCategory{
	WifiDisconnected,
	InternetDown,
	PoorSignal,
	ExtremeLatency,
	DNSFailure,
	GeneralDegradation,
}

func (c ProblemCategory) String() string {
	switch c {
	case WifiDisconnected:
		return "wifi-disconnected"
	case InternetDown:
		return "internet-down"
	case PoorSignal:
		return "poor-signal"
	case ExtremeLatency:
		return "extreme-latency"
	case DNSFailure:
		return "dns-failure"
	case GeneralDegradation:
		return "general-degradation"
	}
	return fmt.Sprintf("category-%d", int(c))
}

// MarshalText renders the category name; it also makes category-keyed maps
// serialize with readable keys.
func (c ProblemCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name back from its wire form.
func (c *ProblemCategory) UnmarshalText(text []byte) error {
	for _, cat := range AllProblemCategories {
		if cat.String() == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown problem category %q", text)
}
