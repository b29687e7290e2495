package engine

import "netdoc/model"

// Classification thresholds. These are deliberately tighter than the
// scorer's tier boundaries: classification should trigger remediation
// before the score alone would call the connection poor.
const (
	poorSignalDbm     = -60
	extremeLatencyMs  = 200.0
	hardPacketLossPct = 10
)

// ClassifyOptions carries caller policy the classifier cannot decide from
// measurements alone.
type ClassifyOptions struct {
	// ProblemReported signals that the user claims something is wrong.
	// When set and no threshold rule fires, GeneralDegradation is added
	// as a fallback category.
	ProblemReported bool
}

// Classify applies the threshold rules to a probe result and returns the
// active problem categories in declaration order. Deterministic and
// side-effect-free; rules are evaluated independently, so several
// categories can be active at once.
func Classify(p *model.ProbeResult, opts ClassifyOptions) []model.ProblemCategory {
	var cats []model.ProblemCategory

	if !p.Wifi.Connected {
		cats = append(cats, model.WifiDisconnected)
	}
	if !p.Connectivity.InternetConnected {
		cats = append(cats, model.InternetDown)
	}
	if p.SignalMeasured() && *p.Wifi.SignalDbm < poorSignalDbm {
		cats = append(cats, model.PoorSignal)
	}
	if p.LatencyMeasured() && *p.Ping.LatencyMs > extremeLatencyMs {
		cats = append(cats, model.ExtremeLatency)
	}
	// Partial DNS failure on its own is not dispatchable; it needs a hard
	// connectivity symptom alongside it. Slow-but-working DNS folds into
	// GeneralDegradation below.
	if p.DNS.SuccessRate < 1.0 && hasHardSymptom(p) {
		cats = append(cats, model.DNSFailure)
	}

	if opts.ProblemReported && len(cats) == 0 {
		cats = append(cats, model.GeneralDegradation)
	}
	return cats
}

// hasHardSymptom reports whether the probe shows a connectivity symptom
// beyond DNS itself.
func hasHardSymptom(p *model.ProbeResult) bool {
	if !p.Connectivity.InternetConnected {
		return true
	}
	if p.Ping.PacketLossPct >= hardPacketLossPct {
		return true
	}
	return p.LatencyMeasured() && *p.Ping.LatencyMs > extremeLatencyMs
}
