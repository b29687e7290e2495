package engine

import "netdoc/model"

// Dimension maxima. The four dimensions sum to 100.
const (
	SignalMax      = 30
	LatencyMax     = 30
	ReliabilityMax = 20
	DNSMax         = 20
)

// Score converts a probe result into a quality assessment. Pure function:
// missing measurements contribute zero to their dimension, it never fails.
func Score(p *model.ProbeResult) model.QualityAssessment {
	a := model.QualityAssessment{
		SignalScore:      signalScore(p),
		LatencyScore:     latencyScore(p),
		ReliabilityScore: reliabilityScore(p),
		DNSScore:         dnsScore(p),
	}
	a.TotalScore = a.SignalScore + a.LatencyScore + a.ReliabilityScore + a.DNSScore
	a.OverallStatus = model.StatusForScore(a.TotalScore)
	return a
}

// signalScore scores signal strength out of 30. Tier boundaries are
// inclusive on the lower bound: exactly -50 dBm scores 25, not 30.
func signalScore(p *model.ProbeResult) int {
	if !p.SignalMeasured() {
		return 0
	}
	dbm := *p.Wifi.SignalDbm
	switch {
	case dbm >= -30:
		return 30
	case dbm >= -50:
		return 25
	case dbm >= -70:
		return 15
	default:
		return 5
	}
}

// latencyScore scores average ping RTT out of 30; only a successful ping
// contributes.
func latencyScore(p *model.ProbeResult) int {
	if !p.LatencyMeasured() {
		return 0
	}
	ms := *p.Ping.LatencyMs
	switch {
	case ms < 20:
		return 30
	case ms < 50:
		return 25
	case ms < 100:
		return 15
	default:
		return 5
	}
}

// reliabilityScore scores packet loss out of 20. A ping that never ran
// reports 100% loss and lands in the bottom tier.
func reliabilityScore(p *model.ProbeResult) int {
	loss := p.Ping.PacketLossPct
	switch {
	case loss == 0:
		return 20
	case loss < 5:
		return 15
	case loss < 10:
		return 10
	default:
		return 5
	}
}

// dnsScore scores resolution success rate across the probe domains out
// of 20.
func dnsScore(p *model.ProbeResult) int {
	rate := p.DNS.SuccessRate
	switch {
	case rate >= 1.0:
		return 20
	case rate >= 0.66:
		return 15
	case rate >= 0.33:
		return 10
	default:
		return 5
	}
}
