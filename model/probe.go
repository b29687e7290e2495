package model

import "time"

// ProbeResult is an immutable snapshot of one diagnostic run's measurements.
// It is constructed by the collector registry, consumed by the scorer and
// classifier, and discarded. Sub-structs are owned by exactly one collector,
// so concurrent collection never touches the same field twice.
type ProbeResult struct {
	Timestamp    time.Time
	Wifi         WifiProbe
	Ping         PingProbe
	DNS          DNSProbe
	Connectivity ConnectivityProbe

	// Errors holds probe-level failures. A failed probe means a missing
	// measurement, never an aborted run.
	Errors []string
}

// WifiProbe holds the wireless interface reading.
type WifiProbe struct {
	Connected bool
	SSID      string
	Interface string

	// SignalDbm is nil when the signal could not be measured.
	SignalDbm *int
}

// PingProbe holds latency and loss from an ICMP probe.
type PingProbe struct {
	// LatencyMs is the average round-trip time; nil when no ping succeeded.
	LatencyMs *float64
	MinMs     float64
	MaxMs     float64
	MdevMs    float64

	// PacketLossPct is 0..100. A probe that never ran reports 100.
	PacketLossPct int
}

// DNSLookup is the result of resolving one probe domain.
type DNSLookup struct {
	Domain  string
	Success bool
	TimeMs  float64
	Err     string
}

// DNSProbe holds resolution results across the probe domain set.
type DNSProbe struct {
	// SuccessRate is 0.0..1.0 across the probe domains.
	SuccessRate     float64
	AvgResolutionMs float64
	Lookups         []DNSLookup
}

// ConnectivityProbe holds the internet reachability check.
type ConnectivityProbe struct {
	InternetConnected bool
}

// SignalMeasured reports whether a signal strength reading was obtained.
func (p *ProbeResult) SignalMeasured() bool {
	return p.Wifi.SignalDbm != nil
}

// LatencyMeasured reports whether at least one ping round-trip succeeded.
func (p *ProbeResult) LatencyMeasured() bool {
	return p.Ping.LatencyMs != nil
}
