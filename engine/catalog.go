package engine

import (
	"netdoc/model"
	"netdoc/netctl"
)

// Action is one remediation catalog entry. An entry either requests a
// network-control operation or, when Op is empty, emits guidance only.
type Action struct {
	Name     string
	Op       netctl.Op
	Guidance string
}

// catalog maps each problem category to its ordered action list. Order is
// the dispatch order; the dispatcher stops a category at its first success.
// Actions are idempotent and safe to repeat.
var catalog = map[model.ProblemCategory][]Action{
	model.WifiDisconnected: {
		{Name: "reset-wifi-adapter", Op: netctl.OpResetWifiAdapter},
		{Name: "reload-network-modules", Op: netctl.OpReloadNetworkModules},
		{Name: "restart-network-manager", Op: netctl.OpRestartNetworkManager},
		{Name: "restart-network-stack", Op: netctl.OpRestartNetworkStack},
	},
	model.InternetDown: {
		{Name: "flush-dns-cache", Op: netctl.OpFlushDNSCache},
		{Name: "restart-dns-service", Op: netctl.OpRestartDNSService},
		{Name: "release-renew-ip", Op: netctl.OpReleaseRenewIP},
		{Name: "restart-network-stack", Op: netctl.OpRestartNetworkStack},
	},
	// Weak signal is a physical-layer issue; there is nothing to restart.
	model.PoorSignal: {
		{Name: "signal-guidance", Guidance: "no automated fix available: weak signal is a physical issue; move closer to the router or reduce interference"},
	},
	model.ExtremeLatency: {
		{Name: "flush-routing-cache", Op: netctl.OpFlushRoutingCache},
		{Name: "flush-dns-cache", Op: netctl.OpFlushDNSCache},
		{Name: "optimize-tcp-buffers", Op: netctl.OpOptimizeTCPBuffers},
	},
	model.DNSFailure: {
		{Name: "flush-dns-cache", Op: netctl.OpFlushDNSCache},
		{Name: "restart-dns-service", Op: netctl.OpRestartDNSService},
	},
	model.GeneralDegradation: {
		{Name: "restart-network-stack", Op: netctl.OpRestartNetworkStack},
		{Name: "reload-network-modules", Op: netctl.OpReloadNetworkModules},
		{Name: "release-renew-ip", Op: netctl.OpReleaseRenewIP},
		{Name: "flush-dns-cache", Op: netctl.OpFlushDNSCache},
	},
}

// ActionsFor returns the ordered action list for a category, or nil for a
// category missing from the catalog. The enum is closed, so a miss is a
// programming defect; the catalog test fails loudly on it, production
// dispatch just records nothing for the category.
func ActionsFor(cat model.ProblemCategory) []Action {
	return catalog[cat]
}
