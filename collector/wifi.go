package collector

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"netdoc/model"
)

var (
	iwSSIDRe   = regexp.MustCompile(`(?m)^\s*SSID:\s*(.+)$`)
	iwSignalRe = regexp.MustCompile(`signal:\s*(-?\d+)\s*dBm`)

	iwcfgESSIDRe  = regexp.MustCompile(`ESSID:"([^"]+)"`)
	iwcfgSignalRe = regexp.MustCompile(`Signal level=(-?\d+)`)
)

// WifiCollector reads association state and signal strength from the
// wireless tools, preferring `iw` and falling back to `iwconfig`.
type WifiCollector struct {
	Iface string
}

func (c *WifiCollector) Name() string { return "wifi" }

func (c *WifiCollector) Collect(ctx context.Context, res *model.ProbeResult) error {
	iface := c.Iface
	if iface == "" {
		iface = "wlan0"
	}
	res.Wifi.Interface = iface

	if out, err := exec.CommandContext(ctx, "iw", "dev", iface, "link").Output(); err == nil {
		parseIwLink(string(out), &res.Wifi)
		return nil
	}

	out, err := exec.CommandContext(ctx, "iwconfig", iface).Output()
	if err != nil {
		return fmt.Errorf("wifi state for %s: %w", iface, err)
	}
	parseIwconfig(string(out), &res.Wifi)
	return nil
}

// parseIwLink fills the wifi probe from `iw dev <iface> link` output.
// A disassociated interface prints "Not connected."
func parseIwLink(out string, w *model.WifiProbe) {
	if strings.Contains(out, "Not connected") {
		w.Connected = false
		return
	}
	if !strings.Contains(out, "Connected to") {
		return
	}
	w.Connected = true
	if m := iwSSIDRe.FindStringSubmatch(out); m != nil {
		w.SSID = strings.TrimSpace(m[1])
	}
	if m := iwSignalRe.FindStringSubmatch(out); m != nil {
		if dbm, err := strconv.Atoi(m[1]); err == nil {
			w.SignalDbm = &dbm
		}
	}
}

// parseIwconfig fills the wifi probe from iwconfig output. An interface
// without an ESSID is treated as disconnected.
func parseIwconfig(out string, w *model.WifiProbe) {
	if m := iwcfgESSIDRe.FindStringSubmatch(out); m != nil {
		w.Connected = true
		w.SSID = m[1]
	}
	if m := iwcfgSignalRe.FindStringSubmatch(out); m != nil {
		if dbm, err := strconv.Atoi(m[1]); err == nil {
			w.SignalDbm = &dbm
		}
	}
}
