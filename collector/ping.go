package collector

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"netdoc/model"
)

var (
	rttRe  = regexp.MustCompile(`rtt min/avg/max/mdev = ([\d.]+)/([\d.]+)/([\d.]+)/([\d.]+)`)
	lossRe = regexp.MustCompile(`([\d.]+)% packet loss`)
)

// PingCollector measures round-trip latency and packet loss by shelling
// out to ping.
type PingCollector struct {
	Host  string
	Count int
}

func (c *PingCollector) Name() string { return "ping" }

// Collect runs `ping -c N host` and parses the summary lines. A ping that
// fails outright reports 100% loss with latency unmeasured.
func (c *PingCollector) Collect(ctx context.Context, res *model.ProbeResult) error {
	host := c.Host
	if host == "" {
		host = "8.8.8.8"
	}
	count := c.Count
	if count <= 0 {
		count = 5
	}

	// One second per echo plus head-room for the final timeout.
	cctx, cancel := context.WithTimeout(ctx, time.Duration(count+5)*time.Second)
	defer cancel()

	res.Ping.PacketLossPct = 100

	out, err := exec.CommandContext(cctx, "ping", "-c", strconv.Itoa(count), host).Output()
	// ping exits non-zero on loss but still prints the summary; parse
	// whatever output we got before deciding this was a hard failure.
	parsePing(string(out), &res.Ping)
	if err != nil && len(out) == 0 {
		return fmt.Errorf("ping %s: %w", host, err)
	}
	return nil
}

// parsePing extracts loss percentage and rtt statistics from ping output.
func parsePing(out string, p *model.PingProbe) {
	if m := lossRe.FindStringSubmatch(out); m != nil {
		if loss, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.PacketLossPct = int(loss)
		}
	}
	if m := rttRe.FindStringSubmatch(out); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		avg, _ := strconv.ParseFloat(m[2], 64)
		max, _ := strconv.ParseFloat(m[3], 64)
		mdev, _ := strconv.ParseFloat(m[4], 64)
		p.MinMs = min
		p.MaxMs = max
		p.MdevMs = mdev
		p.LatencyMs = &avg
	}
}
