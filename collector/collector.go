// Package collector gathers raw network measurements: wifi signal, ping
// latency and loss, DNS resolution, and internet reachability.
package collector

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"netdoc/config"
	"netdoc/model"
)

// Collector gathers one independent measurement into a probe result.
// A collector only ever writes the probe sub-struct it owns.
type Collector interface {
	Name() string
	Collect(ctx context.Context, res *model.ProbeResult) error
}

// Registry holds the probe collectors for one diagnostic run.
type Registry struct {
	collectors []Collector
	limit      int
	log        *zap.Logger
}

// NewRegistry creates a registry with all default collectors.
func NewRegistry(cfg config.Config, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	probeTimeout := time.Duration(cfg.ProbeTimeoutSec) * time.Second
	return &Registry{
		collectors: []Collector{
			&WifiCollector{Iface: cfg.WifiInterface},
			&PingCollector{Host: cfg.PingHost, Count: cfg.PingCount},
			NewDNSCollector(cfg.DNSProbeDomains),
			&ConnectivityCollector{Timeout: probeTimeout},
		},
		limit: 4,
		log:   log,
	}
}

// Add registers an additional collector.
func (r *Registry) Add(c Collector) {
	r.collectors = append(r.collectors, c)
}

// CollectAll runs all collectors concurrently against a bounded pool and
// merges their independent results into one probe snapshot. Probes share
// no state; a failed probe leaves its measurement absent and records the
// error, never aborting the run.
func (r *Registry) CollectAll(ctx context.Context) *model.ProbeResult {
	parts := make([]*model.ProbeResult, len(r.collectors))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, c := range r.collectors {
		i, c := i, c
		g.Go(func() error {
			part := &model.ProbeResult{}
			// Ping that never ran means total loss, not zero loss.
			part.Ping.PacketLossPct = 100
			if err := c.Collect(ctx, part); err != nil {
				r.log.Warn("probe failed", zap.String("collector", c.Name()), zap.Error(err))
				part.Errors = append(part.Errors, c.Name()+": "+err.Error())
			}
			parts[i] = part
			return nil
		})
	}
	_ = g.Wait()

	res := &model.ProbeResult{Timestamp: time.Now()}
	res.Ping.PacketLossPct = 100
	for i, c := range r.collectors {
		merge(res, parts[i], c.Name())
	}
	return res
}

// merge copies the sub-struct owned by the named collector from src into
// dst. Ownership is by collector name, so two probes can never fight over
// a field.
func merge(dst, src *model.ProbeResult, name string) {
	switch name {
	case "wifi":
		dst.Wifi = src.Wifi
	case "ping":
		dst.Ping = src.Ping
	case "dns":
		dst.DNS = src.DNS
	case "connectivity":
		dst.Connectivity = src.Connectivity
	}
	dst.Errors = append(dst.Errors, src.Errors...)
}
