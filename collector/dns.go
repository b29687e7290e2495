package collector

import (
	"context"
	"net"
	"time"

	"netdoc/model"
)

// dnsLookupTimeout bounds one resolution attempt.
const dnsLookupTimeout = 2 * time.Second

// DNSCollector measures resolution success rate and speed across a fixed
// probe domain set.
type DNSCollector struct {
	Domains []string

	// lookup is swappable for tests; defaults to the system resolver.
	lookup func(ctx context.Context, domain string) error
}

// NewDNSCollector creates a collector for the given probe domains.
func NewDNSCollector(domains []string) *DNSCollector {
	if len(domains) == 0 {
		domains = []string{"google.com", "cloudflare.com", "github.com"}
	}
	resolver := &net.Resolver{}
	return &DNSCollector{
		Domains: domains,
		lookup: func(ctx context.Context, domain string) error {
			_, err := resolver.LookupHost(ctx, domain)
			return err
		},
	}
}

func (c *DNSCollector) Name() string { return "dns" }

// Collect resolves every probe domain and records per-domain results, the
// overall success rate, and the average resolution time of the successes.
func (c *DNSCollector) Collect(ctx context.Context, res *model.ProbeResult) error {
	var succeeded int
	var totalMs float64

	for _, domain := range c.Domains {
		lctx, cancel := context.WithTimeout(ctx, dnsLookupTimeout)
		start := time.Now()
		err := c.lookup(lctx, domain)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		cancel()

		lk := model.DNSLookup{Domain: domain, TimeMs: elapsed}
		if err != nil {
			lk.Err = err.Error()
		} else {
			lk.Success = true
			succeeded++
			totalMs += elapsed
		}
		res.DNS.Lookups = append(res.DNS.Lookups, lk)
	}

	res.DNS.SuccessRate = float64(succeeded) / float64(len(c.Domains))
	if succeeded > 0 {
		res.DNS.AvgResolutionMs = totalMs / float64(succeeded)
	}
	return nil
}
