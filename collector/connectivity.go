package collector

import (
	"context"
	"io"
	"net/http"
	"time"

	"netdoc/model"
)

// connectivityURL answers with 204 and no body; any well-formed response
// means the internet path works.
const connectivityURL = "http://www.google.com/generate_204"

// ConnectivityCollector checks internet reachability with a single HTTP
// request to a captive-portal detection endpoint.
type ConnectivityCollector struct {
	Timeout time.Duration
	URL     string

	client *http.Client
}

func (c *ConnectivityCollector) Name() string { return "connectivity" }

func (c *ConnectivityCollector) Collect(ctx context.Context, res *model.ProbeResult) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	url := c.URL
	if url == "" {
		url = connectivityURL
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		// Unreachable is a measurement, not a collector failure.
		res.Connectivity.InternetConnected = false
		return nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	res.Connectivity.InternetConnected = resp.StatusCode < 400
	return nil
}
