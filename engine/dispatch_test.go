package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"netdoc/model"
	"netdoc/netctl"
)

// fakeController records every applied operation and answers from a script.
type fakeController struct {
	mu      sync.Mutex
	applied []netctl.Op
	fail    map[netctl.Op]error
}

func (f *fakeController) Apply(ctx context.Context, op netctl.Op) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.applied = append(f.applied, op)
	f.mu.Unlock()
	if err := f.fail[op]; err != nil {
		return "", err
	}
	return "done: " + string(op), nil
}

func (f *fakeController) ops() []netctl.Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]netctl.Op(nil), f.applied...)
}

func TestDispatchStopsAtFirstSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctl := &fakeController{fail: map[netctl.Op]error{
		netctl.OpResetWifiAdapter: errors.New("rfkill: device busy"),
	}}
	d := NewDispatcher(ctl, nil, 0, false)

	results := d.Dispatch(context.Background(), []model.ProblemCategory{model.WifiDisconnected})
	outcomes := results[model.WifiDisconnected]

	require.Len(t, outcomes, 2, "dispatch must stop after the first success")
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, "reset-wifi-adapter", outcomes[0].Action)
	assert.Contains(t, outcomes[0].Detail, "rfkill")
	assert.True(t, outcomes[1].Succeeded)
	assert.Equal(t, "reload-network-modules", outcomes[1].Action)

	// The remaining catalog entries were never attempted.
	assert.Equal(t, []netctl.Op{netctl.OpResetWifiAdapter, netctl.OpReloadNetworkModules}, ctl.ops())
}

func TestDispatchRecordsEveryFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctl := &fakeController{fail: map[netctl.Op]error{
		netctl.OpFlushDNSCache:     errors.New("resolvectl: not found"),
		netctl.OpRestartDNSService: errors.New("systemd-resolved failed to restart"),
	}}
	d := NewDispatcher(ctl, nil, 0, false)

	results := d.Dispatch(context.Background(), []model.ProblemCategory{model.DNSFailure})
	outcomes := results[model.DNSFailure]

	require.Len(t, outcomes, 2, "every attempt must be recorded when all fail")
	for _, o := range outcomes {
		assert.False(t, o.Succeeded)
		assert.NotEmpty(t, o.Detail)
	}

	rep := model.DiagnosticReport{
		Problems:     []model.ProblemCategory{model.DNSFailure},
		Remediations: results,
	}
	assert.True(t, rep.CategoryExhausted(model.DNSFailure))
	assert.True(t, rep.AnyExhausted())
}

func TestDispatchGuidanceOnlyCategory(t *testing.T) {
	ctl := &fakeController{}
	d := NewDispatcher(ctl, nil, 0, false)

	results := d.Dispatch(context.Background(), []model.ProblemCategory{model.PoorSignal})
	outcomes := results[model.PoorSignal]

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Succeeded, "guidance is advice, not an applied fix")
	assert.Contains(t, outcomes[0].Detail, "closer to the router")
	assert.Empty(t, ctl.ops(), "guidance entries must not touch the controller")
}

func TestDispatchParallelCategoriesSequentialWithin(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctl := &fakeController{fail: map[netctl.Op]error{
		netctl.OpFlushRoutingCache: errors.New("ip: permission denied"),
	}}
	d := NewDispatcher(ctl, nil, 0, true)

	cats := []model.ProblemCategory{model.ExtremeLatency, model.DNSFailure}
	results := d.Dispatch(context.Background(), cats)

	require.Len(t, results, 2, "one outcome slice per active category")

	lat := results[model.ExtremeLatency]
	require.Len(t, lat, 2)
	assert.False(t, lat[0].Succeeded)
	assert.True(t, lat[1].Succeeded)
	assert.Equal(t, "flush-dns-cache", lat[1].Action)

	dns := results[model.DNSFailure]
	require.Len(t, dns, 1)
	assert.True(t, dns[0].Succeeded)
	assert.Equal(t, "flush-dns-cache", dns[0].Action)
}

func TestDispatchNoCategories(t *testing.T) {
	d := NewDispatcher(&fakeController{}, nil, 0, true)
	results := d.Dispatch(context.Background(), nil)
	assert.Empty(t, results)
}

// slowController blocks until its context expires.
type slowController struct{}

func (slowController) Apply(ctx context.Context, op netctl.Op) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestDispatchActionTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := NewDispatcher(slowController{}, nil, 20*time.Millisecond, false)

	start := time.Now()
	results := d.Dispatch(context.Background(), []model.ProblemCategory{model.DNSFailure})
	elapsed := time.Since(start)

	outcomes := results[model.DNSFailure]
	require.Len(t, outcomes, 2, "a hung action times out and dispatch moves on")
	for _, o := range outcomes {
		assert.False(t, o.Succeeded)
		assert.Contains(t, o.Detail, "deadline")
	}
	assert.Less(t, elapsed, 2*time.Second)
}
