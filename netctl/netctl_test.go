package netctl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeController(iface string) (*ExecController, *[][]string) {
	var calls [][]string
	c := NewExecController(iface, nil)
	c.run = func(ctx context.Context, argv []string) ([]byte, error) {
		calls = append(calls, argv)
		return []byte("ok"), nil
	}
	return c, &calls
}

func TestApplyRunsFullSequence(t *testing.T) {
	c, calls := newFakeController("wlp3s0")

	detail, err := c.Apply(context.Background(), OpResetWifiAdapter)
	require.NoError(t, err)
	assert.Equal(t, "wifi radio cycled", detail)
	require.Len(t, *calls, 2)
	assert.Equal(t, []string{"nmcli", "radio", "wifi", "off"}, (*calls)[0])
	assert.Equal(t, []string{"nmcli", "radio", "wifi", "on"}, (*calls)[1])
}

func TestApplySubstitutesInterface(t *testing.T) {
	c, calls := newFakeController("wlp3s0")

	_, err := c.Apply(context.Background(), OpReleaseRenewIP)
	require.NoError(t, err)
	require.Len(t, *calls, 2)
	assert.Equal(t, []string{"dhclient", "-r", "wlp3s0"}, (*calls)[0])
	assert.Equal(t, []string{"dhclient", "wlp3s0"}, (*calls)[1])
}

func TestApplyDefaultInterface(t *testing.T) {
	c, calls := newFakeController("")

	_, err := c.Apply(context.Background(), OpReleaseRenewIP)
	require.NoError(t, err)
	assert.Equal(t, []string{"dhclient", "-r", "wlan0"}, (*calls)[0])
}

func TestApplyStopsAtFirstFailingCommand(t *testing.T) {
	c := NewExecController("wlan0", nil)
	var calls int
	c.run = func(ctx context.Context, argv []string) ([]byte, error) {
		calls++
		return []byte("rfkill: operation not permitted"), errors.New("exit status 1")
	}

	detail, err := c.Apply(context.Background(), OpResetWifiAdapter)
	require.Error(t, err)
	assert.Empty(t, detail)
	assert.Equal(t, 1, calls, "sequence must abort at first failure")
	assert.Contains(t, err.Error(), "rfkill: operation not permitted")
}

func TestApplyUnknownOp(t *testing.T) {
	c, calls := newFakeController("wlan0")

	_, err := c.Apply(context.Background(), Op("defragment-ether"))
	require.Error(t, err)
	assert.Empty(t, *calls)
}

func TestEveryOpHasCommandsAndDetail(t *testing.T) {
	ops := []Op{
		OpResetWifiAdapter,
		OpRestartNetworkManager,
		OpRestartNetworkStack,
		OpFlushDNSCache,
		OpRestartDNSService,
		OpReleaseRenewIP,
		OpFlushRoutingCache,
		OpOptimizeTCPBuffers,
	}
	c, _ := newFakeController("wlan0")
	for _, op := range ops {
		cmds, err := c.commandsFor(op)
		require.NoError(t, err, "op %s", op)
		assert.NotEmpty(t, cmds, "op %s", op)
		assert.NotEqual(t, "done", opDetail(op), "op %s should have a specific detail line", op)
	}
	// reload-network-modules needs a live sysfs entry; only check its detail.
	assert.NotEqual(t, "done", opDetail(OpReloadNetworkModules))
}
