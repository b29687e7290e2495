// Package netctl issues OS-level network control requests. It wraps each
// remediation operation in a fixed, idempotent command sequence and reports
// the outcome; it never inspects or second-guesses what the commands did.
package netctl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Op names one network-control operation.
type Op string

const (
	OpResetWifiAdapter      Op = "reset-wifi-adapter"
	OpReloadNetworkModules  Op = "reload-network-modules"
	OpRestartNetworkManager Op = "restart-network-manager"
	OpRestartNetworkStack   Op = "restart-network-stack"
	OpFlushDNSCache         Op = "flush-dns-cache"
	OpRestartDNSService     Op = "restart-dns-service"
	OpReleaseRenewIP        Op = "release-renew-ip"
	OpFlushRoutingCache     Op = "flush-routing-cache"
	OpOptimizeTCPBuffers    Op = "optimize-tcp-buffers"
)

// Controller applies one network-control operation and reports its outcome.
// Implementations must be safe for concurrent use: the dispatcher may apply
// operations for different problem categories at the same time.
type Controller interface {
	Apply(ctx context.Context, op Op) (detail string, err error)
}

// ExecController runs each operation as a sequence of OS commands. Every
// command inherits the caller's context, so a dispatch timeout kills the
// child process.
type ExecController struct {
	iface string
	log   *zap.Logger

	// run is swappable for tests.
	run func(ctx context.Context, argv []string) ([]byte, error)
}

// NewExecController creates a controller acting on the given wireless
// interface (defaults to wlan0 when empty).
func NewExecController(iface string, log *zap.Logger) *ExecController {
	if iface == "" {
		iface = "wlan0"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecController{
		iface: iface,
		log:   log,
		run: func(ctx context.Context, argv []string) ([]byte, error) {
			return exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
		},
	}
}

// Apply runs the command sequence for op. The first failing command aborts
// the sequence and surfaces its captured output in the error.
func (c *ExecController) Apply(ctx context.Context, op Op) (string, error) {
	cmds, err := c.commandsFor(op)
	if err != nil {
		return "", err
	}
	for _, argv := range cmds {
		c.log.Debug("netctl exec", zap.Strings("argv", argv))
		out, err := c.run(ctx, argv)
		if err != nil {
			msg := strings.TrimSpace(string(out))
			if msg != "" {
				return "", fmt.Errorf("%s: %w: %s", argv[0], err, msg)
			}
			return "", fmt.Errorf("%s: %w", argv[0], err)
		}
	}
	return opDetail(op), nil
}

// commandsFor maps an operation to its command sequence. Interface-specific
// operations substitute the controller's interface name.
func (c *ExecController) commandsFor(op Op) ([][]string, error) {
	switch op {
	case OpResetWifiAdapter:
		return [][]string{
			{"nmcli", "radio", "wifi", "off"},
			{"nmcli", "radio", "wifi", "on"},
		}, nil
	case OpReloadNetworkModules:
		driver, err := wifiDriver(c.iface)
		if err != nil {
			return nil, fmt.Errorf("resolve driver for %s: %w", c.iface, err)
		}
		return [][]string{
			{"modprobe", "-r", driver},
			{"modprobe", driver},
		}, nil
	case OpRestartNetworkManager:
		return [][]string{{"systemctl", "restart", "NetworkManager"}}, nil
	case OpRestartNetworkStack:
		// Unit name differs across distros; try networkd first.
		return [][]string{
			{"sh", "-c", "systemctl restart systemd-networkd || systemctl restart networking"},
		}, nil
	case OpFlushDNSCache:
		return [][]string{{"resolvectl", "flush-caches"}}, nil
	case OpRestartDNSService:
		return [][]string{{"systemctl", "restart", "systemd-resolved"}}, nil
	case OpReleaseRenewIP:
		return [][]string{
			{"dhclient", "-r", c.iface},
			{"dhclient", c.iface},
		}, nil
	case OpFlushRoutingCache:
		return [][]string{{"ip", "route", "flush", "cache"}}, nil
	case OpOptimizeTCPBuffers:
		return [][]string{
			{"sysctl", "-w", "net.ipv4.tcp_rmem=4096 87380 6291456"},
			{"sysctl", "-w", "net.ipv4.tcp_wmem=4096 65536 4194304"},
		}, nil
	}
	return nil, fmt.Errorf("unknown operation %q", op)
}

// opDetail is the human-readable result line for a completed operation.
func opDetail(op Op) string {
	switch op {
	case OpResetWifiAdapter:
		return "wifi radio cycled"
	case OpReloadNetworkModules:
		return "wireless driver module reloaded"
	case OpRestartNetworkManager:
		return "NetworkManager restarted"
	case OpRestartNetworkStack:
		return "network stack restarted"
	case OpFlushDNSCache:
		return "DNS cache flushed"
	case OpRestartDNSService:
		return "DNS resolver service restarted"
	case OpReleaseRenewIP:
		return "DHCP lease released and renewed"
	case OpFlushRoutingCache:
		return "routing cache flushed"
	case OpOptimizeTCPBuffers:
		return "TCP buffer sizes tuned"
	}
	return "done"
}

// wifiDriver resolves the kernel module backing a wireless interface via
// the /sys/class/net driver symlink.
func wifiDriver(iface string) (string, error) {
	target, err := os.Readlink(filepath.Join("/sys/class/net", iface, "device/driver/module"))
	if err != nil {
		return "", err
	}
	return filepath.Base(target), nil
}
