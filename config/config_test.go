package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8.8.8.8", cfg.PingHost)
	assert.Equal(t, 5, cfg.PingCount)
	assert.Equal(t, []string{"google.com", "cloudflare.com", "github.com"}, cfg.DNSProbeDomains)
	assert.Equal(t, "wlan0", cfg.WifiInterface)
	assert.True(t, cfg.ParallelDispatch)
	assert.Positive(t, cfg.ProbeTimeoutSec)
	assert.Positive(t, cfg.ActionTimeoutSec)
}

func TestPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "netdoc", "config.json"), Path())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.PingHost = "1.1.1.1"
	cfg.WifiInterface = "wlp2s0"
	cfg.Alerts.Webhook = "https://hooks.example.com/netdoc"
	require.NoError(t, Save(cfg))

	got := Load()
	assert.Equal(t, "1.1.1.1", got.PingHost)
	assert.Equal(t, "wlp2s0", got.WifiInterface)
	assert.Equal(t, "https://hooks.example.com/netdoc", got.Alerts.Webhook)

	// File must not be world-readable.
	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadReturnsDefaultsOnMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Equal(t, Default(), Load())
}

func TestLoadKeepsParsedFieldsOnPartialConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "netdoc", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(`{"ping_host":"9.9.9.9"}`), 0600))

	got := Load()
	assert.Equal(t, "9.9.9.9", got.PingHost)
	assert.Equal(t, 5, got.PingCount, "unset fields keep defaults")
}
