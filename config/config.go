package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Config holds user-configurable probe and remediation defaults.
type Config struct {
	PingHost         string      `json:"ping_host"`
	PingCount        int         `json:"ping_count"`
	DNSProbeDomains  []string    `json:"dns_probe_domains"`
	WifiInterface    string      `json:"wifi_interface"`
	ProbeTimeoutSec  int         `json:"probe_timeout_sec"`
	ActionTimeoutSec int         `json:"action_timeout_sec"`
	ParallelDispatch bool        `json:"parallel_dispatch"`
	Alerts           AlertConfig `json:"alerts"`
}

// AlertConfig defines notification destinations for degraded reports.
type AlertConfig struct {
	Webhook string `json:"webhook"`
	Command string `json:"command"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		PingHost:         "8.8.8.8",
		PingCount:        5,
		DNSProbeDomains:  []string{"google.com", "cloudflare.com", "github.com"},
		WifiInterface:    "wlan0",
		ProbeTimeoutSec:  10,
		ActionTimeoutSec: 8,
		ParallelDispatch: true,
		Alerts:           AlertConfig{},
	}
}

// Path returns ~/.config/netdoc/config.json (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "" // refuse to fall back to /tmp (security risk)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "netdoc", "config.json")
}

// Load loads config from disk; returns defaults on error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("netdoc: warning: config parse error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
