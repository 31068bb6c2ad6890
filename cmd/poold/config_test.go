package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.LeakIndex < 0 || cfg.LeakIndex >= cfg.PoolSize {
		t.Errorf("default leak index %d outside default pool of size %d", cfg.LeakIndex, cfg.PoolSize)
	}
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poold.json")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load with missing file failed: %v", err)
	}
	if cfg.PoolSize != DefaultConfig().PoolSize {
		t.Errorf("missing file should yield the default config")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("load should persist the default config for the next start: %v", err)
	}

	// A second load must read the persisted file, not regenerate it.
	again, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.LedgerPath != cfg.LedgerPath {
		t.Errorf("reloaded config differs from the persisted one")
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poold.json")

	cfg := DefaultConfig()
	cfg.PoolSize = 16
	cfg.LeakIndex = 5
	cfg.LogLevel = "debug"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.PoolSize != 16 || loaded.LeakIndex != 5 || loaded.LogLevel != "debug" {
		t.Errorf("loaded config lost values: %+v", loaded)
	}
}

func TestConfigValidateRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero pool", func(c *Config) { c.PoolSize = 0 }},
		{"negative pool", func(c *Config) { c.PoolSize = -4 }},
		{"negative leak index", func(c *Config) { c.LeakIndex = -1 }},
		{"leak index past pool", func(c *Config) { c.LeakIndex = c.PoolSize }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mod(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poold.json")

	cfg := DefaultConfig()
	cfg.LeakIndex = cfg.PoolSize + 3
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("loading a config with an out-of-pool leak index should fail")
	}
}
