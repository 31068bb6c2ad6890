// config.go - Configuration for the pool daemon
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the daemon configuration
type Config struct {
	// Pool settings
	PoolSize  int `json:"pool_size"`
	LeakIndex int `json:"leak_index"`

	// File paths
	ProvingKeyPath   string `json:"proving_key_path"`
	VerifyingKeyPath string `json:"verifying_key_path"`
	LeavesPath       string `json:"leaves_path"`
	LeakedSecretPath string `json:"leaked_secret_path"`
	LedgerPath       string `json:"ledger_path"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         8,
		LeakIndex:        2,
		ProvingKeyPath:   "proving.key",
		VerifyingKeyPath: "verifying.key",
		LeavesPath:       "leaves.json",
		LeakedSecretPath: "leaked_secret.json",
		LedgerPath:       "ledger.json",
		LogLevel:         "info",
		LogFile:          "",
	}
}

// LoadConfig loads configuration from file or creates the default
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		var config Config
		if err := json.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		if err := config.Validate(); err != nil {
			return nil, err
		}
		return &config, nil
	}

	config := DefaultConfig()
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}
	return config, nil
}

// SaveConfig writes the configuration as indented JSON
func SaveConfig(config *Config, configPath string) error {
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(config)
}

// Validate checks the configuration for inconsistent dimensions
func (c *Config) Validate() error {
	if c.PoolSize <= 0 {
		return fmt.Errorf("pool_size must be positive, got %d", c.PoolSize)
	}
	if c.LeakIndex < 0 || c.LeakIndex >= c.PoolSize {
		return fmt.Errorf("leak_index %d outside pool of size %d", c.LeakIndex, c.PoolSize)
	}
	return nil
}
