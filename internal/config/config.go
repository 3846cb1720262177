// Package config provides centralized configuration for tempo runtime values.
package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds all runtime configuration values. Defaults are tuned
// for interactive use; every value can be overridden via TEMPO_* environment
// variables.
type RuntimeConfig struct {
	// Storage configuration
	Storage StorageConfig

	// Sync configuration
	Sync SyncConfig
}

// StorageConfig holds ledger persistence configuration.
type StorageConfig struct {
	// Path overrides the ledger file location. Empty uses the XDG default.
	Path string

	// LockWait is the bounded wait for the ledger lock before failing.
	// Default: 2s
	LockWait time.Duration
}

// SyncConfig holds remote sync configuration.
type SyncConfig struct {
	// BaseURL is the sync server base URL. Empty disables sync.
	BaseURL string

	// APIKey authenticates requests via the X-Api-Key header.
	APIKey string

	// Timeout is the per-request HTTP timeout.
	// Default: 30s
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts per request.
	// Default: 3
	MaxRetries int

	// RetryDelays are the delays between retry attempts.
	// Default: [0s, 5s, 30s]
	RetryDelays []time.Duration
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			LockWait: 2 * time.Second,
		},
		Sync: SyncConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelays: []time.Duration{
				0,                // Immediate first attempt
				5 * time.Second,  // Retry after 5s
				30 * time.Second, // Retry after 30s
			},
		},
	}
}

// Load returns the runtime configuration with environment overrides applied.
func Load() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	if v := os.Getenv("TEMPO_LEDGER"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("TEMPO_LOCK_WAIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Storage.LockWait = d
		}
	}

	if v := os.Getenv("TEMPO_SYNC_URL"); v != "" {
		c.Sync.BaseURL = v
	}
	if v := os.Getenv("TEMPO_SYNC_API_KEY"); v != "" {
		c.Sync.APIKey = v
	}
	if v := os.Getenv("TEMPO_SYNC_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Sync.Timeout = d
		}
	}
	if v := os.Getenv("TEMPO_SYNC_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Sync.MaxRetries = n
		}
	}
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}
