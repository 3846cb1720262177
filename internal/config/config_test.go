package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, 2*time.Second, cfg.Storage.LockWait)
	assert.Empty(t, cfg.Sync.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Sync.Timeout)
	assert.Equal(t, 3, cfg.Sync.MaxRetries)
	assert.Len(t, cfg.Sync.RetryDelays, 3)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TEMPO_LEDGER", "/custom/ledger.json")
	t.Setenv("TEMPO_LOCK_WAIT", "500ms")
	t.Setenv("TEMPO_SYNC_URL", "https://sync.example.com/api")
	t.Setenv("TEMPO_SYNC_API_KEY", "secret")
	t.Setenv("TEMPO_SYNC_TIMEOUT", "10s")
	t.Setenv("TEMPO_SYNC_MAX_RETRIES", "5")

	cfg := Load()

	assert.Equal(t, "/custom/ledger.json", cfg.Storage.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Storage.LockWait)
	assert.Equal(t, "https://sync.example.com/api", cfg.Sync.BaseURL)
	assert.Equal(t, "secret", cfg.Sync.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Sync.Timeout)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("TEMPO_LOCK_WAIT", "soon")
	t.Setenv("TEMPO_SYNC_MAX_RETRIES", "-1")

	cfg := Load()

	assert.Equal(t, 2*time.Second, cfg.Storage.LockWait)
	assert.Equal(t, 3, cfg.Sync.MaxRetries)
}
