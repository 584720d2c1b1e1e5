package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FailsWithoutBackend(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	cfg, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingBackend)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
	assert.Contains(t, err.Error(), "SUPABASE_ANON_KEY")
}

func TestLoadConfig_FailsWithoutKey(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "  ")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingBackend)
	assert.NotContains(t, err.Error(), "SUPABASE_URL")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("NOTIFY_INTERVAL", "")
	t.Setenv("LOCAL_STORAGE_DRIVER", "memory")
	t.Setenv("TZ_LOCATION", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://example.supabase.co", cfg.BackendURL)
	assert.Equal(t, time.Hour, cfg.NotifyInterval)
	assert.Equal(t, time.Second, cfg.NotifyInitialDelay)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.NotificationsEnabled)
}

func TestLoadConfig_RejectsUnknownStorage(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("LOCAL_STORAGE_DRIVER", "etcd")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestParseTrustedProxies(t *testing.T) {
	assert.Nil(t, parseTrustedProxies(" "))
	assert.Nil(t, parseTrustedProxies(" , "))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, parseTrustedProxies("10.0.0.1, 10.0.0.2,"))
}
