package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PROVIDER_BASE_URL", "https://status.example.com")
	t.Setenv("PROVIDER_CLIENT_ID", "client-id")
	t.Setenv("PROVIDER_CLIENT_SECRET", "client-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.InterFlightDelay)
	assert.Equal(t, 6*time.Hour, cfg.WindowBefore)
	assert.Equal(t, 48*time.Hour, cfg.WindowAfter)
	assert.Equal(t, 15, cfg.DelayThreshold)
	assert.Equal(t, 5*time.Minute, cfg.RetrySweepInterval)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 50, cfg.PendingBatchSize)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POLL_INTERVAL_MINUTES", "5")
	t.Setenv("DELAY_THRESHOLD_MINUTES", "30")
	t.Setenv("WINDOW_AFTER_HOURS", "72")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
	assert.Equal(t, 30, cfg.DelayThreshold)
	assert.Equal(t, 72*time.Hour, cfg.WindowAfter)
}

func TestLoadConfigRequiresProviderBaseURL(t *testing.T) {
	t.Setenv("PROVIDER_BASE_URL", "")
	t.Setenv("PROVIDER_CLIENT_ID", "client-id")
	t.Setenv("PROVIDER_CLIENT_SECRET", "client-secret")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_BASE_URL")
}

func TestLoadConfigRequiresProviderCredentials(t *testing.T) {
	t.Setenv("PROVIDER_BASE_URL", "https://status.example.com")
	t.Setenv("PROVIDER_CLIENT_ID", "")
	t.Setenv("PROVIDER_CLIENT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_CLIENT_ID")
}
