package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "API_SECRET",
		"NAVIGATION_TIMEOUT_SECONDS", "SELECTOR_TIMEOUT_SECONDS",
		"SETTLE_DELAY_SECONDS", "CHECK_TIMEOUT_SECONDS",
		"MAX_SESSIONS", "QUEUE_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "change-this-secret", cfg.APISecret)
	require.Equal(t, 60*time.Second, cfg.NavigationTimeout)
	require.Equal(t, 30*time.Second, cfg.SelectorTimeout)
	require.Equal(t, 3*time.Second, cfg.SettleDelay)
	require.Equal(t, 180*time.Second, cfg.CheckTimeout)
	require.Equal(t, int64(2), cfg.MaxSessions)
	require.Equal(t, 30*time.Second, cfg.QueueTimeout)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("API_SECRET", "s3cret")
	t.Setenv("NAVIGATION_TIMEOUT_SECONDS", "5")
	t.Setenv("MAX_SESSIONS", "4")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "s3cret", cfg.APISecret)
	require.Equal(t, 5*time.Second, cfg.NavigationTimeout)
	require.Equal(t, int64(4), cfg.MaxSessions)
}

func TestLoadRejectsGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv("NAVIGATION_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("MAX_SESSIONS", "-3")

	cfg := Load()
	require.Equal(t, 60*time.Second, cfg.NavigationTimeout)
	require.Equal(t, int64(2), cfg.MaxSessions)
}
