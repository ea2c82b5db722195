package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "rx_nexus", cfg.Database.DBName)
	assert.Equal(t, 12*time.Hour, cfg.SessionLifetime())
	assert.Equal(t, "@every 15m", cfg.Scheduler.Refresh)
	assert.Equal(t, "@every 30m", cfg.Scheduler.Alerts)
	assert.Equal(t, 30, cfg.Scheduler.ExpiryDays)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoad_ModePrefix(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_DB_NAME", "pharmacy")
	t.Setenv("PROD_JWT_SECRET", "s3cret")
	t.Setenv("SESSION_HOURS", "8")
	t.Setenv("ALERT_EXPIRY_DAYS", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "pharmacy", cfg.Database.DBName)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 8*time.Hour, cfg.SessionLifetime())
	assert.Equal(t, 30, cfg.Scheduler.ExpiryDays)
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("APP_MODE", "staging")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err, "prod needs its own secret")
}
