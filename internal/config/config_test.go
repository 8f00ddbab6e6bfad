package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "bookshelf", cfg.Database.Database)
	assert.Equal(t, "localhost:9000", cfg.MinIO.Endpoint)
	assert.Equal(t, "@every 6h", cfg.Queue.SweepSchedule)
	assert.Equal(t, 24*time.Hour, cfg.Queue.SweepMinAge)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("DB_MAX_CONNS", "50")
	t.Setenv("QUEUE_SWEEP_MIN_AGE", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, int32(50), cfg.Database.MaxConns)
	assert.Equal(t, time.Hour, cfg.Queue.SweepMinAge)
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err, "default credentials must not pass in production")

	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("MINIO_SECRET_KEY", "real-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Environment)
}

func TestValidatePoolBounds(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "10")

	_, err := Load()
	assert.Error(t, err)
}
