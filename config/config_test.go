package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	for _, k := range []string{"PORT", "FARM_API_URL", "FARM_API_TIMEOUT", "DB_PATH", "SESSION_STORE", "POLL_INTERVAL", "SIMULATE_BOUND", "VERIFY_SESSION"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, "kaard.db", cfg.DBPath)
	assert.Equal(t, "sqlite", cfg.SessionStore)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 0.005, cfg.SimulateBound)
	assert.False(t, cfg.VerifySession)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FARM_API_URL", "http://api.test/api")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("SIMULATE_BOUND", "0.01")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("VERIFY_SESSION", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://api.test/api", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 0.01, cfg.SimulateBound)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.VerifySession)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "soon")
	t.Setenv("SIMULATE_BOUND", "-1")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 0.005, cfg.SimulateBound)
}
