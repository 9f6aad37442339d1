package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"MONGODB_CONNECT_STRING", "MONGO_URI", "MONGO_DATABASE", "PORT", "SERVER_PORT",
		"ENVIRONMENT", "STRICT_REPLACE", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "portfolio", cfg.MongoDatabase)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.StrictReplace)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigPrefersPrimaryNames(t *testing.T) {
	t.Setenv("MONGODB_CONNECT_STRING", "mongodb://db:27017")
	t.Setenv("MONGO_URI", "mongodb://ignored:27017")
	t.Setenv("PORT", "8080")
	t.Setenv("SERVER_PORT", "9090")

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoadConfigFallsBackToAliases(t *testing.T) {
	t.Setenv("MONGODB_CONNECT_STRING", "")
	t.Setenv("MONGO_URI", "mongodb://alias:27017")
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "9090")

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://alias:27017", cfg.MongoURI)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestGetEnvAsIntAndBool(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "forty")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_BAD_BOOL", "maybe")

	assert.Equal(t, 42, getEnvAsInt("X_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("X_BAD_INT", 1))
	assert.True(t, getEnvAsBool("X_BOOL", false))
	assert.False(t, getEnvAsBool("X_BAD_BOOL", false))
}
