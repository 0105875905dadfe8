package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "ALLOW_ORIGIN", "USE_CONNECTION_STR", "DB_CONNECTION_STR",
		"DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_DATABASE",
		"REDIS_ADDR", "REDIS_DB", "RATE_LIMIT", "RATE_LIMIT_EVERY",
		"LOG_LEVEL", "LOG_FORMAT", "LOGGING", "AUTH_LOG_PATH", "GOOGLE_REDIRECT_URL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SECRET_KEY", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowOrigin)
	assert.Equal(t, uint(20), cfg.RateLimit)
	assert.Equal(t, time.Second, cfg.RateLimitEvery)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.AuthLogging)
	assert.Equal(t, filepath.Join("log", "auth.log"), cfg.AuthLogPath)
	assert.Equal(t, "test-secret", cfg.SecretKey)
	assert.False(t, cfg.DB.UseConnString)
	assert.Contains(t, cfg.Google.RedirectURL, "/api/v1/auth/google/callback")
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOW_ORIGIN", "http://localhost:3000, https://gradlinkup.app,")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_LIMIT_EVERY", "1m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOGGING", "true")
	t.Setenv("AUTH_LOG_PATH", "/var/log/gradlinkup/auth.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://gradlinkup.app"}, cfg.AllowOrigin)
	assert.Equal(t, uint(5), cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitEvery)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.AuthLogging)
	assert.Equal(t, "/var/log/gradlinkup/auth.log", cfg.AuthLogPath)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"PORT":               "eighty",
		"USE_CONNECTION_STR": "maybe",
		"RATE_LIMIT":         "0",
		"RATE_LIMIT_EVERY":   "soon",
		"SECRET_KEY":         "",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: "5432", User: "u", Password: "p", Name: "gl"}
	dsn, err := d.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/gl?sslmode=disable", dsn)

	_, err = DatabaseConfig{Host: "localhost"}.DSN()
	assert.Error(t, err)

	_, err = DatabaseConfig{UseConnString: true}.DSN()
	assert.Error(t, err)

	dsn, err = DatabaseConfig{UseConnString: true, ConnString: "host=db"}.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db", dsn)
}
