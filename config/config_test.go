package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "DB_DRIVER", "SQLITE_PATH", "JWT_SECRET", "REDIS_HOST", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "menucraft.db", cfg.SQLitePath)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Empty(t, cfg.RedisAddr(), "redis is off unless a host is set")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.menucraft.io, https://staging.menucraft.io")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr())
	assert.Contains(t, cfg.PostgresDSN(), "password=hunter2")
	assert.Equal(t, []string{"https://app.menucraft.io", "https://staging.menucraft.io"}, cfg.AllowedOrigins)
}

func TestLoadConfigRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfigProduction(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", string(Production))

	cfg := &Config{
		ServerPort: "8080",
		DBDriver:   "postgres",
		DBPassword: "hunter2",
		SQLitePath: "x.db",
		JWTSecret:  "dev-secret",
	}
	err := ValidateConfig(cfg)
	require.Error(t, err, "the development JWT secret is refused in production")

	cfg.JWTSecret = "a-real-secret"
	assert.NoError(t, ValidateConfig(cfg))

	cfg.DBPassword = ""
	assert.Error(t, ValidateConfig(cfg), "production postgres needs a password")
}
