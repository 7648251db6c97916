package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate_backend/internal/platform/db"
	"candidate_backend/internal/platform/redis"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "queue:reports", cfg.ReportQueueKey)
	assert.Equal(t, "reports", cfg.ReportOutputDir)
	assert.Equal(t, 3, cfg.JobMaxAttempts)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.Equal(t, time.Minute, cfg.AuthRateWindow)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("WORKER_CONCURRENCY", "4")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "redis:6380", cfg.RedisAddr())
	assert.Equal(t, 4, cfg.WorkerConcurrency)
	assert.False(t, cfg.RunMigrations)
}

func TestConfig_Handoffs(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/c.db")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PASSWORD", "pw")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	dbCfg := cfg.Database()
	assert.Equal(t, db.DriverSQLite, dbCfg.Driver)
	assert.Equal(t, "/tmp/c.db", dbCfg.Path)
	assert.True(t, dbCfg.RunMigrations)
	assert.Equal(t, redis.Options{Addr: "cache:6379", Password: "pw"}, cfg.Redis())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL", "forever")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"asymmetric algorithm", map[string]string{"JWT_SECRET": "s", "JWT_ALGORITHM": "RS256"}},
		{"none algorithm", map[string]string{"JWT_SECRET": "s", "JWT_ALGORITHM": "none"}},
		{"negative ttl", map[string]string{"JWT_SECRET": "s", "ACCESS_TOKEN_TTL": "-1m"}},
		{"sub-second ttl", map[string]string{"JWT_SECRET": "s", "ACCESS_TOKEN_TTL": "500ms"}},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate_ClampsWorkerSettings(t *testing.T) {
	cfg := &Config{
		JWTSecret:         "s",
		JWTAlgorithm:      "HS256",
		AccessTokenTTL:    time.Minute,
		DBDriver:          "sqlite",
		WorkerConcurrency: 0,
		JobMaxAttempts:    -2,
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.WorkerConcurrency)
	assert.Equal(t, 1, cfg.JobMaxAttempts)
	assert.False(t, cfg.RedisEnabled())
}
