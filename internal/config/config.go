// Package config loads process-wide settings once at startup.
// Values come from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"candidate_backend/internal/platform/db"
	"candidate_backend/internal/platform/redis"
)

const (
	defaultAccessTokenTTL = 30 * time.Minute
	defaultBcryptCost     = 10
)

// Config holds every runtime setting of the server and the worker.
// It is built once in main and handed to constructors explicitly.
type Config struct {
	Port string

	// Token signing
	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	BcryptCost int

	// Database
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBPath        string
	RunMigrations bool

	// Redis broker; an empty host selects the in-process queue
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Report job
	ReportQueueKey    string
	ReportOutputDir   string
	WorkerConcurrency int
	JobMaxAttempts    int
	JobRetryBackoff   time.Duration

	// Requests per window allowed on /users/login and /users/register, per client IP
	AuthRateLimit  int
	AuthRateWindow time.Duration

	LogLevel  string
	LogFormat string
}

// LoadConfig reads .env (if present) and the environment into a Config.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTAlgorithm:   strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		AccessTokenTTL: getEnvDuration("ACCESS_TOKEN_TTL", defaultAccessTokenTTL),

		BcryptCost: getEnvInt("BCRYPT_COST", defaultBcryptCost),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "candidates"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBPath:        getEnv("DB_PATH", "candidates.db"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		ReportQueueKey:    getEnv("REPORT_QUEUE_KEY", "queue:reports"),
		ReportOutputDir:   getEnv("REPORT_OUTPUT_DIR", "reports"),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 1),
		JobMaxAttempts:    getEnvInt("JOB_MAX_ATTEMPTS", 3),
		JobRetryBackoff:   getEnvDuration("JOB_RETRY_BACKOFF", 2*time.Second),

		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow: getEnvDuration("AUTH_RATE_WINDOW", time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the process cannot safely run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: unsupported JWT_ALGORITHM %q", c.JWTAlgorithm)
	}
	if c.AccessTokenTTL < time.Second {
		return errors.New("config: ACCESS_TOKEN_TTL must be at least 1s")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.WorkerConcurrency < 1 {
		c.WorkerConcurrency = 1
	}
	if c.JobMaxAttempts < 1 {
		c.JobMaxAttempts = 1
	}
	if c.AuthRateWindow <= 0 {
		c.AuthRateWindow = time.Minute
	}
	return nil
}

// RedisEnabled reports whether a broker address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port of the broker.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Database returns the connection settings for db.OpenDB.
func (c *Config) Database() db.Config {
	return db.Config{
		Driver:        c.DBDriver,
		Host:          c.DBHost,
		Port:          c.DBPort,
		User:          c.DBUser,
		Password:      c.DBPassword,
		Name:          c.DBName,
		SSLMode:       c.DBSSLMode,
		Path:          c.DBPath,
		RunMigrations: c.RunMigrations,
	}
}

// Redis returns the broker settings for redis.NewRedisClient.
func (c *Config) Redis() redis.Options {
	return redis.Options{Addr: c.RedisAddr(), Password: c.RedisPassword}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("30m", "2s").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
