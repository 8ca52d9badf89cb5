package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Gateway  GatewayConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
	// KeyCacheTTL bounds how stale a cached key snapshot may get
	KeyCacheTTL time.Duration
}

// JWTConfig holds JWT configuration for the admin surface
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AdminConfig holds the bootstrap admin credentials
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt hash, never the raw password
}

// GatewayConfig holds the public API access-control knobs
type GatewayConfig struct {
	// RateLimitWindow is the rolling admission window per key
	RateLimitWindow time.Duration
	// JanitorProbability is the per-admission chance of triggering a sweep
	JanitorProbability float64
	// JanitorRetention is how long rate-limit bookkeeping rows are kept;
	// must not be below RateLimitWindow
	JanitorRetention time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "autodiag"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", "redis://localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			KeyCacheTTL: getEnvAsDuration("REDIS_KEY_CACHE_TTL", 30*time.Second),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", "admin@autodiag.local"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Gateway: GatewayConfig{
			RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Second),
			JanitorProbability: getEnvAsFloat("JANITOR_PROBABILITY", 0.05),
			JanitorRetention:   getEnvAsDuration("JANITOR_RETENTION", 120*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
