package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	Auth        AuthConfig
	Sync        SyncConfig
	CORS        CORSConfig
	Environment string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CacheConfig holds cache-layer configuration. Disabling the cache turns the
// layer into a no-op; it is never an error.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// SyncConfig holds external IPO feed configuration. APIKey is the env
// fallback used when no key has been stored through the admin endpoint.
type SyncConfig struct {
	BaseURL   string
	APIKey    string
	SecretKey string // fernet key for the stored API key
	Schedule  string // cron expression, empty disables scheduled sync
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	tokenExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRE", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_DEFAULT_TTL", "3600s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_DEFAULT_TTL: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/ipo_tracker.db"),
		},
		Cache: CacheConfig{
			Enabled:    getEnvBool("CACHE_ENABLED", true),
			DefaultTTL: cacheTTL,
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenExpiry: tokenExpiry,
		},
		Sync: SyncConfig{
			BaseURL:   getEnv("IPO_ALERTS_URL", "https://api.ipoalerts.in"),
			APIKey:    getEnv("IPO_ALERTS_API_KEY", ""),
			SecretKey: getEnv("SYNC_SECRET_KEY", ""),
			Schedule:  getEnv("SYNC_SCHEDULE", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// IsProduction reports whether the service runs in production mode. In any
// other mode a failed feed fetch falls back to mock records.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
