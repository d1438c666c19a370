package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Auth           AuthConfig
	Generator      GeneratorConfig
	RateLimit      RateLimitConfig
	Logging        LoggingConfig
	AdminBootstrap AdminBootstrapConfig
	Environment    string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MaxIdle        int
	MigrationsPath string
}

type AuthConfig struct {
	JWTSecret     string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// GeneratorConfig configures the description generator service. The API is
// OpenAI-compatible (POST {BaseURL}/chat/completions).
type GeneratorConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// RateLimitConfig throttles credential endpoints. LoginPer15Minutes is the
// per-client budget for login and register attempts; zero disables throttling.
// Forwarding headers are only trusted when the peer is inside TrustedProxies.
type RateLimitConfig struct {
	LoginPer15Minutes int
	TrustedProxies    []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type AdminBootstrapConfig struct {
	Name     string
	Email    string
	Password string
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
			MaxIdle:        getEnvInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			MigrationsPath: getEnv("DATABASE_MIGRATIONS_PATH", "internal/storage/postgres/migrations"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			Issuer:        getEnv("JWT_ISSUER", "eventorbit"),
			AccessExpiry:  time.Duration(getEnvInt("JWT_ACCESS_EXPIRY_MINUTES", 60)) * time.Minute,
			RefreshExpiry: time.Duration(getEnvInt("JWT_REFRESH_EXPIRY_HOURS", 168)) * time.Hour,
		},
		Generator: GeneratorConfig{
			BaseURL: getEnv("GENERATOR_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  getEnv("GENERATOR_API_KEY", ""),
			Model:   getEnv("GENERATOR_MODEL", "gpt-4o-mini"),
			Timeout: time.Duration(getEnvInt("GENERATOR_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			LoginPer15Minutes: getEnvInt("RATE_LIMIT_LOGIN_PER_15_MINUTES", 5),
			TrustedProxies:    getEnvList("RATE_LIMIT_TRUSTED_PROXIES"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		AdminBootstrap: AdminBootstrapConfig{
			Name:     getEnv("ADMIN_NAME", ""),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
