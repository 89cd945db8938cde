package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Indices   IndicesConfig
	Display   DisplayConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a reverse proxy that overwrites those headers.
	TrustProxy bool
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds session token and password settings
type AuthConfig struct {
	TokenKey     string        // Base64 fernet key; generated at startup when empty
	TokenTTL     time.Duration // Lifetime of issued session tokens
	CookieName   string
	CookieSecure bool
	BcryptCost   int
}

// RateLimitConfig limits login and registration attempts per client IP
type RateLimitConfig struct {
	AuthRequests int
	AuthWindow   time.Duration
}

// IndicesConfig holds central bank API and cache settings
type IndicesConfig struct {
	BaseURL         string
	CacheTTL        time.Duration
	RefreshSchedule string // cron expression, empty disables scheduled refresh
}

// DisplayConfig holds presentation settings for formatted values
type DisplayConfig struct {
	Currency string // ISO 4217 code
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	tokenTTL, err := getEnvDuration("AUTH_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	authWindow, err := getEnvDuration("AUTH_RATE_WINDOW", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	authRequests, err := getEnvInt("AUTH_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("INDICES_CACHE_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	bcryptCost, err := getEnvInt("AUTH_BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port:       getEnv("SERVER_PORT", "3001"),
			Host:       getEnv("SERVER_HOST", "localhost"),
			TrustProxy: getEnv("SERVER_TRUST_PROXY", "false") == "true",
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investments.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:*",
				"http://127.0.0.1:*",
			}),
		},
		Auth: AuthConfig{
			TokenKey:     os.Getenv("AUTH_TOKEN_KEY"),
			TokenTTL:     tokenTTL,
			CookieName:   getEnv("AUTH_COOKIE_NAME", "invest_token"),
			CookieSecure: getEnv("AUTH_COOKIE_SECURE", "true") != "false",
			BcryptCost:   bcryptCost,
		},
		RateLimit: RateLimitConfig{
			AuthRequests: authRequests,
			AuthWindow:   authWindow,
		},
		Indices: IndicesConfig{
			BaseURL:         getEnv("BCB_BASE_URL", "https://api.bcb.gov.br/dados/serie"),
			CacheTTL:        cacheTTL,
			RefreshSchedule: getEnv("INDICES_REFRESH_SCHEDULE", "0 6 * * *"),
		},
		Display: DisplayConfig{
			Currency: getEnv("DISPLAY_CURRENCY", "BRL"),
		},
	}

	if config.Auth.TokenKey == "" {
		log.Println("AUTH_TOKEN_KEY not set, sessions will not survive a restart")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma-separated variable, dropping empty entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
