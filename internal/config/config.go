package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const devJWTSecret = "dev-secret-change-me"

// Config holds the application configuration.
type Config struct {
	Env            string
	ServerPort     int
	DatabasePath   string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	AllowedOrigins []string
	LogLevel       string

	// Token bucket applied per client IP to login and registration.
	AuthRatePerMinute float64
	AuthRateBurst     int

	MaintenanceCron string
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	port, err := getEnvInt("PORT", 3000)
	if err != nil {
		return nil, err
	}
	cost, err := getEnvInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("AUTH_RATE_BURST", 5)
	if err != nil {
		return nil, err
	}
	ratePerMin, err := strconv.ParseFloat(getEnv("AUTH_RATE_PER_MINUTE", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_PER_MINUTE: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		ServerPort:        port,
		DatabasePath:      getEnv("DATABASE_PATH", "./db/database.sqlite"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenTTL:          ttl,
		BcryptCost:        cost,
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AuthRatePerMinute: ratePerMin,
		AuthRateBurst:     burst,
		MaintenanceCron:   getEnv("MAINTENANCE_CRON", "0 3 * * *"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET must be set when APP_ENV=production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.AuthRatePerMinute <= 0 || cfg.AuthRateBurst <= 0 {
		return nil, errors.New("AUTH_RATE_PER_MINUTE and AUTH_RATE_BURST must be positive")
	}
	if strings.TrimSpace(cfg.MaintenanceCron) == "" {
		return nil, errors.New("MAINTENANCE_CRON must not be empty")
	}
	if _, err := cron.ParseStandard(cfg.MaintenanceCron); err != nil {
		return nil, fmt.Errorf("invalid MAINTENANCE_CRON: %w", err)
	}

	return cfg, nil
}

// String returns a printable form of the config with the secret masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{env: %s, port: %d, db: %s, jwt: ***, ttl: %s}", c.Env, c.ServerPort, c.DatabasePath, c.TokenTTL)
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
