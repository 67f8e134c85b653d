package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv           = "dev"
	defaultHTTPAddr         = ":8080"
	defaultDatabaseURL      = "thriftsave.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTAccessTTL     = "24h"
	defaultTicketPrefix     = "TKT"
	defaultTicketAttempts   = "3"
	defaultTicketRetryDelay = "20ms"
	defaultDispatchInterval = "30s"
	defaultAutoMigrate      = "true"
)

type Config struct {
	AppEnv             string
	HTTPAddr           string
	DatabaseURL        string
	AutoMigrate        bool
	JWTSecret          string
	JWTAccessTTL       time.Duration
	CORSAllowedOrigins []string
	Ticket             TicketConfig
	DispatchInterval   time.Duration
}

type TicketConfig struct {
	Prefix     string
	Attempts   int
	RetryDelay time.Duration
}

// Load reads an optional .env file (or the files given) and then the process
// environment. Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.AutoMigrate = parseBoolEnv("AUTO_MIGRATE", defaultAutoMigrate)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	cfg.Ticket.Prefix = strings.ToUpper(strings.TrimSpace(getEnv("TICKET_PREFIX", defaultTicketPrefix)))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.Ticket.Attempts, err = parseIntEnv("TICKET_ISSUE_ATTEMPTS", defaultTicketAttempts)
	if err != nil {
		return nil, err
	}

	cfg.Ticket.RetryDelay, err = parseDurationEnv("TICKET_RETRY_DELAY", defaultTicketRetryDelay)
	if err != nil {
		return nil, err
	}

	cfg.DispatchInterval, err = parseDurationEnv("NOTIFICATION_DISPATCH_INTERVAL", defaultDispatchInterval)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the app runs in a prod-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.Ticket.Prefix == "" {
		return fmt.Errorf("TICKET_PREFIX must not be empty")
	}
	if cfg.Ticket.Attempts < 1 {
		return fmt.Errorf("TICKET_ISSUE_ATTEMPTS must be >= 1")
	}
	if cfg.Ticket.RetryDelay < 0 {
		return fmt.Errorf("TICKET_RETRY_DELAY must be >= 0")
	}
	if cfg.DispatchInterval <= 0 {
		return fmt.Errorf("NOTIFICATION_DISPATCH_INTERVAL must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
			return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
