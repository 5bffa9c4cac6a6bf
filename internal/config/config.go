package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAppName     = "ContactVault"
	defaultAppEnv      = "development"
	defaultPort        = "3000"
	defaultLogLevel    = "info"
	defaultFrontendURL = "http://localhost:5173"
	defaultShutdown    = 10 * time.Second
	defaultTokenTTL    = time.Hour

	// insecureSecret is the fallback signing secret. Startup logs a warning
	// whenever it is in effect; it must never survive into production.
	insecureSecret = "123"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	TokenTTL       time.Duration
	FrontendURL    string
	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config
// instance. DATABASE_URL and REDIS_URL may be left unset: the server then runs
// with an in-memory store and without redis-backed middleware, which is only
// suitable for development.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      getEnv("JWT_SECRET", insecureSecret),
		TokenTTL:       defaultTokenTTL,
		FrontendURL:    getEnv("FRONTEND_URL", defaultFrontendURL),
		ShutdownPeriod: defaultShutdown,
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	return cfg, nil
}

// InsecureSecret reports whether the signing secret is the built-in fallback
// rather than an operator-provided value.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == insecureSecret
}

// IsDev reports whether the configured environment is a development one.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
