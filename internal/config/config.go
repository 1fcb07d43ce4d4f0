// Package config reads process configuration from the environment, after
// loading a .env file when one is present.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"reservewise/internal/auth"
	"reservewise/internal/wire"
)

type AuthConfig struct {
	Strategy          string
	AdminEmail        string
	AdminPasswordHash string
	AdminName         string
	JWTSecret         string
	SessionTTL        time.Duration
	SecureCookie      bool
}

type ReminderConfig struct {
	Enabled          bool
	Schedule         string
	SendGridAPIKey   string
	FromEmail        string
	FromName         string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// Config is the dashboard server's configuration.
type Config struct {
	Port       string
	APIBaseURL string
	Schema     wire.Schema
	APITimeout time.Duration
	LogLevel   slog.Level
	Auth       AuthConfig
	Reminders  ReminderConfig
}

// DevAPIConfig configures the development stand-in for the external API.
type DevAPIConfig struct {
	Port        string
	DatabaseURL string
	Schema      wire.Schema
	Seed        bool
	LogLevel    slog.Level
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}
}

// Load reads the dashboard configuration.
func Load() (*Config, error) {
	loadDotEnv()

	schema, err := wire.ParseSchema(getEnvOrDefault("API_SCHEMA", "english"))
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Port:       getEnvOrDefault("PORT", "8080"),
		APIBaseURL: getEnvOrDefault("API_BASE_URL", "http://localhost:8000"),
		Schema:     schema,
		APITimeout: getEnvAsDurationOrDefault("API_TIMEOUT", 10*time.Second),
		LogLevel:   parseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		Auth: AuthConfig{
			Strategy:          strings.ToLower(getEnvOrDefault("AUTH_STRATEGY", auth.StrategyMock)),
			AdminEmail:        os.Getenv("ADMIN_EMAIL"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			AdminName:         getEnvOrDefault("ADMIN_NAME", "Admin"),
			JWTSecret:         os.Getenv("JWT_SECRET"),
			SessionTTL:        getEnvAsDurationOrDefault("SESSION_TTL", 8*time.Hour),
			SecureCookie:      getEnvAsBoolOrDefault("SECURE_COOKIE", false),
		},
		Reminders: ReminderConfig{
			Enabled:          getEnvAsBoolOrDefault("REMINDERS_ENABLED", false),
			Schedule:         getEnvOrDefault("REMINDERS_SCHEDULE", "0 9 * * *"),
			SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
			FromEmail:        os.Getenv("SENDGRID_FROM_EMAIL"),
			FromName:         getEnvOrDefault("SENDGRID_FROM_NAME", "ReserveWise"),
			TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL %q is not an absolute URL", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}
	switch c.Auth.Strategy {
	case auth.StrategyMock:
		if c.Auth.JWTSecret == "" {
			secret, err := randomSecret()
			if err != nil {
				return err
			}
			slog.Warn("JWT_SECRET not set, sessions will not survive a restart")
			c.Auth.JWTSecret = secret
		}
	case auth.StrategyPassword:
		if c.Auth.AdminEmail == "" || c.Auth.AdminPasswordHash == "" {
			return errors.New("AUTH_STRATEGY=password needs ADMIN_EMAIL and ADMIN_PASSWORD_HASH")
		}
		if c.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET not set")
		}
	default:
		return fmt.Errorf("unknown AUTH_STRATEGY %q", c.Auth.Strategy)
	}
	return nil
}

// Accounts lists the operators the password strategy accepts.
func (c AuthConfig) Accounts() []auth.Account {
	if c.AdminEmail == "" {
		return nil
	}
	return []auth.Account{{
		Email:        c.AdminEmail,
		PasswordHash: c.AdminPasswordHash,
		DisplayName:  c.AdminName,
	}}
}

// LoadDevAPI reads the dev API configuration.
func LoadDevAPI() (*DevAPIConfig, error) {
	loadDotEnv()

	schema, err := wire.ParseSchema(getEnvOrDefault("API_SCHEMA", "english"))
	if err != nil {
		return nil, err
	}
	return &DevAPIConfig{
		Port:        getEnvOrDefault("DEVAPI_PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Schema:      schema,
		Seed:        getEnvAsBoolOrDefault("DEVAPI_SEED", true),
		LogLevel:    parseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
	}, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error generating session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	slog.Debug("environment variable not set, using default", "key", key)
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		slog.Warn("invalid boolean, using default", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "key", key, "value", value)
	}
	return defaultValue
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
