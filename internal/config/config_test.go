package config

import (
	"log/slog"
	"testing"
	"time"

	"reservewise/internal/auth"
	"reservewise/internal/wire"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_STRATEGY", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("API_SCHEMA", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" || cfg.APITimeout != 10*time.Second {
		t.Errorf("api = %q %v", cfg.APIBaseURL, cfg.APITimeout)
	}
	if cfg.Schema.Name != wire.English.Name {
		t.Errorf("schema = %q, want english", cfg.Schema.Name)
	}
	if cfg.Auth.Strategy != auth.StrategyMock || cfg.Auth.JWTSecret == "" {
		t.Errorf("auth = %+v, want mock with a generated secret", cfg.Auth)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_SCHEMA", "spanish")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTH_STRATEGY", "password")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuuJ4p0H8f7b1vJkq0m9n8r7s6t5u4v3w2")
	t.Setenv("JWT_SECRET", "shh")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APITimeout != 3*time.Second || cfg.Schema.Name != wire.Spanish.Name || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("cfg = %+v", cfg)
	}
	accounts := cfg.Auth.Accounts()
	if len(accounts) != 1 || accounts[0].Email != "admin@example.com" || accounts[0].DisplayName != "Admin" {
		t.Errorf("accounts = %+v", accounts)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"relative base url", map[string]string{"API_BASE_URL": "/api"}},
		{"unknown strategy", map[string]string{"AUTH_STRATEGY": "firebase"}},
		{"password without admin", map[string]string{"AUTH_STRATEGY": "password", "ADMIN_EMAIL": "", "JWT_SECRET": "x"}},
		{"password without secret", map[string]string{
			"AUTH_STRATEGY": "password", "ADMIN_EMAIL": "a@b.c", "ADMIN_PASSWORD_HASH": "h", "JWT_SECRET": "",
		}},
		{"bad schema", map[string]string{"API_SCHEMA": "klingon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDevAPI(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DEVAPI_SEED", "false")
	cfg, err := LoadDevAPI()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8000" || cfg.Seed || cfg.DatabaseURL != "" {
		t.Errorf("cfg = %+v", cfg)
	}
}
