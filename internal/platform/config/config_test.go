package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":4000" {
		t.Errorf("expected default addr :4000, got %s", cfg.Addr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected default session TTL 24h, got %s", cfg.SessionTTL)
	}
	if !cfg.RunMigrations {
		t.Error("expected migrations enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9999")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg := Load()

	if cfg.Addr != ":9999" {
		t.Errorf("expected addr :9999, got %s", cfg.Addr)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected session TTL 1h, got %s", cfg.SessionTTL)
	}
	if cfg.RunMigrations {
		t.Error("expected migrations disabled")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DatabaseURL:  "postgres://localhost/epms",
		Environment:  "development",
		SessionTTL:   time.Hour,
		MaxBodyBytes: 1048576,
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	missing := base
	missing.DatabaseURL = ""
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}

	prod := base
	prod.Environment = "production"
	if err := prod.Validate(); err == nil {
		t.Error("expected error for empty JWT_SECRET in production")
	}

	tiny := base
	tiny.MaxBodyBytes = 100
	if err := tiny.Validate(); err == nil {
		t.Error("expected error for tiny MAX_BODY_BYTES")
	}
}
