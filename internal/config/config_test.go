package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LoginLimit != 5 || cfg.LoginWindow != 5*time.Minute {
		t.Fatalf("unexpected login quota: %d/%s", cfg.LoginLimit, cfg.LoginWindow)
	}
	if cfg.RegisterLimit != 3 || cfg.RegisterWindow != 10*time.Minute {
		t.Fatalf("unexpected register quota: %d/%s", cfg.RegisterLimit, cfg.RegisterWindow)
	}
	if !cfg.IsDev() {
		t.Fatal("development env should report IsDev")
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "development")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadRequiresStoresOutsideDev(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}
}

func TestDurationOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LOGIN_RATE_WINDOW", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.LoginWindow != time.Minute {
		t.Fatalf("expected bare seconds to parse, got %s", cfg.LoginWindow)
	}
}
