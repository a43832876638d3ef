package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr = %s", cfg.App.Addr())
	}
	if cfg.Auth.RoleCacheTTL() != 5*time.Minute {
		t.Fatalf("role cache ttl = %s", cfg.Auth.RoleCacheTTL())
	}
	if !cfg.Postgres.RunMigrations {
		t.Fatal("migrations should default to on")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LEGAL_API_URL", "https://legal.example.com/api/v2")
	t.Setenv("LEGAL_API_TIMEOUT_SECONDS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "9090" || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.LegalAPI.BaseURL != "https://legal.example.com/api/v2" || cfg.LegalAPI.Timeout() != 4*time.Second {
		t.Fatalf("unexpected legal api config %+v", cfg.LegalAPI)
	}
}

func TestLoadRejectsBadInteger(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDurations(t *testing.T) {
	if (AppConfig{}).RequestTimeout() != 0 {
		t.Fatal("zero timeout should disable")
	}
	if (LegalAPIConfig{}).Timeout() != 10*time.Second {
		t.Fatal("legal api timeout should fall back to 10s")
	}
	if (PostgresConfig{}).PingTimeout() != 2*time.Second || (RedisConfig{PingTimeoutSeconds: 5}).PingTimeout() != 5*time.Second {
		t.Fatal("unexpected ping timeouts")
	}
}
