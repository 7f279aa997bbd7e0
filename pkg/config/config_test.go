package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("port=%q", cfg.App.Port)
	}
	if cfg.DB.Driver != DriverMemory {
		t.Fatalf("driver=%q", cfg.DB.Driver)
	}
	if !cfg.Shop.TaxRate.Equal(decimal.RequireFromString("0.07")) {
		t.Fatalf("tax rate=%s", cfg.Shop.TaxRate)
	}
	if cfg.Shop.SessionTTL != 30*time.Minute {
		t.Fatalf("session ttl=%s", cfg.Shop.SessionTTL)
	}
	if cfg.DB.UsesSQL() {
		t.Fatalf("memory driver must not use sql")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHOP_PORT", "9090")
	t.Setenv("SHOP_TAX_RATE", "0.0825")
	t.Setenv("SHOP_DB_DRIVER", "SQLITE3")
	t.Setenv("SHOP_DB_DSN", "file:test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Fatalf("port=%q", cfg.App.Port)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Fatalf("driver=%q", cfg.DB.Driver)
	}
	if !cfg.Shop.TaxRate.Equal(decimal.RequireFromString("0.0825")) {
		t.Fatalf("tax rate=%s", cfg.Shop.TaxRate)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"bad driver":    {"SHOP_DB_DRIVER": "oracle"},
		"negative rate": {"SHOP_TAX_RATE": "-0.01"},
		"bad rate":      {"SHOP_TAX_RATE": "seven"},
		"zero limit":    {"SHOP_SESSION_LIMIT_PER_MIN": "0"},
		"zero ttl":      {"SHOP_SESSION_TTL": "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_ReadsDocumentedKeysInEverySection(t *testing.T) {
	t.Setenv("SHOP_LOG_LEVEL", "debug")
	t.Setenv("SHOP_DB_AUTOMIGRATE", "true")
	t.Setenv("SHOP_SESSION_TTL", "5m")
	t.Setenv("SHOP_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SHOP_METRICS_TOKEN", "scrape")
	t.Setenv("TAX_RATE", "0.5")
	t.Setenv("SHOP_SHOP_TAX_RATE", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("log level=%q", cfg.App.LogLevel)
	}
	if !cfg.DB.AutoMigrate {
		t.Fatalf("automigrate not read")
	}
	if cfg.Shop.SessionTTL != 5*time.Minute {
		t.Fatalf("session ttl=%s", cfg.Shop.SessionTTL)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("redis url=%q", cfg.Redis.URL)
	}
	if cfg.Metrics.Token != "scrape" {
		t.Fatalf("metrics token=%q", cfg.Metrics.Token)
	}
	if !cfg.Shop.TaxRate.Equal(decimal.RequireFromString("0.07")) {
		t.Fatalf("tax rate must only come from SHOP_TAX_RATE, got %s", cfg.Shop.TaxRate)
	}
}
