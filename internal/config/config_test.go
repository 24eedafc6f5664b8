package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"WARDROBE_PORT", "WARDROBE_METRICS_PORT", "WARDROBE_ADMIN_TOKEN", "WARDROBE_RATE_LIMIT",
	"WARDROBE_DATABASE_DRIVER", "WARDROBE_DATABASE_URL", "WARDROBE_HERMES_URL",
	"WARDROBE_COLONY_URL", "WARDROBE_COLONY_TOKEN", "WARDROBE_STATS_CATALOG", "WARDROBE_VANILLA",
	"WARDROBE_CACHE_ENABLED", "WARDROBE_SYNC_INTERVAL_MS", "WARDROBE_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimit)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.URL != "wardrobe.db" {
		t.Errorf("expected sqlite wardrobe.db, got %s %s", cfg.Database.Driver, cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Colony.URL != "http://localhost:9090" {
		t.Errorf("expected colony URL, got %s", cfg.Colony.URL)
	}
	if cfg.Defaults.StatsCatalog != "" {
		t.Errorf("expected builtin stats catalog, got %q", cfg.Defaults.StatsCatalog)
	}
	if !cfg.Defaults.Vanilla {
		t.Error("expected vanilla outfits by default")
	}
	if !cfg.Cache.Enabled {
		t.Error("expected worn cache enabled by default")
	}
	if cfg.SyncInterval() != 10*time.Second {
		t.Errorf("expected SyncInterval 10s, got %v", cfg.SyncInterval())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WARDROBE_PORT", "9000")
	t.Setenv("WARDROBE_METRICS_PORT", "9001")
	t.Setenv("WARDROBE_ADMIN_TOKEN", "secret-token")
	t.Setenv("WARDROBE_RATE_LIMIT", "5")
	t.Setenv("WARDROBE_DATABASE_DRIVER", "postgres")
	t.Setenv("WARDROBE_DATABASE_URL", "postgres://localhost/wardrobe_test")
	t.Setenv("WARDROBE_HERMES_URL", "nats://nats:4222")
	t.Setenv("WARDROBE_COLONY_URL", "http://colony:9090")
	t.Setenv("WARDROBE_COLONY_TOKEN", "colony-secret")
	t.Setenv("WARDROBE_STATS_CATALOG", "/etc/wardrobe/stats.yaml")
	t.Setenv("WARDROBE_VANILLA", "false")
	t.Setenv("WARDROBE_CACHE_ENABLED", "false")
	t.Setenv("WARDROBE_SYNC_INTERVAL_MS", "2000")
	t.Setenv("WARDROBE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Server.RateLimit != 5 {
		t.Errorf("expected rate limit 5, got %d", cfg.Server.RateLimit)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver, got '%s'", cfg.Database.Driver)
	}
	if cfg.Database.URL != "postgres://localhost/wardrobe_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Colony.URL != "http://colony:9090" {
		t.Errorf("expected colony URL, got '%s'", cfg.Colony.URL)
	}
	if cfg.Colony.Token != "colony-secret" {
		t.Errorf("expected colony token, got '%s'", cfg.Colony.Token)
	}
	if cfg.Defaults.StatsCatalog != "/etc/wardrobe/stats.yaml" {
		t.Errorf("expected stats catalog path, got '%s'", cfg.Defaults.StatsCatalog)
	}
	if cfg.Defaults.Vanilla {
		t.Error("expected vanilla disabled")
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled")
	}
	if cfg.SyncInterval() != 2*time.Second {
		t.Errorf("expected SyncInterval 2s, got %v", cfg.SyncInterval())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "wardrobe.yaml")
	data := `
server:
  port: 7000
database:
  driver: postgres
  url: postgres://db/wardrobe
defaults:
  vanilla: false
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.URL != "postgres://db/wardrobe" {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Defaults.Vanilla {
		t.Error("expected vanilla disabled from file")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got '%s'", cfg.Logging.Level)
	}

	// env wins over file
	t.Setenv("WARDROBE_PORT", "7100")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("expected env port 7100, got %d", cfg.Server.Port)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("WARDROBE_DATABASE_DRIVER", "mysql")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
