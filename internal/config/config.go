package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Colony   ColonyConfig   `yaml:"colony"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Cache    CacheConfig    `yaml:"cache"`
	Sync     SyncConfig     `yaml:"sync"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
	RateLimit   int    `yaml:"rate_limit"`
}

// DatabaseConfig selects the store. Driver is "postgres" or "sqlite"; for
// sqlite URL is a file path or ":memory:".
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type ColonyConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// DefaultsConfig controls what gets generated on first start.
type DefaultsConfig struct {
	StatsCatalog string `yaml:"stats_catalog"`
	Vanilla      bool   `yaml:"vanilla"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SyncConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.IntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
			RateLimit:   120,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			URL:    "wardrobe.db",
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Colony: ColonyConfig{
			URL: "http://localhost:9090",
		},
		Defaults: DefaultsConfig{
			Vanilla: true,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Sync: SyncConfig{
			IntervalMs: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Sync.IntervalMs <= 0 {
		return fmt.Errorf("sync interval must be positive, got %d", c.Sync.IntervalMs)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WARDROBE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("WARDROBE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("WARDROBE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("WARDROBE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("WARDROBE_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("WARDROBE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("WARDROBE_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("WARDROBE_COLONY_URL"); v != "" {
		cfg.Colony.URL = v
	}
	if v := os.Getenv("WARDROBE_COLONY_TOKEN"); v != "" {
		cfg.Colony.Token = v
	}
	if v := os.Getenv("WARDROBE_STATS_CATALOG"); v != "" {
		cfg.Defaults.StatsCatalog = v
	}
	if v := os.Getenv("WARDROBE_VANILLA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Defaults.Vanilla = b
		}
	}
	if v := os.Getenv("WARDROBE_CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	if v := os.Getenv("WARDROBE_SYNC_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sync.IntervalMs = n
		}
	}
	if v := os.Getenv("WARDROBE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
