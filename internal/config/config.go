// Package config loads the application configuration: the shared core
// settings plus the tracker-specific sections.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/SI1V/GymStars/core/config"
	coredatabase "github.com/SI1V/GymStars/core/database"
)

// Session backend selectors.
const (
	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// BotConfig carries tracker-specific knobs.
type BotConfig struct {
	// PageSize is the number of exercises per inline list page.
	PageSize int `yaml:"page_size" envconfig:"BOT_PAGE_SIZE"`
}

// SessionsConfig selects where dialog sessions live.
type SessionsConfig struct {
	Backend    string `yaml:"backend" envconfig:"SESSIONS_BACKEND"`
	RedisAddr  string `yaml:"redis_addr" envconfig:"SESSIONS_REDIS_ADDR"`
	RedisDB    int    `yaml:"redis_db" envconfig:"SESSIONS_REDIS_DB"`
	TTLMinutes int    `yaml:"ttl_minutes" envconfig:"SESSIONS_TTL_MINUTES"`
}

// OpsConfig configures the health/metrics HTTP listener. Empty disables it.
type OpsConfig struct {
	Listen string `yaml:"listen" envconfig:"OPS_LISTEN"`
}

// Config is the full application configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Bot      BotConfig           `yaml:"bot"`
	Sessions SessionsConfig      `yaml:"sessions"`
	Ops      OpsConfig           `yaml:"ops"`
}

// CoreConfig exposes the embedded core configuration for the cmd runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return err
	}

	if cfg.Bot.PageSize < 0 {
		return fmt.Errorf("bot.page_size must not be negative")
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Sessions.Backend))
	if backend == "" {
		backend = SessionsMemory
	}
	switch backend {
	case SessionsMemory:
	case SessionsRedis:
		if strings.TrimSpace(cfg.Sessions.RedisAddr) == "" {
			return fmt.Errorf("sessions.redis_addr is required when sessions.backend is 'redis'")
		}
	default:
		return fmt.Errorf("unknown sessions.backend: %q", cfg.Sessions.Backend)
	}
	cfg.Sessions.Backend = backend

	if cfg.Sessions.TTLMinutes < 0 {
		return fmt.Errorf("sessions.ttl_minutes must not be negative")
	}
	return nil
}
