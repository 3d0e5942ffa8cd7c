package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/SI1V/GymStars/core/config"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Core.Telegram.Token = "123:token"
	return cfg
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))

	assert.Equal(t, coreconfig.RunModeLongpoll, cfg.Core.Telegram.RunMode)
	assert.Equal(t, SessionsMemory, cfg.Sessions.Backend)
	assert.Zero(t, cfg.Bot.PageSize)
	assert.Empty(t, cfg.Ops.Listen)
}

func TestNormalizeRedisBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Sessions.Backend = " Redis "
	cfg.Sessions.RedisAddr = "localhost:6379"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, SessionsRedis, cfg.Sessions.Backend)
}

func TestNormalizeRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing token", mutate: func(c *Config) { c.Core.Telegram.Token = "" }},
		{name: "negative page size", mutate: func(c *Config) { c.Bot.PageSize = -1 }},
		{name: "unknown backend", mutate: func(c *Config) { c.Sessions.Backend = "memcached" }},
		{name: "redis without addr", mutate: func(c *Config) { c.Sessions.Backend = "redis" }},
		{name: "negative ttl", mutate: func(c *Config) { c.Sessions.TTLMinutes = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, Normalize(cfg))
		})
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram:
  token: "123:token"
bot:
  page_size: 5
sessions:
  backend: memory
  ttl_minutes: 30
ops:
  listen: ":9090"
`), 0o600))

	t.Setenv("BOT_PAGE_SIZE", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Bot.PageSize)
	assert.Equal(t, 30, cfg.Sessions.TTLMinutes)
	assert.Equal(t, ":9090", cfg.Ops.Listen)
	assert.Equal(t, "123:token", cfg.Core.Telegram.Token)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
