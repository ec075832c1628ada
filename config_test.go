package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "", cfg.Language)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "demo", cfg.Capture)
	require.Equal(t, time.Second, cfg.ProcessingDelay)
	require.Equal(t, 1500*time.Millisecond, cfg.ReplyDelay)
	require.Equal(t, 2*time.Minute, cfg.PriceInterval)
	require.Equal(t, 10*time.Second, cfg.NewsInterval)
	require.True(t, cfg.Market)
	require.True(t, cfg.Greeting)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MANDI_LANGUAGE", "ta")
	t.Setenv("MANDI_CAPTURE", "off")
	t.Setenv("MANDI_REPLY_DELAY", "250ms")
	t.Setenv("MANDI_SEED", "42")
	t.Setenv("MANDI_GREETING", "false")

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "ta", cfg.Language)
	require.Equal(t, "off", cfg.Capture)
	require.Equal(t, 250*time.Millisecond, cfg.ReplyDelay)
	require.Equal(t, 42, cfg.Seed)
	require.False(t, cfg.Greeting)
}

func TestConfigValidateRejects(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"capture mode":   func(c *Config) { c.Capture = "mic" },
		"log level":      func(c *Config) { c.LogLevel = "loud" },
		"zero delay":     func(c *Config) { c.ProcessingDelay = 0 },
		"fast prices":    func(c *Config) { c.PriceInterval = 10 * time.Millisecond },
		"missing locale": func(c *Config) { c.LocalesFile = "/nonexistent/locales.yaml" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), "invalid config")
		})
	}
}
