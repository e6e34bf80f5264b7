package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no stray .env

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, DefaultSymbol, cfg.Symbol)
	assert.Equal(t, 5*time.Second, cfg.AccountInterval)
	assert.Equal(t, 5*time.Second, cfg.PositionsInterval)
	assert.Equal(t, time.Second, cfg.MarketInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5000, cfg.SandboxPort)
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRADEBOARD_URL", "http://trader.local:8080/")
	t.Setenv("TRADEBOARD_SYMBOL", "@NQU24")
	t.Setenv("TRADEBOARD_MARKET_INTERVAL", "2s")
	t.Setenv("TRADEBOARD_USERNAME", "connor")
	t.Setenv("TRADEBOARD_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://trader.local:8080", cfg.BaseURL)
	assert.Equal(t, "@NQU24", cfg.Symbol)
	assert.Equal(t, 2*time.Second, cfg.MarketInterval)
	assert.True(t, cfg.HasCredentials())
}

func TestLoad_InvalidDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRADEBOARD_ACCOUNT_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			BaseURL:           "http://localhost:5000",
			Symbol:            "NQU24",
			AccountInterval:   5 * time.Second,
			PositionsInterval: 5 * time.Second,
			MarketInterval:    time.Second,
			RequestTimeout:    10 * time.Second,
			SandboxPort:       5000,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty url", func(c *Config) { c.BaseURL = "" }, true},
		{"relative url", func(c *Config) { c.BaseURL = "localhost" }, true},
		{"blank symbol", func(c *Config) { c.Symbol = "  " }, true},
		{"zero interval", func(c *Config) { c.MarketInterval = 0 }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, true},
		{"bad port", func(c *Config) { c.SandboxPort = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
