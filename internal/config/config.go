// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultSymbol is the contract traded when TRADEBOARD_SYMBOL is unset.
const DefaultSymbol = "NQU24"

// Config holds application configuration
type Config struct {
	BaseURL  string `env:"TRADEBOARD_URL" envDefault:"http://localhost:5000"`
	Symbol   string `env:"TRADEBOARD_SYMBOL" envDefault:"NQU24"`
	Username string `env:"TRADEBOARD_USERNAME"` // Optional; enables login without the login screen
	Password string `env:"TRADEBOARD_PASSWORD"`

	AccountInterval   time.Duration `env:"TRADEBOARD_ACCOUNT_INTERVAL" envDefault:"5s"`
	PositionsInterval time.Duration `env:"TRADEBOARD_POSITIONS_INTERVAL" envDefault:"5s"`
	MarketInterval    time.Duration `env:"TRADEBOARD_MARKET_INTERVAL" envDefault:"1s"`
	RequestTimeout    time.Duration `env:"TRADEBOARD_REQUEST_TIMEOUT" envDefault:"10s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"logs/tradeboard.log"`

	SandboxPort int `env:"SANDBOX_PORT" envDefault:"5000"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HasCredentials reports whether a username and password were configured.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("TRADEBOARD_URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid TRADEBOARD_URL %q: %w", c.BaseURL, err)
	}
	if strings.TrimSpace(c.Symbol) == "" {
		return fmt.Errorf("TRADEBOARD_SYMBOL cannot be empty")
	}

	intervals := map[string]time.Duration{
		"TRADEBOARD_ACCOUNT_INTERVAL":   c.AccountInterval,
		"TRADEBOARD_POSITIONS_INTERVAL": c.PositionsInterval,
		"TRADEBOARD_MARKET_INTERVAL":    c.MarketInterval,
		"TRADEBOARD_REQUEST_TIMEOUT":    c.RequestTimeout,
	}
	for name, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if c.SandboxPort <= 0 || c.SandboxPort > 65535 {
		return fmt.Errorf("SANDBOX_PORT out of range: %d", c.SandboxPort)
	}

	return nil
}
