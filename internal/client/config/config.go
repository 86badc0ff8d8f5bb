package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config is what portalctl needs to reach the portal and keep its session.
type Config struct {
	// ServerURL is the API root, e.g. http://127.0.0.1:5000.
	ServerURL string

	// OnlineCheckInterval is the health probe period; zero disables probing.
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration

	// SessionDB is the SQLite file holding the stored token.
	SessionDB string
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 5 * time.Second
	c.SessionDB = "portalctl.db"
}

// Validate rejects settings the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q must be an absolute http(s) URL", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.OnlineCheckInterval < 0 {
		return errors.New("online check interval must not be negative")
	}
	if c.SessionDB == "" {
		return errors.New("session database path is required")
	}
	return nil
}

// LoadConfig layers defaults, the JSON file named by -c/-config and command
// line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
