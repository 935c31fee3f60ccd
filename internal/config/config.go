package config

import "time"

// Config holds runtime settings for the back-office CLI.
//
// Fields:
//   - BaseURL: root URL of the commerce backend, e.g. "http://localhost:5000/".
//   - DatabasePath: path to the local SQLite file holding saved credentials.
//   - RequestTimeout: per-request HTTP timeout; zero means the transport default.
type Config struct {
	BaseURL        string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:5000/"
	c.DatabasePath = "backoffice.db"
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
