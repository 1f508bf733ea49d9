package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/flagx"
)

// Config holds runtime settings for the PitchPoa CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	// ReportDir is where downloaded PDF reports land when no file is given.
	ReportDir string
	LogLevel  string
}

// LoadDefaults populates c with values that match a local dev server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 90 * time.Second
	c.ReportDir = "reports"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
