package app

import (
	"fmt"
	"time"

	coreconfig "github.com/m3rciful/rosterbot/core/config"
	coredatabase "github.com/m3rciful/rosterbot/core/database"
	"github.com/m3rciful/rosterbot/internal/pagination"
)

// SessionConfig controls eviction of idle chat sessions.
type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl" envconfig:"SESSION_TTL"`
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"SESSION_SWEEP_INTERVAL"`
}

// ListingConfig controls the operator listings.
type ListingConfig struct {
	PageSize int `yaml:"page_size" envconfig:"LISTING_PAGE_SIZE"`
}

// WorkersConfig sizes the inbound sequencer and the outbound sender.
type WorkersConfig struct {
	Inbound  int `yaml:"inbound" envconfig:"WORKERS_INBOUND"`
	Outbound int `yaml:"outbound" envconfig:"WORKERS_OUTBOUND"`
}

// HealthConfig enables the ops HTTP server when Listen is set.
type HealthConfig struct {
	Listen string `yaml:"listen" envconfig:"HEALTH_LISTEN"`
}

// Config is the rosterbot configuration: the shared core sections plus its own.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Session  SessionConfig       `yaml:"session"`
	Listing  ListingConfig       `yaml:"listing"`
	Workers  WorkersConfig       `yaml:"workers"`
	Health   HealthConfig        `yaml:"health"`
}

// CoreConfig exposes the embedded core configuration to the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads, overlays and validates the configuration at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates every section and fills defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}
	if err := c.Database.Normalize(); err != nil {
		return err
	}

	if c.Session.TTL < 0 || c.Session.SweepInterval < 0 {
		return fmt.Errorf("session.ttl and session.sweep_interval must be >= 0")
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Session.SweepInterval == 0 {
		c.Session.SweepInterval = 5 * time.Minute
	}

	if c.Listing.PageSize < 0 {
		return fmt.Errorf("listing.page_size must be >= 0")
	}
	if c.Listing.PageSize == 0 {
		c.Listing.PageSize = pagination.DefaultSize
	}

	if c.Workers.Inbound <= 0 {
		c.Workers.Inbound = 8
	}
	if c.Workers.Outbound <= 0 {
		c.Workers.Outbound = 4
	}
	return nil
}
