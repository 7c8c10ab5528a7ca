// Package config loads the application configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}

// AccountConfig contains registration defaults.
type AccountConfig struct {
	Name         string  `json:"name" yaml:"name"`
	StartingCash float64 `json:"starting_cash" yaml:"starting_cash"`
}

// FeedConfig contains price feed parameters.
type FeedConfig struct {
	Currency string `json:"currency" yaml:"currency"`
	PerPage  int    `json:"per_page" yaml:"per_page"`
	Interval string `json:"interval" yaml:"interval"` // e.g. "15s"
}

// ParseInterval converts the interval string to a time.Duration.
func (f FeedConfig) ParseInterval() (time.Duration, error) {
	if f.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(f.Interval)
}

// StoreConfig selects the account store backend.
type StoreConfig struct {
	Type    string `json:"type" yaml:"type"` // "sqlite" or "firebase"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Auth    string `json:"auth,omitempty" yaml:"auth,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.StartingCash < 0 {
		return fmt.Errorf("account.starting_cash must not be negative")
	}
	if c.Feed.Currency == "" {
		return fmt.Errorf("feed.currency is required")
	}
	if c.Feed.PerPage <= 0 {
		return fmt.Errorf("feed.per_page must be positive")
	}
	if d, err := c.Feed.ParseInterval(); err != nil {
		return fmt.Errorf("feed.interval: %w", err)
	} else if c.Feed.Interval != "" && d <= 0 {
		return fmt.Errorf("feed.interval must be positive")
	}
	switch c.Store.Type {
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store.db_path required for sqlite type")
		}
	case "firebase":
		if c.Store.BaseURL == "" {
			return fmt.Errorf("store.base_url required for firebase type")
		}
	default:
		return fmt.Errorf("store.type must be 'sqlite' or 'firebase'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Name:         "player",
			StartingCash: 10000,
		},
		Feed: FeedConfig{
			Currency: "usd",
			PerPage:  20,
			Interval: "15s",
		},
		Store: StoreConfig{
			Type:   "sqlite",
			DBPath: "./coinsim.db",
		},
	}
}
