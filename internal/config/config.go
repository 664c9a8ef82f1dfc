package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Market struct {
		SearchWindowDays int    `yaml:"search_window_days"`
		Proxy            string `yaml:"proxy"`
	} `yaml:"market"`
	Watch struct {
		Cron string `yaml:"cron"`
	} `yaml:"watch"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Market.Proxy = v
	}
	if v := os.Getenv("SEARCH_WINDOW_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Market.SearchWindowDays = days
		}
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/llm_trade_lab.db"
	}
	if cfg.Market.SearchWindowDays == 0 {
		cfg.Market.SearchWindowDays = 10
	}
	if cfg.Watch.Cron == "" {
		// weekday evenings, after the Tokyo close
		cfg.Watch.Cron = "0 0 18 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are sane.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Market.SearchWindowDays <= 0 {
		return fmt.Errorf("market.search_window_days must be positive")
	}
	if c.Watch.Cron == "" {
		return fmt.Errorf("watch.cron is required")
	}
	return nil
}
