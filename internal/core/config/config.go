// Package config handles configuration loading and validation for aim25s.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides api.base_url when set.
const EnvAPIURL = "AIM25S_API_URL"

// Config holds the application configuration.
type Config struct {
	API     APIConfig   `yaml:"api"`
	PerPage int         `yaml:"per_page"`
	UI      UIConfig    `yaml:"ui"`
	Cache   CacheConfig `yaml:"cache"`
	Log     LogConfig   `yaml:"log"`
	DataDir string      `yaml:"-"` // set by caller, not from config file
}

// APIConfig holds the directory API connection settings.
type APIConfig struct {
	BaseURL              string        `yaml:"base_url"`
	Timeout              time.Duration `yaml:"timeout"`
	RateLimit            float64       `yaml:"rate_limit"` // requests per second
	Burst                int           `yaml:"burst"`
	RetryMaxElapsed      time.Duration `yaml:"retry_max_elapsed"` // 0 disables read retries
	CompanyScopedReports bool          `yaml:"company_scoped_reports"`
}

// UIConfig holds TUI presentation settings.
type UIConfig struct {
	Theme            string        `yaml:"theme"`
	MobileBreakpoint int           `yaml:"mobile_breakpoint"` // terminal columns at or below which cards are used
	SearchDebounce   time.Duration `yaml:"search_debounce"`
	Animations       *bool         `yaml:"animations"`
	Mouse            *bool         `yaml:"mouse"`
}

// AnimationsEnabled reports whether animated widgets are enabled. Defaults to true.
func (u UIConfig) AnimationsEnabled() bool {
	return u.Animations == nil || *u.Animations
}

// MouseEnabled reports whether mouse input is captured. Defaults to true.
func (u UIConfig) MouseEnabled() bool {
	return u.Mouse == nil || *u.Mouse
}

// CacheConfig controls the local response cache.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"` // 0 disables the cache
}

// Enabled reports whether cached responses should be used.
func (c CacheConfig) Enabled() bool {
	return c.TTL > 0
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:         "https://aim25s.se",
			Timeout:         15 * time.Second,
			RateLimit:       5,
			Burst:           3,
			RetryMaxElapsed: 5 * time.Second,
		},
		PerPage: 50,
		UI: UIConfig{
			Theme:            "editorial",
			MobileBreakpoint: 100,
			SearchDebounce:   500 * time.Millisecond,
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = defaults.API.RateLimit
	}
	if c.API.Burst == 0 {
		c.API.Burst = defaults.API.Burst
	}
	if c.PerPage == 0 {
		c.PerPage = defaults.PerPage
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.MobileBreakpoint == 0 {
		c.UI.MobileBreakpoint = defaults.UI.MobileBreakpoint
	}
	if c.UI.SearchDebounce == 0 {
		c.UI.SearchDebounce = defaults.UI.SearchDebounce
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// CacheFile returns the path of the local cache database.
func (c *Config) CacheFile() string {
	return filepath.Join(c.DataDir, "aim25s.db")
}
