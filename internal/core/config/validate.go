package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
)

// MaxPerPage is the largest page size the companies endpoint accepts.
const MaxPerPage = 1000

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("api.base_url", c.API.BaseURL, validBaseURL),
		criterio.Run("api.timeout", c.API.Timeout, positiveDuration),
		criterio.Run("api.rate_limit", c.API.RateLimit, positiveFloat),
		criterio.Run("api.burst", c.API.Burst, atLeastOne),
		criterio.Run("api.retry_max_elapsed", c.API.RetryMaxElapsed, nonNegativeDuration),
		criterio.Run("per_page", c.PerPage, validPerPage),
		criterio.Run("ui.theme", c.UI.Theme, knownTheme),
		criterio.Run("ui.mobile_breakpoint", c.UI.MobileBreakpoint, atLeastOne),
		criterio.Run("ui.search_debounce", c.UI.SearchDebounce, nonNegativeDuration),
		criterio.Run("cache.ttl", c.Cache.TTL, nonNegativeDuration),
		criterio.Run("log.level", c.Log.Level, validLevel),
		criterio.Run("data_dir", c.DataDir, notEmpty),
	)
}

// ValidateDeep performs Validate plus file system checks on the config file
// and data directory. An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func validBaseURL(raw string) error {
	if raw == "" {
		return errors.New("cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func validPerPage(n int) error {
	if n < 1 || n > MaxPerPage {
		return fmt.Errorf("must be between 1 and %d", MaxPerPage)
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func validLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return err
	}
	return nil
}

func positiveDuration(d time.Duration) error {
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func nonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func positiveFloat(f float64) error {
	if f <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func atLeastOne(n int) error {
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
