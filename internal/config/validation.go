package config

import (
	"fmt"
	"strings"

	urlutil "github.com/law-makers/autocrawl/internal/utils/url"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if err := urlutil.ValidateURL(c.Host); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	for _, p := range c.Proxies {
		if err := urlutil.ValidateURL(p); err != nil {
			return fmt.Errorf("proxy %q: %w", p, err)
		}
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be >= 1")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if len(c.Brands) == 0 {
		return fmt.Errorf("at least one brand must be configured")
	}
	labels := make(map[string]bool, len(c.Brands))
	for _, b := range c.Brands {
		if b.Label == "" || strings.ContainsAny(b.Label, `/\`) || b.Label == "." || b.Label == ".." {
			return fmt.Errorf("brand label %q cannot be used in a file name", b.Label)
		}
		if b.ID <= 0 {
			return fmt.Errorf("brand %q: id must be > 0", b.Label)
		}
		key := strings.ToLower(b.Label)
		if labels[key] {
			return fmt.Errorf("brand %q is listed twice", b.Label)
		}
		labels[key] = true
	}

	if c.MinYear < 0 || c.MinYearOffset < 0 {
		return fmt.Errorf("minimum year must not be negative")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages must be >= 0")
	}
	if c.DetailWorkers < 1 || c.DetailWorkers > DefaultMaxDetailWorkers {
		return fmt.Errorf("detail workers must be between 1 and %d", DefaultMaxDetailWorkers)
	}
	if c.BrandWorkers < 0 {
		return fmt.Errorf("brand workers must be >= 0")
	}

	if strings.Count(c.FilenamePattern, "%s") != 1 {
		return fmt.Errorf("filename pattern must contain %%s exactly once")
	}
	if strings.ContainsAny(c.FilenamePattern, `/\`) {
		return fmt.Errorf("filename pattern must not contain a directory")
	}
	if c.Delimiter == 0 || c.Delimiter == '"' || c.Delimiter == '\r' || c.Delimiter == '\n' {
		return fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	if c.Format != FormatCSV && c.Format != FormatJSON {
		return fmt.Errorf("format must be %s or %s", FormatCSV, FormatJSON)
	}

	if c.CacheEnabled && c.CacheMaxSizeBytes <= 0 {
		return fmt.Errorf("cache max size must be > 0")
	}
	return nil
}
