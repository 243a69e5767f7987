package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/law-makers/autocrawl/pkg/models"
	"github.com/spf13/cobra"
)

// Brand maps a label used in file names to the site's brand id
type Brand struct {
	Label string `yaml:"label"`
	ID    int    `yaml:"id"`
}

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout   time.Duration
	UserAgent     string
	Headers       map[string]string
	Proxies       []string
	RetryAttempts int
	RetryBackoff  time.Duration

	// Site
	Host       string
	SearchPath string
	Brands     []Brand

	// Crawl
	MinYear       int // 0 derives the year from MinYearOffset
	MinYearOffset int
	MaxPages      int
	DetailWorkers int
	BrandWorkers  int

	// Output
	OutputDir       string
	FilenamePattern string
	Delimiter       rune
	Format          string

	// Caching
	CacheEnabled      bool
	CacheTTL          time.Duration
	CacheMaxSizeBytes int64

	// UI
	Progress bool
}

// Default returns a Config populated with the built-in defaults
func Default() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		HTTPTimeout:       DefaultHTTPTimeout,
		Headers:           map[string]string{},
		RetryAttempts:     DefaultRetryAttempts,
		RetryBackoff:      DefaultRetryBackoff,
		Host:              DefaultHost,
		SearchPath:        DefaultSearchPath,
		Brands:            DefaultBrands(),
		MinYearOffset:     DefaultMinYearOffset,
		MaxPages:          DefaultMaxPages,
		DetailWorkers:     DefaultDetailWorkers,
		BrandWorkers:      DefaultBrandWorkers,
		OutputDir:         DefaultOutputDir,
		FilenamePattern:   DefaultFilenamePattern,
		Delimiter:         DefaultDelimiter,
		Format:            DefaultFormat,
		CacheEnabled:      DefaultCacheEnabled,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
		Progress:          DefaultProgress,
	}
}

// Load builds a Config by layering defaults, a .env file, AUTOCRAWL_*
// environment variables, an optional YAML file and CLI flags, in that order.
// Pass the executing *cobra.Command so its flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	if err := loadDotEnv(DefaultEnvFile); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	path := os.Getenv("AUTOCRAWL_CONFIG")
	if cmd != nil {
		if s, err := cmd.Flags().GetString("config"); err == nil && s != "" {
			path = s
		}
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if cmd != nil {
		if err := applyFlags(cmd, cfg); err != nil {
			return nil, err
		}
	}

	cfg.matchFilenameToFormat()

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// matchFilenameToFormat gives the default file name pattern the extension of
// the output format. A pattern set by the user is left as is.
func (c *Config) matchFilenameToFormat() {
	if c.Format == FormatJSON && c.FilenamePattern == DefaultFilenamePattern {
		c.FilenamePattern = DefaultJSONFilePattern
	}
}

// SearchURL returns the absolute URL of the filtered search page
func (c *Config) SearchURL() string {
	return strings.TrimRight(c.Host, "/") + "/" + strings.TrimLeft(c.SearchPath, "/")
}

// EffectiveMinYear returns the explicit minimum year or derives it from now
func (c *Config) EffectiveMinYear(now time.Time) int {
	if c.MinYear > 0 {
		return c.MinYear
	}
	return now.Year() - c.MinYearOffset
}

// Jobs returns one BrandJob per configured brand, in table order. When only
// is non-empty, just the named brands are returned, in the order given.
func (c *Config) Jobs(now time.Time, only []string) ([]models.BrandJob, error) {
	minYear := c.EffectiveMinYear(now)

	if len(only) == 0 {
		jobs := make([]models.BrandJob, 0, len(c.Brands))
		for _, b := range c.Brands {
			jobs = append(jobs, models.BrandJob{Label: b.Label, BrandID: b.ID, MinYear: minYear})
		}
		return jobs, nil
	}

	seen := make(map[string]bool, len(only))
	jobs := make([]models.BrandJob, 0, len(only))
	for _, name := range only {
		b, ok := c.Brand(name)
		if !ok {
			return nil, fmt.Errorf("unknown brand %q", name)
		}
		if seen[b.Label] {
			continue
		}
		seen[b.Label] = true
		jobs = append(jobs, models.BrandJob{Label: b.Label, BrandID: b.ID, MinYear: minYear})
	}
	return jobs, nil
}

// Brand looks up a configured brand by label, ignoring case
func (c *Config) Brand(label string) (Brand, bool) {
	for _, b := range c.Brands {
		if strings.EqualFold(b.Label, strings.TrimSpace(label)) {
			return b, true
		}
	}
	return Brand{}, false
}
