package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file. Unset keys leave the lower
// layers untouched.
type fileConfig struct {
	LogLevel        *string           `yaml:"log_level"`
	JSONLog         *bool             `yaml:"json"`
	Host            *string           `yaml:"host"`
	SearchPath      *string           `yaml:"search_path"`
	UserAgent       *string           `yaml:"user_agent"`
	Timeout         *time.Duration    `yaml:"timeout"`
	Headers         map[string]string `yaml:"headers"`
	Proxies         []string          `yaml:"proxies"`
	RetryAttempts   *int              `yaml:"retry_attempts"`
	RetryBackoff    *time.Duration    `yaml:"retry_backoff"`
	Brands          []Brand           `yaml:"brands"`
	MinYear         *int              `yaml:"min_year"`
	MinYearOffset   *int              `yaml:"min_year_offset"`
	MaxPages        *int              `yaml:"max_pages"`
	DetailWorkers   *int              `yaml:"detail_workers"`
	BrandWorkers    *int              `yaml:"brand_workers"`
	OutputDir       *string           `yaml:"output_dir"`
	FilenamePattern *string           `yaml:"filename_pattern"`
	Delimiter       *string           `yaml:"delimiter"`
	Format          *string           `yaml:"format"`
	Progress        *bool             `yaml:"progress"`
	Cache           *struct {
		Enabled      *bool          `yaml:"enabled"`
		TTL          *time.Duration `yaml:"ttl"`
		MaxSizeBytes *int64         `yaml:"max_size_bytes"`
	} `yaml:"cache"`
}

// loadFile applies the YAML file at path on top of cfg
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.LogLevel, fc.LogLevel)
	setBool(&cfg.JSONLog, fc.JSONLog)
	setString(&cfg.Host, fc.Host)
	setString(&cfg.SearchPath, fc.SearchPath)
	setString(&cfg.UserAgent, fc.UserAgent)
	if fc.Timeout != nil {
		cfg.HTTPTimeout = *fc.Timeout
	}
	for k, v := range fc.Headers {
		cfg.Headers[k] = v
	}
	if len(fc.Proxies) > 0 {
		cfg.Proxies = fc.Proxies
	}
	setInt(&cfg.RetryAttempts, fc.RetryAttempts)
	if fc.RetryBackoff != nil {
		cfg.RetryBackoff = *fc.RetryBackoff
	}
	if len(fc.Brands) > 0 {
		cfg.Brands = fc.Brands
	}
	setInt(&cfg.MinYear, fc.MinYear)
	setInt(&cfg.MinYearOffset, fc.MinYearOffset)
	setInt(&cfg.MaxPages, fc.MaxPages)
	setInt(&cfg.DetailWorkers, fc.DetailWorkers)
	setInt(&cfg.BrandWorkers, fc.BrandWorkers)
	setString(&cfg.OutputDir, fc.OutputDir)
	setString(&cfg.FilenamePattern, fc.FilenamePattern)
	setString(&cfg.Format, fc.Format)
	setBool(&cfg.Progress, fc.Progress)
	if fc.Delimiter != nil {
		r, err := parseDelimiter(*fc.Delimiter)
		if err != nil {
			return err
		}
		cfg.Delimiter = r
	}
	if fc.Cache != nil {
		setBool(&cfg.CacheEnabled, fc.Cache.Enabled)
		if fc.Cache.TTL != nil {
			cfg.CacheTTL = *fc.Cache.TTL
		}
		if fc.Cache.MaxSizeBytes != nil {
			cfg.CacheMaxSizeBytes = *fc.Cache.MaxSizeBytes
		}
	}

	return nil
}

// loadDotEnv exports the variables in path, if it exists. Variables already
// set in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv reads AUTOCRAWL_* variables through getenv
func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("AUTOCRAWL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("AUTOCRAWL_HOST"); v != "" {
		cfg.Host = v
	}
	if v := getenv("AUTOCRAWL_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := getenv("AUTOCRAWL_PROXY"); v != "" {
		cfg.Proxies = splitList(v)
	}
	if v := getenv("AUTOCRAWL_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("AUTOCRAWL_BRANDS"); v != "" {
		brands, err := ParseBrands(v)
		if err != nil {
			return fmt.Errorf("AUTOCRAWL_BRANDS: %w", err)
		}
		cfg.Brands = brands
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"AUTOCRAWL_MIN_YEAR", &cfg.MinYear},
		{"AUTOCRAWL_MAX_PAGES", &cfg.MaxPages},
		{"AUTOCRAWL_DETAIL_WORKERS", &cfg.DetailWorkers},
		{"AUTOCRAWL_BRAND_WORKERS", &cfg.BrandWorkers},
	}
	for _, e := range ints {
		v := getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}

	if v := getenv("AUTOCRAWL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AUTOCRAWL_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	return nil
}

// ParseBrands parses a "label=id,label=id" list
func ParseBrands(s string) ([]Brand, error) {
	var brands []Brand
	for _, part := range splitList(s) {
		label, id, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("brand %q: expected label=id", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("brand %q: %w", part, err)
		}
		brands = append(brands, Brand{Label: strings.TrimSpace(label), ID: n})
	}
	return brands, nil
}

func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
