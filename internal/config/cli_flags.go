package config

import (
	"fmt"
	"time"

	headersutil "github.com/law-makers/autocrawl/internal/utils/headers"
	"github.com/spf13/cobra"
)

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log JSON lines and print the summary as JSON")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("config", "", "Path to YAML configuration file (optional)")
	cmd.PersistentFlags().String("timeout", DefaultHTTPTimeout.String(), "Per-request timeout")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().StringArray("proxy", []string{}, "HTTP proxy URL, repeat to rotate (e.g., http://localhost:8080)")
	cmd.PersistentFlags().StringArrayP("header", "H", []string{}, "Extra request header (e.g., -H \"Accept-Language: ru\")")
}

// RegisterCrawlFlags registers the flags that shape a crawl run
func RegisterCrawlFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().Int("min-year", 0, fmt.Sprintf("Oldest model year to include (default: current year - %d)", DefaultMinYearOffset))
	cmd.Flags().Int("max-pages", DefaultMaxPages, "Stop a brand after this many index pages (0 = no limit)")
	cmd.Flags().Int("detail-workers", DefaultDetailWorkers, "Concurrent detail page fetches per brand (1 = sequential)")
	cmd.Flags().Int("brand-workers", DefaultBrandWorkers, "Brands crawled at once (0 = all)")
	cmd.Flags().StringP("output", "o", DefaultOutputDir, "Directory to write brand files to")
	cmd.Flags().String("filename", DefaultFilenamePattern, "Output file name pattern, %s is the brand label (.json by default with --format json)")
	cmd.Flags().String("delimiter", string(DefaultDelimiter), "Field delimiter for csv output")
	cmd.Flags().String("format", DefaultFormat, "Output format: csv or json")
	cmd.Flags().Int("retries", DefaultRetryAttempts, "Attempts per request, including the first")
	cmd.Flags().Bool("no-cache", false, "Disable the detail page cache")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")
}

// applyFlags copies explicitly set flags onto cfg
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}
	if v, _ := flags.GetBool("quiet"); v {
		cfg.LogLevel = "error"
		cfg.Progress = false
	}
	if v, _ := flags.GetBool("json"); v {
		cfg.JSONLog = true
		cfg.Progress = false
	}

	if flags.Changed("timeout") {
		s, _ := flags.GetString("timeout")
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid --timeout %q: %w", s, err)
		}
		cfg.HTTPTimeout = d
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}
	if flags.Changed("proxy") {
		cfg.Proxies, _ = flags.GetStringArray("proxy")
	}
	if flags.Changed("header") {
		h, _ := flags.GetStringArray("header")
		parsed, err := headersutil.ParseHeaders(h)
		if err != nil {
			return err
		}
		for k, v := range parsed {
			cfg.Headers[k] = v
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"min-year", &cfg.MinYear},
		{"max-pages", &cfg.MaxPages},
		{"detail-workers", &cfg.DetailWorkers},
		{"brand-workers", &cfg.BrandWorkers},
		{"retries", &cfg.RetryAttempts},
	}
	for _, f := range ints {
		if flags.Changed(f.name) {
			*f.dst, _ = flags.GetInt(f.name)
		}
	}

	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("filename") {
		cfg.FilenamePattern, _ = flags.GetString("filename")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("delimiter") {
		s, _ := flags.GetString("delimiter")
		r, err := parseDelimiter(s)
		if err != nil {
			return err
		}
		cfg.Delimiter = r
	}
	if v, _ := flags.GetBool("no-cache"); v {
		cfg.CacheEnabled = false
	}
	if v, _ := flags.GetBool("no-progress"); v {
		cfg.Progress = false
	}

	return nil
}
