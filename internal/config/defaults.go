package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "warn"
	DefaultJSONLog           = false
	DefaultHost              = "https://cars.av.by"
	DefaultSearchPath        = "/filter"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRetryAttempts     = 3
	DefaultRetryBackoff      = 1 * time.Second
	DefaultMinYearOffset     = 2
	DefaultMaxPages          = 500
	DefaultDetailWorkers     = 4
	DefaultMaxDetailWorkers  = 32
	DefaultBrandWorkers      = 0
	DefaultOutputDir         = "."
	DefaultFilenamePattern   = "cars %s.csv"
	DefaultJSONFilePattern   = "cars %s.json"
	DefaultDelimiter         = ';'
	DefaultFormat            = FormatCSV
	DefaultCacheEnabled      = true
	DefaultCacheTTL          = 30 * time.Minute
	DefaultCacheMaxSizeBytes = 32 * 1024 * 1024 // 32MB
	DefaultProgress          = true
	DefaultEnvFile           = ".env"
)

// Output formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// DefaultBrands returns the brands crawled when no table is configured
func DefaultBrands() []Brand {
	return []Brand{
		{Label: "audi", ID: 6},
		{Label: "bmw", ID: 8},
		{Label: "mercedes-benz", ID: 683},
		{Label: "volkswagen", ID: 1216},
		{Label: "volvo", ID: 1238},
	}
}
