// Package config loads importscout settings from file, environment, and
// defaults.
package config

import "errors"

// Default values applied when neither file nor environment sets a key.
const (
	// DefaultScanWorkers of 0 sizes the pool to the CPU count.
	DefaultScanWorkers = 0
	// DefaultScanCacheSize bounds the extraction result cache.
	DefaultScanCacheSize = 4096
	// DefaultScanMaxFileSize skips files above 1 MiB.
	DefaultScanMaxFileSize = 1 << 20
	// DefaultScanSkipVendor prunes vendored trees.
	DefaultScanSkipVendor = true
	// DefaultOutputFormat renders a terminal table.
	DefaultOutputFormat = "table"
	// DefaultOutputTopModules bounds the most-imported-modules ranking.
	DefaultOutputTopModules = 20
)

// Config is the top-level configuration struct for importscout.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Scan        ScanConfig   `mapstructure:"scan"`
	Output      OutputConfig `mapstructure:"output"`
	GrammarFile string       `mapstructure:"grammar_file"`
}

// ScanConfig holds file discovery and extraction knobs.
type ScanConfig struct {
	Workers     int      `mapstructure:"workers"`
	CacheSize   int      `mapstructure:"cache_size"`
	MaxFileSize int64    `mapstructure:"max_file_size"`
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	SkipVendor  bool     `mapstructure:"skip_vendor"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	NoColor    bool   `mapstructure:"no_color"`
	TopModules int    `mapstructure:"top_modules"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("scan.workers must be non-negative")
	// ErrInvalidCacheSize indicates the cache size is negative.
	ErrInvalidCacheSize = errors.New("scan.cache_size must be non-negative")
	// ErrInvalidMaxFileSize indicates the max file size is negative.
	ErrInvalidMaxFileSize = errors.New("scan.max_file_size must be non-negative")
	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("output.format must be one of table, json, yaml, html")
	// ErrInvalidTopModules indicates the top modules limit is negative.
	ErrInvalidTopModules = errors.New("output.top_modules must be non-negative")
)

// knownFormats are the output formats the report package can render.
var knownFormats = map[string]bool{
	"table": true,
	"json":  true,
	"yaml":  true,
	"html":  true,
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.Scan.CacheSize < 0 {
		return ErrInvalidCacheSize
	}

	if c.Scan.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	if !knownFormats[c.Output.Format] {
		return ErrInvalidFormat
	}

	if c.Output.TopModules < 0 {
		return ErrInvalidTopModules
	}

	return nil
}
