// Package config defines the ranking pipeline's configuration and how it is
// layered from defaults, an optional YAML file and COMBINE_ env vars.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tyler180/combine-rankings/internal/combine"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// YearStart and YearEnd bound the combine years loaded, inclusive.
	YearStart int `koanf:"year_start"`
	YearEnd   int `koanf:"year_end"`

	// CacheDir holds <year>-combine.htm snapshots when no bucket is set.
	CacheDir    string `koanf:"cache_dir"`
	CacheBucket string `koanf:"cache_bucket"`
	CachePrefix string `koanf:"cache_prefix"`

	BaseURL   string `koanf:"base_url"`
	UserAgent string `koanf:"user_agent"`

	// CrawlDelayMS caps the random pause after each page fetch.
	CrawlDelayMS int `koanf:"crawl_delay_ms"`

	HTTPMaxAttempts  int `koanf:"http_max_attempts"`
	HTTPRetryBaseMS  int `koanf:"http_retry_base_ms"`
	HTTPRetryMaxMS   int `koanf:"http_retry_max_ms"`
	HTTPCooldownMS   int `koanf:"http_cooldown_ms"`
	MinDecileSamples int `koanf:"min_decile_samples"`

	// ExcludedPositions are dropped from importance and long-form output.
	ExcludedPositions []string `koanf:"excluded_positions"`

	ExportBucket    string `koanf:"export_bucket"`
	ExportPrefix    string `koanf:"export_prefix"`
	ImportanceTable string `koanf:"importance_table"`
	AthenaDB        string `koanf:"athena_db"`
	AthenaWorkgroup string `koanf:"athena_workgroup"`
	AthenaOutput    string `koanf:"athena_output"`

	// Lookup overrides merged over the built-in tables. An empty value
	// removes the built-in entry.
	PositionFixups map[string]string `koanf:"position_fixups"`
	PositionGroups map[string]string `koanf:"position_groups"`
	MetricNames    map[string]string `koanf:"metric_names"`
	PositionNames  map[string]string `koanf:"position_names"`
	DropColumns    []string          `koanf:"drop_columns"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		YearStart:         2000,
		YearEnd:           2020,
		CacheDir:          "combine_data",
		CachePrefix:       "combine/raw",
		BaseURL:           "https://www.pro-football-reference.com",
		CrawlDelayMS:      6000,
		HTTPMaxAttempts:   6,
		HTTPRetryBaseMS:   400,
		HTTPRetryMaxMS:    6000,
		HTTPCooldownMS:    7000,
		MinDecileSamples:  10,
		ExcludedPositions: []string{"ST"},
		ExportPrefix:      "combine_curated",
		AthenaDB:          "combine",
		AthenaWorkgroup:   "primary",
	}
}

// Validate reports the first structural problem, wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.YearStart <= 0 || c.YearEnd <= 0:
		return fmt.Errorf("%w: year range %d-%d", ErrInvalidConfig, c.YearStart, c.YearEnd)
	case c.YearEnd < c.YearStart:
		return fmt.Errorf("%w: year_end %d before year_start %d", ErrInvalidConfig, c.YearEnd, c.YearStart)
	case c.MinDecileSamples <= 0:
		return fmt.Errorf("%w: min_decile_samples must be positive", ErrInvalidConfig)
	case c.CrawlDelayMS < 0:
		return fmt.Errorf("%w: crawl_delay_ms must not be negative", ErrInvalidConfig)
	case c.HTTPMaxAttempts <= 0:
		return fmt.Errorf("%w: http_max_attempts must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Tables builds the immutable lookups with this config's overrides.
func (c *Config) Tables() combine.Tables {
	var opts []combine.TablesOption
	if len(c.PositionFixups) > 0 {
		opts = append(opts, combine.WithPositionFixups(c.PositionFixups))
	}
	if len(c.PositionGroups) > 0 {
		opts = append(opts, combine.WithPositionGroups(c.PositionGroups))
	}
	if len(c.MetricNames) > 0 {
		opts = append(opts, combine.WithMetricNames(c.MetricNames))
	}
	if len(c.PositionNames) > 0 {
		opts = append(opts, combine.WithPositionNames(c.PositionNames))
	}
	if len(c.DropColumns) > 0 {
		opts = append(opts, combine.WithDropColumns(c.DropColumns))
	}
	return combine.NewTables(opts...)
}

func (c *Config) CrawlDelay() time.Duration { return time.Duration(c.CrawlDelayMS) * time.Millisecond }

// Retry returns the fetch retry settings as durations.
func (c *Config) Retry() (maxAttempts int, base, maxBackoff, cooldown time.Duration) {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return c.HTTPMaxAttempts, ms(c.HTTPRetryBaseMS), ms(c.HTTPRetryMaxMS), ms(c.HTTPCooldownMS)
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, s)
}

// splitList flattens comma-separated entries, which is how list values
// arrive from env vars.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
