package config

import (
	"runtime"
	"time"

	"typeonly/internal/engine/policy"
)

const DefaultConfigFile = "typeonly.toml"

type Config struct {
	Version       int           `toml:"version"`
	Rule          Rule          `toml:"rule"`
	Scan          Scan          `toml:"scan"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
	History       History       `toml:"history"`
}

// Rule is the type-only-files policy configuration.
type Rule struct {
	BanEnums bool `toml:"ban_enums"`
	// FilePattern is a regular expression tested against each file path.
	// Empty selects policy.DefaultFilePattern.
	FilePattern string `toml:"file_pattern"`
}

type Scan struct {
	Paths        []string `toml:"paths"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
	Concurrency  int      `toml:"concurrency"`
}

type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
	Color  *bool  `toml:"color"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Observability struct {
	MetricsAddress string `toml:"metrics_address"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
}

// History controls the local run-history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

const DefaultHistoryPath = ".typeonly/history.db"

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ColorEnabled reports whether text output may use terminal styling.
func (o Output) ColorEnabled() bool {
	return o.Color == nil || *o.Color
}

// Workers is the effective concurrency for a run.
func (s Scan) Workers() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// PolicyConfig compiles the rule section. An invalid file pattern is a
// CodeConfigError.
func (c *Config) PolicyConfig() (*policy.Config, error) {
	var pattern policy.FilePattern
	if c.Rule.FilePattern != "" {
		pattern = policy.PatternSource(c.Rule.FilePattern)
	}
	return policy.NewConfig(c.Rule.BanEnums, pattern)
}
