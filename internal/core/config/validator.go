package config

import (
	"fmt"
	"net"

	"typeonly/internal/core/errors"

	"github.com/gobwas/glob"
)

// Validate checks every section; the first failure is returned as a
// CodeConfigError.
func Validate(cfg *Config) error {
	validators := []func(*Config) error{
		validateVersion,
		validateRule,
		validateScan,
		validateOutput,
		validateWatch,
		validateObservability,
		validateHistory,
	}
	for _, validate := range validators {
		if err := validate(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return errors.Configf("version", "unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateRule(cfg *Config) error {
	_, err := cfg.PolicyConfig()
	return err
}

func validateScan(cfg *Config) error {
	if len(cfg.Scan.Paths) == 0 {
		return errors.Configf("scan.paths", "scan.paths must not be empty")
	}
	if cfg.Scan.Concurrency < 0 {
		return errors.Configf("scan.concurrency", "scan.concurrency must be >= 0, got %d", cfg.Scan.Concurrency)
	}
	for i, pattern := range cfg.Scan.ExcludeDirs {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.Wrap(err, errors.CodeConfigError, fmt.Sprintf("scan.exclude_dirs[%d]: invalid glob %q", i, pattern))
		}
	}
	for i, pattern := range cfg.Scan.ExcludeFiles {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.Wrap(err, errors.CodeConfigError, fmt.Sprintf("scan.exclude_files[%d]: invalid glob %q", i, pattern))
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatText, FormatJSON, FormatSARIF:
		return nil
	default:
		return errors.Configf("output.format", "output.format must be one of: text, json, sarif (got %q)", cfg.Output.Format)
	}
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return errors.Configf("watch.debounce", "watch.debounce must not be negative")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if addr := cfg.Observability.MetricsAddress; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return errors.Wrap(err, errors.CodeConfigError, fmt.Sprintf("observability.metrics_address: invalid address %q", addr))
		}
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && cfg.History.Path == "" {
		return errors.Configf("history.path", "history.path must be set when history is enabled")
	}
	return nil
}
