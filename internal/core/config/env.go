package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: TYPEONLY_[SECTION]_[KEY] (e.g., TYPEONLY_RULE_BAN_ENUMS).
func ApplyEnvOverrides(cfg *Config) {
	setEnvBool(&cfg.Rule.BanEnums, "TYPEONLY_RULE_BAN_ENUMS")
	setEnvString(&cfg.Rule.FilePattern, "TYPEONLY_RULE_FILE_PATTERN")

	setEnvInt(&cfg.Scan.Concurrency, "TYPEONLY_SCAN_CONCURRENCY")

	setEnvString(&cfg.Output.Format, "TYPEONLY_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, "TYPEONLY_OUTPUT_PATH")

	setEnvDuration(&cfg.Watch.Debounce, "TYPEONLY_WATCH_DEBOUNCE")

	setEnvString(&cfg.Observability.MetricsAddress, "TYPEONLY_OBSERVABILITY_METRICS_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "TYPEONLY_OBSERVABILITY_OTLP_ENDPOINT")

	setEnvBool(&cfg.History.Enabled, "TYPEONLY_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "TYPEONLY_HISTORY_PATH")

	// NO_COLOR disables styling regardless of config.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		disabled := false
		cfg.Output.Color = &disabled
	}
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
