package config

import (
	"testing"

	"typeonly/internal/core/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad version", mutate: func(c *Config) { c.Version = 3 }, wantErr: true},
		{name: "bad pattern", mutate: func(c *Config) { c.Rule.FilePattern = "[a-" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: true},
		{name: "negative concurrency", mutate: func(c *Config) { c.Scan.Concurrency = -1 }, wantErr: true},
		{name: "empty paths", mutate: func(c *Config) { c.Scan.Paths = nil }, wantErr: true},
		{name: "bad exclude glob", mutate: func(c *Config) { c.Scan.ExcludeFiles = []string{"[abc"} }, wantErr: true},
		{name: "bad metrics address", mutate: func(c *Config) { c.Observability.MetricsAddress = "9464" }, wantErr: true},
		{name: "metrics address", mutate: func(c *Config) { c.Observability.MetricsAddress = ":9464" }},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.IsCode(err, errors.CodeConfigError) {
					t.Fatalf("expected CONFIG_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
