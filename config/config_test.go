package config

import (
	"errors"
	"testing"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/utils"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppName != "catalog-loadgen" {
		t.Fatalf("appName %q", cfg.AppName)
	}
	if cfg.Target.BaseURL != "http://localhost:8080/api/v1" {
		t.Fatalf("baseURL %q", cfg.Target.BaseURL)
	}
	if cfg.Target.Timeout != 30*time.Second {
		t.Fatalf("timeout %v", cfg.Target.Timeout)
	}
	if cfg.Load.TotalProducts != 1000000 {
		t.Fatalf("totalProducts %d", cfg.Load.TotalProducts)
	}
	if cfg.Load.BatchSize != 100 {
		t.Fatalf("batchSize %d", cfg.Load.BatchSize)
	}
	if cfg.Load.Workers != 20 {
		t.Fatalf("workers %d", cfg.Load.Workers)
	}
	if cfg.Load.MaxDuration != 24*time.Hour {
		t.Fatalf("maxDuration %v", cfg.Load.MaxDuration)
	}
	if cfg.Load.ProgressInterval != 10000 {
		t.Fatalf("progressInterval %d", cfg.Load.ProgressInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
}

func TestValidateRejectsBrokenConfig(t *testing.T) {
	base, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cases := []struct {
		name  string
		mutate func(*Config)
		want  error
	}{
		{"empty base url", func(c *Config) { c.Target.BaseURL = "" }, utils.ErrEmptyBaseURL},
		{"zero timeout", func(c *Config) { c.Target.Timeout = 0 }, utils.ErrInvalidTimeout},
		{"zero total", func(c *Config) { c.Load.TotalProducts = 0 }, utils.ErrInvalidTotalTarget},
		{"negative batch size", func(c *Config) { c.Load.BatchSize = -1 }, utils.ErrInvalidBatchSize},
		{"zero workers", func(c *Config) { c.Load.Workers = 0 }, utils.ErrInvalidWorkerCount},
		{"zero max duration", func(c *Config) { c.Load.MaxDuration = 0 }, utils.ErrInvalidMaxDuration},
		{"zero progress interval", func(c *Config) { c.Load.ProgressInterval = 0 }, utils.ErrInvalidProgressInterval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *base
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}
