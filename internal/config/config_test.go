package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests that defaults are applied.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.Format != FormatPDF {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatPDF)
	}
	if cfg.GeoEndpoint != DefaultGeoEndpoint {
		t.Errorf("GeoEndpoint = %q, want %q", cfg.GeoEndpoint, DefaultGeoEndpoint)
	}
}

// TestConfigValidate tests configuration validation rules.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Targets = []string{"example.com"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config passes",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no targets",
			mutate:  func(c *Config) { c.Targets = nil },
			wantErr: ErrNoTarget,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative batch size",
			mutate:  func(c *Config) { c.BatchSize = -1 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "yaml" },
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoadConfigFile tests YAML config file loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads defaults and per-domain overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, ".domainscan")
		content := `
defaults:
  headers:
    Accept-Language: en-US
domains:
  example.com:
    cookie: "session=abc123"
    timeout: 30s
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dc := f.GetDomainConfig("example.com")
		if dc.Cookie != "session=abc123" {
			t.Errorf("Cookie = %q, want session=abc123", dc.Cookie)
		}
		if dc.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want 30s", dc.Timeout)
		}
		if dc.Headers["Accept-Language"] != "en-US" {
			t.Errorf("default header not merged: %v", dc.Headers)
		}
	})

	t.Run("unknown domain gets defaults", func(t *testing.T) {
		t.Parallel()

		f := &File{
			Defaults: DomainConfig{Cookie: "base=1"},
			Domains:  map[string]DomainConfig{},
		}
		dc := f.GetDomainConfig("other.example")
		if dc.Cookie != "base=1" {
			t.Errorf("Cookie = %q, want base=1", dc.Cookie)
		}
	})

	t.Run("merged headers never share state across lookups", func(t *testing.T) {
		t.Parallel()

		f := &File{
			Defaults: DomainConfig{Headers: map[string]string{"Accept": "text/html"}},
			Domains: map[string]DomainConfig{
				"a.example": {Headers: map[string]string{"Authorization": "Bearer secret-a"}},
			},
		}

		a := f.GetDomainConfig("a.example")
		if a.Headers["Accept"] != "text/html" || a.Headers["Authorization"] != "Bearer secret-a" {
			t.Errorf("merged headers = %v", a.Headers)
		}

		b := f.GetDomainConfig("b.example")
		if _, leaked := b.Headers["Authorization"]; leaked {
			t.Errorf("b.example inherited a.example's Authorization header: %v", b.Headers)
		}

		// Mutating a merged result must not reach the shared defaults.
		a.Headers["Accept"] = "mutated"
		if f.Defaults.Headers["Accept"] != "text/html" {
			t.Errorf("defaults map was mutated: %v", f.Defaults.Headers)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, ".domainscan")
		if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}
