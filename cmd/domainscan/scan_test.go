package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/webrecon/domainscan/internal/config"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan [domain-or-url]" {
			t.Errorf("expected use 'scan [domain-or-url]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for flagName, shorthand := range map[string]string{
			"timeout":    "t",
			"batch":      "b",
			"config":     "c",
			"json":       "j",
			"markdown":   "m",
			"output":     "o",
			"text":       "",
			"no-whois":   "",
			"no-geo":     "",
			"no-wayback": "",
		} {
			flag := cmd.Flags().Lookup(flagName)
			if flag == nil {
				t.Errorf("expected %s flag", flagName)
				continue
			}
			if flag.Shorthand != shorthand {
				t.Errorf("flag %s shorthand = %q, want %q", flagName, flag.Shorthand, shorthand)
			}
		}
	})
}

// TestBuildConfig tests flag-to-config mapping.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		cfg, err := buildConfig(cmd, []string{"example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != config.FormatPDF {
			t.Errorf("Format = %q, want pdf", cfg.Format)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "example.com" {
			t.Errorf("Targets = %v", cfg.Targets)
		}
	})

	t.Run("format and skip flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("markdown", "true"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("no-wayback", "true"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("timeout", "30s"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != config.FormatMarkdown {
			t.Errorf("Format = %q, want markdown", cfg.Format)
		}
		if !cfg.SkipWayback {
			t.Error("expected SkipWayback")
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
		}
	})

	t.Run("conflicting format flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("json", "true"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("markdown", "true"); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, []string{"example.com"}); !errors.Is(err, config.ErrConflictingFormats) {
			t.Errorf("err = %v, want ErrConflictingFormats", err)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, []string{"example.com"}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestScanCmdNoTarget tests that a missing target fails fast.
func TestScanCmdNoTarget(t *testing.T) {
	// Changes working directory; cannot run in parallel.
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	cmd := NewScanCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when no target is given")
	}

	// The run must fail before any report artifact is produced.
	if _, err := os.Stat(filepath.Join(tmpDir, config.DefaultReportFile)); !os.IsNotExist(err) {
		t.Error("no report file should be written on a failed run")
	}
}

// TestSelectFormat tests the format flag mapping.
func TestSelectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  []string
		want config.Format
	}{
		{name: "default is pdf", set: nil, want: config.FormatPDF},
		{name: "json", set: []string{"json"}, want: config.FormatJSON},
		{name: "markdown", set: []string{"markdown"}, want: config.FormatMarkdown},
		{name: "text", set: []string{"text"}, want: config.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := NewScanCmd()
			for _, name := range tt.set {
				if err := cmd.Flags().Set(name, "true"); err != nil {
					t.Fatal(err)
				}
			}

			got, err := selectFormat(cmd)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}
