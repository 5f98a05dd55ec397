package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".domainscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DomainConfig holds per-domain overrides for a single target.
// This allows customizing the page fetch for sites that require
// authentication or special headers.
type DomainConfig struct {
	// Cookie is an HTTP cookie to send when fetching this domain.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers for requests to this domain.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Timeout overrides the global per-lookup timeout for this domain.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// File represents the structure of the .domainscan configuration file.
type File struct {
	// Domains maps bare hostnames to their overrides.
	Domains map[string]DomainConfig `yaml:"domains,omitempty"`

	// Defaults applies to every domain unless overridden.
	Defaults DomainConfig `yaml:"defaults,omitempty"`
}

// GetDomainConfig returns the merged configuration for a hostname.
// The returned Headers map is always a fresh copy: the defaults map is
// shared across every lookup, and merging into it directly would leak
// one domain's headers into all later lookups.
func (f *File) GetDomainConfig(host string) DomainConfig {
	result := f.Defaults
	result.Headers = nil

	dc, ok := f.Domains[host]

	if len(f.Defaults.Headers) > 0 || (ok && len(dc.Headers) > 0) {
		result.Headers = make(map[string]string, len(f.Defaults.Headers)+len(dc.Headers))
		for k, v := range f.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	if ok {
		if dc.Cookie != "" {
			result.Cookie = dc.Cookie
		}
		if dc.Timeout > 0 {
			result.Timeout = dc.Timeout
		}
		for k, v := range dc.Headers {
			result.Headers[k] = v
		}
	}

	return result
}

// LoadConfigFile loads per-domain configuration from a YAML file.
// It returns ErrConfigNotFound when the file does not exist; callers decide
// whether that is an error based on whether the path was user-specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Domains == nil {
		f.Domains = make(map[string]DomainConfig)
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file:
// 1. the explicit path, if given
// 2. .domainscan in the current directory
// 3. .domainscan in the user's home directory
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
