package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are chosen for clearnet targets; they are far more aggressive than
// anything appropriate for high-latency networks.
const (
	// DefaultTimeout applies to each outbound lookup individually.
	// 15 seconds is generous for clearnet HTTP, WHOIS, and DNS while
	// keeping a fully-degraded scan (every provider timing out) bounded.
	DefaultTimeout = 15 * time.Second

	// DefaultBatchSize is the number of concurrent scans when multiple
	// targets are given. Each scan opens a handful of connections, so a
	// small default avoids hammering shared providers like ip-api.
	DefaultBatchSize = 4

	// DefaultMaxBodySize limits the page fetch response body.
	// 5MB is sufficient for any HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies domainscan in HTTP requests.
	// A descriptive User-Agent lets site operators identify scanner
	// traffic in their logs.
	DefaultUserAgent = "domainscan/1.0 (+https://github.com/webrecon/domainscan)"

	// DefaultGeoEndpoint is the IP geolocation provider.
	// ip-api.com offers keyless JSON lookups suitable for low-volume use.
	DefaultGeoEndpoint = "http://ip-api.com/json"

	// DefaultWaybackEndpoint is the Wayback Machine availability API.
	DefaultWaybackEndpoint = "https://archive.org/wayback/available"

	// DefaultReportFile is the output artifact for PDF reports, written
	// to the current working directory and overwritten on each run.
	DefaultReportFile = "report.pdf"

	// AppName is the application name used for XDG directory paths.
	AppName = "domainscan"
)

// Format identifies a report output format.
type Format string

// Report output formats.
const (
	FormatPDF      Format = "pdf"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Config holds all options for a scan run.
// It is populated from CLI flags plus the optional .domainscan file and
// passed through the application by dependency injection; there is no
// global state.
type Config struct {
	// Targets is the list of domains or URLs to scan.
	// At least one is required.
	Targets []string

	// Timeout is the per-lookup timeout applied to each outbound call.
	Timeout time.Duration

	// BatchSize is the number of concurrent scans for multiple targets.
	BatchSize int

	// UserAgent is the User-Agent header for HTTP requests.
	UserAgent string

	// MaxBodySize caps the page fetch response body in bytes.
	MaxBodySize int64

	// GeoEndpoint is the base URL of the geolocation provider.
	GeoEndpoint string

	// WaybackEndpoint is the base URL of the Wayback availability API.
	WaybackEndpoint string

	// Format selects the report output format.
	Format Format

	// ReportFile is the output file path. Empty means the format default:
	// DefaultReportFile for PDF, stdout for every other format.
	ReportFile string

	// SkipWhois disables the registration lookup stage.
	SkipWhois bool

	// SkipGeo disables the geolocation stage.
	SkipGeo bool

	// SkipWayback disables the Wayback Machine stage.
	SkipWayback bool

	// ConfigFilePath is an explicit config file path. Empty means search
	// the working directory and then the home directory for .domainscan.
	ConfigFilePath string

	// DomainConfigs holds per-domain overrides loaded from the config file.
	DomainConfigs *File

	// DBDir is the directory for the SQLite scan history database.
	// Empty disables history persistence.
	DBDir string

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
//
// Design decision: a constructor instead of zero values because most
// defaults are non-zero; it also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:         DefaultTimeout,
		BatchSize:       DefaultBatchSize,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		GeoEndpoint:     DefaultGeoEndpoint,
		WaybackEndpoint: DefaultWaybackEndpoint,
		Format:          FormatPDF,
	}
}

// Validate checks the configuration for invalid combinations.
// It returns one of the package sentinel errors so callers can use
// errors.Is for programmatic handling.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	switch c.Format {
	case FormatPDF, FormatText, FormatMarkdown, FormatJSON:
	default:
		return ErrInvalidFormat
	}
	return nil
}

// XDGDataDir returns the XDG data directory for domainscan.
// On Linux: ~/.local/share/domainscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
