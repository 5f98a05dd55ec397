package model

import (
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyTarget is returned when the target string is empty or whitespace.
var ErrEmptyTarget = errors.New("empty target: provide a domain name or URL")

// Target represents a normalized scan target.
// It holds both the full URL (used by the page fetcher) and the bare
// hostname (used by the WHOIS, DNS, and geolocation stages).
// A Target is created once at the start of a scan and never modified.
type Target struct {
	// URL is the normalized URL including scheme, e.g. "http://example.com".
	URL string `json:"url"`

	// Host is the bare hostname with scheme, path, and port stripped,
	// e.g. "example.com".
	Host string `json:"host"`
}

// NormalizeTarget converts a raw user-supplied string into a Target.
// Strings without an "http://" or "https://" prefix get "http://" prepended;
// strings that already carry a scheme pass through unchanged.
//
// Returns ErrEmptyTarget for empty input and a wrapped error when the
// resulting URL cannot be parsed or has no hostname.
func NormalizeTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, ErrEmptyTarget
	}

	normalized := raw
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		normalized = "http://" + raw
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return Target{}, err
	}
	if u.Hostname() == "" {
		return Target{}, errors.New("target has no hostname: " + raw)
	}

	return Target{
		URL:  normalized,
		Host: u.Hostname(),
	}, nil
}
