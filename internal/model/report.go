package model

import "time"

// DomainReport is the main scan result structure.
// It accumulates the output of every pipeline stage for one target domain.
//
// Design decision: We use a single struct with one field per report section
// rather than a generic section map. Each field is nil (or empty) when its
// lookup failed or was skipped, and the report writers render an explicit
// "not available" placeholder for it; a degraded lookup never removes a
// section from the rendered document.
type DomainReport struct {
	// Target is the normalized scan target.
	Target Target `json:"target"`

	// DateScanned is the timestamp when the scan was performed.
	// This is the only field that varies between identical scans.
	DateScanned time.Time `json:"date_scanned"`

	// Page holds the fetched page content and extraction results.
	// Nil when the fetch failed.
	Page *PageContent `json:"page,omitempty"`

	// Registration holds WHOIS registration data.
	// Nil when the lookup failed or returned nothing.
	Registration *Registration `json:"registration,omitempty"`

	// DNS holds A and MX lookup results.
	DNS *DNSResult `json:"dns,omitempty"`

	// Reverse holds the PTR lookup result for the first A record.
	// Nil when there were no A records or no PTR exists.
	Reverse *ReverseDNS `json:"reverse,omitempty"`

	// Geo holds geolocation data for the first A record.
	// Nil when there were no A records or the provider failed.
	Geo *GeoRecord `json:"geo,omitempty"`

	// Wayback holds the closest archived snapshot, if any.
	Wayback *WaybackSnapshot `json:"wayback,omitempty"`

	// PerformedLookups lists the pipeline steps that ran, in order.
	PerformedLookups []string `json:"performed_lookups,omitempty"`

	// Degraded lists human-readable notes for lookups that failed
	// non-fatally. The scan still completes with placeholder sections.
	Degraded []string `json:"degraded,omitempty"`

	// TimedOut is true if the scan was cancelled before all steps ran.
	TimedOut bool `json:"timed_out,omitempty"`

	// Error holds the first step error for programmatic access.
	// Excluded from JSON; ErrorMessage carries the serialized form.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewDomainReport creates an empty report for the given target.
func NewDomainReport(target Target) *DomainReport {
	return &DomainReport{
		Target:      target,
		DateScanned: time.Now(),
	}
}

// AddDegraded records a non-fatal lookup failure note.
func (r *DomainReport) AddDegraded(note string) {
	r.Degraded = append(r.Degraded, note)
}

// FirstAddress returns the shared IP address used by the reverse DNS and
// geolocation sections, or "" when no A records were resolved.
func (r *DomainReport) FirstAddress() string {
	return r.DNS.FirstAddress()
}
