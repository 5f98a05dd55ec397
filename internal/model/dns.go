package model

import "sort"

// MXRecord is a single mail exchanger entry.
type MXRecord struct {
	// Preference is the MX priority; lower values have higher priority.
	Preference uint16 `json:"preference"`

	// Host is the exchange hostname.
	Host string `json:"host"`
}

// DNSResult holds the forward DNS lookup results for a domain.
// Either slice may be empty; failure of one record type does not affect
// the other.
type DNSResult struct {
	// Addresses contains resolved IPv4 addresses in resolver order.
	Addresses []string `json:"addresses,omitempty"`

	// MX contains mail exchanger records sorted by ascending preference.
	MX []MXRecord `json:"mx,omitempty"`
}

// FirstAddress returns the first resolved IPv4 address, or "" when the
// A-record set is empty. The reverse DNS and geolocation stages both key
// off this single address so the report stays internally consistent.
func (d *DNSResult) FirstAddress() string {
	if d == nil || len(d.Addresses) == 0 {
		return ""
	}
	return d.Addresses[0]
}

// SortMX orders MX records by ascending preference, with the exchange
// hostname as tiebreaker. Resolvers shuffle records of equal preference,
// so sorting keeps report output deterministic.
func SortMX(records []MXRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Preference != records[j].Preference {
			return records[i].Preference < records[j].Preference
		}
		return records[i].Host < records[j].Host
	})
}

// ReverseDNS holds the result of a PTR lookup for a single IP address.
type ReverseDNS struct {
	// IP is the address that was looked up (the first A record).
	IP string `json:"ip"`

	// Hostnames contains PTR results; empty when no PTR record exists.
	Hostnames []string `json:"hostnames,omitempty"`
}
