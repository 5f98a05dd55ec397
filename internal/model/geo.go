package model

// GeoRecord holds IP geolocation data for a single address.
// An empty GeoRecord (zero value) renders as unavailable in reports.
type GeoRecord struct {
	// IP is the address the lookup was keyed on (the first A record).
	IP string `json:"ip,omitempty"`

	// Country is the country name.
	Country string `json:"country,omitempty"`

	// CountryCode is the two-letter country code.
	CountryCode string `json:"country_code,omitempty"`

	// Region is the region or state name.
	Region string `json:"region,omitempty"`

	// City is the city name.
	City string `json:"city,omitempty"`

	// ISP is the internet service provider.
	ISP string `json:"isp,omitempty"`

	// Org is the organization that owns the address block.
	Org string `json:"org,omitempty"`

	// AS is the autonomous system, e.g. "AS15169 Google LLC".
	AS string `json:"as,omitempty"`

	// Timezone is the IANA timezone for the location.
	Timezone string `json:"timezone,omitempty"`

	// Lat and Lon are the approximate coordinates.
	Lat float64 `json:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty"`
}

// Empty reports whether the lookup produced no location data.
func (g *GeoRecord) Empty() bool {
	return g == nil || (g.Country == "" && g.City == "" && g.ISP == "" && g.Org == "")
}

// WaybackSnapshot is the closest archived snapshot of the target from the
// Wayback Machine, if one exists.
type WaybackSnapshot struct {
	// URL is the archive.org URL of the snapshot.
	URL string `json:"url"`

	// Timestamp is the snapshot capture time in archive.org's
	// YYYYMMDDhhmmss format.
	Timestamp string `json:"timestamp"`
}
