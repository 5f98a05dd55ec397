package model

// Registration holds domain registration data from a WHOIS lookup.
//
// Design decision: WHOIS providers frequently return loosely structured
// text that defeats field extraction. Rather than threading an untyped
// blob through the pipeline, we model the result as a tagged value:
// Parsed reports whether the structured fields are populated, and Raw
// carries the unparsed provider response as a fallback.
type Registration struct {
	// Parsed is true when the structured fields below were extracted
	// successfully. When false, only Raw is meaningful.
	Parsed bool `json:"parsed"`

	// Raw is the unparsed WHOIS response text, set only when structured
	// parsing failed but the provider returned data.
	Raw string `json:"raw,omitempty"`

	// Registrar is the sponsoring registrar name.
	Registrar string `json:"registrar,omitempty"`

	// WhoisServer is the authoritative WHOIS server for the domain.
	WhoisServer string `json:"whois_server,omitempty"`

	// CreatedDate is the registration date as reported by the provider.
	CreatedDate string `json:"created_date,omitempty"`

	// UpdatedDate is the last-modified date as reported by the provider.
	UpdatedDate string `json:"updated_date,omitempty"`

	// ExpirationDate is the expiry date as reported by the provider.
	ExpirationDate string `json:"expiration_date,omitempty"`

	// Statuses contains EPP status codes (clientTransferProhibited etc).
	Statuses []string `json:"statuses,omitempty"`

	// NameServers contains the delegated name servers.
	NameServers []string `json:"name_servers,omitempty"`

	// DNSSec is true when the registry reports DNSSEC as signed.
	DNSSec bool `json:"dnssec,omitempty"`

	// RegistrantName is the registered holder, often redacted for privacy.
	RegistrantName string `json:"registrant_name,omitempty"`

	// RegistrantOrg is the registrant organization, often redacted.
	RegistrantOrg string `json:"registrant_org,omitempty"`

	// RegistrantCountry is the registrant country code.
	RegistrantCountry string `json:"registrant_country,omitempty"`
}

// Empty reports whether the lookup produced no usable data at all.
func (r *Registration) Empty() bool {
	return r == nil || (!r.Parsed && r.Raw == "")
}
