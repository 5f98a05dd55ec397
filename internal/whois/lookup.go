package whois

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/webrecon/domainscan/internal/model"
)

// ErrNoData is returned when the registry answered but provided no
// registration data at all.
var ErrNoData = errors.New("whois: no registration data in response")

// queryFunc performs the raw WHOIS query. Swappable in tests.
type queryFunc func(domain string) (string, error)

// Client performs WHOIS lookups for domains.
type Client struct {
	query queryFunc
}

// Option configures a Client.
type Option func(*Client)

// WithQueryFunc replaces the raw query implementation.
func WithQueryFunc(fn queryFunc) Option {
	return func(c *Client) {
		c.query = fn
	}
}

// NewClient creates a WHOIS client with the given per-query timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	raw := whois.NewClient()
	raw.SetTimeout(timeout)

	c := &Client{
		query: func(domain string) (string, error) {
			return raw.Whois(domain)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup queries registration data for the given host.
// It issues exactly one query; a failed query is reported to the caller,
// who records it as a degraded section rather than aborting the scan.
func (c *Client) Lookup(ctx context.Context, host string) (*model.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := c.query(host)
	if err != nil {
		return nil, fmt.Errorf("whois query failed for %s: %w", host, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoData
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		// Unparseable but non-empty responses still carry value for the
		// report; fall back to the raw text.
		return &model.Registration{Raw: raw}, nil
	}

	return fromParsed(parsed), nil
}

// fromParsed converts the parser's result into the report model.
func fromParsed(info whoisparser.WhoisInfo) *model.Registration {
	reg := &model.Registration{Parsed: true}

	if d := info.Domain; d != nil {
		reg.WhoisServer = d.WhoisServer
		reg.CreatedDate = d.CreatedDate
		reg.UpdatedDate = d.UpdatedDate
		reg.ExpirationDate = d.ExpirationDate
		reg.Statuses = d.Status
		reg.NameServers = d.NameServers
		reg.DNSSec = d.DNSSec
	}
	if r := info.Registrar; r != nil {
		reg.Registrar = r.Name
	}
	if r := info.Registrant; r != nil {
		reg.RegistrantName = r.Name
		reg.RegistrantOrg = r.Organization
		reg.RegistrantCountry = r.Country
	}

	return reg
}
