package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/webrecon/domainscan/internal/model"
)

// lookuper is the subset of net.Resolver the scanner uses.
type lookuper interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// Resolver answers the DNS questions of a scan.
type Resolver struct {
	lookup lookuper
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookuper replaces the underlying resolver.
func WithLookuper(l lookuper) Option {
	return func(r *Resolver) {
		r.lookup = l
	}
}

// NewResolver creates a Resolver backed by the system resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		lookup: net.DefaultResolver,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve performs the A and MX lookups for host.
// The two record types fail independently: an error from one lookup does
// not suppress the other's results. Both failing is reported as an error
// alongside an empty result.
func (r *Resolver) Resolve(ctx context.Context, host string) (*model.DNSResult, error) {
	result := &model.DNSResult{}

	ips, aErr := r.lookup.LookupIP(ctx, "ip4", host)
	for _, ip := range ips {
		result.Addresses = append(result.Addresses, ip.String())
	}

	mxs, mxErr := r.lookup.LookupMX(ctx, host)
	for _, mx := range mxs {
		result.MX = append(result.MX, model.MXRecord{
			Preference: mx.Pref,
			Host:       strings.TrimSuffix(mx.Host, "."),
		})
	}
	model.SortMX(result.MX)

	if aErr != nil && mxErr != nil {
		return result, fmt.Errorf("dns lookup failed for %s: %w", host, aErr)
	}

	return result, nil
}

// Reverse performs the PTR lookup for a single IP address.
// A missing PTR record is not an error; it yields an empty hostname list.
func (r *Resolver) Reverse(ctx context.Context, ip string) (*model.ReverseDNS, error) {
	result := &model.ReverseDNS{IP: ip}

	names, err := r.lookup.LookupAddr(ctx, ip)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return result, nil
		}
		return nil, fmt.Errorf("reverse lookup failed for %s: %w", ip, err)
	}

	for _, name := range names {
		result.Hostnames = append(result.Hostnames, strings.TrimSuffix(name, "."))
	}

	return result, nil
}
