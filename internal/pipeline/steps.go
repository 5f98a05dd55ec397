package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/webrecon/domainscan/internal/config"
	"github.com/webrecon/domainscan/internal/geo"
	"github.com/webrecon/domainscan/internal/model"
	"github.com/webrecon/domainscan/internal/resolver"
	"github.com/webrecon/domainscan/internal/wayback"
	"github.com/webrecon/domainscan/internal/webpage"
	"github.com/webrecon/domainscan/internal/whois"
)

// The step dependencies are narrow interfaces so tests can substitute
// scripted fakes without network access.

// pageFetcher fetches the target page.
type pageFetcher interface {
	Fetch(ctx context.Context, url string) (*webpage.FetchResult, error)
}

// registrationLookuper queries domain registration data.
type registrationLookuper interface {
	Lookup(ctx context.Context, host string) (*model.Registration, error)
}

// dnsResolver answers forward and reverse DNS questions.
type dnsResolver interface {
	Resolve(ctx context.Context, host string) (*model.DNSResult, error)
	Reverse(ctx context.Context, ip string) (*model.ReverseDNS, error)
}

// geoLocator resolves IP geolocation.
type geoLocator interface {
	Locate(ctx context.Context, ip string) (*model.GeoRecord, error)
}

// snapshotFinder queries the Wayback Machine availability API.
type snapshotFinder interface {
	ClosestSnapshot(ctx context.Context, target string) (*model.WaybackSnapshot, error)
}

// FetchStep performs the single page GET and extracts its content.
type FetchStep struct {
	fetcher pageFetcher
}

// NewFetchStep creates a FetchStep using the given fetcher.
func NewFetchStep(fetcher pageFetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string { return "page_fetch" }

// Do fetches the target page and fills the report's page section.
// Any failure degrades only this section.
func (s *FetchStep) Do(ctx context.Context, report *model.DomainReport) error {
	result, err := s.fetcher.Fetch(ctx, report.Target.URL)
	if err != nil {
		report.AddDegraded(fmt.Sprintf("page fetch failed: %v", err))
		return nil
	}

	page := &model.PageContent{
		StatusCode:  result.StatusCode,
		ContentType: result.ContentType,
		Hash:        model.HashBody(result.Body),
	}

	parser, err := webpage.NewParser(report.Target.URL)
	if err == nil {
		extraction, parseErr := parser.ParseBytes(result.Body, result.ContentType)
		if parseErr != nil {
			report.AddDegraded(fmt.Sprintf("page parse failed: %v", parseErr))
		} else {
			page.Title = extraction.Title
			page.Links = extraction.Links
			page.Text = extraction.Text
		}
	}

	report.Page = page
	return nil
}

// WhoisStep performs the registration lookup.
type WhoisStep struct {
	client registrationLookuper
}

// NewWhoisStep creates a WhoisStep using the given client.
func NewWhoisStep(client registrationLookuper) *WhoisStep {
	return &WhoisStep{client: client}
}

// Name returns the step name.
func (s *WhoisStep) Name() string { return "whois" }

// Do queries registration data for the target host.
// The registry is queried exactly once; failures degrade the section.
func (s *WhoisStep) Do(ctx context.Context, report *model.DomainReport) error {
	reg, err := s.client.Lookup(ctx, report.Target.Host)
	if err != nil {
		report.AddDegraded(fmt.Sprintf("whois lookup failed: %v", err))
		return nil
	}

	report.Registration = reg
	return nil
}

// DNSStep performs the forward A and MX lookups.
type DNSStep struct {
	resolver dnsResolver
}

// NewDNSStep creates a DNSStep using the given resolver.
func NewDNSStep(r dnsResolver) *DNSStep {
	return &DNSStep{resolver: r}
}

// Name returns the step name.
func (s *DNSStep) Name() string { return "dns" }

// Do resolves A and MX records for the target host.
// A partial result (one record type failed) is still recorded; the
// downstream reverse and geolocation steps key off what resolved.
func (s *DNSStep) Do(ctx context.Context, report *model.DomainReport) error {
	result, err := s.resolver.Resolve(ctx, report.Target.Host)
	if err != nil {
		report.AddDegraded(fmt.Sprintf("dns lookup failed: %v", err))
	}

	report.DNS = result
	return nil
}

// ReverseDNSStep performs the PTR lookup for the first resolved address.
type ReverseDNSStep struct {
	resolver dnsResolver
}

// NewReverseDNSStep creates a ReverseDNSStep using the given resolver.
func NewReverseDNSStep(r dnsResolver) *ReverseDNSStep {
	return &ReverseDNSStep{resolver: r}
}

// Name returns the step name.
func (s *ReverseDNSStep) Name() string { return "reverse_dns" }

// Do looks up the PTR record for the report's first A record.
// When no A records resolved the step is a no-op: no lookup is issued
// and the section stays empty.
func (s *ReverseDNSStep) Do(ctx context.Context, report *model.DomainReport) error {
	ip := report.FirstAddress()
	if ip == "" {
		return nil
	}

	rev, err := s.resolver.Reverse(ctx, ip)
	if err != nil {
		report.AddDegraded(fmt.Sprintf("reverse dns lookup failed: %v", err))
		return nil
	}

	report.Reverse = rev
	return nil
}

// GeoStep performs the geolocation lookup for the first resolved address.
type GeoStep struct {
	client geoLocator
}

// NewGeoStep creates a GeoStep using the given client.
func NewGeoStep(client geoLocator) *GeoStep {
	return &GeoStep{client: client}
}

// Name returns the step name.
func (s *GeoStep) Name() string { return "geolocation" }

// Do looks up the geolocation of the report's first A record.
// When no A records resolved the step is a no-op. Unroutable addresses
// are noted but never sent to the provider.
func (s *GeoStep) Do(ctx context.Context, report *model.DomainReport) error {
	ip := report.FirstAddress()
	if ip == "" {
		return nil
	}

	record, err := s.client.Locate(ctx, ip)
	if err != nil {
		if errors.Is(err, geo.ErrUnroutableIP) {
			report.AddDegraded(fmt.Sprintf("geolocation skipped: %s is not publicly routable", ip))
		} else {
			report.AddDegraded(fmt.Sprintf("geolocation lookup failed: %v", err))
		}
		return nil
	}

	report.Geo = record
	return nil
}

// WaybackStep looks up the closest archived snapshot of the target.
type WaybackStep struct {
	client snapshotFinder
}

// NewWaybackStep creates a WaybackStep using the given client.
func NewWaybackStep(client snapshotFinder) *WaybackStep {
	return &WaybackStep{client: client}
}

// Name returns the step name.
func (s *WaybackStep) Name() string { return "wayback" }

// Do queries the availability API for the target URL.
// A target with no archived snapshots leaves the section empty without
// a degraded note; only transport failures degrade.
func (s *WaybackStep) Do(ctx context.Context, report *model.DomainReport) error {
	snap, err := s.client.ClosestSnapshot(ctx, report.Target.URL)
	if err != nil {
		report.AddDegraded(fmt.Sprintf("wayback lookup failed: %v", err))
		return nil
	}

	report.Wayback = snap
	return nil
}

// NewDefaultPipeline builds the standard scan pipeline for one target.
// The domainCfg carries per-domain fetch overrides and may be zero.
func NewDefaultPipeline(cfg *config.Config, domainCfg config.DomainConfig, opts ...Option) *Pipeline {
	timeout := cfg.Timeout
	if domainCfg.Timeout > 0 {
		timeout = domainCfg.Timeout
	}

	httpClient := &http.Client{Timeout: timeout}

	fetcher := webpage.NewFetcher(httpClient,
		webpage.WithUserAgent(cfg.UserAgent),
		webpage.WithMaxBodySize(cfg.MaxBodySize),
		webpage.WithCookie(domainCfg.Cookie),
		webpage.WithHeaders(domainCfg.Headers),
	)
	dns := resolver.NewResolver()

	p := New(append(opts, WithContinueOnError(true))...)
	p.AddStep(NewFetchStep(fetcher))
	if !cfg.SkipWhois {
		p.AddStep(NewWhoisStep(whois.NewClient(timeout)))
	}
	p.AddSteps(NewDNSStep(dns), NewReverseDNSStep(dns))
	if !cfg.SkipGeo {
		p.AddStep(NewGeoStep(geo.NewClient(httpClient, geo.WithBaseURL(cfg.GeoEndpoint))))
	}
	if !cfg.SkipWayback {
		p.AddStep(NewWaybackStep(wayback.NewClient(httpClient, wayback.WithBaseURL(cfg.WaybackEndpoint))))
	}

	return p
}
