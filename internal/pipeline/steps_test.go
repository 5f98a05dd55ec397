package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/webrecon/domainscan/internal/config"
	"github.com/webrecon/domainscan/internal/model"
	"github.com/webrecon/domainscan/internal/webpage"
)

// fakeFetcher returns a scripted fetch result.
type fakeFetcher struct {
	result *webpage.FetchResult
	err    error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*webpage.FetchResult, error) {
	return f.result, f.err
}

// fakeDNS is a scripted dnsResolver with call counters.
type fakeDNS struct {
	resolveResult *model.DNSResult
	resolveErr    error
	reverseResult *model.ReverseDNS
	reverseErr    error
	reverseCalls  int
}

func (f *fakeDNS) Resolve(ctx context.Context, host string) (*model.DNSResult, error) {
	return f.resolveResult, f.resolveErr
}

func (f *fakeDNS) Reverse(ctx context.Context, ip string) (*model.ReverseDNS, error) {
	f.reverseCalls++
	return f.reverseResult, f.reverseErr
}

// fakeGeo is a scripted geoLocator with a call counter.
type fakeGeo struct {
	result *model.GeoRecord
	err    error
	calls  int
}

func (f *fakeGeo) Locate(ctx context.Context, ip string) (*model.GeoRecord, error) {
	f.calls++
	return f.result, f.err
}

// fakeWayback is a scripted snapshotFinder.
type fakeWayback struct {
	snap *model.WaybackSnapshot
	err  error
}

func (f *fakeWayback) ClosestSnapshot(ctx context.Context, target string) (*model.WaybackSnapshot, error) {
	return f.snap, f.err
}

func testReport() *model.DomainReport {
	return model.NewDomainReport(model.Target{URL: "http://example.com", Host: "example.com"})
}

// TestFetchStep tests the page fetch stage.
func TestFetchStep(t *testing.T) {
	t.Parallel()

	t.Run("successful fetch fills page section", func(t *testing.T) {
		t.Parallel()

		step := NewFetchStep(&fakeFetcher{result: &webpage.FetchResult{
			StatusCode:  200,
			ContentType: "text/html",
			Body:        []byte(`<html><title>Hi</title><a href="/x">x</a></html>`),
		}})

		report := testReport()
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Page == nil {
			t.Fatal("expected page section")
		}
		if report.Page.Title != "Hi" {
			t.Errorf("Title = %q", report.Page.Title)
		}
		if len(report.Page.Links) != 1 || report.Page.Links[0] != "http://example.com/x" {
			t.Errorf("Links = %v", report.Page.Links)
		}
		if report.Page.Hash == "" {
			t.Error("expected body hash")
		}
		if len(report.Degraded) != 0 {
			t.Errorf("unexpected degraded notes: %v", report.Degraded)
		}
	})

	t.Run("fetch failure degrades only the page section", func(t *testing.T) {
		t.Parallel()

		step := NewFetchStep(&fakeFetcher{err: errors.New("connection refused")})

		report := testReport()
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("step error should be nil, got: %v", err)
		}

		if report.Page != nil {
			t.Error("page section should stay empty on fetch failure")
		}
		if len(report.Degraded) != 1 {
			t.Errorf("Degraded = %v, want one note", report.Degraded)
		}
	})
}

// TestWhoisStep tests the registration stage.
func TestWhoisStep(t *testing.T) {
	t.Parallel()

	t.Run("failure degrades the section", func(t *testing.T) {
		t.Parallel()

		step := NewWhoisStep(failingWhois{})
		report := testReport()
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Registration != nil {
			t.Error("registration should stay empty")
		}
		if len(report.Degraded) != 1 {
			t.Errorf("Degraded = %v", report.Degraded)
		}
	})
}

type failingWhois struct{}

func (failingWhois) Lookup(ctx context.Context, host string) (*model.Registration, error) {
	return nil, errors.New("refused")
}

// TestReverseAndGeoSkipOnEmptyAddresses tests that the reverse DNS and
// geolocation stages issue no lookup when no A records resolved.
func TestReverseAndGeoSkipOnEmptyAddresses(t *testing.T) {
	t.Parallel()

	dns := &fakeDNS{}
	geoClient := &fakeGeo{}

	report := testReport()
	report.DNS = &model.DNSResult{} // resolved, but no addresses

	if err := NewReverseDNSStep(dns).Do(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NewGeoStep(geoClient).Do(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dns.reverseCalls != 0 {
		t.Errorf("reverse lookups = %d, want 0", dns.reverseCalls)
	}
	if geoClient.calls != 0 {
		t.Errorf("geo lookups = %d, want 0", geoClient.calls)
	}
	if report.Reverse != nil || report.Geo != nil {
		t.Error("sections should stay empty without addresses")
	}
	if len(report.Degraded) != 0 {
		t.Errorf("skipping is not a degradation: %v", report.Degraded)
	}
}

// TestReverseAndGeoUseFirstAddress tests that both stages key off the
// first resolved address.
func TestReverseAndGeoUseFirstAddress(t *testing.T) {
	t.Parallel()

	dns := &fakeDNS{reverseResult: &model.ReverseDNS{IP: "93.184.216.34", Hostnames: []string{"edge.example.net"}}}
	geoClient := &fakeGeo{result: &model.GeoRecord{IP: "93.184.216.34", Country: "United States"}}

	report := testReport()
	report.DNS = &model.DNSResult{Addresses: []string{"93.184.216.34", "93.184.216.35"}}

	if err := NewReverseDNSStep(dns).Do(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NewGeoStep(geoClient).Do(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Reverse == nil || report.Reverse.IP != "93.184.216.34" {
		t.Errorf("Reverse = %+v", report.Reverse)
	}
	if report.Geo == nil || report.Geo.IP != "93.184.216.34" {
		t.Errorf("Geo = %+v", report.Geo)
	}
}

// TestDNSStep tests the forward resolution stage.
func TestDNSStep(t *testing.T) {
	t.Parallel()

	t.Run("records partial results on failure", func(t *testing.T) {
		t.Parallel()

		dns := &fakeDNS{
			resolveResult: &model.DNSResult{},
			resolveErr:    errors.New("no such host"),
		}

		report := testReport()
		if err := NewDNSStep(dns).Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.DNS == nil {
			t.Error("expected dns section even on failure")
		}
		if len(report.Degraded) != 1 {
			t.Errorf("Degraded = %v", report.Degraded)
		}
	})
}

// TestWaybackStep tests the snapshot stage.
func TestWaybackStep(t *testing.T) {
	t.Parallel()

	t.Run("no snapshot is not a degradation", func(t *testing.T) {
		t.Parallel()

		report := testReport()
		if err := NewWaybackStep(&fakeWayback{}).Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Wayback != nil {
			t.Error("expected empty wayback section")
		}
		if len(report.Degraded) != 0 {
			t.Errorf("Degraded = %v", report.Degraded)
		}
	})

	t.Run("transport failure degrades", func(t *testing.T) {
		t.Parallel()

		report := testReport()
		step := NewWaybackStep(&fakeWayback{err: errors.New("503")})
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Degraded) != 1 {
			t.Errorf("Degraded = %v", report.Degraded)
		}
	})
}

// TestNewDefaultPipeline tests stage selection from configuration.
func TestNewDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("full pipeline", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		p := NewDefaultPipeline(cfg, config.DomainConfig{})

		want := []string{"page_fetch", "whois", "dns", "reverse_dns", "geolocation", "wayback"}
		got := p.StepNames()
		if len(got) != len(want) {
			t.Fatalf("StepNames = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("step %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("skip flags drop stages", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.SkipWhois = true
		cfg.SkipGeo = true
		cfg.SkipWayback = true

		p := NewDefaultPipeline(cfg, config.DomainConfig{})
		for _, name := range p.StepNames() {
			switch name {
			case "whois", "geolocation", "wayback":
				t.Errorf("stage %q should be skipped", name)
			}
		}
	})
}
