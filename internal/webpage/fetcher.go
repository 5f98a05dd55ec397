package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/webrecon/domainscan/internal/config"
)

// FetchResult holds the raw outcome of a page fetch.
type FetchResult struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// ContentType is the MIME type from the Content-Type header.
	ContentType string

	// Body is the response body, capped at the configured maximum size.
	Body []byte
}

// Fetcher performs the single page GET of a scan.
// It issues exactly one request per Fetch call; there are no retries and
// no redirect-chain crawling beyond what the injected client performs.
type Fetcher struct {
	// client is the HTTP client used for the request.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps how much of the response body is read.
	maxBodySize int64

	// cookie is an optional Cookie header value.
	cookie string

	// headers are optional additional request headers.
	headers map[string]string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the response body size in bytes.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithCookie sets a Cookie header for the request.
func WithCookie(cookie string) FetcherOption {
	return func(f *Fetcher) {
		f.cookie = cookie
	}
}

// WithHeaders sets additional request headers.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// NewFetcher creates a Fetcher using the given HTTP client.
// If client is nil, http.DefaultClient is used; callers normally pass a
// client with a configured timeout.
func NewFetcher(client *http.Client, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &Fetcher{
		client:      client,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch performs one GET request against the given URL.
// Non-2xx status codes are returned as errors: the caller treats any error
// here as a degraded page section, never as a scan abort.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	if f.cookie != "" {
		req.Header.Set("Cookie", f.cookie)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
