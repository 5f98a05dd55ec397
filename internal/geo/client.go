package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/webrecon/domainscan/internal/config"
	"github.com/webrecon/domainscan/internal/model"
)

var (
	// ErrInvalidIP is returned when the input is not a valid IP address.
	ErrInvalidIP = errors.New("geo: invalid ip address")

	// ErrUnroutableIP is returned for private, loopback, and other
	// special-purpose addresses that cannot be geolocated.
	ErrUnroutableIP = errors.New("geo: address is not publicly routable")
)

// apiResponse mirrors the provider's JSON answer.
type apiResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	RegionName  string  `json:"regionName"`
	City        string  `json:"city"`
	ISP         string  `json:"isp"`
	Org         string  `json:"org"`
	AS          string  `json:"as"`
	Timezone    string  `json:"timezone"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Client queries the geolocation provider.
type Client struct {
	// httpClient is the HTTP client used for requests.
	httpClient *http.Client

	// baseURL is the provider endpoint, e.g. "http://ip-api.com/json".
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a geolocation client.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    config.DefaultGeoEndpoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Locate looks up the geolocation of one IP address.
// Unroutable addresses short-circuit locally with ErrUnroutableIP and
// never reach the network.
func (c *Client) Locate(ctx context.Context, ip string) (*model.GeoRecord, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIP, ip)
	}
	if !isRoutable(parsed) {
		return nil, fmt.Errorf("%w: %s", ErrUnroutableIP, ip)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geolocation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read geolocation response: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if api.Status != "success" {
		return nil, fmt.Errorf("geolocation lookup failed for %s: %s", ip, api.Message)
	}

	return &model.GeoRecord{
		IP:          ip,
		Country:     api.Country,
		CountryCode: api.CountryCode,
		Region:      api.RegionName,
		City:        api.City,
		ISP:         api.ISP,
		Org:         api.Org,
		AS:          api.AS,
		Timezone:    api.Timezone,
		Lat:         api.Lat,
		Lon:         api.Lon,
	}, nil
}

// isRoutable reports whether ip can meaningfully be geolocated.
func isRoutable(ip net.IP) bool {
	return !(ip.IsPrivate() ||
		ip.IsLoopback() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified())
}
