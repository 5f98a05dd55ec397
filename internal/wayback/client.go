package wayback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/webrecon/domainscan/internal/config"
	"github.com/webrecon/domainscan/internal/model"
)

// availabilityResponse mirrors archive.org's availability API answer.
type availabilityResponse struct {
	ArchivedSnapshots struct {
		Closest struct {
			Available bool   `json:"available"`
			URL       string `json:"url"`
			Timestamp string `json:"timestamp"`
		} `json:"closest"`
	} `json:"archived_snapshots"`
}

// Client queries the snapshot availability API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the availability API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a Wayback availability client.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    config.DefaultWaybackEndpoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClosestSnapshot returns the closest archived snapshot of target.
// A target with no archived snapshots returns (nil, nil): absence of an
// archive is an answer, not a failure.
func (c *Client) ClosestSnapshot(ctx context.Context, target string) (*model.WaybackSnapshot, error) {
	endpoint := fmt.Sprintf("%s?url=%s", c.baseURL, url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build wayback request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wayback request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wayback api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read wayback response: %w", err)
	}

	var api availabilityResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("failed to decode wayback response: %w", err)
	}

	closest := api.ArchivedSnapshots.Closest
	if !closest.Available || closest.URL == "" {
		return nil, nil
	}

	return &model.WaybackSnapshot{
		URL:       closest.URL,
		Timestamp: closest.Timestamp,
	}, nil
}
