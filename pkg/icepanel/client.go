package icepanel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/cache"
)

const (
	// DefaultBaseURL is the production IcePanel API endpoint.
	DefaultBaseURL = "https://api.icepanel.io/v1"

	httpTimeout = 10 * time.Second

	cachePrefix = "icepanel:"
)

var (
	// ErrNotFound is returned when a requested resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnexpectedShape is returned when a response decodes but carries none
	// of the keys the endpoint is documented to return.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// Config holds the connection parameters for one landscape/version scope.
type Config struct {
	APIKey      string
	LandscapeID string
	VersionID   string

	// BaseURL overrides the API endpoint, mainly for tests.
	// Empty means [DefaultBaseURL].
	BaseURL string

	// Cache stores raw GET responses for the lifetime of the run.
	// Nil disables response caching.
	Cache cache.Cache

	// CacheTTL bounds how long a cached response is reused. Zero means
	// entries live for the whole run.
	CacheTTL time.Duration
}

// Client performs authenticated GET requests against the IcePanel API.
// It handles the auth header, status code mapping, and per-run response
// caching. Every request is a single attempt; failures are never retried.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
	base     string
	headers  map[string]string
}

// New creates a Client for the landscape/version scope in cfg.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	c := cfg.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    c,
		cacheTTL: cfg.CacheTTL,
		base:     fmt.Sprintf("%s/landscapes/%s/versions/%s", base, cfg.LandscapeID, cfg.VersionID),
		headers:  map[string]string{"Authorization": "ApiKey " + cfg.APIKey},
	}
}

// SetHTTPClient replaces the underlying HTTP client. Tests use this to point
// the client at an httptest server.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// Get performs a GET against path (relative to the landscape/version base)
// and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, path string, v any) error {
	raw, err := c.GetRaw(ctx, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// GetRaw performs a GET against path and returns the raw response body.
// Successful responses are cached by URL for the rest of the run.
func (c *Client) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	url := c.base + path
	key := cache.Key(cachePrefix, url)

	if data, ok, _ := c.cache.Get(ctx, key); ok {
		return json.RawMessage(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("%w: GET %s", err, path)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	_ = c.cache.Set(ctx, key, data, c.cacheTTL)
	return json.RawMessage(data), nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
