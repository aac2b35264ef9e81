package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/observability"
)

// Client provides shared HTTP functionality for all registry API clients.
// It handles response caching, retry logic, and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
}

// NewClient creates a Client with the given cache backend and key namespace.
// Pass cache.NewNullCache() to disable response caching.
func NewClient(backend cache.Cache, namespace string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     backend,
		namespace: namespace,
	}
}

// GetJSON performs an HTTP GET request and JSON-decodes the response into v.
// Responses are cached under the client's namespace; retries are automatic
// for retryable failures (network errors, 5xx).
func (c *Client) GetJSON(ctx context.Context, key, url string, v any) error {
	cacheKey := cache.HTTPKey(c.namespace, key)

	if data, hit, _ := c.cache.Get(ctx, cacheKey); hit {
		if err := json.Unmarshal(data, v); err == nil {
			return nil
		}
		// Corrupted entry: fall through to a fresh fetch
		_ = c.cache.Delete(ctx, cacheKey)
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		body, fetchErr = c.doRequest(ctx, url)
		return fetchErr
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	_ = c.cache.Set(ctx, cacheKey, body, cache.DefaultTTL)
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(started))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
