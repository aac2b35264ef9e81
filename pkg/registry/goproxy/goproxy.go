// Package goproxy provides a Go module proxy client for latest-version lookups.
package goproxy

import (
	"context"
	"fmt"

	"golang.org/x/mod/module"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/registry"
)

// Client queries the Go module proxy (proxy.golang.org by default).
// All methods are safe for concurrent use.
type Client struct {
	client  *registry.Client
	baseURL string
}

// NewClient creates a module proxy client with the given cache backend.
func NewClient(backend cache.Cache) *Client {
	return &Client{
		client:  registry.NewClient(backend, "goproxy:"),
		baseURL: "https://proxy.golang.org",
	}
}

// Name returns the registry identifier.
func (c *Client) Name() string { return "goproxy" }

// LatestVersion returns the @latest version of a module.
// The module path is case-encoded per the proxy protocol (e.g.
// github.com/BurntSushi -> github.com/!burnt!sushi).
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	escaped, err := module.EscapePath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", registry.ErrNotFound, name)
	}

	var data struct {
		Version string `json:"Version"`
	}
	url := fmt.Sprintf("%s/%s/@latest", c.baseURL, escaped)
	if err := c.client.GetJSON(ctx, name, url, &data); err != nil {
		return "", err
	}
	if data.Version == "" {
		return "", registry.ErrNotFound
	}
	return data.Version, nil
}

// Ensure Client implements Source.
var _ registry.Source = (*Client)(nil)
