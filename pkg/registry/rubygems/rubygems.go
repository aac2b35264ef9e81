// Package rubygems provides a RubyGems client for latest-version lookups.
package rubygems

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/envforge/pkg/cache"
	envferrors "github.com/matzehuels/envforge/pkg/errors"
	"github.com/matzehuels/envforge/pkg/registry"
)

// Client queries the RubyGems API.
// All methods are safe for concurrent use.
type Client struct {
	client  *registry.Client
	baseURL string
}

// NewClient creates a RubyGems client with the given cache backend.
func NewClient(backend cache.Cache) *Client {
	return &Client{
		client:  registry.NewClient(backend, "rubygems:"),
		baseURL: "https://rubygems.org/api/v1",
	}
}

// Name returns the registry identifier.
func (c *Client) Name() string { return "rubygems" }

// LatestVersion returns the latest published version of a gem.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	if err := envferrors.ValidatePackageName(name); err != nil {
		return "", err
	}
	gem := strings.ToLower(strings.TrimSpace(name))

	var data struct {
		Version string `json:"version"`
	}
	url := fmt.Sprintf("%s/versions/%s/latest.json", c.baseURL, gem)
	if err := c.client.GetJSON(ctx, gem, url, &data); err != nil {
		return "", err
	}
	// The API responds 200 with {"version": "unknown"} for missing gems.
	if data.Version == "" || data.Version == "unknown" {
		return "", registry.ErrNotFound
	}
	return data.Version, nil
}

// Ensure Client implements Source.
var _ registry.Source = (*Client)(nil)
