// Package pypi provides a minimal PyPI client for latest-version lookups.
package pypi

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/envforge/pkg/cache"
	envferrors "github.com/matzehuels/envforge/pkg/errors"
	"github.com/matzehuels/envforge/pkg/registry"
)

// Client queries the PyPI JSON API.
// All methods are safe for concurrent use.
type Client struct {
	client  *registry.Client
	baseURL string
}

// NewClient creates a PyPI client with the given cache backend.
func NewClient(backend cache.Cache) *Client {
	return &Client{
		client:  registry.NewClient(backend, "pypi:"),
		baseURL: "https://pypi.org/pypi",
	}
}

// Name returns the registry identifier.
func (c *Client) Name() string { return "pypi" }

// LatestVersion returns the current release version of a package.
//
// Package names are normalized following PEP 503 (lowercase,
// underscores to hyphens) before the lookup.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	if err := envferrors.ValidatePackageName(name); err != nil {
		return "", err
	}
	pkg := Normalize(name)

	var data struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
	}
	url := fmt.Sprintf("%s/%s/json", c.baseURL, pkg)
	if err := c.client.GetJSON(ctx, pkg, url, &data); err != nil {
		return "", err
	}
	if data.Info.Version == "" {
		return "", registry.ErrNotFound
	}
	return data.Info.Version, nil
}

// Normalize converts a package name to its PEP 503 canonical form.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Ensure Client implements Source.
var _ registry.Source = (*Client)(nil)
