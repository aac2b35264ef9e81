// Package npm provides a minimal npm registry client for latest-version lookups.
package npm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/envforge/pkg/cache"
	envferrors "github.com/matzehuels/envforge/pkg/errors"
	"github.com/matzehuels/envforge/pkg/registry"
)

// Client queries the npm registry API.
// All methods are safe for concurrent use.
type Client struct {
	client  *registry.Client
	baseURL string
}

// NewClient creates an npm client with the given cache backend.
func NewClient(backend cache.Cache) *Client {
	return &Client{
		client:  registry.NewClient(backend, "npm:"),
		baseURL: "https://registry.npmjs.org",
	}
}

// Name returns the registry identifier.
func (c *Client) Name() string { return "npm" }

// LatestVersion returns the version published under the "latest" dist-tag.
// Scoped package names (@scope/name) are URL-escaped for the request path.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	if err := envferrors.ValidatePackageName(name); err != nil {
		return "", err
	}
	pkg := strings.TrimSpace(name)

	var data struct {
		Version string `json:"version"`
	}
	endpoint := fmt.Sprintf("%s/%s/latest", c.baseURL, url.PathEscape(pkg))
	if err := c.client.GetJSON(ctx, pkg, endpoint, &data); err != nil {
		return "", err
	}
	if data.Version == "" {
		return "", registry.ErrNotFound
	}
	return data.Version, nil
}

// Ensure Client implements Source.
var _ registry.Source = (*Client)(nil)
