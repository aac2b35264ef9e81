// Package registry provides best-effort clients for package registry APIs.
//
// The engine uses registries for exactly one thing: resolving the "latest"
// version sentinel after reconciliation. Lookups are timeout-bounded and
// network-optional; any failure (timeout, no connectivity, unknown package)
// leaves the sentinel in place rather than erroring.
//
// Registry subpackages (pypi, npm, goproxy, rubygems) wrap the shared
// [Client] with endpoint-specific request and response handling.
package registry

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Source resolves the latest published version of a package.
//
// Implementations must tolerate absence of the backing service: callers
// treat every error as "keep the sentinel", never as a run failure.
type Source interface {
	// LatestVersion returns the most recent published version for name.
	//
	// Returns ErrNotFound if the package is unknown and ErrNetwork (or a
	// wrapped variant) for transport failures. Implementations must respect
	// context cancellation.
	LatestVersion(ctx context.Context, name string) (string, error)

	// Name returns the registry identifier (e.g. "pypi", "npm").
	Name() string
}

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
