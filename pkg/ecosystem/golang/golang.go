// Package golang defines the Go ecosystem: module proxy version lookups and
// go.mod parsing via golang.org/x/mod.
package golang

import (
	"regexp"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/ecosystem"
	"github.com/matzehuels/envforge/pkg/registry"
	"github.com/matzehuels/envforge/pkg/registry/goproxy"
)

// Ecosystem provides Go detection, analysis, and module proxy resolution.
//
// Import extraction for Go needs block-aware parsing, so the analyzer
// package registers a dedicated analyzer for it; ImportPatterns stays nil.
var Ecosystem = &ecosystem.Ecosystem{
	Name:       "go",
	Extensions: []string{".go"},
	ManifestFiles: []string{
		"go.mod",
		"go.sum",
	},
	DefinitionPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s+)?[\w]+\s*\([^)]*\)`),
	},
	ParseConfig:      parseConfig,
	RootSymbol:       rootSymbol,
	NewVersionSource: newVersionSource,
}

func newVersionSource(backend cache.Cache) registry.Source {
	return goproxy.NewClient(backend)
}

// rootSymbol keeps the full module-ish path but drops obvious stdlib
// imports, which have no dot in their first path segment.
func rootSymbol(symbol string) string {
	first := symbol
	if i := strings.IndexByte(symbol, '/'); i >= 0 {
		first = symbol[:i]
	}
	if !strings.Contains(first, ".") {
		return ""
	}
	return symbol
}

func parseConfig(filename string, lines []string) []ecosystem.Declared {
	if filename != "go.mod" {
		// go.sum is recorded raw but carries no requirement lines
		return nil
	}

	f, err := modfile.ParseLax("go.mod", []byte(strings.Join(lines, "\n")), nil)
	if err != nil {
		return nil
	}

	var deps []ecosystem.Declared
	for _, req := range f.Require {
		if req.Indirect {
			continue
		}
		deps = append(deps, ecosystem.Declared{
			Name:    req.Mod.Path,
			Version: ecosystem.CanonicalVersion(req.Mod.Version),
		})
	}
	return deps
}
