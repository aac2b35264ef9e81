// Package ruby defines the Ruby ecosystem: RubyGems-backed version lookups
// and config parsing for Gemfile and Gemfile.lock.
package ruby

import (
	"regexp"
	"strings"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/ecosystem"
	"github.com/matzehuels/envforge/pkg/registry"
	"github.com/matzehuels/envforge/pkg/registry/rubygems"
)

// Ecosystem provides Ruby detection, analysis, and RubyGems resolution.
var Ecosystem = &ecosystem.Ecosystem{
	Name:       "ruby",
	Extensions: []string{".rb"},
	ManifestFiles: []string{
		"Gemfile",
		"Gemfile.lock",
	},
	ImportPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*require\s+['"]([^'"]+)['"]`),
	},
	DefinitionPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*def\s+[\w?!=]+`),
	},
	ParseConfig:      parseConfig,
	NormalizeName:    normalize,
	RootSymbol:       rootSymbol,
	NewVersionSource: newVersionSource,
}

func newVersionSource(backend cache.Cache) registry.Source {
	return rubygems.NewClient(backend)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// rootSymbol reduces "active_support/core_ext" to "active_support".
// Relative requires yield "".
func rootSymbol(symbol string) string {
	if strings.HasPrefix(symbol, ".") {
		return ""
	}
	if i := strings.IndexByte(symbol, '/'); i >= 0 {
		return symbol[:i]
	}
	return symbol
}

var (
	gemRE     = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)
	lockGemRE = regexp.MustCompile(`^ {4}([A-Za-z0-9_-]+)\s+\(([^)]+)\)`)
)

func parseConfig(filename string, lines []string) []ecosystem.Declared {
	switch filename {
	case "Gemfile":
		return parseGemfile(lines)
	case "Gemfile.lock":
		return parseGemfileLock(lines)
	default:
		return nil
	}
}

func parseGemfile(lines []string) []ecosystem.Declared {
	var deps []ecosystem.Declared
	for _, line := range lines {
		if m := gemRE.FindStringSubmatch(line); m != nil {
			deps = append(deps, ecosystem.Declared{
				Name:    m[1],
				Version: ecosystem.CanonicalVersion(m[2]),
			})
		}
	}
	return deps
}

// parseGemfileLock reads the four-space-indented "name (version)" entries
// in the GEM specs section.
func parseGemfileLock(lines []string) []ecosystem.Declared {
	var deps []ecosystem.Declared
	inSpecs := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "specs:" {
			inSpecs = true
			continue
		}
		if inSpecs && trimmed == "" {
			inSpecs = false
			continue
		}
		if !inSpecs {
			continue
		}
		if m := lockGemRE.FindStringSubmatch(line); m != nil {
			deps = append(deps, ecosystem.Declared{
				Name:    m[1],
				Version: ecosystem.CanonicalVersion(m[2]),
			})
		}
	}
	return deps
}
