// Package python defines the Python ecosystem: PyPI-backed version lookups
// and config parsing for requirements.txt, pyproject.toml, and Pipfile.
package python

import (
	"regexp"
	"strings"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/ecosystem"
	"github.com/matzehuels/envforge/pkg/registry"
	"github.com/matzehuels/envforge/pkg/registry/pypi"
)

// Ecosystem provides Python detection, analysis, and PyPI resolution.
var Ecosystem = &ecosystem.Ecosystem{
	Name:       "python",
	Extensions: []string{".py"},
	ManifestFiles: []string{
		"requirements.txt",
		"setup.py",
		"Pipfile",
		"pyproject.toml",
	},
	ImportPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+([A-Za-z_][\w.]*)`),
		regexp.MustCompile(`(?m)^\s*from\s+([A-Za-z_][\w.]*)\s+import\b`),
	},
	DefinitionPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\([^)]*\)[^:\n]*:`),
	},
	ParseConfig:      parseConfig,
	NormalizeName:    pypi.Normalize,
	RootSymbol:       rootSymbol,
	NewVersionSource: newVersionSource,
}

func newVersionSource(backend cache.Cache) registry.Source {
	return pypi.NewClient(backend)
}

// rootSymbol reduces "numpy.linalg" to "numpy". Relative imports yield "".
func rootSymbol(symbol string) string {
	if strings.HasPrefix(symbol, ".") {
		return ""
	}
	if i := strings.IndexByte(symbol, '.'); i >= 0 {
		return symbol[:i]
	}
	return symbol
}

func parseConfig(filename string, lines []string) []ecosystem.Declared {
	switch filename {
	case "requirements.txt":
		return parseRequirements(lines)
	case "pyproject.toml":
		return parsePyproject(lines)
	case "Pipfile":
		return parsePipfile(lines)
	default:
		// setup.py is recorded raw but not parsed here
		return nil
	}
}

// requirementRE matches "name[extras] ==1.2.3" style requirement lines,
// leaving the specifier in group 2.
var requirementRE = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(?:\[[^\]]*\])?\s*(.*)$`)

func parseRequirements(lines []string) []ecosystem.Declared {
	var deps []ecosystem.Declared
	for _, line := range lines {
		// Drop environment markers and comments
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		m := requirementRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		deps = append(deps, ecosystem.Declared{
			Name:    m[1],
			Version: ecosystem.CanonicalVersion(m[2]),
		})
	}
	return deps
}
