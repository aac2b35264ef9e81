// Package javascript defines the JavaScript/TypeScript ecosystem: npm-backed
// version lookups and config parsing for package.json, package-lock.json,
// and yarn.lock.
package javascript

import (
	"regexp"
	"strings"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/ecosystem"
	"github.com/matzehuels/envforge/pkg/registry"
	"github.com/matzehuels/envforge/pkg/registry/npm"
)

// Ecosystem provides JavaScript detection, analysis, and npm resolution.
var Ecosystem = &ecosystem.Ecosystem{
	Name:       "javascript",
	Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
	ManifestFiles: []string{
		"package.json",
		"yarn.lock",
		"package-lock.json",
	},
	ImportPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+(?:[\w$*{},\s]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`),
	},
	DefinitionPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:async\s+)?function\s+[\w$]+\s*\([^)]*\)`),
		regexp.MustCompile(`(?m)^\s*(?:export\s+)?const\s+[\w$]+\s*=\s*(?:async\s*)?\([^)]*\)\s*=>`),
	},
	ParseConfig:      parseConfig,
	NormalizeName:    normalize,
	RootSymbol:       rootSymbol,
	NewVersionSource: newVersionSource,
}

func newVersionSource(backend cache.Cache) registry.Source {
	return npm.NewClient(backend)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// rootSymbol maps an import specifier to its package name: "lodash/fp"
// becomes "lodash", "@types/node/fs" becomes "@types/node". Relative and
// absolute paths yield "".
func rootSymbol(symbol string) string {
	if symbol == "" || strings.HasPrefix(symbol, ".") || strings.HasPrefix(symbol, "/") {
		return ""
	}
	parts := strings.Split(symbol, "/")
	if strings.HasPrefix(symbol, "@") {
		if len(parts) < 2 {
			return ""
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
