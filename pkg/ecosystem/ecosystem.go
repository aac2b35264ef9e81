// Package ecosystem defines the per-language capability table used by the
// scanner, analyzer, and resolution engine.
//
// Each ecosystem subpackage (python, javascript, golang, java, ruby) exports
// an Ecosystem value describing how to recognize its files, which manifest
// files it declares dependencies in, how to extract import symbols from
// source, and how to reach its registry for latest-version lookups.
//
// The capability set is populated at build time (see the ecosystems
// subpackage); nothing is discovered from the filesystem at startup.
package ecosystem

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/registry"
)

// VersionLatest is the sentinel for a dependency whose concrete version is
// not yet known. It marks an unresolved state: the engine attempts to
// resolve it against the ecosystem's registry and keeps the sentinel when
// the lookup fails.
const VersionLatest = "latest"

// Declared is a single name/version pair parsed from a manifest file.
// Order of appearance in the file is preserved by parsers.
type Declared struct {
	Name    string
	Version string
}

// Ecosystem describes how to detect and analyze one language ecosystem.
//
// Ecosystem values are static capability tables; all fields are set at
// package init and never mutated afterwards, so values are safe for
// concurrent use.
type Ecosystem struct {
	// Name is the ecosystem identifier (e.g. "python", "javascript", "go").
	Name string

	// Extensions lists source file extensions (with dot) counted during
	// repository detection, e.g. [".py"].
	Extensions []string

	// ManifestFiles lists well-known dependency manifest filenames in
	// priority order, e.g. ["requirements.txt", "pyproject.toml"].
	ManifestFiles []string

	// ImportPatterns extract import symbols from source text. Each pattern's
	// first capture group is the raw symbol. Patterns are applied in order
	// and matches are collected in source order. May be nil if the ecosystem
	// has a dedicated analyzer registered instead.
	ImportPatterns []*regexp.Regexp

	// DefinitionPatterns extract function/definition snippets from source
	// text, whole match. May be nil.
	DefinitionPatterns []*regexp.Regexp

	// ParseConfig parses the raw line sequence of a manifest file into
	// declared name/version pairs. Returns nil for manifest files the
	// ecosystem records but does not parse (e.g. setup.py). May be nil if
	// the ecosystem has no parseable manifests.
	ParseConfig func(filename string, lines []string) []Declared

	// NormalizeName maps a dependency name to its canonical form
	// (e.g. PEP 503 for python). May be nil.
	NormalizeName func(name string) string

	// RootSymbol reduces an import symbol to the name used for rule-base
	// and classifier lookups (e.g. "numpy.linalg" -> "numpy"). May be nil,
	// in which case the symbol is used as-is.
	RootSymbol func(symbol string) string

	// NewVersionSource creates a registry client for latest-version lookups.
	// May be nil for ecosystems without registry support (the engine then
	// keeps the "latest" sentinel).
	NewVersionSource func(backend cache.Cache) registry.Source
}

// Normalize returns the canonical form of a dependency name.
func (e *Ecosystem) Normalize(name string) string {
	name = strings.TrimSpace(name)
	if e.NormalizeName != nil {
		return e.NormalizeName(name)
	}
	return name
}

// Root returns the rule-base lookup symbol for an import.
func (e *Ecosystem) Root(symbol string) string {
	if e.RootSymbol != nil {
		return e.RootSymbol(symbol)
	}
	return symbol
}

// RecognizesFile reports whether the filename's extension belongs to this
// ecosystem.
func (e *Ecosystem) RecognizesFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, want := range e.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// IsManifest reports whether filename is one of the ecosystem's well-known
// manifest files.
func (e *Ecosystem) IsManifest(filename string) bool {
	base := filepath.Base(filename)
	for _, m := range e.ManifestFiles {
		if base == m {
			return true
		}
	}
	return false
}

// VersionSource returns a registry client, or nil if the ecosystem has no
// registry support.
func (e *Ecosystem) VersionSource(backend cache.Cache) registry.Source {
	if e.NewVersionSource == nil {
		return nil
	}
	return e.NewVersionSource(backend)
}

// Find returns the Ecosystem with the given name from the list, or nil.
func Find(name string, all []*Ecosystem) *Ecosystem {
	for _, e := range all {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// exactVersionRE matches a single pinned version requirement, optionally
// prefixed by a comparison or caret/tilde operator.
var exactVersionRE = regexp.MustCompile(`^(?:==|=|\^|~|>=|<=|>|<)?\s*v?(\d+(?:\.\d+){0,2}(?:[-+.][0-9A-Za-z.+-]+)?)$`)

// CanonicalVersion reduces a declared version requirement to either a
// concrete version string or the VersionLatest sentinel.
//
// Pinned requirements ("1.2.3", "==1.2.3", "^1.2.3", "v1.2.3") yield the
// bare version. Ranges, wildcards, and anything unparseable yield
// VersionLatest so the engine resolves them later.
func CanonicalVersion(spec string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "*" || strings.EqualFold(spec, VersionLatest) {
		return VersionLatest
	}
	if m := exactVersionRE.FindStringSubmatch(spec); m != nil {
		return m[1]
	}
	return VersionLatest
}
