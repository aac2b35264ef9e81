// Package analyze implements the static analyzer: per-subdirectory import
// and definition extraction, plus raw declared-config reading.
//
// Ecosystems with a registered plugin delegate to it entirely; everything
// else falls back to the pattern analyzer driven by the ecosystem's import
// regexes. An ecosystem with neither yields an empty ParseResult; missing
// support is a degraded result, never a fatal error.
package analyze

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// ParseResult holds what the analyzer found in one subdirectory for one
// ecosystem: import symbols in encounter order (deduplicated, reduced to
// their root symbol) and raw definition snippets.
type ParseResult struct {
	Imports     []string `json:"imports"`
	Definitions []string `json:"definitions,omitempty"`
}

// DeclaredConfig maps a manifest filename to its raw line sequence as found
// on disk. Parsing into name/version pairs is the resolution engine's job.
type DeclaredConfig map[string][]string

// Analyzer is an ecosystem-specific extraction plugin.
type Analyzer interface {
	// Ecosystem returns the ecosystem name this plugin handles.
	Ecosystem() string
	// Analyze extracts imports and definitions from the direct files of dir.
	Analyze(dir string, eco *ecosystem.Ecosystem) (*ParseResult, error)
}

var plugins = map[string]Analyzer{}

// Register installs an ecosystem-specific analyzer plugin. A plugin
// registered for a name replaces any previous one.
func Register(a Analyzer) {
	plugins[a.Ecosystem()] = a
}

// Lookup returns the registered plugin for an ecosystem, if any.
func Lookup(name string) (Analyzer, bool) {
	a, ok := plugins[name]
	return a, ok
}

// Analyze extracts a ParseResult for one subdirectory and one ecosystem,
// delegating to a registered plugin when present and falling back to the
// generic pattern analyzer otherwise.
//
// Only the direct files of dir are read; nested subdirectories are analyzed
// as their own snapshot entries. Per-file read errors degrade to skipping
// the file.
func Analyze(dir string, eco *ecosystem.Ecosystem) (*ParseResult, error) {
	if plugin, ok := plugins[eco.Name]; ok {
		return plugin.Analyze(dir, eco)
	}
	return patternAnalyze(dir, eco)
}

// ReadDeclaredConfig reads the ecosystem's well-known manifest files present
// in dir as raw line sequences. Absent files are simply omitted.
func ReadDeclaredConfig(dir string, eco *ecosystem.Ecosystem) (DeclaredConfig, error) {
	cfg := DeclaredConfig{}
	for _, name := range eco.ManifestFiles {
		lines, err := readLines(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		cfg[name] = lines
	}
	return cfg, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
