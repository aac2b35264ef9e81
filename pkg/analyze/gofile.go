package analyze

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// Go import declarations are block-structured, so a line-at-a-time regex
// misses grouped imports. The Go plugin tracks import blocks explicitly.
var (
	goImportLineRE  = regexp.MustCompile(`^import\s+(?:[\w.]+\s+)?"([^"]+)"`)
	goImportBlockRE = regexp.MustCompile(`^import\s*\(`)
	goBlockPathRE   = regexp.MustCompile(`^\s*(?:[\w.]+\s+)?"([^"]+)"`)
	goFuncRE        = regexp.MustCompile(`^func\s+(?:\([^)]*\)\s*)?\w+`)
)

func init() {
	Register(goAnalyzer{})
}

// goAnalyzer is the registered plugin for Go sources.
type goAnalyzer struct{}

func (goAnalyzer) Ecosystem() string { return "go" }

func (goAnalyzer) Analyze(dir string, eco *ecosystem.Ecosystem) (*ParseResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	seen := map[string]bool{}
	add := func(path string) {
		symbol := eco.Root(path)
		if symbol == "" || seen[symbol] {
			return
		}
		seen[symbol] = true
		result.Imports = append(result.Imports, symbol)
	}

	for _, entry := range entries {
		if entry.IsDir() || !eco.RecognizesFile(entry.Name()) {
			continue
		}
		lines, err := readLines(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		inBlock := false
		for _, line := range lines {
			switch {
			case inBlock:
				if m := goBlockPathRE.FindStringSubmatch(line); m != nil {
					add(m[1])
				} else if strings.Contains(line, ")") {
					inBlock = false
				}
			case goImportBlockRE.MatchString(line):
				inBlock = true
			default:
				if m := goImportLineRE.FindStringSubmatch(line); m != nil {
					add(m[1])
				}
				if goFuncRE.MatchString(line) {
					result.Definitions = append(result.Definitions, line)
				}
			}
		}
	}
	return result, nil
}
