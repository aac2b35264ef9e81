package analyze

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// patternAnalyze is the generic fallback: it scans the subdirectory's
// recognized source files line by line and applies the ecosystem's import
// and definition regexes. Files are visited in directory order (sorted), so
// import-encounter order is stable across runs.
func patternAnalyze(dir string, eco *ecosystem.Ecosystem) (*ParseResult, error) {
	result := &ParseResult{}
	if len(eco.ImportPatterns) == 0 && len(eco.DefinitionPatterns) == 0 {
		return result, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() || !eco.RecognizesFile(entry.Name()) {
			continue
		}
		lines, err := readLines(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		for _, line := range lines {
			for _, re := range eco.ImportPatterns {
				m := re.FindStringSubmatch(line)
				if m == nil || len(m) < 2 {
					continue
				}
				symbol := eco.Root(m[1])
				if symbol == "" || seen[symbol] {
					continue
				}
				seen[symbol] = true
				result.Imports = append(result.Imports, symbol)
			}
			for _, re := range eco.DefinitionPatterns {
				if re.MatchString(line) {
					result.Definitions = append(result.Definitions, line)
				}
			}
		}
	}
	return result, nil
}
