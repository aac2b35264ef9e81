package javascript

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

func parseConfig(filename string, lines []string) []ecosystem.Declared {
	switch filename {
	case "package.json":
		return parsePackageJSON(lines)
	case "package-lock.json":
		return parsePackageLock(lines)
	case "yarn.lock":
		return parseYarnLock(lines)
	default:
		return nil
	}
}

func parsePackageJSON(lines []string) []ecosystem.Declared {
	var doc struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(strings.Join(lines, "\n")), &doc); err != nil {
		return nil
	}

	var deps []ecosystem.Declared
	for _, table := range []map[string]string{doc.Dependencies, doc.DevDependencies} {
		for _, name := range sortedKeys(table) {
			deps = append(deps, ecosystem.Declared{
				Name:    name,
				Version: ecosystem.CanonicalVersion(table[name]),
			})
		}
	}
	return deps
}

// parsePackageLock reads the v2/v3 "packages" table, falling back to the
// legacy v1 "dependencies" table.
func parsePackageLock(lines []string) []ecosystem.Declared {
	var doc struct {
		Packages map[string]struct {
			Version string `json:"version"`
		} `json:"packages"`
		Dependencies map[string]struct {
			Version string `json:"version"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(strings.Join(lines, "\n")), &doc); err != nil {
		return nil
	}

	var deps []ecosystem.Declared
	if len(doc.Packages) > 0 {
		names := make([]string, 0, len(doc.Packages))
		for path := range doc.Packages {
			if path == "" {
				continue // the root project entry
			}
			names = append(names, path)
		}
		sort.Strings(names)
		for _, path := range names {
			name := path
			if i := strings.LastIndex(path, "node_modules/"); i >= 0 {
				name = path[i+len("node_modules/"):]
			}
			deps = append(deps, ecosystem.Declared{
				Name:    name,
				Version: ecosystem.CanonicalVersion(doc.Packages[path].Version),
			})
		}
		return deps
	}

	names := make([]string, 0, len(doc.Dependencies))
	for name := range doc.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		deps = append(deps, ecosystem.Declared{
			Name:    name,
			Version: ecosystem.CanonicalVersion(doc.Dependencies[name].Version),
		})
	}
	return deps
}

var (
	yarnEntryRE   = regexp.MustCompile(`^"?(@?[^@"]+)@`)
	yarnVersionRE = regexp.MustCompile(`^\s+version\s+"([^"]+)"`)
)

// parseYarnLock scans entry headers ("name@spec:") followed by their
// indented version lines.
func parseYarnLock(lines []string) []ecosystem.Declared {
	var deps []ecosystem.Declared
	var current string
	seen := make(map[string]bool)

	for _, line := range lines {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, " ") && strings.HasSuffix(strings.TrimSpace(line), ":") {
			if m := yarnEntryRE.FindStringSubmatch(line); m != nil {
				current = m[1]
			} else {
				current = ""
			}
			continue
		}
		if m := yarnVersionRE.FindStringSubmatch(line); m != nil && current != "" && !seen[current] {
			seen[current] = true
			deps = append(deps, ecosystem.Declared{
				Name:    current,
				Version: ecosystem.CanonicalVersion(m[1]),
			})
			current = ""
		}
	}
	return deps
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
