package python

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// pyprojectDoc covers the two dependency layouts in the wild: PEP 621
// [project] dependency strings and poetry's [tool.poetry.dependencies] table.
type pyprojectDoc struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func parsePyproject(lines []string) []ecosystem.Declared {
	var doc pyprojectDoc
	if _, err := toml.Decode(strings.Join(lines, "\n"), &doc); err != nil {
		return nil
	}

	var deps []ecosystem.Declared
	for _, req := range doc.Project.Dependencies {
		m := requirementRE.FindStringSubmatch(strings.TrimSpace(req))
		if m == nil {
			continue
		}
		deps = append(deps, ecosystem.Declared{
			Name:    m[1],
			Version: ecosystem.CanonicalVersion(m[2]),
		})
	}

	// Poetry tables are unordered; sort for deterministic merge order.
	for _, name := range sortedKeys(doc.Tool.Poetry.Dependencies) {
		if strings.EqualFold(name, "python") {
			continue
		}
		deps = append(deps, ecosystem.Declared{
			Name:    name,
			Version: ecosystem.CanonicalVersion(specString(doc.Tool.Poetry.Dependencies[name])),
		})
	}
	return deps
}

type pipfileDoc struct {
	Packages    map[string]any `toml:"packages"`
	DevPackages map[string]any `toml:"dev-packages"`
}

func parsePipfile(lines []string) []ecosystem.Declared {
	var doc pipfileDoc
	if _, err := toml.Decode(strings.Join(lines, "\n"), &doc); err != nil {
		return nil
	}

	var deps []ecosystem.Declared
	for _, table := range []map[string]any{doc.Packages, doc.DevPackages} {
		for _, name := range sortedKeys(table) {
			deps = append(deps, ecosystem.Declared{
				Name:    name,
				Version: ecosystem.CanonicalVersion(specString(table[name])),
			})
		}
	}
	return deps
}

// specString extracts the version specifier from either a plain string value
// or an inline table like {version = "==1.2.3", extras = [...]}.
func specString(v any) string {
	switch spec := v.(type) {
	case string:
		return spec
	case map[string]any:
		if s, ok := spec["version"].(string); ok {
			return s
		}
	}
	return ""
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
