package rules

import (
	"os"

	"github.com/BurntSushi/toml"

	envferrors "github.com/matzehuels/envforge/pkg/errors"
)

// Load reads a rule-base TOML file and merges it over the built-in tables.
// File entries win on collisions, so deployments can both extend and
// override.
//
// File format mirrors the RuleBase structure:
//
//	[transitive.python]
//	numpy = ["scipy", "matplotlib"]
//
//	[deprecations.python.tensorflow]
//	cutoff = "2.0.0"
//	latest = "2.16.1"
func Load(path string) (*RuleBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, envferrors.Wrap(envferrors.ErrCodeInvalidConfig, err, "reading rule base %s", path)
	}

	var loaded RuleBase
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, envferrors.Wrap(envferrors.ErrCodeInvalidConfig, err, "parsing rule base %s", path)
	}

	base := Default()
	for eco, table := range loaded.Transitive {
		if base.Transitive[eco] == nil {
			base.Transitive[eco] = map[string][]string{}
		}
		for symbol, implied := range table {
			base.Transitive[eco][symbol] = implied
		}
	}
	for eco, table := range loaded.Deprecations {
		if base.Deprecations[eco] == nil {
			base.Deprecations[eco] = map[string]Deprecation{}
		}
		for name, dep := range table {
			base.Deprecations[eco][name] = dep
		}
	}
	return base, nil
}
