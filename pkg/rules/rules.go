// Package rules holds the static rule base: deterministic knowledge the
// engine applies independent of classifier confidence. Two tables live
// here: transitive expansion (symbol implies companion packages) and
// deprecation cutoffs (versions below a cutoff get flagged and upgraded).
//
// The built-in tables cover the common cases; deployments can extend or
// override them from a TOML file.
package rules

// Deprecation records a version floor for a package. Resolved versions
// below Cutoff are flagged; Latest is the upgrade target when an automatic
// upgrade is attempted.
type Deprecation struct {
	Cutoff string `toml:"cutoff"`
	Latest string `toml:"latest"`
}

// RuleBase is the complete rule set, keyed ecosystem first.
type RuleBase struct {
	// Transitive maps ecosystem -> import symbol -> implied dependency
	// names. Implied names surface on the hidden-dependency list regardless
	// of classifier confidence.
	Transitive map[string]map[string][]string `toml:"transitive"`

	// Deprecations maps ecosystem -> dependency name -> deprecation record.
	Deprecations map[string]map[string]Deprecation `toml:"deprecations"`
}

// Implied returns the transitive expansion for a symbol, or nil.
func (r *RuleBase) Implied(eco, symbol string) []string {
	if table, ok := r.Transitive[eco]; ok {
		return table[symbol]
	}
	return nil
}

// Deprecated looks up the deprecation record for a dependency.
func (r *RuleBase) Deprecated(eco, name string) (Deprecation, bool) {
	table, ok := r.Deprecations[eco]
	if !ok {
		return Deprecation{}, false
	}
	d, ok := table[name]
	return d, ok
}

// Default returns the built-in rule base.
func Default() *RuleBase {
	return &RuleBase{
		Transitive: map[string]map[string][]string{
			"python": {
				"numpy":   {"scipy", "matplotlib"},
				"sklearn": {"numpy", "scipy"},
				"pandas":  {"numpy"},
				"flask":   {"werkzeug", "jinja2"},
			},
			"javascript": {
				"react":   {"react-dom"},
				"express": {"body-parser"},
			},
		},
		Deprecations: map[string]map[string]Deprecation{
			"python": {
				"tensorflow": {Cutoff: "2.0.0", Latest: "2.16.1"},
				"django":     {Cutoff: "3.2.0", Latest: "5.0.6"},
			},
			"javascript": {
				"request": {Cutoff: "3.0.0", Latest: "2.88.2"},
			},
		},
	}
}
