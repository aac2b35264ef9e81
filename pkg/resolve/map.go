package resolve

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// DependencyMap is an insertion-ordered dependency-name → version map.
// Names are expected to be normalized by the caller before insertion;
// inserting a name that is already present reconciles the two versions
// instead of silently overwriting.
type DependencyMap struct {
	versions map[string]string
	names    []string
}

// NewDependencyMap returns an empty map.
func NewDependencyMap() *DependencyMap {
	return &DependencyMap{versions: map[string]string{}}
}

// Set stores a version unconditionally, preserving first-insertion order.
func (m *DependencyMap) Set(name, version string) {
	if _, ok := m.versions[name]; !ok {
		m.names = append(m.names, name)
	}
	m.versions[name] = version
}

// Insert adds a dependency, reconciling with any existing entry. It returns
// the previous version and whether a reconciliation took place (the name
// was already present with a different version).
func (m *DependencyMap) Insert(name, version string) (prev string, conflicted bool) {
	prev, ok := m.versions[name]
	if !ok {
		m.Set(name, version)
		return "", false
	}
	if prev == version {
		return prev, false
	}
	m.versions[name] = Reconcile(prev, version)
	return prev, true
}

// Get returns the version for name.
func (m *DependencyMap) Get(name string) (string, bool) {
	v, ok := m.versions[name]
	return v, ok
}

// Names returns dependency names in first-insertion order.
func (m *DependencyMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Sorted returns dependency names in lexicographic order.
func (m *DependencyMap) Sorted() []string {
	out := m.Names()
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (m *DependencyMap) Len() int {
	return len(m.names)
}

// Map returns a plain copy of the entries.
func (m *DependencyMap) Map() map[string]string {
	out := make(map[string]string, len(m.versions))
	for name, v := range m.versions {
		out[name] = v
	}
	return out
}

// parseVersion parses a version string strictly enough for comparison.
// The "latest" sentinel is not a version.
func parseVersion(s string) (*semver.Version, bool) {
	if s == "" || s == ecosystem.VersionLatest {
		return nil, false
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Reconcile resolves two competing version requirements for one dependency.
// The second argument is the inferred (or later-seen) side:
//
//   - both valid semantic versions: the higher wins;
//   - only the inferred side valid: the inferred side wins;
//   - otherwise: the "latest" sentinel, to be resolved against a registry.
func Reconcile(declared, inferred string) string {
	dv, dok := parseVersion(declared)
	iv, iok := parseVersion(inferred)
	switch {
	case dok && iok:
		if dv.GreaterThan(iv) {
			return declared
		}
		return inferred
	case iok:
		return inferred
	default:
		return ecosystem.VersionLatest
	}
}

// versionBelow reports whether version is a valid semantic version strictly
// below cutoff. Unparseable versions (including "latest") never count as
// below anything.
func versionBelow(version, cutoff string) bool {
	v, vok := parseVersion(version)
	c, cok := parseVersion(cutoff)
	return vok && cok && v.LessThan(c)
}
