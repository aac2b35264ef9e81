// Package resolve implements the dependency resolution engine: merging
// declared configuration with classifier-inferred dependencies, expanding
// rule-based transitive hints, reconciling version conflicts, resolving the
// "latest" sentinel against registries, and sweeping for deprecations.
//
// The engine is deterministic for fixed inputs and a fixed classifier
// response set: subdirectories merge in lexicographic order regardless of
// completion order, and insight logs follow a fixed stage order
// (declared-merge, classification in import-encounter order, transitive
// expansion, sentinel resolution, deprecation).
package resolve

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/envforge/pkg/analyze"
	"github.com/matzehuels/envforge/pkg/classify"
	"github.com/matzehuels/envforge/pkg/ecosystem"
	"github.com/matzehuels/envforge/pkg/observability"
	"github.com/matzehuels/envforge/pkg/registry"
	"github.com/matzehuels/envforge/pkg/rules"
	"github.com/matzehuels/envforge/pkg/scan"
)

// DefaultWorkers bounds concurrent subdirectory resolution.
const DefaultWorkers = 4

// Engine resolves dependencies for a scanned repository.
type Engine struct {
	Classifier classify.Classifier
	Rules      *rules.RuleBase
	Ecosystems []*ecosystem.Ecosystem

	// Sources maps ecosystem name to its latest-version registry client.
	// A missing entry leaves "latest" sentinels unresolved for that
	// ecosystem.
	Sources map[string]registry.Source

	Logger  *log.Logger
	Workers int
}

// NewEngine builds an engine, filling zero values with defaults: the static
// classifier, the built-in rule base, and no version sources (offline).
func NewEngine(classifier classify.Classifier, ruleBase *rules.RuleBase, all []*ecosystem.Ecosystem, logger *log.Logger) *Engine {
	if classifier == nil {
		classifier = classify.NewStaticClassifier(nil)
	}
	if ruleBase == nil {
		ruleBase = rules.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Classifier: classifier,
		Rules:      ruleBase,
		Ecosystems: all,
		Logger:     logger,
		Workers:    DefaultWorkers,
	}
}

// Resolve runs the full inference for one snapshot. Subdirectories are
// processed concurrently; each subdirectory's contribution is assembled
// fully before it is attached to the result, and the final merge walks
// subdirectories in lexicographic order.
//
// Only context cancellation aborts a run. Classification failures, lookup
// failures, and unparseable inputs all degrade locally and are recorded in
// the insight or conflict logs.
func (e *Engine) Resolve(ctx context.Context, snapshot *scan.Snapshot, parses map[string]map[string]*analyze.ParseResult, configs map[string]map[string]analyze.DeclaredConfig) (*Result, error) {
	dirs := snapshot.SortedDirs()
	started := time.Now()

	workers := e.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	subResults := make([]*SubdirResult, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			subResults[i] = e.resolveSubdir(gctx, dir, snapshot.Tags(dir), parses[dir], configs[dir])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Primary:   snapshot.Primary("", e.Ecosystems),
		CreatedAt: time.Now().UTC(),
		Global:    map[string]string{},
		PerSubdir: make(map[string]*SubdirResult, len(dirs)),
	}

	hiddenSeen := map[string]bool{}
	for i, dir := range dirs {
		sr := subResults[i]
		result.PerSubdir[dir] = sr
		for _, eco := range sortedKeys(sr.Deps) {
			deps := sr.Deps[eco]
			for _, name := range sortedKeys(deps) {
				result.Global[name] = deps[name]
			}
		}
		for _, name := range sr.Hidden {
			if !hiddenSeen[name] {
				hiddenSeen[name] = true
				result.Hidden = append(result.Hidden, name)
			}
		}
		result.Insights = append(result.Insights, sr.Insights...)
		result.Conflicts = append(result.Conflicts, sr.Conflicts...)
	}

	e.Logger.Info("resolution complete",
		"subdirs", len(dirs),
		"deps", len(result.Global),
		"hidden", len(result.Hidden),
		"conflicts", len(result.Conflicts),
		"duration", time.Since(started).Round(time.Millisecond))
	return result, nil
}

// sortedKeys returns map keys in lexicographic order, for deterministic
// iteration during the global merge.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// resolveSubdir runs steps 1-7 for one subdirectory, covering every
// ecosystem tagged there.
func (e *Engine) resolveSubdir(ctx context.Context, dir string, tags []string, parses map[string]*analyze.ParseResult, cfgs map[string]analyze.DeclaredConfig) *SubdirResult {
	observability.Pipeline().OnResolveStart(ctx, dir)
	started := time.Now()

	sr := &SubdirResult{Deps: map[string]map[string]string{}}
	for _, tag := range tags {
		eco := ecosystem.Find(tag, e.Ecosystems)
		if eco == nil {
			continue
		}
		e.resolveEcosystem(ctx, dir, eco, parses[tag], cfgs[tag], sr)
	}

	deps := 0
	for _, m := range sr.Deps {
		deps += len(m)
	}
	observability.Pipeline().OnResolveComplete(ctx, dir, deps, time.Since(started), nil)
	return sr
}

func (e *Engine) resolveEcosystem(ctx context.Context, dir string, eco *ecosystem.Ecosystem, parse *analyze.ParseResult, cfg analyze.DeclaredConfig, sr *SubdirResult) {
	conflict := func(name, from, to, reason string) {
		sr.Conflicts = append(sr.Conflicts, Conflict{
			Subdir: dir, Ecosystem: eco.Name,
			Name: name, From: from, To: to, Reason: reason,
		})
		sr.Insights = append(sr.Insights, Insight{
			Kind: InsightConflict, Subdir: dir, Ecosystem: eco.Name,
			Message: fmt.Sprintf("resolved %s from %s to %s (%s)", name, from, to, reason),
		})
	}
	insight := func(kind InsightKind, format string, args ...any) {
		sr.Insights = append(sr.Insights, Insight{
			Kind: kind, Subdir: dir, Ecosystem: eco.Name,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// Step 1: merge declared configuration, manifest files in their fixed
	// per-ecosystem order.
	declared := NewDependencyMap()
	if eco.ParseConfig != nil {
		for _, filename := range eco.ManifestFiles {
			lines, ok := cfg[filename]
			if !ok {
				continue
			}
			for _, d := range eco.ParseConfig(filename, lines) {
				name := eco.Normalize(d.Name)
				version := ecosystem.CanonicalVersion(d.Version)
				prev, conflicted := declared.Insert(name, version)
				if now, _ := declared.Get(name); conflicted && now != prev {
					conflict(name, prev, now, "declared merge")
				}
			}
		}
	}

	// Step 2: classify imports, keeping only predictions at or above the
	// acceptance threshold.
	inferred := NewDependencyMap()
	var imports []string
	if parse != nil {
		imports = parse.Imports
	}
	for _, symbol := range imports {
		preds, err := e.Classifier.Predict(ctx, symbol, eco.Name)
		if err != nil {
			insight(InsightInference, "classification unavailable for %q: %v", symbol, err)
			continue
		}
		for _, p := range classify.Accept(preds) {
			name, version := classify.ParseLabel(p.Label)
			name = eco.Normalize(name)
			version = ecosystem.CanonicalVersion(version)
			prev, conflicted := inferred.Insert(name, version)
			if now, _ := inferred.Get(name); conflicted && now != prev {
				conflict(name, prev, now, "classification merge")
			}
			insight(InsightInference, "inferred %s@%s from %q (confidence %.2f)", name, version, symbol, p.Confidence)
		}
	}

	// Step 3: transitive expansion. Rule hits are deterministic and always
	// surfaced, independent of classifier confidence.
	hiddenSeen := map[string]bool{}
	for _, h := range sr.Hidden {
		hiddenSeen[h] = true
	}
	for _, symbol := range imports {
		for _, implied := range e.Rules.Implied(eco.Name, symbol) {
			name := eco.Normalize(implied)
			if hiddenSeen[name] {
				continue
			}
			hiddenSeen[name] = true
			sr.Hidden = append(sr.Hidden, name)
			insight(InsightInference, "implied %s via %s rule", name, symbol)
		}
	}

	// Step 4: reconcile declared against inferred. Inferred entries are the
	// baseline; declared-only entries pass through unchanged.
	final := NewDependencyMap()
	for _, name := range inferred.Names() {
		v, _ := inferred.Get(name)
		final.Set(name, v)
	}
	for _, name := range declared.Names() {
		dver, _ := declared.Get(name)
		iver, ok := final.Get(name)
		if !ok {
			final.Set(name, dver)
			continue
		}
		if dver == iver {
			continue
		}
		resolved := Reconcile(dver, iver)
		final.Set(name, resolved)
		if resolved != dver {
			conflict(name, dver, resolved, "declared vs inferred")
		}
	}

	// Step 5: resolve the "latest" sentinel, best effort. Any failure
	// leaves the sentinel in place.
	src := e.Sources[eco.Name]
	for _, name := range final.Names() {
		if v, _ := final.Get(name); v != ecosystem.VersionLatest {
			continue
		}
		if src == nil {
			continue
		}
		latest, err := src.LatestVersion(ctx, name)
		if err != nil {
			insight(InsightInference, "could not resolve latest version for %s: %v", name, err)
			continue
		}
		final.Set(name, latest)
		insight(InsightInference, "resolved %s to latest version %s", name, latest)
	}

	// Step 6: deprecation sweep. Upgrade target is the registry's latest
	// when reachable, the rule base's recorded latest otherwise.
	for _, name := range final.Names() {
		version, _ := final.Get(name)
		dep, ok := e.Rules.Deprecated(eco.Name, name)
		if !ok || !versionBelow(version, dep.Cutoff) {
			continue
		}
		insight(InsightDeprecation, "deprecated: %s@%s is below cutoff %s", name, version, dep.Cutoff)
		target := dep.Latest
		if src != nil {
			if latest, err := src.LatestVersion(ctx, name); err == nil {
				target = latest
			}
		}
		if t, tok := parseVersion(target); tok {
			if v, vok := parseVersion(version); vok && t.GreaterThan(v) {
				final.Set(name, target)
				conflict(name, version, target, "deprecation upgrade")
			}
		}
	}

	// Step 7: attach this ecosystem's map.
	sr.Deps[eco.Name] = final.Map()
	e.Logger.Debug("resolved subdirectory ecosystem",
		"dir", dir, "ecosystem", eco.Name,
		"deps", final.Len(), "hidden", len(sr.Hidden))
}
