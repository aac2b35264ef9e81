// Package pipeline orchestrates the full inference run for envforge.
//
// The pipeline consists of five stages:
//
//  1. Materialize: resolve the repository reference to a local tree
//  2. Detect: classify files by ecosystem and partition the tree
//  3. Analyze: extract imports and declared configuration per subdirectory
//  4. Resolve: merge, classify, reconcile, and sweep into a final result
//  5. Cache: persist the result keyed by the snapshot fingerprint
//
// A fingerprint cache hit short-circuits stages 3 and 4 entirely: neither
// the analyzer nor the classifier runs for an unmodified repository.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, classifier, logger)
//	outcome, err := runner.Execute(ctx, pipeline.Options{Ref: "."})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(outcome.Result.Global)
package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/envforge/pkg/analyze"
	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/classify"
	"github.com/matzehuels/envforge/pkg/ecosystem/ecosystems"
	"github.com/matzehuels/envforge/pkg/observability"
	"github.com/matzehuels/envforge/pkg/registry"
	"github.com/matzehuels/envforge/pkg/resolve"
	"github.com/matzehuels/envforge/pkg/rules"
	"github.com/matzehuels/envforge/pkg/scan"
	"github.com/matzehuels/envforge/pkg/source"
)

// Options configures one pipeline invocation.
type Options struct {
	// Ref is the repository reference: a local path or a remote URL.
	Ref string

	// ForcedEcosystem overrides primary-ecosystem detection.
	ForcedEcosystem string

	// Refresh bypasses the result cache for a full re-computation.
	Refresh bool

	// Offline disables registry lookups; "latest" sentinels stay as-is.
	Offline bool

	// RulesPath optionally points to a TOML rule-base overlay.
	RulesPath string

	// Workers bounds concurrent subdirectory resolution.
	Workers int

	// Logger overrides the runner's logger for this invocation.
	Logger *log.Logger
}

// Outcome bundles the pipeline output with its provenance.
type Outcome struct {
	Result   *resolve.Result
	Snapshot *scan.Snapshot
	CacheHit bool
}

// Runner executes the pipeline with shared backends.
type Runner struct {
	Cache      cache.Cache
	Classifier classify.Classifier
	Logger     *log.Logger
}

// NewRunner creates a pipeline runner. Nil arguments get safe defaults:
// NullCache, the static classifier, and the default logger.
func NewRunner(c cache.Cache, classifier classify.Classifier, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if classifier == nil {
		classifier = classify.NewStaticClassifier(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Classifier: classifier, Logger: logger}
}

// Execute runs the complete pipeline for one repository reference.
func (r *Runner) Execute(ctx context.Context, opts Options) (outcome *Outcome, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	observability.Pipeline().OnScanStart(ctx, opts.Ref)
	started := time.Now()
	defer func() {
		subdirs := 0
		if outcome != nil && outcome.Snapshot != nil {
			subdirs = len(outcome.Snapshot.Dirs)
		}
		observability.Pipeline().OnScanComplete(ctx, opts.Ref, subdirs, time.Since(started), err)
	}()

	path, cleanup, err := source.Materialize(ctx, opts.Ref)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	fingerprint, err := scan.Fingerprint(path, ecosystems.All)
	if err != nil {
		return nil, err
	}

	snapshot, err := scan.Detect(path, ecosystems.All)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if result, ok := r.lookup(ctx, fingerprint); ok {
			logger.Info("result cache hit", "fingerprint", shortHash(fingerprint))
			observability.Cache().OnCacheHit(ctx, "result")
			return &Outcome{Result: result, Snapshot: snapshot, CacheHit: true}, nil
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	parses, configs := r.analyzeAll(snapshot, logger)

	ruleBase := rules.Default()
	if opts.RulesPath != "" {
		ruleBase, err = rules.Load(opts.RulesPath)
		if err != nil {
			return nil, err
		}
	}

	engine := resolve.NewEngine(r.Classifier, ruleBase, ecosystems.All, logger)
	if opts.Workers > 0 {
		engine.Workers = opts.Workers
	}
	if !opts.Offline {
		engine.Sources = r.versionSources()
	}

	result, err := engine.Resolve(ctx, snapshot, parses, configs)
	if err != nil {
		return nil, err
	}
	result.Fingerprint = fingerprint
	if opts.ForcedEcosystem != "" {
		result.Primary = opts.ForcedEcosystem
	}

	r.store(ctx, fingerprint, result, logger)
	return &Outcome{Result: result, Snapshot: snapshot}, nil
}

// analyzeAll runs the static analyzer for every (subdirectory, ecosystem)
// pair in the snapshot. Analysis failures degrade to empty results with a
// debug log line; they never abort the run.
func (r *Runner) analyzeAll(snapshot *scan.Snapshot, logger *log.Logger) (map[string]map[string]*analyze.ParseResult, map[string]map[string]analyze.DeclaredConfig) {
	parses := map[string]map[string]*analyze.ParseResult{}
	configs := map[string]map[string]analyze.DeclaredConfig{}

	for _, dir := range snapshot.SortedDirs() {
		abs := scan.AbsDir(snapshot.Root, dir)
		for _, tag := range snapshot.Tags(dir) {
			eco := ecosystems.Find(tag)
			if eco == nil {
				continue
			}
			parsed, err := analyze.Analyze(abs, eco)
			if err != nil {
				logger.Debug("analysis degraded", "dir", dir, "ecosystem", tag, "err", err)
				parsed = &analyze.ParseResult{}
			}
			cfg, err := analyze.ReadDeclaredConfig(abs, eco)
			if err != nil {
				logger.Debug("declared config unreadable", "dir", dir, "ecosystem", tag, "err", err)
				cfg = analyze.DeclaredConfig{}
			}
			if parses[dir] == nil {
				parses[dir] = map[string]*analyze.ParseResult{}
				configs[dir] = map[string]analyze.DeclaredConfig{}
			}
			parses[dir][tag] = parsed
			configs[dir][tag] = cfg
		}
	}
	return parses, configs
}

// versionSources builds one registry client per ecosystem that has one,
// all sharing the runner's cache backend for HTTP response caching.
func (r *Runner) versionSources() map[string]registry.Source {
	sources := map[string]registry.Source{}
	for _, eco := range ecosystems.All {
		if src := eco.VersionSource(r.Cache); src != nil {
			sources[eco.Name] = src
		}
	}
	return sources
}

// lookup fetches and decodes a cached result. Any failure, including a
// record that no longer decodes, is a miss.
func (r *Runner) lookup(ctx context.Context, fingerprint string) (*resolve.Result, bool) {
	data, found, err := r.Cache.Get(ctx, cache.ResultKey(fingerprint))
	if err != nil || !found {
		return nil, false
	}
	var result resolve.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// store persists the result. Cache write failures are logged and dropped;
// the result is already in hand.
func (r *Runner) store(ctx context.Context, fingerprint string, result *resolve.Result, logger *log.Logger) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Warn("could not encode result for caching", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, cache.ResultKey(fingerprint), data, 0); err != nil {
		logger.Warn("could not cache result", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
