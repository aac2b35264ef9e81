// Package pkg provides the core libraries for envforge dependency inference.
//
// # Overview
//
// envforge scans a repository tree, detects the ecosystems present, extracts
// imports and declared manifests, and resolves them into a per-subdirectory
// dependency map with a full audit trail. The pkg directory is organized
// around the pipeline stages:
//
//  1. [source] - Repository materialization (local paths, shallow git clones)
//  2. [scan] - Ecosystem detection, subdirectory partitioning, fingerprinting
//  3. [analyze] - Import and declared-manifest extraction
//  4. [classify] - Symbol-to-package classification (static table, Gemini)
//  5. [resolve] - Rule expansion, version reconciliation, deprecation sweep
//  6. [report] - Terminal, markdown, JSON, and Graphviz output
//
// # Architecture
//
// The typical data flow through envforge:
//
//	Repository (path or git URL)
//	         ↓
//	    [source] package (materialize a local tree)
//	         ↓
//	    [scan] package (ecosystem snapshot + fingerprint)
//	         ↓
//	    [analyze] package (imports, definitions, declared config)
//	         ↓
//	    [resolve] package (classify → expand → reconcile → sweep)
//	         ↓
//	    [report] package (table / markdown / JSON / DOT output)
//
// # Quick Start
//
// Run the full pipeline against a local repository:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/envforge/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	outcome, err := runner.Execute(context.Background(), pipeline.Options{Ref: "."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for name, version := range outcome.Result.Global {
//	    fmt.Println(name, version)
//	}
//
// # Main Packages
//
// ## Pipeline Stages
//
// [scan] - Walks the tree, counts recognized source files per ecosystem, and
// builds a Snapshot that partitions the repository into tagged subdirectories.
// Also computes the content fingerprint that keys the result cache.
//
// [analyze] - Extracts import symbols and definition snippets per
// (subdirectory, ecosystem) pair, via regex patterns or a registered
// dedicated analyzer, plus raw declared-manifest lines.
//
// [classify] - Maps import symbols to package predictions with confidence
// scores. Ships a static lookup table with identity fallback and a Gemini
// adapter; both can be wrapped in an LRU memoizer.
//
// [resolve] - The engine: merges declared and inferred dependencies,
// expands transitive rules, reconciles version conflicts (higher semver
// wins), resolves "latest" sentinels against registries, and upgrades
// deprecated packages. Emits insights and conflict records for every
// decision.
//
// [rules] - The rule base: transitive dependency hints and deprecation
// cutoffs, with a built-in default set and TOML overlays.
//
// ## Infrastructure
//
// [cache] - Cache backends: filesystem (atomic writes), Redis, and null.
// Also provides the retry-with-backoff helper used for clones and registry
// calls.
//
// [registry] - HTTP clients for package registries (PyPI, npm, RubyGems,
// the Go module proxy) used for latest-version lookups, with shared
// response caching.
//
// [ecosystem] - Static ecosystem definitions: file extensions, manifest
// names, import patterns, name normalization, and registry wiring. The
// [ecosystem/ecosystems] subpackage holds the supported set.
//
// [source] - Materializes a repository reference into a local tree,
// cloning remote URLs shallowly with retries.
//
// [errors] - Structured errors with stable codes, distinguishing fatal
// failures (retrieval) from degradable ones (classification, lookups).
//
// [observability] - Optional instrumentation hooks for pipeline, cache,
// and HTTP events, no-op by default.
//
// [report] - Result presentation: lipgloss terminal tables, markdown
// reports, atomic JSON export, and Graphviz DOT/SVG dependency graphs.
//
// [pipeline] - Orchestration of the stages above with fingerprint-keyed
// result caching, used by every CLI command.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/resolve/...    # Specific package
//
// [source]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/source
// [scan]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/scan
// [analyze]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/analyze
// [classify]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/classify
// [resolve]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/resolve
// [rules]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/rules
// [cache]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/cache
// [registry]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/registry
// [ecosystem]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/ecosystem
// [ecosystem/ecosystems]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/ecosystem/ecosystems
// [errors]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/observability
// [report]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/report
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/envforge/pkg/pipeline
package pkg
