package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/envforge/pkg/ecosystem/ecosystems"
	"github.com/matzehuels/envforge/pkg/pipeline"
	"github.com/matzehuels/envforge/pkg/report"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	ecosystem string // force the primary ecosystem instead of detecting it
	offline   bool   // skip all registry lookups
	refresh   bool   // bypass the result cache and re-run the full pipeline
	noCache   bool   // disable caching entirely for this run
	rules     string // path to a TOML rule-base overlay
	workers   int    // concurrent subdirectory resolution (0 = default)
	config    string // config file path (default: search standard locations)
	jsonOut   string // write the raw result record to this path as JSON
}

// newScanCmd creates the scan command, the main entry point of the
// pipeline: retrieve the repository, detect ecosystems, infer and
// reconcile dependencies, and print the result table.
func newScanCmd() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [path-or-url]",
		Short: "Scan a repository and resolve its dependencies",
		Long: `Scan a local directory or remote git URL, detect the ecosystems in use,
infer dependencies from imports, reconcile them against declared manifests,
and print the resolved dependency table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ecosystem, "ecosystem", "e", "", "force the primary ecosystem (e.g. python, javascript)")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip registry lookups, keep 'latest' placeholders")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-run the pipeline")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching for this run")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "TOML rule-base overlay (transitive rules, deprecations)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent subdirectory workers (0 = auto)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.jsonOut, "json", "", "also write the raw result record to this file")

	return cmd
}

func runScan(ctx context.Context, ref string, opts *scanOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.ecosystem != "" && ecosystems.Find(opts.ecosystem) == nil {
		return fmt.Errorf("unknown ecosystem %q (see 'envforge ecosystems')", opts.ecosystem)
	}

	c := openCache(ctx, cfg.Cache, opts.noCache)
	defer func() { _ = c.Close() }()

	runner := pipeline.NewRunner(c, newClassifier(ctx, cfg.Classifier), logger)

	logger.Info("scanning repository", "ref", ref)
	prog := newProgress(logger)
	outcome, err := runner.Execute(ctx, pipeline.Options{
		Ref:             ref,
		ForcedEcosystem: opts.ecosystem,
		Refresh:         opts.refresh,
		Offline:         opts.offline || cfg.Offline,
		RulesPath:       firstNonEmpty(opts.rules, cfg.Rules),
		Workers:         pickWorkers(opts.workers, cfg.Workers),
		Logger:          logger,
	})
	if err != nil {
		printError("scan failed: %v", err)
		return err
	}
	prog.done("scan complete")

	if outcome.CacheHit {
		printInfo("result served from cache (use --refresh to re-run)")
	}

	fmt.Println(report.Terminal(outcome.Result))

	if opts.jsonOut != "" {
		if err := report.WriteJSON(opts.jsonOut, outcome.Result); err != nil {
			return err
		}
		printFile(opts.jsonOut)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func pickWorkers(flag, cfg int) int {
	if flag > 0 {
		return flag
	}
	return cfg
}
