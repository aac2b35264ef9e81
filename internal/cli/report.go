package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/envforge/pkg/pipeline"
	"github.com/matzehuels/envforge/pkg/report"
)

// reportOpts holds the command-line flags for the report command.
type reportOpts struct {
	output    string // write the markdown report to this file instead of stdout
	jsonOut   string // also write the raw result record as JSON
	ecosystem string // force the primary ecosystem instead of detecting it
	offline   bool   // skip all registry lookups
	refresh   bool   // bypass the result cache
	noCache   bool   // disable caching entirely
	rules     string // path to a TOML rule-base overlay
	config    string // config file path
}

// newReportCmd creates the report command. It runs the same pipeline as
// scan but emits a markdown report instead of the terminal table.
func newReportCmd() *cobra.Command {
	var opts reportOpts

	cmd := &cobra.Command{
		Use:   "report [path-or-url]",
		Short: "Generate a markdown dependency report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write report to file (default: stdout)")
	cmd.Flags().StringVar(&opts.jsonOut, "json", "", "also write the raw result record to this file")
	cmd.Flags().StringVarP(&opts.ecosystem, "ecosystem", "e", "", "force the primary ecosystem")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip registry lookups")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "TOML rule-base overlay")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path")

	return cmd
}

func runReport(ctx context.Context, ref string, opts *reportOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := LoadConfig(opts.config)
	if err != nil {
		return err
	}

	c := openCache(ctx, cfg.Cache, opts.noCache)
	defer func() { _ = c.Close() }()

	runner := pipeline.NewRunner(c, newClassifier(ctx, cfg.Classifier), logger)
	outcome, err := runner.Execute(ctx, pipeline.Options{
		Ref:             ref,
		ForcedEcosystem: opts.ecosystem,
		Refresh:         opts.refresh,
		Offline:         opts.offline || cfg.Offline,
		RulesPath:       firstNonEmpty(opts.rules, cfg.Rules),
		Workers:         cfg.Workers,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	md := report.Markdown(outcome.Result, outcome.Snapshot)
	if opts.output == "" {
		fmt.Print(md)
	} else {
		if err := os.WriteFile(opts.output, []byte(md), 0o644); err != nil {
			return err
		}
		printSuccess("report written")
		printFile(opts.output)
	}

	if opts.jsonOut != "" {
		if err := report.WriteJSON(opts.jsonOut, outcome.Result); err != nil {
			return err
		}
		printFile(opts.jsonOut)
	}
	return nil
}
