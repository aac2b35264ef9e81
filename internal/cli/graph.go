package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/envforge/pkg/pipeline"
	"github.com/matzehuels/envforge/pkg/report"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string // output file path (default derived from format)
	format    string // "svg" or "dot"
	ecosystem string // force the primary ecosystem
	offline   bool   // skip all registry lookups
	refresh   bool   // bypass the result cache
	noCache   bool   // disable caching entirely
	config    string // config file path
}

// newGraphCmd creates the graph command, which renders the resolved
// dependency graph as Graphviz DOT or SVG.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "graph [path-or-url]",
		Short: "Render the dependency graph as SVG or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "svg" && opts.format != "dot" {
				return fmt.Errorf("invalid format: %s (must be 'svg' or 'dot')", opts.format)
			}
			return runGraph(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: envforge-graph.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().StringVarP(&opts.ecosystem, "ecosystem", "e", "", "force the primary ecosystem")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip registry lookups")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path")

	return cmd
}

func runGraph(ctx context.Context, ref string, opts *graphOpts) error {
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
		Workers:         cfg.Workers,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	dot := report.ToDOT(outcome.Result)
	out := opts.output
	if out == "" {
		out = "envforge-graph." + opts.format
	}

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	default:
		prog := newProgress(logger)
		data, err = report.RenderSVG(dot)
		if err != nil {
			return err
		}
		prog.done("rendered graph")
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	printSuccess("graph written (%d nodes)", countNodes(outcome))
	printFile(out)
	return nil
}

// countNodes counts subdirectory and dependency nodes for the summary line.
func countNodes(outcome *pipeline.Outcome) int {
	n := 0
	for _, sr := range outcome.Result.PerSubdir {
		empty := true
		for _, deps := range sr.Deps {
			n += len(deps)
			if len(deps) > 0 {
				empty = false
			}
		}
		if !empty {
			n++
		}
	}
	return n
}
