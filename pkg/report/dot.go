package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/envforge/pkg/resolve"
)

// ToDOT converts a result to Graphviz DOT format: subdirectory nodes link
// to the dependencies resolved there, and hidden (implied) dependencies
// are drawn dashed. The output is deterministic for a fixed result.
func ToDOT(result *resolve.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph envforge {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	seen := map[string]bool{}
	for _, dir := range sortedDirs(result) {
		sr := result.PerSubdir[dir]
		if len(sr.Deps) == 0 && len(sr.Hidden) == 0 {
			continue
		}
		dirID := "dir:" + dir
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", dirID, displayDir(dir))

		for _, eco := range sortedKeys(sr.Deps) {
			deps := sr.Deps[eco]
			for _, name := range sortedKeys(deps) {
				if !seen[name] {
					seen[name] = true
					fmt.Fprintf(&buf, "  %q [label=%q];\n", name, name+"\n"+deps[name])
				}
				fmt.Fprintf(&buf, "  %q -> %q;\n", dirID, name)
			}
		}
		for _, h := range sr.Hidden {
			if !seen[h] {
				seen[h] = true
				fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", h, h)
			}
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", dirID, h)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
