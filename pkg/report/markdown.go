// Package report renders inference results: a markdown report, a styled
// terminal summary, a Graphviz dependency graph, and a JSON export.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/envforge/pkg/resolve"
	"github.com/matzehuels/envforge/pkg/scan"
)

// Markdown renders the full report. Section order is stable so reports for
// identical results are byte-identical.
func Markdown(result *resolve.Result, snapshot *scan.Snapshot) string {
	var b strings.Builder

	b.WriteString("# envforge Report\n\n")

	b.WriteString("## Repository Overview\n")
	fmt.Fprintf(&b, "- Primary ecosystem: %s\n", orDash(result.Primary))
	fmt.Fprintf(&b, "- Detected ecosystems: %s\n", orDash(strings.Join(detected(snapshot), ", ")))
	fmt.Fprintf(&b, "- Subdirectories: %d\n", len(result.PerSubdir))
	if result.Fingerprint != "" {
		fmt.Fprintf(&b, "- Snapshot fingerprint: `%s`\n", result.Fingerprint)
	}
	b.WriteString("\n")

	b.WriteString("## Dependencies by Subdirectory\n")
	for _, dir := range sortedDirs(result) {
		sr := result.PerSubdir[dir]
		fmt.Fprintf(&b, "### %s\n", displayDir(dir))

		empty := true
		for _, eco := range sortedKeys(sr.Deps) {
			deps := sr.Deps[eco]
			if len(deps) == 0 {
				continue
			}
			empty = false
			fmt.Fprintf(&b, "#### %s\n", eco)
			for _, name := range sortedKeys(deps) {
				fmt.Fprintf(&b, "- %s@%s\n", name, deps[name])
			}
		}
		if empty {
			b.WriteString("_No dependencies resolved._\n")
		}
		if len(sr.Hidden) > 0 {
			b.WriteString("#### Hidden dependencies\n")
			for _, h := range sr.Hidden {
				fmt.Fprintf(&b, "- %s\n", h)
			}
		}
		b.WriteString("\n")
	}

	if len(result.Conflicts) > 0 {
		b.WriteString("## Conflicts\n")
		for _, c := range result.Conflicts {
			fmt.Fprintf(&b, "- %s: %s %s → %s (%s)\n", displayDir(c.Subdir), c.Name, c.From, c.To, c.Reason)
		}
		b.WriteString("\n")
	}

	if len(result.Insights) > 0 {
		b.WriteString("## Insights\n")
		for _, in := range result.Insights {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", in.Kind, displayDir(in.Subdir), in.Message)
		}
		b.WriteString("\n")
	}

	if snapshot != nil && len(snapshot.Warnings) > 0 {
		b.WriteString("## Scan Warnings\n")
		for _, w := range snapshot.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func sortedDirs(result *resolve.Result) []string {
	dirs := make([]string, 0, len(result.PerSubdir))
	for d := range result.PerSubdir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func detected(snapshot *scan.Snapshot) []string {
	if snapshot == nil {
		return nil
	}
	names := make([]string, 0, len(snapshot.Counts))
	for name, count := range snapshot.Counts {
		if count > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func displayDir(dir string) string {
	if dir == scan.RootDir || dir == "" {
		return "(root)"
	}
	return dir
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
