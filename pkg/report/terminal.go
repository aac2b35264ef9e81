package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/envforge/pkg/ecosystem"
	"github.com/matzehuels/envforge/pkg/resolve"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleLatest = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

// Terminal renders a styled summary for interactive use: one table of
// resolved dependencies plus counters for hidden deps and conflicts.
func Terminal(result *resolve.Result) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("envforge"))
	b.WriteString(styleDim.Render(fmt.Sprintf("  run %s", shortID(result.RunID))))
	b.WriteString("\n\n")

	var rows [][]string
	for _, dir := range sortedDirs(result) {
		sr := result.PerSubdir[dir]
		for _, eco := range sortedKeys(sr.Deps) {
			deps := sr.Deps[eco]
			for _, name := range sortedKeys(deps) {
				rows = append(rows, []string{displayDir(dir), eco, name, deps[name]})
			}
		}
	}

	if len(rows) == 0 {
		b.WriteString(styleDim.Render("no dependencies resolved"))
		b.WriteString("\n")
		return b.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Subdir", "Ecosystem", "Dependency", "Version").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 3 && row < len(rows) && rows[row][3] == ecosystem.VersionLatest {
				return styleLatest
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	summary := fmt.Sprintf("%d dependencies, %d hidden, %d conflicts, %d insights",
		len(result.Global), len(result.Hidden), len(result.Conflicts), len(result.Insights))
	b.WriteString(styleDim.Render(summary))
	b.WriteString("\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
