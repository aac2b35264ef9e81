package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/envforge/pkg/cache"
	"github.com/matzehuels/envforge/pkg/ecosystem/ecosystems"
)

// newEcosystemsCmd creates the ecosystems command, which lists the
// supported ecosystems with their detection inputs and registry backing.
func newEcosystemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ecosystems",
		Short: "List supported ecosystems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runEcosystems()
			return nil
		},
	}
}

func runEcosystems() {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Ecosystem", "Extensions", "Manifests", "Registry").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return StyleTitle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	null := cache.NewNullCache()
	for _, eco := range ecosystems.All {
		registry := "-"
		if src := eco.VersionSource(null); src != nil {
			registry = src.Name()
		}
		tbl.Row(
			eco.Name,
			strings.Join(eco.Extensions, ", "),
			strings.Join(eco.ManifestFiles, ", "),
			registry,
		)
	}

	fmt.Println(tbl.Render())
}
