package commands

import (
	"io"
	"pitwall-results/internal/race/catalog"
	"pitwall-results/internal/race/resolver"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(racesCmd)
}

var racesCmd = &cobra.Command{
	Use:   "races",
	Short: "Lists every race and the names it can be looked up by.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderCatalog(cmd.OutOrStdout(), catalog.Default())
	},
}

func renderCatalog(out io.Writer, c catalog.Catalog) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Race", "Slug", "Aliases"})

	slugs := c.Slugs()
	for _, slug := range slugs {
		t.AppendRow(table.Row{
			resolver.Title(strings.ReplaceAll(slug, "-", " ")),
			slug,
			strings.Join(c.AliasesOf(slug), ", "),
		})
	}
	t.AppendFooter(table.Row{"", len(slugs), c.Len()})
	t.Render()
}
