package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race/export"
	"pitwall-results/internal/race/extract"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/spf13/cobra"
)

var dumpMarkdown *bool

func init() {
	dumpMarkdown = extractCmd.Flags().Bool("dump", false, "Print the page as markdown when no rows could be read.")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <file.html> [--dump]",
	Short: "Runs the results extractor on a saved page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body, err := os.ReadFile(args[0])
		if err != nil {
			fatal("failed to read page", err)
		}

		extractor := extract.NewExtractor(telemetry.SlogAPI{})
		res, err := extractor.Extract(cmd.Context(), body)
		if err != nil {
			fatal("failed to parse page", err)
		}
		printExtraction(cmd.OutOrStdout(), filepath.Base(args[0]), res)

		if *dumpMarkdown && res.Status != extract.StatusParsed {
			err = dumpPage(cmd.OutOrStdout(), body, res)
			if err != nil {
				fatal("failed to convert page to markdown", err)
			}
		}
	},
}

func printExtraction(out io.Writer, title string, res extract.Result) {
	fmt.Fprintf(out, "%s: %s\n", title, res.Status)
	if res.Status == extract.StatusNoTable {
		return
	}
	fmt.Fprintf(
		out,
		"located by %q, %d rows, %d skipped\n",
		res.Locator,
		res.RowsSeen,
		res.RowsSkipped,
	)
	if res.Status == extract.StatusParsed {
		export.RenderTable(out, title, res.Records)
	}
}

func newConverter() *md.Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.Table())
	return converter
}

// dumpPage prints the located table as markdown, or the whole page when there is none.
func dumpPage(out io.Writer, body []byte, res extract.Result) error {
	converter := newConverter()

	var rendered string
	if res.Table != nil {
		rendered = converter.Convert(res.Table)
	} else {
		var err error
		rendered, err = converter.ConvertString(string(body))
		if err != nil {
			return err
		}
	}

	const rule = "------------------------------------"
	fmt.Fprintf(out, "\n%s\n\n%s\n\n%s\n", rule, rendered, rule)
	return nil
}
