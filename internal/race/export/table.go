package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"pitwall-results/internal/race"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title is the display name of a race, ex. "Monaco Grand Prix 2024".
func Title(r race.ResolvedRace) string {
	name := cases.Title(language.English).String(strings.ReplaceAll(r.Slug, "-", " "))
	return fmt.Sprintf("%s %d", name, r.Year)
}

func newTable(records []race.Record) table.Writer {
	t := table.NewWriter()

	header := table.Row{}
	for _, col := range race.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, record := range records {
		row := table.Row{}
		for _, v := range record.Values() {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	return t
}

// RenderTable prints the records as a terminal table, `title` may be empty.
func RenderTable(out io.Writer, title string, records []race.Record) {
	t := newTable(records)
	if title != "" {
		t.SetTitle(title)
	}
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// MarkdownWriter writes the records as a markdown table.
type MarkdownWriter struct{}

func (MarkdownWriter) Format() string {
	return FormatMarkdown
}

func (MarkdownWriter) Export(_ context.Context, dir string, r race.ResolvedRace, records []race.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}

	path := filepath.Join(dir, FileName(r, "md"))
	err := createFile(path, func(f *os.File) error {
		_, err := fmt.Fprintf(f, "# %s\n\n%s\n", Title(r), newTable(records).RenderMarkdown())
		return err
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
