package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"pitwall-results/internal/components/assert"
	"pitwall-results/internal/race"
	"strings"
)

// ErrNothingToExport is returned by every writer when given zero records, no file is created.
var ErrNothingToExport = errors.New("nothing to export")

// Writer persists a record set somewhere under a directory.
type Writer interface {
	// Format is the name the writer is selected by in config, ex. "csv".
	Format() string
	// Export writes `records` and returns the path written to.
	Export(ctx context.Context, dir string, r race.ResolvedRace, records []race.Record) (string, error)
}

// FileName is the file a race is exported to, ex. `2024_monaco-grand-prix_results.csv`.
func FileName(r race.ResolvedRace, ext string) string {
	assert.NotEmptyStr(r.Slug, "race slug")
	return fmt.Sprintf("%d_%s_results.%s", r.Year, r.Slug, ext)
}

const (
	FormatCSV      = "csv"
	FormatXLSX     = "xlsx"
	FormatSQLite   = "sqlite"
	FormatMarkdown = "markdown"
)

var Formats = []string{FormatCSV, FormatXLSX, FormatSQLite, FormatMarkdown}

// WritersFor returns one writer per format name. `sqlitePath` is only used by the sqlite writer.
func WritersFor(formats []string, sqlitePath string) ([]Writer, error) {
	var out []Writer
	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case FormatCSV:
			out = append(out, CSVWriter{})
		case FormatXLSX, "excel":
			out = append(out, XLSXWriter{})
		case FormatSQLite, "db":
			out = append(out, SQLiteWriter{Path: sqlitePath})
		case FormatMarkdown, "md":
			out = append(out, MarkdownWriter{})
		default:
			return nil, fmt.Errorf("unknown export format %q, expected one of %s", format, strings.Join(Formats, ", "))
		}
	}
	return out, nil
}

// createFile creates the parent directory of path as well, `write` failing removes the file.
func createFile(path string, write func(f *os.File) error) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
