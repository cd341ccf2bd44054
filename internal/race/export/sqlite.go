package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"pitwall-results/internal/components/chrono"
	"pitwall-results/internal/db"
	"pitwall-results/internal/race"
)

// SQLiteWriter stores records in the race_results table of a sqlite database,
// an earlier export of the same race is replaced.
type SQLiteWriter struct {
	// Path is the database file, relative paths are resolved against the export directory.
	Path string
	// Clock stamps exported_at, defaults to the system clock.
	Clock chrono.API
}

func (SQLiteWriter) Format() string {
	return FormatSQLite
}

func (w SQLiteWriter) path(dir string) string {
	if filepath.IsAbs(w.Path) {
		return w.Path
	}
	name := w.Path
	if name == "" {
		name = "results.db"
	}
	return filepath.Join(dir, name)
}

func (w SQLiteWriter) Export(ctx context.Context, dir string, r race.ResolvedRace, records []race.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}
	clock := w.Clock
	if clock == nil {
		clock = chrono.NewStandardImpl()
	}

	path := w.path(dir)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return "", err
	}
	database, err := db.Open(ctx, path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer database.Close()

	tx, discard, commit, err := db.NewMakeTx(database)(ctx)
	if err != nil {
		return "", err
	}
	defer discard()

	err = tx.DeleteRace(ctx, int64(r.Year), r.Slug)
	if err != nil {
		return "", err
	}
	exportedAt := clock.Now().Unix()
	for i, record := range records {
		err = tx.InsertResult(ctx, db.RaceResult{
			Year:          int64(r.Year),
			Slug:          r.Slug,
			Row:           int64(i + 1),
			Position:      record.Position,
			Driver:        record.Driver,
			Constructor:   record.Constructor,
			TimeOrRetired: record.TimeOrRetired,
			Grid:          record.Grid,
			Laps:          record.Laps,
			Points:        record.Points,
			ExportedAt:    exportedAt,
		})
		if err != nil {
			return "", fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	err = commit()
	if err != nil {
		return "", err
	}
	return path, nil
}
