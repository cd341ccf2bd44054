package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"pitwall-results/internal/race"
)

// CSVWriter writes a header row followed by one line per record.
type CSVWriter struct{}

func (CSVWriter) Format() string {
	return FormatCSV
}

func (CSVWriter) Export(_ context.Context, dir string, r race.ResolvedRace, records []race.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}

	path := filepath.Join(dir, FileName(r, "csv"))
	err := createFile(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		err := w.Write(race.Columns)
		if err != nil {
			return err
		}
		for _, record := range records {
			err = w.Write(record.Values())
			if err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
