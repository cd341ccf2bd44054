package export

import (
	"context"
	"os"
	"path/filepath"
	"pitwall-results/internal/race"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Results"

// XLSXWriter writes a single "Results" sheet with a bold header row.
type XLSXWriter struct{}

func (XLSXWriter) Format() string {
	return FormatXLSX
}

func (XLSXWriter) Export(_ context.Context, dir string, r race.ResolvedRace, records []race.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", xlsxSheet)
	if err != nil {
		return "", err
	}

	header := race.Columns
	err = f.SetSheetRow(xlsxSheet, "A1", &header)
	if err != nil {
		return "", err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}
	err = f.SetRowStyle(xlsxSheet, 1, 1, bold)
	if err != nil {
		return "", err
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		values := record.Values()
		err = f.SetSheetRow(xlsxSheet, cell, &values)
		if err != nil {
			return "", err
		}
	}

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(r, "xlsx"))
	err = f.SaveAs(path)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
