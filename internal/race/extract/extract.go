package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"pitwall-results/internal/components/assert"
	"pitwall-results/internal/components/htmlutil"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("pitwall/race/extract")

const (
	report_extractor_extract = "extractor.extract"
	report_extractor_row     = "extractor.row"
)

type Status int

const (
	// StatusParsed means a table was found and at least one record was parsed.
	StatusParsed Status = iota
	// StatusEmptyTable means a table was found but none of its rows were usable.
	StatusEmptyTable
	// StatusNoTable means none of the locators matched.
	StatusNoTable
)

func (s Status) String() string {
	switch s {
	case StatusParsed:
		return "parsed"
	case StatusEmptyTable:
		return "table found, zero usable rows"
	case StatusNoTable:
		return "no results table located"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is everything recovered from one document.
type Result struct {
	Status  Status
	Records []race.Record
	// Locator names the heuristic that located the table, empty when StatusNoTable.
	Locator string
	// RowsSeen counts the rows after the header.
	RowsSeen int
	// RowsSkipped counts rows that were too short or could not be read.
	RowsSkipped int
	// Table is the located table, kept for diagnostics.
	Table *goquery.Selection
}

// locator is one ordered heuristic for finding the results table.
type locator struct {
	name string
	// kinds are the element names that qualify, `class` must be among the element's classes
	// unless it is empty.
	kinds []string
	class string
}

var containerKinds = []string{"div", "section"}

var locators = []locator{
	{name: "race results table", kinds: []string{"table"}, class: "race-results"},
	{name: "results table", kinds: []string{"table"}, class: "results"},
	{name: "race results container", kinds: containerKinds, class: "race-results"},
	{name: "results table container", kinds: containerKinds, class: "results-table"},
	{name: "first table", kinds: []string{"table"}},
}

func (l locator) selector() string {
	parts := make([]string, len(l.kinds))
	for i, kind := range l.kinds {
		parts[i] = kind
		if l.class != "" {
			parts[i] = fmt.Sprintf("%s.%s", kind, l.class)
		}
	}
	return strings.Join(parts, ", ")
}

// locate returns the table of the first matching node that has rows of its own. A container
// stands for the first table inside it with rows.
func (l locator) locate(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find(l.selector()).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = tableWithRows(s)
		return found == nil
	})
	return found
}

func tableWithRows(s *goquery.Selection) *goquery.Selection {
	if goquery.NodeName(s) == "table" {
		if ownRows(s).Length() == 0 {
			return nil
		}
		return s
	}
	var found *goquery.Selection
	s.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if ownRows(table).Length() == 0 {
			return true
		}
		found = table
		return false
	})
	return found
}

// ownRows are the rows of `table` that are not inside a table nested in it.
func ownRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return row.Closest("table").IsSelection(table)
	})
}

// Extractor pulls the race classification out of a results page.
type Extractor struct {
	tel telemetry.API
}

func NewExtractor(tel telemetry.API) Extractor {
	assert.NotNil(tel, "tel")
	return Extractor{tel: telemetry.NewScopedAPI("extract", tel)}
}

// Extract parses `body` as html and reads the results table out of it.
//
// An empty or unrecognized page is not an error, it is reported through Result.Status.
// The error is only set if the document could not be read at all.
func (e Extractor) Extract(ctx context.Context, body []byte) (Result, error) {
	_, span := tracer.Start(ctx, "Extract")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		e.tel.ReportBroken(report_extractor_extract, fmt.Errorf("parse html: %w", err))
		return Result{Status: StatusNoTable}, err
	}

	res := e.ExtractDocument(doc)
	span.SetAttributes(
		attribute.String("status", res.Status.String()),
		attribute.String("locator", res.Locator),
		attribute.Int("records", len(res.Records)),
		attribute.Int("rows_skipped", res.RowsSkipped),
	)
	return res, nil
}

// ExtractDocument is Extract on an already parsed document.
func (e Extractor) ExtractDocument(doc *goquery.Document) Result {
	for _, l := range locators {
		table := l.locate(doc)
		if table == nil {
			continue
		}

		res := Result{Locator: l.name, Table: table}
		e.parseRows(table, &res)

		res.Status = StatusParsed
		if len(res.Records) == 0 {
			res.Status = StatusEmptyTable
		}
		if res.RowsSkipped > 0 {
			e.tel.ReportWarning(report_extractor_extract, "skipped malformed rows", res.RowsSkipped, l.name)
		}
		e.tel.ReportCount(report_extractor_extract, int64(len(res.Records)))
		return res
	}

	e.tel.ReportWarning(report_extractor_extract, StatusNoTable.String())
	return Result{Status: StatusNoTable}
}

var errRowTooShort = errors.New("row has too few cells")

func (e Extractor) parseRows(table *goquery.Selection, res *Result) {
	rows := ownRows(table)
	// the first row is the header
	rows.Slice(1, rows.Length()).Each(func(i int, row *goquery.Selection) {
		res.RowsSeen++
		record, err := parseRow(row)
		if err != nil {
			res.RowsSkipped++
			e.tel.ReportDebug(report_extractor_row, i+1, err)
			return
		}
		res.Records = append(res.Records, record)
	})
}

// parseRow reads one row, a failure here only ever affects that row.
func parseRow(row *goquery.Selection) (record race.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read row: %v", r)
		}
	}()

	cells := row.ChildrenFiltered("td, th")
	if cells.Length() < len(race.Columns) {
		return race.Record{}, fmt.Errorf("%w: %d", errRowTooShort, cells.Length())
	}

	texts := make([]string, len(race.Columns))
	for i := range texts {
		texts[i] = htmlutil.CellText(cells.Get(i))
	}
	return race.RecordFromCells(texts), nil
}
