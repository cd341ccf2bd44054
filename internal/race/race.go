// Package race holds the values passed between the resolve, fetch, extract and export stages.
package race

import "fmt"

// ResolvedRace is the canonical identifier of one race event.
type ResolvedRace struct {
	Year int
	Slug string
	// Alias is the catalog alias the race was resolved from.
	Alias string
}

// Path is the `<year>-<slug>` segment that identifies the race on the results site.
func (r ResolvedRace) Path() string {
	return fmt.Sprintf("%d-%s", r.Year, r.Slug)
}

func (r ResolvedRace) String() string {
	return r.Path()
}

// Record is one row of a race classification. Every field is the raw cell text.
type Record struct {
	Position      string
	Driver        string
	Constructor   string
	TimeOrRetired string
	Grid          string
	Laps          string
	Points        string
}

// Columns are the display names of the Record fields, in field order.
var Columns = []string{
	"Position",
	"Driver",
	"Constructor",
	"Time/Retired",
	"Grid",
	"Laps",
	"Points",
}

// Values returns the fields of the record in Columns order.
func (r Record) Values() []string {
	return []string{
		r.Position,
		r.Driver,
		r.Constructor,
		r.TimeOrRetired,
		r.Grid,
		r.Laps,
		r.Points,
	}
}

// RecordFromCells maps the first len(Columns) cells onto a Record, it panics if there are fewer.
func RecordFromCells(cells []string) Record {
	return Record{
		Position:      cells[0],
		Driver:        cells[1],
		Constructor:   cells[2],
		TimeOrRetired: cells[3],
		Grid:          cells[4],
		Laps:          cells[5],
		Points:        cells[6],
	}
}
