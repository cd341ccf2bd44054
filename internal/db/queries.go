package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type RaceResult struct {
	Year          int64
	Slug          string
	Row           int64
	Position      string
	Driver        string
	Constructor   string
	TimeOrRetired string
	Grid          string
	Laps          string
	Points        string
	ExportedAt    int64
}

const deleteRace = `delete from race_results where year = ? and slug = ?`

func (q *Queries) DeleteRace(ctx context.Context, year int64, slug string) error {
	_, err := q.db.ExecContext(ctx, deleteRace, year, slug)
	return err
}

const insertResult = `insert into race_results (
    year, slug, row, position, driver, constructor, time_or_retired, grid, laps, points, exported_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertResult(ctx context.Context, arg RaceResult) error {
	_, err := q.db.ExecContext(ctx, insertResult,
		arg.Year,
		arg.Slug,
		arg.Row,
		arg.Position,
		arg.Driver,
		arg.Constructor,
		arg.TimeOrRetired,
		arg.Grid,
		arg.Laps,
		arg.Points,
		arg.ExportedAt,
	)
	return err
}

const getRaceResults = `select
    year, slug, row, position, driver, constructor, time_or_retired, grid, laps, points, exported_at
from race_results
where year = ? and slug = ?
order by row`

func (q *Queries) GetRaceResults(ctx context.Context, year int64, slug string) ([]RaceResult, error) {
	rows, err := q.db.QueryContext(ctx, getRaceResults, year, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RaceResult
	for rows.Next() {
		var i RaceResult
		err := rows.Scan(
			&i.Year,
			&i.Slug,
			&i.Row,
			&i.Position,
			&i.Driver,
			&i.Constructor,
			&i.TimeOrRetired,
			&i.Grid,
			&i.Laps,
			&i.Points,
			&i.ExportedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
