package commands

import (
	"errors"
	"fmt"
	"io"
	"pitwall-results/internal/race/export"
	"pitwall-results/internal/race/extract"
	"pitwall-results/internal/race/fetch"
	"pitwall-results/internal/race/resolver"
	"pitwall-results/internal/service"
)

// describeFetchError phrases a fetch failure for the user.
func describeFetchError(err error) string {
	var statusErr *fetch.StatusError
	switch {
	case errors.Is(err, fetch.ErrNotFound):
		return "no results page found, the race may not have been held that year"
	case errors.Is(err, fetch.ErrTimeout):
		return "the results site took too long to respond"
	case errors.Is(err, fetch.ErrConnection):
		return "could not connect to the results site"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("the results site responded with HTTP %d", statusErr.Code)
	}
	return fmt.Sprintf("failed to fetch results: %v", err)
}

// printReport writes what happened to one query to `out`, `err` is the error Lookup returned.
func printReport(out io.Writer, report service.Report, err error) {
	res := report.Resolution
	if res.Outcome != resolver.OutcomeResolved {
		fmt.Fprintln(out, res.Message())
		return
	}
	fmt.Fprintf(out, "Found %s\n", export.Title(res.Race))

	if !report.Fetched {
		if err != nil {
			fmt.Fprintln(out, describeFetchError(err))
		}
		return
	}

	ex := report.Extraction
	switch ex.Status {
	case extract.StatusParsed:
		export.RenderTable(out, export.Title(res.Race), ex.Records)
		if ex.RowsSkipped > 0 {
			fmt.Fprintf(out, "skipped %d malformed rows\n", ex.RowsSkipped)
		}
	case extract.StatusEmptyTable:
		fmt.Fprintf(out, "found a results table but none of its %d rows could be read\n", ex.RowsSeen)
	case extract.StatusNoTable:
		fmt.Fprintln(out, "could not locate a results table on the page")
	}

	for _, path := range report.Exported {
		fmt.Fprintf(out, "saved %s\n", path)
	}
	if err != nil {
		fmt.Fprintln(out, err)
	}
}
