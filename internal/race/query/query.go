package query

import "time"

// Query is the parsed form of one line of user input.
type Query struct {
	Raw     string
	Year    int
	HasYear bool
	// Name is the normalized candidate race name, it can be empty.
	Name string
}

// Parse extracts the year and then normalizes what is left of `raw`.
func Parse(raw string, now time.Time) Query {
	year, ok := ExtractYear(raw, now)
	q := Query{
		Raw:     raw,
		Year:    year,
		HasYear: ok,
	}
	q.Name = Normalize(raw, year)
	return q
}
