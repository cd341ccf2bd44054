package query

import (
	"regexp"
	"strconv"
	"time"
)

// MinYear is the first season a year in a query may name.
const MinYear = 1950

// a 19xx/20xx run that is not part of a longer run of digits
var yearRegex = regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})(?:\D|$)`)

// ExtractYear returns the first 19xx or 20xx in `text`.
//
// Only the first candidate is considered, if it falls outside [MinYear, now.Year()] no year is
// returned, even when a later candidate would have been in range.
func ExtractYear(text string, now time.Time) (int, bool) {
	groups := yearRegex.FindStringSubmatch(text)
	if len(groups) < 2 {
		return 0, false
	}
	year, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, false
	}
	if year < MinYear || year > now.Year() {
		return 0, false
	}
	return year, true
}
