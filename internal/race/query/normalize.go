package query

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stopwords are removed from a race name when they appear as whole words.
var Stopwords = []string{"grand prix", "gp", "formula 1", "f1", "the", "race", "prix"}

// longer phrases come first so "grand prix" wins over "prix"
var stopwordRegex = regexp.MustCompile(`grand\s+prix|formula\s+1|gp|f1|the|race|prix`)

// a hyphen binds words together, so "race-day" is a single word
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

// wholeWord reports whether text[start:end] is not glued to a neighbouring word rune.
func wholeWord(text string, start, end int) bool {
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(before) {
			return false
		}
	}
	if end < len(text) {
		after, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(after) {
			return false
		}
	}
	return true
}

func removeStopwords(text string) string {
	var out strings.Builder
	// a rejected match only advances the scan by one rune, so a stopword overlapping it
	// ("prix" in "xgrand prix") is still found
	pos, last := 0, 0
	for pos < len(text) {
		m := stopwordRegex.FindStringIndex(text[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		if !wholeWord(text, start, end) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		out.WriteString(text[last:start])
		out.WriteByte(' ')
		last, pos = end, end
	}
	out.WriteString(text[last:])
	return out.String()
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func foldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// Normalize turns free text into a candidate race name.
//
// `year` is removed verbatim when non-zero. The result is lowercase, free of accents, stopwords
// and punctuation (hyphens are kept), with single spaces between words. It may be empty.
func Normalize(text string, year int) string {
	if year != 0 {
		text = strings.ReplaceAll(text, strconv.Itoa(year), "")
	}
	text = foldDiacritics(strings.TrimSpace(strings.ToLower(text)))

	// stripping punctuation can expose another stopword ("g.p." -> "gp")
	for {
		next := collapseWhitespace(stripPunctuation(removeStopwords(text)))
		if next == text {
			return next
		}
		text = next
	}
}
