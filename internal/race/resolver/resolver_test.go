package resolver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"pitwall-results/internal/components/chrono"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race"
	"pitwall-results/internal/race/catalog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var clock = chrono.FixedImpl{At: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)}

func newTestResolver(t testing.TB, options ...Option) Resolver {
	t.Helper()
	return New(catalog.Default(), clock, telemetry.NewRecorder(), options...)
}

func fixedChoice(choice int) Selector {
	return SelectorFunc(func(context.Context, int, []Candidate) (int, error) {
		return choice, nil
	})
}

func unreachableSelector(t testing.TB) Selector {
	return SelectorFunc(func(context.Context, int, []Candidate) (int, error) {
		t.Fatal("selector should not be called")
		return 0, nil
	})
}

func TestResolveExact(t *testing.T) {
	r := newTestResolver(t)

	testCases := []struct {
		input    string
		expected race.ResolvedRace
	}{
		{
			input:    "2024 Monaco GP",
			expected: race.ResolvedRace{Year: 2024, Slug: "monaco-grand-prix", Alias: "monaco"},
		},
		{
			input:    "Brazilian Grand Prix 2024",
			expected: race.ResolvedRace{Year: 2024, Slug: "sao-paulo-grand-prix", Alias: "brazilian"},
		},
		{
			input:    "the F1 São Paulo race, 2023",
			expected: race.ResolvedRace{Year: 2023, Slug: "sao-paulo-grand-prix", Alias: "sao paulo"},
		},
		{
			input:    "1950 British Grand Prix",
			expected: race.ResolvedRace{Year: 1950, Slug: "british-grand-prix", Alias: "british"},
		},
	}

	for _, test := range testCases {
		res, err := r.Resolve(context.Background(), test.input, unreachableSelector(t))
		require.NoError(t, err)
		require.Equal(t, OutcomeResolved, res.Outcome, test.input)
		require.Equal(t, test.expected, res.Race, test.input)
	}

	res := r.Match("2024 Monaco GP")
	require.Equal(t, "2024-monaco-grand-prix", res.Race.Path())
}

func TestMatchMisspelled(t *testing.T) {
	r := newTestResolver(t)

	res := r.Match("Brasil 2024")
	require.Equal(t, OutcomeAmbiguous, res.Outcome)
	require.NotEmpty(t, res.Candidates)
	require.LessOrEqual(t, len(res.Candidates), DefaultMaxCandidates)

	aliases := make([]string, len(res.Candidates))
	for i, c := range res.Candidates {
		aliases[i] = c.Alias
		require.GreaterOrEqual(t, c.Score, DefaultThreshold)
		if i > 0 {
			require.GreaterOrEqual(t, res.Candidates[i-1].Score, c.Score)
		}
	}
	require.Contains(t, aliases, "brazil")
	require.Contains(t, aliases, "brazilian")
	require.Equal(t, "brazil", aliases[0])
}

func TestMatchNotFound(t *testing.T) {
	r := newTestResolver(t)

	testCases := []struct {
		input  string
		reason NotFoundReason
	}{
		{input: "Atlantis 2024", reason: ReasonNoMatch},
		{input: "Monaco GP", reason: ReasonMissingYear},
		{input: "Monaco 1949", reason: ReasonMissingYear},
		{input: "Monaco 2099", reason: ReasonMissingYear},
		{input: "2024 Grand Prix", reason: ReasonMissingName},
		{input: "2024 !!!", reason: ReasonMissingName},
	}

	for _, test := range testCases {
		res, err := r.Resolve(context.Background(), test.input, unreachableSelector(t))
		require.NoError(t, err)
		require.Equal(t, OutcomeNotFound, res.Outcome, test.input)
		require.Equal(t, test.reason, res.Reason, test.input)
		require.Empty(t, res.Candidates, test.input)
	}

	res := r.Match("Atlantis 2024")
	require.Contains(t, res.Message(), `"atlantis"`)
	require.Contains(t, res.Message(), "2024")
}

func TestResolveSelection(t *testing.T) {
	r := newTestResolver(t)

	res, err := r.Resolve(context.Background(), "Brasil 2024", fixedChoice(1))
	require.NoError(t, err)
	require.Equal(t, OutcomeResolved, res.Outcome)
	require.Equal(t, race.ResolvedRace{Year: 2024, Slug: "sao-paulo-grand-prix", Alias: "brazil"}, res.Race)

	var seenYear int
	var seenCount int
	selector := SelectorFunc(func(_ context.Context, year int, candidates []Candidate) (int, error) {
		seenYear = year
		seenCount = len(candidates)
		return len(candidates), nil
	})
	res, err = r.Resolve(context.Background(), "Brasil 2024", selector)
	require.NoError(t, err)
	require.Equal(t, OutcomeResolved, res.Outcome)
	require.Equal(t, 2024, seenYear)
	require.Equal(t, res.Candidates[seenCount-1].Slug, res.Race.Slug)
}

func TestResolveCancel(t *testing.T) {
	r := newTestResolver(t)

	for _, input := range []string{"Brasil 2024", "Monacco 2024", "Silverston 2021"} {
		for _, choice := range []int{0, -1, 6, 99} {
			res, err := r.Resolve(context.Background(), input, fixedChoice(choice))
			require.NoError(t, err)
			require.Equal(t, OutcomeCancelled, res.Outcome, input)
			require.Equal(t, race.ResolvedRace{}, res.Race)
		}
	}
}

func TestResolveSelectorError(t *testing.T) {
	tel := telemetry.NewRecorder()
	r := New(catalog.Default(), clock, tel)

	failing := SelectorFunc(func(context.Context, int, []Candidate) (int, error) {
		return 0, io.EOF
	})
	res, err := r.Resolve(context.Background(), "Brasil 2024", failing)
	require.True(t, errors.Is(err, io.EOF))
	require.Equal(t, OutcomeCancelled, res.Outcome)
	require.Len(t, tel.Filter(telemetry.KindWarning), 1)
}

func TestCandidatesTieBreak(t *testing.T) {
	c, err := catalog.New([]catalog.Alias{
		{Name: "abz", Slug: "z"},
		{Name: "xyz", Slug: "none"},
		{Name: "abx", Slug: "x"},
		{Name: "aby", Slug: "y"},
		{Name: "abw", Slug: "w"},
		{Name: "abv", Slug: "v"},
		{Name: "abu", Slug: "u"},
		{Name: "abc", Slug: "exact"},
	})
	require.NoError(t, err)

	r := New(c, clock, telemetry.NewRecorder())
	for i := 0; i < 10; i++ {
		candidates := r.Candidates("abq")
		diff := cmp.Diff(
			[]Candidate{
				{Alias: "abz", Slug: "z"},
				{Alias: "abx", Slug: "x"},
				{Alias: "aby", Slug: "y"},
				{Alias: "abw", Slug: "w"},
				{Alias: "abv", Slug: "v"},
			},
			candidates,
			cmpopts.IgnoreFields(Candidate{}, "Score"),
		)
		if diff != "" {
			t.Fatal(diff)
		}
	}

	r = New(c, clock, telemetry.NewRecorder(), WithMaxCandidates(2), WithThreshold(0.5))
	candidates := r.Candidates("abcd")
	require.Len(t, candidates, 2)
	require.Equal(t, "abc", candidates[0].Alias)
	require.Equal(t, "abz", candidates[1].Alias)
}

func TestCandidatesLimitsAreClamped(t *testing.T) {
	r := newTestResolver(t, WithMaxCandidates(12), WithThreshold(0.3))
	candidates := r.Candidates("austrian")
	require.NotEmpty(t, candidates)
	require.LessOrEqual(t, len(candidates), DefaultMaxCandidates)
	for _, c := range candidates {
		require.GreaterOrEqual(t, c.Score, MinThreshold, c.Alias)
	}

	r = newTestResolver(t, WithThreshold(1.5))
	candidates = r.Candidates("monaco")
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		require.InDelta(t, 1.0, c.Score, 1e-9, c.Alias)
	}
}

func TestSequenceRatio(t *testing.T) {
	require.InDelta(t, 10.0/12.0, SequenceRatio("brazil", "brasil"), 1e-9)
	require.InDelta(t, 1.0, SequenceRatio("monaco", "monaco"), 1e-9)
	require.InDelta(t, 0.0, SequenceRatio("abc", "xyz"), 1e-9)
	require.Greater(t, JaroWinkler("brazil", "brasil"), 0.8)
}

func TestScorerByName(t *testing.T) {
	for _, name := range []string{"", ScorerRatio, ScorerJaroWinkler} {
		scorer, err := ScorerByName(name)
		require.NoError(t, err)
		require.NotNil(t, scorer)
	}
	_, err := ScorerByName("levenshtein")
	require.Error(t, err)

	r := newTestResolver(t, WithScorer(JaroWinkler))
	res := r.Match("Monacco 2024")
	require.Equal(t, OutcomeAmbiguous, res.Outcome)
	require.Equal(t, "monaco", res.Candidates[0].Alias)
}

func TestParseSelection(t *testing.T) {
	testCases := []struct {
		input    string
		n        int
		expected int
	}{
		{input: "1", n: 3, expected: 1},
		{input: " 3\n", n: 3, expected: 3},
		{input: "0", n: 3, expected: 0},
		{input: "4", n: 3, expected: 0},
		{input: "-1", n: 3, expected: 0},
		{input: "+1", n: 3, expected: 0},
		{input: "one", n: 3, expected: 0},
		{input: "1.0", n: 3, expected: 0},
		{input: "", n: 3, expected: 0},
		{input: "99999999999999999999999", n: 3, expected: 0},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseSelection(test.input, test.n), test.input)
	}
}

func TestPromptSelector(t *testing.T) {
	candidates := []Candidate{
		{Alias: "brazil", Slug: "sao-paulo-grand-prix", Score: 0.83},
		{Alias: "las vegas", Slug: "las-vegas-grand-prix", Score: 0.61},
	}

	var out bytes.Buffer
	p := NewPromptSelector(strings.NewReader("2\n"), &out)
	choice, err := p.SelectOne(context.Background(), 2024, candidates)
	require.NoError(t, err)
	require.Equal(t, 2, choice)
	require.Contains(t, out.String(), "Did you mean one of these?")
	require.Contains(t, out.String(), "Brazil 2024")
	require.Contains(t, out.String(), "Las Vegas 2024")
	require.Contains(t, out.String(), "Enter number (or 0 to cancel): ")

	p = NewPromptSelector(strings.NewReader("nope"), io.Discard)
	choice, err = p.SelectOne(context.Background(), 2024, candidates)
	require.NoError(t, err)
	require.Equal(t, 0, choice)

	p = NewPromptSelector(strings.NewReader(""), io.Discard)
	_, err = p.SelectOne(context.Background(), 2024, candidates)
	require.True(t, errors.Is(err, io.EOF))
}
