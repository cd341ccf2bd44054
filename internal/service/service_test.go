package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"pitwall-results/internal/components/chrono"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race"
	"pitwall-results/internal/race/catalog"
	"pitwall-results/internal/race/export"
	"pitwall-results/internal/race/extract"
	"pitwall-results/internal/race/fetch"
	"pitwall-results/internal/race/resolver"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const resultsPage = `<html><body><table class="race-results">
<tr><th>Pos</th><th>Driver</th><th>Team</th><th>Time</th><th>Grid</th><th>Laps</th><th>Pts</th></tr>
<tr><td>1</td><td>Max Verstappen</td><td>Red Bull</td><td>2:06:54.430</td><td>17</td><td>69</td><td>25</td></tr>
<tr><td>2</td><td>Esteban Ocon</td><td>Alpine</td><td>+19.477s</td><td>4</td><td>69</td><td>18</td></tr>
</table></body></html>`

// pages serves fixed bodies by race path and counts calls.
type pages struct {
	bodies map[string]string
	calls  []string
}

func (p *pages) Fetch(_ context.Context, r race.ResolvedRace) ([]byte, error) {
	p.calls = append(p.calls, r.Path())
	body, ok := p.bodies[r.Path()]
	if !ok {
		return nil, fetch.ErrNotFound
	}
	return []byte(body), nil
}

type failingWriter struct{}

func (failingWriter) Format() string {
	return "broken"
}

func (failingWriter) Export(context.Context, string, race.ResolvedRace, []race.Record) (string, error) {
	return "", fmt.Errorf("disk full")
}

func newService(t *testing.T, fetcher PageFetcher, writers ...export.Writer) (Service, *telemetry.Recorder, string) {
	t.Helper()
	tel := telemetry.NewRecorder()
	clock := chrono.FixedImpl{At: now}
	dir := t.TempDir()
	core := NewCoreAPIs(WithCustomClock(clock), WithCustomTelemetryAPI(tel))
	res := resolver.New(catalog.Default(), clock, tel)
	return NewService(core, res, fetcher, writers, dir), tel, dir
}

func choose(n int) resolver.Selector {
	return resolver.SelectorFunc(func(context.Context, int, []resolver.Candidate) (int, error) {
		return n, nil
	})
}

func TestLookupExports(t *testing.T) {
	p := &pages{bodies: map[string]string{"2024-monaco-grand-prix": resultsPage}}
	svc, _, dir := newService(t, p, export.CSVWriter{})

	report, err := svc.Lookup(context.Background(), "Monaco GP 2024", nil)
	require.NoError(t, err)
	require.Equal(t, resolver.OutcomeResolved, report.Resolution.Outcome)
	require.True(t, report.Fetched)
	require.Equal(t, now, report.FetchedAt)
	require.Equal(t, extract.StatusParsed, report.Extraction.Status)
	require.Len(t, report.Records(), 2)
	require.Equal(t, "Esteban Ocon", report.Records()[1].Driver)

	expected := filepath.Join(dir, "2024_monaco-grand-prix_results.csv")
	require.Equal(t, []string{expected}, report.Exported)
	contents, err := os.ReadFile(expected)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(contents), "Position,Driver,Constructor,Time/Retired,Grid,Laps,Points\n"))
	require.Equal(t, []string{"2024-monaco-grand-prix"}, p.calls)
}

func TestLookupSelectsCandidate(t *testing.T) {
	p := &pages{bodies: map[string]string{"2024-sao-paulo-grand-prix": resultsPage}}
	svc, _, _ := newService(t, p)

	report, err := svc.Lookup(context.Background(), "Brasil 2024", choose(1))
	require.NoError(t, err)
	require.Equal(t, resolver.OutcomeResolved, report.Resolution.Outcome)
	require.Equal(t, "sao-paulo-grand-prix", report.Resolution.Race.Slug)
	require.Equal(t, "brazil", report.Resolution.Race.Alias)
	require.Len(t, report.Records(), 2)
	require.Empty(t, report.Exported)
}

func TestLookupUnresolvedNeverFetches(t *testing.T) {
	testCases := []struct {
		input    string
		selector resolver.Selector
		outcome  resolver.Outcome
	}{
		{input: "Monaco", outcome: resolver.OutcomeNotFound},
		{input: "2024", outcome: resolver.OutcomeNotFound},
		{input: "Atlantis 2024", outcome: resolver.OutcomeNotFound},
		{input: "Brasil 2024", selector: choose(0), outcome: resolver.OutcomeCancelled},
		{input: "Brasil 2024", selector: choose(42), outcome: resolver.OutcomeCancelled},
	}

	for _, test := range testCases {
		p := &pages{}
		svc, _, dir := newService(t, p, export.CSVWriter{})
		report, err := svc.Lookup(context.Background(), test.input, test.selector)
		require.NoError(t, err, test.input)
		require.Equal(t, test.outcome, report.Resolution.Outcome, test.input)
		require.False(t, report.Fetched)
		require.Empty(t, p.calls)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Empty(t, entries)
	}
}

func TestLookupSelectorError(t *testing.T) {
	p := &pages{}
	svc, _, _ := newService(t, p)
	eof := errors.New("stdin closed")
	selector := resolver.SelectorFunc(func(context.Context, int, []resolver.Candidate) (int, error) {
		return 0, eof
	})

	report, err := svc.Lookup(context.Background(), "Brasil 2024", selector)
	require.ErrorIs(t, err, eof)
	require.Equal(t, resolver.OutcomeCancelled, report.Resolution.Outcome)
	require.Empty(t, p.calls)
}

func TestLookupFetchError(t *testing.T) {
	svc, tel, _ := newService(t, &pages{}, export.CSVWriter{})

	report, err := svc.Lookup(context.Background(), "Monaco 2024", nil)
	require.ErrorIs(t, err, fetch.ErrNotFound)
	require.ErrorContains(t, err, "2024-monaco-grand-prix")
	require.False(t, report.Fetched)
	require.Empty(t, report.Exported)
	require.Len(t, tel.Filter(telemetry.KindWarning), 1)
}

func TestLookupEmptyTableIsNotExported(t *testing.T) {
	p := &pages{bodies: map[string]string{
		"2024-monaco-grand-prix": `<table class="results"><tr><th>Pos</th></tr><tr><td>1</td><td>short</td></tr></table>`,
		"2023-monaco-grand-prix": `<p>No results yet</p>`,
	}}
	svc, _, dir := newService(t, p, export.CSVWriter{})

	report, err := svc.Lookup(context.Background(), "monaco 2024", nil)
	require.NoError(t, err)
	require.Equal(t, extract.StatusEmptyTable, report.Extraction.Status)
	require.Empty(t, report.Exported)

	report, err = svc.Lookup(context.Background(), "monaco 2023", nil)
	require.NoError(t, err)
	require.Equal(t, extract.StatusNoTable, report.Extraction.Status)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestExportContinuesPastFailingWriter(t *testing.T) {
	p := &pages{bodies: map[string]string{"2024-monaco-grand-prix": resultsPage}}
	svc, tel, dir := newService(t, p, failingWriter{}, export.CSVWriter{})

	report, err := svc.Lookup(context.Background(), "monaco 2024", nil)
	require.ErrorContains(t, err, "export broken: disk full")
	require.Equal(t, []string{filepath.Join(dir, "2024_monaco-grand-prix_results.csv")}, report.Exported)
	require.Len(t, tel.Filter(telemetry.KindBroken), 1)
}
