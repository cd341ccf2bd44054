package resolver

import (
	"context"
	"fmt"
	"pitwall-results/internal/components/assert"
	"pitwall-results/internal/components/chrono"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race"
	"pitwall-results/internal/race/catalog"
	"pitwall-results/internal/race/query"
	"slices"
)

const (
	report_resolver_resolve = "resolver.resolve"
	report_resolver_select  = "resolver.select"
)

const (
	// DefaultThreshold is the minimum similarity for an alias to be offered as a candidate.
	DefaultThreshold = 0.6
	// DefaultMaxCandidates caps how many candidates are offered.
	DefaultMaxCandidates = 5
	// MinThreshold is the lowest threshold WithThreshold accepts.
	MinThreshold = 0.5
)

type Outcome int

const (
	OutcomeResolved Outcome = iota
	// OutcomeAmbiguous means there was no exact match but some aliases were similar enough.
	OutcomeAmbiguous
	OutcomeCancelled
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeAmbiguous:
		return "ambiguous"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeNotFound:
		return "not found"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

type NotFoundReason int

const (
	ReasonNone NotFoundReason = iota
	ReasonMissingYear
	ReasonMissingName
	ReasonNoMatch
)

// Candidate is a catalog alias similar to, but not the same as, the normalized name.
type Candidate struct {
	Alias string
	Slug  string
	Score float64
}

// Resolution is the result of resolving one line of input.
type Resolution struct {
	Outcome Outcome
	Query   query.Query
	// Race is only set when Outcome is OutcomeResolved.
	Race race.ResolvedRace
	// Candidates is set when Outcome is OutcomeAmbiguous, and kept when a selection is made
	// or cancelled.
	Candidates []Candidate
	Reason     NotFoundReason
}

// Message describes the outcome in a sentence suitable to show to the user.
func (r Resolution) Message() string {
	switch r.Outcome {
	case OutcomeResolved:
		return fmt.Sprintf("resolved to %s (from %q)", r.Race.Path(), r.Race.Alias)
	case OutcomeAmbiguous:
		return fmt.Sprintf("%d possible races match %q", len(r.Candidates), r.Query.Name)
	case OutcomeCancelled:
		return "selection cancelled"
	}
	switch r.Reason {
	case ReasonMissingYear:
		return fmt.Sprintf("no year found in input, include a year between %d and the current year (e.g. 2024)", query.MinYear)
	case ReasonMissingName:
		return "could not identify race name, please try again"
	}
	return fmt.Sprintf("could not find race matching %q in %d", r.Query.Name, r.Query.Year)
}

// Selector asks someone to pick one of several candidates.
//
// note: fault injection point
type Selector interface {
	// SelectOne returns a 1-based index into `candidates`, or 0 to cancel.
	SelectOne(ctx context.Context, year int, candidates []Candidate) (int, error)
}

// SelectorFunc adapts a function to a Selector.
type SelectorFunc func(ctx context.Context, year int, candidates []Candidate) (int, error)

func (f SelectorFunc) SelectOne(ctx context.Context, year int, candidates []Candidate) (int, error) {
	return f(ctx, year, candidates)
}

// Resolver turns free-form text into a ResolvedRace.
type Resolver struct {
	catalog       catalog.Catalog
	clock         chrono.API
	tel           telemetry.API
	scorer        Scorer
	threshold     float64
	maxCandidates int
}

type Option func(r *Resolver)

func WithScorer(scorer Scorer) Option {
	return func(r *Resolver) {
		if scorer != nil {
			r.scorer = scorer
		}
	}
}

// WithThreshold is clamped to [MinThreshold, 1], zero or less keeps the default.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		if threshold > 0 {
			r.threshold = max(MinThreshold, min(threshold, 1))
		}
	}
}

// WithMaxCandidates can lower the cap but never raise it above DefaultMaxCandidates.
func WithMaxCandidates(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxCandidates = min(n, DefaultMaxCandidates)
		}
	}
}

func New(c catalog.Catalog, clock chrono.API, tel telemetry.API, options ...Option) Resolver {
	assert.NotNil(clock, "clock")
	assert.NotNil(tel, "tel")

	r := Resolver{
		catalog:       c,
		clock:         clock,
		tel:           telemetry.NewScopedAPI("resolver", tel),
		scorer:        SequenceRatio,
		threshold:     DefaultThreshold,
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range options {
		opt(&r)
	}
	return r
}

// Candidates scores every alias against `name` and returns those at or above the threshold,
// best first. Equal scores keep catalog definition order.
func (r Resolver) Candidates(name string) []Candidate {
	var out []Candidate
	for _, a := range r.catalog.Aliases() {
		score := r.scorer(a.Name, name)
		if score < r.threshold {
			continue
		}
		out = append(out, Candidate{Alias: a.Name, Slug: a.Slug, Score: score})
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	if len(out) > r.maxCandidates {
		out = out[:r.maxCandidates]
	}
	return out
}

// Match resolves `raw` without any interaction, a near miss comes back as OutcomeAmbiguous.
func (r Resolver) Match(raw string) Resolution {
	q := query.Parse(raw, r.clock.Now())
	res := Resolution{Query: q}

	if !q.HasYear {
		res.Outcome = OutcomeNotFound
		res.Reason = ReasonMissingYear
		return res
	}
	if q.Name == "" {
		res.Outcome = OutcomeNotFound
		res.Reason = ReasonMissingName
		return res
	}

	slug, ok := r.catalog.Lookup(q.Name)
	if ok {
		res.Outcome = OutcomeResolved
		res.Race = race.ResolvedRace{Year: q.Year, Slug: slug, Alias: q.Name}
		return res
	}

	res.Candidates = r.Candidates(q.Name)
	if len(res.Candidates) == 0 {
		res.Outcome = OutcomeNotFound
		res.Reason = ReasonNoMatch
		return res
	}
	res.Outcome = OutcomeAmbiguous
	return res
}

// Resolve is Match followed, when the result is ambiguous, by asking `selector` to choose.
// A selection of 0 or outside [1, len(candidates)] cancels. The returned error is only ever
// an error from the selector, in which case the outcome is OutcomeCancelled.
func (r Resolver) Resolve(ctx context.Context, raw string, selector Selector) (Resolution, error) {
	res := r.Match(raw)
	r.tel.ReportDebug(report_resolver_resolve, raw, res.Outcome.String(), res.Query.Name)
	if res.Outcome != OutcomeAmbiguous {
		return res, nil
	}
	assert.NotNil(selector, "selector")

	choice, err := selector.SelectOne(ctx, res.Query.Year, res.Candidates)
	if err != nil {
		r.tel.ReportWarning(report_resolver_select, err)
		res.Outcome = OutcomeCancelled
		return res, fmt.Errorf("select candidate: %w", err)
	}
	if choice < 1 || choice > len(res.Candidates) {
		res.Outcome = OutcomeCancelled
		return res, nil
	}

	chosen := res.Candidates[choice-1]
	res.Outcome = OutcomeResolved
	res.Race = race.ResolvedRace{
		Year:  res.Query.Year,
		Slug:  chosen.Slug,
		Alias: chosen.Alias,
	}
	return res, nil
}
