package service

import (
	"context"
	"errors"
	"fmt"
	"pitwall-results/internal/components/assert"
	"pitwall-results/internal/components/chrono"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race"
	"pitwall-results/internal/race/export"
	"pitwall-results/internal/race/extract"
	"pitwall-results/internal/race/resolver"
	"time"
)

// PageFetcher downloads the results page of a race.
//
// note: fault injection point
type PageFetcher interface {
	Fetch(ctx context.Context, r race.ResolvedRace) ([]byte, error)
}

// PageFetcherFunc adapts a function to a PageFetcher.
type PageFetcherFunc func(ctx context.Context, r race.ResolvedRace) ([]byte, error)

func (f PageFetcherFunc) Fetch(ctx context.Context, r race.ResolvedRace) ([]byte, error) {
	return f(ctx, r)
}

const (
	report_service_lookup = "service.lookup"
	report_service_fetch  = "service.fetch"
	report_service_export = "service.export"
)

type coreAPIs struct {
	clock chrono.API
	tel   telemetry.API
}

// NewCoreAPIs initializes a collection of common APIs the service needs to run.
func NewCoreAPIs(options ...CoreAPIsOption) coreAPIs {
	cfg := coreAPIsConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	apis := coreAPIs{
		clock: chrono.NewStandardImpl(),
		tel:   telemetry.SlogAPI{},
	}
	if cfg.clock != nil {
		apis.clock = cfg.clock
	}
	if cfg.tel != nil {
		apis.tel = cfg.tel
	}

	apis.tel = telemetry.NewScopedAPI("service", apis.tel)
	return apis
}

type coreAPIsConfig struct {
	clock chrono.API
	tel   telemetry.API
}

type CoreAPIsOption func(cfg *coreAPIsConfig)

func WithCustomClock(clock chrono.API) CoreAPIsOption {
	return func(cfg *coreAPIsConfig) {
		cfg.clock = clock
	}
}

func WithCustomTelemetryAPI(tel telemetry.API) CoreAPIsOption {
	return func(cfg *coreAPIsConfig) {
		cfg.tel = tel
	}
}

// Service runs a query through resolution, fetching, extraction and export.
type Service struct {
	coreAPIs

	resolver  resolver.Resolver
	fetcher   PageFetcher
	extractor extract.Extractor
	writers   []export.Writer
	exportDir string
}

// NewService creates a Service, `writers` may be empty to skip exporting.
func NewService(
	coreAPIs coreAPIs,
	res resolver.Resolver,
	fetcher PageFetcher,
	writers []export.Writer,
	exportDir string,
) Service {
	assert.NotNil(fetcher, "page fetcher")

	return Service{
		coreAPIs:  coreAPIs,
		resolver:  res,
		fetcher:   fetcher,
		extractor: extract.NewExtractor(coreAPIs.tel),
		writers:   writers,
		exportDir: exportDir,
	}
}

// Report is everything that happened to one query.
type Report struct {
	Resolution resolver.Resolution
	// Fetched is false when the query never resolved.
	Fetched    bool
	FetchedAt  time.Time
	Extraction extract.Result
	// Exported holds the path of every file that was written.
	Exported []string
}

// Records is a shorthand for Extraction.Records.
func (r Report) Records() []race.Record {
	return r.Extraction.Records
}

// Lookup resolves `raw`, asking `selector` when it is ambiguous, then fetches, extracts and
// exports the results of the resolved race.
//
// An unresolved query is not an error, check Report.Resolution.Outcome. Fetch errors are
// returned as is (wrapped), export errors of every writer are joined, a writer failing does
// not stop the others.
func (s Service) Lookup(ctx context.Context, raw string, selector resolver.Selector) (Report, error) {
	report := Report{}

	resolution, err := s.resolver.Resolve(ctx, raw, selector)
	report.Resolution = resolution
	if err != nil {
		return report, err
	}
	if resolution.Outcome != resolver.OutcomeResolved {
		s.tel.ReportDebug(report_service_lookup, raw, resolution.Message())
		return report, nil
	}

	r := resolution.Race
	body, err := s.fetcher.Fetch(ctx, r)
	if err != nil {
		s.tel.ReportWarning(report_service_fetch, r.Path(), err)
		return report, fmt.Errorf("fetch %s: %w", r.Path(), err)
	}
	report.Fetched = true
	report.FetchedAt = s.clock.Now()

	report.Extraction, err = s.extractor.Extract(ctx, body)
	if err != nil {
		return report, fmt.Errorf("extract %s: %w", r.Path(), err)
	}
	if report.Extraction.Status != extract.StatusParsed {
		return report, nil
	}

	report.Exported, err = s.Export(ctx, r, report.Extraction.Records)
	return report, err
}

// Export runs every configured writer over `records`.
func (s Service) Export(ctx context.Context, r race.ResolvedRace, records []race.Record) ([]string, error) {
	var paths []string
	var errs []error
	for _, w := range s.writers {
		path, err := w.Export(ctx, s.exportDir, r, records)
		if err != nil {
			s.tel.ReportBroken(report_service_export, w.Format(), err)
			errs = append(errs, fmt.Errorf("export %s: %w", w.Format(), err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}
