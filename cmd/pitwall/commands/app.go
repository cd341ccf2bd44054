package commands

import (
	"context"
	"log/slog"
	"pitwall-results/internal/components/chrono"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race/catalog"
	"pitwall-results/internal/race/export"
	"pitwall-results/internal/race/fetch"
	"pitwall-results/internal/race/resolver"
	"pitwall-results/internal/service"
	"time"

	"github.com/spf13/cobra"
)

// exportFlags override the export section of the config.
type exportFlags struct {
	formats  *[]string
	out      *string
	noExport *bool
}

func addExportFlags(cmd *cobra.Command) exportFlags {
	return exportFlags{
		formats:  cmd.Flags().StringSlice("format", nil, "Export formats: csv, xlsx, sqlite, markdown."),
		out:      cmd.Flags().String("out", "", "The directory to export into."),
		noExport: cmd.Flags().Bool("no-export", false, "Only print results, write nothing."),
	}
}

func (f exportFlags) apply(cfg *Config) {
	if len(*f.formats) > 0 {
		cfg.Export.Formats = *f.formats
	}
	if *f.out != "" {
		cfg.Export.Dir = *f.out
	}
	if *f.noExport {
		cfg.Export.Formats = nil
	}
}

type app struct {
	otel    telemetry.Telemetry
	service service.Service
}

func newApp(ctx context.Context, flags exportFlags) app {
	cfg, err := readConfig(*configPath)
	if err != nil {
		fatal("failed to read config", err)
	}
	flags.apply(&cfg)

	otel, err := telemetry.Setup(ctx, "pitwall", cfg.Telemetry)
	if err != nil {
		fatal("failed to setup telemetry", err)
	}

	var tel telemetry.API = telemetry.SlogAPI{}
	if otel.MeterProvider != nil {
		metered, err := telemetry.NewMeteredAPI("pitwall", tel)
		if err != nil {
			fatal("failed to create metered telemetry", err)
		}
		tel = metered
	}

	scorer, err := resolver.ScorerByName(cfg.Similarity.Scorer)
	if err != nil {
		fatal("invalid similarity config", err)
	}
	clock := chrono.NewStandardImpl()
	res := resolver.New(
		catalog.Default(),
		clock,
		tel,
		resolver.WithScorer(scorer),
		resolver.WithThreshold(cfg.Similarity.Threshold),
		resolver.WithMaxCandidates(cfg.Similarity.MaxCandidates),
	)

	var output telemetry.InstrumentOutput
	if *dumpHttp != "" {
		fsOutput, err := telemetry.NewFilesystemOutput(*dumpHttp, tel)
		if err != nil {
			fatal("failed to prepare http dump directory", err)
		}
		output = fsOutput
	}
	fetcher, err := fetch.NewFetcher(fetch.Options{
		BaseUrl:           cfg.BaseUrl,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         cfg.UserAgent,
		CloudflareBypass:  cfg.CloudflareBypass,
		Output:            output,
	}, tel)
	if err != nil {
		fatal("failed to create fetcher", err)
	}

	writers, err := export.WritersFor(cfg.Export.Formats, cfg.Export.SqlitePath)
	if err != nil {
		fatal("invalid export config", err)
	}

	slog.Debug("config loaded", "base_url", cfg.BaseUrl, "formats", cfg.Export.Formats, "dir", cfg.Export.Dir)

	core := service.NewCoreAPIs(
		service.WithCustomClock(clock),
		service.WithCustomTelemetryAPI(tel),
	)
	return app{
		otel:    otel,
		service: service.NewService(core, res, fetcher, writers, cfg.Export.Dir),
	}
}

func (a app) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second*5)
	defer cancel()
	err := a.otel.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}
