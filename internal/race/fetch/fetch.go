package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"pitwall-results/internal/components/assert"
	"pitwall-results/internal/components/telemetry"
	"pitwall-results/internal/race"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("pitwall/race/fetch")

const (
	report_fetcher_fetch = "fetcher.fetch"
)

var (
	ErrTimeout    = errors.New("request timed out")
	ErrConnection = errors.New("could not connect")
	ErrNotFound   = errors.New("race not found at this url")
	ErrTransport  = errors.New("request failed")
)

// StatusError is a non-2xx response other than 404.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d %s", e.Code, http.StatusText(e.Code))
}

const (
	DefaultBaseUrl           = "https://pitwall.app"
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 2
	DefaultUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

type Options struct {
	BaseUrl string
	// Timeout bounds a whole request, including reading the body.
	Timeout           time.Duration
	RequestsPerSecond float64
	UserAgent         string
	CloudflareBypass  bool
	// Output receives every http exchange when set.
	Output telemetry.InstrumentOutput
}

// Fetcher downloads race result pages. It never retries.
type Fetcher struct {
	baseUrl *url.URL
	http    *resty.Client
	tel     telemetry.API
}

func NewFetcher(opts Options, tel telemetry.API) (*Fetcher, error) {
	assert.NotNil(tel, "tel")
	tel = telemetry.NewScopedAPI("fetch", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	baseUrl, err := url.Parse(strings.TrimSuffix(opts.BaseUrl, "/"))
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", opts.BaseUrl)
	}

	client := resty.New()
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	// burst >= 1 just means that no requests will be dropped
	limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, tel, opts.Output)

	return &Fetcher{
		baseUrl: baseUrl,
		http:    client,
		tel:     tel,
	}, nil
}

// URL is the results page of a race, `<base>/races/<year>-<slug>`.
func (f *Fetcher) URL(r race.ResolvedRace) string {
	return f.baseUrl.JoinPath("races", r.Path()).String()
}

// Fetch returns the body of the results page of a race.
//
// Failures are always one of ErrTimeout, ErrConnection, ErrNotFound, *StatusError or
// ErrTransport, check them with errors.Is / errors.As.
func (f *Fetcher) Fetch(ctx context.Context, r race.ResolvedRace) ([]byte, error) {
	link := f.URL(r)

	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	res, err := f.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		err = classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		f.tel.ReportBroken(report_fetcher_fetch, err, link)
		return nil, err
	}

	span.SetAttributes(attribute.Int("status", res.StatusCode()))
	switch {
	case res.StatusCode() == http.StatusNotFound:
		span.SetStatus(codes.Error, "not found")
		f.tel.ReportWarning(report_fetcher_fetch, ErrNotFound, link)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, link)
	case res.IsError() || res.StatusCode() >= 300:
		err := &StatusError{Code: res.StatusCode()}
		span.SetStatus(codes.Error, err.Error())
		f.tel.ReportBroken(report_fetcher_fetch, err, link)
		return nil, err
	}

	return res.Body(), nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
