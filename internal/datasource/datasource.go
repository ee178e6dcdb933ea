// Package datasource probes the public statistics APIs and normalizes each response, or its
// failure, into a Summary. Successful summaries are cached; failures never are.
package datasource

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"valinor/internal/metrics"
	"valinor/pkg/cache"
)

// Source identifiers, as they appear in a Result.
const (
	SourceINE       = "ine"
	SourceINESeries = "ine_series"
	SourceEurostat  = "eurostat"
	SourceBDE       = "banco_de_espana"
)

const (
	DefaultLimit   = 5
	DefaultTimeout = 20 * time.Second
)

// Summary is the normalized outcome of one source probe. On failure StatusCode is nil, Error
// is set and Sample is empty.
type Summary struct {
	Timestamp            string            `json:"timestamp"`
	StatusCode           *int              `json:"status_code"`
	Count                *int              `json:"count,omitempty"`
	Keys                 []string          `json:"keys,omitempty"`
	Sample               []map[string]any  `json:"sample"`
	Operations           []OperationSeries `json:"operations,omitempty"`
	PeriodicityHistogram map[string]int    `json:"periodicity_histogram,omitempty"`
	Error                *string           `json:"error,omitempty"`
}

// OK reports whether the probe succeeded.
func (s Summary) OK() bool { return s.Error == nil }

// Result maps a source identifier to its summary.
type Result map[string]Summary

// Endpoints holds the upstream URLs.
type Endpoints struct {
	INEBaseURL     string
	EurostatTOCURL string
	BDESeriesURL   string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		INEBaseURL:     "https://servicios.ine.es/wstempus/js/ES",
		EurostatTOCURL: "https://ec.europa.eu/eurostat/api/discover/toc",
		BDESeriesURL:   "https://api.bde.es/datos/series/SEC/SEC/O1_13_240500",
	}
}

type Probe struct {
	cache     cache.Backend
	client    *client
	endpoints Endpoints
	timeout   time.Duration
	now       func() time.Time
}

type Option func(*Probe)

func WithTimeout(d time.Duration) Option {
	return func(p *Probe) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithEndpoints overrides the upstream URLs; empty fields keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(p *Probe) {
		if e.INEBaseURL != "" {
			p.endpoints.INEBaseURL = e.INEBaseURL
		}
		if e.EurostatTOCURL != "" {
			p.endpoints.EurostatTOCURL = e.EurostatTOCURL
		}
		if e.BDESeriesURL != "" {
			p.endpoints.BDESeriesURL = e.BDESeriesURL
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Probe) {
		if now != nil {
			p.now = now
		}
	}
}

func New(c cache.Backend, opts ...Option) *Probe {
	p := &Probe{
		cache:     c,
		endpoints: DefaultEndpoints(),
		timeout:   DefaultTimeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.client = newClient(p.timeout)
	return p
}

// ProbeAll probes every source concurrently. A failing or panicking source only affects its
// own summary.
func (p *Probe) ProbeAll(ctx context.Context, limit int) Result {
	probes := []struct {
		source string
		run    func(context.Context) Summary
	}{
		{SourceINE, func(ctx context.Context) Summary { return p.FetchINEOperations(ctx, limit) }},
		{SourceINESeries, func(ctx context.Context) Summary { return p.FetchINESeries(ctx, limit) }},
		{SourceEurostat, func(ctx context.Context) Summary { return p.FetchEurostatCatalog(ctx, limit) }},
		{SourceBDE, p.FetchBDESample},
	}

	summaries := make([]Summary, len(probes))
	var g errgroup.Group
	for i, pr := range probes {
		i, pr := i, pr
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					summaries[i] = p.failed(pr.source, fmt.Errorf("panic: %v", r))
				}
			}()
			summaries[i] = pr.run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	out := make(Result, len(probes))
	for i, pr := range probes {
		out[pr.source] = summaries[i]
	}
	return out
}

// cached serves key from the cache or runs fetch. Only successful summaries are stored.
func (p *Probe) cached(ctx context.Context, source, key string, fetch func(context.Context) (Summary, error)) Summary {
	var hit Summary
	ok, err := p.cache.Get(ctx, key, &hit)
	if err != nil {
		log.Printf("[valinor][probe] WARN cache read %s failed, treating as miss: %v", key, err)
	} else if ok {
		metrics.IncProbe(source, metrics.OutcomeHit)
		return hit
	}

	start := time.Now()
	summary, err := fetch(ctx)
	metrics.ObserveUpstream(source, time.Since(start))
	if err != nil {
		return p.failed(source, err)
	}

	if err := p.cache.Set(ctx, key, summary); err != nil {
		log.Printf("[valinor][probe] WARN cache write %s failed: %v", key, err)
	}
	metrics.IncProbe(source, metrics.OutcomeSuccess)
	return summary
}

func (p *Probe) failed(source string, err error) Summary {
	log.Printf("[valinor][probe] WARN %s request failed: %v", source, err)
	metrics.IncProbe(source, metrics.OutcomeFailure)
	msg := err.Error()
	return Summary{
		Timestamp: p.timestamp(),
		Error:     &msg,
		Sample:    []map[string]any{},
	}
}

func (p *Probe) success(status int) Summary {
	return Summary{
		Timestamp:  p.timestamp(),
		StatusCode: &status,
		Sample:     []map[string]any{},
	}
}

func (p *Probe) timestamp() string {
	return p.now().UTC().Format(time.RFC3339)
}

func cacheKey(prefix string, limit int) string {
	return prefix + ":" + strconv.Itoa(limit)
}

func intPtr(n int) *int { return &n }
