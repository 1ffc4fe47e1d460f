package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	sharedretry "github.com/couchcryptid/storm-data-shared/retry"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/forecast-etl/internal/domain"
	"github.com/couchcryptid/forecast-etl/internal/observability"
)

// Fetcher downloads a raw forecast body for one location and cadence.
type Fetcher interface {
	Fetch(ctx context.Context, loc domain.Location, cadence domain.Cadence) (domain.RawResponse, error)
}

// Transformer converts a raw response into output events, all or nothing.
type Transformer interface {
	Transform(ctx context.Context, runID string, raw domain.RawResponse) ([]domain.OutputEvent, error)
}

// Loader writes output events to the destination.
type Loader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Options controls which forecasts a sync covers and how hard it tries.
type Options struct {
	Locations   []domain.Location
	Cadences    []domain.Cadence
	Concurrency int

	// Load retries use exponential backoff: start at InitialBackoff, double
	// each attempt, cap at MaxBackoff.
	LoadAttempts   int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (o *Options) setDefaults() {
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
	if o.LoadAttempts < 1 {
		o.LoadAttempts = 5
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = 200 * time.Millisecond
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = 5 * time.Second
	}
}

// Summary describes one completed sync.
type Summary struct {
	RunID     string
	Locations int
	Failed    int
	Rows      int
	Duration  time.Duration
}

// Outcome labels the sync for metrics: success, partial or failed.
func (s Summary) Outcome() string {
	switch {
	case s.Failed == 0:
		return "success"
	case s.Failed < s.Locations:
		return "partial"
	default:
		return "failed"
	}
}

// ErrAllLocationsFailed is returned by RunOnce when no location synced.
var ErrAllLocationsFailed = errors.New("every location failed to sync")

// Pipeline orchestrates the fetch-transform-load sync over all locations.
type Pipeline struct {
	fetcher     Fetcher
	transformer Transformer
	loader      Loader
	opts        Options
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, t Transformer, l Loader, opts Options, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	opts.setDefaults()
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		fetcher:     f,
		transformer: t,
		loader:      l,
		opts:        opts,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// CheckReadiness returns nil once a sync has loaded at least one location,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no successful forecast sync yet")
	}
	return nil
}

// RunOnce syncs every configured location. Locations run in parallel up to
// the configured concurrency and fail independently.
func (p *Pipeline) RunOnce(ctx context.Context) (Summary, error) {
	start := p.clock.Now()
	sum := Summary{RunID: uuid.NewString(), Locations: len(p.opts.Locations)}
	logger := p.logger.With("run_id", sum.RunID)
	logger.Info("sync started", "locations", sum.Locations, "cadences", p.opts.Cadences)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, p.opts.Concurrency)
	)
	for _, loc := range p.opts.Locations {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			mu.Lock()
			sum.Failed++
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			rows, err := p.syncLocation(ctx, sum.RunID, loc)

			mu.Lock()
			defer mu.Unlock()
			sum.Rows += rows
			if err != nil {
				sum.Failed++
				logger.Error("location sync failed", "location", loc.ID, "error", err)
			}
		}()
	}
	wg.Wait()

	sum.Duration = p.clock.Since(start)
	p.metrics.SyncDuration.Observe(sum.Duration.Seconds())
	p.metrics.SyncRuns.WithLabelValues(sum.Outcome()).Inc()

	if sum.Failed < sum.Locations || sum.Locations == 0 {
		p.ready.Store(true)
		p.metrics.LastSyncTimestamp.Set(float64(p.clock.Now().Unix()))
	}

	logger.Info("sync finished",
		"outcome", sum.Outcome(),
		"failed", sum.Failed,
		"rows", sum.Rows,
		"duration", sum.Duration,
	)

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	if sum.Locations > 0 && sum.Failed == sum.Locations {
		return sum, ErrAllLocationsFailed
	}
	return sum, nil
}

// syncLocation runs every cadence for one location. A failing cadence does
// not skip the others; the first error is returned.
func (p *Pipeline) syncLocation(ctx context.Context, runID string, loc domain.Location) (int, error) {
	var (
		rows     int
		firstErr error
	)
	for _, cadence := range p.opts.Cadences {
		n, err := p.syncForecast(ctx, runID, loc, cadence)
		rows += n
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if ctx.Err() != nil {
			break
		}
	}
	return rows, firstErr
}

func (p *Pipeline) syncForecast(ctx context.Context, runID string, loc domain.Location, cadence domain.Cadence) (int, error) {
	label := string(cadence)

	raw, err := p.fetcher.Fetch(ctx, loc, cadence)
	if err != nil {
		p.metrics.FetchErrors.WithLabelValues(label).Inc()
		return 0, err
	}
	p.metrics.ResponsesFetched.WithLabelValues(label).Inc()

	events, err := p.transformer.Transform(ctx, runID, raw)
	if err != nil {
		p.metrics.ParseErrors.WithLabelValues(label, domain.ErrorKind(err)).Inc()
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	if err := p.loadWithBackoff(ctx, events); err != nil {
		return 0, fmt.Errorf("load %s rows for %s: %w", cadence, loc.ID, err)
	}
	p.metrics.RowsProduced.WithLabelValues(label).Add(float64(len(events)))
	return len(events), nil
}

// loadWithBackoff retries failed writes until LoadAttempts is exhausted or
// the context ends.
func (p *Pipeline) loadWithBackoff(ctx context.Context, events []domain.OutputEvent) error {
	backoff := p.opts.InitialBackoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = p.loader.LoadBatch(ctx, events); err == nil {
			return nil
		}
		p.metrics.LoadErrors.Inc()
		if ctx.Err() != nil || attempt >= p.opts.LoadAttempts {
			return err
		}
		p.logger.Warn("load batch failed, retrying", "error", err, "attempt", attempt, "backoff", backoff)
		if !p.sleep(ctx, backoff) {
			return err
		}
		backoff = sharedretry.NextBackoff(backoff, p.opts.MaxBackoff)
	}
}

// sleep waits on the injected clock so tests can advance it.
func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
