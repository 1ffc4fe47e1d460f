package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/forecast-etl/internal/domain"
	"github.com/couchcryptid/forecast-etl/internal/observability"
	"github.com/couchcryptid/forecast-etl/internal/pipeline"
)

// --- mocks ---

type mockFetcher struct {
	fail     map[string]error // by location ID
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	delay    time.Duration
}

func (m *mockFetcher) Fetch(ctx context.Context, loc domain.Location, cadence domain.Cadence) (domain.RawResponse, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		seen := m.maxSeen.Load()
		if n <= seen || m.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return domain.RawResponse{}, ctx.Err()
		}
	}
	if err := m.fail[loc.ID]; err != nil {
		return domain.RawResponse{}, err
	}
	return domain.RawResponse{Location: loc, Cadence: cadence, Body: []byte(loc.ID)}, nil
}

type mockTransformer struct {
	err    error
	rows   int
	mu     sync.Mutex
	runIDs map[string]bool
}

func (m *mockTransformer) Transform(_ context.Context, runID string, raw domain.RawResponse) ([]domain.OutputEvent, error) {
	m.mu.Lock()
	if m.runIDs == nil {
		m.runIDs = map[string]bool{}
	}
	m.runIDs[runID] = true
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	rows := m.rows
	if rows == 0 {
		rows = 2
	}
	out := make([]domain.OutputEvent, rows)
	for i := range out {
		out[i] = domain.OutputEvent{
			Topic: string(raw.Cadence),
			Key:   []byte(fmt.Sprintf("%s|%d", raw.Location.ID, i)),
		}
	}
	return out, nil
}

type mockLoader struct {
	mu       sync.Mutex
	loaded   []domain.OutputEvent
	failures int // fail this many calls before succeeding
	calls    int
}

func (m *mockLoader) LoadBatch(_ context.Context, events []domain.OutputEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return errors.New("broker unavailable")
	}
	m.loaded = append(m.loaded, events...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func locations(ids ...string) []domain.Location {
	out := make([]domain.Location, len(ids))
	for i, id := range ids {
		out[i] = domain.Location{ID: id}
	}
	return out
}

func newPipeline(f pipeline.Fetcher, tf pipeline.Transformer, l pipeline.Loader, opts pipeline.Options) (*pipeline.Pipeline, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	opts.InitialBackoff = time.Millisecond
	opts.MaxBackoff = 2 * time.Millisecond
	return pipeline.New(f, tf, l, opts, discardLogger(), m, nil), m
}

// --- tests ---

func TestPipeline_RunOnce_HappyPath(t *testing.T) {
	ldr := &mockLoader{}
	tfm := &mockTransformer{}
	p, m := newPipeline(&mockFetcher{}, tfm, ldr, pipeline.Options{
		Locations: locations("berlin", "oslo"),
		Cadences:  []domain.Cadence{domain.CadenceHourly, domain.CadenceDaily},
	})

	require.Error(t, p.CheckReadiness(context.Background()))

	sum, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Locations)
	assert.Equal(t, 0, sum.Failed)
	assert.Equal(t, 8, sum.Rows)
	assert.Equal(t, "success", sum.Outcome())
	assert.NotEmpty(t, sum.RunID)
	assert.Len(t, ldr.loaded, 8)
	assert.Equal(t, map[string]bool{sum.RunID: true}, tfm.runIDs)
	assert.NoError(t, p.CheckReadiness(context.Background()))

	assert.InDelta(t, 4, testutil.ToFloat64(m.RowsProduced.WithLabelValues("hourly")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.RowsProduced.WithLabelValues("daily")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SyncRuns.WithLabelValues("success")), 0)
}

func TestPipeline_RunOnce_FailingLocationIsIsolated(t *testing.T) {
	ldr := &mockLoader{}
	f := &mockFetcher{fail: map[string]error{"oslo": errors.New("connection refused")}}
	p, m := newPipeline(f, &mockTransformer{}, ldr, pipeline.Options{
		Locations:   locations("berlin", "oslo", "rome"),
		Cadences:    []domain.Cadence{domain.CadenceHourly},
		Concurrency: 3,
	})

	sum, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, "partial", sum.Outcome())
	assert.Len(t, ldr.loaded, 4)
	for _, evt := range ldr.loaded {
		assert.NotContains(t, string(evt.Key), "oslo")
	}
	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchErrors.WithLabelValues("hourly")), 0)
	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.Positive(t, testutil.ToFloat64(m.LastSyncTimestamp))
}

func TestPipeline_RunOnce_ParseErrorLoadsNothing(t *testing.T) {
	ldr := &mockLoader{}
	tfm := &mockTransformer{err: fmt.Errorf("parse hourly forecast for berlin: %w", domain.ErrAmbiguousLocalTime)}
	p, m := newPipeline(&mockFetcher{}, tfm, ldr, pipeline.Options{
		Locations: locations("berlin"),
		Cadences:  []domain.Cadence{domain.CadenceHourly},
	})

	sum, err := p.RunOnce(context.Background())
	require.ErrorIs(t, err, pipeline.ErrAllLocationsFailed)

	assert.Equal(t, "failed", sum.Outcome())
	assert.Empty(t, ldr.loaded)
	assert.Equal(t, 0, ldr.calls)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ParseErrors.WithLabelValues("hourly", "ambiguous_time")), 0)
	assert.Error(t, p.CheckReadiness(context.Background()))
	assert.Zero(t, testutil.ToFloat64(m.LastSyncTimestamp), "failed syncs leave the timestamp alone")
}

func TestPipeline_RunOnce_RetriesLoad(t *testing.T) {
	ldr := &mockLoader{failures: 2}
	p, m := newPipeline(&mockFetcher{}, &mockTransformer{rows: 3}, ldr, pipeline.Options{
		Locations: locations("berlin"),
		Cadences:  []domain.Cadence{domain.CadenceDaily},
	})

	sum, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 3, ldr.calls)
	assert.Len(t, ldr.loaded, 3)
	assert.InDelta(t, 2, testutil.ToFloat64(m.LoadErrors), 0)
}

func TestPipeline_RunOnce_LoadGivesUp(t *testing.T) {
	ldr := &mockLoader{failures: 100}
	p, _ := newPipeline(&mockFetcher{}, &mockTransformer{}, ldr, pipeline.Options{
		Locations:    locations("berlin"),
		Cadences:     []domain.Cadence{domain.CadenceHourly},
		LoadAttempts: 3,
	})

	_, err := p.RunOnce(context.Background())
	require.ErrorIs(t, err, pipeline.ErrAllLocationsFailed)
	assert.Equal(t, 3, ldr.calls)
}

func TestPipeline_RunOnce_BoundedConcurrency(t *testing.T) {
	f := &mockFetcher{delay: 10 * time.Millisecond}
	p, _ := newPipeline(f, &mockTransformer{}, &mockLoader{}, pipeline.Options{
		Locations:   locations("a", "b", "c", "d", "e", "f"),
		Cadences:    []domain.Cadence{domain.CadenceHourly},
		Concurrency: 2,
	})

	_, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, f.maxSeen.Load(), int32(2))
}

func TestPipeline_RunOnce_NoLocations(t *testing.T) {
	p, m := newPipeline(&mockFetcher{}, &mockTransformer{}, &mockLoader{}, pipeline.Options{
		Cadences: []domain.Cadence{domain.CadenceHourly},
	})

	sum, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "success", sum.Outcome())
	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.Positive(t, testutil.ToFloat64(m.LastSyncTimestamp))
}

func TestPipeline_RunOnce_ContextCancelled(t *testing.T) {
	ldr := &mockLoader{}
	p, _ := newPipeline(&mockFetcher{delay: time.Second}, &mockTransformer{}, ldr, pipeline.Options{
		Locations: locations("berlin", "oslo"),
		Cadences:  []domain.Cadence{domain.CadenceHourly},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.RunOnce(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ldr.loaded)
}
