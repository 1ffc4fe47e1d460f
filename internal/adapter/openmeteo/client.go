package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sharedretry "github.com/couchcryptid/storm-data-shared/retry"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/forecast-etl/internal/config"
	"github.com/couchcryptid/forecast-etl/internal/domain"
	"github.com/couchcryptid/forecast-etl/internal/measure"
	"github.com/couchcryptid/forecast-etl/internal/observability"
)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errStatus      = errors.New("unexpected status code")

	// ErrCircuitOpen is returned without contacting the API while the
	// breaker is open.
	ErrCircuitOpen = errors.New("open-meteo circuit breaker open")
)

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	ForecastDays int

	// Token bucket shared by all requests from this client.
	RateBurst  int
	RateRefill time.Duration

	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// OptionsFromConfig maps service configuration to client options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:        cfg.OpenMeteoBaseURL,
		Timeout:        cfg.OpenMeteoTimeout,
		ForecastDays:   cfg.ForecastDays,
		RateBurst:      cfg.RateLimitBurst,
		RateRefill:     cfg.RateLimitRefill,
		MaxRetries:     cfg.OpenMeteoMaxRetries,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

// Client fetches raw forecast bodies from the Open-Meteo forecast API.
// It implements pipeline.Fetcher.
type Client struct {
	opts       Options
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an Open-Meteo client.
func NewClient(opts Options, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Every(opts.RateRefill), opts.RateBurst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openmeteo",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 5
			},
			// A rejected request says nothing about upstream health.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errStatus)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch downloads the forecast for one location and cadence. Timestamps in
// the body are local to the location (timezone=auto).
func (c *Client) Fetch(ctx context.Context, loc domain.Location, cadence domain.Cadence) (domain.RawResponse, error) {
	u, err := c.forecastURL(loc, cadence)
	if err != nil {
		return domain.RawResponse{}, err
	}

	start := time.Now()
	body, err := c.getWithRetry(ctx, u)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("fetch %s forecast for %s: %w", cadence, loc.ID, err)
	}

	c.metrics.PayloadBytes.Observe(float64(len(body)))
	c.logger.Debug("fetched forecast",
		"location", loc.ID,
		"cadence", cadence,
		"size", measure.FromBytes(uint64(len(body))).Pretty(),
	)
	return domain.RawResponse{Location: loc, Cadence: cadence, Body: body}, nil
}

func (c *Client) forecastURL(loc domain.Location, cadence domain.Cadence) (string, error) {
	base, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	q.Set("timezone", "auto")
	q.Set("timeformat", "iso8601")
	if c.opts.ForecastDays > 0 {
		q.Set("forecast_days", strconv.Itoa(c.opts.ForecastDays))
	}
	switch cadence {
	case domain.CadenceHourly:
		q.Set("hourly", strings.Join(domain.HourlyVariables(), ","))
	case domain.CadenceDaily:
		q.Set("daily", strings.Join(domain.DailyVariables(), ","))
	default:
		return "", fmt.Errorf("unsupported cadence %q", cadence)
	}

	base.RawQuery = q.Encode()
	return base.String(), nil
}

// getWithRetry performs a rate-limited GET through the circuit breaker,
// retrying rate limits, server errors, and network failures with
// exponential backoff.
func (c *Client) getWithRetry(ctx context.Context, u string) ([]byte, error) {
	backoff := c.opts.InitialBackoff
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}

		result, err := c.breaker.Execute(func() (any, error) {
			return c.get(ctx, u)
		})
		if err == nil {
			return result.([]byte), nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retryable(err) || attempt >= c.opts.MaxRetries {
			return nil, err
		}

		c.metrics.FetchRetries.Inc()
		c.logger.Warn("open-meteo request failed, retrying", "error", err, "attempt", attempt+1, "backoff", backoff)
		if !sharedretry.SleepWithContext(ctx, backoff) {
			return nil, ctx.Err()
		}
		backoff = sharedretry.NextBackoff(backoff, c.opts.MaxBackoff)
	}
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errRateLimited
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", errServerError, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d: %s", errStatus, resp.StatusCode, apiReason(body))
	}
	return body, nil
}

// retryable reports whether err is worth another attempt. Client errors
// other than 429 mean the request itself is wrong.
func retryable(err error) bool {
	return !errors.Is(err, errStatus)
}

// apiReason extracts the "reason" field Open-Meteo sends with 400 responses,
// falling back to the raw body.
func apiReason(body []byte) string {
	var e struct {
		Reason string `json:"reason"`
	}
	if json.Unmarshal(body, &e) == nil && e.Reason != "" {
		return e.Reason
	}
	return strings.TrimSpace(string(body))
}
