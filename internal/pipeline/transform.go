package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/forecast-etl/internal/domain"
)

// TopicFunc picks the sink topic for a cadence.
type TopicFunc func(domain.Cadence) string

// ForecastTransformer implements Transformer: it decodes an Open-Meteo body,
// normalizes it with domain.Parser, and serializes one event per row.
type ForecastTransformer struct {
	parser domain.Parser
	topic  TopicFunc
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewTransformer creates a ForecastTransformer. A nil clock uses the real
// clock and a nil logger uses slog.Default.
func NewTransformer(parser domain.Parser, topic TopicFunc, clock clockwork.Clock, logger *slog.Logger) *ForecastTransformer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastTransformer{
		parser: parser,
		topic:  topic,
		clock:  clock,
		logger: logger,
	}
}

// Transform returns every row of the response or an error; it never returns
// a partial set.
func (t *ForecastTransformer) Transform(_ context.Context, runID string, raw domain.RawResponse) ([]domain.OutputEvent, error) {
	switch raw.Cadence {
	case domain.CadenceHourly:
		return t.hourly(runID, raw)
	case domain.CadenceDaily:
		return t.daily(runID, raw)
	default:
		return nil, fmt.Errorf("unsupported cadence %q", raw.Cadence)
	}
}

// HourlyRows decodes and normalizes an hourly body into storage rows.
func (t *ForecastTransformer) HourlyRows(runID string, loc domain.Location, body []byte) ([]domain.HourlyWeatherRow, error) {
	var payload domain.RawHourlyForecast
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, decodeError("hourly", err)
	}
	forecasts, err := t.parser.ParseHourly(&payload)
	if err != nil {
		return nil, fmt.Errorf("parse hourly forecast for %s: %w", loc.ID, err)
	}

	now := t.clock.Now().UTC()
	rows := make([]domain.HourlyWeatherRow, len(forecasts))
	for i := range forecasts {
		rows[i] = domain.NewHourlyWeatherRow(loc.ID, &forecasts[i])
		rows[i].RunID = runID
		rows[i].ProcessedAt = now
	}
	t.logger.Debug("normalized hourly forecast", "location_id", loc.ID, "timezone", payload.Timezone, "rows", len(rows))
	return rows, nil
}

// DailyRows decodes and normalizes a daily body into storage rows.
func (t *ForecastTransformer) DailyRows(runID string, loc domain.Location, body []byte) ([]domain.DailyWeatherRow, error) {
	var payload domain.RawDailyForecast
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, decodeError("daily", err)
	}
	forecasts, err := t.parser.ParseDaily(&payload)
	if err != nil {
		return nil, fmt.Errorf("parse daily forecast for %s: %w", loc.ID, err)
	}

	now := t.clock.Now().UTC()
	rows := make([]domain.DailyWeatherRow, len(forecasts))
	for i := range forecasts {
		rows[i] = domain.NewDailyWeatherRow(loc.ID, &forecasts[i])
		rows[i].RunID = runID
		rows[i].ProcessedAt = now
	}
	t.logger.Debug("normalized daily forecast", "location_id", loc.ID, "timezone", payload.Timezone, "rows", len(rows))
	return rows, nil
}

func (t *ForecastTransformer) hourly(runID string, raw domain.RawResponse) ([]domain.OutputEvent, error) {
	rows, err := t.HourlyRows(runID, raw.Location, raw.Body)
	if err != nil {
		return nil, err
	}
	topic := t.topic(domain.CadenceHourly)
	out := make([]domain.OutputEvent, len(rows))
	for i, row := range rows {
		if out[i], err = domain.SerializeHourlyRow(topic, row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (t *ForecastTransformer) daily(runID string, raw domain.RawResponse) ([]domain.OutputEvent, error) {
	rows, err := t.DailyRows(runID, raw.Location, raw.Body)
	if err != nil {
		return nil, err
	}
	topic := t.topic(domain.CadenceDaily)
	out := make([]domain.OutputEvent, len(rows))
	for i, row := range rows {
		if out[i], err = domain.SerializeDailyRow(topic, row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decodeError tags JSON failures as malformed payloads. Column errors already
// carry the sentinel.
func decodeError(cadence string, err error) error {
	if errors.Is(err, domain.ErrMalformedPayload) {
		return fmt.Errorf("decode %s response: %w", cadence, err)
	}
	return fmt.Errorf("%w: decode %s response: %v", domain.ErrMalformedPayload, cadence, err)
}
