package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn_RejectsNullEntries(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		decode  func([]byte) error
		wantMsg string
	}{
		{
			name:    "hourly float",
			body:    `{"hourly":{"time":["2024-06-01T00:00","2024-06-01T01:00"],"temperature_2m":[null,13.8]}}`,
			decode:  decodeHourly,
			wantMsg: "column temperature_2m: malformed forecast payload: null at index 0",
		},
		{
			name:    "hourly percentage",
			body:    `{"hourly":{"time":["2024-06-01T00:00","2024-06-01T01:00"],"cloud_cover":[20,null]}}`,
			decode:  decodeHourly,
			wantMsg: "column cloud_cover: malformed forecast payload: null at index 1",
		},
		{
			name:    "hourly weather code",
			body:    `{"hourly":{"time":["2024-06-01T00:00","2024-06-01T01:00"],"weather_code":[null,61]}}`,
			decode:  decodeHourly,
			wantMsg: "column weather_code: malformed forecast payload: null at index 0",
		},
		{
			name:    "hourly direction",
			body:    `{"hourly":{"time":["2024-06-01T00:00"],"wind_direction_10m":[null]}}`,
			decode:  decodeHourly,
			wantMsg: "column wind_direction_10m: malformed forecast payload: null at index 0",
		},
		{
			name:    "hourly time",
			body:    `{"hourly":{"time":[null]}}`,
			decode:  decodeHourly,
			wantMsg: "column time: malformed forecast payload: null at index 0",
		},
		{
			name:    "daily float",
			body:    `{"daily":{"time":["2024-06-01"],"temperature_2m_max":[null]}}`,
			decode:  decodeDaily,
			wantMsg: "column temperature_2m_max: malformed forecast payload: null at index 0",
		},
		{
			name:    "daily percentage",
			body:    `{"daily":{"time":["2024-06-01","2024-06-02"],"precipitation_probability_max":[80,null]}}`,
			decode:  decodeDaily,
			wantMsg: "column precipitation_probability_max: malformed forecast payload: null at index 1",
		},
		{
			name:    "daily weather code",
			body:    `{"daily":{"time":["2024-06-01"],"weather_code":[null]}}`,
			decode:  decodeDaily,
			wantMsg: "column weather_code: malformed forecast payload: null at index 0",
		},
		{
			name:    "daily sunrise",
			body:    `{"daily":{"time":["2024-06-01"],"sunrise":[null]}}`,
			decode:  decodeDaily,
			wantMsg: "column sunrise: malformed forecast payload: null at index 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode([]byte(tt.body))
			require.ErrorIs(t, err, ErrMalformedPayload)
			assert.ErrorContains(t, err, tt.wantMsg)
			assert.Equal(t, "malformed_payload", ErrorKind(err))
		})
	}
}

func decodeHourly(b []byte) error {
	var raw RawHourlyForecast
	return json.Unmarshal(b, &raw)
}

func decodeDaily(b []byte) error {
	var raw RawDailyForecast
	return json.Unmarshal(b, &raw)
}

func TestColumn_NullColumnFailsLengthCheck(t *testing.T) {
	raw := hourlyFixture("UTC", 2)
	body, err := json.Marshal(raw)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(body, &generic))
	generic["hourly"].(map[string]any)["visibility"] = nil
	body, err = json.Marshal(generic)
	require.NoError(t, err)

	var decoded RawHourlyForecast
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Nil(t, decoded.Hourly.Visibility)

	got, err := Parser{}.ParseHourly(&decoded)
	require.ErrorIs(t, err, ErrColumnLength)
	assert.ErrorContains(t, err, "visibility has 0 entries, time has 2")
	assert.Nil(t, got)
}

func TestColumn_DecodesValues(t *testing.T) {
	var c Column[uint8]
	require.NoError(t, json.Unmarshal([]byte(`[0, 50, 100]`), &c))
	assert.Equal(t, Column[uint8]{0, 50, 100}, c)
	assert.Equal(t, 3, c.Len())

	assert.Error(t, json.Unmarshal([]byte(`[300]`), &c), "out of range for uint8")
}
