package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDaily(t *testing.T) {
	got, err := Parser{}.ParseDaily(dailyFixture("Europe/Berlin", 3))
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, f := range got {
		x := float64(i)
		assert.Equal(t, time.Date(2024, 6, i+1, 0, 0, 0, 0, time.UTC), f.Date.Time)
		assert.Equal(t, time.Date(2024, 6, i+1, 2, 45, 0, 0, time.UTC), f.Sunrise)
		assert.Equal(t, time.Date(2024, 6, i+1, 19, 30, 0, 0, time.UTC), f.Sunset)
		assert.Equal(t, Overcast, f.WeatherCode)
		assert.InDelta(t, 25+x, f.Temperature2mMax.Celsius(), floatTolerance)
		assert.InDelta(t, 15+x, f.Temperature2mMin.Celsius(), floatTolerance)
		assert.InDelta(t, (3+x)/1000, f.PrecipitationSum.Meters(), floatTolerance)
		assert.InDelta(t, x/100, f.SnowfallSum.Meters(), floatTolerance)
		assert.Equal(t, time.Duration(2+i)*time.Hour, f.PrecipitationHours)
		assert.Equal(t, time.Duration(8+i)*time.Hour, f.SunshineDuration)
		assert.Equal(t, time.Duration(16+i)*time.Hour, f.DaylightDuration)
		assert.InDelta(t, (80+x)/100, f.PrecipitationProbabilityMax.Fraction(), floatTolerance)
		assert.InDelta(t, 10+x/3.6, f.WindSpeed10mMax.MetersPerSecond(), floatTolerance)
		assert.InDelta(t, 15+x/3.6, f.WindGusts10mMax.MetersPerSecond(), floatTolerance)
		assert.InDelta(t, 180+x, f.WindDirection10mDominant.Degrees(), 1e-6)
		assert.InDelta(t, 6+x, f.UVIndexMax.Value(), floatTolerance)
		assert.InDelta(t, (20+x)*1e6, f.ShortwaveRadiationSum.JoulesPerSquareMeter(), 1e-3)
		assert.InDelta(t, (50+x)/100, f.CloudCoverMean.Fraction(), floatTolerance)
		assert.InDelta(t, 1010+x, f.SurfacePressureMean.Hectopascals(), floatTolerance)
		assert.InDelta(t, 20000+x, f.VisibilityMean.Meters(), floatTolerance)
	}
}

func TestParseDaily_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RawDailyForecast)
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown timezone",
			mutate:  func(r *RawDailyForecast) { r.Timezone = "Europe/Atlantis" },
			wantErr: ErrUnknownTimezone,
		},
		{
			name:    "short sunset column",
			mutate:  func(r *RawDailyForecast) { r.Daily.Sunset = r.Daily.Sunset[:1] },
			wantErr: ErrColumnLength,
			wantMsg: "sunset",
		},
		{
			name:    "malformed date",
			mutate:  func(r *RawDailyForecast) { r.Daily.Time[0] = "2024/06/01" },
			wantErr: ErrMalformedLocalTime,
			wantMsg: "daily row 0",
		},
		{
			name: "sunrise in spring forward gap",
			mutate: func(r *RawDailyForecast) {
				r.Timezone = "America/New_York"
				r.Daily.Sunrise[1] = "2024-03-10T02:15"
			},
			wantErr: ErrNonexistentLocalTime,
			wantMsg: "daily row 1 sunrise",
		},
		{
			name: "sunset in fall back overlap",
			mutate: func(r *RawDailyForecast) {
				r.Timezone = "America/New_York"
				r.Daily.Sunset[2] = "2024-11-03T01:15"
			},
			wantErr: ErrAmbiguousLocalTime,
			wantMsg: "daily row 2 sunset",
		},
		{
			name:    "unknown weather code",
			mutate:  func(r *RawDailyForecast) { r.Daily.WeatherCode[0] = 98 },
			wantErr: ErrUnknownWeatherCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := dailyFixture("UTC", 3)
			tt.mutate(raw)

			got, err := Parser{}.ParseDaily(raw)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
