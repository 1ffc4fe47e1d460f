package domain

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := LoadZone(nil, name)
	require.NoError(t, err)
	return loc
}

func mustWall(t *testing.T, s string) time.Time {
	t.Helper()
	wall, err := ParseLocalDateTime(s)
	require.NoError(t, err)
	return wall
}

func TestLoadZone(t *testing.T) {
	t.Run("known zone", func(t *testing.T) {
		loc, err := LoadZone(nil, "Europe/Berlin")
		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", loc.String())
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := LoadZone(nil, "Mars/Olympus_Mons")
		require.ErrorIs(t, err, ErrUnknownTimezone)
		assert.Contains(t, err.Error(), "Mars/Olympus_Mons")
	})

	t.Run("empty name is not UTC", func(t *testing.T) {
		_, err := LoadZone(nil, "")
		assert.ErrorIs(t, err, ErrUnknownTimezone)
	})

	t.Run("injected loader", func(t *testing.T) {
		fixed := time.FixedZone("TEST", 3*3600)
		var asked string
		loader := func(name string) (*time.Location, error) {
			asked = name
			return fixed, nil
		}
		loc, err := LoadZone(loader, "Test/Zone")
		require.NoError(t, err)
		assert.Same(t, fixed, loc)
		assert.Equal(t, "Test/Zone", asked)
	})

	t.Run("loader error", func(t *testing.T) {
		loader := func(string) (*time.Location, error) { return nil, errors.New("no tzdata") }
		_, err := LoadZone(loader, "Europe/Berlin")
		assert.ErrorIs(t, err, ErrUnknownTimezone)
	})
}

func TestParseLocalDateTime_Malformed(t *testing.T) {
	for _, s := range []string{"", "2024-06-01", "2024-06-01 12:00", "2024-06-01T12:00:00Z", "2024-13-01T00:00"} {
		_, err := ParseLocalDateTime(s)
		assert.ErrorIs(t, err, ErrMalformedLocalTime, "input %q", s)
	}
}

func TestParseLocalDate(t *testing.T) {
	d, err := ParseLocalDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseLocalDate("2023-02-29")
	assert.ErrorIs(t, err, ErrMalformedLocalTime)
}

func TestResolveLocal(t *testing.T) {
	tests := []struct {
		name    string
		zone    string
		wall    string
		want    time.Time
		wantErr error
	}{
		{
			name: "utc is identity",
			zone: "UTC",
			wall: "2024-06-01T12:00",
			want: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "new york summer",
			zone: "America/New_York",
			wall: "2024-07-04T09:00",
			want: time.Date(2024, 7, 4, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "new york winter",
			zone: "America/New_York",
			wall: "2024-01-15T09:00",
			want: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name:    "new york spring forward gap",
			zone:    "America/New_York",
			wall:    "2024-03-10T02:30",
			wantErr: ErrNonexistentLocalTime,
		},
		{
			name: "new york just after gap",
			zone: "America/New_York",
			wall: "2024-03-10T03:00",
			want: time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC),
		},
		{
			name:    "new york fall back overlap",
			zone:    "America/New_York",
			wall:    "2024-11-03T01:30",
			wantErr: ErrAmbiguousLocalTime,
		},
		{
			name:    "berlin spring forward gap",
			zone:    "Europe/Berlin",
			wall:    "2024-03-31T02:30",
			wantErr: ErrNonexistentLocalTime,
		},
		{
			name:    "berlin fall back overlap",
			zone:    "Europe/Berlin",
			wall:    "2024-10-27T02:00",
			wantErr: ErrAmbiguousLocalTime,
		},
		{
			name: "berlin after overlap",
			zone: "Europe/Berlin",
			wall: "2024-10-27T03:00",
			want: time.Date(2024, 10, 27, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "no daylight saving",
			zone: "Asia/Kolkata",
			wall: "2024-03-10T02:30",
			want: time.Date(2024, 3, 9, 21, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLocal(mustWall(t, tt.wall), mustZone(t, tt.zone))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrLocalTime)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrUnknownTimezone, "unknown_timezone"},
		{ErrMalformedLocalTime, "malformed_time"},
		{ErrNonexistentLocalTime, "nonexistent_time"},
		{ErrAmbiguousLocalTime, "ambiguous_time"},
		{ErrUnknownWeatherCode, "unknown_weather_code"},
		{ErrColumnLength, "column_length"},
		{ErrMalformedPayload, "malformed_payload"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err))
	}
}
