package domain

import (
	"encoding/json"
	"fmt"
)

// RawHourlyForecast is the Open-Meteo hourly response as decoded from JSON.
type RawHourlyForecast struct {
	Latitude             float64          `json:"latitude"`
	Longitude            float64          `json:"longitude"`
	Elevation            float64          `json:"elevation"`
	Timezone             string           `json:"timezone"`
	TimezoneAbbreviation string           `json:"timezone_abbreviation"`
	Hourly               RawHourlyColumns `json:"hourly"`
}

// RawHourlyColumns holds one slice per variable, index-aligned with Time.
type RawHourlyColumns struct {
	Time                     Column[string]  `json:"time"`
	Temperature2m            Column[float64] `json:"temperature_2m"`
	RelativeHumidity2m       Column[uint8]   `json:"relative_humidity_2m"`
	DewPoint2m               Column[float64] `json:"dew_point_2m"`
	ApparentTemperature      Column[float64] `json:"apparent_temperature"`
	PrecipitationProbability Column[uint8]   `json:"precipitation_probability"`
	Precipitation            Column[float64] `json:"precipitation"`
	Rain                     Column[float64] `json:"rain"`
	Showers                  Column[float64] `json:"showers"`
	Snowfall                 Column[float64] `json:"snowfall"`
	SnowDepth                Column[float64] `json:"snow_depth"`
	WeatherCode              Column[uint8]   `json:"weather_code"`
	SurfacePressure          Column[float64] `json:"surface_pressure"`
	CloudCover               Column[uint8]   `json:"cloud_cover"`
	CloudCoverLow            Column[uint8]   `json:"cloud_cover_low"`
	CloudCoverMid            Column[uint8]   `json:"cloud_cover_mid"`
	CloudCoverHigh           Column[uint8]   `json:"cloud_cover_high"`
	Visibility               Column[float64] `json:"visibility"`
	WindSpeed10m             Column[float64] `json:"wind_speed_10m"`
	WindSpeed80m             Column[float64] `json:"wind_speed_80m"`
	WindSpeed120m            Column[float64] `json:"wind_speed_120m"`
	WindSpeed180m            Column[float64] `json:"wind_speed_180m"`
	WindDirection10m         Column[uint16]  `json:"wind_direction_10m"`
	WindDirection80m         Column[uint16]  `json:"wind_direction_80m"`
	WindDirection120m        Column[uint16]  `json:"wind_direction_120m"`
	WindDirection180m        Column[uint16]  `json:"wind_direction_180m"`
	WindGusts10m             Column[float64] `json:"wind_gusts_10m"`
	ShortwaveRadiation       Column[float64] `json:"shortwave_radiation"`
}

// UnmarshalJSON decodes each column separately so a bad entry is reported
// with its column name.
func (c *RawHourlyColumns) UnmarshalJSON(b []byte) error {
	return decodeColumns(b, append([]column{{"time", &c.Time}}, c.columns()...))
}

func (c *RawHourlyColumns) columns() []column {
	return []column{
		{"temperature_2m", &c.Temperature2m},
		{"relative_humidity_2m", &c.RelativeHumidity2m},
		{"dew_point_2m", &c.DewPoint2m},
		{"apparent_temperature", &c.ApparentTemperature},
		{"precipitation_probability", &c.PrecipitationProbability},
		{"precipitation", &c.Precipitation},
		{"rain", &c.Rain},
		{"showers", &c.Showers},
		{"snowfall", &c.Snowfall},
		{"snow_depth", &c.SnowDepth},
		{"weather_code", &c.WeatherCode},
		{"surface_pressure", &c.SurfacePressure},
		{"cloud_cover", &c.CloudCover},
		{"cloud_cover_low", &c.CloudCoverLow},
		{"cloud_cover_mid", &c.CloudCoverMid},
		{"cloud_cover_high", &c.CloudCoverHigh},
		{"visibility", &c.Visibility},
		{"wind_speed_10m", &c.WindSpeed10m},
		{"wind_speed_80m", &c.WindSpeed80m},
		{"wind_speed_120m", &c.WindSpeed120m},
		{"wind_speed_180m", &c.WindSpeed180m},
		{"wind_direction_10m", &c.WindDirection10m},
		{"wind_direction_80m", &c.WindDirection80m},
		{"wind_direction_120m", &c.WindDirection120m},
		{"wind_direction_180m", &c.WindDirection180m},
		{"wind_gusts_10m", &c.WindGusts10m},
		{"shortwave_radiation", &c.ShortwaveRadiation},
	}
}

// RawDailyForecast is the Open-Meteo daily response as decoded from JSON.
type RawDailyForecast struct {
	Latitude             float64         `json:"latitude"`
	Longitude            float64         `json:"longitude"`
	Elevation            float64         `json:"elevation"`
	Timezone             string          `json:"timezone"`
	TimezoneAbbreviation string          `json:"timezone_abbreviation"`
	Daily                RawDailyColumns `json:"daily"`
}

// RawDailyColumns holds one slice per daily variable, index-aligned with Time.
type RawDailyColumns struct {
	Time                         Column[string]  `json:"time"`
	WeatherCode                  Column[uint8]   `json:"weather_code"`
	Temperature2mMax             Column[float64] `json:"temperature_2m_max"`
	Temperature2mMean            Column[float64] `json:"temperature_2m_mean"`
	Temperature2mMin             Column[float64] `json:"temperature_2m_min"`
	ApparentTemperatureMax       Column[float64] `json:"apparent_temperature_max"`
	ApparentTemperatureMean      Column[float64] `json:"apparent_temperature_mean"`
	ApparentTemperatureMin       Column[float64] `json:"apparent_temperature_min"`
	UVIndexMax                   Column[float64] `json:"uv_index_max"`
	UVIndexClearSkyMax           Column[float64] `json:"uv_index_clear_sky_max"`
	SunshineDuration             Column[float64] `json:"sunshine_duration"`
	DaylightDuration             Column[float64] `json:"daylight_duration"`
	Sunrise                      Column[string]  `json:"sunrise"`
	Sunset                       Column[string]  `json:"sunset"`
	RainSum                      Column[float64] `json:"rain_sum"`
	ShowersSum                   Column[float64] `json:"showers_sum"`
	SnowfallSum                  Column[float64] `json:"snowfall_sum"`
	PrecipitationSum             Column[float64] `json:"precipitation_sum"`
	PrecipitationHours           Column[float64] `json:"precipitation_hours"`
	PrecipitationProbabilityMax  Column[uint8]   `json:"precipitation_probability_max"`
	PrecipitationProbabilityMean Column[uint8]   `json:"precipitation_probability_mean"`
	PrecipitationProbabilityMin  Column[uint8]   `json:"precipitation_probability_min"`
	WindSpeed10mMax              Column[float64] `json:"wind_speed_10m_max"`
	WindGusts10mMax              Column[float64] `json:"wind_gusts_10m_max"`
	WindDirection10mDominant     Column[uint16]  `json:"wind_direction_10m_dominant"`
	ShortwaveRadiationSum        Column[float64] `json:"shortwave_radiation_sum"`
	CloudCoverMax                Column[float64] `json:"cloud_cover_max"`
	CloudCoverMean               Column[float64] `json:"cloud_cover_mean"`
	CloudCoverMin                Column[float64] `json:"cloud_cover_min"`
	DewPoint2mMax                Column[float64] `json:"dew_point_2m_max"`
	DewPoint2mMean               Column[float64] `json:"dew_point_2m_mean"`
	DewPoint2mMin                Column[float64] `json:"dew_point_2m_min"`
	RelativeHumidity2mMax        Column[float64] `json:"relative_humidity_2m_max"`
	RelativeHumidity2mMean       Column[float64] `json:"relative_humidity_2m_mean"`
	RelativeHumidity2mMin        Column[float64] `json:"relative_humidity_2m_min"`
	SurfacePressureMax           Column[float64] `json:"surface_pressure_max"`
	SurfacePressureMean          Column[float64] `json:"surface_pressure_mean"`
	SurfacePressureMin           Column[float64] `json:"surface_pressure_min"`
	VisibilityMax                Column[float64] `json:"visibility_max"`
	VisibilityMean               Column[float64] `json:"visibility_mean"`
	VisibilityMin                Column[float64] `json:"visibility_min"`
}

// UnmarshalJSON decodes each column separately so a bad entry is reported
// with its column name.
func (c *RawDailyColumns) UnmarshalJSON(b []byte) error {
	return decodeColumns(b, append([]column{{"time", &c.Time}}, c.columns()...))
}

func (c *RawDailyColumns) columns() []column {
	return []column{
		{"weather_code", &c.WeatherCode},
		{"temperature_2m_max", &c.Temperature2mMax},
		{"temperature_2m_mean", &c.Temperature2mMean},
		{"temperature_2m_min", &c.Temperature2mMin},
		{"apparent_temperature_max", &c.ApparentTemperatureMax},
		{"apparent_temperature_mean", &c.ApparentTemperatureMean},
		{"apparent_temperature_min", &c.ApparentTemperatureMin},
		{"uv_index_max", &c.UVIndexMax},
		{"uv_index_clear_sky_max", &c.UVIndexClearSkyMax},
		{"sunshine_duration", &c.SunshineDuration},
		{"daylight_duration", &c.DaylightDuration},
		{"sunrise", &c.Sunrise},
		{"sunset", &c.Sunset},
		{"rain_sum", &c.RainSum},
		{"showers_sum", &c.ShowersSum},
		{"snowfall_sum", &c.SnowfallSum},
		{"precipitation_sum", &c.PrecipitationSum},
		{"precipitation_hours", &c.PrecipitationHours},
		{"precipitation_probability_max", &c.PrecipitationProbabilityMax},
		{"precipitation_probability_mean", &c.PrecipitationProbabilityMean},
		{"precipitation_probability_min", &c.PrecipitationProbabilityMin},
		{"wind_speed_10m_max", &c.WindSpeed10mMax},
		{"wind_gusts_10m_max", &c.WindGusts10mMax},
		{"wind_direction_10m_dominant", &c.WindDirection10mDominant},
		{"shortwave_radiation_sum", &c.ShortwaveRadiationSum},
		{"cloud_cover_max", &c.CloudCoverMax},
		{"cloud_cover_mean", &c.CloudCoverMean},
		{"cloud_cover_min", &c.CloudCoverMin},
		{"dew_point_2m_max", &c.DewPoint2mMax},
		{"dew_point_2m_mean", &c.DewPoint2mMean},
		{"dew_point_2m_min", &c.DewPoint2mMin},
		{"relative_humidity_2m_max", &c.RelativeHumidity2mMax},
		{"relative_humidity_2m_mean", &c.RelativeHumidity2mMean},
		{"relative_humidity_2m_min", &c.RelativeHumidity2mMin},
		{"surface_pressure_max", &c.SurfacePressureMax},
		{"surface_pressure_mean", &c.SurfacePressureMean},
		{"surface_pressure_min", &c.SurfacePressureMin},
		{"visibility_max", &c.VisibilityMax},
		{"visibility_mean", &c.VisibilityMean},
		{"visibility_min", &c.VisibilityMin},
	}
}

// Column is one Open-Meteo variable, index-aligned with the time column.
// Decoding fails on null entries, which Open-Meteo sends where a model has
// no data; a zero would read as a real value (0 °C, clear sky).
type Column[T float64 | uint8 | uint16 | string] []T

// Len returns the number of entries.
func (c Column[T]) Len() int { return len(c) }

// UnmarshalJSON implements json.Unmarshaler. A null column decodes to nil.
func (c *Column[T]) UnmarshalJSON(b []byte) error {
	var raw []*T
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*c = nil
		return nil
	}
	out := make(Column[T], len(raw))
	for i, v := range raw {
		if v == nil {
			return fmt.Errorf("%w: null at index %d", ErrMalformedPayload, i)
		}
		out[i] = *v
	}
	*c = out
	return nil
}

type columnValues interface {
	json.Unmarshaler
	Len() int
}

type column struct {
	name   string
	values columnValues
}

func decodeColumns(b []byte, cols []column) error {
	var byName map[string]json.RawMessage
	if err := json.Unmarshal(b, &byName); err != nil {
		return err
	}
	for _, col := range cols {
		raw, ok := byName[col.name]
		if !ok {
			continue
		}
		if err := col.values.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("column %s: %w", col.name, err)
		}
	}
	return nil
}

// checkColumns verifies every column has exactly n entries.
func checkColumns(n int, cols []column) error {
	for _, c := range cols {
		if l := c.values.Len(); l != n {
			return fmt.Errorf("%w: %s has %d entries, time has %d", ErrColumnLength, c.name, l, n)
		}
	}
	return nil
}

// HourlyVariables lists the hourly columns to request from Open-Meteo.
func HourlyVariables() []string {
	return columnNames((&RawHourlyColumns{}).columns())
}

// DailyVariables lists the daily columns to request from Open-Meteo.
func DailyVariables() []string {
	return columnNames((&RawDailyColumns{}).columns())
}

func columnNames(cols []column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}
