package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// HourlyWeatherRow is the storage shape of an HourlyForecast. Values are
// read out of the canonical types in the units downstream tables use.
type HourlyWeatherRow struct {
	LocationID  string    `json:"location_id"`
	Time        time.Time `json:"time"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ElevationM  float64   `json:"elevation_m"`
	WeatherCode int       `json:"weather_code"`
	Condition   Condition `json:"condition"`

	TemperatureC             float64 `json:"temperature_c"`
	ApparentTemperatureC     float64 `json:"apparent_temperature_c"`
	DewPointC                float64 `json:"dew_point_c"`
	RelativeHumidity         float64 `json:"relative_humidity"`
	SurfacePressureHPa       float64 `json:"surface_pressure_hpa"`
	CloudCover               float64 `json:"cloud_cover"`
	CloudCoverLow            float64 `json:"cloud_cover_low"`
	CloudCoverMid            float64 `json:"cloud_cover_mid"`
	CloudCoverHigh           float64 `json:"cloud_cover_high"`
	WindSpeed10mKmh          float64 `json:"wind_speed_10m_kmh"`
	WindSpeed80mKmh          float64 `json:"wind_speed_80m_kmh"`
	WindSpeed120mKmh         float64 `json:"wind_speed_120m_kmh"`
	WindSpeed180mKmh         float64 `json:"wind_speed_180m_kmh"`
	WindDirection10mDeg      float64 `json:"wind_direction_10m_deg"`
	WindDirection80mDeg      float64 `json:"wind_direction_80m_deg"`
	WindDirection120mDeg     float64 `json:"wind_direction_120m_deg"`
	WindDirection180mDeg     float64 `json:"wind_direction_180m_deg"`
	WindGusts10mKmh          float64 `json:"wind_gusts_10m_kmh"`
	PrecipitationMm          float64 `json:"precipitation_mm"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
	RainMm                   float64 `json:"rain_mm"`
	ShowersMm                float64 `json:"showers_mm"`
	SnowfallCm               float64 `json:"snowfall_cm"`
	SnowDepthCm              float64 `json:"snow_depth_cm"`
	VisibilityM              float64 `json:"visibility_m"`
	ShortwaveRadiationWm2    float64 `json:"shortwave_radiation_wm2"`

	RunID       string    `json:"run_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

// NewHourlyWeatherRow maps a forecast to its storage row.
func NewHourlyWeatherRow(locationID string, f *HourlyForecast) HourlyWeatherRow {
	return HourlyWeatherRow{
		LocationID:  locationID,
		Time:        f.Time.UTC(),
		Latitude:    f.Latitude.Degrees(),
		Longitude:   f.Longitude.Degrees(),
		ElevationM:  f.Elevation.Meters(),
		WeatherCode: f.WeatherCode.Code(),
		Condition:   f.WeatherCode.Condition(),

		TemperatureC:             f.Temperature2m.Celsius(),
		ApparentTemperatureC:     f.ApparentTemperature.Celsius(),
		DewPointC:                f.DewPoint2m.Celsius(),
		RelativeHumidity:         f.RelativeHumidity2m.Fraction(),
		SurfacePressureHPa:       f.SurfacePressure.Hectopascals(),
		CloudCover:               f.CloudCover.Fraction(),
		CloudCoverLow:            f.CloudCoverLow.Fraction(),
		CloudCoverMid:            f.CloudCoverMid.Fraction(),
		CloudCoverHigh:           f.CloudCoverHigh.Fraction(),
		WindSpeed10mKmh:          f.WindSpeed10m.KilometersPerHour(),
		WindSpeed80mKmh:          f.WindSpeed80m.KilometersPerHour(),
		WindSpeed120mKmh:         f.WindSpeed120m.KilometersPerHour(),
		WindSpeed180mKmh:         f.WindSpeed180m.KilometersPerHour(),
		WindDirection10mDeg:      f.WindDirection10m.Degrees(),
		WindDirection80mDeg:      f.WindDirection80m.Degrees(),
		WindDirection120mDeg:     f.WindDirection120m.Degrees(),
		WindDirection180mDeg:     f.WindDirection180m.Degrees(),
		WindGusts10mKmh:          f.WindGusts10m.KilometersPerHour(),
		PrecipitationMm:          f.Precipitation.Millimeters(),
		PrecipitationProbability: f.PrecipitationProbability.Fraction(),
		RainMm:                   f.Rain.Millimeters(),
		ShowersMm:                f.Showers.Millimeters(),
		SnowfallCm:               f.Snowfall.Centimeters(),
		SnowDepthCm:              f.SnowDepth.Centimeters(),
		VisibilityM:              f.Visibility.Meters(),
		ShortwaveRadiationWm2:    f.ShortwaveRadiation.WattsPerSquareMeter(),
	}
}

// DailyWeatherRow is the storage shape of a DailyForecast.
type DailyWeatherRow struct {
	LocationID  string    `json:"location_id"`
	Date        Date      `json:"date"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ElevationM  float64   `json:"elevation_m"`
	WeatherCode int       `json:"weather_code"`
	Condition   Condition `json:"condition"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`

	TemperatureMaxC          float64 `json:"temperature_max_c"`
	TemperatureMeanC         float64 `json:"temperature_mean_c"`
	TemperatureMinC          float64 `json:"temperature_min_c"`
	ApparentTemperatureMaxC  float64 `json:"apparent_temperature_max_c"`
	ApparentTemperatureMeanC float64 `json:"apparent_temperature_mean_c"`
	ApparentTemperatureMinC  float64 `json:"apparent_temperature_min_c"`
	DewPointMaxC             float64 `json:"dew_point_max_c"`
	DewPointMeanC            float64 `json:"dew_point_mean_c"`
	DewPointMinC             float64 `json:"dew_point_min_c"`

	PrecipitationSumMm           float64 `json:"precipitation_sum_mm"`
	RainSumMm                    float64 `json:"rain_sum_mm"`
	ShowersSumMm                 float64 `json:"showers_sum_mm"`
	SnowfallSumCm                float64 `json:"snowfall_sum_cm"`
	PrecipitationHours           float64 `json:"precipitation_hours"`
	PrecipitationProbabilityMax  float64 `json:"precipitation_probability_max"`
	PrecipitationProbabilityMean float64 `json:"precipitation_probability_mean"`
	PrecipitationProbabilityMin  float64 `json:"precipitation_probability_min"`

	SunshineDurationS float64 `json:"sunshine_duration_s"`
	DaylightDurationS float64 `json:"daylight_duration_s"`

	WindSpeedMaxKmh          float64 `json:"wind_speed_max_kmh"`
	WindGustsMaxKmh          float64 `json:"wind_gusts_max_kmh"`
	WindDirectionDominantDeg float64 `json:"wind_direction_dominant_deg"`

	UVIndexMax            float64 `json:"uv_index_max"`
	UVIndexClearSkyMax    float64 `json:"uv_index_clear_sky_max"`
	ShortwaveRadiationMJ2 float64 `json:"shortwave_radiation_sum_mjm2"`

	CloudCoverMax          float64 `json:"cloud_cover_max"`
	CloudCoverMean         float64 `json:"cloud_cover_mean"`
	CloudCoverMin          float64 `json:"cloud_cover_min"`
	RelativeHumidityMax    float64 `json:"relative_humidity_max"`
	RelativeHumidityMean   float64 `json:"relative_humidity_mean"`
	RelativeHumidityMin    float64 `json:"relative_humidity_min"`
	SurfacePressureMaxHPa  float64 `json:"surface_pressure_max_hpa"`
	SurfacePressureMeanHPa float64 `json:"surface_pressure_mean_hpa"`
	SurfacePressureMinHPa  float64 `json:"surface_pressure_min_hpa"`
	VisibilityMaxM         float64 `json:"visibility_max_m"`
	VisibilityMeanM        float64 `json:"visibility_mean_m"`
	VisibilityMinM         float64 `json:"visibility_min_m"`

	RunID       string    `json:"run_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

// NewDailyWeatherRow maps a forecast to its storage row.
func NewDailyWeatherRow(locationID string, f *DailyForecast) DailyWeatherRow {
	return DailyWeatherRow{
		LocationID:  locationID,
		Date:        f.Date,
		Latitude:    f.Latitude.Degrees(),
		Longitude:   f.Longitude.Degrees(),
		ElevationM:  f.Elevation.Meters(),
		WeatherCode: f.WeatherCode.Code(),
		Condition:   f.WeatherCode.Condition(),
		Sunrise:     f.Sunrise.UTC(),
		Sunset:      f.Sunset.UTC(),

		TemperatureMaxC:          f.Temperature2mMax.Celsius(),
		TemperatureMeanC:         f.Temperature2mMean.Celsius(),
		TemperatureMinC:          f.Temperature2mMin.Celsius(),
		ApparentTemperatureMaxC:  f.ApparentTemperatureMax.Celsius(),
		ApparentTemperatureMeanC: f.ApparentTemperatureMean.Celsius(),
		ApparentTemperatureMinC:  f.ApparentTemperatureMin.Celsius(),
		DewPointMaxC:             f.DewPoint2mMax.Celsius(),
		DewPointMeanC:            f.DewPoint2mMean.Celsius(),
		DewPointMinC:             f.DewPoint2mMin.Celsius(),

		PrecipitationSumMm:           f.PrecipitationSum.Millimeters(),
		RainSumMm:                    f.RainSum.Millimeters(),
		ShowersSumMm:                 f.ShowersSum.Millimeters(),
		SnowfallSumCm:                f.SnowfallSum.Centimeters(),
		PrecipitationHours:           f.PrecipitationHours.Hours(),
		PrecipitationProbabilityMax:  f.PrecipitationProbabilityMax.Fraction(),
		PrecipitationProbabilityMean: f.PrecipitationProbabilityMean.Fraction(),
		PrecipitationProbabilityMin:  f.PrecipitationProbabilityMin.Fraction(),

		SunshineDurationS: f.SunshineDuration.Seconds(),
		DaylightDurationS: f.DaylightDuration.Seconds(),

		WindSpeedMaxKmh:          f.WindSpeed10mMax.KilometersPerHour(),
		WindGustsMaxKmh:          f.WindGusts10mMax.KilometersPerHour(),
		WindDirectionDominantDeg: f.WindDirection10mDominant.Degrees(),

		UVIndexMax:            f.UVIndexMax.Value(),
		UVIndexClearSkyMax:    f.UVIndexClearSkyMax.Value(),
		ShortwaveRadiationMJ2: f.ShortwaveRadiationSum.MegajoulesPerSquareMeter(),

		CloudCoverMax:          f.CloudCoverMax.Fraction(),
		CloudCoverMean:         f.CloudCoverMean.Fraction(),
		CloudCoverMin:          f.CloudCoverMin.Fraction(),
		RelativeHumidityMax:    f.RelativeHumidity2mMax.Fraction(),
		RelativeHumidityMean:   f.RelativeHumidity2mMean.Fraction(),
		RelativeHumidityMin:    f.RelativeHumidity2mMin.Fraction(),
		SurfacePressureMaxHPa:  f.SurfacePressureMax.Hectopascals(),
		SurfacePressureMeanHPa: f.SurfacePressureMean.Hectopascals(),
		SurfacePressureMinHPa:  f.SurfacePressureMin.Hectopascals(),
		VisibilityMaxM:         f.VisibilityMax.Meters(),
		VisibilityMeanM:        f.VisibilityMean.Meters(),
		VisibilityMinM:         f.VisibilityMin.Meters(),
	}
}

// RowKey is the idempotency key for a location and instant.
func RowKey(locationID string, t time.Time) string {
	return locationID + "|" + t.UTC().Format(time.RFC3339)
}

// SerializeHourlyRow converts a row into an OutputEvent for topic.
func SerializeHourlyRow(topic string, row HourlyWeatherRow) (OutputEvent, error) {
	value, err := json.Marshal(row)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("marshal hourly row: %w", err)
	}
	return OutputEvent{
		Topic: topic,
		Key:   []byte(RowKey(row.LocationID, row.Time)),
		Value: value,
		Headers: map[string]string{
			"cadence":     string(CadenceHourly),
			"location_id": row.LocationID,
			"run_id":      row.RunID,
		},
	}, nil
}

// SerializeDailyRow converts a row into an OutputEvent for topic. Daily rows
// are keyed by the start of their date.
func SerializeDailyRow(topic string, row DailyWeatherRow) (OutputEvent, error) {
	value, err := json.Marshal(row)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("marshal daily row: %w", err)
	}
	return OutputEvent{
		Topic: topic,
		Key:   []byte(RowKey(row.LocationID, row.Date.Time)),
		Value: value,
		Headers: map[string]string{
			"cadence":     string(CadenceDaily),
			"location_id": row.LocationID,
			"run_id":      row.RunID,
		},
	}, nil
}
