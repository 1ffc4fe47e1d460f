package domain

import (
	"fmt"
	"time"

	"github.com/couchcryptid/forecast-etl/internal/measure"
)

// HourlyForecast is one hour of an Open-Meteo forecast in canonical units.
// Precipitation, rain and showers are sums over the preceding hour.
type HourlyForecast struct {
	Time        time.Time
	Latitude    measure.Latitude
	Longitude   measure.Longitude
	Elevation   measure.Length
	WeatherCode WeatherCode

	Temperature2m            measure.Temperature
	ApparentTemperature      measure.Temperature
	DewPoint2m               measure.Temperature
	RelativeHumidity2m       measure.Percentage
	SurfacePressure          measure.Pressure
	CloudCover               measure.Percentage
	CloudCoverLow            measure.Percentage
	CloudCoverMid            measure.Percentage
	CloudCoverHigh           measure.Percentage
	WindSpeed10m             measure.Speed
	WindSpeed80m             measure.Speed
	WindSpeed120m            measure.Speed
	WindSpeed180m            measure.Speed
	WindDirection10m         measure.Angle
	WindDirection80m         measure.Angle
	WindDirection120m        measure.Angle
	WindDirection180m        measure.Angle
	WindGusts10m             measure.Speed
	Precipitation            measure.Length
	PrecipitationProbability measure.Percentage
	Rain                     measure.Length
	Showers                  measure.Length
	Snowfall                 measure.Length
	SnowDepth                measure.Length
	Visibility               measure.Length
	ShortwaveRadiation       measure.PowerDensity
}

// Parser turns raw Open-Meteo responses into typed forecasts. The zero
// value uses the system timezone database.
type Parser struct {
	LoadZone ZoneLoader
}

// ParseHourly transposes the hourly columns into one HourlyForecast per time
// step. It returns no forecasts if any step fails.
func (p Parser) ParseHourly(raw *RawHourlyForecast) ([]HourlyForecast, error) {
	loc, err := LoadZone(p.LoadZone, raw.Timezone)
	if err != nil {
		return nil, err
	}

	h := &raw.Hourly
	n := len(h.Time)
	if err := checkColumns(n, h.columns()); err != nil {
		return nil, fmt.Errorf("check hourly columns: %w", err)
	}

	lat := measure.NewLatitude(raw.Latitude)
	lon := measure.NewLongitude(raw.Longitude)
	elevation := measure.FromMeters(raw.Elevation)

	out := make([]HourlyForecast, 0, n)
	for i := range n {
		ts, err := resolveLocalString(h.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("hourly row %d: %w", i, err)
		}
		code, err := ParseWeatherCode(int(h.WeatherCode[i]))
		if err != nil {
			return nil, fmt.Errorf("hourly row %d: %w", i, err)
		}

		out = append(out, HourlyForecast{
			Time:        ts,
			Latitude:    lat,
			Longitude:   lon,
			Elevation:   elevation,
			WeatherCode: code,

			Temperature2m:            measure.FromCelsius(h.Temperature2m[i]),
			ApparentTemperature:      measure.FromCelsius(h.ApparentTemperature[i]),
			DewPoint2m:               measure.FromCelsius(h.DewPoint2m[i]),
			RelativeHumidity2m:       measure.FromPercent(float64(h.RelativeHumidity2m[i])),
			SurfacePressure:          measure.FromHectopascals(h.SurfacePressure[i]),
			CloudCover:               measure.FromPercent(float64(h.CloudCover[i])),
			CloudCoverLow:            measure.FromPercent(float64(h.CloudCoverLow[i])),
			CloudCoverMid:            measure.FromPercent(float64(h.CloudCoverMid[i])),
			CloudCoverHigh:           measure.FromPercent(float64(h.CloudCoverHigh[i])),
			WindSpeed10m:             measure.FromKilometersPerHour(h.WindSpeed10m[i]),
			WindSpeed80m:             measure.FromKilometersPerHour(h.WindSpeed80m[i]),
			WindSpeed120m:            measure.FromKilometersPerHour(h.WindSpeed120m[i]),
			WindSpeed180m:            measure.FromKilometersPerHour(h.WindSpeed180m[i]),
			WindDirection10m:         measure.FromDegrees(float64(h.WindDirection10m[i])),
			WindDirection80m:         measure.FromDegrees(float64(h.WindDirection80m[i])),
			WindDirection120m:        measure.FromDegrees(float64(h.WindDirection120m[i])),
			WindDirection180m:        measure.FromDegrees(float64(h.WindDirection180m[i])),
			WindGusts10m:             measure.FromKilometersPerHour(h.WindGusts10m[i]),
			Precipitation:            measure.FromMillimeters(h.Precipitation[i]),
			PrecipitationProbability: measure.FromPercent(float64(h.PrecipitationProbability[i])),
			Rain:                     measure.FromMillimeters(h.Rain[i]),
			Showers:                  measure.FromMillimeters(h.Showers[i]),
			Snowfall:                 measure.FromCentimeters(h.Snowfall[i]),
			SnowDepth:                measure.FromMeters(h.SnowDepth[i]),
			Visibility:               measure.FromMeters(h.Visibility[i]),
			ShortwaveRadiation:       measure.FromWattsPerSquareMeter(h.ShortwaveRadiation[i]),
		})
	}
	return out, nil
}
