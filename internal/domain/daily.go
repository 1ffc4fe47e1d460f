package domain

import (
	"fmt"
	"time"

	"github.com/couchcryptid/forecast-etl/internal/measure"
)

// DailyForecast is one local calendar day of an Open-Meteo forecast.
type DailyForecast struct {
	Date        Date
	Latitude    measure.Latitude
	Longitude   measure.Longitude
	Elevation   measure.Length
	WeatherCode WeatherCode
	Sunrise     time.Time
	Sunset      time.Time

	Temperature2mMax        measure.Temperature
	Temperature2mMean       measure.Temperature
	Temperature2mMin        measure.Temperature
	ApparentTemperatureMax  measure.Temperature
	ApparentTemperatureMean measure.Temperature
	ApparentTemperatureMin  measure.Temperature
	DewPoint2mMax           measure.Temperature
	DewPoint2mMean          measure.Temperature
	DewPoint2mMin           measure.Temperature

	PrecipitationSum             measure.Length
	RainSum                      measure.Length
	ShowersSum                   measure.Length
	SnowfallSum                  measure.Length
	PrecipitationHours           time.Duration
	PrecipitationProbabilityMax  measure.Percentage
	PrecipitationProbabilityMean measure.Percentage
	PrecipitationProbabilityMin  measure.Percentage

	SunshineDuration time.Duration
	DaylightDuration time.Duration

	WindSpeed10mMax          measure.Speed
	WindGusts10mMax          measure.Speed
	WindDirection10mDominant measure.Angle

	UVIndexMax            measure.UVIndex
	UVIndexClearSkyMax    measure.UVIndex
	ShortwaveRadiationSum measure.EnergyDensity

	CloudCoverMax          measure.Percentage
	CloudCoverMean         measure.Percentage
	CloudCoverMin          measure.Percentage
	RelativeHumidity2mMax  measure.Percentage
	RelativeHumidity2mMean measure.Percentage
	RelativeHumidity2mMin  measure.Percentage
	SurfacePressureMax     measure.Pressure
	SurfacePressureMean    measure.Pressure
	SurfacePressureMin     measure.Pressure
	VisibilityMax          measure.Length
	VisibilityMean         measure.Length
	VisibilityMin          measure.Length
}

// ParseDaily transposes the daily columns into one DailyForecast per day.
// Sunrise and sunset are resolved to UTC in the response timezone.
func (p Parser) ParseDaily(raw *RawDailyForecast) ([]DailyForecast, error) {
	loc, err := LoadZone(p.LoadZone, raw.Timezone)
	if err != nil {
		return nil, err
	}

	d := &raw.Daily
	n := len(d.Time)
	if err := checkColumns(n, d.columns()); err != nil {
		return nil, fmt.Errorf("check daily columns: %w", err)
	}

	lat := measure.NewLatitude(raw.Latitude)
	lon := measure.NewLongitude(raw.Longitude)
	elevation := measure.FromMeters(raw.Elevation)

	out := make([]DailyForecast, 0, n)
	for i := range n {
		date, err := ParseLocalDate(d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("daily row %d: %w", i, err)
		}
		sunrise, err := resolveLocalString(d.Sunrise[i], loc)
		if err != nil {
			return nil, fmt.Errorf("daily row %d sunrise: %w", i, err)
		}
		sunset, err := resolveLocalString(d.Sunset[i], loc)
		if err != nil {
			return nil, fmt.Errorf("daily row %d sunset: %w", i, err)
		}
		code, err := ParseWeatherCode(int(d.WeatherCode[i]))
		if err != nil {
			return nil, fmt.Errorf("daily row %d: %w", i, err)
		}

		out = append(out, DailyForecast{
			Date:        date,
			Latitude:    lat,
			Longitude:   lon,
			Elevation:   elevation,
			WeatherCode: code,
			Sunrise:     sunrise,
			Sunset:      sunset,

			Temperature2mMax:        measure.FromCelsius(d.Temperature2mMax[i]),
			Temperature2mMean:       measure.FromCelsius(d.Temperature2mMean[i]),
			Temperature2mMin:        measure.FromCelsius(d.Temperature2mMin[i]),
			ApparentTemperatureMax:  measure.FromCelsius(d.ApparentTemperatureMax[i]),
			ApparentTemperatureMean: measure.FromCelsius(d.ApparentTemperatureMean[i]),
			ApparentTemperatureMin:  measure.FromCelsius(d.ApparentTemperatureMin[i]),
			DewPoint2mMax:           measure.FromCelsius(d.DewPoint2mMax[i]),
			DewPoint2mMean:          measure.FromCelsius(d.DewPoint2mMean[i]),
			DewPoint2mMin:           measure.FromCelsius(d.DewPoint2mMin[i]),

			PrecipitationSum:             measure.FromMillimeters(d.PrecipitationSum[i]),
			RainSum:                      measure.FromMillimeters(d.RainSum[i]),
			ShowersSum:                   measure.FromMillimeters(d.ShowersSum[i]),
			SnowfallSum:                  measure.FromCentimeters(d.SnowfallSum[i]),
			PrecipitationHours:           hours(d.PrecipitationHours[i]),
			PrecipitationProbabilityMax:  measure.FromPercent(float64(d.PrecipitationProbabilityMax[i])),
			PrecipitationProbabilityMean: measure.FromPercent(float64(d.PrecipitationProbabilityMean[i])),
			PrecipitationProbabilityMin:  measure.FromPercent(float64(d.PrecipitationProbabilityMin[i])),

			SunshineDuration: seconds(d.SunshineDuration[i]),
			DaylightDuration: seconds(d.DaylightDuration[i]),

			WindSpeed10mMax:          measure.FromKilometersPerHour(d.WindSpeed10mMax[i]),
			WindGusts10mMax:          measure.FromKilometersPerHour(d.WindGusts10mMax[i]),
			WindDirection10mDominant: measure.FromDegrees(float64(d.WindDirection10mDominant[i])),

			UVIndexMax:            measure.NewUVIndex(d.UVIndexMax[i]),
			UVIndexClearSkyMax:    measure.NewUVIndex(d.UVIndexClearSkyMax[i]),
			ShortwaveRadiationSum: measure.FromMegajoulesPerSquareMeter(d.ShortwaveRadiationSum[i]),

			CloudCoverMax:          measure.FromPercent(d.CloudCoverMax[i]),
			CloudCoverMean:         measure.FromPercent(d.CloudCoverMean[i]),
			CloudCoverMin:          measure.FromPercent(d.CloudCoverMin[i]),
			RelativeHumidity2mMax:  measure.FromPercent(d.RelativeHumidity2mMax[i]),
			RelativeHumidity2mMean: measure.FromPercent(d.RelativeHumidity2mMean[i]),
			RelativeHumidity2mMin:  measure.FromPercent(d.RelativeHumidity2mMin[i]),
			SurfacePressureMax:     measure.FromHectopascals(d.SurfacePressureMax[i]),
			SurfacePressureMean:    measure.FromHectopascals(d.SurfacePressureMean[i]),
			SurfacePressureMin:     measure.FromHectopascals(d.SurfacePressureMin[i]),
			VisibilityMax:          measure.FromMeters(d.VisibilityMax[i]),
			VisibilityMean:         measure.FromMeters(d.VisibilityMean[i]),
			VisibilityMin:          measure.FromMeters(d.VisibilityMin[i]),
		})
	}
	return out, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func hours(v float64) time.Duration {
	return time.Duration(v * float64(time.Hour))
}
