package domain

import "fmt"

// hourlyFixture builds an aligned hourly response with n rows starting at
// 2024-06-01T00:00 local. Every numeric column holds a value derived from
// the row index so cross-row mixups show up in assertions.
func hourlyFixture(tz string, n int) *RawHourlyForecast {
	c := RawHourlyColumns{}
	for i := range n {
		f := float64(i)
		c.Time = append(c.Time, fmt.Sprintf("2024-06-01T%02d:00", i))
		c.Temperature2m = append(c.Temperature2m, 10+f)
		c.RelativeHumidity2m = append(c.RelativeHumidity2m, uint8(40+i))
		c.DewPoint2m = append(c.DewPoint2m, 5+f)
		c.ApparentTemperature = append(c.ApparentTemperature, 9+f)
		c.PrecipitationProbability = append(c.PrecipitationProbability, uint8(10+i))
		c.Precipitation = append(c.Precipitation, 1+f)
		c.Rain = append(c.Rain, 0.5+f)
		c.Showers = append(c.Showers, 0.25+f)
		c.Snowfall = append(c.Snowfall, f)
		c.SnowDepth = append(c.SnowDepth, 0.01*f)
		c.WeatherCode = append(c.WeatherCode, uint8(RainSlight))
		c.SurfacePressure = append(c.SurfacePressure, 1000+f)
		c.CloudCover = append(c.CloudCover, uint8(20+i))
		c.CloudCoverLow = append(c.CloudCoverLow, uint8(i))
		c.CloudCoverMid = append(c.CloudCoverMid, uint8(i))
		c.CloudCoverHigh = append(c.CloudCoverHigh, uint8(i))
		c.Visibility = append(c.Visibility, 10000+f)
		c.WindSpeed10m = append(c.WindSpeed10m, 3.6*(1+f))
		c.WindSpeed80m = append(c.WindSpeed80m, 3.6*(2+f))
		c.WindSpeed120m = append(c.WindSpeed120m, 3.6*(3+f))
		c.WindSpeed180m = append(c.WindSpeed180m, 3.6*(4+f))
		c.WindDirection10m = append(c.WindDirection10m, uint16(90+i))
		c.WindDirection80m = append(c.WindDirection80m, uint16(180+i))
		c.WindDirection120m = append(c.WindDirection120m, uint16(270+i))
		c.WindDirection180m = append(c.WindDirection180m, uint16(i))
		c.WindGusts10m = append(c.WindGusts10m, 3.6*(5+f))
		c.ShortwaveRadiation = append(c.ShortwaveRadiation, 100+f)
	}
	return &RawHourlyForecast{
		Latitude:  52.52,
		Longitude: 13.41,
		Elevation: 38,
		Timezone:  tz,
		Hourly:    c,
	}
}

func dailyFixture(tz string, n int) *RawDailyForecast {
	c := RawDailyColumns{}
	for i := range n {
		f := float64(i)
		day := fmt.Sprintf("2024-06-%02d", i+1)
		c.Time = append(c.Time, day)
		c.WeatherCode = append(c.WeatherCode, uint8(Overcast))
		c.Temperature2mMax = append(c.Temperature2mMax, 25+f)
		c.Temperature2mMean = append(c.Temperature2mMean, 20+f)
		c.Temperature2mMin = append(c.Temperature2mMin, 15+f)
		c.ApparentTemperatureMax = append(c.ApparentTemperatureMax, 24+f)
		c.ApparentTemperatureMean = append(c.ApparentTemperatureMean, 19+f)
		c.ApparentTemperatureMin = append(c.ApparentTemperatureMin, 14+f)
		c.UVIndexMax = append(c.UVIndexMax, 6+f)
		c.UVIndexClearSkyMax = append(c.UVIndexClearSkyMax, 7+f)
		c.SunshineDuration = append(c.SunshineDuration, 3600*(8+f))
		c.DaylightDuration = append(c.DaylightDuration, 3600*(16+f))
		c.Sunrise = append(c.Sunrise, day+"T04:45")
		c.Sunset = append(c.Sunset, day+"T21:30")
		c.RainSum = append(c.RainSum, 2+f)
		c.ShowersSum = append(c.ShowersSum, 1+f)
		c.SnowfallSum = append(c.SnowfallSum, f)
		c.PrecipitationSum = append(c.PrecipitationSum, 3+f)
		c.PrecipitationHours = append(c.PrecipitationHours, 2+f)
		c.PrecipitationProbabilityMax = append(c.PrecipitationProbabilityMax, uint8(80+i))
		c.PrecipitationProbabilityMean = append(c.PrecipitationProbabilityMean, uint8(50+i))
		c.PrecipitationProbabilityMin = append(c.PrecipitationProbabilityMin, uint8(10+i))
		c.WindSpeed10mMax = append(c.WindSpeed10mMax, 36+f)
		c.WindGusts10mMax = append(c.WindGusts10mMax, 54+f)
		c.WindDirection10mDominant = append(c.WindDirection10mDominant, uint16(180+i))
		c.ShortwaveRadiationSum = append(c.ShortwaveRadiationSum, 20+f)
		c.CloudCoverMax = append(c.CloudCoverMax, 90+f)
		c.CloudCoverMean = append(c.CloudCoverMean, 50+f)
		c.CloudCoverMin = append(c.CloudCoverMin, 10+f)
		c.DewPoint2mMax = append(c.DewPoint2mMax, 12+f)
		c.DewPoint2mMean = append(c.DewPoint2mMean, 10+f)
		c.DewPoint2mMin = append(c.DewPoint2mMin, 8+f)
		c.RelativeHumidity2mMax = append(c.RelativeHumidity2mMax, 95+f)
		c.RelativeHumidity2mMean = append(c.RelativeHumidity2mMean, 70+f)
		c.RelativeHumidity2mMin = append(c.RelativeHumidity2mMin, 40+f)
		c.SurfacePressureMax = append(c.SurfacePressureMax, 1020+f)
		c.SurfacePressureMean = append(c.SurfacePressureMean, 1010+f)
		c.SurfacePressureMin = append(c.SurfacePressureMin, 1000+f)
		c.VisibilityMax = append(c.VisibilityMax, 24000+f)
		c.VisibilityMean = append(c.VisibilityMean, 20000+f)
		c.VisibilityMin = append(c.VisibilityMin, 1000+f)
	}
	return &RawDailyForecast{
		Latitude:  52.52,
		Longitude: 13.41,
		Elevation: 38,
		Timezone:  tz,
		Daily:     c,
	}
}
