package domain

import "fmt"

// WeatherCode is a WMO 4677 present-weather code as used by Open-Meteo.
// The zero value is ClearSky.
type WeatherCode uint8

const (
	ClearSky               WeatherCode = 0
	MainlyClear            WeatherCode = 1
	PartlyCloudy           WeatherCode = 2
	Overcast               WeatherCode = 3
	Fog                    WeatherCode = 45
	DepositingRimeFog      WeatherCode = 48
	DrizzleLight           WeatherCode = 51
	DrizzleModerate        WeatherCode = 53
	DrizzleDense           WeatherCode = 55
	FreezingDrizzleLight   WeatherCode = 56
	FreezingDrizzleDense   WeatherCode = 57
	RainSlight             WeatherCode = 61
	RainModerate           WeatherCode = 63
	RainHeavy              WeatherCode = 65
	FreezingRainLight      WeatherCode = 66
	FreezingRainHeavy      WeatherCode = 67
	SnowSlight             WeatherCode = 71
	SnowModerate           WeatherCode = 73
	SnowHeavy              WeatherCode = 75
	SnowGrains             WeatherCode = 77
	RainShowersSlight      WeatherCode = 80
	RainShowersModerate    WeatherCode = 81
	RainShowersViolent     WeatherCode = 82
	SnowShowersSlight      WeatherCode = 85
	SnowShowersHeavy       WeatherCode = 86
	Thunderstorm           WeatherCode = 95
	ThunderstormSlightHail WeatherCode = 96
	ThunderstormHeavyHail  WeatherCode = 99
)

// Condition is a coarse grouping of weather codes.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionCloudy       Condition = "cloudy"
	ConditionFog          Condition = "fog"
	ConditionDrizzle      Condition = "drizzle"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionShowers      Condition = "showers"
	ConditionThunderstorm Condition = "thunderstorm"
)

type weatherCodeInfo struct {
	name      string
	condition Condition
}

var weatherCodes = map[WeatherCode]weatherCodeInfo{
	ClearSky:               {"clear_sky", ConditionClear},
	MainlyClear:            {"mainly_clear", ConditionClear},
	PartlyCloudy:           {"partly_cloudy", ConditionCloudy},
	Overcast:               {"overcast", ConditionCloudy},
	Fog:                    {"fog", ConditionFog},
	DepositingRimeFog:      {"depositing_rime_fog", ConditionFog},
	DrizzleLight:           {"drizzle_light", ConditionDrizzle},
	DrizzleModerate:        {"drizzle_moderate", ConditionDrizzle},
	DrizzleDense:           {"drizzle_dense", ConditionDrizzle},
	FreezingDrizzleLight:   {"freezing_drizzle_light", ConditionDrizzle},
	FreezingDrizzleDense:   {"freezing_drizzle_dense", ConditionDrizzle},
	RainSlight:             {"rain_slight", ConditionRain},
	RainModerate:           {"rain_moderate", ConditionRain},
	RainHeavy:              {"rain_heavy", ConditionRain},
	FreezingRainLight:      {"freezing_rain_light", ConditionRain},
	FreezingRainHeavy:      {"freezing_rain_heavy", ConditionRain},
	SnowSlight:             {"snow_slight", ConditionSnow},
	SnowModerate:           {"snow_moderate", ConditionSnow},
	SnowHeavy:              {"snow_heavy", ConditionSnow},
	SnowGrains:             {"snow_grains", ConditionSnow},
	RainShowersSlight:      {"rain_showers_slight", ConditionShowers},
	RainShowersModerate:    {"rain_showers_moderate", ConditionShowers},
	RainShowersViolent:     {"rain_showers_violent", ConditionShowers},
	SnowShowersSlight:      {"snow_showers_slight", ConditionShowers},
	SnowShowersHeavy:       {"snow_showers_heavy", ConditionShowers},
	Thunderstorm:           {"thunderstorm", ConditionThunderstorm},
	ThunderstormSlightHail: {"thunderstorm_slight_hail", ConditionThunderstorm},
	ThunderstormHeavyHail:  {"thunderstorm_heavy_hail", ConditionThunderstorm},
}

// ParseWeatherCode classifies a raw code. Codes outside the WMO table are
// rejected with ErrUnknownWeatherCode.
func ParseWeatherCode(code int) (WeatherCode, error) {
	if code < 0 || code > 255 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWeatherCode, code)
	}
	wc := WeatherCode(code)
	if _, ok := weatherCodes[wc]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWeatherCode, code)
	}
	return wc, nil
}

// Code returns the integer code for persistence.
func (c WeatherCode) Code() int { return int(c) }

// Condition returns the coarse grouping for the code.
func (c WeatherCode) Condition() Condition { return weatherCodes[c].condition }

func (c WeatherCode) String() string {
	if info, ok := weatherCodes[c]; ok {
		return info.name
	}
	return fmt.Sprintf("wmo(%d)", uint8(c))
}

// KnownWeatherCodes returns every code in the table, in ascending order.
func KnownWeatherCodes() []WeatherCode {
	codes := make([]WeatherCode, 0, len(weatherCodes))
	for c := 0; c <= 255; c++ {
		if _, ok := weatherCodes[WeatherCode(c)]; ok {
			codes = append(codes, WeatherCode(c))
		}
	}
	return codes
}
