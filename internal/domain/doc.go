// Package domain turns Open-Meteo forecast responses into typed forecast records.
//
// # Data Source
//
// Forecasts come from the Open-Meteo forecast API (https://open-meteo.com/en/docs),
// requested with timezone=auto. The response is column-major: one JSON array per
// variable, all aligned on the "time" array.
//
//	{
//	  "latitude": 52.52, "longitude": 13.42, "elevation": 38.0,
//	  "timezone": "Europe/Berlin",
//	  "hourly": {
//	    "time":           ["2024-07-01T00:00", "2024-07-01T01:00", ...],
//	    "temperature_2m": [17.3, 16.9, ...],
//	    ...
//	  }
//	}
//
// # Time Conventions
//
// Timestamps are naive local times in the response timezone, formatted
// "2006-01-02T15:04" (hourly, sunrise, sunset) or "2006-01-02" (daily). They are
// resolved against the IANA database to UTC. Local times skipped or repeated by a
// daylight-saving transition are rejected rather than guessed.
//
// # Source Units
//
//	temperature, dew point        °C
//	wind speed, wind gusts        km/h
//	wind direction                degrees (integer)
//	precipitation, rain, showers  mm
//	snowfall                      cm
//	snow depth, visibility        m
//	pressure                      hPa
//	humidity, cloud cover,
//	precipitation probability     percent 0–100 (integer)
//	shortwave radiation           W/m² (hourly), MJ/m² (daily sum)
//	sunshine, daylight duration   seconds
//
// # Failure Policy
//
// Parsing is all-or-nothing. Every column must have the same length as "time";
// the first malformed timestamp, unresolvable local time, or unknown weather code
// aborts the whole response.
package domain
