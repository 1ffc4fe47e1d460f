package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTimezone is returned when the response timezone is not in the
	// timezone database.
	ErrUnknownTimezone = errors.New("unknown timezone")

	// ErrMalformedLocalTime is returned when a timestamp does not match the
	// expected layout.
	ErrMalformedLocalTime = errors.New("malformed local time")

	// ErrLocalTime matches both ErrNonexistentLocalTime and ErrAmbiguousLocalTime.
	ErrLocalTime = errors.New("local time does not map to a single instant")

	// ErrNonexistentLocalTime is returned for wall clock times skipped by a
	// spring-forward transition.
	ErrNonexistentLocalTime = fmt.Errorf("%w: skipped by daylight saving", ErrLocalTime)

	// ErrAmbiguousLocalTime is returned for wall clock times repeated by a
	// fall-back transition.
	ErrAmbiguousLocalTime = fmt.Errorf("%w: repeated by daylight saving", ErrLocalTime)

	// ErrUnknownWeatherCode is returned for codes outside the WMO table.
	ErrUnknownWeatherCode = errors.New("unknown weather code")

	// ErrColumnLength is returned when a column is not aligned with "time".
	ErrColumnLength = errors.New("column length mismatch")

	// ErrMalformedPayload is returned when a response body is not the
	// expected JSON shape.
	ErrMalformedPayload = errors.New("malformed forecast payload")
)

// ErrorKind classifies a parse error into a short label for metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownTimezone):
		return "unknown_timezone"
	case errors.Is(err, ErrMalformedLocalTime):
		return "malformed_time"
	case errors.Is(err, ErrNonexistentLocalTime):
		return "nonexistent_time"
	case errors.Is(err, ErrAmbiguousLocalTime):
		return "ambiguous_time"
	case errors.Is(err, ErrUnknownWeatherCode):
		return "unknown_weather_code"
	case errors.Is(err, ErrColumnLength):
		return "column_length"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	default:
		return "other"
	}
}
