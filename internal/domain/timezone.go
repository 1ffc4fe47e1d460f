package domain

import (
	"fmt"
	"time"
)

const (
	localDateTimeLayout = "2006-01-02T15:04"
	localDateLayout     = "2006-01-02"
)

// ZoneLoader looks up an IANA timezone identifier. time.LoadLocation is the
// default; tests and embedded builds can supply their own.
type ZoneLoader func(name string) (*time.Location, error)

// LoadZone resolves a timezone identifier with the given loader.
func LoadZone(load ZoneLoader, name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownTimezone)
	}
	if load == nil {
		load = time.LoadLocation
	}
	loc, err := load(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimezone, name, err)
	}
	return loc, nil
}

// ParseLocalDateTime parses a naive "2006-01-02T15:04" timestamp. The result
// carries the wall clock fields in UTC and is not yet an instant.
func ParseLocalDateTime(s string) (time.Time, error) {
	t, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrMalformedLocalTime, s, err)
	}
	return t, nil
}

// ParseLocalDate parses a naive "2006-01-02" calendar date.
func ParseLocalDate(s string) (Date, error) {
	t, err := time.Parse(localDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: %v", ErrMalformedLocalTime, s, err)
	}
	return Date{Time: t}, nil
}

// ResolveLocal maps a naive wall clock time in loc to the single UTC instant
// it denotes. Times inside a spring-forward gap fail with
// ErrNonexistentLocalTime and times inside a fall-back overlap fail with
// ErrAmbiguousLocalTime.
func ResolveLocal(wall time.Time, loc *time.Location) (time.Time, error) {
	wall = time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.UTC)

	// A transition changes the offset, so the offsets in effect a day before
	// and a day after bracket every candidate.
	var found []time.Time
	for _, shift := range []time.Duration{-24 * time.Hour, 0, 24 * time.Hour} {
		_, offset := wall.Add(shift).In(loc).Zone()
		candidate := wall.Add(-time.Duration(offset) * time.Second)
		if !sameWallClock(candidate.In(loc), wall) || containsInstant(found, candidate) {
			continue
		}
		found = append(found, candidate)
	}

	switch len(found) {
	case 1:
		return found[0].UTC(), nil
	case 0:
		return time.Time{}, fmt.Errorf("%w: %s in %s", ErrNonexistentLocalTime, wall.Format(localDateTimeLayout), loc)
	default:
		return time.Time{}, fmt.Errorf("%w: %s in %s", ErrAmbiguousLocalTime, wall.Format(localDateTimeLayout), loc)
	}
}

// resolveLocalString parses and resolves one timestamp column value.
func resolveLocalString(s string, loc *time.Location) (time.Time, error) {
	wall, err := ParseLocalDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return ResolveLocal(wall, loc)
}

func sameWallClock(t, wall time.Time) bool {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return y == wall.Year() && mo == wall.Month() && d == wall.Day() &&
		h == wall.Hour() && mi == wall.Minute() && s == wall.Second() &&
		t.Nanosecond() == wall.Nanosecond()
}

func containsInstant(ts []time.Time, t time.Time) bool {
	for _, x := range ts {
		if x.Equal(t) {
			return true
		}
	}
	return false
}
