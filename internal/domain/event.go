package domain

import (
	"fmt"
	"strings"
)

// Cadence selects the Open-Meteo forecast resolution.
type Cadence string

const (
	CadenceHourly Cadence = "hourly"
	CadenceDaily  Cadence = "daily"
)

// ParseCadence accepts "hourly" or "daily", case-insensitively.
func ParseCadence(s string) (Cadence, error) {
	switch c := Cadence(strings.ToLower(strings.TrimSpace(s))); c {
	case CadenceHourly, CadenceDaily:
		return c, nil
	default:
		return "", fmt.Errorf("unknown cadence %q", s)
	}
}

// Location is a configured point to fetch forecasts for.
type Location struct {
	ID        string  `yaml:"id" json:"id" validate:"required"`
	Name      string  `yaml:"name" json:"name,omitempty"`
	Latitude  float64 `yaml:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
}

// RawResponse is an undecoded forecast body fetched for one location.
type RawResponse struct {
	Location Location
	Cadence  Cadence
	Body     []byte
}

// OutputEvent is the serialized form destined for a sink topic.
type OutputEvent struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}
