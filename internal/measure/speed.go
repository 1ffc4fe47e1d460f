package measure

import "fmt"

const kmhPerMetersPerSecond = 3.6

// Speed is stored in meters per second. Wind gusts use the same type as
// sustained wind speed.
type Speed struct {
	mps float64
}

// FromMetersPerSecond creates a value from meters per second.
func FromMetersPerSecond(v float64) Speed { return Speed{mps: v} }

// FromKilometersPerHour converts km/h, the unit Open-Meteo reports wind in.
func FromKilometersPerHour(v float64) Speed { return Speed{mps: v / kmhPerMetersPerSecond} }

// MetersPerSecond returns the value in meters per second.
func (s Speed) MetersPerSecond() float64 { return s.mps }

// KilometersPerHour returns the value in kilometers per hour.
func (s Speed) KilometersPerHour() float64 { return s.mps * kmhPerMetersPerSecond }

func (s Speed) FormatMetersPerSecond() string { return fmt.Sprintf("%.2f m/s", s.MetersPerSecond()) }

func (s Speed) FormatKilometersPerHour() string {
	return fmt.Sprintf("%.2f km/h", s.KilometersPerHour())
}

func (s Speed) String() string { return s.FormatMetersPerSecond() }
