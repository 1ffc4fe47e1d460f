package measure

import "fmt"

// Pressure is stored in hectopascals.
type Pressure struct {
	hpa float64
}

// FromHectopascals creates a value from hectopascals.
func FromHectopascals(v float64) Pressure { return Pressure{hpa: v} }

// FromKilopascals creates a value from kilopascals.
func FromKilopascals(v float64) Pressure { return Pressure{hpa: v * 10} }

// FromBar creates a value from bar.
func FromBar(v float64) Pressure { return Pressure{hpa: v * 1000} }

// Hectopascals returns the value in hectopascals.
func (p Pressure) Hectopascals() float64 { return p.hpa }

// Kilopascals returns the value in kilopascals.
func (p Pressure) Kilopascals() float64 { return p.hpa / 10 }

// Bar returns the value in bar.
func (p Pressure) Bar() float64 { return p.hpa / 1000 }

func (p Pressure) FormatHectopascals() string { return fmt.Sprintf("%.2f hPa", p.Hectopascals()) }

func (p Pressure) FormatKilopascals() string { return fmt.Sprintf("%.2f kPa", p.Kilopascals()) }

func (p Pressure) FormatBar() string { return fmt.Sprintf("%.2f bar", p.Bar()) }

func (p Pressure) String() string { return p.FormatHectopascals() }
