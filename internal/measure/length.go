package measure

import "fmt"

// Length is stored in meters. It covers precipitation amounts, snow depth,
// visibility and elevation alike.
type Length struct {
	meters float64
}

// FromMillimeters creates a value from millimeters.
func FromMillimeters(v float64) Length { return Length{meters: v / 1000} }

// FromCentimeters converts centimeters. Open-Meteo reports snowfall in cm.
func FromCentimeters(v float64) Length { return Length{meters: v / 100} }

// FromMeters creates a value from meters.
func FromMeters(v float64) Length { return Length{meters: v} }

// Millimeters returns the value in millimeters.
func (l Length) Millimeters() float64 { return l.meters * 1000 }

// Centimeters returns the value in centimeters.
func (l Length) Centimeters() float64 { return l.meters * 100 }

// Meters returns the value in meters.
func (l Length) Meters() float64 { return l.meters }

// Add returns the sum of two lengths.
func (l Length) Add(o Length) Length { return Length{meters: l.meters + o.meters} }

// Sub returns l minus o.
func (l Length) Sub(o Length) Length { return Length{meters: l.meters - o.meters} }

func (l Length) FormatMillimeters() string { return fmt.Sprintf("%.2f mm", l.Millimeters()) }

func (l Length) FormatCentimeters() string { return fmt.Sprintf("%.2f cm", l.Centimeters()) }

func (l Length) FormatMeters() string { return fmt.Sprintf("%.2f m", l.Meters()) }

func (l Length) String() string { return l.FormatMeters() }
