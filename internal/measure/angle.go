package measure

import (
	"fmt"
	"math"
)

// Angle is stored in radians.
type Angle struct {
	rad float64
}

// FromRadians creates a value from radians.
func FromRadians(v float64) Angle { return Angle{rad: v} }

// FromDegrees creates a value from degrees.
func FromDegrees(v float64) Angle { return Angle{rad: v * math.Pi / 180} }

// Radians returns the value in radians.
func (a Angle) Radians() float64 { return a.rad }

// Degrees returns the value in degrees.
func (a Angle) Degrees() float64 { return a.rad * 180 / math.Pi }

func (a Angle) FormatRadians() string { return fmt.Sprintf("%.2f rad", a.Radians()) }

func (a Angle) FormatDegrees() string { return fmt.Sprintf("%.2f°", a.Degrees()) }

func (a Angle) String() string { return a.FormatRadians() }
