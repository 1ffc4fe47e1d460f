package measure

import "fmt"

// Latitude in WGS-84 decimal degrees.
type Latitude struct {
	deg float64
}

// NewLatitude wraps a latitude in decimal degrees.
func NewLatitude(deg float64) Latitude { return Latitude{deg: deg} }

// Degrees returns the coordinate in decimal degrees.
func (l Latitude) Degrees() float64 { return l.deg }

func (l Latitude) String() string { return fmt.Sprintf("%.4f", l.deg) }

// Longitude in WGS-84 decimal degrees.
type Longitude struct {
	deg float64
}

// NewLongitude wraps a longitude in decimal degrees.
func NewLongitude(deg float64) Longitude { return Longitude{deg: deg} }

// Degrees returns the coordinate in decimal degrees.
func (l Longitude) Degrees() float64 { return l.deg }

func (l Longitude) String() string { return fmt.Sprintf("%.4f", l.deg) }
