package measure

import "fmt"

// UVIndex is the dimensionless WHO ultraviolet index.
type UVIndex struct {
	v float64
}

// NewUVIndex wraps a UV index value.
func NewUVIndex(v float64) UVIndex { return UVIndex{v: v} }

// Value returns the raw index.
func (u UVIndex) Value() float64 { return u.v }

func (u UVIndex) Format() string { return fmt.Sprintf("%.2f UV", u.v) }

func (u UVIndex) String() string { return u.Format() }
