package measure

import "fmt"

// Percentage is stored as a fraction where 1.0 means 100%.
type Percentage struct {
	fraction float64
}

// FromFraction creates a Percentage from a 0..1 fraction.
func FromFraction(v float64) Percentage { return Percentage{fraction: v} }

// FromPercent builds a Percentage from a 0–100 value.
func FromPercent(v float64) Percentage { return Percentage{fraction: v / 100} }

// Fraction returns the value in a 0..1 fraction.
func (p Percentage) Fraction() float64 { return p.fraction }

// Percent returns the value in percent (0..100).
func (p Percentage) Percent() float64 { return p.fraction * 100 }

func (p Percentage) FormatFraction() string { return fmt.Sprintf("%.2f", p.Fraction()) }

func (p Percentage) FormatPercent() string { return fmt.Sprintf("%.2f %%", p.Percent()) }

func (p Percentage) String() string { return p.FormatPercent() }
