package measure

import "fmt"

// PowerDensity is irradiance stored in W/m².
type PowerDensity struct {
	wm2 float64
}

// FromWattsPerSquareMeter creates a value from watts per square meter.
func FromWattsPerSquareMeter(v float64) PowerDensity { return PowerDensity{wm2: v} }

// FromKilowattsPerSquareMeter creates a value from kilowatts per square meter.
func FromKilowattsPerSquareMeter(v float64) PowerDensity { return PowerDensity{wm2: v * 1e3} }

// WattsPerSquareMeter returns the value in watts per square meter.
func (p PowerDensity) WattsPerSquareMeter() float64 { return p.wm2 }

// KilowattsPerSquareMeter returns the value in kilowatts per square meter.
func (p PowerDensity) KilowattsPerSquareMeter() float64 { return p.wm2 / 1e3 }

func (p PowerDensity) FormatWattsPerSquareMeter() string {
	return fmt.Sprintf("%.2f W/m²", p.WattsPerSquareMeter())
}

func (p PowerDensity) FormatKilowattsPerSquareMeter() string {
	return fmt.Sprintf("%.2f kW/m²", p.KilowattsPerSquareMeter())
}

func (p PowerDensity) String() string { return p.FormatWattsPerSquareMeter() }

// EnergyDensity is radiant exposure stored in J/m².
type EnergyDensity struct {
	jm2 float64
}

// FromJoulesPerSquareMeter creates a value from joules per square meter.
func FromJoulesPerSquareMeter(v float64) EnergyDensity { return EnergyDensity{jm2: v} }

// FromMegajoulesPerSquareMeter converts MJ/m², the unit of Open-Meteo radiation sums.
func FromMegajoulesPerSquareMeter(v float64) EnergyDensity { return EnergyDensity{jm2: v * 1e6} }

// JoulesPerSquareMeter returns the value in joules per square meter.
func (e EnergyDensity) JoulesPerSquareMeter() float64 { return e.jm2 }

// MegajoulesPerSquareMeter returns the value in megajoules per square meter.
func (e EnergyDensity) MegajoulesPerSquareMeter() float64 { return e.jm2 / 1e6 }

func (e EnergyDensity) FormatJoulesPerSquareMeter() string {
	return fmt.Sprintf("%.2f J/m²", e.JoulesPerSquareMeter())
}

func (e EnergyDensity) FormatMegajoulesPerSquareMeter() string {
	return fmt.Sprintf("%.2f MJ/m²", e.MegajoulesPerSquareMeter())
}

func (e EnergyDensity) String() string { return e.FormatJoulesPerSquareMeter() }
