package measure

import "fmt"

const absoluteZeroCelsius = 273.15

// Temperature is stored in kelvin.
type Temperature struct {
	kelvin float64
}

// FromKelvin creates a value from kelvin.
func FromKelvin(v float64) Temperature { return Temperature{kelvin: v} }

// FromCelsius creates a value from degrees Celsius.
func FromCelsius(v float64) Temperature { return Temperature{kelvin: v + absoluteZeroCelsius} }

// FromFahrenheit creates a value from degrees Fahrenheit.
func FromFahrenheit(v float64) Temperature {
	return Temperature{kelvin: (v + 459.67) * 5 / 9}
}

// Kelvin returns the value in kelvin.
func (t Temperature) Kelvin() float64 { return t.kelvin }

// Celsius returns the value in degrees Celsius.
func (t Temperature) Celsius() float64 { return t.kelvin - absoluteZeroCelsius }

// Fahrenheit returns the value in degrees Fahrenheit.
func (t Temperature) Fahrenheit() float64 { return t.kelvin*9/5 - 459.67 }

func (t Temperature) FormatKelvin() string { return fmt.Sprintf("%.2f K", t.Kelvin()) }

func (t Temperature) FormatCelsius() string { return fmt.Sprintf("%.2f °C", t.Celsius()) }

func (t Temperature) FormatFahrenheit() string { return fmt.Sprintf("%.2f °F", t.Fahrenheit()) }

func (t Temperature) String() string { return t.FormatKelvin() }
