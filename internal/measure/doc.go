// Package measure provides unit-carrying scalar types for weather quantities.
//
// Every type stores its value in one canonical unit and converts at
// construction time:
//
//	Temperature    kelvin
//	Length         meters
//	Speed          meters per second
//	Pressure       hectopascals
//	Angle          radians
//	Percentage     fraction in 0.0–1.0
//	PowerDensity   watts per square meter
//	EnergyDensity  joules per square meter
//	DigitalInformation  bytes
//
// Constructors are named after the source unit (FromCelsius, FromKilometersPerHour)
// and accessors after the target unit (Celsius, KilometersPerHour). Accessors only
// convert within a dimension; there are no operations mixing dimensions.
// Range validation (e.g. a percentage above 100) is left to callers.
package measure
