package measure

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	kilobyte uint64 = 1_000
	megabyte        = 1_000 * kilobyte
	gigabyte        = 1_000 * megabyte
	terabyte        = 1_000 * gigabyte
)

// DigitalInformation is a byte count. Constructors from larger units saturate
// at math.MaxUint64 instead of wrapping.
type DigitalInformation struct {
	bytes uint64
}

// FromBytes creates a value from bytes.
func FromBytes(v uint64) DigitalInformation { return DigitalInformation{bytes: v} }

// FromKilobytes creates a value from decimal kilobytes (1000 bytes), saturating on overflow.
func FromKilobytes(v uint64) DigitalInformation {
	return DigitalInformation{bytes: saturatingMul(v, kilobyte)}
}

// FromMegabytes creates a value from megabytes.
func FromMegabytes(v uint64) DigitalInformation {
	return DigitalInformation{bytes: saturatingMul(v, megabyte)}
}

// FromGigabytes creates a value from gigabytes.
func FromGigabytes(v uint64) DigitalInformation {
	return DigitalInformation{bytes: saturatingMul(v, gigabyte)}
}

// FromTerabytes creates a value from terabytes.
func FromTerabytes(v uint64) DigitalInformation {
	return DigitalInformation{bytes: saturatingMul(v, terabyte)}
}

// Bytes returns the value in bytes.
func (d DigitalInformation) Bytes() float64 { return float64(d.bytes) }

// Kilobytes returns the value in decimal kilobytes.
func (d DigitalInformation) Kilobytes() float64 { return float64(d.bytes) / float64(kilobyte) }

// Megabytes returns the value in megabytes.
func (d DigitalInformation) Megabytes() float64 { return float64(d.bytes) / float64(megabyte) }

// Gigabytes returns the value in gigabytes.
func (d DigitalInformation) Gigabytes() float64 { return float64(d.bytes) / float64(gigabyte) }

// Terabytes returns the value in terabytes.
func (d DigitalInformation) Terabytes() float64 { return float64(d.bytes) / float64(terabyte) }

// Pretty picks the largest unit whose magnitude stays below 1000, falling
// back to terabytes for anything larger.
func (d DigitalInformation) Pretty() string {
	switch {
	case d.Bytes() < 1000:
		return fmt.Sprintf("%d B", d.bytes)
	case d.Kilobytes() < 1000:
		return fmt.Sprintf("%.2f kB", d.Kilobytes())
	case d.Megabytes() < 1000:
		return fmt.Sprintf("%.2f MB", d.Megabytes())
	case d.Gigabytes() < 1000:
		return fmt.Sprintf("%.2f GB", d.Gigabytes())
	default:
		return fmt.Sprintf("%.2f TB", d.Terabytes())
	}
}

func (d DigitalInformation) String() string { return d.Pretty() }

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
