// Package spectrum implements the RGB light quantities carried along paths.
package spectrum

import (
	"fmt"
	"math"
)

// Spectrum stores light intensity for the red, green and blue bands.
type Spectrum [3]float32

var (
	// Black is the absence of light and the additive identity.
	Black = Spectrum{}

	// One is the multiplicative identity.
	One = Spectrum{1, 1, 1}
)

// Create a spectrum from its RGB components.
func RGB(r, g, b float32) Spectrum {
	return Spectrum{r, g, b}
}

// Create a spectrum with the same value in every band.
func Gray(v float32) Spectrum {
	return Spectrum{v, v, v}
}

// Add another spectrum.
func (s Spectrum) Add(s2 Spectrum) Spectrum {
	return Spectrum{s[0] + s2[0], s[1] + s2[1], s[2] + s2[2]}
}

// Multiply with another spectrum band by band.
func (s Spectrum) Mul(s2 Spectrum) Spectrum {
	return Spectrum{s[0] * s2[0], s[1] * s2[1], s[2] * s2[2]}
}

// Multiply every band with a scalar.
func (s Spectrum) Scale(v float32) Spectrum {
	return Spectrum{s[0] * v, s[1] * v, s[2] * v}
}

// Divide every band by a scalar.
func (s Spectrum) Div(v float32) Spectrum {
	inv := 1.0 / v
	return Spectrum{s[0] * inv, s[1] * inv, s[2] * inv}
}

// Returns true if all bands are zero.
func (s Spectrum) IsBlack() bool {
	return s[0] == 0 && s[1] == 0 && s[2] == 0
}

// Get the value of the brightest band.
func (s Spectrum) MaxComponent() float32 {
	return float32(math.Max(float64(s[0]), math.Max(float64(s[1]), float64(s[2]))))
}

// Get the perceived brightness using the Rec. 709 weights.
func (s Spectrum) Luminance() float32 {
	return 0.2126*s[0] + 0.7152*s[1] + 0.0722*s[2]
}

// Returns true if any band is NaN.
func (s Spectrum) HasNaN() bool {
	return s[0] != s[0] || s[1] != s[1] || s[2] != s[2]
}

// Returns true if no band is negative or NaN.
func (s Spectrum) IsNonNegative() bool {
	return s[0] >= 0 && s[1] >= 0 && s[2] >= 0
}

func (s Spectrum) String() string {
	return fmt.Sprintf("(%.5f, %.5f, %.5f)", s[0], s[1], s[2])
}
