package fixed

import (
	"fmt"
	"math"
)

// FracBits is the number of fractional bits in a Phase.
const FracBits = 16

const (
	// One is 1.0 as a Phase.
	One Phase = 1 << FracBits

	fracMask = One - 1
)

// Phase is an unsigned Q16.16 fixed-point value. The integer part indexes a
// buffer, the fractional part is an interpolation weight in [0, 1).
//
// Arithmetic wraps modulo 2^32; callers mask to their own span.
type Phase uint32

// PhaseFromInt returns n as a Phase with zero fraction.
func PhaseFromInt(n int) Phase {
	return Phase(uint32(n) << FracBits)
}

// PhaseFromFloat rounds f to the nearest Phase. Negative and non-finite
// inputs map to zero, values beyond the range saturate.
func PhaseFromFloat(f float64) Phase {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	v := math.Round(f * float64(One))
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return Phase(v)
}

// Int returns the integer part.
func (p Phase) Int() int {
	return int(p >> FracBits)
}

// Frac returns the fractional part as a Q16 value.
func (p Phase) Frac() uint32 {
	return uint32(p & fracMask)
}

// Float returns p as a float64.
func (p Phase) Float() float64 {
	return float64(p) / float64(One)
}

func (p Phase) String() string {
	return fmt.Sprintf("%.5f", p.Float())
}
