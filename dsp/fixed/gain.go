package fixed

import "math"

// GainBits is the number of fractional bits in a Gain.
const GainBits = 15

// UnityGain is 1.0 as a Gain.
const UnityGain Gain = 1 << GainBits

// Gain is an unsigned Q1.15 gain in [0, UnityGain].
type Gain uint16

// GainFromFloat rounds g to the nearest Gain, clamped to [0, 1].
func GainFromFloat(g float64) Gain {
	if math.IsNaN(g) || g <= 0 {
		return 0
	}
	if g >= 1 {
		return UnityGain
	}
	return Gain(math.Round(g * float64(UnityGain)))
}

// Float returns g as a float64.
func (g Gain) Float() float64 {
	return float64(g) / float64(UnityGain)
}
