package transpose

import "github.com/cwbudde/algo-transpose/dsp/fixed"

// Mix sums two envelope-weighted taps, rounds half up, and fits the result to
// width bits with the given overflow policy.
func Mix(tap0, tap1 fixed.Sample, env0, env1 fixed.Gain, width int, overflow fixed.Overflow) fixed.Sample {
	acc := int64(tap0)*int64(env0) + int64(tap1)*int64(env1) + 1<<(fixed.GainBits-1)
	return overflow.Fit(acc>>fixed.GainBits, width)
}
