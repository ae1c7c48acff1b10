// Package transpose provides a streaming, bit-exact granular pitch shifter
// built from two crossfaded delay-line taps.
//
// One call to [Shifter.Step] is one tick of the sample clock. Each tick the
// input is written to a circular [delay.Line], the [PitchController] supplies
// the phase increment, two identical [Engine] values advance their read
// pointers and interpolate a tap, and [Mix] sums the taps weighted by each
// engine's [Envelope] gain.
//
// The engines run half a grain apart. A read pointer that catches up with (or
// falls a full grain behind) the write head is moved by exactly one grain,
// and its envelope is zero at that instant, so the jump is never heard. The
// two envelope gains always sum to [fixed.UnityGain].
//
// All arithmetic is integer: positions are Q16.16 [fixed.Phase] values, gains
// are Q1.15 [fixed.Gain] values, and the output is fitted to the configured
// sample width with the configured [fixed.Overflow] policy.
//
// The pitch parameter is a register-style integer where [Config.PitchUnity]
// means no shift. With the default unity of 16384, a parameter of 20000 reads
// the delay line about 1.22 times faster than it is written.
package transpose
