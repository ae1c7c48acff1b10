// Package pitch provides reusable non-I/O pitch-shifting processors.
//
// Included processors:
//   - GranularShifter: Streaming granular shifter built on dsp/transpose.
//   - PitchProcessor: Shared interface for interchangeable shifters.
package pitch
