// Package freq estimates the fundamental frequency of a block of samples.
//
// Two estimators are provided:
//   - [SpectralPeak]: Hann-windowed FFT peak with parabolic refinement
//   - [ZeroCrossing]: least-squares fit of interpolated rising zero crossings
//
// Both return frequencies in the unit of sampleRate; pass 1 to get cycles
// per sample.
package freq
