package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// QuantizedSine generates amplitude*sin(radPerSample*i) truncated toward
// zero, the way a testbench converts a float stimulus with int().
func QuantizedSine(amplitude, radPerSample float64, length int) []fixed.Sample {
	out := make([]fixed.Sample, length)
	for i := range out {
		out[i] = fixed.Sample(math.Trunc(amplitude * math.Sin(radPerSample*float64(i))))
	}
	return out
}

// QuantizedNoise generates integer white noise in [-amplitude, amplitude].
func QuantizedNoise(seed int64, amplitude int, length int) []fixed.Sample {
	out := make([]fixed.Sample, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = fixed.Sample(rng.Intn(2*amplitude+1) - amplitude)
	}
	return out
}

// Zeros returns n zero samples.
func Zeros(n int) []fixed.Sample {
	return make([]fixed.Sample, n)
}

// Floats converts integer samples to float64 without scaling.
func Floats(x []fixed.Sample) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}
