package freq

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-transpose/dsp/window"
)

const (
	minSpectralLen      = 16
	minCrossings        = 3
	silenceRMS          = 1e-9
	parabolicDenomFloor = 1e-12
)

var (
	// ErrTooShort is returned when the input cannot hold enough signal.
	ErrTooShort = errors.New("input too short for frequency estimate")
	// ErrSilent is returned for an input without measurable energy.
	ErrSilent = errors.New("input is silent")
)

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(f64.DotProduct(x, x) / float64(len(x)))
}

// SpectralPeak returns the frequency of the strongest component of x. The
// analysis uses the last power-of-two block of x, with the mean removed.
func SpectralPeak(x []float64, sampleRate float64) (float64, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return 0, err
	}
	n := floorPow2(len(x))
	if n < minSpectralLen {
		return 0, fmt.Errorf("%w: %d samples, need %d", ErrTooShort, len(x), minSpectralLen)
	}

	block := removeMean(x[len(x)-n:])
	if RMS(block) <= silenceRMS {
		return 0, ErrSilent
	}

	window.Apply(window.TypeHann, block, window.WithPeriodic())

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("fft plan: %w", err)
	}

	in := make([]complex128, n)
	out := make([]complex128, n)
	for i, v := range block {
		in[i] = complex(v, 0)
	}
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("forward fft: %w", err)
	}

	peak := 1
	peakMag := 0.0
	for k := 1; k < n/2; k++ {
		mag := math.Hypot(real(out[k]), imag(out[k]))
		if mag > peakMag {
			peakMag = mag
			peak = k
		}
	}

	offset := 0.0
	if peak > 1 && peak < n/2-1 {
		a := math.Log(math.Hypot(real(out[peak-1]), imag(out[peak-1])) + silenceRMS)
		b := math.Log(peakMag + silenceRMS)
		c := math.Log(math.Hypot(real(out[peak+1]), imag(out[peak+1])) + silenceRMS)
		if denom := a - 2*b + c; math.Abs(denom) > parabolicDenomFloor {
			offset = 0.5 * (a - c) / denom
		}
	}

	return (float64(peak) + offset) * sampleRate / float64(n), nil
}

// ZeroCrossing estimates the fundamental of x from its rising zero crossings.
// Crossing instants are located by linear interpolation and regressed on
// their ordinal; the slope is the period.
func ZeroCrossing(x []float64, sampleRate float64) (float64, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return 0, err
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: %d samples", ErrTooShort, len(x))
	}

	block := removeMean(x)
	if RMS(block) <= silenceRMS {
		return 0, ErrSilent
	}

	var ordinals, instants []float64
	for i := 1; i < len(block); i++ {
		prev, cur := block[i-1], block[i]
		if prev < 0 && cur >= 0 {
			frac := -prev / (cur - prev)
			ordinals = append(ordinals, float64(len(ordinals)))
			instants = append(instants, float64(i-1)+frac)
		}
	}
	if len(instants) < minCrossings {
		return 0, fmt.Errorf("%w: %d rising zero crossings, need %d", ErrTooShort, len(instants), minCrossings)
	}

	_, period := stat.LinearRegression(ordinals, instants, nil, false)
	if period <= 0 {
		return 0, fmt.Errorf("zero crossing period must be positive: %f", period)
	}
	return sampleRate / period, nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be positive and finite: %f", sampleRate)
	}
	return nil
}

func removeMean(x []float64) []float64 {
	out := make([]float64, len(x))
	mean := stat.Mean(x, nil)
	for i, v := range x {
		out[i] = v - mean
	}
	return out
}

func floorPow2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	if p > n {
		return 0
	}
	return p
}
