package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/fixed"
	"github.com/cwbudde/algo-transpose/dsp/transpose"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	defaultGranularPitchRatio = 1.0
	// Grain duration in seconds; a 512-sample grain at 48 kHz.
	defaultGranularGrainSeconds = 0.0107

	minGranularGrainLength = 64
	maxGranularGrainLength = 8192

	minGranularPitchRatio = 0.25
	maxGranularPitchRatio = 4.0

	granularWidth     = fixed.DefaultWidth
	granularFullScale = float64(int64(1) << (granularWidth - 1))
)

// GranularShifter is a float64 front end for [transpose.Shifter].
//
// Input in [-1, 1] is quantized to 16-bit samples, shifted by two
// crossfaded read taps running through a delay line, and scaled back.
// State carries across Process calls and the output is delayed by
// [GranularShifter.Latency] samples.
//
// This processor is mono and not thread-safe.
type GranularShifter struct {
	sampleRate  float64
	pitchRatio  float64
	grainLength int

	shifter *transpose.Shifter
}

// NewGranularShifter constructs a granular pitch shifter at unity ratio.
func NewGranularShifter(sampleRate float64) (*GranularShifter, error) {
	if !isFinitePositive(sampleRate) {
		return nil, fmt.Errorf("granular pitch shifter sample rate must be positive and finite: %f", sampleRate)
	}
	s, grain, err := newGranularTransposer(sampleRate, defaultGranularPitchRatio)
	if err != nil {
		return nil, err
	}
	return &GranularShifter{
		sampleRate:  sampleRate,
		pitchRatio:  defaultGranularPitchRatio,
		grainLength: grain,
		shifter:     s,
	}, nil
}

// SampleRate returns the current sample rate in Hz.
func (g *GranularShifter) SampleRate() float64 { return g.sampleRate }

// PitchRatio returns the pitch ratio.
func (g *GranularShifter) PitchRatio() float64 { return g.pitchRatio }

// PitchSemitones returns the current pitch shift in semitones.
func (g *GranularShifter) PitchSemitones() float64 { return 12.0 * math.Log2(g.pitchRatio) }

// GrainLength returns the grain length in samples.
func (g *GranularShifter) GrainLength() int { return g.grainLength }

// Latency returns the output delay in samples at unity ratio.
func (g *GranularShifter) Latency() int { return g.shifter.Latency() }

// SetSampleRate updates the sample rate. The grain length follows the new
// rate, so the delay line is cleared. On error the shifter is left unchanged.
func (g *GranularShifter) SetSampleRate(sampleRate float64) error {
	if !isFinitePositive(sampleRate) {
		return fmt.Errorf("granular pitch shifter sample rate must be positive and finite: %f", sampleRate)
	}
	s, grain, err := newGranularTransposer(sampleRate, g.pitchRatio)
	if err != nil {
		return err
	}
	g.sampleRate = sampleRate
	g.grainLength = grain
	g.shifter = s
	return nil
}

// SetPitchRatio updates the pitch shift ratio. The change applies from the
// next sample without moving the read taps.
func (g *GranularShifter) SetPitchRatio(ratio float64) error {
	if !isFinitePositive(ratio) || ratio < minGranularPitchRatio || ratio > maxGranularPitchRatio {
		return fmt.Errorf("granular pitch shifter ratio must be in [%f, %f]: %f",
			minGranularPitchRatio, maxGranularPitchRatio, ratio)
	}
	if err := g.shifter.SetPitchRatio(ratio); err != nil {
		return err
	}
	g.pitchRatio = ratio
	return nil
}

// SetPitchSemitones updates pitch shift in semitones.
func (g *GranularShifter) SetPitchSemitones(semitones float64) error {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) {
		return fmt.Errorf("granular pitch shifter semitones must be finite: %f", semitones)
	}
	return g.SetPitchRatio(math.Pow(2, semitones/12.0))
}

// Reset clears the delay line.
func (g *GranularShifter) Reset() { g.shifter.Reset() }

// Process returns a pitch-shifted copy of input.
func (g *GranularShifter) Process(input []float64) []float64 {
	out := make([]float64, len(input))
	copy(out, input)
	g.ProcessInPlace(out)
	return out
}

// ProcessInPlace applies pitch shifting to buf in place.
func (g *GranularShifter) ProcessInPlace(buf []float64) {
	if len(buf) == 0 {
		return
	}
	for i, v := range buf {
		buf[i] = float64(g.shifter.Tick(quantize(v)))
	}
	vecmath.ScaleBlock(buf, buf, 1/granularFullScale)
}

// newGranularTransposer builds the integer shifter for sampleRate.
func newGranularTransposer(sampleRate, ratio float64) (*transpose.Shifter, int, error) {
	grain := granularGrainLength(sampleRate)
	s, err := transpose.New(
		transpose.WithCapacity(2*grain),
		transpose.WithGrainLength(grain),
		transpose.WithSampleWidth(granularWidth),
	)
	if err != nil {
		return nil, 0, err
	}
	if err := s.SetPitchRatio(ratio); err != nil {
		return nil, 0, err
	}
	return s, grain, nil
}

// granularGrainLength returns the power of two closest to the default grain
// duration at sampleRate.
func granularGrainLength(sampleRate float64) int {
	exp := math.Round(math.Log2(sampleRate * defaultGranularGrainSeconds))
	switch {
	case exp <= math.Log2(minGranularGrainLength):
		return minGranularGrainLength
	case exp >= math.Log2(maxGranularGrainLength):
		return maxGranularGrainLength
	default:
		return 1 << int(exp)
	}
}

func quantize(v float64) fixed.Sample {
	if math.IsNaN(v) {
		return 0
	}
	lo, hi := fixed.Range(granularWidth)
	return fixed.Sample(max(float64(lo), min(float64(hi), math.Round(v*granularFullScale))))
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
