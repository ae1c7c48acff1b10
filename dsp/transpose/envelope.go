package transpose

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

// Shape identifies a crossfade envelope.
type Shape int

const (
	// Triangle rises linearly from zero at the wrap point to unity at mid grain.
	Triangle Shape = iota
	// RaisedCosine follows sin² over the grain.
	RaisedCosine
)

// envelopeHalf is half a grain in quantized envelope phase units.
const envelopeHalf = 1 << 15

func (s Shape) String() string {
	switch s {
	case Triangle:
		return "triangle"
	case RaisedCosine:
		return "raised-cosine"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	return s == Triangle || s == RaisedCosine
}

// Envelope maps a grain phase to a gain. Gains are computed from the top
// 16 bits of the phase, so for any two phases half a grain apart the gains
// sum to exactly fixed.UnityGain.
type Envelope struct {
	shape Shape
	shift uint
}

// NewEnvelope returns an envelope for grains of 1<<grainShift samples.
func NewEnvelope(shape Shape, grainShift uint) Envelope {
	return Envelope{shape: shape, shift: grainShift}
}

// Shape returns the envelope shape.
func (e Envelope) Shape() Shape { return e.shape }

// Gain returns the gain at grain phase p in [0, grain<<16).
func (e Envelope) Gain(p fixed.Phase) fixed.Gain {
	q := uint32(p>>e.shift) & (2*envelopeHalf - 1)

	if e.shape == RaisedCosine {
		table := raisedCosineTable()
		if q < envelopeHalf {
			return table[q]
		}
		return fixed.UnityGain - table[q-envelopeHalf]
	}

	if q < envelopeHalf {
		return fixed.Gain(q)
	}
	return fixed.Gain(2*envelopeHalf - q)
}

var (
	raisedCosineOnce sync.Once
	raisedCosineLUT  []fixed.Gain
)

// raisedCosineTable holds sin² over the rising half grain.
func raisedCosineTable() []fixed.Gain {
	raisedCosineOnce.Do(func() {
		raisedCosineLUT = make([]fixed.Gain, envelopeHalf)
		for q := range raisedCosineLUT {
			s := math.Sin(math.Pi * float64(q) / (2 * envelopeHalf))
			raisedCosineLUT[q] = fixed.Gain(math.Round(s * s * float64(fixed.UnityGain)))
		}
	})
	return raisedCosineLUT
}
