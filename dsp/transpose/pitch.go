package transpose

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

// PitchController maps the external pitch parameter to the phase increment
// shared by both read engines.
//
// A new parameter only changes the rate at which the read pointers advance;
// it never moves them. The increment is sampled once per tick, so a value set
// between ticks is adopted by the next one.
type PitchController struct {
	unity    uint32
	maxParam uint32
	param    uint32
	inc      fixed.Phase
}

// NewPitchController returns a controller at unity ratio.
func NewPitchController(unity uint32, maxRatio float64) (*PitchController, error) {
	if unity == 0 || unity > maxPitchUnity {
		return nil, fmt.Errorf("pitch unity must be in [1, %d]: %d", maxPitchUnity, unity)
	}
	if math.IsNaN(maxRatio) || maxRatio < 1 || maxRatio*float64(unity) > math.MaxUint32 {
		return nil, fmt.Errorf("pitch max ratio out of range: %f", maxRatio)
	}
	p := &PitchController{
		unity:    unity,
		maxParam: uint32(math.Floor(maxRatio * float64(unity))),
	}
	p.SetParam(unity)
	return p, nil
}

// SetParam latches a raw pitch parameter, clamped to MaxParam.
func (p *PitchController) SetParam(param uint32) {
	if param > p.maxParam {
		param = p.maxParam
	}
	p.param = param
	p.inc = fixed.Phase(uint64(param) << fixed.FracBits / uint64(p.unity))
}

// Param returns the latched pitch parameter.
func (p *PitchController) Param() uint32 { return p.param }

// Unity returns the parameter value meaning no shift.
func (p *PitchController) Unity() uint32 { return p.unity }

// MaxParam returns the largest accepted parameter.
func (p *PitchController) MaxParam() uint32 { return p.maxParam }

// Increment returns the per-tick read pointer advance.
func (p *PitchController) Increment() fixed.Phase { return p.inc }

// Ratio returns the pitch ratio of the latched parameter.
func (p *PitchController) Ratio() float64 {
	return float64(p.param) / float64(p.unity)
}

// Semitones returns the current pitch shift in semitones.
func (p *PitchController) Semitones() float64 {
	return 12.0 * math.Log2(p.Ratio())
}

// SetRatio latches the parameter closest to ratio.
func (p *PitchController) SetRatio(ratio float64) error {
	maxRatio := float64(p.maxParam) / float64(p.unity)
	if math.IsNaN(ratio) || ratio < 0 || ratio > maxRatio {
		return fmt.Errorf("pitch ratio must be in [0, %f]: %f", maxRatio, ratio)
	}
	p.SetParam(uint32(math.Round(ratio * float64(p.unity))))
	return nil
}

// SetSemitones latches the parameter closest to a shift in semitones.
func (p *PitchController) SetSemitones(semitones float64) error {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) {
		return fmt.Errorf("pitch semitones must be finite: %f", semitones)
	}
	if err := p.SetRatio(math.Pow(2, semitones/12.0)); err != nil {
		return fmt.Errorf("pitch semitones out of range: %w", err)
	}
	return nil
}
