package transpose

import (
	"github.com/cwbudde/algo-transpose/dsp/delay"
	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

// State is the per-tick state of a read engine.
type State int

const (
	// Normal means the read pointer advanced within its grain.
	Normal State = iota
	// Wrapped means the read pointer crossed a grain boundary this tick and
	// was moved by exactly one grain.
	Wrapped
)

func (s State) String() string {
	if s == Wrapped {
		return "wrap"
	}
	return "normal"
}

// Engine is one fractional read tap and its envelope.
//
// The engine keeps its read pointer and its grain phase, the distance from
// the newest sample back to the read pointer, in step: pointer ≡ newest − phase
// modulo the line span. The grain phase always lies in [0, grain).
type Engine struct {
	env    Envelope
	grain  fixed.Phase
	offset fixed.Phase

	pos   fixed.Phase
	phase fixed.Phase
	state State
	tap   fixed.Sample
	gain  fixed.Gain
}

// NewEngine returns an engine whose grain phase starts at offset (taken
// modulo the grain) behind the newest sample of line.
func NewEngine(line *delay.Line, env Envelope, grainLength int, offset fixed.Phase) *Engine {
	grain := fixed.PhaseFromInt(grainLength)
	e := &Engine{
		env:    env,
		grain:  grain,
		offset: offset % grain,
	}
	e.Reset(line)
	return e
}

// Reset returns the engine to its initial grain phase relative to line.
func (e *Engine) Reset(line *delay.Line) {
	e.phase = e.offset
	e.pos = line.Wrap(line.Newest() - e.phase)
	e.state = Normal
	e.tap = 0
	e.gain = e.env.Gain(e.phase)
}

// Step advances the read pointer by inc after one sample has been written to
// line, corrects a grain overrun, and reads the interpolated tap.
func (e *Engine) Step(line *delay.Line, inc fixed.Phase) {
	e.pos = line.Wrap(e.pos + inc)

	// The write head moved one sample, the read pointer moved inc.
	phase := int64(e.phase) + int64(fixed.One) - int64(inc)

	e.state = Normal
	switch {
	case phase < 0:
		// Caught up with the write head: fall back one grain.
		phase += int64(e.grain)
		e.pos = line.Wrap(e.pos - e.grain)
		e.state = Wrapped
	case phase >= int64(e.grain):
		// A full grain behind: jump forward one grain.
		phase -= int64(e.grain)
		e.pos = line.Wrap(e.pos + e.grain)
		e.state = Wrapped
	}
	e.phase = fixed.Phase(phase)

	e.tap = line.ReadAt(e.pos)
	e.gain = e.env.Gain(e.phase)
}

// Position returns the read pointer.
func (e *Engine) Position() fixed.Phase { return e.pos }

// GrainPhase returns the distance from the newest sample to the read pointer.
func (e *Engine) GrainPhase() fixed.Phase { return e.phase }

// State returns the state of the last step.
func (e *Engine) State() State { return e.state }

// Tap returns the last interpolated sample, before envelope weighting.
func (e *Engine) Tap() fixed.Sample { return e.tap }

// Gain returns the last envelope gain.
func (e *Engine) Gain() fixed.Gain { return e.gain }
