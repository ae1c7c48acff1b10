package transpose

import (
	"fmt"

	"github.com/cwbudde/algo-transpose/dsp/delay"
	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

// Frame is everything the shifter drives on one tick.
type Frame struct {
	In    fixed.Sample
	Out   fixed.Sample
	Tap   [2]fixed.Sample
	Env   [2]fixed.Gain
	State [2]State
}

// Shifter is a dual-tap granular pitch shifter. It is not safe for
// concurrent use.
type Shifter struct {
	cfg     Config
	line    *delay.Line
	pitch   *PitchController
	engines [2]*Engine
	ticks   uint64
	last    Frame
}

// New constructs a shifter at unity pitch with an all-zero delay line.
func New(opts ...Option) (*Shifter, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	line, err := delay.New(cfg.Capacity)
	if err != nil {
		return nil, err
	}

	pitch, err := NewPitchController(cfg.PitchUnity, cfg.MaxRatio)
	if err != nil {
		return nil, err
	}

	env := NewEnvelope(cfg.Envelope, cfg.grainShift())
	half := fixed.PhaseFromInt(cfg.GrainLength / 2)

	s := &Shifter{
		cfg:   cfg,
		line:  line,
		pitch: pitch,
		engines: [2]*Engine{
			NewEngine(line, env, cfg.GrainLength, half),
			NewEngine(line, env, cfg.GrainLength, 0),
		},
	}
	s.last = s.frame(0)
	return s, nil
}

// Config returns the effective configuration.
func (s *Shifter) Config() Config { return s.cfg }

// Pitch returns the latched pitch parameter.
func (s *Shifter) Pitch() uint32 { return s.pitch.Param() }

// SetPitch latches a raw pitch parameter for the next tick. Values above
// the maximum ratio are clamped.
func (s *Shifter) SetPitch(param uint32) { s.pitch.SetParam(param) }

// PitchRatio returns the pitch ratio.
func (s *Shifter) PitchRatio() float64 { return s.pitch.Ratio() }

// SetPitchRatio updates the pitch shift ratio.
func (s *Shifter) SetPitchRatio(ratio float64) error { return s.pitch.SetRatio(ratio) }

// PitchSemitones returns the current pitch shift in semitones.
func (s *Shifter) PitchSemitones() float64 { return s.pitch.Semitones() }

// SetPitchSemitones updates pitch shift in semitones.
func (s *Shifter) SetPitchSemitones(semitones float64) error {
	return s.pitch.SetSemitones(semitones)
}

// Controller returns the pitch controller.
func (s *Shifter) Controller() *PitchController { return s.pitch }

// Engine returns read engine i (0 or 1).
func (s *Shifter) Engine(i int) *Engine { return s.engines[i] }

// Latency returns the delay, in ticks, between input and output at unity
// pitch.
func (s *Shifter) Latency() int { return s.cfg.GrainLength / 2 }

// Warmup returns the number of ticks needed to fill the delay line.
func (s *Shifter) Warmup() int { return s.cfg.Capacity }

// Ticks returns the number of ticks since construction or Reset.
func (s *Shifter) Ticks() uint64 { return s.ticks }

// Warm reports whether the delay line holds only real input history.
func (s *Shifter) Warm() bool { return s.ticks >= uint64(s.cfg.Capacity) }

// Last returns the frame of the most recent tick.
func (s *Shifter) Last() Frame { return s.last }

// Step runs one tick: write the input, sample the pitch increment, advance
// both engines, then mix.
func (s *Shifter) Step(in fixed.Sample) Frame {
	return s.step(int64(in))
}

func (s *Shifter) step(in int64) Frame {
	sample := s.cfg.Overflow.Fit(in, s.cfg.SampleWidth)
	s.line.Write(sample)

	inc := s.pitch.Increment()
	s.engines[0].Step(s.line, inc)
	s.engines[1].Step(s.line, inc)

	s.ticks++
	s.last = s.frame(sample)
	return s.last
}

func (s *Shifter) frame(in fixed.Sample) Frame {
	e0, e1 := s.engines[0], s.engines[1]
	return Frame{
		In:    in,
		Out:   Mix(e0.Tap(), e1.Tap(), e0.Gain(), e1.Gain(), s.cfg.SampleWidth, s.cfg.Overflow),
		Tap:   [2]fixed.Sample{e0.Tap(), e1.Tap()},
		Env:   [2]fixed.Gain{e0.Gain(), e1.Gain()},
		State: [2]State{e0.State(), e1.State()},
	}
}

// Tick runs one tick and returns only the output sample.
func (s *Shifter) Tick(in fixed.Sample) fixed.Sample {
	return s.step(int64(in)).Out
}

// Process pitch-shifts input and returns a new output block with equal length.
func (s *Shifter) Process(input []fixed.Sample) []fixed.Sample {
	if len(input) == 0 {
		return nil
	}
	out := make([]fixed.Sample, len(input))
	for i, v := range input {
		out[i] = s.Tick(v)
	}
	return out
}

// ProcessInto pitch-shifts src into dst. dst and src may alias.
func (s *Shifter) ProcessInto(dst, src []fixed.Sample) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), len(src))
	}
	for i, v := range src {
		dst[i] = s.Tick(v)
	}
	return nil
}

// ProcessInPlace applies pitch shifting to buf in place.
func (s *Shifter) ProcessInPlace(buf []fixed.Sample) {
	for i, v := range buf {
		buf[i] = s.Tick(v)
	}
}

// Reset clears the delay line and returns both engines to their initial
// phases. Configuration and the pitch parameter are kept.
func (s *Shifter) Reset() {
	s.line.Reset()
	for _, e := range s.engines {
		e.Reset(s.line)
	}
	s.ticks = 0
	s.last = s.frame(0)
}
