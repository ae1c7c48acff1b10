package delay

import (
	"fmt"

	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

const (
	// MinCapacity is the smallest supported line length.
	MinCapacity = 4
	// MaxCapacity is the largest line length whose positions fit a Phase.
	MaxCapacity = 1 << 15
)

// Line is a circular delay line of fixed-point samples with a power-of-two
// capacity. It is written once per tick and read at fractional positions.
type Line struct {
	buffer   []fixed.Sample
	mask     int
	writePos int
}

// New returns a zeroed delay line holding capacity samples.
func New(capacity int) (*Line, error) {
	if err := ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Line{
		buffer: make([]fixed.Sample, capacity),
		mask:   capacity - 1,
	}, nil
}

// ValidateCapacity checks that capacity is a power of two in
// [MinCapacity, MaxCapacity].
func ValidateCapacity(capacity int) error {
	if capacity < MinCapacity || capacity > MaxCapacity || capacity&(capacity-1) != 0 {
		return fmt.Errorf("delay capacity must be a power of two in [%d, %d]: %d",
			MinCapacity, MaxCapacity, capacity)
	}
	return nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Head returns the index the next Write will store to.
func (d *Line) Head() int {
	return d.writePos
}

// Span returns the length of the position space, capacity in Q16.16.
func (d *Line) Span() fixed.Phase {
	return fixed.PhaseFromInt(len(d.buffer))
}

// Newest returns the position of the most recently written sample.
func (d *Line) Newest() fixed.Phase {
	return fixed.PhaseFromInt((d.writePos - 1) & d.mask)
}

// Wrap reduces pos into [0, Span).
func (d *Line) Wrap(pos fixed.Phase) fixed.Phase {
	return pos & (d.Span() - 1)
}

// Write writes one sample.
func (d *Line) Write(sample fixed.Sample) {
	d.buffer[d.writePos] = sample
	d.writePos = (d.writePos + 1) & d.mask
}

// Read reads an integer delay in samples. Delay 1 is the most recent sample.
func (d *Line) Read(delay int) fixed.Sample {
	return d.buffer[(d.writePos-delay)&d.mask]
}

// ReadAt linearly interpolates between the two samples around pos.
// Indices wrap modulo the capacity.
func (d *Line) ReadAt(pos fixed.Phase) fixed.Sample {
	i := pos.Int() & d.mask
	frac := pos.Frac()
	x0 := d.buffer[i]
	if frac == 0 {
		return x0
	}
	x1 := d.buffer[(i+1)&d.mask]
	return fixed.Lerp(x0, x1, frac)
}

// ReadFractional reads a fractional delay behind the write head, matching
// Read: a delay of One returns the most recent sample.
func (d *Line) ReadFractional(delay fixed.Phase) fixed.Sample {
	return d.ReadAt(d.Wrap(fixed.PhaseFromInt(d.writePos) - delay))
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
