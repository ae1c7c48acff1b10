package transpose

import (
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

// Bank runs one Shifter per channel over interleaved PCM buffers. All
// channels share the same configuration and pitch.
type Bank struct {
	shifters []*Shifter
}

// NewBank constructs a bank of channels identical shifters.
func NewBank(channels int, opts ...Option) (*Bank, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("bank channel count must be > 0: %d", channels)
	}
	b := &Bank{shifters: make([]*Shifter, channels)}
	for ch := range channels {
		s, err := New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create shifter for channel %d: %w", ch, err)
		}
		b.shifters[ch] = s
	}
	return b, nil
}

// Channels returns the channel count.
func (b *Bank) Channels() int { return len(b.shifters) }

// Channel returns the shifter for channel ch.
func (b *Bank) Channel(ch int) *Shifter { return b.shifters[ch] }

// SetPitch latches the same raw pitch parameter on every channel.
func (b *Bank) SetPitch(param uint32) {
	for _, s := range b.shifters {
		s.SetPitch(param)
	}
}

// SetPitchRatio updates the pitch ratio of every channel.
func (b *Bank) SetPitchRatio(ratio float64) error {
	for _, s := range b.shifters {
		if err := s.SetPitchRatio(ratio); err != nil {
			return err
		}
	}
	return nil
}

// Reset resets every channel.
func (b *Bank) Reset() {
	for _, s := range b.shifters {
		s.Reset()
	}
}

// ProcessBuffer pitch-shifts an interleaved buffer in place, one tick per
// frame. A zero SourceBitDepth is taken to mean the configured sample width.
func (b *Bank) ProcessBuffer(buf *audio.IntBuffer) error {
	if buf == nil || buf.Format == nil {
		return errors.New("buffer and buffer format must not be nil")
	}
	channels := len(b.shifters)
	if buf.Format.NumChannels != channels {
		return fmt.Errorf("%w: buffer=%d bank=%d", ErrChannelMismatch, buf.Format.NumChannels, channels)
	}
	width := b.shifters[0].cfg.SampleWidth
	if buf.SourceBitDepth != 0 && buf.SourceBitDepth != width {
		return fmt.Errorf("%w: buffer=%d width=%d", ErrBitDepth, buf.SourceBitDepth, width)
	}
	if len(buf.Data)%channels != 0 {
		return fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrLengthMismatch, len(buf.Data), channels)
	}

	for i, v := range buf.Data {
		buf.Data[i] = int(b.shifters[i%channels].step(int64(v)).Out)
	}
	return nil
}
