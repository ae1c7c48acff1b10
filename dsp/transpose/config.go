package transpose

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-transpose/dsp/delay"
	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

const (
	// DefaultCapacity is the delay line length. It is also the warm-up period.
	DefaultCapacity = 1024
	// DefaultGrainLength is the distance, in samples, a read pointer travels
	// relative to the write head before it wraps.
	DefaultGrainLength = 512
	// DefaultPitchUnity is the pitch parameter that leaves pitch unchanged.
	DefaultPitchUnity = 1 << 14
	// DefaultMaxRatio is the largest accepted pitch ratio.
	DefaultMaxRatio = 4.0

	minGrainLength = 4
	maxPitchUnity  = 1 << 24
)

// Config holds the static shape of a Shifter.
type Config struct {
	Capacity    int
	GrainLength int
	SampleWidth int
	PitchUnity  uint32
	MaxRatio    float64
	Envelope    Shape
	Overflow    fixed.Overflow
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the configuration matching a 16-bit, 1024-sample
// hardware delay line.
func DefaultConfig() Config {
	return Config{
		Capacity:    DefaultCapacity,
		GrainLength: DefaultGrainLength,
		SampleWidth: fixed.DefaultWidth,
		PitchUnity:  DefaultPitchUnity,
		MaxRatio:    DefaultMaxRatio,
		Envelope:    Triangle,
		Overflow:    fixed.Saturate,
	}
}

// WithCapacity sets the delay line length in samples (power of two).
func WithCapacity(capacity int) Option {
	return func(cfg *Config) {
		cfg.Capacity = capacity
	}
}

// WithGrainLength sets the grain length in samples (power of two, at most
// half the capacity).
func WithGrainLength(length int) Option {
	return func(cfg *Config) {
		cfg.GrainLength = length
	}
}

// WithSampleWidth sets the signed sample width in bits.
func WithSampleWidth(bits int) Option {
	return func(cfg *Config) {
		cfg.SampleWidth = bits
	}
}

// WithPitchUnity sets the pitch parameter value meaning a ratio of 1.
func WithPitchUnity(unity uint32) Option {
	return func(cfg *Config) {
		cfg.PitchUnity = unity
	}
}

// WithMaxRatio sets the largest accepted pitch ratio.
func WithMaxRatio(ratio float64) Option {
	return func(cfg *Config) {
		cfg.MaxRatio = ratio
	}
}

// WithEnvelope selects the crossfade envelope shape.
func WithEnvelope(shape Shape) Option {
	return func(cfg *Config) {
		cfg.Envelope = shape
	}
}

// WithOverflow selects how out-of-range inputs and mixer results are fitted
// to the sample width.
func WithOverflow(policy fixed.Overflow) Option {
	return func(cfg *Config) {
		cfg.Overflow = policy
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	if err := delay.ValidateCapacity(c.Capacity); err != nil {
		return err
	}
	if c.GrainLength < minGrainLength || c.GrainLength&(c.GrainLength-1) != 0 {
		return fmt.Errorf("grain length must be a power of two >= %d: %d", minGrainLength, c.GrainLength)
	}
	if c.GrainLength > c.Capacity/2 {
		return fmt.Errorf("grain length must be at most half the capacity: grain=%d capacity=%d",
			c.GrainLength, c.Capacity)
	}
	if err := fixed.ValidateWidth(c.SampleWidth); err != nil {
		return err
	}
	if c.PitchUnity == 0 || c.PitchUnity > maxPitchUnity {
		return fmt.Errorf("pitch unity must be in [1, %d]: %d", maxPitchUnity, c.PitchUnity)
	}
	if math.IsNaN(c.MaxRatio) || c.MaxRatio < 1 || c.MaxRatio > float64(c.GrainLength) {
		return fmt.Errorf("max ratio must be in [1, %d]: %f", c.GrainLength, c.MaxRatio)
	}
	if c.MaxRatio*float64(c.PitchUnity) > math.MaxUint32 {
		return fmt.Errorf("max ratio %f times pitch unity %d overflows the pitch parameter",
			c.MaxRatio, c.PitchUnity)
	}
	if !c.Envelope.Valid() {
		return fmt.Errorf("unknown envelope shape: %v", c.Envelope)
	}
	if !c.Overflow.Valid() {
		return fmt.Errorf("unknown overflow policy: %v", c.Overflow)
	}
	return nil
}

// grainShift returns log2 of the grain length.
func (c Config) grainShift() uint {
	return uint(bits.TrailingZeros(uint(c.GrainLength)))
}
