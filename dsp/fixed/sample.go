package fixed

import "fmt"

const (
	// MinWidth is the narrowest supported sample width in bits.
	MinWidth = 2
	// MaxWidth is the widest supported sample width in bits.
	MaxWidth = 32
	// DefaultWidth matches 16-bit PCM.
	DefaultWidth = 16
)

// Sample is one quantized amplitude value.
type Sample int32

// Overflow selects how a value outside a sample width is brought back into range.
type Overflow int

const (
	// Saturate clamps to the nearest representable value.
	Saturate Overflow = iota
	// Wrap keeps the low bits, two's complement style.
	Wrap
)

func (o Overflow) String() string {
	switch o {
	case Saturate:
		return "saturate"
	case Wrap:
		return "wrap"
	default:
		return fmt.Sprintf("Overflow(%d)", int(o))
	}
}

// Valid reports whether o is a known policy.
func (o Overflow) Valid() bool {
	return o == Saturate || o == Wrap
}

// ValidateWidth checks that width is a supported sample width.
func ValidateWidth(width int) error {
	if width < MinWidth || width > MaxWidth {
		return fmt.Errorf("sample width must be in [%d, %d] bits: %d", MinWidth, MaxWidth, width)
	}
	return nil
}

// Range returns the inclusive signed range of a width-bit sample.
func Range(width int) (lo, hi int64) {
	hi = int64(1)<<(width-1) - 1
	return -hi - 1, hi
}

// Fit brings v into the signed range of a width-bit sample using policy o.
func (o Overflow) Fit(v int64, width int) Sample {
	lo, hi := Range(width)
	if v >= lo && v <= hi {
		return Sample(v)
	}

	if o == Wrap {
		shift := 64 - width
		return Sample(v << shift >> shift)
	}

	if v < lo {
		return Sample(lo)
	}
	return Sample(hi)
}

// Lerp interpolates between a and b with a Q16 fraction in [0, One),
// rounding half up.
func Lerp(a, b Sample, frac uint32) Sample {
	f := int64(frac & uint32(fracMask))
	acc := int64(a)*(int64(One)-f) + int64(b)*f + int64(One)/2
	return Sample(acc >> FracBits)
}
