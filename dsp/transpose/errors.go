package transpose

import "errors"

var (
	// ErrLengthMismatch is returned when destination and source blocks differ in length.
	ErrLengthMismatch = errors.New("dst and src must have same length")
	// ErrChannelMismatch is returned when a PCM buffer has a different channel count than the bank.
	ErrChannelMismatch = errors.New("buffer channel count does not match bank")
	// ErrBitDepth is returned when a PCM buffer declares a bit depth other than the sample width.
	ErrBitDepth = errors.New("buffer bit depth does not match sample width")
)
