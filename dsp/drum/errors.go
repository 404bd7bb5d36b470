package drum

import "errors"

var (
	// ErrUnknownKind is returned by ParseKind for unrecognised names.
	ErrUnknownKind = errors.New("drum: unknown kind")

	// ErrChannelMismatch is returned when planar output buffers differ in length.
	ErrChannelMismatch = errors.New("drum: left and right buffers differ in length")

	// ErrOddInterleaved is returned when an interleaved stereo buffer has an
	// odd number of samples.
	ErrOddInterleaved = errors.New("drum: interleaved stereo buffer length is odd")
)
