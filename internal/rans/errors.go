package rans

import "errors"

var (
	// ErrShortStream indicates a payload ended before the expected number
	// of symbols were decoded.
	ErrShortStream = errors.New("rans: not enough input to decode symbol")
	// ErrInvalidPrecision indicates a requested precision is outside the
	// supported range (1..20 bits for the symbol coder, fixed 8 for rabs).
	ErrInvalidPrecision = errors.New("rans: invalid precision")
	// ErrFrequencyOverflow indicates a frequency table's scaled sum does
	// not equal 2^precision, which would make the coder's intervals
	// inconsistent between encode and decode.
	ErrFrequencyOverflow = errors.New("rans: frequency table does not sum to 2^precision")
	// ErrCorruptFrequencyTable indicates the compact (RLE) frequency table
	// encoding read from a stream is structurally invalid.
	ErrCorruptFrequencyTable = errors.New("rans: corrupt frequency table")
	// ErrInvalidZeroProbability indicates an 8-bit rabs probability outside
	// [1, 255] (0 and 256 are forbidden: both symbols must remain
	// representable).
	ErrInvalidZeroProbability = errors.New("rans: zero-probability out of range")
)
