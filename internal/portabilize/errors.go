package portabilize

import "errors"

// ErrOutOfRange is returned when a value falls outside the min/max recorded
// at quantizer construction time.
var ErrOutOfRange = errors.New("portabilize: value out of quantization range")

// ErrBadBits is returned for an octahedral or rectangle-array bit width
// outside the supported range.
var ErrBadBits = errors.New("portabilize: unsupported bit width")
