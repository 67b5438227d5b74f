package bio

import "errors"

// Stream-stage sentinel errors. Callers use errors.Is against these to
// classify a failure as "bad bitstream" rather than "bad input", per the
// error-kind split in the codec's error handling design.
var (
	// ErrShortStream is returned when a read would run past the end of the
	// available bytes.
	ErrShortStream = errors.New("bio: not enough data in stream")
	// ErrCorrupt is returned when a field fails a structural sanity check
	// (e.g. a varint that never terminates).
	ErrCorrupt = errors.New("bio: corrupt stream")
)
