package corner

import "errors"

var (
	// ErrMalformed indicates an out-of-range vertex index or a degenerate
	// triangle (two corners of the same face sharing a vertex).
	ErrMalformed = errors.New("corner: malformed face data")
	// ErrNonManifold indicates more than two faces share the same
	// undirected edge.
	ErrNonManifold = errors.New("corner: non-manifold edge")
)
