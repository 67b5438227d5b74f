package attrcorner

import (
	"testing"

	"github.com/go-draco/draco/internal/corner"
	mt "github.com/go-draco/draco/internal/meshtypes"
)

// Two triangles sharing the edge between vertices 1 and 2. Corner 0 (face 0,
// vertex 0) is opposite corner 3 (face 1, vertex 0).
var seamFaces = [][3]mt.VertexIdx{
	{0, 1, 2},
	{3, 2, 1},
}

func TestBuild_MarksSeamAcrossMismatchedValues(t *testing.T) {
	base, err := corner.Build(seamFaces, 4)
	if err != nil {
		t.Fatalf("corner.Build: %v", err)
	}
	// Per-corner attribute values: every corner gets its own distinct value
	// index (as if each face introduced fresh texture coordinates), so the
	// shared edge's two faces disagree and the edge is a seam.
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(c) }

	at := Build(base, valueAt)
	c0 := mt.CornerOf(0, 0)
	c3 := mt.CornerOf(1, 0)
	if !at.IsSeam(c0) || !at.IsSeam(c3) {
		t.Fatalf("expected corners %d and %d to be seams", c0, c3)
	}
	if at.Opposite(c0).Valid() {
		t.Errorf("Opposite(c0) should be Invalid across a seam")
	}
}

func TestBuild_NoSeamWhenValuesMatchAcrossEdge(t *testing.T) {
	base, err := corner.Build(seamFaces, 4)
	if err != nil {
		t.Fatalf("corner.Build: %v", err)
	}
	// All corners share one value index: no attribute discontinuity anywhere.
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return 0 }

	at := Build(base, valueAt)
	c0 := mt.CornerOf(0, 0)
	if at.IsSeam(c0) {
		t.Errorf("expected no seam when attribute values match across the edge")
	}
	if got := at.Opposite(c0); got != base.Opposite(c0) {
		t.Errorf("Opposite(c0) = %v, want %v (no seam override)", got, base.Opposite(c0))
	}
}

func TestFromSeamBits_ReconstructsSameSeams(t *testing.T) {
	base, err := corner.Build(seamFaces, 4)
	if err != nil {
		t.Fatalf("corner.Build: %v", err)
	}
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(c) }
	want := Build(base, valueAt)

	interior := []mt.CornerIdx{mt.CornerOf(0, 0)}
	bits := []uint32{1}
	got := FromSeamBits(base, interior, bits)

	c0 := mt.CornerOf(0, 0)
	c3 := mt.CornerOf(1, 0)
	if got.IsSeam(c0) != want.IsSeam(c0) || got.IsSeam(c3) != want.IsSeam(c3) {
		t.Errorf("FromSeamBits seam marks differ from Build: c0=%v/%v c3=%v/%v",
			got.IsSeam(c0), want.IsSeam(c0), got.IsSeam(c3), want.IsSeam(c3))
	}
}
