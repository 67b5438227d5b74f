package traversal

import (
	"testing"

	"github.com/go-draco/draco/internal/corner"
	mt "github.com/go-draco/draco/internal/meshtypes"
)

func TestTraverse_VisitsEveryVertexOnce(t *testing.T) {
	faces := [][3]mt.VertexIdx{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	}
	tbl, err := corner.Build(faces, 4)
	if err != nil {
		t.Fatalf("corner.Build: %v", err)
	}
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(tbl.Vertex(c)) }
	seeds := []mt.CornerIdx{mt.CornerOf(0, 0)}

	order := Traverse(tbl, valueAt, seeds)
	if len(order) != 4 {
		t.Fatalf("len(order) = %d, want 4 (one per vertex)", len(order))
	}

	seen := make(map[mt.ValueIdx]bool)
	for _, c := range order {
		v := valueAt(c)
		if seen[v] {
			t.Errorf("vertex %d visited more than once", v)
		}
		seen[v] = true
	}
}

func TestTraverse_SingleTriangle(t *testing.T) {
	faces := [][3]mt.VertexIdx{{0, 1, 2}}
	tbl, err := corner.Build(faces, 3)
	if err != nil {
		t.Fatalf("corner.Build: %v", err)
	}
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(tbl.Vertex(c)) }
	seeds := []mt.CornerIdx{mt.CornerOf(0, 0)}

	order := Traverse(tbl, valueAt, seeds)
	if len(order) != 3 {
		t.Fatalf("len(order) = %d, want 3", len(order))
	}
}
