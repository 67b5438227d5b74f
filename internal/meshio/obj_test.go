package meshio

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteRead_Roundtrip(t *testing.T) {
	m := &Mesh{
		Positions: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		Faces: [][3]int32{
			{0, 1, 2},
			{0, 3, 1},
		},
	}
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Positions) != len(m.Positions) {
		t.Fatalf("len(Positions) = %d, want %d", len(got.Positions), len(m.Positions))
	}
	for i, p := range m.Positions {
		if got.Positions[i] != p {
			t.Errorf("position %d: got %v, want %v", i, got.Positions[i], p)
		}
	}
	if len(got.Faces) != len(m.Faces) {
		t.Fatalf("len(Faces) = %d, want %d", len(got.Faces), len(m.Faces))
	}
	for i, f := range m.Faces {
		if got.Faces[i] != f {
			t.Errorf("face %d: got %v, want %v", i, got.Faces[i], f)
		}
	}
}

func TestRead_IgnoresCommentsAndUnknownLines(t *testing.T) {
	src := "# a comment\nv 1 2 3\nvn 0 0 1\nf 1 1 1\n"
	got, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Positions) != 1 || got.Positions[0] != [3]float64{1, 2, 3} {
		t.Errorf("Positions = %v, want [[1 2 3]]", got.Positions)
	}
	if len(got.Faces) != 1 || got.Faces[0] != [3]int32{0, 0, 0} {
		t.Errorf("Faces = %v, want [[0 0 0]]", got.Faces)
	}
}
