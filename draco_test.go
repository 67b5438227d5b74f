package draco

import (
	"bytes"
	"math"
	"testing"
)

func tetrahedronMesh() *Mesh {
	positions := [][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	faces := [][3]int32{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	}
	return &Mesh{
		NumVertices: 4,
		Faces:       faces,
		Attributes: []Attribute{
			{
				Type:       Position,
				Domain:     DomainPosition,
				Components: 3,
				CompType:   F32,
				Values:     positions,
			},
		},
	}
}

func TestEncodeDecode_Tetrahedron(t *testing.T) {
	m := tetrahedronMesh()
	var buf bytes.Buffer
	if err := Encode(&buf, m, DefaultOptions()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.NumVertices != m.NumVertices {
		t.Fatalf("NumVertices = %d, want %d", got.NumVertices, m.NumVertices)
	}
	if len(got.Faces) != len(m.Faces) {
		t.Fatalf("len(Faces) = %d, want %d", len(got.Faces), len(m.Faces))
	}
	if len(got.Attributes) != 1 {
		t.Fatalf("len(Attributes) = %d, want 1", len(got.Attributes))
	}
	pos := got.Attributes[0]
	if len(pos.Values) != len(m.Attributes[0].Values) {
		t.Fatalf("len(Values) = %d, want %d", len(pos.Values), len(m.Attributes[0].Values))
	}
	for i, want := range m.Attributes[0].Values {
		gotV := pos.Values[i]
		for k := range want {
			if math.Abs(gotV[k]-want[k]) > 0.01 {
				t.Errorf("vertex %d component %d: got %v, want %v", i, k, gotV[k], want[k])
			}
		}
	}
}

func TestEncodeDecode_SingleTriangle(t *testing.T) {
	m := &Mesh{
		NumVertices: 3,
		Faces:       [][3]int32{{0, 1, 2}},
		Attributes: []Attribute{
			{
				Type:       Position,
				Domain:     DomainPosition,
				Components: 3,
				CompType:   F32,
				Values: [][]float64{
					{0, 0, 0},
					{2, 0, 0},
					{0, 2, 0},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, m, DefaultOptions()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Faces) != 1 || got.NumVertices != 3 {
		t.Fatalf("got Faces=%v NumVertices=%d, want 1 face / 3 vertices", got.Faces, got.NumVertices)
	}
}

func TestEncodeDecode_WithNormals(t *testing.T) {
	m := tetrahedronMesh()
	normals := [][]float64{
		{0, 0, 1},
		{0, 1, 0},
		{1, 0, 0},
		{-0.577, -0.577, -0.577},
	}
	m.Attributes = append(m.Attributes, Attribute{
		Type:       Normal,
		Domain:     DomainPosition,
		Components: 3,
		CompType:   F32,
		Values:     normals,
	})

	var buf bytes.Buffer
	if err := Encode(&buf, m, DefaultOptions()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Attributes) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(got.Attributes))
	}
	normAttr := got.Attributes[1]
	if normAttr.Type != Normal {
		t.Fatalf("Attributes[1].Type = %v, want Normal", normAttr.Type)
	}
	for i, want := range normals {
		gotV := normAttr.Values[i]
		dot := gotV[0]*want[0] + gotV[1]*want[1] + gotV[2]*want[2]
		if dot < 0.95 {
			t.Errorf("normal %d: got %v, want close to %v (cosine similarity %v too low)", i, gotV, want, dot)
		}
	}
}

func TestEncodeDecode_WithCustomAttribute(t *testing.T) {
	m := tetrahedronMesh()
	m.Attributes = append(m.Attributes, Attribute{
		Type:       Custom,
		Domain:     DomainPosition,
		Components: 1,
		CompType:   F64,
		Values: [][]float64{
			{1}, {2}, {3}, {4},
		},
	})

	var buf bytes.Buffer
	if err := Encode(&buf, m, DefaultOptions()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	custom := got.Attributes[1]
	for i, want := range m.Attributes[1].Values {
		if custom.Values[i][0] != want[0] {
			t.Errorf("custom value %d: got %v, want %v", i, custom.Values[i], want)
		}
	}
}

func TestEncode_RejectsMissingPositionAttribute(t *testing.T) {
	m := &Mesh{
		NumVertices: 3,
		Faces:       [][3]int32{{0, 1, 2}},
		Attributes: []Attribute{
			{Type: Normal, Domain: DomainPosition, Components: 3, CompType: F32, Values: [][]float64{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}},
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, m, DefaultOptions()); err == nil {
		t.Fatal("expected an error when attribute 0 is not Position")
	}
}
