package draco

// ComponentType enumerates the scalar types an attribute's components can
// be stored as.
type ComponentType uint8

const (
	I8 ComponentType = iota
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
)

// AttributeType classifies what an attribute represents; predictors and
// default transforms are chosen from this plus Domain.
type AttributeType uint8

const (
	Position AttributeType = iota
	Normal
	TextureCoordinate
	Color
	Custom
)

// Domain says whether an attribute's values are indexed per vertex (shared
// across every face touching it) or per corner (free to seam).
type Domain uint8

const (
	DomainPosition Domain = iota
	DomainCorner
)

// Attribute is one named channel of per-vertex or per-corner data: raw
// float64 values (the in-memory representation every portabilization and
// prediction stage reads from and writes back to) plus the metadata needed
// to round-trip it through the wire format.
type Attribute struct {
	Type       AttributeType
	Domain     Domain
	Components int
	Normalized bool
	CompType   ComponentType
	// ParentIDs names attributes this one's prediction depends on (e.g. a
	// Normal or TextureCoordinate attribute names the Position attribute),
	// enforcing that parents are always encoded/decoded first.
	ParentIDs []int

	// Values holds one []float64 of length Components per unique value.
	// For a DomainPosition attribute len(Values) == mesh vertex count; for
	// a DomainCorner attribute with seams it can be larger.
	Values [][]float64

	// CornerValue holds, for a DomainCorner attribute, one index into
	// Values per corner in face order (corner 3*f+k is vertex k of face f).
	// DomainPosition attributes leave it unused.
	CornerValue []int32
}

// Mesh is the in-memory representation Encode consumes and Decode produces:
// a vertex count, the face list (vertex-index triples), and a set of named
// attributes, the first of which is always the Position attribute.
type Mesh struct {
	NumVertices int
	Faces       [][3]int32
	Attributes  []Attribute
}
