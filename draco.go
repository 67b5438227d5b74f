// Package draco provides a pure Go implementation of a mesh compression
// codec wire-compatible with an existing Edgebreaker-based 3D mesh format
// used in glTF pipelines.
//
// Basic usage for encoding:
//
//	buf := new(bytes.Buffer)
//	err := draco.Encode(buf, mesh, draco.DefaultOptions())
//
// Basic usage for decoding:
//
//	mesh, err := draco.Decode(bytes.NewReader(buf.Bytes()))
package draco

import (
	"errors"
	"fmt"
	"io"
)

// Traversal selects the connectivity codec's traversal strategy.
type Traversal uint8

const (
	// TraversalStandard is the Edgebreaker/CLERS traversal fully specified
	// by this package.
	TraversalStandard Traversal = iota
	// TraversalValence is accepted in Options but not implemented: Encode
	// does not read Options.Traversal, writes no traversal kind to the
	// stream, and always runs the Standard traversal.
	TraversalValence
)

// Prediction selects an attribute group's prediction scheme.
type Prediction uint8

const (
	PredictionNone Prediction = iota
	PredictionMeshParallelogram
	PredictionMeshNormal
	PredictionMeshTexCoord
)

// Transform selects an attribute group's prediction-residual transform.
type Transform uint8

const (
	TransformDifference Transform = iota
	TransformWrappedDifference
	TransformOctahedralDifference
	TransformOctahedralReflection
	TransformOctahedralOrthogonal
	TransformOrthogonal
)

// Portabilization selects how an attribute's float values become integers.
type Portabilization uint8

const (
	PortabilizeRectangleArray Portabilization = iota
	PortabilizeOctahedral
	PortabilizeToBits
)

// GroupConfig configures one attribute's pipeline.
type GroupConfig struct {
	Prediction      Prediction
	Transform       Transform
	Portabilization Portabilization
	// QuantizationBits is the rectangle-array or octahedral bit width;
	// unused for PortabilizeToBits.
	QuantizationBits int
}

// Options configures Encode.
type Options struct {
	Traversal Traversal
	// UseSingleConnectivity is not read by Encode: a DomainCorner attribute
	// always gets its own seam-aware corner table and writes its seam bits,
	// whatever this field says, and every other attribute uses the position
	// corner table.
	UseSingleConnectivity bool
	// Groups gives per-attribute-index pipeline configuration; an index
	// missing from the map uses DefaultGroupConfig for that attribute's
	// Type.
	Groups map[int]GroupConfig
}

// DefaultGroupConfig returns the pipeline configuration this codec applies
// when Options.Groups has no entry for an attribute of type t.
func DefaultGroupConfig(t AttributeType) GroupConfig {
	switch t {
	case Position:
		return GroupConfig{Prediction: PredictionMeshParallelogram, Transform: TransformWrappedDifference, Portabilization: PortabilizeRectangleArray, QuantizationBits: 14}
	case Normal:
		return GroupConfig{Prediction: PredictionMeshNormal, Transform: TransformOctahedralReflection, Portabilization: PortabilizeOctahedral, QuantizationBits: 8}
	case TextureCoordinate:
		return GroupConfig{Prediction: PredictionMeshTexCoord, Transform: TransformWrappedDifference, Portabilization: PortabilizeRectangleArray, QuantizationBits: 12}
	default:
		return GroupConfig{Prediction: PredictionNone, Transform: TransformDifference, Portabilization: PortabilizeToBits}
	}
}

// DefaultOptions returns the default encoding options: Standard traversal,
// per-attribute connectivity tables, default pipelines per attribute type.
func DefaultOptions() *Options {
	return &Options{Traversal: TraversalStandard, Groups: map[int]GroupConfig{}}
}

// Config configures Decode. Currently empty; reserved for future
// partial-decode options (the wire format is fully self-describing).
type Config struct{}

// Sentinel errors for the error-kind families of this codec: malformed
// input, capacity limits, unsupported types, stream corruption and
// unsupported encoder methods. Only some returned errors wrap one of these
// (via fmt.Errorf("%w: ...", ...)): errors from the internal codec stages
// are wrapped with the stage name (wrapStage) around that stage's own error
// value, and errors from reading header fields or from the io.Writer are
// returned unwrapped, so errors.Is does not match those against these
// sentinels.
var (
	ErrMalformedMesh    = errors.New("draco: malformed mesh")
	ErrCapacityExceeded  = errors.New("draco: capacity exceeded")
	ErrUnsupportedType   = errors.New("draco: unsupported attribute type")
	ErrCorruptStream     = errors.New("draco: corrupt stream")
	ErrUnsupportedMethod = errors.New("draco: unsupported encoder method")
)

const (
	magicD = 'D'
	magicR = 'R'
	magicC = 'C'

	versionMajor = 2
	versionMinor = 2

	encoderTypeTriangleMesh = 0
	encoderTypePointCloud   = 1

	encoderMethodSequential = 0
	encoderMethodEdgebreaker = 1

	flagMetadataPresent = 1 << 0
)

// Encode writes m to w in this package's wire format using the given
// options (DefaultOptions() if o is nil).
func Encode(w io.Writer, m *Mesh, o *Options) error {
	if o == nil {
		o = DefaultOptions()
	}
	return encodeMesh(w, m, o)
}

// Decode reads a mesh previously written by Encode.
func Decode(r io.Reader, cfg *Config) (*Mesh, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	return decodeMesh(r, cfg)
}

func wrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("draco: %s: %w", stage, err)
}
