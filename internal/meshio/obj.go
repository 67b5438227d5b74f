// Package meshio provides a minimal Wavefront OBJ reader/writer used to
// build test fixtures for the codec; it is not part of the wire format and
// never appears on the compressed-stream path.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Mesh is a plain in-memory triangle mesh: positions plus faces as 0-based
// vertex-index triples, the shape every internal package's tests build
// fixtures from.
type Mesh struct {
	Positions [][3]float64
	Faces     [][3]int32
}

// Read parses a (very small) subset of OBJ: "v x y z" position lines and
// "f a b c" face lines with 1-based indices, ignoring everything else
// (normals, texture coordinates, groups, comments).
func Read(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("meshio: malformed vertex line %q", line)
			}
			var p [3]float64
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("meshio: %w", err)
				}
				p[i] = v
			}
			m.Positions = append(m.Positions, p)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("meshio: malformed face line %q", line)
			}
			var f [3]int32
			for i := 0; i < 3; i++ {
				idxStr := strings.SplitN(fields[i+1], "/", 2)[0]
				v, err := strconv.Atoi(idxStr)
				if err != nil {
					return nil, fmt.Errorf("meshio: %w", err)
				}
				f[i] = int32(v - 1)
			}
			m.Faces = append(m.Faces, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Write emits m as OBJ: one "v" line per position followed by one "f" line
// (1-based indices) per face.
func Write(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, p := range m.Positions {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}
