package ubc

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Mesh3D is a parsed UBC 3D tensor mesh: three orthogonal axes of node
// coordinates built from the declared origin and expanded cell widths.
type Mesh3D struct {
	CellCounts [3]int     // cells per axis as declared by the header
	Origin     [3]float64 // easting, northing, elevation of the first node
	Axes       [3][]float64
}

// NodeDims returns the grid point dimensions, one more than the cell
// count on every axis.
func (m *Mesh3D) NodeDims() [3]int {
	return [3]int{len(m.Axes[0]), len(m.Axes[1]), len(m.Axes[2])}
}

// NumCells returns the number of cells the mesh declares.
func (m *Mesh3D) NumCells() int {
	return m.CellCounts[0] * m.CellCounts[1] * m.CellCounts[2]
}

// Extent returns the declared cell counts as a whole extent.
func (m *Mesh3D) Extent() Extent {
	return Extent{0, m.CellCounts[0], 0, m.CellCounts[1], 0, m.CellCounts[2]}
}

// ParseMesh3D parses a UBC 3D tensor mesh from data.
//
// The format is five content lines: cell counts "n1 n2 n3", the mesh
// origin, then one spacing line per axis where a token "N*w" repeats
// width w N times. Axis coordinates are the running sums of the widths,
// shifted by the origin.
func ParseMesh3D(data []byte) (*Mesh3D, error) {
	ls := contentLines(data)
	if len(ls) < 5 {
		return nil, fmt.Errorf("%w: tensor mesh needs 5 content lines, found %d", ErrFormat, len(ls))
	}
	if len(ls) > 5 {
		return nil, fmt.Errorf("line %d: %w: unexpected content after spacing lines", ls[5].num, ErrFormat)
	}

	dims, err := parseIntLine(ls[0], "cell count")
	if err != nil {
		return nil, err
	}
	if len(dims) < 3 {
		return nil, fmt.Errorf("line %d: %w: mesh header has %d fields, need 3", ls[0].num, ErrFormat, len(dims))
	}
	var counts [3]int
	copy(counts[:], dims[:3])
	for axis, n := range counts {
		if n < 1 {
			return nil, fmt.Errorf("line %d: %w: axis %d declares %d cells", ls[0].num, ErrFormat, axis, n)
		}
	}

	og, err := parseFloatLine(ls[1], "origin coordinate")
	if err != nil {
		return nil, err
	}
	if len(og) < 3 {
		return nil, fmt.Errorf("line %d: %w: origin has %d fields, need 3", ls[1].num, ErrFormat, len(og))
	}
	var origin [3]float64
	copy(origin[:], og[:3])

	m := &Mesh3D{CellCounts: counts, Origin: origin}
	for axis := 0; axis < 3; axis++ {
		ln := ls[2+axis]
		widths, err := ExpandSpacings(strings.Fields(ln.text), counts[axis], axis)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln.num, err)
		}
		if err := checkUniformDirection(widths, axis); err != nil {
			return nil, fmt.Errorf("line %d: %w", ln.num, err)
		}
		nodes := make([]float64, counts[axis]+1)
		floats.CumSum(nodes[1:], widths)
		floats.AddConst(origin[axis], nodes)
		m.Axes[axis] = nodes
	}
	return m, nil
}

// ParseMesh3DFile reads and parses the 3D tensor mesh at path.
func ParseMesh3DFile(path string) (*Mesh3D, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	m, err := ParseMesh3D(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// checkUniformDirection rejects zero cell widths and axes whose widths
// mix signs, which would fold the axis back on itself.
func checkUniformDirection(widths []float64, axis int) error {
	var pos, neg bool
	for _, w := range widths {
		switch {
		case w > 0:
			pos = true
		case w < 0:
			neg = true
		default:
			return fmt.Errorf("%w: axis %d: zero cell width", ErrFormat, axis)
		}
	}
	if pos && neg {
		return fmt.Errorf("%w: axis %d: cell widths mix directions", ErrFormat, axis)
	}
	return nil
}
