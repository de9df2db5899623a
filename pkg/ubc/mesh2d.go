package ubc

import (
	"fmt"
	"os"
	"strings"
)

// Mesh2D is a parsed UBC 2D mesh: node coordinates along easting and
// elevation, each axis built by subdividing the segments between the
// file's control points.
type Mesh2D struct {
	XNodes []float64
	ZNodes []float64
}

// CellCounts returns the per-axis cell counts. A 2D mesh carries a single
// flat cell along the northing axis.
func (m *Mesh2D) CellCounts() [3]int {
	return [3]int{len(m.XNodes) - 1, 1, len(m.ZNodes) - 1}
}

// NodeDims returns the grid point dimensions a backend should allocate:
// two node planes along northing, so cells have volume.
func (m *Mesh2D) NodeDims() [3]int {
	return [3]int{len(m.XNodes), 2, len(m.ZNodes)}
}

// NumCells returns the number of cells the mesh declares.
func (m *Mesh2D) NumCells() int {
	c := m.CellCounts()
	return c[0] * c[1] * c[2]
}

// Extent returns the cell counts as a whole extent.
func (m *Mesh2D) Extent() Extent {
	c := m.CellCounts()
	return Extent{0, c[0], 0, c[1], 0, c[2]}
}

// ParseMesh2D parses a UBC 2D mesh from data.
//
// The format is two axis blocks, easting then elevation. A block opens
// with its segment count n on a line of its own and continues with n
// control point lines: "origin point subdivisions" on the first, "point
// subdivisions" after. Each segment is split into its subdivision count
// of equal cells, and the segment end is kept exact rather than
// re-accumulated.
func ParseMesh2D(data []byte) (*Mesh2D, error) {
	ls := contentLines(data)
	xs, next, err := parseAxisBlock(ls, 0, "easting")
	if err != nil {
		return nil, err
	}
	zs, next, err := parseAxisBlock(ls, next, "elevation")
	if err != nil {
		return nil, err
	}
	if next < len(ls) {
		return nil, fmt.Errorf("line %d: %w: unexpected content after axis blocks", ls[next].num, ErrFormat)
	}
	return &Mesh2D{XNodes: xs, ZNodes: zs}, nil
}

// ParseMesh2DFile reads and parses the 2D mesh at path.
func ParseMesh2DFile(path string) (*Mesh2D, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	m, err := ParseMesh2D(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// parseAxisBlock consumes one axis block starting at ls[start] and
// returns the node coordinates plus the index of the first unread line.
func parseAxisBlock(ls []line, start int, name string) ([]float64, int, error) {
	if start >= len(ls) {
		return nil, 0, fmt.Errorf("%w: missing %s block", ErrFormat, name)
	}
	head := strings.Fields(ls[start].text)
	if len(head) != 1 {
		return nil, 0, fmt.Errorf("line %d: %w: %s block header has %d fields, need the segment count alone", ls[start].num, ErrFormat, name, len(head))
	}
	n, err := parseIntField(head[0], "segment count")
	if err != nil {
		return nil, 0, fmt.Errorf("line %d: %w", ls[start].num, err)
	}
	if n < 1 {
		return nil, 0, fmt.Errorf("line %d: %w: %s block declares %d segments", ls[start].num, ErrFormat, name, n)
	}
	if rest := len(ls) - start - 1; rest < n {
		return nil, 0, fmt.Errorf("%w: %s block declares %d segments but only %d lines follow", ErrFormat, name, n, rest)
	}

	pts := make([]float64, 0, n+1)
	divs := make([]int, 0, n)
	for i := 0; i < n; i++ {
		ln := ls[start+1+i]
		f := strings.Fields(ln.text)
		want := 2
		if i == 0 {
			want = 3
		}
		if len(f) != want {
			return nil, 0, fmt.Errorf("line %d: %w: %s control point has %d fields, need %d", ln.num, ErrFormat, name, len(f), want)
		}
		if i == 0 {
			o, err := parseFloatField(f[0], "axis origin")
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: %w", ln.num, err)
			}
			pts = append(pts, o)
			f = f[1:]
		}
		p, err := parseFloatField(f[0], "control point")
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", ln.num, err)
		}
		d, err := parseIntField(f[1], "subdivision count")
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", ln.num, err)
		}
		if d < 1 {
			return nil, 0, fmt.Errorf("line %d: %w: subdivision count %d is not positive", ln.num, ErrFormat, d)
		}
		pts = append(pts, p)
		divs = append(divs, d)
	}

	if err := checkMonotonic(pts, name); err != nil {
		return nil, 0, err
	}

	nodes := make([]float64, 0, n+1)
	nodes = append(nodes, pts[0])
	for i, d := range divs {
		nodes = append(nodes, subdivide(pts[i], pts[i+1], d)...)
	}
	return nodes, start + 1 + n, nil
}

// subdivide splits [start, stop] into n equal cells and returns the n
// node coordinates after start. The final node is exactly stop.
func subdivide(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	w := (stop - start) / float64(n)
	for j := 1; j < n; j++ {
		out[j-1] = start + float64(j)*w
	}
	out[n-1] = stop
	return out
}

// checkMonotonic rejects control points that repeat or reverse direction
// along the axis.
func checkMonotonic(pts []float64, name string) error {
	var up, down bool
	for i := 1; i < len(pts); i++ {
		switch d := pts[i] - pts[i-1]; {
		case d > 0:
			up = true
		case d < 0:
			down = true
		default:
			return fmt.Errorf("%w: %s control points repeat at %g", ErrFormat, name, pts[i])
		}
	}
	if up && down {
		return fmt.Errorf("%w: %s control points reverse direction", ErrFormat, name)
	}
	return nil
}
