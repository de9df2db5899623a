package ubc

import (
	"fmt"
	"os"
)

// OcTreeMesh is a parsed UBC OcTree mesh header plus the raw cell index
// table. Index rows locate each leaf cell in the core grid, but their
// exact encoding varies between GIF codes, so rows are kept as read.
type OcTreeMesh struct {
	CellCounts    [3]int     // core grid cells per axis before refinement
	Padding       [6]int     // padding cell counts, kept but unused
	Origin        [3]float64 // easting, northing, elevation of the corner
	CoreWidths    [3]float64 // finest cell width per axis
	DeclaredCells int        // leaf cell count the header declares
	Index         [][]int    // one row per leaf cell, as in the file
}

// Extent returns the core grid cell counts as a whole extent.
func (m *OcTreeMesh) Extent() Extent {
	return Extent{0, m.CellCounts[0], 0, m.CellCounts[1], 0, m.CellCounts[2]}
}

// ParseOcTree parses a UBC OcTree mesh from data.
//
// The header is four content lines: core cell counts with padding
// ("n1 n2 n3 p1 ... p6"), the corner origin, the finest cell widths, and
// the leaf cell count. One index row per leaf cell follows. Core grids
// must have the same cell count on every axis; anything else fails with
// ErrUnsupportedGeometry before the rest of the file is looked at.
func ParseOcTree(data []byte) (*OcTreeMesh, error) {
	ls := contentLines(data)
	if len(ls) == 0 {
		return nil, fmt.Errorf("%w: no content lines", ErrFormat)
	}

	head, err := parseIntLine(ls[0], "cell count")
	if err != nil {
		return nil, err
	}
	if len(head) < 3 {
		return nil, fmt.Errorf("line %d: %w: OcTree header has %d fields, need at least 3", ls[0].num, ErrFormat, len(head))
	}
	if len(head) > 9 {
		return nil, fmt.Errorf("line %d: %w: OcTree header has %d fields, at most 9 expected", ls[0].num, ErrFormat, len(head))
	}
	var counts [3]int
	copy(counts[:], head[:3])
	for axis, n := range counts {
		if n < 1 {
			return nil, fmt.Errorf("line %d: %w: axis %d declares %d cells", ls[0].num, ErrFormat, axis, n)
		}
	}
	if counts[0] != counts[1] || counts[1] != counts[2] {
		return nil, fmt.Errorf("%w: OcTree meshes must have the same number of cells in all directions, got %d %d %d", ErrUnsupportedGeometry, counts[0], counts[1], counts[2])
	}
	m := &OcTreeMesh{CellCounts: counts}
	copy(m.Padding[:], head[3:])

	if len(ls) < 4 {
		return nil, fmt.Errorf("%w: OcTree mesh needs at least 4 content lines, found %d", ErrFormat, len(ls))
	}

	og, err := parseFloatLine(ls[1], "origin coordinate")
	if err != nil {
		return nil, err
	}
	if len(og) < 3 {
		return nil, fmt.Errorf("line %d: %w: origin has %d fields, need 3", ls[1].num, ErrFormat, len(og))
	}
	copy(m.Origin[:], og[:3])

	ws, err := parseFloatLine(ls[2], "core cell width")
	if err != nil {
		return nil, err
	}
	if len(ws) < 3 {
		return nil, fmt.Errorf("line %d: %w: core widths have %d fields, need 3", ls[2].num, ErrFormat, len(ws))
	}
	for axis, w := range ws[:3] {
		if w <= 0 {
			return nil, fmt.Errorf("line %d: %w: axis %d core width %g is not positive", ls[2].num, ErrFormat, axis, w)
		}
	}
	copy(m.CoreWidths[:], ws[:3])

	cnt, err := parseIntLine(ls[3], "leaf cell count")
	if err != nil {
		return nil, err
	}
	if len(cnt) != 1 {
		return nil, fmt.Errorf("line %d: %w: cell count line has %d fields, need 1", ls[3].num, ErrFormat, len(cnt))
	}
	if cnt[0] < 1 {
		return nil, fmt.Errorf("line %d: %w: mesh declares %d leaf cells", ls[3].num, ErrFormat, cnt[0])
	}
	m.DeclaredCells = cnt[0]

	width := -1
	m.Index = make([][]int, 0, m.DeclaredCells)
	for _, ln := range ls[4:] {
		row, err := parseIntLine(ln, "cell index")
		if err != nil {
			return nil, err
		}
		if width < 0 {
			width = len(row)
			if width < 4 {
				return nil, fmt.Errorf("line %d: %w: index row has %d fields, need a corner triple plus size", ln.num, ErrFormat, width)
			}
		} else if len(row) != width {
			return nil, fmt.Errorf("line %d: %w: index row has %d fields, previous rows have %d", ln.num, ErrFormat, len(row), width)
		}
		m.Index = append(m.Index, row)
	}
	if len(m.Index) != m.DeclaredCells {
		return nil, fmt.Errorf("%w: index table has %d rows, header declares %d leaf cells", ErrFormat, len(m.Index), m.DeclaredCells)
	}
	return m, nil
}

// ParseOcTreeFile reads and parses the OcTree mesh at path.
func ParseOcTreeFile(path string) (*OcTreeMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	m, err := ParseOcTree(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
