package ubc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Extent summarizes a mesh as whole-extent bounds (0, n1, 0, n2, 0, n3)
// where the bounds are the CELL counts each axis declares. A grid built
// from the full mesh allocates one more node than cells on every
// subdivided axis, so extents line up with file headers rather than with
// grid point dimensions.
type Extent [6]int

// CellCounts returns the per-axis cell counts packed in the extent.
func (e Extent) CellCounts() [3]int {
	return [3]int{e[1], e[3], e[5]}
}

func (e Extent) String() string {
	return fmt.Sprintf("[%d, %d, %d, %d, %d, %d]", e[0], e[1], e[2], e[3], e[4], e[5])
}

// ReadExtent3D reports the whole extent of a 3D tensor or OcTree mesh
// from its header line alone, without reading the rest of the file. For
// OcTree meshes the counts describe the core grid before refinement.
func ReadExtent3D(path string) (Extent, error) {
	ln, err := readHeaderLine(path)
	if err != nil {
		return Extent{}, err
	}
	dims, err := parseIntLine(ln, "cell count")
	if err != nil {
		return Extent{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(dims) < 3 {
		return Extent{}, fmt.Errorf("%s: line %d: %w: mesh header has %d fields, need 3", path, ln.num, ErrFormat, len(dims))
	}
	return Extent{0, dims[0], 0, dims[1], 0, dims[2]}, nil
}

// ReadExtent2D reports the whole extent of a 2D mesh as cell counts
// (0, nx, 0, 1, 0, nz). 2D meshes interleave counts with coordinates, so
// the whole file is parsed.
func ReadExtent2D(path string) (Extent, error) {
	m, err := ParseMesh2DFile(path)
	if err != nil {
		return Extent{}, err
	}
	return m.Extent(), nil
}

// readHeaderLine returns the first content line of the file at path
// without buffering the remainder.
func readHeaderLine(path string) (line, error) {
	f, err := os.Open(path)
	if err != nil {
		return line{}, fmt.Errorf("reading mesh header: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for n := 1; ; n++ {
		s, err := br.ReadString('\n')
		if t := stripComment(strings.TrimRight(s, "\r\n")); t != "" {
			return line{num: n, text: t}, nil
		}
		if err == io.EOF {
			return line{}, fmt.Errorf("%s: %w: no content lines", path, ErrFormat)
		}
		if err != nil {
			return line{}, fmt.Errorf("reading mesh header: %w", err)
		}
	}
}
