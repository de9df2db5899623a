package ubc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Model holds the values of a UBC model file in the file's storage order,
// one value per mesh cell. Source is the path the model was read from,
// empty when parsed from memory.
type Model struct {
	Values []float64
	Source string
}

// ArrayName returns the name a cell array built from this model carries
// by default: the base name of the source file, or "Data".
func (m *Model) ArrayName() string {
	if m.Source == "" {
		return "Data"
	}
	return filepath.Base(m.Source)
}

// ParseModel3D parses a 3D model file: bare values, any number per line,
// in file storage order (easting slowest, elevation fastest).
func ParseModel3D(data []byte) (*Model, error) {
	var vals []float64
	for _, ln := range contentLines(data) {
		for _, f := range strings.Fields(ln.text) {
			v, err := parseFloatField(f, "model value")
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ln.num, err)
			}
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: model file has no values", ErrFormat)
	}
	return &Model{Values: vals}, nil
}

// ParseModel3DFile reads and parses the 3D model file at path.
func ParseModel3DFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	m, err := ParseModel3D(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Source = path
	return m, nil
}

// ParseModel2D parses a 2D model file. The header declares "nx nz"; the
// value rows that follow hold one elevation level each. The rows are
// accepted when either their count matches nz or their width matches nx,
// then flattened column by column so the result runs down each elevation
// column before stepping east, matching 2D mesh cell order.
func ParseModel2D(data []byte) (*Model, error) {
	ls := contentLines(data)
	if len(ls) == 0 {
		return nil, fmt.Errorf("%w: model file has no content", ErrFormat)
	}
	dims, err := parseIntLine(ls[0], "model dimension")
	if err != nil {
		return nil, err
	}
	if len(dims) < 2 {
		return nil, fmt.Errorf("line %d: %w: model header has %d fields, need 2", ls[0].num, ErrFormat, len(dims))
	}
	nx, nz := dims[0], dims[1]
	if nx < 1 || nz < 1 {
		return nil, fmt.Errorf("line %d: %w: model header declares %d by %d values", ls[0].num, ErrFormat, nx, nz)
	}

	rows := make([][]float64, 0, len(ls)-1)
	width := -1
	for _, ln := range ls[1:] {
		f := strings.Fields(ln.text)
		row := make([]float64, len(f))
		for i, tok := range f {
			v, err := parseFloatField(tok, "model value")
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ln.num, err)
			}
			row[i] = v
		}
		if width < 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("line %d: %w: row has %d values, previous rows have %d", ln.num, ErrFormat, len(row), width)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: model file has no values", ErrFormat)
	}
	if len(rows) != nz && width != nx {
		return nil, fmt.Errorf("%w: model is %d rows by %d columns, header declares %d rows by %d columns", ErrFormat, len(rows), width, nz, nx)
	}

	vals := make([]float64, 0, len(rows)*width)
	for c := 0; c < width; c++ {
		for r := range rows {
			vals = append(vals, rows[r][c])
		}
	}
	return &Model{Values: vals}, nil
}

// ParseModel2DFile reads and parses the 2D model file at path.
func ParseModel2DFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	m, err := ParseModel2D(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Source = path
	return m, nil
}
