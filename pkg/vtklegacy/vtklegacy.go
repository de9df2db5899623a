// Package vtklegacy writes rectilinear grids in the legacy ASCII VTK
// format so converted UBC meshes open directly in ParaView or VisIt. The
// Writer implements grid.Backend; handles it produces are *File values
// that serialize themselves with WriteTo or WriteFile.
package vtklegacy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/terralith/ubcgrid/pkg/grid"
)

// Writer is a grid.Backend that materializes grids as legacy VTK
// datasets. The zero value is ready to use.
type Writer struct {
	// Title is the dataset title line. Empty uses "UBC mesh".
	Title string
}

var _ grid.Backend = (*Writer)(nil)

// File is a legacy VTK rectilinear dataset under construction.
type File struct {
	Title  string
	Dims   [3]int // node dimensions per axis
	Coords [3][]float64
	Arrays []grid.CellArray
}

func (w *Writer) AllocateRectilinear(dims [3]int) (grid.Handle, error) {
	for _, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("vtklegacy: node dimensions must be positive, got %v", dims)
		}
	}
	title := w.Title
	if title == "" {
		title = "UBC mesh"
	}
	return &File{Title: title, Dims: dims}, nil
}

func (w *Writer) SetAxisCoordinates(h grid.Handle, axis grid.Axis, coords []float64) error {
	f, err := fileHandle(h)
	if err != nil {
		return err
	}
	if axis < grid.AxisX || axis > grid.AxisZ {
		return fmt.Errorf("vtklegacy: invalid axis %d", axis)
	}
	f.Coords[axis] = append([]float64(nil), coords...)
	return nil
}

func (w *Writer) AttachCellArray(h grid.Handle, name string, values []float64) error {
	f, err := fileHandle(h)
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("vtklegacy: cell array name is empty")
	}
	f.Arrays = append(f.Arrays, grid.CellArray{
		Name:   name,
		Values: append([]float64(nil), values...),
	})
	return nil
}

// AllocateUnstructured is unsupported: the writer produces rectilinear
// datasets only.
func (w *Writer) AllocateUnstructured() (grid.Handle, error) {
	return nil, errors.New("vtklegacy: unstructured grids are not supported")
}

func fileHandle(h grid.Handle) (*File, error) {
	f, ok := h.(*File)
	if !ok {
		return nil, fmt.Errorf("vtklegacy: handle %T was not allocated by this backend", h)
	}
	return f, nil
}

// NumCells returns the cell count the node dimensions imply. Flat axes
// with a single node still contribute one cell layer.
func (f *File) NumCells() int {
	n := 1
	for _, d := range f.Dims {
		if d > 1 {
			n *= d - 1
		}
	}
	return n
}

// WriteTo serializes the dataset in legacy ASCII VTK format. All three
// coordinate arrays must be set; their lengths are written as given,
// which for flat 2D meshes differs from the declared dimensions on
// purpose.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	axes := [3]string{"X", "Y", "Z"}
	for axis, cs := range f.Coords {
		if cs == nil {
			return 0, fmt.Errorf("vtklegacy: %s coordinates not set", axes[axis])
		}
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	fmt.Fprintln(bw, "# vtk DataFile Version 3.0")
	fmt.Fprintln(bw, f.Title)
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET RECTILINEAR_GRID")
	fmt.Fprintf(bw, "DIMENSIONS %d %d %d\n", f.Dims[0], f.Dims[1], f.Dims[2])
	for axis, cs := range f.Coords {
		fmt.Fprintf(bw, "%s_COORDINATES %d double\n", axes[axis], len(cs))
		fmt.Fprintln(bw, joinFloats(cs))
	}
	if len(f.Arrays) > 0 {
		fmt.Fprintf(bw, "CELL_DATA %d\n", f.NumCells())
		for _, arr := range f.Arrays {
			fmt.Fprintf(bw, "SCALARS %s double 1\n", sanitizeName(arr.Name))
			fmt.Fprintln(bw, "LOOKUP_TABLE default")
			for _, v := range arr.Values {
				fmt.Fprintln(bw, formatFloat(v))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// WriteFile serializes the dataset to a new file at path.
func (f *File) WriteFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating VTK file: %w", err)
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinFloats(vs []float64) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatFloat(v))
	}
	return sb.String()
}

// sanitizeName makes an array name safe for the SCALARS line, where
// whitespace would split the name into separate tokens.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}
