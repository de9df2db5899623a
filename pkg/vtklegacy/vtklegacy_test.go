package vtklegacy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/terralith/ubcgrid/pkg/grid"
)

func buildTestFile(t *testing.T) *File {
	t.Helper()
	w := &Writer{Title: "test mesh"}
	h, err := w.AllocateRectilinear([3]int{3, 2, 2})
	if err != nil {
		t.Fatalf("AllocateRectilinear failed: %v", err)
	}
	for axis, cs := range [3][]float64{{0, 0.5, 1}, {0, 1}, {0, 1}} {
		if err := w.SetAxisCoordinates(h, grid.Axis(axis), cs); err != nil {
			t.Fatalf("SetAxisCoordinates failed: %v", err)
		}
	}
	if err := w.AttachCellArray(h, "density", []float64{1, 2.5}); err != nil {
		t.Fatalf("AttachCellArray failed: %v", err)
	}
	return h.(*File)
}

func TestWriteTo(t *testing.T) {
	f := buildTestFile(t)

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	want := `# vtk DataFile Version 3.0
test mesh
ASCII
DATASET RECTILINEAR_GRID
DIMENSIONS 3 2 2
X_COORDINATES 3 double
0 0.5 1
Y_COORDINATES 2 double
0 1
Z_COORDINATES 2 double
0 1
CELL_DATA 2
SCALARS density double 1
LOOKUP_TABLE default
1
2.5
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteToMeshOnly(t *testing.T) {
	w := &Writer{}
	h, err := w.AllocateRectilinear([3]int{2, 2, 2})
	if err != nil {
		t.Fatalf("AllocateRectilinear failed: %v", err)
	}
	for axis := grid.AxisX; axis <= grid.AxisZ; axis++ {
		if err := w.SetAxisCoordinates(h, axis, []float64{0, 1}); err != nil {
			t.Fatalf("SetAxisCoordinates failed: %v", err)
		}
	}

	var buf bytes.Buffer
	if _, err := h.(*File).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "CELL_DATA") {
		t.Error("mesh without arrays should not emit CELL_DATA")
	}
	if !strings.Contains(out, "UBC mesh\n") {
		t.Error("expected default title")
	}
}

func TestWriteToFlat2DGrid(t *testing.T) {
	// 2D meshes declare two northing planes but carry one coordinate;
	// the writer emits both untouched.
	w := &Writer{}
	h, err := w.AllocateRectilinear([3]int{3, 2, 3})
	if err != nil {
		t.Fatalf("AllocateRectilinear failed: %v", err)
	}
	coords := [3][]float64{{0, 1, 2}, {0}, {0, 1, 2}}
	for axis, cs := range coords {
		if err := w.SetAxisCoordinates(h, grid.Axis(axis), cs); err != nil {
			t.Fatalf("SetAxisCoordinates failed: %v", err)
		}
	}

	f := h.(*File)
	if f.NumCells() != 4 {
		t.Errorf("expected 4 cells, got %d", f.NumCells())
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "DIMENSIONS 3 2 3\n") {
		t.Error("expected declared dimensions to be kept")
	}
	if !strings.Contains(out, "Y_COORDINATES 1 double\n0\n") {
		t.Error("expected single northing coordinate to be written as is")
	}
}

func TestWriteToMissingCoordinates(t *testing.T) {
	w := &Writer{}
	h, _ := w.AllocateRectilinear([3]int{2, 2, 2})
	f := h.(*File)
	f.Coords[0] = []float64{0, 1}
	f.Coords[2] = []float64{0, 1}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err == nil {
		t.Fatal("expected error for unset coordinates, got nil")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on failure")
	}
}

func TestWriterRejectsBadInputs(t *testing.T) {
	w := &Writer{}

	if _, err := w.AllocateRectilinear([3]int{0, 2, 2}); err == nil {
		t.Error("expected error for zero dimension, got nil")
	}
	if _, err := w.AllocateUnstructured(); err == nil {
		t.Error("expected error for unstructured allocation, got nil")
	}

	h, _ := w.AllocateRectilinear([3]int{2, 2, 2})
	if err := w.SetAxisCoordinates(h, grid.Axis(5), []float64{0, 1}); err == nil {
		t.Error("expected error for invalid axis, got nil")
	}
	if err := w.SetAxisCoordinates(42, grid.AxisX, []float64{0, 1}); err == nil {
		t.Error("expected error for foreign handle, got nil")
	}
	if err := w.AttachCellArray(h, "", []float64{1}); err == nil {
		t.Error("expected error for empty array name, got nil")
	}
}

func TestSanitizeName(t *testing.T) {
	if got := sanitizeName("my model.mod"); got != "my_model.mod" {
		t.Errorf("expected my_model.mod, got %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	f := buildTestFile(t)
	path := filepath.Join(t.TempDir(), "out.vtk")

	if err := f.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "# vtk DataFile Version 3.0\n") {
		t.Error("output missing VTK header")
	}
}
