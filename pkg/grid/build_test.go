package grid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/terralith/ubcgrid/pkg/ubc"
)

func writeTestFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestBuildMesh3D(t *testing.T) {
	data := `2 2 1
0 0 0
1.0 1.0
1.0 1.0
1.0
`
	m, err := ubc.ParseMesh3D([]byte(data))
	if err != nil {
		t.Fatalf("ParseMesh3D failed: %v", err)
	}

	var b Memory
	h, err := BuildMesh3D(b, m)
	if err != nil {
		t.Fatalf("BuildMesh3D failed: %v", err)
	}

	g := h.(*Rectilinear)
	if g.Dims != [3]int{3, 3, 2} {
		t.Errorf("expected node dims [3 3 2], got %v", g.Dims)
	}
	wantCoords := [3][]float64{{0, 1, 2}, {0, 1, 2}, {0, 1}}
	for axis, want := range wantCoords {
		if diff := cmp.Diff(want, g.Coords[axis]); diff != "" {
			t.Errorf("axis %d coordinates mismatch (-want +got):\n%s", axis, diff)
		}
	}
	if len(g.Arrays) != 0 {
		t.Errorf("mesh-only build should not attach arrays, got %d", len(g.Arrays))
	}
}

func TestBuildMesh3DRunLengthCoordinates(t *testing.T) {
	data := `1 1 5
0.0 0.0 0.0
100.0
100.0
5*10.0
`
	m, err := ubc.ParseMesh3D([]byte(data))
	if err != nil {
		t.Fatalf("ParseMesh3D failed: %v", err)
	}

	var b Memory
	h, err := BuildMesh3D(b, m)
	if err != nil {
		t.Fatalf("BuildMesh3D failed: %v", err)
	}

	g := h.(*Rectilinear)
	want := []float64{0, 10, 20, 30, 40, 50}
	if diff := cmp.Diff(want, g.Coords[AxisZ]); diff != "" {
		t.Errorf("elevation coordinates mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMeshData3D(t *testing.T) {
	dir := t.TempDir()
	mesh := writeTestFile(t, dir, "mesh.msh", "2 2 1\n0 0 0\n1 1\n1 1\n1\n")
	model := writeTestFile(t, dir, "density.mod", "1.0\n2.0\n3.0\n4.0\n")

	var b Memory
	h, err := BuildMeshData3D(b, mesh, model, "")
	if err != nil {
		t.Fatalf("BuildMeshData3D failed: %v", err)
	}

	g := h.(*Rectilinear)
	vals, ok := g.CellArray("density.mod")
	if !ok {
		t.Fatal("expected array named after the model file")
	}
	// One elevation layer makes the reorder the identity.
	if diff := cmp.Diff([]float64{1, 2, 3, 4}, vals); diff != "" {
		t.Errorf("cell values mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMeshData3DNameOverride(t *testing.T) {
	dir := t.TempDir()
	mesh := writeTestFile(t, dir, "mesh.msh", "1 1 1\n0 0 0\n1\n1\n1\n")
	model := writeTestFile(t, dir, "model.mod", "7.5\n")

	var b Memory
	h, err := BuildMeshData3D(b, mesh, model, "susceptibility")
	if err != nil {
		t.Fatalf("BuildMeshData3D failed: %v", err)
	}
	if _, ok := h.(*Rectilinear).CellArray("susceptibility"); !ok {
		t.Error("expected overridden array name")
	}
}

func TestBuildMeshData3DSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	mesh := writeTestFile(t, dir, "mesh.msh", "2 2 2\n0 0 0\n1 1\n1 1\n1 1\n")

	t.Run("deficit", func(t *testing.T) {
		model := writeTestFile(t, dir, "short.mod", "1 2 3 4 5 6 7\n")
		var b Memory
		_, err := BuildMeshData3D(b, mesh, model, "")
		if !errors.Is(err, ErrTooFewValues) {
			t.Errorf("expected ErrTooFewValues, got %v", err)
		}
	})

	t.Run("surplus", func(t *testing.T) {
		model := writeTestFile(t, dir, "long.mod", "1 2 3 4 5 6 7 8 9\n")
		var b Memory
		_, err := BuildMeshData3D(b, mesh, model, "")
		if !errors.Is(err, ErrTooManyValues) {
			t.Errorf("expected ErrTooManyValues, got %v", err)
		}
	})
}

func TestBuildMesh2D(t *testing.T) {
	data := `2
-100.0 0.0 2
100.0 2
1
0.0 50.0 2
`
	m, err := ubc.ParseMesh2D([]byte(data))
	if err != nil {
		t.Fatalf("ParseMesh2D failed: %v", err)
	}

	var b Memory
	h, err := BuildMesh2D(b, m)
	if err != nil {
		t.Fatalf("BuildMesh2D failed: %v", err)
	}

	g := h.(*Rectilinear)
	if g.Dims != [3]int{5, 2, 3} {
		t.Errorf("expected node dims [5 2 3], got %v", g.Dims)
	}
	if diff := cmp.Diff([]float64{0}, g.Coords[AxisY]); diff != "" {
		t.Errorf("northing coordinates mismatch (-want +got):\n%s", diff)
	}
	if g.NumCells() != 8 {
		t.Errorf("expected 8 cells, got %d", g.NumCells())
	}
}

func TestBuildMeshData2D(t *testing.T) {
	dir := t.TempDir()
	mesh := writeTestFile(t, dir, "mesh2d.msh", "1\n0.0 2.0 2\n1\n0.0 2.0 2\n")
	model := writeTestFile(t, dir, "cond.mod", "2 2\n1.0 2.0\n3.0 4.0\n")

	var b Memory
	h, err := BuildMeshData2D(b, mesh, model, "")
	if err != nil {
		t.Fatalf("BuildMeshData2D failed: %v", err)
	}

	g := h.(*Rectilinear)
	vals, ok := g.CellArray("cond.mod")
	if !ok {
		t.Fatal("expected array named after the model file")
	}
	// File rows are elevation levels. The parsed model runs down each
	// column (1 3 2 4); grid order regroups it by elevation layer.
	if diff := cmp.Diff([]float64{1, 2, 3, 4}, vals); diff != "" {
		t.Errorf("cell values mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOcTree(t *testing.T) {
	data := `2 2 2
0 0 0
1 1 1
1
1 1 1 2
`
	m, err := ubc.ParseOcTree([]byte(data))
	if err != nil {
		t.Fatalf("ParseOcTree failed: %v", err)
	}

	var b Memory
	_, err = BuildOcTree(b, m)
	if !errors.Is(err, ErrOcTreeTopology) {
		t.Errorf("expected ErrOcTreeTopology, got %v", err)
	}
}

func TestBuildMeshData3DParseFailures(t *testing.T) {
	dir := t.TempDir()
	goodMesh := writeTestFile(t, dir, "mesh.msh", "1 1 1\n0 0 0\n1\n1\n1\n")
	goodModel := writeTestFile(t, dir, "model.mod", "1.0\n")
	badMesh := writeTestFile(t, dir, "bad.msh", "not a mesh\n")
	badModel := writeTestFile(t, dir, "bad.mod", "x\n")

	var b Memory
	if _, err := BuildMeshData3D(b, badMesh, goodModel, ""); !errors.Is(err, ubc.ErrFormat) {
		t.Errorf("expected ErrFormat for bad mesh, got %v", err)
	}
	if _, err := BuildMeshData3D(b, goodMesh, badModel, ""); !errors.Is(err, ubc.ErrFormat) {
		t.Errorf("expected ErrFormat for bad model, got %v", err)
	}
}
