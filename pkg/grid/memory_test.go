package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryAllocateRectilinear(t *testing.T) {
	var b Memory
	h, err := b.AllocateRectilinear([3]int{3, 2, 4})
	if err != nil {
		t.Fatalf("AllocateRectilinear failed: %v", err)
	}

	g, ok := h.(*Rectilinear)
	if !ok {
		t.Fatalf("expected *Rectilinear handle, got %T", h)
	}
	if g.Dims != [3]int{3, 2, 4} {
		t.Errorf("expected dims [3 2 4], got %v", g.Dims)
	}
	if g.CellCounts() != [3]int{2, 1, 3} {
		t.Errorf("expected cell counts [2 1 3], got %v", g.CellCounts())
	}
	if g.NumCells() != 6 {
		t.Errorf("expected 6 cells, got %d", g.NumCells())
	}

	if _, err := b.AllocateRectilinear([3]int{3, 0, 4}); err == nil {
		t.Error("expected error for zero dimension, got nil")
	}
}

func TestMemoryFlatAxisCellCounts(t *testing.T) {
	var b Memory
	h, _ := b.AllocateRectilinear([3]int{5, 1, 3})
	g := h.(*Rectilinear)

	// A flat axis still contributes one cell layer.
	if g.CellCounts() != [3]int{4, 1, 2} {
		t.Errorf("expected cell counts [4 1 2], got %v", g.CellCounts())
	}
}

func TestMemorySetAxisCoordinates(t *testing.T) {
	var b Memory
	h, _ := b.AllocateRectilinear([3]int{3, 2, 2})

	src := []float64{0, 10, 20}
	if err := b.SetAxisCoordinates(h, AxisX, src); err != nil {
		t.Fatalf("SetAxisCoordinates failed: %v", err)
	}

	// The grid keeps its own copy.
	src[0] = 999
	g := h.(*Rectilinear)
	if diff := cmp.Diff([]float64{0, 10, 20}, g.Coords[AxisX]); diff != "" {
		t.Errorf("coordinates aliased caller slice (-want +got):\n%s", diff)
	}

	if err := b.SetAxisCoordinates(h, Axis(7), src); err == nil {
		t.Error("expected error for invalid axis, got nil")
	}

	u, _ := b.AllocateUnstructured()
	if err := b.SetAxisCoordinates(u, AxisX, src); err == nil {
		t.Error("expected error for non-rectilinear handle, got nil")
	}
}

func TestMemoryAttachCellArray(t *testing.T) {
	var b Memory
	h, _ := b.AllocateRectilinear([3]int{2, 2, 2})

	if err := b.AttachCellArray(h, "density", []float64{1}); err != nil {
		t.Fatalf("AttachCellArray failed: %v", err)
	}
	g := h.(*Rectilinear)
	if vals, ok := g.CellArray("density"); !ok || len(vals) != 1 {
		t.Errorf("expected attached array density, got %v %v", vals, ok)
	}
	if _, ok := g.CellArray("missing"); ok {
		t.Error("lookup of missing array should fail")
	}

	if err := b.AttachCellArray(h, "", []float64{1}); err == nil {
		t.Error("expected error for empty array name, got nil")
	}
	if err := b.AttachCellArray(42, "density", []float64{1}); err == nil {
		t.Error("expected error for foreign handle, got nil")
	}
}

func TestMemoryAllocateUnstructured(t *testing.T) {
	var b Memory
	h, err := b.AllocateUnstructured()
	if err != nil {
		t.Fatalf("AllocateUnstructured failed: %v", err)
	}

	u, ok := h.(*Unstructured)
	if !ok {
		t.Fatalf("expected *Unstructured handle, got %T", h)
	}

	if err := b.AttachCellArray(h, "levels", []float64{1, 2}); err != nil {
		t.Fatalf("AttachCellArray failed: %v", err)
	}
	if len(u.Arrays) != 1 || u.Arrays[0].Name != "levels" {
		t.Errorf("unexpected arrays %v", u.Arrays)
	}
}
