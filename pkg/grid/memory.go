package grid

import (
	"errors"
	"fmt"
)

// Memory is the reference Backend. Grids are plain structs callers can
// inspect directly; tests and the plot pipeline use it to avoid going
// through a serializer. The zero value is ready to use.
type Memory struct{}

var _ Backend = Memory{}

// Rectilinear is an in-memory rectilinear grid produced by Memory.
type Rectilinear struct {
	Dims   [3]int // node dimensions per axis
	Coords [3][]float64
	Arrays []CellArray
}

// Unstructured is an in-memory unstructured grid produced by Memory.
// Cell topology is left open; only attached arrays are held.
type Unstructured struct {
	Arrays []CellArray
}

func (Memory) AllocateRectilinear(dims [3]int) (Handle, error) {
	for _, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("grid: node dimensions must be positive, got %v", dims)
		}
	}
	return &Rectilinear{Dims: dims}, nil
}

func (Memory) SetAxisCoordinates(h Handle, axis Axis, coords []float64) error {
	g, ok := h.(*Rectilinear)
	if !ok {
		return fmt.Errorf("grid: handle %T is not a rectilinear grid", h)
	}
	if axis < AxisX || axis > AxisZ {
		return fmt.Errorf("grid: invalid axis %d", axis)
	}
	g.Coords[axis] = append([]float64(nil), coords...)
	return nil
}

func (Memory) AttachCellArray(h Handle, name string, values []float64) error {
	if name == "" {
		return errors.New("grid: cell array name is empty")
	}
	arr := CellArray{Name: name, Values: append([]float64(nil), values...)}
	switch g := h.(type) {
	case *Rectilinear:
		g.Arrays = append(g.Arrays, arr)
	case *Unstructured:
		g.Arrays = append(g.Arrays, arr)
	default:
		return fmt.Errorf("grid: handle %T was not allocated by this backend", h)
	}
	return nil
}

func (Memory) AllocateUnstructured() (Handle, error) {
	return &Unstructured{}, nil
}

// CellCounts returns per-axis cell counts, one less than the node
// dimensions, floored at one for flat axes.
func (g *Rectilinear) CellCounts() [3]int {
	var c [3]int
	for i, d := range g.Dims {
		c[i] = d - 1
		if c[i] < 1 {
			c[i] = 1
		}
	}
	return c
}

// NumCells returns the number of cells the node dimensions imply.
func (g *Rectilinear) NumCells() int {
	c := g.CellCounts()
	return c[0] * c[1] * c[2]
}

// CellArray returns the first attached array with the given name.
func (g *Rectilinear) CellArray(name string) ([]float64, bool) {
	for _, a := range g.Arrays {
		if a.Name == name {
			return a.Values, true
		}
	}
	return nil, false
}
