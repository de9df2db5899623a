package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyValues reports a model file with more data than the given
	// mesh has cells to hold.
	ErrTooManyValues = errors.New("model has more data than the mesh has cells to hold")

	// ErrTooFewValues reports a model file that does not have enough data
	// to fill the given mesh's cells.
	ErrTooFewValues = errors.New("model does not have enough data to fill the mesh's cells")
)

// PlaceModel validates a flat model array against a grid's cell counts,
// reorders it from file order into grid cell order, and attaches it to h
// under name. An empty name falls back to "Data". Nothing is attached
// when the value count does not match the cell count exactly.
func PlaceModel(b Backend, h Handle, cells [3]int, values []float64, name string) error {
	n := cells[0] * cells[1] * cells[2]
	switch {
	case len(values) > n:
		return fmt.Errorf("%w: %d values for %d cells", ErrTooManyValues, len(values), n)
	case len(values) < n:
		return fmt.Errorf("%w: %d values for %d cells", ErrTooFewValues, len(values), n)
	}
	ordered, err := FileToGridOrder(values, cells[0], cells[1], cells[2])
	if err != nil {
		return err
	}
	if name == "" {
		name = "Data"
	}
	return b.AttachCellArray(h, name, ordered)
}
