package grid

import "fmt"

// FileToGridOrder rearranges a flat model array from UBC file storage
// order, where the first axis varies slowest and the third fastest, into
// grid cell order. The transform reshapes the array to (n1, n2, n3),
// swaps axes 0 and 1, swaps axes 0 and 2, and flattens the result. It is
// a pure permutation: every value moves, none are dropped or repeated.
func FileToGridOrder(values []float64, n1, n2, n3 int) ([]float64, error) {
	if err := checkCellDims(len(values), n1, n2, n3); err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			in := (i*n2 + j) * n3
			for k := 0; k < n3; k++ {
				out[(k*n1+i)*n2+j] = values[in+k]
			}
		}
	}
	return out, nil
}

// GridToFileOrder inverts FileToGridOrder for a grid with cell counts
// n1, n2, n3, recovering the file storage order of a cell array.
func GridToFileOrder(values []float64, n1, n2, n3 int) ([]float64, error) {
	if err := checkCellDims(len(values), n1, n2, n3); err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			o := (i*n2 + j) * n3
			for k := 0; k < n3; k++ {
				out[o+k] = values[(k*n1+i)*n2+j]
			}
		}
	}
	return out, nil
}

func checkCellDims(n, n1, n2, n3 int) error {
	if n1 < 1 || n2 < 1 || n3 < 1 {
		return fmt.Errorf("grid: cell counts must be positive, got %d %d %d", n1, n2, n3)
	}
	if n != n1*n2*n3 {
		return fmt.Errorf("grid: %d values cannot fill %d x %d x %d cells", n, n1, n2, n3)
	}
	return nil
}
