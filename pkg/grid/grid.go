// Package grid turns parsed UBC meshes into spatial grids. A Backend
// decides what a grid physically is: the in-memory reference backend
// lives here, and pkg/vtklegacy provides one that serializes to legacy
// VTK files. PlaceModel carries model values onto a grid after reordering
// them from file order into grid cell order.
package grid

// Axis identifies one coordinate direction of a rectilinear grid.
type Axis int

const (
	AxisX Axis = iota // easting
	AxisY             // northing
	AxisZ             // elevation
)

// Handle is an opaque reference to a grid under construction. Callers
// pass it back to the Backend that produced it and never inspect it.
type Handle any

// CellArray is a named bundle of per-cell values attached to a grid.
type CellArray struct {
	Name   string
	Values []float64
}

// Backend allocates grids and attaches coordinates and data to them.
// Implementations reject handles they did not produce.
type Backend interface {
	// AllocateRectilinear creates a rectilinear grid with the given node
	// dimensions per axis.
	AllocateRectilinear(dims [3]int) (Handle, error)

	// SetAxisCoordinates assigns the node coordinates of one axis.
	SetAxisCoordinates(h Handle, axis Axis, coords []float64) error

	// AttachCellArray adds named per-cell values in grid cell order.
	AttachCellArray(h Handle, name string, values []float64) error

	// AllocateUnstructured creates an empty unstructured grid for meshes
	// whose cells are not a rectilinear lattice.
	AllocateUnstructured() (Handle, error)
}
