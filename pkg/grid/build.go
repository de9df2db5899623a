package grid

import (
	"errors"
	"fmt"

	"github.com/terralith/ubcgrid/pkg/ubc"
)

// ErrOcTreeTopology reports that OcTree leaf cells cannot be materialized:
// the index table encoding differs between GIF codes and is kept
// unexpanded, so no cell topology can be built from it yet.
var ErrOcTreeTopology = errors.New("OcTree cell topology construction is not implemented")

// BuildMesh3D materializes a parsed tensor mesh as an empty rectilinear
// grid on b.
func BuildMesh3D(b Backend, m *ubc.Mesh3D) (Handle, error) {
	h, err := b.AllocateRectilinear(m.NodeDims())
	if err != nil {
		return nil, err
	}
	for axis := AxisX; axis <= AxisZ; axis++ {
		if err := b.SetAxisCoordinates(h, axis, m.Axes[axis]); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// BuildMesh2D materializes a parsed 2D mesh as an empty rectilinear grid
// on b. The northing axis declares two node planes but carries a single
// coordinate, mirroring how these meshes have always been materialized.
func BuildMesh2D(b Backend, m *ubc.Mesh2D) (Handle, error) {
	h, err := b.AllocateRectilinear(m.NodeDims())
	if err != nil {
		return nil, err
	}
	if err := b.SetAxisCoordinates(h, AxisX, m.XNodes); err != nil {
		return nil, err
	}
	if err := b.SetAxisCoordinates(h, AxisY, []float64{0}); err != nil {
		return nil, err
	}
	if err := b.SetAxisCoordinates(h, AxisZ, m.ZNodes); err != nil {
		return nil, err
	}
	return h, nil
}

// BuildOcTree would materialize an OcTree mesh as an unstructured grid.
// The grid is allocated, but filling it always fails with
// ErrOcTreeTopology until the index encoding is pinned down; parse
// headers with ubc.ParseOcTree for inspection instead.
func BuildOcTree(b Backend, m *ubc.OcTreeMesh) (Handle, error) {
	if _, err := b.AllocateUnstructured(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("building OcTree with %d leaf cells: %w", m.DeclaredCells, ErrOcTreeTopology)
}

// BuildMeshData3D reads the classic mesh/model file pair and returns a
// populated grid. name overrides the cell array name; empty picks the
// model file's base name.
func BuildMeshData3D(b Backend, meshPath, modelPath, name string) (Handle, error) {
	m, err := ubc.ParseMesh3DFile(meshPath)
	if err != nil {
		return nil, err
	}
	model, err := ubc.ParseModel3DFile(modelPath)
	if err != nil {
		return nil, err
	}
	h, err := BuildMesh3D(b, m)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = model.ArrayName()
	}
	if err := PlaceModel(b, h, m.CellCounts, model.Values, name); err != nil {
		return nil, err
	}
	return h, nil
}

// BuildMeshData2D is BuildMeshData3D for the 2D mesh and model formats.
func BuildMeshData2D(b Backend, meshPath, modelPath, name string) (Handle, error) {
	m, err := ubc.ParseMesh2DFile(meshPath)
	if err != nil {
		return nil, err
	}
	model, err := ubc.ParseModel2DFile(modelPath)
	if err != nil {
		return nil, err
	}
	h, err := BuildMesh2D(b, m)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = model.ArrayName()
	}
	if err := PlaceModel(b, h, m.CellCounts(), model.Values, name); err != nil {
		return nil, err
	}
	return h, nil
}
