// Package preview renders quick-look heat map images of model values
// placed on a mesh. It draws from the in-memory grid backend, so the
// pipeline is parse, build, place, render.
package preview

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/terralith/ubcgrid/pkg/grid"
)

// Options controls the rendered figure. Zero width or height fall back
// to 8x5 inches.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	Slice  int // elevation layer for 3D grids, ignored for 2D
}

// Render draws a filled-cell section of the named array and saves it to
// path; the image format follows the extension. Flat 2D grids draw the
// easting/elevation plane; 3D grids draw the easting/northing plane at
// the elevation layer picked by o.Slice.
func Render(g *grid.Rectilinear, name, path string, o Options) error {
	vals, ok := g.CellArray(name)
	if !ok {
		return fmt.Errorf("preview: grid has no cell array %q", name)
	}
	s, err := sectionOf(g, vals, o.Slice)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "Easting"
	if flat2D(g) {
		p.Y.Label.Text = "Elevation"
	} else {
		p.Y.Label.Text = "Northing"
	}
	p.Add(plotter.NewHeatMap(s, moreland.SmoothBlueRed().Palette(255)))

	w, h := o.Width, o.Height
	if w <= 0 {
		w = 8 * vg.Inch
	}
	if h <= 0 {
		h = 5 * vg.Inch
	}
	return p.Save(w, h, path)
}

// section adapts one plane of cell data to plotter.GridXYZ. Coordinates
// are cell centers.
type section struct {
	xs, ys []float64
	vals   []float64 // len(xs)*len(ys), x varying fastest
}

func (s *section) Dims() (c, r int)   { return len(s.xs), len(s.ys) }
func (s *section) X(c int) float64    { return s.xs[c] }
func (s *section) Y(r int) float64    { return s.ys[r] }
func (s *section) Z(c, r int) float64 { return s.vals[r*len(s.xs)+c] }

func flat2D(g *grid.Rectilinear) bool {
	return g.Dims[1] == 2 && len(g.Coords[1]) == 1
}

// sectionOf extracts the plotted plane from grid cell order, where a
// cell (i, j, k) lives at index (k*n1+i)*n2+j.
func sectionOf(g *grid.Rectilinear, vals []float64, slice int) (*section, error) {
	c := g.CellCounts()
	n1, n2, n3 := c[0], c[1], c[2]
	if len(vals) != n1*n2*n3 {
		return nil, fmt.Errorf("preview: array has %d values for %d cells", len(vals), n1*n2*n3)
	}

	if flat2D(g) {
		xs, ys := centers(g.Coords[0]), centers(g.Coords[2])
		if len(xs) != n1 || len(ys) != n3 {
			return nil, fmt.Errorf("preview: coordinates do not match cell counts")
		}
		s := &section{xs: xs, ys: ys, vals: make([]float64, n1*n3)}
		for k := 0; k < n3; k++ {
			for i := 0; i < n1; i++ {
				s.vals[k*n1+i] = vals[(k*n1+i)*n2]
			}
		}
		return s, nil
	}

	if slice < 0 || slice >= n3 {
		return nil, fmt.Errorf("preview: slice %d out of range, grid has %d elevation layers", slice, n3)
	}
	xs, ys := centers(g.Coords[0]), centers(g.Coords[1])
	if len(xs) != n1 || len(ys) != n2 {
		return nil, fmt.Errorf("preview: coordinates do not match cell counts")
	}
	s := &section{xs: xs, ys: ys, vals: make([]float64, n1*n2)}
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			s.vals[j*n1+i] = vals[(slice*n1+i)*n2+j]
		}
	}
	return s, nil
}

// centers returns midpoints of consecutive node coordinates.
func centers(nodes []float64) []float64 {
	if len(nodes) < 2 {
		return nil
	}
	out := make([]float64, len(nodes)-1)
	for i := range out {
		out[i] = (nodes[i] + nodes[i+1]) / 2
	}
	return out
}
