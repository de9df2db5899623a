// ubcgrid is a CLI utility for working with UBC-GIF mesh and model files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/vg"

	"github.com/terralith/ubcgrid/internal/config"
	"github.com/terralith/ubcgrid/internal/logger"
	"github.com/terralith/ubcgrid/internal/preview"
	"github.com/terralith/ubcgrid/pkg/grid"
	"github.com/terralith/ubcgrid/pkg/ubc"
	"github.com/terralith/ubcgrid/pkg/vtklegacy"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "extent":
		cmdExtent(args)
	case "stats":
		cmdStats(args)
	case "convert":
		cmdConvert(args)
	case "plot":
		cmdPlot(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ubcgrid - UBC-GIF mesh and model utility

Usage:
  ubcgrid <command> [options]

Commands:
  info <mesh>                      Show mesh information
  extent <mesh>                    Report the whole extent from the mesh header
  stats <model> [-mesh file]       Summarize model values
  convert -mesh file [-model file] Convert a mesh (and model) to legacy VTK
  plot -mesh file -model file      Render a model section image
  config [-init]                   Show or write tool configuration

Every command also accepts -config, -debug, -quiet, -log-file, -array,
-title and -kind where it applies; run "ubcgrid <command> -h".

Examples:
  ubcgrid info mesh3d.msh
  ubcgrid stats density.mod -mesh mesh3d.msh
  ubcgrid convert -mesh mesh3d.msh -model density.mod -o density.vtk
  ubcgrid plot -mesh mesh2d.msh -model cond.mod -o cond.png`)
}

// setup registers the shared flags, parses fs, and boots config and
// logging. Callers defer logger.Sync afterwards.
func setup(fs *flag.FlagSet, args []string) *config.Config {
	config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// parseKind maps the -kind flag to a mesh kind. Empty means detect.
func parseKind(s string) (ubc.Kind, error) {
	switch strings.ToLower(s) {
	case "":
		return ubc.KindUnknown, nil
	case "2d":
		return ubc.KindMesh2D, nil
	case "3d":
		return ubc.KindMesh3D, nil
	case "octree":
		return ubc.KindOcTree, nil
	default:
		return ubc.KindUnknown, fmt.Errorf("unknown mesh kind %q (use 2d, 3d or octree)", s)
	}
}

// resolveKind turns the -kind flag into a concrete kind, sniffing the
// mesh header when the flag is empty.
func resolveKind(flagVal, meshPath string) ubc.Kind {
	k, err := parseKind(flagVal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if k == ubc.KindUnknown {
		k, err = ubc.DetectKindFile(meshPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Sugar.Debugf("detected %s as %s", meshPath, k)
	}
	return k
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	kindFlag := fs.String("kind", "", "Mesh format: 2d, 3d or octree (default: detect)")
	setup(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: ubcgrid info <mesh>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	fmt.Printf("Mesh:    %s\n", path)
	switch resolveKind(*kindFlag, path) {
	case ubc.KindMesh2D:
		m, err := ubc.ParseMesh2DFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		c := m.CellCounts()
		n := m.NodeDims()
		fmt.Printf("Kind:    %s\n", ubc.KindMesh2D)
		fmt.Printf("Cells:   %d x %d x %d (%d total)\n", c[0], c[1], c[2], m.NumCells())
		fmt.Printf("Nodes:   %d x %d x %d\n", n[0], n[1], n[2])
		fmt.Printf("Extent:  %s\n", m.Extent())
		printSpan("Easting", m.XNodes)
		printSpan("Elevation", m.ZNodes)

	case ubc.KindMesh3D:
		m, err := ubc.ParseMesh3DFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		c := m.CellCounts
		n := m.NodeDims()
		fmt.Printf("Kind:    %s\n", ubc.KindMesh3D)
		fmt.Printf("Cells:   %d x %d x %d (%d total)\n", c[0], c[1], c[2], m.NumCells())
		fmt.Printf("Nodes:   %d x %d x %d\n", n[0], n[1], n[2])
		fmt.Printf("Origin:  %g %g %g\n", m.Origin[0], m.Origin[1], m.Origin[2])
		fmt.Printf("Extent:  %s\n", m.Extent())
		printSpan("Easting", m.Axes[0])
		printSpan("Northing", m.Axes[1])
		printSpan("Elevation", m.Axes[2])

	case ubc.KindOcTree:
		m, err := ubc.ParseOcTreeFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Kind:    %s\n", ubc.KindOcTree)
		fmt.Printf("Core:    %d x %d x %d cells\n", m.CellCounts[0], m.CellCounts[1], m.CellCounts[2])
		fmt.Printf("Padding: %v\n", m.Padding)
		fmt.Printf("Origin:  %g %g %g\n", m.Origin[0], m.Origin[1], m.Origin[2])
		fmt.Printf("Widths:  %g %g %g\n", m.CoreWidths[0], m.CoreWidths[1], m.CoreWidths[2])
		fmt.Printf("Leaves:  %d cells, %d index fields each\n", m.DeclaredCells, len(m.Index[0]))
		fmt.Println("Note:    OcTree cell topology is not expanded; only the header is read.")
	}
}

func printSpan(name string, nodes []float64) {
	fmt.Printf("%-9s %g to %g (%d cells)\n", name+":", nodes[0], nodes[len(nodes)-1], len(nodes)-1)
}

func cmdExtent(args []string) {
	fs := flag.NewFlagSet("extent", flag.ExitOnError)
	kindFlag := fs.String("kind", "", "Mesh format: 2d, 3d or octree (default: detect)")
	setup(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: ubcgrid extent <mesh>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	var (
		e   ubc.Extent
		err error
	)
	if resolveKind(*kindFlag, path) == ubc.KindMesh2D {
		e, err = ubc.ReadExtent2D(path)
	} else {
		e, err = ubc.ReadExtent3D(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c := e.CellCounts()
	fmt.Printf("Extent: %s\n", e)
	fmt.Printf("Cells:  %d x %d x %d (%d total)\n", c[0], c[1], c[2], c[0]*c[1]*c[2])
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	meshPath := fs.String("mesh", "", "Mesh file to check the value count against")
	kindFlag := fs.String("kind", "", "Model format: 2d or 3d (default: mesh kind, else 3d)")
	setup(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: ubcgrid stats <model> [-mesh file]")
		os.Exit(1)
	}
	path := fs.Arg(0)

	kind, err := parseKind(*kindFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if kind == ubc.KindUnknown {
		kind = ubc.KindMesh3D
		if *meshPath != "" {
			kind = resolveKind("", *meshPath)
		}
	}

	var model *ubc.Model
	if kind == ubc.KindMesh2D {
		model, err = ubc.ParseModel2DFile(path)
	} else {
		model, err = ubc.ParseModel3DFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v := model.Values
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)

	fmt.Printf("Model:  %s\n", path)
	fmt.Printf("Values: %d\n", len(v))
	fmt.Printf("Min:    %g\n", sorted[0])
	fmt.Printf("Max:    %g\n", sorted[len(sorted)-1])
	fmt.Printf("Mean:   %g\n", stat.Mean(v, nil))
	fmt.Printf("StdDev: %g\n", stat.StdDev(v, nil))
	fmt.Printf("Q1:     %g\n", stat.Quantile(0.25, stat.Empirical, sorted, nil))
	fmt.Printf("Median: %g\n", stat.Quantile(0.5, stat.Empirical, sorted, nil))
	fmt.Printf("Q3:     %g\n", stat.Quantile(0.75, stat.Empirical, sorted, nil))

	if *meshPath != "" {
		var e ubc.Extent
		if kind == ubc.KindMesh2D {
			e, err = ubc.ReadExtent2D(*meshPath)
		} else {
			e, err = ubc.ReadExtent3D(*meshPath)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		c := e.CellCounts()
		cells := c[0] * c[1] * c[2]
		switch {
		case len(v) == cells:
			fmt.Printf("Mesh:   %s (model fills all %d cells)\n", *meshPath, cells)
		case len(v) < cells:
			fmt.Printf("Mesh:   %s (model is short by %d of %d cells)\n", *meshPath, cells-len(v), cells)
		default:
			fmt.Printf("Mesh:   %s (model has %d values beyond %d cells)\n", *meshPath, len(v)-cells, cells)
		}
	}
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	meshPath := fs.String("mesh", "", "Mesh file to convert")
	modelPath := fs.String("model", "", "Model file to place on the mesh")
	outPath := fs.String("o", "", "Output VTK file (default: mesh name with .vtk)")
	kindFlag := fs.String("kind", "", "Mesh format: 2d, 3d or octree (default: detect)")
	cfg := setup(fs, args)
	defer logger.Sync()

	if *meshPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ubcgrid convert -mesh file [-model file] [-o out.vtk]")
		os.Exit(1)
	}
	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(*meshPath, filepath.Ext(*meshPath)) + ".vtk"
	}

	w := &vtklegacy.Writer{Title: cfg.Output.Title}
	var (
		h   grid.Handle
		err error
	)
	switch kind := resolveKind(*kindFlag, *meshPath); kind {
	case ubc.KindMesh2D:
		if *modelPath != "" {
			h, err = grid.BuildMeshData2D(w, *meshPath, *modelPath, cfg.Output.ArrayName)
		} else {
			var m *ubc.Mesh2D
			if m, err = ubc.ParseMesh2DFile(*meshPath); err == nil {
				h, err = grid.BuildMesh2D(w, m)
			}
		}
	case ubc.KindMesh3D:
		if *modelPath != "" {
			h, err = grid.BuildMeshData3D(w, *meshPath, *modelPath, cfg.Output.ArrayName)
		} else {
			var m *ubc.Mesh3D
			if m, err = ubc.ParseMesh3DFile(*meshPath); err == nil {
				h, err = grid.BuildMesh3D(w, m)
			}
		}
	case ubc.KindOcTree:
		var m *ubc.OcTreeMesh
		if m, err = ubc.ParseOcTreeFile(*meshPath); err == nil {
			_, err = grid.BuildOcTree(w, m)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f := h.(*vtklegacy.File)
	if err := f.WriteFile(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("wrote %s with %d arrays", out, len(f.Arrays))
	fmt.Printf("Converted: %s -> %s\n", *meshPath, out)
}

func cmdPlot(args []string) {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	meshPath := fs.String("mesh", "", "Mesh file")
	modelPath := fs.String("model", "", "Model file to render")
	outPath := fs.String("o", "", "Output image (default: model name with .png)")
	kindFlag := fs.String("kind", "", "Mesh format: 2d or 3d (default: detect)")
	slice := fs.Int("slice", 0, "Elevation layer for 3D meshes")
	cfg := setup(fs, args)
	defer logger.Sync()

	if *meshPath == "" || *modelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ubcgrid plot -mesh file -model file [-o out.png]")
		os.Exit(1)
	}
	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(*modelPath, filepath.Ext(*modelPath)) + ".png"
	}
	name := cfg.Output.ArrayName
	if name == "" {
		name = filepath.Base(*modelPath)
	}

	var (
		b   grid.Memory
		h   grid.Handle
		err error
	)
	switch kind := resolveKind(*kindFlag, *meshPath); kind {
	case ubc.KindMesh2D:
		h, err = grid.BuildMeshData2D(b, *meshPath, *modelPath, name)
	case ubc.KindMesh3D:
		h, err = grid.BuildMeshData3D(b, *meshPath, *modelPath, name)
	default:
		err = fmt.Errorf("plotting is not supported for %s files", kind)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := preview.Options{
		Title:  name,
		Width:  vg.Length(cfg.Plot.WidthInches) * vg.Inch,
		Height: vg.Length(cfg.Plot.HeightInches) * vg.Inch,
		Slice:  *slice,
	}
	if err := preview.Render(h.(*grid.Rectilinear), name, out, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered: %s -> %s\n", *modelPath, out)
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	initFlag := fs.Bool("init", false, "Write the default config to the user config directory")
	cfg := setup(fs, args)
	defer logger.Sync()

	if *initFlag {
		if err := config.Default().Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return
	}

	data, err := cfg.YAML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
