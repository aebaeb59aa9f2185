package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-prep/meshprep"
)

func main() {
	var analyze bool
	var repair bool
	var smooth int
	var scale float64
	var axisName string
	var center bool
	var reduce int
	var outputPath string
	flag.BoolVar(&analyze, "analyze", false, "print diagnostics and exit without writing")
	flag.BoolVar(&repair, "repair", false, "repair holes and degenerate geometry")
	flag.IntVar(&smooth, "smooth", 0, "number of Laplacian smoothing iterations")
	flag.Float64Var(&scale, "scale", 0, "scale the mesh to this size in mm")
	flag.StringVar(&axisName, "axis", "auto",
		"axis for scaling (x, y, z, or auto for the longest dimension)")
	flag.BoolVar(&center, "center", false, "center on the print bed (z=0)")
	flag.IntVar(&reduce, "reduce", 0, "reduce to this target face count")
	flag.StringVar(&outputPath, "output", "", "path for the processed mesh")
	flag.StringVar(&outputPath, "o", "", "shorthand for -output")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: process_mesh [flags] <input.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]

	axis, err := meshprep.ParseAxis(axisName)
	essentials.Must(err)

	log.Println("Loading mesh...")
	mesh, err := meshprep.LoadMesh(inputPath)
	essentials.Must(err)

	report := meshprep.Analyze(mesh)
	report.Fprint(os.Stdout)
	if analyze {
		return
	}

	pipeline := &meshprep.Pipeline{
		Repair:           repair,
		SmoothIterations: smooth,
		TargetSize:       scale,
		Axis:             axis,
		Center:           center,
		TargetFaces:      reduce,
		Verbose:          true,
	}
	if pipeline.Enabled() {
		mesh, err = pipeline.Run(mesh)
		essentials.Must(err)

		fmt.Println()
		meshprep.Analyze(mesh).Fprint(os.Stdout)
	}

	if outputPath == "" {
		log.Println("No -output specified; result discarded.")
		return
	}
	log.Println("Writing output...")
	essentials.Must(meshprep.SaveMesh(mesh, outputPath))
}
