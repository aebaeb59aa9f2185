package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-prep/meshprep"
)

// Leaves a small margin inside a 4x4x4 inch (101.6mm) build volume.
const bedSize = 100.0

func main() {
	var smooth int
	var outputPath string
	flag.IntVar(&smooth, "smooth", 0, "number of Laplacian smoothing iterations")
	flag.StringVar(&outputPath, "output", "", "output path (default <input>_print_ready.stl)")
	flag.StringVar(&outputPath, "o", "", "shorthand for -output")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: prepare_for_printing [flags] <input.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]

	if outputPath == "" {
		stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = stem + "_print_ready.stl"
	}

	log.Println("Loading mesh...")
	mesh, err := meshprep.LoadMesh(inputPath)
	essentials.Must(err)

	report := meshprep.Analyze(mesh)
	report.Fprint(os.Stdout)

	maxDim := report.Extents().MaxCoord()
	log.Printf("Max dimension: %.2f mm (%.2f inches)", maxDim, maxDim/25.4)

	pipeline := &meshprep.Pipeline{
		Repair:           !report.Watertight,
		SmoothIterations: smooth,
		Center:           true,
		Verbose:          true,
	}
	if maxDim > bedSize {
		log.Printf("Scaling down from %.2f mm to %.2f mm", maxDim, bedSize)
		pipeline.TargetSize = bedSize
		pipeline.Axis = meshprep.AxisAuto
	} else {
		log.Printf("Mesh already fits the bed (max dimension %.2f mm)", maxDim)
	}

	mesh, err = pipeline.Run(mesh)
	essentials.Must(err)

	log.Println("Writing output...")
	essentials.Must(meshprep.SaveMesh(mesh, outputPath))
	log.Printf("Ready for printing: %s", outputPath)
}
