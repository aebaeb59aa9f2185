package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-prep/meshprep"
)

func main() {
	var axisName string
	var smooth int
	var outputPath string
	flag.StringVar(&axisName, "axis", "auto",
		"axis to scale (x, y, z, or auto for the longest dimension)")
	flag.IntVar(&smooth, "smooth", 0, "number of Laplacian smoothing iterations")
	flag.StringVar(&outputPath, "output", "", "output path (default <input>_<size>mm.stl)")
	flag.StringVar(&outputPath, "o", "", "shorthand for -output")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: scale_to_size [flags] <input.stl> <size-mm>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]
	targetSize, err := strconv.ParseFloat(args[1], 64)
	if err != nil || targetSize <= 0 {
		essentials.Die("Invalid target size:", args[1])
	}

	axis, err := meshprep.ParseAxis(axisName)
	essentials.Must(err)

	if outputPath == "" {
		stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = fmt.Sprintf("%s_%dmm.stl", stem, int(targetSize))
	}

	log.Println("Loading mesh...")
	mesh, err := meshprep.LoadMesh(inputPath)
	essentials.Must(err)

	report := meshprep.Analyze(mesh)
	report.Fprint(os.Stdout)

	pipeline := &meshprep.Pipeline{
		Repair:           !report.Watertight,
		SmoothIterations: smooth,
		TargetSize:       targetSize,
		Axis:             axis,
		Center:           true,
		Verbose:          true,
	}
	mesh, err = pipeline.Run(mesh)
	essentials.Must(err)

	log.Println("Writing output...")
	essentials.Must(meshprep.SaveMesh(mesh, outputPath))
	log.Printf("Model scaled and ready: %s", outputPath)
}
