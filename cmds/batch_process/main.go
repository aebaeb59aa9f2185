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
	var repair bool
	var smooth int
	var scale float64
	var axisName string
	var center bool
	var reduce int
	var pattern string
	flag.BoolVar(&repair, "repair", false, "repair holes and degenerate geometry")
	flag.IntVar(&smooth, "smooth", 0, "number of Laplacian smoothing iterations")
	flag.Float64Var(&scale, "scale", 0, "scale each mesh to this size in mm")
	flag.StringVar(&axisName, "axis", "auto",
		"axis for scaling (x, y, z, or auto for the longest dimension)")
	flag.BoolVar(&center, "center", false, "center each mesh on the print bed")
	flag.IntVar(&reduce, "reduce", 0, "reduce each mesh to this target face count")
	flag.StringVar(&pattern, "pattern", "", "only process file names matching this glob")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: batch_process [flags] <input_dir> <output_dir>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputDir, outputDir := args[0], args[1]

	axis, err := meshprep.ParseAxis(axisName)
	essentials.Must(err)

	pipeline := &meshprep.Pipeline{
		Repair:           repair,
		SmoothIterations: smooth,
		TargetSize:       scale,
		Axis:             axis,
		Center:           center,
		TargetFaces:      reduce,
		Verbose:          true,
	}

	result, err := meshprep.BatchProcess(pipeline, inputDir, outputDir, pattern)
	essentials.Must(err)

	for _, r := range result.Results {
		if r.Err != nil {
			log.Printf("failed: %s: %s", r.Name, r.Err)
		}
	}
	fmt.Printf("Processed %d files: %d succeeded, %d failed.\n",
		len(result.Results), result.Succeeded(), result.Failed())
}
