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
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect_mesh [flags] <input.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]

	log.Println("Loading mesh...")
	mesh, err := meshprep.LoadMesh(inputPath)
	essentials.Must(err)

	report := meshprep.Analyze(mesh)
	report.Fprint(os.Stdout)

	edges := meshprep.AnalyzeEdges(mesh)
	components := meshprep.ComponentCount(mesh)
	largeFaces := meshprep.LargeFaceCount(mesh)
	fmt.Println()
	fmt.Printf("Edges:        %d\n", edges.Unique)
	fmt.Printf("Edge length:  min %.3f / mean %.3f / max %.3f mm\n",
		edges.MinLength, edges.MeanLength, edges.MaxLength)
	fmt.Printf("Components:   %d\n", components)

	clean := true
	if edges.Boundary > 0 {
		clean = false
		fmt.Printf("Warning:      %d boundary edges; these are likely holes\n", edges.Boundary)
	}
	if !report.Watertight {
		clean = false
		fmt.Println("Warning:      mesh is not watertight; run process_mesh -repair")
	}
	if report.DegenerateFaces > 0 {
		clean = false
		fmt.Println("Warning:      degenerate faces will be dropped by -repair")
	}
	if components > 1 {
		clean = false
		fmt.Printf("Warning:      %d separate pieces detected\n", components)
	}
	if edges.LongOutliers > 0 {
		clean = false
		fmt.Printf("Warning:      %d unusually long edges; these may bridge holes or thin regions\n",
			edges.LongOutliers)
	}
	if largeFaces > 0 {
		clean = false
		fmt.Printf("Warning:      %d unusually large faces; these may be patches over missing scan data\n",
			largeFaces)
	}
	if clean {
		fmt.Println("Mesh looks structurally sound.")
	}
}
