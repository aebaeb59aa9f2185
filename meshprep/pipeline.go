package meshprep

import (
	"log"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Pipeline describes which processing stages to apply to a mesh.
// Stages always run in a fixed order: repair, smooth, scale, center,
// reduce. The order is deliberately not configurable so that a given
// set of flags always produces the same result.
type Pipeline struct {
	// Repair closes holes and removes degenerate geometry.
	Repair bool

	// SmoothIterations applies that many rounds of Laplacian
	// smoothing when positive.
	SmoothIterations int

	// TargetSize rescales the mesh so the extent along Axis equals
	// this value (in mm) when positive.
	TargetSize float64
	Axis       Axis

	// Center moves the mesh onto the print bed.
	Center bool

	// TargetFaces decimates the mesh toward this face count when
	// positive.
	TargetFaces int

	// Verbose logs a line per stage.
	Verbose bool
}

// Enabled reports whether any stage would run.
func (p *Pipeline) Enabled() bool {
	return p.Repair || p.SmoothIterations > 0 || p.TargetSize > 0 || p.Center ||
		p.TargetFaces > 0
}

// Run applies the enabled stages to m and returns the processed mesh.
// The first stage failure aborts the rest of the pipeline.
func (p *Pipeline) Run(m *model3d.Mesh) (*model3d.Mesh, error) {
	if p.Repair {
		p.logf("Repairing mesh...")
		var res *RepairResult
		m, res = Repair(m)
		p.logf(" - removed %d degenerate triangles, flipped %d normals",
			res.DegenerateRemoved, res.NormalsFlipped)
		if !res.Watertight {
			log.Printf("warning: mesh is still not watertight after repair")
		}
	}
	if p.SmoothIterations > 0 {
		p.logf("Smoothing mesh (%d iterations)...", p.SmoothIterations)
		m = Smooth(m, p.SmoothIterations)
	}
	if p.TargetSize > 0 {
		p.logf("Scaling to %.2f mm along %s axis...", p.TargetSize, p.Axis)
		var factor float64
		var err error
		m, factor, err = ScaleToSize(m, p.TargetSize, p.Axis)
		if err != nil {
			return nil, errors.Wrap(err, "pipeline")
		}
		p.logf(" - scale factor %.4f", factor)
	}
	if p.Center {
		p.logf("Centering on print bed...")
		m = CenterOnBed(m)
	}
	if p.TargetFaces > 0 {
		before := len(m.TriangleSlice())
		if before <= p.TargetFaces {
			p.logf("Mesh already has %d faces (target %d); skipping reduction",
				before, p.TargetFaces)
		} else {
			p.logf("Reducing %d faces toward %d...", before, p.TargetFaces)
			m = Reduce(m, p.TargetFaces)
			p.logf(" - now %d faces", len(m.TriangleSlice()))
		}
	}
	return m, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Verbose {
		log.Printf(format, args...)
	}
}
