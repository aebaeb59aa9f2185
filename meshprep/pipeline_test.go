package meshprep

import (
	"math"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestPipelineEndToEnd(t *testing.T) {
	cube := model3d.NewMeshRect(model3d.XYZ(2, 3, 4), model3d.XYZ(3, 4, 5))
	p := &Pipeline{
		TargetSize: 100,
		Axis:       AxisAuto,
		Center:     true,
	}
	out, err := p.Run(cube)
	if err != nil {
		t.Fatal(err)
	}
	min, max := out.Min(), out.Max()
	expMin := model3d.XYZ(-50, -50, 0)
	expMax := model3d.XYZ(50, 50, 100)
	if min.Dist(expMin) > 1e-6 || max.Dist(expMax) > 1e-6 {
		t.Fatalf("expected bounds %v %v but got %v %v", expMin, expMax, min, max)
	}
}

func TestPipelineFixedOrder(t *testing.T) {
	// Scale runs before center, so centering must hold at the final
	// size rather than the original one.
	box := model3d.NewMeshRect(model3d.XYZ(10, 10, 10), model3d.XYZ(11, 12, 14))
	p := &Pipeline{
		TargetSize: 8,
		Axis:       AxisZ,
		Center:     true,
	}
	out, err := p.Run(box)
	if err != nil {
		t.Fatal(err)
	}
	min, max := out.Min(), out.Max()
	if math.Abs(min.Z) > 1e-8 || math.Abs(max.Z-8) > 1e-8 {
		t.Fatalf("expected z span [0, 8] but got [%f, %f]", min.Z, max.Z)
	}
	mid := min.Mid(max)
	if math.Abs(mid.X) > 1e-8 || math.Abs(mid.Y) > 1e-8 {
		t.Fatalf("bounding box not centered: %v", mid)
	}
}

func TestPipelineScaleFailureAborts(t *testing.T) {
	flat := model3d.NewMesh()
	flat.Add(&model3d.Triangle{
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(1, 0, 0),
		model3d.XYZ(0, 1, 0),
	})
	p := &Pipeline{TargetSize: 10, Axis: AxisZ, Center: true}
	if _, err := p.Run(flat); err == nil {
		t.Fatal("expected degenerate-extent error")
	}
}

func TestPipelineEnabled(t *testing.T) {
	if (&Pipeline{}).Enabled() {
		t.Fatal("empty pipeline should not be enabled")
	}
	if !(&Pipeline{Repair: true}).Enabled() {
		t.Fatal("repair pipeline should be enabled")
	}
	if !(&Pipeline{TargetFaces: 100}).Enabled() {
		t.Fatal("reduce pipeline should be enabled")
	}
}
