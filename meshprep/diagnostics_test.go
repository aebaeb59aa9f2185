package meshprep

import (
	"math"
	"strings"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestAnalyzeCube(t *testing.T) {
	cube := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1))
	r := Analyze(cube)
	if r.Vertices != 8 {
		t.Fatalf("expected 8 vertices but got %d", r.Vertices)
	}
	if r.Faces != 12 {
		t.Fatalf("expected 12 faces but got %d", r.Faces)
	}
	if !r.Watertight || !r.Manifold {
		t.Fatalf("cube should be watertight and manifold: %+v", r)
	}
	if math.Abs(r.SurfaceArea-6) > 1e-8 {
		t.Fatalf("expected surface area 6 but got %f", r.SurfaceArea)
	}
	if !r.HasVolume || math.Abs(r.Volume-1) > 1e-8 {
		t.Fatalf("expected volume 1 but got %f (known=%v)", r.Volume, r.HasVolume)
	}
	extents := r.Extents()
	if math.Abs(extents.X-1) > 1e-8 || math.Abs(extents.Y-1) > 1e-8 ||
		math.Abs(extents.Z-1) > 1e-8 {
		t.Fatalf("unexpected extents: %v", extents)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	r := Analyze(model3d.NewMesh())
	if r.Vertices != 0 || r.Faces != 0 || r.HasVolume {
		t.Fatalf("unexpected report for empty mesh: %+v", r)
	}
}

func TestAnalyzeOpenMesh(t *testing.T) {
	open := model3d.NewMesh()
	open.Add(&model3d.Triangle{
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(1, 0, 0),
		model3d.XYZ(0, 1, 0),
	})
	r := Analyze(open)
	if r.Watertight {
		t.Fatal("single triangle should not be watertight")
	}
	if r.Manifold {
		t.Fatal("single triangle should not be manifold")
	}
	if r.HasVolume {
		t.Fatal("volume should be unavailable for an open mesh")
	}
	var sb strings.Builder
	r.Fprint(&sb)
	if !strings.Contains(sb.String(), "unavailable") {
		t.Fatalf("report should mark volume unavailable:\n%s", sb.String())
	}
}

func TestAnalyzeEdgesCube(t *testing.T) {
	cube := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1))
	stats := AnalyzeEdges(cube)
	// V - E + F = 2 for a closed triangulated cube.
	if stats.Unique != 18 {
		t.Fatalf("expected 18 unique edges but got %d", stats.Unique)
	}
	if stats.Boundary != 0 {
		t.Fatalf("expected no boundary edges but got %d", stats.Boundary)
	}
	if stats.MinLength <= 0 || stats.MaxLength < stats.MinLength ||
		stats.MeanLength < stats.MinLength || stats.MeanLength > stats.MaxLength {
		t.Fatalf("inconsistent edge lengths: %+v", stats)
	}
}

func TestAnalyzeNonManifoldEdge(t *testing.T) {
	// Duplicating a face leaves no boundary edges but makes three
	// edges touch more than two faces.
	cube := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1))
	first := cube.TriangleSlice()[0]
	cube.Add(&model3d.Triangle{first[0], first[1], first[2]})
	r := Analyze(cube)
	if !r.Watertight {
		t.Fatal("doubled face should not create boundary edges")
	}
	if r.Manifold {
		t.Fatal("doubled face should break the manifold-edge condition")
	}
}

func TestAnalyzeEdgesBoundary(t *testing.T) {
	open := model3d.NewMesh()
	open.Add(&model3d.Triangle{
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(1, 0, 0),
		model3d.XYZ(0, 1, 0),
	})
	stats := AnalyzeEdges(open)
	if stats.Unique != 3 || stats.Boundary != 3 {
		t.Fatalf("expected 3 boundary edges but got %+v", stats)
	}
}

func TestAnalyzeEdgesLongOutliers(t *testing.T) {
	m := outlierMesh()
	stats := AnalyzeEdges(m)
	if stats.LongOutliers < 1 {
		t.Fatalf("expected at least one long edge outlier: %+v", stats)
	}
	uniform := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1))
	if n := AnalyzeEdges(uniform).LongOutliers; n != 0 {
		t.Fatalf("cube should have no long edge outliers but got %d", n)
	}
}

func TestLargeFaceCount(t *testing.T) {
	if n := LargeFaceCount(outlierMesh()); n != 1 {
		t.Fatalf("expected 1 large face outlier but got %d", n)
	}
	uniform := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1))
	if n := LargeFaceCount(uniform); n != 0 {
		t.Fatalf("cube should have no large face outliers but got %d", n)
	}
}

func TestComponentCount(t *testing.T) {
	one := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1))
	if n := ComponentCount(one); n != 1 {
		t.Fatalf("expected 1 component but got %d", n)
	}
	two := model3d.NewMeshRect(model3d.Origin, model3d.XYZ(1, 1, 1))
	two.AddMesh(model3d.NewMeshRect(model3d.XYZ(5, 5, 5), model3d.XYZ(6, 6, 6)))
	if n := ComponentCount(two); n != 2 {
		t.Fatalf("expected 2 components but got %d", n)
	}
}

// outlierMesh is a strip of small triangles plus one triangle that is
// orders of magnitude larger in both edge length and area.
func outlierMesh() *model3d.Mesh {
	m := model3d.NewMesh()
	for i := 0; i < 24; i++ {
		x := float64(i) * 0.1
		m.Add(&model3d.Triangle{
			model3d.XYZ(x, 0, 0),
			model3d.XYZ(x+0.1, 0, 0),
			model3d.XYZ(x, 0.1, 0),
		})
	}
	m.Add(&model3d.Triangle{
		model3d.XYZ(0, 1, 0),
		model3d.XYZ(100, 1, 0),
		model3d.XYZ(0, 2, 0),
	})
	return m
}
