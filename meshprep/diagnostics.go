package meshprep

import (
	"fmt"
	"io"
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// A Report summarizes the printability-relevant properties of a mesh.
type Report struct {
	Vertices int
	Faces    int

	Min model3d.Coord3D
	Max model3d.Coord3D

	// Watertight is true when no edge is touched by fewer than two
	// faces, i.e. the surface has no boundary.
	Watertight bool

	// Manifold is true when every edge is touched by exactly two
	// faces, the condition slicers require.
	Manifold bool

	DegenerateFaces int

	SurfaceArea float64

	// Volume is only meaningful when HasVolume is true, i.e. when the
	// mesh is watertight and encloses a well-defined region.
	Volume    float64
	HasVolume bool
}

// Analyze computes a Report for a mesh. The mesh is not modified. An
// empty mesh yields a zero-valued report.
func Analyze(m *model3d.Mesh) *Report {
	r := &Report{
		Vertices: len(m.VertexSlice()),
		Faces:    len(m.TriangleSlice()),
	}
	if r.Faces == 0 {
		return r
	}

	r.Min, r.Max = m.Min(), m.Max()

	boundary, nonManifold := 0, 0
	for _, n := range edgeFaceCounts(m) {
		if n < 2 {
			boundary++
		}
		if n != 2 {
			nonManifold++
		}
	}
	r.Watertight = boundary == 0
	r.Manifold = nonManifold == 0

	m.Iterate(func(t *model3d.Triangle) {
		if t.Area() == 0 {
			r.DegenerateFaces++
		}
	})

	r.SurfaceArea = m.Area()
	if r.Watertight {
		r.Volume = math.Abs(m.Volume())
		r.HasVolume = true
	}
	return r
}

// Extents returns the bounding-box dimensions.
func (r *Report) Extents() model3d.Coord3D {
	return r.Max.Sub(r.Min)
}

// Fprint writes the report as a fixed human-readable block.
func (r *Report) Fprint(w io.Writer) {
	extents := r.Extents()
	fmt.Fprintf(w, "Vertices:     %d\n", r.Vertices)
	fmt.Fprintf(w, "Faces:        %d\n", r.Faces)
	fmt.Fprintf(w, "Dimensions:   %.2f x %.2f x %.2f mm\n", extents.X, extents.Y, extents.Z)
	fmt.Fprintf(w, "Surface area: %.2f mm^2\n", r.SurfaceArea)
	if r.HasVolume {
		fmt.Fprintf(w, "Volume:       %.2f mm^3\n", r.Volume)
	} else {
		fmt.Fprintf(w, "Volume:       unavailable (not watertight)\n")
	}
	fmt.Fprintf(w, "Watertight:   %s\n", yesNo(r.Watertight))
	fmt.Fprintf(w, "Manifold:     %s\n", yesNo(r.Manifold))
	if r.DegenerateFaces > 0 {
		fmt.Fprintf(w, "Warning:      %d degenerate (zero-area) faces\n", r.DegenerateFaces)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EdgeStats summarizes the unique edges of a mesh. Boundary counts
// edges touched by a number of faces other than two; such edges
// indicate holes or non-manifold geometry.
type EdgeStats struct {
	Unique   int
	Boundary int

	MinLength  float64
	MaxLength  float64
	MeanLength float64

	// LongOutliers counts edges longer than three standard deviations
	// above the mean. On scans these often bridge holes or span thin
	// regions of missing data.
	LongOutliers int
}

// AnalyzeEdges computes edge statistics for a mesh.
func AnalyzeEdges(m *model3d.Mesh) *EdgeStats {
	counts := edgeFaceCounts(m)
	stats := &EdgeStats{Unique: len(counts)}
	if len(counts) == 0 {
		return stats
	}

	stats.MinLength = math.Inf(1)
	lengths := make([]float64, 0, len(counts))
	var total float64
	for e, n := range counts {
		if n != 2 {
			stats.Boundary++
		}
		length := e[0].Dist(e[1])
		lengths = append(lengths, length)
		total += length
		stats.MinLength = math.Min(stats.MinLength, length)
		stats.MaxLength = math.Max(stats.MaxLength, length)
	}
	stats.MeanLength = total / float64(len(lengths))

	var sqDiff float64
	for _, length := range lengths {
		d := length - stats.MeanLength
		sqDiff += d * d
	}
	threshold := stats.MeanLength + 3*math.Sqrt(sqDiff/float64(len(lengths)))
	for _, length := range lengths {
		if length > threshold {
			stats.LongOutliers++
		}
	}
	return stats
}

// LargeFaceCount returns the number of faces whose area is more than
// three standard deviations above the mean face area. On scans these
// are often repair patches covering missing data.
func LargeFaceCount(m *model3d.Mesh) int {
	tris := m.TriangleSlice()
	if len(tris) == 0 {
		return 0
	}
	areas := make([]float64, len(tris))
	var total float64
	for i, t := range tris {
		areas[i] = t.Area()
		total += areas[i]
	}
	mean := total / float64(len(areas))
	var sqDiff float64
	for _, area := range areas {
		d := area - mean
		sqDiff += d * d
	}
	threshold := mean + 3*math.Sqrt(sqDiff/float64(len(areas)))
	count := 0
	for _, area := range areas {
		if area > threshold {
			count++
		}
	}
	return count
}

// ComponentCount returns the number of connected pieces in the mesh.
func ComponentCount(m *model3d.Mesh) int {
	count := 0
	var walk func(hs []*model3d.MeshHierarchy)
	walk = func(hs []*model3d.MeshHierarchy) {
		for _, h := range hs {
			count++
			walk(h.Children)
		}
	}
	walk(model3d.MeshToHierarchy(m))
	return count
}

type meshEdge [2]model3d.Coord3D

// edgeFaceCounts maps each unique undirected edge to the number of
// faces touching it.
func edgeFaceCounts(m *model3d.Mesh) map[meshEdge]int {
	counts := map[meshEdge]int{}
	m.Iterate(func(t *model3d.Triangle) {
		for i := 0; i < 3; i++ {
			a, b := t[i], t[(i+1)%3]
			if coordLess(b, a) {
				a, b = b, a
			}
			counts[meshEdge{a, b}]++
		}
	})
	return counts
}

func coordLess(a, b model3d.Coord3D) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
