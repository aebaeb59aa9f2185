package meshprep

import (
	"github.com/fogleman/simplify"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// An Axis selects the bounding-box extent used as the scaling
// reference. AxisAuto selects the longest extent.
type Axis int

const (
	AxisAuto Axis = iota
	AxisX
	AxisY
	AxisZ
)

// ParseAxis converts a command-line axis name into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "", "auto":
		return AxisAuto, nil
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, errors.Errorf("unknown axis: %s (expected x, y, z, or auto)", s)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "auto"
}

// A RepairResult describes what Repair changed and whether the mesh
// came out watertight.
type RepairResult struct {
	DegenerateRemoved int
	NormalsFlipped    int
	Watertight        bool
}

// Repair removes zero-area triangles, merges near-duplicate vertices,
// and reorients inconsistent normals. A mesh that is still not
// watertight afterward is a best-effort result, not a failure; check
// the returned RepairResult.
func Repair(m *model3d.Mesh) (*model3d.Mesh, *RepairResult) {
	res := &RepairResult{}

	m = m.Copy()
	m.Iterate(func(t *model3d.Triangle) {
		if t.Area() == 0 {
			res.DegenerateRemoved++
			m.Remove(t)
		}
	})

	epsilon := m.Min().Dist(m.Max()) * 1e-8
	if epsilon > 0 {
		m = m.Repair(epsilon)
		m, res.NormalsFlipped = m.RepairNormals(epsilon)
	}

	res.Watertight = !m.NeedsRepair()
	return m, res
}

// Smooth applies iterations rounds of Laplacian smoothing, moving each
// vertex halfway toward the mean of its neighbors per round. Zero
// iterations is the identity. Smoothing is lossy; small values (3-5)
// preserve detail best.
func Smooth(m *model3d.Mesh, iterations int) *model3d.Mesh {
	if iterations <= 0 {
		return m
	}
	rates := make([]float64, iterations)
	for i := range rates {
		rates[i] = 0.5
	}
	return m.Blur(rates...)
}

// ScaleToSize uniformly scales the mesh so that the extent along axis
// equals targetSize, preserving aspect ratio. It returns the scaled
// mesh and the factor applied. Fails if the reference extent is zero.
func ScaleToSize(m *model3d.Mesh, targetSize float64, axis Axis) (*model3d.Mesh, float64, error) {
	if targetSize <= 0 {
		return nil, 0, errors.Errorf("scale: target size must be positive (got %f)", targetSize)
	}
	size := m.Max().Sub(m.Min())
	var current float64
	switch axis {
	case AxisX:
		current = size.X
	case AxisY:
		current = size.Y
	case AxisZ:
		current = size.Z
	default:
		current = size.MaxCoord()
	}
	if current <= 0 {
		return nil, 0, errors.Errorf("scale: mesh has zero extent along %s axis", axis)
	}
	factor := targetSize / current
	return m.Scale(factor), factor, nil
}

// CenterOnBed translates the mesh so the bounding-box center lands on
// x=0, y=0 and the lowest point rests on z=0, the print-bed convention.
func CenterOnBed(m *model3d.Mesh) *model3d.Mesh {
	min, max := m.Min(), m.Max()
	mid := min.Mid(max)
	return m.Translate(model3d.XYZ(-mid.X, -mid.Y, -min.Z))
}

// Reduce simplifies the mesh toward targetFaces using quadric-error
// decimation. A target at or above the current face count is a no-op.
// Very small targets may be clamped by the decimator.
func Reduce(m *model3d.Mesh, targetFaces int) *model3d.Mesh {
	tris := m.TriangleSlice()
	if len(tris) == 0 || targetFaces >= len(tris) {
		return m
	}
	inTris := make([]*simplify.Triangle, len(tris))
	for i, t := range tris {
		inTris[i] = simplify.NewTriangle(
			simplifyVector(t[0]),
			simplifyVector(t[1]),
			simplifyVector(t[2]),
		)
	}
	factor := float64(targetFaces) / float64(len(tris))
	reduced := simplify.NewMesh(inTris).Simplify(factor)
	out := model3d.NewMesh()
	for _, t := range reduced.Triangles {
		out.Add(&model3d.Triangle{coord3D(t.V1), coord3D(t.V2), coord3D(t.V3)})
	}
	return out
}

func simplifyVector(c model3d.Coord3D) simplify.Vector {
	return simplify.Vector{X: c.X, Y: c.Y, Z: c.Z}
}

func coord3D(v simplify.Vector) model3d.Coord3D {
	return model3d.XYZ(v.X, v.Y, v.Z)
}
