package meshprep

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// ErrUnknownFormat is returned when a file extension does not map to a
// supported mesh format.
var ErrUnknownFormat = errors.New("unrecognized mesh format")

// LoadMesh reads a mesh from a file, inferring the format from the file
// extension. STL, OBJ, PLY, and OFF are supported.
func LoadMesh(path string) (*model3d.Mesh, error) {
	var tris []*model3d.Triangle
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		tris, err = Load(path, model3d.ReadSTL)
	case ".obj":
		tris, err = Load(path, ReadOBJ)
	case ".ply":
		tris, err = Load(path, ReadPLY)
	case ".off":
		tris, err = Load(path, model3d.ReadOFF)
	case ".3mf":
		return nil, errors.Errorf("load mesh %s: 3MF support is not compiled in", path)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "load mesh %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load mesh %s", path)
	}
	return model3d.NewMeshTriangles(tris), nil
}

// SaveMesh writes a mesh to a file in the format implied by the file
// extension, creating parent directories as needed.
func SaveMesh(m *model3d.Mesh, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "save mesh %s", path)
		}
	}
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		err = m.SaveGroupedSTL(path)
	case ".obj":
		err = Save(path, m, WriteOBJ)
	case ".ply":
		err = os.WriteFile(path, m.EncodePLY(func(c model3d.Coord3D) [3]uint8 {
			return [3]uint8{255, 255, 255}
		}), 0644)
	case ".off":
		err = Save(path, m, WriteOFF)
	default:
		return errors.Wrapf(ErrUnknownFormat, "save mesh %s", path)
	}
	if err != nil {
		return errors.Wrapf(err, "save mesh %s", path)
	}
	return nil
}

// RecognizedFormat reports whether the file extension of path maps to a
// format that LoadMesh can read.
func RecognizedFormat(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl", ".obj", ".ply", ".off":
		return true
	}
	return false
}

// Load opens a file and decodes its contents with f.
func Load[T any](path string, f func(r io.Reader) (T, error)) (T, error) {
	file, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer file.Close()
	return f(file)
}

// Save creates a file and encodes value into it with f.
func Save[T any](path string, value T, f func(w io.Writer, value T) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f(file, value); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
