package meshprep

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// ReadOBJ decodes triangles from a Wavefront OBJ file. Polygonal faces
// are fan-triangulated. Texture and normal indices are ignored, since
// only the geometry survives processing.
func ReadOBJ(r io.Reader) ([]*model3d.Triangle, error) {
	vs := make([]model3d.Coord3D, 1, 1024)
	var tris []*model3d.Triangle
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<20)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, errors.Errorf("read obj: line %d: malformed vertex", lineno)
			}
			x, err1 := strconv.ParseFloat(fields[1], 64)
			y, err2 := strconv.ParseFloat(fields[2], 64)
			z, err3 := strconv.ParseFloat(fields[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, errors.Errorf("read obj: line %d: malformed vertex", lineno)
			}
			vs = append(vs, model3d.XYZ(x, y, z))
		case "f":
			args := fields[1:]
			if len(args) < 3 {
				return nil, errors.Errorf("read obj: line %d: face with fewer than 3 vertices",
					lineno)
			}
			idxs := make([]int, len(args))
			for i, arg := range args {
				idx, err := strconv.Atoi(strings.SplitN(arg, "/", 2)[0])
				if err != nil {
					return nil, errors.Errorf("read obj: line %d: malformed face index", lineno)
				}
				if idx < 0 {
					// Negative indices count back from the most
					// recently declared vertex.
					idx += len(vs)
				}
				if idx <= 0 || idx >= len(vs) {
					return nil, errors.Errorf("read obj: line %d: face index out of range", lineno)
				}
				idxs[i] = idx
			}
			for i := 1; i < len(idxs)-1; i++ {
				tris = append(tris, &model3d.Triangle{vs[idxs[0]], vs[idxs[i]], vs[idxs[i+1]]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read obj")
	}
	return tris, nil
}

// ReadPLY decodes triangles from an ASCII PLY file. Only vertex
// positions and face index lists are used.
func ReadPLY(r io.Reader) ([]*model3d.Triangle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<20)

	readLine := func() (string, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" && !strings.HasPrefix(line, "comment") {
				return line, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}

	line, err := readLine()
	if err != nil || line != "ply" {
		return nil, errors.New("read ply: missing ply magic")
	}

	numVerts, numFaces := -1, -1
	curElement := ""
	vertexProps := 0
	for {
		line, err = readLine()
		if err != nil {
			return nil, errors.Wrap(err, "read ply: header")
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, errors.New("read ply: only ASCII PLY files are supported")
			}
		case "element":
			if len(fields) != 3 {
				return nil, errors.New("read ply: malformed element declaration")
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, errors.New("read ply: malformed element count")
			}
			curElement = fields[1]
			if curElement == "vertex" {
				numVerts = n
			} else if curElement == "face" {
				numFaces = n
			}
		case "property":
			if curElement == "vertex" && len(fields) == 3 && fields[1] != "list" {
				vertexProps++
			}
		case "end_header":
			goto body
		}
	}

body:
	if numVerts < 0 || numFaces < 0 {
		return nil, errors.New("read ply: missing vertex or face element")
	}
	if vertexProps < 3 {
		return nil, errors.New("read ply: vertex element has fewer than 3 properties")
	}

	vs := make([]model3d.Coord3D, numVerts)
	for i := range vs {
		line, err = readLine()
		if err != nil {
			return nil, errors.Wrap(err, "read ply: vertices")
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, errors.Errorf("read ply: vertex %d: too few values", i)
		}
		var coords [3]float64
		for j := 0; j < 3; j++ {
			coords[j], err = strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, errors.Errorf("read ply: vertex %d: malformed value", i)
			}
		}
		vs[i] = model3d.XYZ(coords[0], coords[1], coords[2])
	}

	var tris []*model3d.Triangle
	for i := 0; i < numFaces; i++ {
		line, err = readLine()
		if err != nil {
			return nil, errors.Wrap(err, "read ply: faces")
		}
		fields := strings.Fields(line)
		count, err := strconv.Atoi(fields[0])
		if err != nil || count < 3 || count >= len(fields) {
			return nil, errors.Errorf("read ply: face %d: malformed index list", i)
		}
		idxs := make([]int, count)
		for j := 0; j < count; j++ {
			idxs[j], err = strconv.Atoi(fields[j+1])
			if err != nil || idxs[j] < 0 || idxs[j] >= numVerts {
				return nil, errors.Errorf("read ply: face %d: index out of range", i)
			}
		}
		for j := 1; j < count-1; j++ {
			tris = append(tris, &model3d.Triangle{vs[idxs[0]], vs[idxs[j]], vs[idxs[j+1]]})
		}
	}
	return tris, nil
}

// WriteOBJ encodes a mesh as a Wavefront OBJ file with shared vertices.
func WriteOBJ(w io.Writer, m *model3d.Mesh) error {
	vertices, faces := indexVertices(m)
	buf := bufio.NewWriter(w)
	for _, v := range vertices {
		if _, err := fmt.Fprintf(buf, "v %g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return errors.Wrap(err, "write obj")
		}
	}
	for _, f := range faces {
		if _, err := fmt.Fprintf(buf, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return errors.Wrap(err, "write obj")
		}
	}
	return errors.Wrap(buf.Flush(), "write obj")
}

// WriteOFF encodes a mesh in the Object File Format.
func WriteOFF(w io.Writer, m *model3d.Mesh) error {
	vertices, faces := indexVertices(m)
	buf := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(buf, "OFF\n%d %d 0\n", len(vertices), len(faces)); err != nil {
		return errors.Wrap(err, "write off")
	}
	for _, v := range vertices {
		if _, err := fmt.Fprintf(buf, "%g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return errors.Wrap(err, "write off")
		}
	}
	for _, f := range faces {
		if _, err := fmt.Fprintf(buf, "3 %d %d %d\n", f[0], f[1], f[2]); err != nil {
			return errors.Wrap(err, "write off")
		}
	}
	return errors.Wrap(buf.Flush(), "write off")
}

// indexVertices flattens a mesh into a deduplicated vertex table and
// zero-based index triples referencing it.
func indexVertices(m *model3d.Mesh) ([]model3d.Coord3D, [][3]int) {
	indices := map[model3d.Coord3D]int{}
	var vertices []model3d.Coord3D
	var faces [][3]int
	for _, t := range m.TriangleSlice() {
		var face [3]int
		for i, c := range t {
			idx, ok := indices[c]
			if !ok {
				idx = len(vertices)
				indices[c] = idx
				vertices = append(vertices, c)
			}
			face[i] = idx
		}
		faces = append(faces, face)
	}
	return vertices, faces
}
