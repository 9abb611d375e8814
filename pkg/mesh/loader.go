package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Loader errors.
var (
	ErrOpenFailed         = errors.New("cannot open geometry file")
	ErrReadFailed         = errors.New("cannot read geometry file")
	ErrMalformedAttribute = errors.New("malformed attribute record")
	ErrMalformedFace      = errors.New("malformed face record")
	ErrBadIndexReference  = errors.New("face index out of range")
)

// MaxLineLength bounds a single line of a geometry file.
const MaxLineLength = 64 * 1024

// Field counts per record tag.
const (
	vertexFields = VertexStride
	uvFields     = 2
	normalFields = 3
	faceCorners  = 3
)

// corner is one face corner as 1-based indices into the raw tables.
type corner struct {
	vertex, uv, normal int
}

type face struct {
	line    int
	corners [faceCorners]corner
}

// rawTables holds records in file declaration order, before face expansion.
type rawTables struct {
	vertices [][VertexStride]float32
	uvs      []mgl32.Vec2
	normals  []mgl32.Vec3
	faces    []face
}

// Load reads and expands the geometry file at path.
// On any error the returned Data is nil.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse reads geometry records from r and expands faces into draw order.
//
// Recognized tags are v (position + color), vt, vn and f (v/vt/vn triples).
// Lines with any other tag are skipped.
func Parse(r io.Reader) (*Data, error) {
	var raw rawTables

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := raw.parseRecord(fields[0], fields[1:], lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: after line %d: %v", ErrReadFailed, lineNo, err)
	}

	return raw.expand()
}

func (t *rawTables) parseRecord(tag string, args []string, line int) error {
	switch tag {
	case "v":
		vals, err := parseFloats(args, vertexFields)
		if err != nil {
			return fmt.Errorf("%w: line %d: v: %v", ErrMalformedAttribute, line, err)
		}
		var v [VertexStride]float32
		copy(v[:], vals)
		t.vertices = append(t.vertices, v)

	case "vt":
		vals, err := parseFloats(args, uvFields)
		if err != nil {
			return fmt.Errorf("%w: line %d: vt: %v", ErrMalformedAttribute, line, err)
		}
		t.uvs = append(t.uvs, mgl32.Vec2{vals[0], vals[1]})

	case "vn":
		vals, err := parseFloats(args, normalFields)
		if err != nil {
			return fmt.Errorf("%w: line %d: vn: %v", ErrMalformedAttribute, line, err)
		}
		t.normals = append(t.normals, mgl32.Vec3{vals[0], vals[1], vals[2]})

	case "f":
		f, err := parseFace(args)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedFace, line, err)
		}
		f.line = line
		t.faces = append(t.faces, f)
	}
	return nil
}

// parseFloats parses exactly want finite float fields.
func parseFloats(args []string, want int) ([]float32, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d fields, got %d", want, len(args))
	}
	vals := make([]float32, want)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("field %d: %q is not a number", i+1, a)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("field %d: %q is not finite", i+1, a)
		}
		vals[i] = float32(v)
	}
	return vals, nil
}

// parseFace parses exactly three v/vt/vn corners, nine integers in total.
func parseFace(args []string) (face, error) {
	var f face
	if len(args) != faceCorners {
		return f, fmt.Errorf("expected %d integers, got %d corners", faceCorners*3, len(args))
	}
	for i, a := range args {
		parts := strings.Split(a, "/")
		if len(parts) != 3 {
			return f, fmt.Errorf("corner %d: %q is not v/vt/vn", i+1, a)
		}
		var idx [3]int
		for j, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return f, fmt.Errorf("corner %d: %q is not v/vt/vn", i+1, a)
			}
			idx[j] = n
		}
		f.corners[i] = corner{vertex: idx[0], uv: idx[1], normal: idx[2]}
	}
	return f, nil
}

// resolve maps a 1-based file index to a table position.
func resolve(index, length int) (int, bool) {
	pos := index - 1
	return pos, pos >= 0 && pos < length
}

// expand copies the referenced raw records for every face corner.
func (t *rawTables) expand() (*Data, error) {
	n := len(t.faces) * faceCorners
	data := &Data{
		Vertices: make([]float32, 0, n*VertexStride),
		UVs:      make([]mgl32.Vec2, 0, n),
		Normals:  make([]mgl32.Vec3, 0, n),
	}

	for _, f := range t.faces {
		for _, c := range f.corners {
			vi, ok := resolve(c.vertex, len(t.vertices))
			if !ok {
				return nil, fmt.Errorf("%w: line %d: vertex %d of %d",
					ErrBadIndexReference, f.line, c.vertex, len(t.vertices))
			}
			ti, ok := resolve(c.uv, len(t.uvs))
			if !ok {
				return nil, fmt.Errorf("%w: line %d: uv %d of %d",
					ErrBadIndexReference, f.line, c.uv, len(t.uvs))
			}
			ni, ok := resolve(c.normal, len(t.normals))
			if !ok {
				return nil, fmt.Errorf("%w: line %d: normal %d of %d",
					ErrBadIndexReference, f.line, c.normal, len(t.normals))
			}

			data.Vertices = append(data.Vertices, t.vertices[vi][:]...)
			data.UVs = append(data.UVs, t.uvs[ti])
			data.Normals = append(data.Normals, t.normals[ni])
		}
	}

	return data, nil
}
