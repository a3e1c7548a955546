package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/meshxform/pkg/mesh"
)

// ErrMalformedOBJ is returned for OBJ geometry statements that cannot be parsed.
var ErrMalformedOBJ = errors.New("malformed OBJ data")

type objLineKind uint8

const (
	objVerbatim objLineKind = iota
	objVertex
	objNormal
)

type objLine struct {
	kind  objLineKind
	text  string // original line for verbatim lines
	eol   string
	index int    // position in Vertices or Normals
	rest  string // tokens after x y z (w, vertex colors)
}

// OBJ is a parsed Wavefront OBJ file. Only "v" and "vn" statements are
// geometry; every other line (faces, groups, materials, comments) is
// written back as read. Extra tokens after x y z are kept.
type OBJ struct {
	lines []objLine
	geom  mesh.Mesh
}

// ParseOBJ parses OBJ data.
func ParseOBJ(data []byte) (*OBJ, error) {
	raw, err := splitLines(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
	}

	obj := &OBJ{lines: make([]objLine, 0, len(raw))}
	for n, tl := range raw {
		fields := strings.Fields(tl.body)
		if len(fields) == 0 || (fields[0] != "v" && fields[0] != "vn") {
			obj.lines = append(obj.lines, objLine{kind: objVerbatim, text: tl.body, eol: tl.eol})
			continue
		}

		v, err := parseCoords(fields[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, n+1, err)
		}
		line := objLine{rest: strings.Join(fields[4:], " "), eol: tl.eol}
		if fields[0] == "v" {
			line.kind = objVertex
			line.index = len(obj.geom.Vertices)
			obj.geom.Vertices = append(obj.geom.Vertices, v)
		} else {
			line.kind = objNormal
			line.index = len(obj.geom.Normals)
			obj.geom.Normals = append(obj.geom.Normals, v)
		}
		obj.lines = append(obj.lines, line)
	}
	return obj, nil
}

// ParseOBJFile loads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// Mesh returns the editable geometry.
func (o *OBJ) Mesh() *mesh.Mesh {
	return &o.geom
}

// Bytes renders the file with the current geometry.
func (o *OBJ) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range o.lines {
		switch line.kind {
		case objVertex:
			buf.WriteString("v ")
			buf.WriteString(formatCoords(o.geom.Vertices[line.index]))
		case objNormal:
			buf.WriteString("vn ")
			buf.WriteString(formatCoords(o.geom.Normals[line.index]))
		default:
			buf.WriteString(line.text)
		}
		if line.kind != objVerbatim && line.rest != "" {
			buf.WriteByte(' ')
			buf.WriteString(line.rest)
		}
		buf.WriteString(line.eol)
	}
	return buf.Bytes()
}

// Save writes the file to path.
func (o *OBJ) Save(path string) error {
	return writeFile(path, o.Bytes())
}
