package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshxform/pkg/affine"
	"github.com/Faultbox/meshxform/pkg/mesh"
)

// OFF format errors.
var (
	ErrMalformedOFF   = errors.New("malformed OFF data")
	ErrUnsupportedOFF = errors.New("unsupported OFF variant")
)

type offLine struct {
	vertex bool
	text   string // original line for non-vertex lines
	eol    string
	index  int
	rest   string // tokens after the coordinates (and normal)
}

// OFF is a parsed Object File Format mesh. The [ST][C][N]OFF variants are
// read; with N, each vertex line carries its normal after the position.
type OFF struct {
	Keyword    string // OFF, NOFF, COFF, ...
	HasNormals bool

	lines []offLine
	geom  mesh.Mesh
}

// ParseOFF parses OFF data.
func ParseOFF(data []byte) (*OFF, error) {
	raw, err := splitLines(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOFF, err)
	}

	off := &OFF{lines: make([]offLine, 0, len(raw))}
	pos := 0

	// nextContent copies comments and blank lines through and returns the
	// fields of the next content line.
	nextContent := func() ([]string, int, bool) {
		for pos < len(raw) {
			tl := raw[pos]
			pos++
			fields := strings.Fields(tl.body)
			if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
				off.lines = append(off.lines, verbatimOFF(tl))
				continue
			}
			return fields, pos, true
		}
		return nil, pos, false
	}

	header, lineNo, ok := nextContent()
	if !ok {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedOFF)
	}
	keyword := header[0]
	if !strings.HasSuffix(keyword, "OFF") {
		return nil, fmt.Errorf("%w: line %d: expected OFF header, got %q", ErrMalformedOFF, lineNo, keyword)
	}
	prefix := strings.TrimSuffix(keyword, "OFF")
	if strings.Trim(prefix, "STCN") != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOFF, keyword)
	}
	off.Keyword = keyword
	off.HasNormals = strings.Contains(prefix, "N")

	off.lines = append(off.lines, verbatimOFF(raw[lineNo-1]))

	// Counts may share the header line.
	counts := header[1:]
	if len(counts) == 0 {
		if counts, lineNo, ok = nextContent(); !ok {
			return nil, fmt.Errorf("%w: missing element counts", ErrMalformedOFF)
		}
		off.lines = append(off.lines, verbatimOFF(raw[lineNo-1]))
	}
	if len(counts) < 2 {
		return nil, fmt.Errorf("%w: line %d: expected vertex and face counts", ErrMalformedOFF, lineNo)
	}
	nv, err := strconv.Atoi(counts[0])
	if err != nil || nv < 0 {
		return nil, fmt.Errorf("%w: line %d: bad vertex count %q", ErrMalformedOFF, lineNo, counts[0])
	}

	want := 3
	if off.HasNormals {
		want = 6
	}
	off.geom.Vertices = make([]affine.Vec3, 0, nv)
	for i := 0; i < nv; i++ {
		fields, lineNo, ok := nextContent()
		if !ok {
			return nil, fmt.Errorf("%w: expected %d vertices, got %d", ErrMalformedOFF, nv, i)
		}
		if len(fields) < want {
			return nil, fmt.Errorf("%w: line %d: expected %d values, got %d", ErrMalformedOFF, lineNo, want, len(fields))
		}
		v, err := parseCoords(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOFF, lineNo, err)
		}
		off.geom.Vertices = append(off.geom.Vertices, v)
		if off.HasNormals {
			n, err := parseCoords(fields[3:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOFF, lineNo, err)
			}
			off.geom.Normals = append(off.geom.Normals, n)
		}
		off.lines = append(off.lines, offLine{vertex: true, index: i, rest: strings.Join(fields[want:], " "), eol: raw[lineNo-1].eol})
	}

	for ; pos < len(raw); pos++ {
		off.lines = append(off.lines, verbatimOFF(raw[pos]))
	}
	return off, nil
}

func verbatimOFF(tl textLine) offLine {
	return offLine{text: tl.body, eol: tl.eol}
}

// ParseOFFFile loads and parses an OFF file from disk.
func ParseOFFFile(path string) (*OFF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OFF file: %w", err)
	}
	off, err := ParseOFF(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return off, nil
}

// Mesh returns the editable geometry.
func (o *OFF) Mesh() *mesh.Mesh {
	return &o.geom
}

// Bytes renders the file with the current geometry.
func (o *OFF) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range o.lines {
		if !line.vertex {
			buf.WriteString(line.text)
			buf.WriteString(line.eol)
			continue
		}
		buf.WriteString(formatCoords(o.geom.Vertices[line.index]))
		if o.HasNormals {
			buf.WriteByte(' ')
			buf.WriteString(formatCoords(o.geom.Normals[line.index]))
		}
		if line.rest != "" {
			buf.WriteByte(' ')
			buf.WriteString(line.rest)
		}
		buf.WriteString(line.eol)
	}
	return buf.Bytes()
}

// Save writes the file to path.
func (o *OFF) Save(path string) error {
	return writeFile(path, o.Bytes())
}
