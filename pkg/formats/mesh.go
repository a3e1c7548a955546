package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshxform/pkg/mesh"
)

// ErrUnknownFormat is returned for file extensions no codec handles.
var ErrUnknownFormat = errors.New("unknown mesh format")

// Document is a decoded mesh file. Edits made through Mesh are written
// back by Save; everything else in the file is kept as read.
type Document interface {
	Mesh() *mesh.Mesh
	Save(path string) error
}

// Codec loads one mesh file format.
type Codec interface {
	Name() string
	Extensions() []string
	Load(path string) (Document, error)
}

var codecs = []Codec{stlCodec{}, objCodec{}, offCodec{}}

// Codecs returns the registered codecs.
func Codecs() []Codec {
	return append([]Codec(nil), codecs...)
}

// ForPath returns the codec for the file extension of path (case-insensitive).
func ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range codecs {
		for _, e := range c.Extensions() {
			if e == ext {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Base(path))
}

// Load decodes the mesh file at path.
func Load(path string) (Document, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	return c.Load(path)
}

type stlCodec struct{}

func (stlCodec) Name() string         { return "STL" }
func (stlCodec) Extensions() []string { return []string{".stl"} }
func (stlCodec) Load(path string) (Document, error) {
	d, err := ParseSTLFile(path)
	if err != nil {
		return nil, err
	}
	return d, nil
}

type objCodec struct{}

func (objCodec) Name() string         { return "OBJ" }
func (objCodec) Extensions() []string { return []string{".obj"} }
func (objCodec) Load(path string) (Document, error) {
	d, err := ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	return d, nil
}

type offCodec struct{}

func (offCodec) Name() string         { return "OFF" }
func (offCodec) Extensions() []string { return []string{".off"} }
func (offCodec) Load(path string) (Document, error) {
	d, err := ParseOFFFile(path)
	if err != nil {
		return nil, err
	}
	return d, nil
}
