package formats

import (
	"fmt"

	"github.com/hschendel/stl"

	"github.com/Faultbox/meshxform/pkg/affine"
	"github.com/Faultbox/meshxform/pkg/mesh"
)

// STL is a parsed STL solid (ASCII or binary). Each triangle contributes
// three vertices and, for each of them, a copy of its facet normal.
// The solid name, binary header and attribute bytes are kept.
type STL struct {
	Solid *stl.Solid

	geom mesh.Mesh
}

// NewSTL wraps a decoded solid.
func NewSTL(solid *stl.Solid) *STL {
	s := &STL{Solid: solid}
	n := len(solid.Triangles)
	s.geom.Vertices = make([]affine.Vec3, 0, 3*n)
	s.geom.Normals = make([]affine.Vec3, 0, 3*n)
	for _, tri := range solid.Triangles {
		normal := fromSTL(tri.Normal)
		for _, v := range tri.Vertices {
			s.geom.Vertices = append(s.geom.Vertices, fromSTL(v))
			s.geom.Normals = append(s.geom.Normals, normal)
		}
	}
	return s
}

// ParseSTLFile loads an STL file from disk.
func ParseSTLFile(path string) (*STL, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file %s: %w", path, err)
	}
	return NewSTL(solid), nil
}

// Mesh returns the editable geometry.
func (s *STL) Mesh() *mesh.Mesh {
	return &s.geom
}

// Sync copies the geometry back into the solid. Facet normals are taken
// from the first vertex of each triangle.
func (s *STL) Sync() {
	for i := range s.Solid.Triangles {
		tri := &s.Solid.Triangles[i]
		for j := range tri.Vertices {
			tri.Vertices[j] = toSTL(s.geom.Vertices[3*i+j])
		}
		tri.Normal = toSTL(s.geom.Normals[3*i])
	}
}

// Save writes the solid to path in the format it was read in.
func (s *STL) Save(path string) error {
	s.Sync()
	if err := s.Solid.WriteFile(path); err != nil {
		return fmt.Errorf("writing STL file %s: %w", path, err)
	}
	return nil
}

func fromSTL(v stl.Vec3) affine.Vec3 {
	return affine.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func toSTL(v affine.Vec3) stl.Vec3 {
	return stl.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
