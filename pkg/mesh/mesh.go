// Package mesh applies homogeneous transforms to mesh geometry.
//
// A Mesh is only the geometric view of a file: positions and normals in
// their original order. Faces, indices, materials and everything else stay
// with the codec that decoded the file.
package mesh

import (
	"math"

	"github.com/Faultbox/meshxform/pkg/affine"
)

// Mesh holds the editable geometry of a decoded mesh file.
type Mesh struct {
	Vertices []affine.Vec3 // Vertex positions
	Normals  []affine.Vec3 // Unit normals (per vertex, or the file's normal pool); may be empty
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh returns zero vectors.
func Bounds(m *Mesh) (lo, hi affine.Vec3) {
	if len(m.Vertices) == 0 {
		return affine.Vec3{}, affine.Vec3{}
	}
	lo = affine.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = affine.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return lo, hi
}
