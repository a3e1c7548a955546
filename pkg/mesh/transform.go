package mesh

import (
	"errors"

	"github.com/Faultbox/meshxform/pkg/affine"
)

// ErrSingularTransform is returned when normals cannot be transformed
// because the linear part of the matrix is not invertible.
var ErrSingularTransform = errors.New("transform has a singular linear part; normals are undefined")

// Apply transforms the mesh in place. Vertices go through the full
// homogeneous matrix; normals go through the inverse-transpose of its
// linear block and are re-normalized. Order and count never change.
func Apply(m *Mesh, mat affine.Matrix) error {
	var nm affine.NormalMatrix
	if len(m.Normals) > 0 {
		var ok bool
		if nm, ok = mat.NormalMatrix(); !ok {
			return ErrSingularTransform
		}
	}

	for i, v := range m.Vertices {
		m.Vertices[i] = mat.TransformPoint(v)
	}
	for i, n := range m.Normals {
		m.Normals[i] = nm.Transform(n)
	}
	return nil
}
