package affine

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is an immutable 4x4 homogeneous transform.
// Storage is column-major (OpenGL compatible); use At or Rows for row/column access.
type Matrix struct {
	m mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{mgl64.Ident4()}
}

// NewMatrix creates a matrix from row-major values.
func NewMatrix(rows [4][4]float64) Matrix {
	var m mgl64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[col*4+row] = rows[row][col]
		}
	}
	return Matrix{m}
}

// At returns the element at row, col.
func (m Matrix) At(row, col int) float64 {
	return m.m.At(row, col)
}

// Rows returns the matrix in row-major order.
func (m Matrix) Rows() [4][4]float64 {
	var rows [4][4]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			rows[row][col] = m.m.At(row, col)
		}
	}
	return rows
}

// Mul returns m * other. Applied to a point, other acts first.
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{m.m.Mul4(other.m)}
}

// TransformPoint transforms a point (w=1), dividing by the resulting w
// when the matrix is projective.
func (m Matrix) TransformPoint(p Vec3) Vec3 {
	v := m.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	w := v[3]
	if w != 0 && w != 1 {
		return Vec3{v[0] / w, v[1] / w, v[2] / w}
	}
	return Vec3{v[0], v[1], v[2]}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Matrix) TransformDirection(d Vec3) Vec3 {
	return fromVec(m.m.Mat3().Mul3x1(d.vec()))
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3 block.
// ok is false when that block is singular.
func (m Matrix) NormalMatrix() (n NormalMatrix, ok bool) {
	linear := m.m.Mat3()
	if linear.Det() == 0 {
		return NormalMatrix{}, false
	}
	return NormalMatrix{linear.Inv().Transpose()}, true
}

// ApproxEqual reports whether all elements differ by at most eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	return m.m.ApproxEqualThreshold(other.m, eps)
}

// String renders the matrix row by row.
func (m Matrix) String() string {
	var b strings.Builder
	b.WriteString("[")
	for row := 0; row < 4; row++ {
		if row > 0 {
			b.WriteString("\n ")
		}
		r := m.m.Row(row)
		fmt.Fprintf(&b, "[% .8f % .8f % .8f % .8f]", r[0], r[1], r[2], r[3])
	}
	b.WriteString("]")
	return b.String()
}

// NormalMatrix transforms surface normals.
type NormalMatrix struct {
	m mgl64.Mat3
}

// Transform maps a normal and re-normalizes it. Zero normals stay zero.
func (n NormalMatrix) Transform(normal Vec3) Vec3 {
	return fromVec(n.m.Mul3x1(normal.vec())).Normalize()
}
