package affine

import "github.com/go-gl/mathgl/mgl64"

// axisEpsilon is the smallest axis length accepted for a rotation.
const axisEpsilon = 1e-12

// ScaleMatrix returns the matrix scaling space about pivot.
// Points at pivot map to themselves.
func ScaleMatrix(scale ScaleSpec, pivot Vec3) (Matrix, error) {
	if scale.PerAxis() {
		return Matrix{}, ErrUnsupportedScale
	}
	f := scale.Factor()
	return aboutPivot(mgl64.Scale3D(f, f, f), pivot), nil
}

// RotationMatrix returns the matrix rotating by rot.Angle radians about the
// line through rot.Pivot in direction rot.Axis (right-hand rule).
func RotationMatrix(rot RotationSpec) (Matrix, error) {
	l := rot.Axis.Length()
	if l < axisEpsilon {
		return Matrix{}, ErrDegenerateAxis
	}
	axis := rot.Axis.Scale(1 / l)
	return aboutPivot(mgl64.HomogRotate3D(rot.Angle, axis.vec()), rot.Pivot), nil
}

// TranslationMatrix returns the matrix adding t.Offset to every point.
func TranslationMatrix(t TranslationSpec) Matrix {
	return Matrix{mgl64.Translate3D(t.Offset.X, t.Offset.Y, t.Offset.Z)}
}

// Compose returns translation * rotation * scale: a point is scaled first,
// then rotated, then translated.
func Compose(translation, rotation, scale Matrix) Matrix {
	return translation.Mul(rotation).Mul(scale)
}

// aboutPivot conjugates linear by a move of the origin to pivot.
func aboutPivot(linear mgl64.Mat4, pivot Vec3) Matrix {
	to := mgl64.Translate3D(pivot.X, pivot.Y, pivot.Z)
	from := mgl64.Translate3D(-pivot.X, -pivot.Y, -pivot.Z)
	return Matrix{to.Mul4(linear).Mul4(from)}
}
