package affine

// ScaleSpec is either a uniform factor or, reserved for later, three per-axis factors.
type ScaleSpec struct {
	factors Vec3
	perAxis bool
}

// UniformScale returns a scale applying f on every axis.
func UniformScale(f float64) ScaleSpec {
	return ScaleSpec{factors: Vec3{f, f, f}}
}

// PerAxisScale returns a per-axis scale. ScaleMatrix rejects it.
func PerAxisScale(x, y, z float64) ScaleSpec {
	return ScaleSpec{factors: Vec3{x, y, z}, perAxis: true}
}

// PerAxis reports whether the spec carries three independent factors.
func (s ScaleSpec) PerAxis() bool {
	return s.perAxis
}

// Factor returns the uniform factor (the X factor for a per-axis spec).
func (s ScaleSpec) Factor() float64 {
	return s.factors.X
}

// Factors returns the factor of each axis.
func (s ScaleSpec) Factors() Vec3 {
	return s.factors
}

func (s ScaleSpec) String() string {
	if s.perAxis {
		return s.factors.String()
	}
	return formatFloat(s.factors.X)
}

// RotationSpec rotates by Angle radians about the line through Pivot along Axis.
// Axis need not be unit length.
type RotationSpec struct {
	Angle float64
	Axis  Vec3
	Pivot Vec3
}

// TranslationSpec moves every point by Offset.
type TranslationSpec struct {
	Offset Vec3
}
