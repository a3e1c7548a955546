package affine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Inputs holds raw comma-separated parameter strings. An empty field means
// the parameter group was not given.
type Inputs struct {
	Pivot       string
	Scale       string
	Translation string
	Rotation    string
}

// Params is the validated transform configuration of one invocation.
type Params struct {
	Pivot       Vec3
	Scale       ScaleSpec
	Rotation    RotationSpec
	Translation TranslationSpec
}

// DefaultParams returns the no-op transform: unit scale, zero angle about
// the X axis, no translation, pivot at the origin.
func DefaultParams() Params {
	return Params{
		Scale:    UniformScale(1),
		Rotation: RotationSpec{Axis: Vec3{1, 0, 0}},
	}
}

// Matrix builds the composed transform.
func (p Params) Matrix() (Matrix, error) {
	s, err := ScaleMatrix(p.Scale, p.Pivot)
	if err != nil {
		return Matrix{}, err
	}
	r, err := RotationMatrix(p.Rotation)
	if err != nil {
		return Matrix{}, err
	}
	return Compose(TranslationMatrix(p.Translation), r, s), nil
}

// ParseParams validates every given parameter and fills the rest with defaults.
// Nothing is built from a rejected value.
func ParseParams(in Inputs) (Params, error) {
	p := DefaultParams()

	if in.Pivot != "" {
		pivot, err := ParsePivot(in.Pivot)
		if err != nil {
			return Params{}, err
		}
		p.Pivot = pivot
	}

	if in.Scale != "" {
		scale, err := ParseScale(in.Scale)
		if err != nil {
			return Params{}, err
		}
		p.Scale = scale
	}

	if in.Translation != "" {
		t, err := ParseTranslation(in.Translation)
		if err != nil {
			return Params{}, err
		}
		p.Translation = t
	}

	if in.Rotation != "" {
		rot, err := ParseRotation(in.Rotation)
		if err != nil {
			return Params{}, err
		}
		p.Rotation = rot
	}
	p.Rotation.Pivot = p.Pivot

	return p, nil
}

// ParsePivot parses "x,y,z".
func ParsePivot(s string) (Vec3, error) {
	return parseVec3("pivot", s)
}

// ParseTranslation parses "x,y,z".
func ParseTranslation(s string) (TranslationSpec, error) {
	v, err := parseVec3("translation", s)
	if err != nil {
		return TranslationSpec{}, err
	}
	return TranslationSpec{Offset: v}, nil
}

// ParseScale parses a single uniform factor. Three factors are recognised
// but rejected with ErrUnsupportedScale.
func ParseScale(s string) (ScaleSpec, error) {
	values, err := ParseList(s)
	if err != nil {
		return ScaleSpec{}, &ParamError{Param: "scale", Value: s, Err: err}
	}
	switch len(values) {
	case 1:
		return UniformScale(values[0]), nil
	case 3:
		return ScaleSpec{}, &ParamError{Param: "scale", Value: s, Err: ErrUnsupportedScale}
	default:
		return ScaleSpec{}, &ParamError{Param: "scale", Value: s,
			Err: fmt.Errorf("%w: scale needs 1 value or 3 comma-separated values (x,y,z), got %d",
				ErrInvalidParameter, len(values))}
	}
}

// ParseRotation parses "angle,x,y,z" with the angle in radians. The pivot
// is filled in by ParseParams.
func ParseRotation(s string) (RotationSpec, error) {
	values, err := ParseList(s)
	if err != nil {
		return RotationSpec{}, &ParamError{Param: "rotation", Value: s, Err: err}
	}
	if len(values) != 4 {
		return RotationSpec{}, &ParamError{Param: "rotation", Value: s,
			Err: fmt.Errorf("%w: rotation needs 4 comma-separated values (angle,xaxis,yaxis,zaxis), got %d",
				ErrInvalidParameter, len(values))}
	}
	rot := RotationSpec{
		Angle: values[0],
		Axis:  Vec3{values[1], values[2], values[3]},
	}
	if rot.Axis.Length() < axisEpsilon {
		return RotationSpec{}, &ParamError{Param: "rotation", Value: s, Err: ErrDegenerateAxis}
	}
	return rot, nil
}

// ParseList parses comma-separated finite numbers.
func ParseList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidParameter)
	}
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		f, err := strconv.ParseFloat(item, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidParameter, item)
		}
		values = append(values, f)
	}
	return values, nil
}

func parseVec3(param, s string) (Vec3, error) {
	values, err := ParseList(s)
	if err != nil {
		return Vec3{}, &ParamError{Param: param, Value: s, Err: err}
	}
	if len(values) != 3 {
		return Vec3{}, &ParamError{Param: param, Value: s,
			Err: fmt.Errorf("%w: %s needs 3 comma-separated values (x,y,z), got %d",
				ErrInvalidParameter, param, len(values))}
	}
	return Vec3{values[0], values[1], values[2]}, nil
}
