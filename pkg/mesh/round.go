package mesh

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Faultbox/meshxform/pkg/affine"
)

// exactLimit is 2^52: at or above it every float64 is already an integer.
const exactLimit = 1 << 52

// Rounding is an optional decimal-places count. The zero value disables rounding.
type Rounding struct {
	decimals int
	enabled  bool
}

// RoundTo returns a Rounding to the given number of decimals.
func RoundTo(decimals int) Rounding {
	return Rounding{decimals: decimals, enabled: true}
}

// ParseRounding parses a non-negative decimal count. An empty string
// disables rounding.
func ParseRounding(s string) (Rounding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rounding{}, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 {
		return Rounding{}, &affine.ParamError{Param: "round", Value: s,
			Err: fmt.Errorf("%w: round must be a non-negative integer", affine.ErrInvalidParameter)}
	}
	return RoundTo(d), nil
}

// Enabled reports whether rounding is requested.
func (r Rounding) Enabled() bool { return r.enabled }

// Decimals returns the decimal count.
func (r Rounding) Decimals() int { return r.decimals }

func (r Rounding) String() string {
	if !r.enabled {
		return "none"
	}
	return strconv.Itoa(r.decimals)
}

// Apply rounds the mesh vertices, or does nothing when disabled.
func (r Rounding) Apply(m *Mesh) {
	if r.enabled {
		RoundVertices(m, r.decimals)
	}
}

// RoundVertices rounds every vertex coordinate to decimals places, ties to even.
// Rounding an already rounded mesh leaves it unchanged.
func RoundVertices(m *Mesh, decimals int) {
	p := math.Pow10(decimals)
	for i, v := range m.Vertices {
		m.Vertices[i] = affine.Vec3{
			X: roundHalfEven(v.X, p),
			Y: roundHalfEven(v.Y, p),
			Z: roundHalfEven(v.Z, p),
		}
	}
}

func roundHalfEven(x, p float64) float64 {
	y := x * p
	if math.IsInf(y, 0) || math.Abs(y) >= exactLimit {
		return x
	}
	return math.RoundToEven(y) / p
}
