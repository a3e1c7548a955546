package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/meshxform/pkg/affine"
)

func near(a, b affine.Vec3) bool {
	return a.ApproxEqual(b, 1e-9)
}

func mustParams(t *testing.T, in affine.Inputs) affine.Matrix {
	t.Helper()
	p, err := affine.ParseParams(in)
	if err != nil {
		t.Fatalf("ParseParams(%+v): %v", in, err)
	}
	m, err := p.Matrix()
	if err != nil {
		t.Fatalf("Matrix(): %v", err)
	}
	return m
}

func TestApplyHalfTurnY(t *testing.T) {
	m := &Mesh{Vertices: []affine.Vec3{{X: 1, Y: 0, Z: 0}}}
	mat := mustParams(t, affine.Inputs{Rotation: "3.141592653589793,0,1,0"})

	if err := Apply(m, mat); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := (affine.Vec3{X: -1}); !near(m.Vertices[0], want) {
		t.Errorf("vertex = %v, want %v", m.Vertices[0], want)
	}
}

func TestApplyScaleAboutPivot(t *testing.T) {
	m := &Mesh{Vertices: []affine.Vec3{{X: 2, Y: 1, Z: 1}}}
	mat := mustParams(t, affine.Inputs{Scale: "2", Pivot: "1,1,1"})

	if err := Apply(m, mat); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := (affine.Vec3{X: 3, Y: 1, Z: 1}); !near(m.Vertices[0], want) {
		t.Errorf("vertex = %v, want %v", m.Vertices[0], want)
	}
}

func TestApplyKeepsOrderAndCount(t *testing.T) {
	m := &Mesh{Vertices: []affine.Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 3}}}
	mat := mustParams(t, affine.Inputs{Translation: "10,0,0"})

	if err := Apply(m, mat); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(m.Vertices) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if v.X != float64(10+i) {
			t.Errorf("vertex %d = %v, want x=%d", i, v, 10+i)
		}
	}
}

func TestApplyNormalsUniform(t *testing.T) {
	m := &Mesh{
		Vertices: []affine.Vec3{{X: 1}},
		Normals:  []affine.Vec3{{X: 1}, {Y: 1}},
	}
	// Quarter turn about Z, scale 3, translated: normals only rotate.
	mat := mustParams(t, affine.Inputs{
		Scale:       "3",
		Rotation:    "1.5707963267948966,0,0,1",
		Translation: "5,5,5",
	})

	if err := Apply(m, mat); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []affine.Vec3{{Y: 1}, {X: -1}}
	for i := range want {
		if !near(m.Normals[i], want[i]) {
			t.Errorf("normal %d = %v, want %v", i, m.Normals[i], want[i])
		}
	}
}

func TestApplyNormalsNonUniform(t *testing.T) {
	m := &Mesh{
		Vertices: []affine.Vec3{{X: 1, Y: -1}},
		Normals:  []affine.Vec3{affine.Vec3{X: 1, Y: 1}.Normalize()},
	}
	mat := affine.NewMatrix([4][4]float64{
		{2, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})

	if err := Apply(m, mat); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := affine.Vec3{X: 1, Y: 2}.Normalize()
	if !near(m.Normals[0], want) {
		t.Errorf("normal = %v, want %v", m.Normals[0], want)
	}
	if d := m.Normals[0].Dot(m.Vertices[0]); math.Abs(d) > 1e-12 {
		t.Errorf("normal not perpendicular to transformed edge: dot = %g", d)
	}
}

func TestApplyNormalsMirror(t *testing.T) {
	m := &Mesh{
		Vertices: []affine.Vec3{{Z: 1}},
		Normals:  []affine.Vec3{{Z: 1}},
	}
	mat := mustParams(t, affine.Inputs{Scale: "-2"})

	if err := Apply(m, mat); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := (affine.Vec3{Z: -1}); !near(m.Normals[0], want) {
		t.Errorf("normal = %v, want %v", m.Normals[0], want)
	}
}

func TestApplyZeroNormalStaysZero(t *testing.T) {
	m := &Mesh{
		Vertices: []affine.Vec3{{X: 1}},
		Normals:  []affine.Vec3{{}},
	}
	mat := mustParams(t, affine.Inputs{Rotation: "1,1,1,1"})

	if err := Apply(m, mat); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if m.Normals[0] != (affine.Vec3{}) {
		t.Errorf("zero normal became %v", m.Normals[0])
	}
}

func TestApplySingular(t *testing.T) {
	flatten := affine.NewMatrix([4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 1},
	})

	withNormals := &Mesh{
		Vertices: []affine.Vec3{{X: 1, Y: 2, Z: 3}},
		Normals:  []affine.Vec3{{Z: 1}},
	}
	if err := Apply(withNormals, flatten); !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("error = %v, want ErrSingularTransform", err)
	}
	if withNormals.Vertices[0] != (affine.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("vertices changed on failure: %v", withNormals.Vertices[0])
	}

	positionsOnly := &Mesh{Vertices: []affine.Vec3{{X: 1, Y: 2, Z: 3}}}
	if err := Apply(positionsOnly, flatten); err != nil {
		t.Fatalf("Apply without normals: %v", err)
	}
	if positionsOnly.Vertices[0] != (affine.Vec3{X: 1, Y: 2}) {
		t.Errorf("vertex = %v, want (1, 2, 0)", positionsOnly.Vertices[0])
	}
}

func TestBounds(t *testing.T) {
	m := &Mesh{Vertices: []affine.Vec3{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 5, Z: 0}}}
	lo, hi := Bounds(m)
	if lo != (affine.Vec3{X: -1, Y: -2, Z: 0}) || hi != (affine.Vec3{X: 1, Y: 5, Z: 3}) {
		t.Errorf("Bounds = %v, %v", lo, hi)
	}

	lo, hi = Bounds(&Mesh{})
	if lo != (affine.Vec3{}) || hi != (affine.Vec3{}) {
		t.Errorf("empty Bounds = %v, %v", lo, hi)
	}
}
