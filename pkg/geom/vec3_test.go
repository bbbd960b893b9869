package geom

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -1, Z: 2}

	if got := a.Add(b); got != (Vec3{X: 5, Y: 1, Z: 5}) {
		t.Errorf("Add = %v, want {5 1 5}", got)
	}
	if got := a.Sub(b); got != (Vec3{X: -3, Y: 3, Z: 1}) {
		t.Errorf("Sub = %v, want {-3 3 1}", got)
	}
	if got := a.Dot(b); got != 4-2+6 {
		t.Errorf("Dot = %v, want %v", got, 4-2+6)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Normalize produced non-unit length %v", n.Length())
	}
}

func TestVec3ClampNonNegative(t *testing.T) {
	v := Vec3{X: -1, Y: 0.5, Z: math.NaN()}
	c := v.ClampNonNegative()
	if c.X != 0 {
		t.Errorf("negative X not clamped: %v", c.X)
	}
	if c.Y != 0.5 {
		t.Errorf("positive Y altered: %v", c.Y)
	}
	if c.Z != 0 {
		t.Errorf("NaN not clamped to zero: %v", c.Z)
	}
}

func TestVec3IsFinite(t *testing.T) {
	cases := []struct {
		v    Vec3
		want bool
	}{
		{Vec3{X: 1, Y: 2, Z: 3}, true},
		{Vec3{X: math.Inf(1), Y: 0, Z: 0}, false},
		{Vec3{X: math.NaN(), Y: 0, Z: 0}, false},
	}
	for _, c := range cases {
		if got := c.v.IsFinite(); got != c.want {
			t.Errorf("IsFinite(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestFaceforward(t *testing.T) {
	n := Vec3{X: 0, Y: 0, Z: 1}
	ref := Vec3{X: 0, Y: 0, Z: -1}
	got := Faceforward(n, ref)
	if got.Dot(ref) < 0 {
		t.Errorf("Faceforward(%v, %v) = %v, still opposes ref", n, ref, got)
	}
}

func TestCoordinateSystem(t *testing.T) {
	b0 := Vec3{X: 0, Y: 0, Z: 1}.Normalize()
	b1, b2 := CoordinateSystem(b0)

	if math.Abs(b0.Dot(b1)) > 1e-9 || math.Abs(b0.Dot(b2)) > 1e-9 || math.Abs(b1.Dot(b2)) > 1e-9 {
		t.Errorf("CoordinateSystem basis not orthogonal: b0=%v b1=%v b2=%v", b0, b1, b2)
	}
	if math.Abs(b1.Length()-1) > 1e-9 || math.Abs(b2.Length()-1) > 1e-9 {
		t.Errorf("CoordinateSystem basis not unit length: b1=%v b2=%v", b1, b2)
	}
}

func TestVec3Luminance(t *testing.T) {
	white := Vec3{X: 1, Y: 1, Z: 1}
	if lum := white.Luminance(); lum <= 0 || lum > 1.01 {
		t.Errorf("Luminance(white) = %v, want in (0, 1]", lum)
	}
}
