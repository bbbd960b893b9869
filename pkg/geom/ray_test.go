package geom

import "testing"

func TestRayAt(t *testing.T) {
	r := NewRay(Vec3{X: 1, Y: 2, Z: 3}, Vec3{X: 0, Y: 0, Z: 1})
	p := r.At(5)
	if p != (Vec3{X: 1, Y: 2, Z: 8}) {
		t.Errorf("At(5) = %v, want {1 2 8}", p)
	}
}

func TestNewRayDefaultTMax(t *testing.T) {
	r := NewRay(Vec3{}, Vec3{X: 1, Y: 0, Z: 0})
	if r.TMax <= 0 || r.TMax < 1e300 {
		t.Errorf("NewRay TMax = %v, want +Inf-like unbounded default", r.TMax)
	}
}

func TestPrecomputeRayAccel(t *testing.T) {
	r := NewRay(Vec3{}, Vec3{X: -1, Y: 2, Z: 0})
	a := PrecomputeRayAccel(r)
	if !a.DirIsNeg[0] {
		t.Errorf("DirIsNeg[0] = false, want true for negative X direction")
	}
	if a.DirIsNeg[1] {
		t.Errorf("DirIsNeg[1] = true, want false for positive Y direction")
	}
	if a.InvDir.X != -1 {
		t.Errorf("InvDir.X = %v, want -1", a.InvDir.X)
	}
	if a.InvDir.Y != 0.5 {
		t.Errorf("InvDir.Y = %v, want 0.5", a.InvDir.Y)
	}
}
