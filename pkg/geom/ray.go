package geom

import "math"

// Ray is a half-line o + t*d, 0 <= t <= TMax. Direction is expected to be
// unit length; TMax monotonically decreases across a closest-hit traversal
// of a single BVH.
type Ray struct {
	Origin, Direction Vec3
	TMax              float64
}

// NewRay builds a ray with an unbounded TMax.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: math.Inf(1)}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayAccel holds the inverse direction and sign bits used by the AABB
// slab test, precomputed once per ray before a BVH traversal.
type RayAccel struct {
	InvDir   Vec3
	DirIsNeg [3]bool
}

func PrecomputeRayAccel(r Ray) RayAccel {
	inv := Vec3{1.0 / r.Direction.X, 1.0 / r.Direction.Y, 1.0 / r.Direction.Z}
	return RayAccel{
		InvDir:   inv,
		DirIsNeg: [3]bool{inv.X < 0, inv.Y < 0, inv.Z < 0},
	}
}
