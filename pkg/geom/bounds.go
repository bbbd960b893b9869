package geom

import "math"

// Bounds3 is an axis-aligned bounding box.
type Bounds3 struct {
	Min, Max Vec3
}

// EmptyBounds returns a bounds whose Union with anything yields that thing.
func EmptyBounds() Bounds3 {
	return Bounds3{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

func BoundsFromPoints(pts ...Vec3) Bounds3 {
	b := EmptyBounds()
	for _, p := range pts {
		b = b.UnionPoint(p)
	}
	return b
}

func (b Bounds3) UnionPoint(p Vec3) Bounds3 {
	return Bounds3{
		Min: Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

func (b Bounds3) Union(o Bounds3) Bounds3 {
	return Bounds3{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Contains reports whether o lies entirely within b, allowing a small
// epsilon for floating point slack — used by BVH containment tests.
func (b Bounds3) Contains(o Bounds3, eps float64) bool {
	return o.Min.X >= b.Min.X-eps && o.Min.Y >= b.Min.Y-eps && o.Min.Z >= b.Min.Z-eps &&
		o.Max.X <= b.Max.X+eps && o.Max.Y <= b.Max.Y+eps && o.Max.Z <= b.Max.Z+eps
}

func (b Bounds3) Center() Vec3 { return b.Min.Add(b.Max).Mul(0.5) }
func (b Bounds3) Size() Vec3   { return b.Max.Sub(b.Min) }

func (b Bounds3) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

// Hit implements the slab method using a precomputed RayAccel, returning
// whether the ray interval [tMin, tMax] overlaps the box.
func (b Bounds3) Hit(r Ray, tMin, tMax float64, accel RayAccel) bool {
	bounds := [2]Vec3{b.Min, b.Max}
	for axis := 0; axis < 3; axis++ {
		var origin, invDir float64
		var negIdx int
		switch axis {
		case 0:
			origin, invDir = r.Origin.X, accel.InvDir.X
		case 1:
			origin, invDir = r.Origin.Y, accel.InvDir.Y
		default:
			origin, invDir = r.Origin.Z, accel.InvDir.Z
		}
		if accel.DirIsNeg[axis] {
			negIdx = 1
		}
		var lo, hi float64
		switch axis {
		case 0:
			lo, hi = bounds[negIdx].X, bounds[1-negIdx].X
		case 1:
			lo, hi = bounds[negIdx].Y, bounds[1-negIdx].Y
		default:
			lo, hi = bounds[negIdx].Z, bounds[1-negIdx].Z
		}
		t0 := (lo - origin) * invDir
		t1 := (hi - origin) * invDir
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return false
		}
	}
	return true
}
