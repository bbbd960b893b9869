package accel

import "github.com/wavepath/tracer/pkg/geom"

// maxStackDepth bounds the iterative traversal stack used by ClosestHit
// and AnyHit, sized well past any realistic LBVH depth.
const maxStackDepth = 64

// Interaction describes the nearest triangle hit found by ClosestHit.
type Interaction struct {
	T             float64
	Point         geom.Vec3
	GeomNormal    geom.Vec3
	ShadingNormal geom.Vec3
	UV            geom.Vec2
	PrimitiveID   int32
}

// AnyHit reports whether ray intersects any triangle within [epsilon,
// ray.TMax], short-circuiting on the first hit.
func (b *LBVH) AnyHit(ray geom.Ray) bool {
	if b.Root < 0 {
		return false
	}
	accel := geom.PrecomputeRayAccel(ray)

	var stack [maxStackDepth]int32
	sp := 0
	stack[sp] = b.Root
	sp++

	for sp > 0 {
		sp--
		idx := stack[sp]
		node := b.Nodes[idx]
		if !node.Bounds.Hit(ray, geom.Epsilon, ray.TMax, accel) {
			continue
		}
		if node.IsLeaf() {
			if _, hit := b.Tris[node.TriIndex].Hit(ray); hit {
				return true
			}
			continue
		}
		if sp+2 > maxStackDepth {
			// Stack exhausted: degrade to skipping the remainder of this
			// branch rather than overflow. Balanced LBVH trees built over
			// realistic scenes stay well under this bound.
			continue
		}
		stack[sp] = node.Left
		sp++
		stack[sp] = node.Right
		sp++
	}
	return false
}

// ClosestHit finds the nearest triangle intersection, narrowing ray.TMax
// as hits are accepted so later subtree tests can reject early.
func (b *LBVH) ClosestHit(ray geom.Ray) (Interaction, bool) {
	if b.Root < 0 {
		return Interaction{}, false
	}
	rayAccel := geom.PrecomputeRayAccel(ray)

	var stack [maxStackDepth]int32
	sp := 0
	stack[sp] = b.Root
	sp++

	found := false
	var best Interaction

	for sp > 0 {
		sp--
		idx := stack[sp]
		node := b.Nodes[idx]
		if !node.Bounds.Hit(ray, geom.Epsilon, ray.TMax, rayAccel) {
			continue
		}
		if node.IsLeaf() {
			if th, hit := b.Tris[node.TriIndex].Hit(ray); hit {
				ray.TMax = th.T
				found = true
				best = Interaction{
					T:             th.T,
					Point:         th.Point,
					GeomNormal:    th.GeomNormal,
					ShadingNormal: th.ShadingNormal,
					UV:            th.UV,
					PrimitiveID:   node.TriIndex,
				}
			}
			continue
		}
		if sp+2 > maxStackDepth {
			continue
		}
		stack[sp] = node.Left
		sp++
		stack[sp] = node.Right
		sp++
	}
	return best, found
}
