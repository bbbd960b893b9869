package scene

import "github.com/wavepath/tracer/pkg/geom"

// LightKind tags the finite set of supported lights; only the area variant
// is implemented by the core.
type LightKind uint8

const (
	LightArea LightKind = iota
)

// Light is an emitter bound to one or more triangles (a light can span a
// multi-triangle mesh, e.g. a two-triangle quad) with a constant emitted
// radiance L. IsDelta is always false for an area light; the field exists
// so NEE's weighting generalises cleanly if a point/delta light variant
// is added later.
type Light struct {
	Kind        LightKind
	TriangleIDs []int32   // indices into View.Triangles
	CDF         []float64 // cumulative area, for area-weighted triangle selection
	TotalArea   float64
	L           geom.Vec3
	IsDelta     bool
}

// NewAreaLight builds an area light over the given triangles, caching a
// cumulative-area distribution for importance-proportional triangle
// selection when a light spans more than one triangle.
func NewAreaLight(triIDs []int32, tris []geom.Triangle, l geom.Vec3) Light {
	cdf := make([]float64, len(triIDs))
	total := 0.0
	for i, id := range triIDs {
		total += tris[id].Area()
		cdf[i] = total
	}
	return Light{Kind: LightArea, TriangleIDs: triIDs, CDF: cdf, TotalArea: total, L: l, IsDelta: false}
}

// pickTriangle selects one triangle index (into TriangleIDs) proportional
// to its area, given a canonical uniform u.
func (lt Light) pickTriangle(u float64) int {
	target := u * lt.TotalArea
	lo, hi := 0, len(lt.CDF)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if lt.CDF[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
