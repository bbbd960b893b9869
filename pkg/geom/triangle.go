package geom

import "math"

// epsilon rejects near-grazing and self-intersection hits.
const Epsilon = 1e-6

// Triangle stores resolved vertex positions, per-vertex shading normals and
// UVs, and its cached area. A Scene owns these in a flat array; nothing
// outside geom holds a pointer into a mesh.
type Triangle struct {
	P0, P1, P2    Vec3
	N0, N1, N2    Vec3 // shading normals, already normalized
	UV0, UV1, UV2 Vec2
	area          float64
	geomNormal    Vec3
}

// NewTriangle builds a triangle, computing its geometric normal and cached
// area. Degenerate (zero-area) triangles are the caller's responsibility to
// filter at mesh-build time.
func NewTriangle(p0, p1, p2, n0, n1, n2 Vec3, uv0, uv1, uv2 Vec2) Triangle {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	cross := e1.Cross(e2)
	area := 0.5 * cross.Length()
	var gn Vec3
	if area > 0 {
		gn = cross.Mul(1.0 / (2 * area))
	}
	return Triangle{
		P0: p0, P1: p1, P2: p2,
		N0: n0, N1: n1, N2: n2,
		UV0: uv0, UV1: uv1, UV2: uv2,
		area:       area,
		geomNormal: gn,
	}
}

func (t Triangle) Area() float64      { return t.area }
func (t Triangle) GeomNormal() Vec3   { return t.geomNormal }
func (t Triangle) IsDegenerate() bool { return t.area <= 0 }

func (t Triangle) BoundingBox() Bounds3 {
	return BoundsFromPoints(t.P0, t.P1, t.P2)
}

func (t Triangle) Centroid() Vec3 {
	return t.P0.Add(t.P1).Add(t.P2).Mul(1.0 / 3.0)
}

// TriangleHit is the result of a successful ray-triangle intersection.
type TriangleHit struct {
	T                  float64
	B0, B1, B2         float64 // barycentrics, sum to 1
	Point              Vec3
	GeomNormal         Vec3
	ShadingNormal      Vec3
	UV                 Vec2
}

// Hit implements the Möller-Trumbore ray-triangle test. Hits with
// tHit <= Epsilon or tHit >= ray.TMax are rejected.
func (t Triangle) Hit(r Ray) (TriangleHit, bool) {
	e1 := t.P1.Sub(t.P0)
	e2 := t.P2.Sub(t.P0)
	h := r.Direction.Cross(e2)
	a := e1.Dot(h)
	if a > -1e-12 && a < 1e-12 {
		return TriangleHit{}, false
	}
	f := 1.0 / a
	s := r.Origin.Sub(t.P0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return TriangleHit{}, false
	}
	q := s.Cross(e1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return TriangleHit{}, false
	}
	tHit := f * e2.Dot(q)
	if tHit <= Epsilon || tHit >= r.TMax {
		return TriangleHit{}, false
	}

	b0, b1, b2 := 1-u-v, u, v
	point := t.P0.Mul(b0).Add(t.P1.Mul(b1)).Add(t.P2.Mul(b2))
	shN := t.N0.Mul(b0).Add(t.N1.Mul(b1)).Add(t.N2.Mul(b2)).Normalize()
	uv := t.UV0.Mul2(b0).Add2(t.UV1.Mul2(b1)).Add2(t.UV2.Mul2(b2))

	return TriangleHit{
		T:             tHit,
		B0:            b0, B1: b1, B2: b2,
		Point:         point,
		GeomNormal:    t.geomNormal,
		ShadingNormal: Faceforward(shN, t.geomNormal),
		UV:            uv,
	}, true
}

// Mul2 and Add2 keep Vec2 arithmetic out of the Vec3 hot path's method set.
func (v Vec2) Mul2(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Add2(o Vec2) Vec2    { return Vec2{v.X + o.X, v.Y + o.Y} }

// SampleUniform warps two canonical uniforms to a point on the triangle
// using the sqrt-based barycentric warp, returning the position, the
// (non-faceforwarded) shading normal at that point, and the PDF with
// respect to area (1/area).
func (t Triangle) SampleUniform(u, v float64) (point, normal Vec3, pdfArea float64) {
	su0 := math.Sqrt(u)
	b0 := 1 - su0
	b1 := su0 * (1 - v)
	b2 := su0 * v
	point = t.P0.Mul(b0).Add(t.P1.Mul(b1)).Add(t.P2.Mul(b2))
	normal = t.N0.Mul(b0).Add(t.N1.Mul(b1)).Add(t.N2.Mul(b2)).Normalize()
	if t.area <= 0 {
		return point, normal, 0
	}
	return point, normal, 1.0 / t.area
}
