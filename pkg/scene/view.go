package scene

import (
	"github.com/wavepath/tracer/pkg/accel"
	"github.com/wavepath/tracer/pkg/geom"
)

// View is the immutable (modulo Camera) scene description a render pass
// reads from concurrently: one flat array of triangles, one of
// primitives binding each triangle to its material and light, the
// material and light tables, and the LBVH accelerating structure built
// over the triangle array.
type View struct {
	Triangles  []geom.Triangle
	Primitives []Primitive
	Materials  []Material
	Lights     []Light
	Accel      *accel.LBVH
	Camera     *Camera

	// lightOfPrimitive[p] is the index into Lights of the light that
	// primitive p belongs to, or -1 if it is not emissive. It is the
	// reverse of Lights[i].TriangleIDs, which already maps a light to its
	// Triangles indices. Built once in NewView.
	lightOfPrimitive []int32
}

// NewView builds a View and its LBVH from fully assembled scene arrays.
// It is the terminal step of scene construction (see Build, which
// produces these arrays from a pbrt.Document parsed by pkg/pbrt).
func NewView(tris []geom.Triangle, prims []Primitive, mats []Material, lights []Light, cam *Camera) *View {
	lop := make([]int32, len(prims))
	for i := range lop {
		lop[i] = -1
	}
	for li, lt := range lights {
		for _, triID := range lt.TriangleIDs {
			lop[triID] = int32(li)
		}
	}
	return &View{
		Triangles:        tris,
		Primitives:       prims,
		Materials:        mats,
		Lights:           lights,
		Accel:            accel.Build(tris),
		Camera:           cam,
		lightOfPrimitive: lop,
	}
}

// Intersect reports whether ray hits any geometry, for shadow testing.
func (v *View) Intersect(ray geom.Ray) bool {
	return v.Accel.AnyHit(ray)
}

// IntersectClosest returns the nearest hit along ray together with the
// primitive it belongs to, or ok=false if the ray escapes the scene.
func (v *View) IntersectClosest(ray geom.Ray) (accel.Interaction, Primitive, bool) {
	hit, ok := v.Accel.ClosestHit(ray)
	if !ok {
		return accel.Interaction{}, Primitive{}, false
	}
	return hit, v.Primitives[hit.PrimitiveID], true
}

// MaterialFor looks up the material bound to a primitive.
func (v *View) MaterialFor(p Primitive) Material {
	return v.Materials[p.MaterialID]
}

// LightOfPrimitive returns the light index for a primitive id, or -1 if
// the primitive is not emissive.
func (v *View) LightOfPrimitive(primID int32) int32 {
	return v.lightOfPrimitive[primID]
}

// LightSample is one NEE candidate: a point on a light with its normal,
// the emitted radiance toward the shading point not yet included, and
// the area-measure PDF of having sampled that point.
type LightSample struct {
	Point    geom.Vec3
	Normal   geom.Vec3
	L        geom.Vec3
	PDFArea  float64
	LightIdx int32
}

// SampleLight draws one point from the light at lightIdx, proportional
// to triangle area within a multi-triangle light.
// u selects the triangle, (v0,v1) select the barycentric point within it.
func (v *View) SampleLight(lightIdx int32, u, v0, v1 float64) LightSample {
	lt := v.Lights[lightIdx]
	triLocal := lt.pickTriangle(u)
	triID := lt.TriangleIDs[triLocal]
	tri := v.Triangles[triID]

	point, normal, pdfThisTri := tri.SampleUniform(v0, v1)
	// Convert the single-triangle area pdf into the light's combined
	// area pdf: P(triangle) * P(point | triangle) = (area_i/total) * (1/area_i) = 1/total.
	_ = pdfThisTri
	pdfArea := 1.0 / lt.TotalArea

	return LightSample{Point: point, Normal: normal, L: lt.L, PDFArea: pdfArea, LightIdx: lightIdx}
}

// LightCount reports how many lights the view has, for uniform light
// selection (picking among lights is uniform; picking within a light's
// triangles is area-weighted).
func (v *View) LightCount() int {
	return len(v.Lights)
}
