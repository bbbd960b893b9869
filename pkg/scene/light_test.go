package scene

import (
	"math"
	"testing"

	"github.com/wavepath/tracer/pkg/geom"
)

func twoTriangleQuad() []geom.Triangle {
	return []geom.Triangle{
		geom.NewTriangle(
			geom.Vec3{X: 0, Y: 0, Z: 0}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0},
			geom.Vec3{X: 0, Y: 0, Z: 1}, geom.Vec3{X: 0, Y: 0, Z: 1}, geom.Vec3{X: 0, Y: 0, Z: 1},
			geom.Vec2{}, geom.Vec2{X: 1}, geom.Vec2{Y: 1},
		),
		// A larger second triangle, so area-weighted selection is not 50/50.
		geom.NewTriangle(
			geom.Vec3{X: 0, Y: 0, Z: 0}, geom.Vec3{X: 3, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 3, Z: 0},
			geom.Vec3{X: 0, Y: 0, Z: 1}, geom.Vec3{X: 0, Y: 0, Z: 1}, geom.Vec3{X: 0, Y: 0, Z: 1},
			geom.Vec2{}, geom.Vec2{X: 1}, geom.Vec2{Y: 1},
		),
	}
}

func TestNewAreaLightTotalArea(t *testing.T) {
	tris := twoTriangleQuad()
	lt := NewAreaLight([]int32{0, 1}, tris, geom.Vec3{X: 1, Y: 1, Z: 1})

	want := tris[0].Area() + tris[1].Area()
	if math.Abs(lt.TotalArea-want) > 1e-9 {
		t.Errorf("TotalArea = %v, want %v", lt.TotalArea, want)
	}
	if len(lt.CDF) != 2 || lt.CDF[1] != lt.TotalArea {
		t.Errorf("CDF = %v, want cumulative area ending at TotalArea %v", lt.CDF, lt.TotalArea)
	}
}

func TestPickTriangleProportionalToArea(t *testing.T) {
	tris := twoTriangleQuad()
	lt := NewAreaLight([]int32{0, 1}, tris, geom.Vec3{X: 1, Y: 1, Z: 1})

	boundary := tris[0].Area() / lt.TotalArea

	if got := lt.pickTriangle(boundary / 2); got != 0 {
		t.Errorf("pickTriangle below the first triangle's share = %v, want 0", got)
	}
	if got := lt.pickTriangle((boundary + 1) / 2); got != 1 {
		t.Errorf("pickTriangle past the first triangle's share = %v, want 1", got)
	}
}

func TestViewSampleLightUsesCombinedArea(t *testing.T) {
	tris := twoTriangleQuad()
	prims := []Primitive{{MaterialID: 0, LightID: 0}, {MaterialID: 0, LightID: 0}}
	mats := []Material{{Kind: MaterialMatte, Reflectance: geom.Vec3{X: 1, Y: 1, Z: 1}}}
	lights := []Light{NewAreaLight([]int32{0, 1}, tris, geom.Vec3{X: 2, Y: 2, Z: 2})}
	cam := NewCamera(geom.Vec3{Z: 5}, geom.Vec3{}, geom.Vec3{Y: 1}, 50, 16, 16, 0, 1)

	view := NewView(tris, prims, mats, lights, cam)
	ls := view.SampleLight(0, 0.9, 0.3, 0.3)

	want := 1.0 / lights[0].TotalArea
	if math.Abs(ls.PDFArea-want) > 1e-9 {
		t.Errorf("SampleLight PDFArea = %v, want %v", ls.PDFArea, want)
	}
	if ls.L != (geom.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("SampleLight L = %v, want {2 2 2}", ls.L)
	}
}
