package integrate

import (
	"github.com/wavepath/tracer/pkg/accel"
	"github.com/wavepath/tracer/pkg/film"
	"github.com/wavepath/tracer/pkg/geom"
	"github.com/wavepath/tracer/pkg/scene"
	"github.com/wavepath/tracer/pkg/wavefront"
)

// shadowEpsilon offsets both ends of a shadow ray off their respective
// surfaces, avoiding self-intersection with the origin triangle and with
// the light triangle itself.
const shadowEpsilon = 1e-4

// Shade is the per-bounce shading kernel: intersect each path in
// ctx.Input against the scene, add emission at the hit (MIS-weighted
// against the previous bounce's BSDF sample on every bounce past the
// first), emit a shadow-queue entry for next-event estimation, and emit
// a scatter-queue entry for paths that survive to bounce+1. Emission is
// committed straight to the film here and NEE contributions are
// committed by ResolveShadows; neither is accumulated in PathState,
// which carries forward only the throughput and the previous bounce's
// BSDF PDF, needed to weight the next emission hit.
func Shade(ctx *wavefront.Context, view *scene.View, f *film.Film, cfg Config, bounce int) {
	paths := ctx.Input.Items()
	parallelFor(len(paths), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			shadeOne(ctx, view, f, cfg, bounce, paths[i])
		}
	})
}

func shadeOne(ctx *wavefront.Context, view *scene.View, f *film.Film, cfg Config, bounce int, path wavefront.PathState) {
	ray := geom.NewRay(path.Origin, path.Direction)
	hit, prim, ok := view.IntersectClosest(ray)
	if !ok {
		return // escapes the scene; no environment light in the core
	}

	if lightIdx := view.LightOfPrimitive(hit.PrimitiveID); lightIdx >= 0 {
		le := view.Lights[lightIdx].L
		cosAtHit := path.Direction.Negate().Dot(hit.GeomNormal)
		if cosAtHit > 0 {
			weight := 1.0
			if bounce > 0 {
				// This hit is the BSDF-sampling half of MIS: the previous
				// bounce's SampleBSDF picked Direction, and it happened to
				// land on a light. Weight it against what next-event
				// estimation would have assigned the same (light, point)
				// pair, using the PDF the scatter kernel carried forward
				// in LastBSDFPdf.
				selectionPDF := 1.0 / float64(view.LightCount())
				areaPDF := selectionPDF / view.Lights[lightIdx].TotalArea
				lightPdfSolidAngle := geom.SolidAnglePDF(areaPDF, hit.T, cosAtHit)
				weight = geom.PowerHeuristic(path.LastBSDFPdf, lightPdfSolidAngle)
			}
			f.AddRadiance(path.PixelX, path.PixelY, path.Throughput.MulVec(le).Mul(weight))
		}
	}

	// Non-emissive surfaces scatter on both sides: orient the normals
	// toward the side the path arrived from before NEE and BSDF sampling.
	if hit.GeomNormal.Dot(path.Direction) > 0 {
		hit.GeomNormal = hit.GeomNormal.Negate()
		hit.ShadingNormal = hit.ShadingNormal.Negate()
	}

	mat := view.MaterialFor(prim)

	sampleNextEventEstimation(ctx, view, path, hit, mat)

	continuePath(ctx, cfg, bounce, path, hit, mat)
}

// sampleNextEventEstimation draws one light sample, evaluates its MIS
// weight against the material's BSDF pdf for the same direction via the
// power heuristic, and if the surface and light are mutually visible to
// each other's normals, queues the corresponding shadow-ray test. The
// complementary half of MIS -- weighting a BSDF-sampled ray that lands on
// a light -- is realized not by a second trace here but by shadeOne
// itself: the scatter kernel carries the sampling PDF forward in
// PathState.LastBSDFPdf, and the next bounce's emission term weights
// against it. This is the wavefront-native equivalent of tracing both
// MIS strategies at one vertex, since a BSDF-sampled ray is already
// being traced anyway as the start of the next bounce.
func sampleNextEventEstimation(ctx *wavefront.Context, view *scene.View, path wavefront.PathState, hit accel.Interaction, mat scene.Material) {
	nLights := view.LightCount()
	if nLights == 0 {
		return
	}
	selector := path.Sampler.Get1D()
	lightIdx := int32(selector * float64(nLights))
	if int(lightIdx) >= nLights {
		lightIdx = int32(nLights - 1)
	}
	selectionPDF := 1.0 / float64(nLights)

	triU := path.Sampler.Get1D()
	bary := path.Sampler.Get2D()
	ls := view.SampleLight(lightIdx, triU, bary.X, bary.Y)

	toLight := ls.Point.Sub(hit.Point)
	dist := toLight.Length()
	if dist <= shadowEpsilon {
		return
	}
	wi := toLight.Mul(1.0 / dist)

	cosSurface := wi.Dot(hit.ShadingNormal)
	cosLight := wi.Negate().Dot(ls.Normal)
	if cosSurface <= 0 || cosLight <= 0 {
		return
	}

	lightPdfSolidAngle := geom.SolidAnglePDF(ls.PDFArea*selectionPDF, dist, cosLight)
	if lightPdfSolidAngle <= 0 {
		return
	}

	bsdfPdf, isDelta := mat.PDF(wi, hit.ShadingNormal)
	weight := 1.0
	if !isDelta {
		weight = geom.PowerHeuristic(lightPdfSolidAngle, bsdfPdf)
	}

	f := mat.EvaluateBRDF()
	contribution := path.Throughput.MulVec(f).Mul(cosSurface * weight).MulVec(ls.L).Mul(1.0 / lightPdfSolidAngle)

	origin := hit.Point.Add(hit.GeomNormal.Mul(shadowEpsilon))
	ctx.Shadow.Append(wavefront.ShadowState{
		PixelX:       path.PixelX,
		PixelY:       path.PixelY,
		Origin:       origin,
		Direction:    wi,
		TMax:         dist * (1 - 1e-3),
		Contribution: contribution,
	})
}

// continuePath draws a BSDF sample, applies Russian Roulette once the
// path has gone past the configured minimum bounce count, and appends a
// survivor to the scatter queue. Survival probability is the new
// throughput's luminance clamped to [0.05, 0.95], compensated by
// 1/survivalProb so the estimator stays unbiased.
func continuePath(ctx *wavefront.Context, cfg Config, bounce int, path wavefront.PathState, hit accel.Interaction, mat scene.Material) {
	if bounce+1 >= cfg.MaxDepth {
		return
	}

	wi, bsdfPdf := mat.SampleBSDF(hit.ShadingNormal, path.Sampler)
	if bsdfPdf <= 0 {
		return
	}
	cosTheta := wi.Dot(hit.ShadingNormal)
	if cosTheta <= 0 {
		return
	}

	f := mat.EvaluateBRDF()
	newThroughput := path.Throughput.MulVec(f).Mul(cosTheta / bsdfPdf)

	if bounce+1 >= cfg.RussianRouletteMinBounces {
		survivalProb := clamp(newThroughput.Luminance(), 0.05, 0.95)
		if path.Sampler.Get1D() > survivalProb {
			return
		}
		newThroughput = newThroughput.Mul(1.0 / survivalProb)
	}

	ctx.Scatter.Append(wavefront.PathState{
		PixelX:      path.PixelX,
		PixelY:      path.PixelY,
		SampleIndex: path.SampleIndex,
		Sampler:     path.Sampler,
		Origin:      hit.Point.Add(hit.GeomNormal.Mul(shadowEpsilon)),
		Direction:   wi,
		Throughput:  newThroughput,
		LastBSDFPdf: bsdfPdf,
		Depth:       bounce + 1,
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
