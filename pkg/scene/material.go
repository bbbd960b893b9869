package scene

import (
	"math"

	"github.com/wavepath/tracer/pkg/geom"
)

// MaterialKind tags the finite set of supported materials. A tagged sum
// with a branch on the tag rather than an interface hierarchy: there is
// exactly one variant in the diffuse-only core, and new variants are
// added as new `MaterialKind` constants plus a case in each method.
type MaterialKind uint8

const (
	MaterialMatte MaterialKind = iota
)

// Material is the diffuse (Lambertian) BRDF, the only material kind
// currently implemented.
type Material struct {
	Kind        MaterialKind
	Reflectance geom.Vec3
}

// EvaluateBRDF returns f(wo, wi) for the Lambertian BRDF: rho/pi,
// independent of direction.
func (m Material) EvaluateBRDF() geom.Vec3 {
	switch m.Kind {
	case MaterialMatte:
		return m.Reflectance.Mul(1.0 / math.Pi)
	default:
		return geom.Vec3{}
	}
}

// PDF returns the BSDF-sampling PDF for wi given the shading normal,
// cosine-weighted for a diffuse surface, and whether this material is a
// delta distribution (always false for matte).
func (m Material) PDF(wi, normal geom.Vec3) (pdf float64, isDelta bool) {
	switch m.Kind {
	case MaterialMatte:
		cosTheta := wi.Dot(normal)
		if cosTheta <= 0 {
			return 0, false
		}
		return cosTheta / math.Pi, false
	default:
		return 0, false
	}
}

// SampleBSDF draws an outgoing direction from the material's importance
// distribution (cosine-weighted hemisphere for matte) and returns its PDF.
func (m Material) SampleBSDF(normal geom.Vec3, sampler geom.Sampler) (wi geom.Vec3, pdf float64) {
	switch m.Kind {
	case MaterialMatte:
		u := sampler.Get2D()
		return geom.SampleCosineHemisphere(normal, u.X, u.Y)
	default:
		return geom.Vec3{}, 0
	}
}
