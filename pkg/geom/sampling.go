package geom

import "math"

// SampleCosineHemisphere maps two canonical uniforms to a cosine-weighted
// direction about the given normal, via the Malley method (concentric disk
// sample projected up). Used by the Lambertian BSDF sampler.
func SampleCosineHemisphere(normal Vec3, u, v float64) (dir Vec3, pdf float64) {
	dx, dy := concentricSampleDisk(u, v)
	dz := math.Sqrt(math.Max(0, 1-dx*dx-dy*dy))

	b1, b2 := CoordinateSystem(normal)
	dir = b1.Mul(dx).Add(b2.Mul(dy)).Add(normal.Mul(dz))
	pdf = dz / math.Pi
	return dir, pdf
}

func concentricSampleDisk(u, v float64) (x, y float64) {
	ox := 2*u - 1
	oy := 2*v - 1
	if ox == 0 && oy == 0 {
		return 0, 0
	}
	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - (math.Pi/4)*(ox/oy)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}

// PowerHeuristic implements the two-strategy multiple-importance-sampling
// weight with beta=2, weighting the strategy with pdf fPdf against a second
// strategy with pdf gPdf. Returns 0 if fPdf is 0.
func PowerHeuristic(fPdf, gPdf float64) float64 {
	if fPdf <= 0 {
		return 0
	}
	f2 := fPdf * fPdf
	g2 := gPdf * gPdf
	if f2+g2 == 0 {
		return 0
	}
	return f2 / (f2 + g2)
}

// SolidAnglePDF converts an area-measure PDF at a sampled point to a
// solid-angle-measure PDF as seen from the shading point.
func SolidAnglePDF(areaPDF, distance, cosAtLight float64) float64 {
	if cosAtLight <= 0 {
		return 0
	}
	return areaPDF * distance * distance / cosAtLight
}
