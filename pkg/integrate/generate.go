package integrate

import (
	"github.com/wavepath/tracer/pkg/film"
	"github.com/wavepath/tracer/pkg/geom"
	"github.com/wavepath/tracer/pkg/scene"
	"github.com/wavepath/tracer/pkg/wavefront"
)

// GeneratePrimary fills ctx.Input with one path per pixel for sample
// index sampleIdx, the first kernel of a sample's wavefront. Each
// path gets its own independent RNG stream seeded from (pixel, sample)
// so repeated samples of the same pixel are uncorrelated and the render
// is reproducible for a fixed (pixel, sample) pair regardless of
// scheduling order.
func GeneratePrimary(ctx *wavefront.Context, view *scene.View, f *film.Film, width, height int, sampleIdx int64) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixelIndex := int64(y*width + x)
			sampler := geom.NewSampler(pixelIndex, sampleIdx)
			jitter := sampler.Get2D()
			lens := sampler.Get2D()

			ray := view.Camera.GenerateRay(float64(x)+jitter.X, float64(y)+jitter.Y, lens.X, lens.Y)
			f.CommitSample(x, y)

			ctx.Input.Append(wavefront.PathState{
				PixelX:      x,
				PixelY:      y,
				SampleIndex: sampleIdx,
				Sampler:     sampler,
				Origin:      ray.Origin,
				Direction:   ray.Direction,
				Throughput:  geom.Vec3{X: 1, Y: 1, Z: 1},
				LastBSDFPdf: 0,
				Depth:       0,
			})
		}
	}
}
