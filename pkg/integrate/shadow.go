package integrate

import (
	"github.com/wavepath/tracer/pkg/film"
	"github.com/wavepath/tracer/pkg/geom"
	"github.com/wavepath/tracer/pkg/scene"
	"github.com/wavepath/tracer/pkg/wavefront"
)

// ResolveShadows is the shadow-testing kernel: for
// every pending NEE candidate, cast the occlusion ray and, if
// unoccluded, commit its precomputed contribution to the film. Run as
// its own kernel dispatch, separate from Shade, so the queue holds only
// rays that still need an any-hit test rather than re-deriving them.
func ResolveShadows(ctx *wavefront.Context, view *scene.View, f *film.Film) {
	shadows := ctx.Shadow.Items()
	parallelFor(len(shadows), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			s := shadows[i]
			ray := geom.Ray{Origin: s.Origin, Direction: s.Direction, TMax: s.TMax}
			if !view.Intersect(ray) {
				f.AddRadiance(s.PixelX, s.PixelY, s.Contribution)
			}
		}
	})
}
