package integrate

import (
	"github.com/wavepath/tracer/pkg/film"
	"github.com/wavepath/tracer/pkg/scene"
	"github.com/wavepath/tracer/pkg/wavefront"
)

// RenderSample runs one full wavefront sample: generate primary
// rays for every pixel, then alternate shade/resolve-shadows/swap until
// every path has terminated or the configured depth is reached. Each
// kernel dispatch is a synchronous barrier (parallelFor joins its
// goroutines) before the next kernel reads its output, matching the
// wavefront pipeline's per-bounce structure.
func RenderSample(view *scene.View, f *film.Film, cfg Config, sampleIdx int64) {
	width, height := view.Camera.Resolution()
	ctx := wavefront.NewContext(width * height)

	GeneratePrimary(ctx, view, f, width, height, sampleIdx)

	for bounce := 0; bounce < cfg.MaxDepth && ctx.Input.Len() > 0; bounce++ {
		Shade(ctx, view, f, cfg, bounce)
		ResolveShadows(ctx, view, f)
		ctx.SwapBounce()
	}
}

// RenderSamples runs count consecutive wavefront samples against f,
// accumulating into its running mean.
func RenderSamples(view *scene.View, f *film.Film, cfg Config, startSample int64, count int) {
	for i := 0; i < count; i++ {
		RenderSample(view, f, cfg, startSample+int64(i))
	}
}
