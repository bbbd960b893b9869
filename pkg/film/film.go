// Package film accumulates per-pixel radiance across samples and converts
// the running average to a displayable image via Reinhard tone mapping
// and gamma encoding.
package film

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/wavepath/tracer/pkg/geom"
)

// pixel holds a running sum of radiance and a sample count, guarded by
// its own mutex so AddRadiance/CommitSample calls from different
// goroutines contend only when they touch the same pixel.
type pixel struct {
	mu    sync.Mutex
	sum   geom.Vec3
	count int64
}

// Film owns the running per-pixel accumulation for one render target.
// A Film's sample count resets to zero whenever the owning camera is
// mutated, but its pixel buffer is reused in place.
type Film struct {
	width, height int
	pixels        []pixel
}

// New allocates a film for a width x height render target, all pixels
// starting at zero accumulated samples.
func New(width, height int) *Film {
	return &Film{width: width, height: height, pixels: make([]pixel, width*height)}
}

func (f *Film) Resolution() (int, int) { return f.width, f.height }

// AddRadiance adds a contribution toward the sample currently in flight
// for pixel (x, y) -- a wavefront path commits radiance from several
// kernels across several bounces (emission at the primary hit, NEE at
// every bounce) before its sample is complete, so this only grows the
// running sum; it does not advance the sample count. Non-finite or
// negative contributions are clamped to zero rather than propagated, so
// a single NaN/Inf contribution never poisons the running mean.
func (f *Film) AddRadiance(x, y int, radiance geom.Vec3) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	if !radiance.IsFinite() {
		radiance = geom.Vec3{}
	}
	radiance = radiance.ClampNonNegative()

	p := &f.pixels[y*f.width+x]
	p.mu.Lock()
	p.sum = p.sum.Add(radiance)
	p.mu.Unlock()
}

// CommitSample advances pixel (x, y)'s sample count by one. Called once
// per pixel when its primary ray is generated, since a wavefront sample
// is defined by one camera ray regardless of how many bounces it
// survives or how many kernels later add radiance to it.
func (f *Film) CommitSample(x, y int) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	p := &f.pixels[y*f.width+x]
	p.mu.Lock()
	p.count++
	p.mu.Unlock()
}

// SampleCount reports how many samples pixel (x, y) has accumulated.
func (f *Film) SampleCount(x, y int) int64 {
	p := &f.pixels[y*f.width+x]
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Mean returns the running average radiance at pixel (x, y), or the zero
// vector if no samples have landed there yet.
func (f *Film) Mean(x, y int) geom.Vec3 {
	p := &f.pixels[y*f.width+x]
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count == 0 {
		return geom.Vec3{}
	}
	return p.sum.Mul(1.0 / float64(p.count))
}

// Reset zeros every pixel's accumulation, used after a camera mutation
// invalidates the current progressive render.
func (f *Film) Reset() {
	for i := range f.pixels {
		f.pixels[i].mu.Lock()
		f.pixels[i].sum = geom.Vec3{}
		f.pixels[i].count = 0
		f.pixels[i].mu.Unlock()
	}
}

// reinhard applies the simple Reinhard operator L/(1+L) per channel,
// compressing unbounded radiance into [0,1) before 8-bit quantization.
func reinhard(c float64) float64 {
	return c / (1 + c)
}

func gammaEncode(c float64) float64 {
	if c <= 0 {
		return 0
	}
	return math.Pow(c, 1.0/2.2)
}

// ToImage tone-maps and gamma-encodes the current accumulation into an
// 8-bit RGBA image.
func (f *Film) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			mean := f.Mean(x, y)
			r := clamp255(gammaEncode(reinhard(mean.X)))
			g := clamp255(gammaEncode(reinhard(mean.Y)))
			b := clamp255(gammaEncode(reinhard(mean.Z)))
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

func clamp255(c float64) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}

// WritePNG tone-maps the current accumulation and writes it as a PNG to w.
func (f *Film) WritePNG(w io.Writer) error {
	return png.Encode(w, f.ToImage())
}
