// Package engine is the public API surface a caller (CLI or otherwise)
// renders through: load a scene description, run samples, mutate the
// camera, save output.
package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/wavepath/tracer/pkg/config"
	"github.com/wavepath/tracer/pkg/film"
	"github.com/wavepath/tracer/pkg/integrate"
	"github.com/wavepath/tracer/pkg/pbrt"
	"github.com/wavepath/tracer/pkg/rendererr"
	"github.com/wavepath/tracer/pkg/scene"
)

// Renderer owns one loaded scene, its film, and its sampling config. It
// is the single stateful object a caller holds; every mutation it
// exposes (camera moves, resize) invalidates the film's accumulation.
type Renderer struct {
	view        *scene.View
	film        *film.Film
	cfg         integrate.Config
	logger      Logger
	sampleIndex int64
}

// New loads a PBRT-style scene description from path and builds a
// Renderer ready to accumulate samples, using cfg for the sampling
// schedule and logger (NopLogger if nil) for progress output.
func New(scenePath string, cfg config.RendererConfig, logger Logger) (*Renderer, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	f, err := os.Open(scenePath)
	if err != nil {
		return nil, rendererr.NewResourceError("engine.New", err)
	}
	defer f.Close()

	doc, err := pbrt.Parse(f)
	if err != nil {
		return nil, err
	}
	view, err := scene.Build(doc)
	if err != nil {
		return nil, err
	}

	width, height := view.Camera.Resolution()
	logger.Printf("loaded scene %s: %d triangles, %d lights, %dx%d\n", scenePath, len(view.Triangles), len(view.Lights), width, height)

	return &Renderer{
		view:   view,
		film:   film.New(width, height),
		cfg:    cfg.Integrate(),
		logger: logger,
	}, nil
}

// Resolution reports the current render target size.
func (r *Renderer) Resolution() (int, int) { return r.view.Camera.Resolution() }

// RenderOneSample advances the accumulation by a single wavefront sample
// across every pixel.
func (r *Renderer) RenderOneSample() {
	start := time.Now()
	integrate.RenderSample(r.view, r.film, r.cfg, r.sampleIndex)
	r.sampleIndex++
	r.logger.Printf("sample %d complete in %v\n", r.sampleIndex, time.Since(start))
}

// Render runs n consecutive samples and writes the tone-mapped result to
// "<n>spp.png" in the working directory.
func (r *Renderer) Render(n int) error {
	start := time.Now()
	integrate.RenderSamples(r.view, r.film, r.cfg, r.sampleIndex, n)
	r.sampleIndex += int64(n)
	r.logger.Printf("%d samples complete in %v\n", n, time.Since(start))

	name := fmt.Sprintf("%dspp.png", n)
	out, err := os.Create(name)
	if err != nil {
		return rendererr.NewResourceError("engine.Render", err)
	}
	defer out.Close()
	if err := r.film.WritePNG(out); err != nil {
		return rendererr.NewResourceError("engine.Render", err)
	}
	r.logger.Printf("wrote %s\n", name)
	return nil
}

// resetFilm invalidates the current accumulation after any camera
// mutation.
func (r *Renderer) resetFilm() {
	r.film.Reset()
	r.sampleIndex = 0
}

// Translate pans the camera by (dx, dy) in its own image plane.
func (r *Renderer) Translate(dx, dy float64) {
	r.view.Camera.Translate(dx, dy)
	r.resetFilm()
}

// Rotate orbits the camera by (yawDeg, pitchDeg).
func (r *Renderer) Rotate(yawDeg, pitchDeg float64) {
	r.view.Camera.Rotate(yawDeg, pitchDeg)
	r.resetFilm()
}

// Zoom narrows or widens the camera's field of view by delta degrees.
func (r *Renderer) Zoom(delta float64) {
	r.view.Camera.Zoom(delta)
	r.resetFilm()
}

// Resize changes the render target resolution, reallocating the film.
func (r *Renderer) Resize(width, height int) {
	r.view.Camera.Resize(width, height)
	r.film = film.New(width, height)
	r.sampleIndex = 0
}
