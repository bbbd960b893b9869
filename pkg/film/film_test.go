package film

import (
	"bytes"
	"math"
	"testing"

	"github.com/wavepath/tracer/pkg/geom"
)

func TestCommitSampleAndAddRadianceAreIndependent(t *testing.T) {
	f := New(4, 4)
	f.CommitSample(1, 1)
	f.AddRadiance(1, 1, geom.Vec3{X: 2, Y: 2, Z: 2})
	f.AddRadiance(1, 1, geom.Vec3{X: 1, Y: 1, Z: 1})

	if f.SampleCount(1, 1) != 1 {
		t.Errorf("SampleCount = %v, want 1 (AddRadiance must not advance the count)", f.SampleCount(1, 1))
	}
	mean := f.Mean(1, 1)
	if mean != (geom.Vec3{X: 3, Y: 3, Z: 3}) {
		t.Errorf("Mean = %v, want {3 3 3} (both AddRadiance calls summed into one sample)", mean)
	}
}

func TestMeanBeforeAnySampleIsZero(t *testing.T) {
	f := New(2, 2)
	if mean := f.Mean(0, 0); mean != (geom.Vec3{}) {
		t.Errorf("Mean of an untouched pixel = %v, want zero", mean)
	}
}

func TestAddRadianceClampsNonFinite(t *testing.T) {
	f := New(2, 2)
	f.CommitSample(0, 0)
	f.AddRadiance(0, 0, geom.Vec3{X: math.NaN(), Y: math.Inf(1), Z: -5})

	mean := f.Mean(0, 0)
	if mean != (geom.Vec3{}) {
		t.Errorf("Mean after a non-finite/negative contribution = %v, want zero (clamped)", mean)
	}
}

func TestAddRadianceOutOfBoundsIsIgnored(t *testing.T) {
	f := New(2, 2)
	// Must not panic.
	f.AddRadiance(-1, 0, geom.Vec3{X: 1, Y: 1, Z: 1})
	f.AddRadiance(0, 100, geom.Vec3{X: 1, Y: 1, Z: 1})
	f.CommitSample(-1, 0)
}

func TestResetClearsAccumulation(t *testing.T) {
	f := New(2, 2)
	f.CommitSample(0, 0)
	f.AddRadiance(0, 0, geom.Vec3{X: 5, Y: 5, Z: 5})
	f.Reset()

	if f.SampleCount(0, 0) != 0 {
		t.Errorf("SampleCount after Reset = %v, want 0", f.SampleCount(0, 0))
	}
	if mean := f.Mean(0, 0); mean != (geom.Vec3{}) {
		t.Errorf("Mean after Reset = %v, want zero", mean)
	}
}

func TestMultipleSamplesAverageCorrectly(t *testing.T) {
	f := New(1, 1)
	for i := 0; i < 4; i++ {
		f.CommitSample(0, 0)
		f.AddRadiance(0, 0, geom.Vec3{X: 4, Y: 0, Z: 0})
	}
	mean := f.Mean(0, 0)
	if math.Abs(mean.X-4) > 1e-9 {
		t.Errorf("Mean.X = %v, want 4 (running average of four identical samples)", mean.X)
	}
}

func TestWritePNGProducesNonEmptyOutput(t *testing.T) {
	f := New(4, 4)
	f.CommitSample(0, 0)
	f.AddRadiance(0, 0, geom.Vec3{X: 1, Y: 1, Z: 1})

	var buf bytes.Buffer
	if err := f.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("WritePNG produced no bytes")
	}
}

func TestToImageToneMapsTowardWhiteForLargeRadiance(t *testing.T) {
	f := New(1, 1)
	f.CommitSample(0, 0)
	f.AddRadiance(0, 0, geom.Vec3{X: 1e6, Y: 1e6, Z: 1e6})

	img := f.ToImage()
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("very large radiance should tone-map near white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
