package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wavepath/tracer/pkg/config"
)

const minimalScene = `
LookAt 0 1 5  0 1 0  0 1 0
Camera "perspective" "float fov" [50]
Film "image" "integer xresolution" [8] "integer yresolution" [8]
WorldBegin
MakeNamedMaterial "white" "string type" "matte" "rgb Kd" [0.8 0.8 0.8]
NamedMaterial "white"
AttributeBegin
AreaLightSource "diffuse" "rgb L" [6 6 6]
Shape "trianglemesh" "point P" [-1 4 -1  1 4 -1  1 4 1] "integer indices" [0 1 2]
Shape "trianglemesh" "point P" [-1 4 -1  1 4 1  -1 4 1] "integer indices" [0 1 2]
AttributeEnd
Shape "trianglemesh" "point P" [-5 0 -5  5 0 -5  5 0 5] "integer indices" [0 1 2]
Shape "trianglemesh" "point P" [-5 0 -5  5 0 5  -5 0 5] "integer indices" [0 1 2]
WorldEnd
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.pbrt")
	if err := os.WriteFile(path, []byte(minimalScene), 0o644); err != nil {
		t.Fatalf("writing test scene: %v", err)
	}
	return path
}

func TestNewLoadsSceneAndReportsResolution(t *testing.T) {
	r, err := New(writeScene(t), config.Default(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w, h := r.Resolution()
	if w != 8 || h != 8 {
		t.Errorf("Resolution = (%d,%d), want (8,8)", w, h)
	}
}

func TestNewMissingFileErrors(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing.pbrt"), config.Default(), nil); err == nil {
		t.Fatalf("expected error for a missing scene file")
	}
}

func TestRenderOneSampleAdvancesSampleIndex(t *testing.T) {
	r, err := New(writeScene(t), config.Default(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r.RenderOneSample()
	if r.sampleIndex != 1 {
		t.Errorf("sampleIndex after one RenderOneSample = %v, want 1", r.sampleIndex)
	}
	r.RenderOneSample()
	if r.sampleIndex != 2 {
		t.Errorf("sampleIndex after two RenderOneSample calls = %v, want 2", r.sampleIndex)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	r, err := New(writeScene(t), config.Default(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.Render(2); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "2spp.png")); err != nil {
		t.Errorf("expected output file 2spp.png to exist: %v", err)
	}
}

func TestCameraMutationResetsSampleIndex(t *testing.T) {
	r, err := New(writeScene(t), config.Default(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r.RenderOneSample()
	r.RenderOneSample()
	if r.sampleIndex == 0 {
		t.Fatalf("setup failed: sampleIndex should have advanced")
	}

	r.Translate(1, 0)
	if r.sampleIndex != 0 {
		t.Errorf("sampleIndex after Translate = %v, want 0", r.sampleIndex)
	}

	r.RenderOneSample()
	r.Zoom(5)
	if r.sampleIndex != 0 {
		t.Errorf("sampleIndex after Zoom = %v, want 0", r.sampleIndex)
	}

	r.RenderOneSample()
	r.Rotate(10, 0)
	if r.sampleIndex != 0 {
		t.Errorf("sampleIndex after Rotate = %v, want 0", r.sampleIndex)
	}
}

func TestResizeReallocatesFilm(t *testing.T) {
	r, err := New(writeScene(t), config.Default(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r.Resize(16, 12)
	w, h := r.Resolution()
	if w != 16 || h != 12 {
		t.Errorf("Resolution after Resize = (%d,%d), want (16,12)", w, h)
	}
}
