package main

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
)

// modeRenderer records present mode changes.
type modeRenderer struct {
	modes []renderer.PresentMode
}

var _ renderer.Renderer = &modeRenderer{}

func (r *modeRenderer) Resize(width, height int) {}
func (r *modeRenderer) SetPresentMode(mode renderer.PresentMode) { r.modes = append(r.modes, mode) }
func (r *modeRenderer) Present(frame *image.RGBA) error { return nil }
func (r *modeRenderer) WriteUniforms(data []byte) {}
func (r *modeRenderer) UniformBuffer() *wgpu.Buffer { return nil }
func (r *modeRenderer) Release() {}

// gpuHeadless is a headless display that reports a GPU renderer.
type gpuHeadless struct {
	*window.Headless
	r *modeRenderer
}

var _ window.GPUDisplay = &gpuHeadless{}

func (d *gpuHeadless) Renderer() renderer.Renderer { return d.r }

func runParticles(t *testing.T, p *particles, d window.Display) {
	t.Helper()
	a, err := engine.NewAnimation(p.hooks(), engine.WithDisplay(d), engine.WithResolution(4, 4), engine.WithPoints(p.points))
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func TestParticlesStayInFrame(t *testing.T) {
	p := newParticles(64, 1, 0)
	p.attractor = &mgl32.Vec2{0.9, 0.1}
	for range 600 {
		p.step()
	}
	for i, pos := range p.points.Positions {
		if pos.X() < 0 || pos.X() > 1 || pos.Y() < 0 || pos.Y() > 1 {
			t.Fatalf("particle %d left the frame: %v", i, pos)
		}
	}
}

func TestParticlesDeterministic(t *testing.T) {
	a, b := newParticles(16, 42, 0), newParticles(16, 42, 0)
	for range 30 {
		a.step()
		b.step()
	}
	for i := range a.points.Positions {
		if a.points.Positions[i] != b.points.Positions[i] {
			t.Fatalf("particle %d differs: %v vs %v", i, a.points.Positions[i], b.points.Positions[i])
		}
	}
}

func TestMixColor(t *testing.T) {
	if got := mixColor(coldColor, hotColor, 0); got != coldColor {
		t.Errorf("mixColor(t=0) = %v, want %v", got, coldColor)
	}
	if got := mixColor(coldColor, hotColor, 1); got != hotColor {
		t.Errorf("mixColor(t=1) = %v, want %v", got, hotColor)
	}
}

func TestTogglePresentMode(t *testing.T) {
	pressV := []window.Event{{Type: window.EventPress, Key: common.KeyV}}
	d := &gpuHeadless{
		Headless: window.NewHeadless(window.WithScript(pressV, pressV)),
		r:        &modeRenderer{},
	}
	p := newParticles(4, 1, 2)
	runParticles(t, p, d)

	want := []renderer.PresentMode{renderer.PresentModeUncapped, renderer.PresentModeVSync}
	if diff := cmp.Diff(want, d.r.modes); diff != "" {
		t.Errorf("unexpected present modes (-want +got):\n%s", diff)
	}
	if p.uncapped {
		t.Error("uncapped = true after two toggles")
	}
}

func TestTogglePresentModeWithoutGPU(t *testing.T) {
	pressV := []window.Event{{Type: window.EventPress, Key: common.KeyV}}
	p := newParticles(4, 1, 1)
	runParticles(t, p, window.NewHeadless(window.WithScript(pressV)))
	if p.uncapped {
		t.Error("present mode toggled on a display without a renderer")
	}
}
