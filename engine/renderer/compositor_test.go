package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
)

func rgbaAt(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestCompositorBackground(t *testing.T) {
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	c := NewCompositor(8, 4, bg)

	frame := c.Present()
	if got := frame.Bounds(); got != image.Rect(0, 0, 8, 4) {
		t.Fatalf("unexpected bounds: %v", got)
	}
	for _, p := range []image.Point{{0, 0}, {7, 3}, {4, 2}} {
		if got := rgbaAt(frame, p.X, p.Y); got != bg {
			t.Errorf("pixel %v = %v, want background %v", p, got, bg)
		}
	}
}

func TestCompositorScalesImage(t *testing.T) {
	c := NewCompositor(16, 16, color.Black)

	red := color.RGBA{R: 255, A: 255}
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, red)
		}
	}
	c.SetImage(src)
	frame := c.Present()

	for _, p := range []image.Point{{1, 1}, {8, 8}, {14, 14}} {
		if got := rgbaAt(frame, p.X, p.Y); got != red {
			t.Errorf("pixel %v = %v, want %v", p, got, red)
		}
	}
}

func TestCompositorPresentClearsNextFrame(t *testing.T) {
	c := NewCompositor(4, 4, color.Black)
	c.SetImage(&image.RGBA{}) // empty source draws nothing

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	c.SetImage(src)
	first := c.Present()
	if got := rgbaAt(first, 2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("first frame pixel = %v, want white", got)
	}

	second := c.Present()
	if got := rgbaAt(second, 2, 2); got != (color.RGBA{A: 255}) {
		t.Errorf("second frame pixel = %v, want black", got)
	}
	if c.Frame() != second {
		t.Error("Frame did not return the last presented buffer")
	}
}

func TestCompositorDrawPoints(t *testing.T) {
	c := NewCompositor(32, 32, color.Black)
	err := c.DrawPoints([]mgl32.Vec2{{0.5, 0.5}, {0.125, 0.875}}, color.White, 3)
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	frame := c.Present()

	got := []color.RGBA{
		rgbaAt(frame, 16, 16), // center point
		rgbaAt(frame, 4, 4),   // (0.125, 0.875) maps to the top-left area
		rgbaAt(frame, 28, 28), // untouched corner
	}
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{A: 255}
	want := []color.RGBA{white, white, black}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", diff)
	}
}
