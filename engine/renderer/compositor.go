package renderer

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Compositor assembles one frame on the CPU: a background fill, an optional scaled image and an
// optional point overlay. It keeps two buffers so the last presented frame stays readable while the
// next one is being drawn.
type Compositor struct {
	width, height int
	background    *image.Uniform

	scaler draw.Scaler

	// back is the frame being assembled, front the last presented one.
	back, front *image.RGBA
}

// NewCompositor creates a Compositor for frames of the given size, cleared to background.
//
// Parameters:
//   - width: frame width in pixels
//   - height: frame height in pixels
//   - background: fill color for every new frame (nil means opaque black)
//
// Returns:
//   - *Compositor: the compositor, with an empty back buffer ready for drawing
func NewCompositor(width, height int, background color.Color) *Compositor {
	if background == nil {
		background = color.Black
	}
	c := &Compositor{
		width:      width,
		height:     height,
		background: image.NewUniform(background),
		scaler:     draw.ApproxBiLinear,
		back:       image.NewRGBA(image.Rect(0, 0, width, height)),
		front:      image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	c.clear(c.back)
	c.clear(c.front)
	return c
}

// Size returns the frame size in pixels.
func (c *Compositor) Size() (int, int) {
	return c.width, c.height
}

// SetBackground changes the fill color used from the next frame on.
func (c *Compositor) SetBackground(background color.Color) {
	c.background = image.NewUniform(background)
}

// SetScaler overrides the interpolation used by SetImage. Defaults to draw.ApproxBiLinear.
func (c *Compositor) SetScaler(s draw.Scaler) {
	c.scaler = s
}

// SetImage scales img over the whole back buffer.
//
// Parameters:
//   - img: the frame source image; nil is ignored
func (c *Compositor) SetImage(img image.Image) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	if img.Bounds().Dx() == c.width && img.Bounds().Dy() == c.height {
		draw.Draw(c.back, c.back.Bounds(), img, img.Bounds().Min, draw.Over)
		return
	}
	c.scaler.Scale(c.back, c.back.Bounds(), img, img.Bounds(), draw.Over, nil)
}

// DrawPoints fills a circle of the given radius, in pixels, at every normalized position.
//
// Parameters:
//   - points: normalized centers, origin at the bottom-left
//   - col: fill color
//   - radius: circle radius in pixels
//
// Returns:
//   - error: error if rasterization fails
func (c *Compositor) DrawPoints(points []mgl32.Vec2, col color.Color, radius float32) error {
	if len(points) == 0 {
		return nil
	}
	dc := gg.NewContextForImage(c.back)
	defer dc.Close()

	dc.SetColor(col)
	r := float64(radius)
	for _, p := range points {
		x := float64(p.X()) * float64(c.width)
		y := (1 - float64(p.Y())) * float64(c.height)
		dc.DrawCircle(x, y, r)
	}
	if err := dc.Fill(); err != nil {
		return err
	}

	out := dc.Image()
	if rgba, ok := out.(*image.RGBA); ok && rgba.Rect == c.back.Rect {
		c.back = rgba
	} else {
		draw.Draw(c.back, c.back.Bounds(), out, out.Bounds().Min, draw.Src)
	}
	return nil
}

// Present swaps the buffers: the assembled frame becomes Frame and a fresh cleared buffer is
// prepared for the next one.
//
// Returns:
//   - *image.RGBA: the frame that was just presented
func (c *Compositor) Present() *image.RGBA {
	c.back, c.front = c.front, c.back
	c.clear(c.back)
	return c.front
}

// Frame returns the last presented frame. The buffer is reused two frames later; copy it to keep it.
func (c *Compositor) Frame() *image.RGBA {
	return c.front
}

func (c *Compositor) clear(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), c.background, image.Point{}, draw.Src)
}
