package window

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// EventType tags a raw input event.
type EventType int

const (
	// EventPress is a key or pointer button going down.
	EventPress EventType = iota
	// EventRelease is a key or pointer button going up.
	EventRelease
	// EventMotion is a cursor movement.
	EventMotion
)

func (t EventType) String() string {
	switch t {
	case EventPress:
		return "Press"
	case EventRelease:
		return "Release"
	case EventMotion:
		return "Motion"
	}
	return "Unknown"
}

// Event is one raw input event as delivered by a Display, in the order it was queued.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// Key is the key or pointer button for press and release events; KeyUnknown for motion.
	Key common.Key
	// X and Y are the normalized cursor position at the time of the event.
	X, Y float32
}

// Display provides the window or offscreen surface an animation presents to.
// A Display is opened once, polled and presented from a single goroutine, then closed.
type Display interface {
	// Open creates the surface.
	//
	// Parameters:
	//   - title: the window title
	//   - width: frame width in pixels
	//   - height: frame height in pixels
	//   - background: the color every frame starts from
	//
	// Returns:
	//   - error: error if the surface cannot be created
	Open(title string, width, height int, background color.Color) error

	// PollEvents returns the events queued since the last call. It never blocks waiting for input.
	//
	// Returns:
	//   - []Event: the pending events, possibly empty
	PollEvents() []Event

	// CursorPos returns the current normalized cursor position.
	CursorPos() (x, y float32)

	// SetImage draws img scaled over the frame being assembled.
	SetImage(img image.Image)

	// DrawPoints draws a filled circle per normalized position on the frame being assembled.
	//
	// Parameters:
	//   - points: normalized centers
	//   - c: fill color
	//   - radius: radius in pixels
	//
	// Returns:
	//   - error: error if rasterization fails
	DrawPoints(points []mgl32.Vec2, c color.Color, radius float32) error

	// Present shows the assembled frame and starts a new one. When screenshotPath is not empty
	// the frame is also written there as PNG.
	//
	// Parameters:
	//   - screenshotPath: destination PNG file, or "" for none
	//
	// Returns:
	//   - error: error if presenting or writing the screenshot fails
	Present(screenshotPath string) error

	// Frame returns the last presented frame. The image is only valid until the next Present.
	Frame() image.Image

	// Close releases the surface.
	//
	// Returns:
	//   - error: error if the display was not open
	Close() error
}

// UniformWriter is implemented by displays that can mirror the input uniform block into GPU memory.
type UniformWriter interface {
	// WriteUniforms uploads the raw uniform block.
	WriteUniforms(data []byte)
}

// GPUDisplay is implemented by displays that present through a GPU renderer. It gives hooks access
// to the present mode and to the input uniform buffer bound for user kernels.
type GPUDisplay interface {
	// Renderer returns the renderer of an open display, or nil before Open and after Close.
	Renderer() renderer.Renderer
}

// savePNG writes img to path, creating parent directories as needed.
func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
