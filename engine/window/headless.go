package window

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// Headless is a Display without a window. Frames are composited in memory and can be written as
// screenshots or fed to an encoder; input comes from a script or from Inject.
// Inject and SetCursor may be called from any goroutine.
type Headless struct {
	mu *sync.Mutex

	title      string
	open       bool
	compositor *renderer.Compositor

	cursorX, cursorY float32
	pending          []Event
	script           [][]Event
	polls            int

	uniforms  []byte
	presented int
}

var _ Display = &Headless{}
var _ UniformWriter = &Headless{}

// NewHeadless creates a Headless display with the provided options.
//
// Parameters:
//   - options: functional options (initial cursor, scripted events)
//
// Returns:
//   - *Headless: the display, not yet opened
func NewHeadless(options ...HeadlessBuilderOption) *Headless {
	h := &Headless{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *Headless) Open(title string, width, height int, background color.Color) error {
	if h.open {
		return errors.New("headless display is already open")
	}
	if width <= 0 || height <= 0 {
		return errors.New("headless display needs a positive resolution")
	}
	h.title = title
	h.compositor = renderer.NewCompositor(width, height, background)
	h.open = true
	return nil
}

// Inject queues events for the next PollEvents call.
func (h *Headless) Inject(events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, events...)
}

// SetCursor sets the position returned by CursorPos.
func (h *Headless) SetCursor(x, y float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cursorX, h.cursorY = x, y
}

func (h *Headless) PollEvents() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	var events []Event
	if h.polls < len(h.script) {
		events = append(events, h.script[h.polls]...)
	}
	h.polls++
	events = append(events, h.pending...)
	h.pending = h.pending[:0]
	return events
}

func (h *Headless) CursorPos() (float32, float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursorX, h.cursorY
}

func (h *Headless) SetImage(img image.Image) {
	if h.compositor != nil {
		h.compositor.SetImage(img)
	}
}

func (h *Headless) DrawPoints(points []mgl32.Vec2, c color.Color, radius float32) error {
	if h.compositor == nil {
		return errors.New("headless display is not open")
	}
	return h.compositor.DrawPoints(points, c, radius)
}

func (h *Headless) Present(screenshotPath string) error {
	if h.compositor == nil {
		return errors.New("headless display is not open")
	}
	frame := h.compositor.Present()
	h.presented++
	if screenshotPath != "" {
		return savePNG(screenshotPath, frame)
	}
	return nil
}

func (h *Headless) Frame() image.Image {
	if h.compositor == nil {
		return nil
	}
	return h.compositor.Frame()
}

func (h *Headless) WriteUniforms(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uniforms = append(h.uniforms[:0], data...)
}

// Uniforms returns a copy of the last uniform block written to the display.
func (h *Headless) Uniforms() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]byte(nil), h.uniforms...)
}

// Presented returns the number of frames presented so far.
func (h *Headless) Presented() int {
	return h.presented
}

// Title returns the title passed to Open.
func (h *Headless) Title() string {
	return h.title
}

// IsOpen reports whether the display is open.
func (h *Headless) IsOpen() bool {
	return h.open
}

func (h *Headless) Close() error {
	if !h.open {
		return errors.New("headless display is not open")
	}
	h.open = false
	return nil
}
