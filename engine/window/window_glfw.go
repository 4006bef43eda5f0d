package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// glfwDisplay is a Display backed by a GLFW window presenting through the wgpu renderer.
type glfwDisplay struct {
	scale           int
	resizable       bool
	rendererOptions []renderer.RendererBuilderOption

	window     *glfw.Window
	renderer   renderer.Renderer
	compositor *renderer.Compositor

	// events is filled by GLFW callbacks during glfw.PollEvents and drained by PollEvents.
	events []Event
}

var _ Display = &glfwDisplay{}
var _ UniformWriter = &glfwDisplay{}
var _ GPUDisplay = &glfwDisplay{}

// NewWindow creates a GLFW-backed Display with the specified options.
// No platform resources are created until Open.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Display: the configured display (not yet opened)
func NewWindow(options ...WindowBuilderOption) Display {
	w := &glfwDisplay{
		scale: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Open creates the GLFW window with input callbacks, the wgpu renderer and the frame compositor.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func (w *glfwDisplay) Open(title string, width, height int, background color.Color) error {
	if w.window != nil {
		return errors.New("window is already open")
	}
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if w.resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(width*w.scale, height*w.scale, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	w.window = win

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		x, y := w.CursorPos()
		switch action {
		case glfw.Press:
			w.events = append(w.events, Event{Type: EventPress, Key: common.Key(key), X: x, Y: y})
		case glfw.Release:
			w.events = append(w.events, Event{Type: EventRelease, Key: common.Key(key), X: x, Y: y})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button > glfw.MouseButtonMiddle {
			return
		}
		btn := common.MouseLeft + common.Key(button)
		x, y := w.CursorPos()
		switch action {
		case glfw.Press:
			w.events = append(w.events, Event{Type: EventPress, Key: btn, X: x, Y: y})
		case glfw.Release:
			w.events = append(w.events, Event{Type: EventRelease, Key: btn, X: x, Y: y})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		x, y := w.normalize(xpos, ypos)
		w.events = append(w.events, Event{Type: EventMotion, Key: common.KeyUnknown, X: x, Y: y})
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		if w.renderer != nil {
			w.renderer.Resize(fbWidth, fbHeight)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, wgpuglfw.GetSurfaceDescriptor(win), fbWidth, fbHeight, w.rendererOptions...)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		w.window = nil
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	w.renderer = r
	w.compositor = renderer.NewCompositor(width, height, background)
	return nil
}

// normalize maps window coordinates to [0, 1] with the origin at the bottom-left.
func (w *glfwDisplay) normalize(xpos, ypos float64) (float32, float32) {
	width, height := w.window.GetSize()
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return float32(xpos / float64(width)), float32(1 - ypos/float64(height))
}

// PollEvents polls GLFW for pending events without blocking and returns everything the callbacks queued.
// A close request from the platform is reported as a press of common.KeyWindowClose and the close flag
// is cleared, so the animation decides whether to stop.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (w *glfwDisplay) PollEvents() []Event {
	if w.window == nil {
		return nil
	}
	glfw.PollEvents()

	if w.window.ShouldClose() {
		x, y := w.CursorPos()
		w.events = append(w.events, Event{Type: EventPress, Key: common.KeyWindowClose, X: x, Y: y})
		w.window.SetShouldClose(false)
	}

	events := w.events
	w.events = nil
	return events
}

func (w *glfwDisplay) CursorPos() (float32, float32) {
	if w.window == nil {
		return 0, 0
	}
	return w.normalize(w.window.GetCursorPos())
}

func (w *glfwDisplay) SetImage(img image.Image) {
	if w.compositor != nil {
		w.compositor.SetImage(img)
	}
}

func (w *glfwDisplay) DrawPoints(points []mgl32.Vec2, c color.Color, radius float32) error {
	if w.compositor == nil {
		return errors.New("window is not initialized")
	}
	return w.compositor.DrawPoints(points, c, radius)
}

func (w *glfwDisplay) Present(screenshotPath string) error {
	if w.compositor == nil {
		return errors.New("window is not initialized")
	}
	frame := w.compositor.Present()
	if err := w.renderer.Present(frame); err != nil {
		return err
	}
	if screenshotPath != "" {
		return savePNG(screenshotPath, frame)
	}
	return nil
}

func (w *glfwDisplay) Frame() image.Image {
	if w.compositor == nil {
		return nil
	}
	return w.compositor.Frame()
}

func (w *glfwDisplay) WriteUniforms(data []byte) {
	if w.renderer != nil {
		w.renderer.WriteUniforms(data)
	}
}

func (w *glfwDisplay) Renderer() renderer.Renderer {
	return w.renderer
}

// Close releases the renderer, destroys the GLFW window and terminates the GLFW library.
// Returns an error if the window has not been opened.
func (w *glfwDisplay) Close() error {
	if w.window == nil {
		return errors.New("window is not initialized")
	}
	if w.renderer != nil {
		w.renderer.Release()
		w.renderer = nil
	}
	w.window.Destroy()
	glfw.Terminate()
	w.window = nil
	w.compositor = nil
	w.events = nil
	return nil
}
