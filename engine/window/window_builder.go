package window

import "github.com/Carmen-Shannon/oxy-anim/engine/renderer"

// WindowBuilderOption is a functional option for configuring a GLFW display.
// Use the With* functions to create options.
type WindowBuilderOption func(w *glfwDisplay)

// WithResizable sets whether the user may resize the window. Frames are scaled to the framebuffer.
//
// Parameters:
//   - resizable: true to allow resizing (default false)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithResizable(resizable bool) WindowBuilderOption {
	return func(w *glfwDisplay) {
		w.resizable = resizable
	}
}

// WithScale sets an integer scale factor between the frame size and the initial window size.
//
// Parameters:
//   - scale: window pixels per frame pixel (values < 1 are treated as 1)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithScale(scale int) WindowBuilderOption {
	return func(w *glfwDisplay) {
		w.scale = max(scale, 1)
	}
}

// WithRendererOptions forwards options to the wgpu renderer created when the window opens.
//
// Parameters:
//   - options: renderer options (present mode, software adapter, clear color)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) WindowBuilderOption {
	return func(w *glfwDisplay) {
		w.rendererOptions = append(w.rendererOptions, options...)
	}
}

// HeadlessBuilderOption is a functional option for configuring a Headless display.
type HeadlessBuilderOption func(h *Headless)

// WithCursor sets the initial cursor position reported by a Headless display.
//
// Parameters:
//   - x, y: normalized cursor position
//
// Returns:
//   - HeadlessBuilderOption: option function to apply
func WithCursor(x, y float32) HeadlessBuilderOption {
	return func(h *Headless) {
		h.cursorX, h.cursorY = x, y
	}
}

// WithScript queues events per poll: script[i] is returned by the i-th call to PollEvents.
//
// Parameters:
//   - script: event batches in poll order
//
// Returns:
//   - HeadlessBuilderOption: option function to apply
func WithScript(script ...[]Event) HeadlessBuilderOption {
	return func(h *Headless) {
		h.script = append(h.script, script...)
	}
}
