package engine

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
)

// AnimationBuilderOption is a functional option for configuring an Animation.
// Use the With* functions to create options that are applied directly to the animation instance.
type AnimationBuilderOption func(*animation)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title (default "Animation")
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithTitle(title string) AnimationBuilderOption {
	return func(a *animation) {
		a.title = title
	}
}

// WithDisplay sets a custom display for the animation to use rather than the GLFW window it creates
// by default. The animation takes ownership and closes it on teardown.
//
// Parameters:
//   - d: an unopened Display
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithDisplay(d window.Display) AnimationBuilderOption {
	return func(a *animation) {
		a.display = d
	}
}

// WithImage sets the image frame source, scaled to the resolution every frame.
//
// Parameters:
//   - img: the image buffer; the producer may mutate it between frames
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithImage(img image.Image) AnimationBuilderOption {
	return func(a *animation) {
		a.image = img
	}
}

// WithPoints sets the point frame source, drawn over the image every frame.
//
// Parameters:
//   - points: the point set; the producer may mutate it between frames
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithPoints(points *common.PointSet) AnimationBuilderOption {
	return func(a *animation) {
		a.points = points
	}
}

// WithPointColor sets the fill color of the point overlay.
//
// Parameters:
//   - c: the color (default opaque white)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithPointColor(c color.Color) AnimationBuilderOption {
	return func(a *animation) {
		if c != nil {
			a.pointColor = c
		}
	}
}

// WithPointRadius sets the point radius in pixels.
//
// Parameters:
//   - radius: the radius (default 1)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithPointRadius(radius float32) AnimationBuilderOption {
	return func(a *animation) {
		a.pointRadius = radius
	}
}

// WithBackgroundColor sets the color every frame starts from.
//
// Parameters:
//   - c: the color (default opaque black)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithBackgroundColor(c color.Color) AnimationBuilderOption {
	return func(a *animation) {
		if c != nil {
			a.background = c
		}
	}
}

// WithResolution sets the frame size. Without it the image bounds are used, else 512x512.
//
// Parameters:
//   - width: frame width in pixels
//   - height: frame height in pixels
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithResolution(width, height int) AnimationBuilderOption {
	return func(a *animation) {
		a.width, a.height = width, height
	}
}

// WithScreenshotDirectory writes every presented frame to dir as <frame:06d>.png.
//
// Parameters:
//   - dir: the screenshot directory, created on first use
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithScreenshotDirectory(dir string) AnimationBuilderOption {
	return func(a *animation) {
		a.screenshotDir = dir
	}
}

// WithOutputVideo records every presented frame into a video finalized when the animation ends.
// The format follows the extension: .gif or .mp4. Anything else makes NewAnimation fail with
// encoder.ErrUnsupportedFormat.
//
// Parameters:
//   - path: the output video path
//   - frameRate: playback frames per second (values <= 0 default to 24)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithOutputVideo(path string, frameRate int) AnimationBuilderOption {
	return func(a *animation) {
		a.outputPath = path
		a.frameRate = common.Coalesce(max(frameRate, 0), defaultFrameRate)
	}
}

// WithEncoderOpener replaces the function that opens the video sink.
//
// Parameters:
//   - open: the opener (default encoder.NewVideoManager)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithEncoderOpener(open EncoderOpener) AnimationBuilderOption {
	return func(a *animation) {
		if open != nil {
			a.openEncoder = open
		}
	}
}

// WithFinalizeContext sets the context passed to the video sink's Finalize.
//
// Parameters:
//   - ctx: the context (default context.Background())
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithFinalizeContext(ctx context.Context) AnimationBuilderOption {
	return func(a *animation) {
		if ctx != nil {
			a.finalizeCtx = ctx
		}
	}
}

// WithEscapeKey sets the key that fires OnEscape.
//
// Parameters:
//   - key: the escape key (default common.KeyEscape)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithEscapeKey(key common.Key) AnimationBuilderOption {
	return func(a *animation) {
		a.escapeKey = key
	}
}

// WithCloseKey sets the key identifier the display reports for a window-close request.
//
// Parameters:
//   - key: the close key (default common.KeyWindowClose)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithCloseKey(key common.Key) AnimationBuilderOption {
	return func(a *animation) {
		a.closeKey = key
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, logs frame rate and memory statistics
//   - options: options for the profiler
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithProfiling(enabled bool, options ...profiler.ProfilerBuilderOption) AnimationBuilderOption {
	return func(a *animation) {
		a.profilingEnabled = enabled
		a.profiler = nil
		if enabled {
			a.profiler = profiler.NewProfiler(options...)
		}
	}
}

// WithClock replaces the time source used for Time and the iTime input.
//
// Parameters:
//   - clock: returns the current time (default time.Now)
//
// Returns:
//   - AnimationBuilderOption: option function to apply
func WithClock(clock func() time.Time) AnimationBuilderOption {
	return func(a *animation) {
		if clock != nil {
			a.clock = clock
		}
	}
}
