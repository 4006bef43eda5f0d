package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/encoder"
	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the lifecycle state of an Animation.
type State int

const (
	// StateCreated: hooks registered, no display open.
	StateCreated State = iota
	// StateStarted: Start was called; the display is being opened.
	StateStarted
	// StateRunning: the frame loop is iterating.
	StateRunning
	// StateStopping: the loop has ended and teardown is in progress.
	StateStopping
	// StateClosed: teardown finished. Terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateStarted:
		return "Started"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateClosed:
		return "Closed"
	}
	return "Unknown"
}

// EncoderOpener opens the video sink for an output path. The default is encoder.NewVideoManager.
type EncoderOpener func(path string, frameRate int) (encoder.VideoManager, error)

const (
	defaultTitle     = "Animation"
	defaultSize      = 512
	defaultFrameRate = 24
)

// animation implements the Animation interface.
// All fields are owned by the goroutine running Start; only the running flag is shared.
type animation struct {
	title string
	hooks Hooks
	state State

	display window.Display
	opened  bool

	// frame sources, borrowed from the caller
	image  image.Image
	points *common.PointSet

	pointColor    color.Color
	pointRadius   float32
	background    color.Color
	width, height int

	screenshotDir string

	outputPath    string
	frameRate     int
	openEncoder   EncoderOpener
	encoder       encoder.VideoManager
	finalized     bool
	finalizeCtx   context.Context
	encoderFrames int

	escapeKey common.Key
	closeKey  common.Key
	held      map[common.Key]bool

	running   atomic.Bool
	clock     func() time.Time
	startTime time.Time
	elapsed   float32
	frame     int
	mouse     mgl32.Vec2
	input     *InputState

	profiler         *profiler.Profiler
	profilingEnabled bool
}

// Animation drives a presentation loop: it owns a display, dispatches its input events to the hook
// table, refreshes the uniform inputs and presents the frame sources every frame, optionally
// recording the presented frames to a video or to screenshots.
type Animation interface {
	// Title returns the window title.
	Title() string

	// Resolution returns the frame size in pixels: the configured resolution, else the image
	// bounds, else 512x512.
	//
	// Returns:
	//   - int: frame width
	//   - int: frame height
	Resolution() (int, int)

	// State returns the lifecycle state.
	State() State

	// Running reports whether the loop will begin another frame.
	Running() bool

	// FrameIndex returns the number of frames completed so far.
	FrameIndex() int

	// Time returns the seconds elapsed since Start as sampled at the current frame's input refresh,
	// the same value iTime holds. OnPreEvent and OnAdvance see the previous frame's sample. It is 0
	// before the first frame.
	Time() float32

	// Mouse returns the normalized cursor position polled at the last input refresh.
	Mouse() mgl32.Vec2

	// Input returns the uniform input state. Its cells fail with ErrNotActivated until DefineInput.
	Input() *InputState

	// DefineInput activates the uniform inputs. Call it from OnInit so the first frame has them.
	DefineInput()

	// Display returns the display, or nil once the animation is closed. GPU-backed displays also
	// implement window.GPUDisplay, which reaches the renderer's present mode and input uniform buffer.
	Display() window.Display

	// Encoder returns the video sink, or nil when no output video is configured.
	Encoder() encoder.VideoManager

	// SetImage replaces the image frame source. nil disables it.
	SetImage(img image.Image)

	// SetPoints replaces the point frame source. nil disables it.
	SetPoints(points *common.PointSet)

	// SetPointStyle sets the color and the pixel radius of the point overlay.
	SetPointStyle(c color.Color, radius float32)

	// SetBackgroundColor sets the frame background. Takes effect when the display is opened.
	SetBackgroundColor(c color.Color)

	// SetScreenshotDirectory enables per-frame screenshots named <frame:06d>.png. "" disables them.
	SetScreenshotDirectory(dir string)

	// Start opens the display and runs the frame loop until Stop is called, then finalizes the
	// video, closes the display and runs the exit hooks. It blocks for the whole animation.
	//
	// Returns:
	//   - error: ErrAlreadyStarted if the animation is not in StateCreated; otherwise the first
	//     hook, display or encoder error, unmodified. After an error the animation is left as is;
	//     call Close to release it.
	Start() error

	// Stop asks the loop to end. The frame in progress completes. Safe to call from any goroutine.
	Stop()

	// Close releases whatever a failed Start left behind: it finalizes the video if that has not
	// happened and closes an open display. It does nothing after a successful Start.
	//
	// Returns:
	//   - error: the joined finalize and close errors
	Close() error
}

var _ Animation = &animation{}

// NewAnimation creates an Animation with the given hooks and options, opens the video sink when an
// output video is configured and runs OnInit. The display is not opened until Start.
//
// Parameters:
//   - hooks: the hook table; zero value slots keep their defaults
//   - options: functional options for animation configuration
//
// Returns:
//   - Animation: the newly created animation
//   - error: an error matching encoder.ErrUnsupportedFormat for a bad output extension, an error
//     opening the encoder, or the OnInit error unmodified
func NewAnimation(hooks Hooks, options ...AnimationBuilderOption) (Animation, error) {
	a := &animation{
		title:       defaultTitle,
		hooks:       hooks,
		state:       StateCreated,
		pointColor:  color.White,
		pointRadius: 1,
		background:  color.Black,
		frameRate:   defaultFrameRate,
		openEncoder: func(path string, frameRate int) (encoder.VideoManager, error) {
			return encoder.NewVideoManager(path, frameRate)
		},
		finalizeCtx: context.Background(),
		escapeKey:   common.KeyEscape,
		closeKey:    common.KeyWindowClose,
		held:        make(map[common.Key]bool),
		clock:       time.Now,
		input:       newInputState(),
	}

	for _, opt := range options {
		opt(a)
	}

	if a.outputPath != "" {
		// Reject the extension before anything else is created.
		if _, err := encoder.ParseFormat(a.outputPath); err != nil {
			return nil, err
		}
		vm, err := a.openEncoder(a.outputPath, a.frameRate)
		if err != nil {
			return nil, err
		}
		a.encoder = vm
	}

	if a.display == nil {
		a.display = window.NewWindow()
	}
	if a.profilingEnabled && a.profiler == nil {
		a.profiler = profiler.NewProfiler()
	}

	if err := run(a.hooks.OnInit, a); err != nil {
		// The caller never gets a handle to Close, so discard the recording here.
		if a.encoder != nil {
			a.finalized = true
			if abortErr := a.encoder.Abort(); abortErr != nil {
				common.Logger().Warn("failed to discard video", "output", a.outputPath, "error", abortErr)
			}
		}
		return nil, err
	}
	return a, nil
}

func (a *animation) Title() string {
	return a.title
}

func (a *animation) Resolution() (int, int) {
	if a.width > 0 && a.height > 0 {
		return a.width, a.height
	}
	if a.image != nil && !a.image.Bounds().Empty() {
		return a.image.Bounds().Dx(), a.image.Bounds().Dy()
	}
	return defaultSize, defaultSize
}

func (a *animation) State() State {
	return a.state
}

func (a *animation) Running() bool {
	return a.running.Load()
}

func (a *animation) FrameIndex() int {
	return a.frame
}

func (a *animation) Time() float32 {
	return a.elapsed
}

func (a *animation) Mouse() mgl32.Vec2 {
	return a.mouse
}

func (a *animation) Input() *InputState {
	return a.input
}

func (a *animation) DefineInput() {
	a.input.Activate()
}

func (a *animation) Display() window.Display {
	return a.display
}

func (a *animation) Encoder() encoder.VideoManager {
	return a.encoder
}

func (a *animation) SetImage(img image.Image) {
	a.image = img
}

func (a *animation) SetPoints(points *common.PointSet) {
	a.points = points
}

func (a *animation) SetPointStyle(c color.Color, radius float32) {
	a.pointColor = c
	a.pointRadius = radius
}

func (a *animation) SetBackgroundColor(c color.Color) {
	a.background = c
}

func (a *animation) SetScreenshotDirectory(dir string) {
	a.screenshotDir = dir
}

func (a *animation) Stop() {
	a.running.Store(false)
}

func (a *animation) Start() error {
	if a.state != StateCreated {
		return ErrAlreadyStarted
	}
	a.state = StateStarted

	if err := run(a.hooks.OnPreStart, a); err != nil {
		return err
	}

	width, height := a.Resolution()
	if err := a.display.Open(a.title, width, height, a.background); err != nil {
		return err
	}
	a.opened = true
	a.running.Store(true)
	a.startTime = a.clock()
	a.state = StateRunning

	log := common.Logger().With("title", a.title)
	log.Info("animation started", "width", width, "height", height, "output", a.outputPath)

	for a.running.Load() {
		if err := a.step(); err != nil {
			log.Error("animation aborted", "frame", a.frame, "error", err)
			return err
		}
	}

	a.state = StateStopping
	if err := a.finalize(); err != nil {
		return err
	}
	if err := run(a.hooks.OnPreExit, a); err != nil {
		return err
	}
	if err := a.display.Close(); err != nil {
		return err
	}
	a.opened = false
	if err := run(a.hooks.OnExit, a); err != nil {
		return err
	}
	a.display = nil
	a.state = StateClosed

	log.Info("animation closed", "frames", a.frame, "elapsed", a.clock().Sub(a.startTime))
	return nil
}

// step runs one full frame. The running flag is only consulted between frames.
func (a *animation) step() error {
	if err := run(a.hooks.OnPreEvent, a); err != nil {
		return err
	}
	for _, ev := range a.display.PollEvents() {
		if err := a.dispatch(ev); err != nil {
			return err
		}
	}
	if err := run(a.hooks.OnAdvance, a); err != nil {
		return err
	}

	a.refreshInput()

	if err := run(a.hooks.OnRender, a); err != nil {
		return err
	}
	if a.image != nil {
		a.display.SetImage(a.image)
	}
	if a.points != nil {
		if err := a.display.DrawPoints(a.points.Positions, a.pointColor, a.pointRadius); err != nil {
			return err
		}
	}
	if err := run(a.hooks.OnShow, a); err != nil {
		return err
	}

	var screenshot string
	if a.screenshotDir != "" {
		screenshot = filepath.Join(a.screenshotDir, fmt.Sprintf("%06d.png", a.frame))
	}
	if err := a.display.Present(screenshot); err != nil {
		return err
	}
	if a.encoder != nil && !a.finalized {
		if err := a.encoder.WriteFrame(a.display.Frame()); err != nil {
			return err
		}
		a.encoderFrames++
	}

	a.frame++
	if a.profilingEnabled && a.profiler != nil {
		a.profiler.Tick()
	}
	return nil
}

// refreshInput samples the elapsed time and the cursor and, once inputs are active, writes time,
// frame and cursor into the input block and mirrors it to displays with a GPU uniform buffer.
func (a *animation) refreshInput() {
	a.elapsed = float32(a.clock().Sub(a.startTime).Seconds())
	x, y := a.display.CursorPos()
	a.mouse = mgl32.Vec2{x, y}
	if !a.input.Active() {
		return
	}
	a.input.update(a.elapsed, int32(a.frame), a.mouse)
	if uw, ok := a.display.(window.UniformWriter); ok {
		if data, err := a.input.Bytes(); err == nil {
			uw.WriteUniforms(data)
		}
	}
}

// finalize writes the video at most once per animation, whether from Start or from Close.
func (a *animation) finalize() error {
	if a.encoder == nil || a.finalized {
		return nil
	}
	a.finalized = true
	common.Logger().Debug("finalizing video", "output", a.outputPath, "frames", a.encoderFrames)
	return a.encoder.Finalize(a.finalizeCtx)
}

func (a *animation) Close() error {
	a.running.Store(false)
	if a.state == StateClosed {
		return nil
	}

	var errs []error
	if err := a.finalize(); err != nil {
		errs = append(errs, err)
	}
	if a.opened {
		a.opened = false
		if err := a.display.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.display = nil
	a.state = StateClosed
	return errors.Join(errs...)
}
