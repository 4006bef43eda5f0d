package engine

import "github.com/Carmen-Shannon/oxy-anim/common"

// Hooks is the table of callbacks an Animation invokes. Every slot is optional: a nil slot does
// nothing, except OnEscape and OnClose which stop the animation when nil.
//
// Hooks run synchronously on the goroutine that called Start. An error returned by a hook is
// returned unmodified from NewAnimation or Start and aborts the loop without teardown; use
// Animation.Close to release resources in that case.
type Hooks struct {
	// OnInit runs once inside NewAnimation, before any frame.
	OnInit func(a Animation) error
	// OnPreStart runs once inside Start, right before the display is opened.
	OnPreStart func(a Animation) error
	// OnPreEvent runs at the top of every frame, before events are polled.
	OnPreEvent func(a Animation) error
	// OnAdvance runs every frame after event dispatch, before inputs are refreshed.
	OnAdvance func(a Animation) error
	// OnRender runs every frame after inputs are refreshed; it should fill the frame sources.
	OnRender func(a Animation) error
	// OnShow runs every frame after the frame sources reach the display, before presenting.
	OnShow func(a Animation) error
	// OnPreExit runs once when the loop ends, after the video is finalized and before the display closes.
	OnPreExit func(a Animation) error
	// OnExit runs once after the display is closed.
	OnExit func(a Animation) error

	// OnPress and OnRelease receive keyboard keys, including the escape and close keys.
	OnPress   func(a Animation, key common.Key) error
	OnRelease func(a Animation, key common.Key) error

	// OnClick and OnUnclick receive pointer button presses and releases at a normalized position.
	OnClick   func(a Animation, x, y float32, button common.Key) error
	OnUnclick func(a Animation, x, y float32, button common.Key) error
	// OnDrag runs once per held pointer button for every cursor motion.
	OnDrag func(a Animation, x, y float32, button common.Key) error
	// OnHover runs for cursor motion with no pointer button held.
	OnHover func(a Animation, x, y float32) error

	// OnEscape runs before OnPress when the escape key is pressed. Stops the animation when nil.
	OnEscape func(a Animation) error
	// OnClose runs before OnPress when the window is asked to close. Stops the animation when nil.
	OnClose func(a Animation) error
}

func run(fn func(Animation) error, a Animation) error {
	if fn == nil {
		return nil
	}
	return fn(a)
}

func (h *Hooks) escape(a Animation) error {
	if h.OnEscape == nil {
		a.Stop()
		return nil
	}
	return h.OnEscape(a)
}

func (h *Hooks) close(a Animation) error {
	if h.OnClose == nil {
		a.Stop()
		return nil
	}
	return h.OnClose(a)
}

func (h *Hooks) press(a Animation, key common.Key) error {
	if h.OnPress == nil {
		return nil
	}
	return h.OnPress(a, key)
}

func (h *Hooks) release(a Animation, key common.Key) error {
	if h.OnRelease == nil {
		return nil
	}
	return h.OnRelease(a, key)
}

func (h *Hooks) click(a Animation, x, y float32, button common.Key) error {
	if h.OnClick == nil {
		return nil
	}
	return h.OnClick(a, x, y, button)
}

func (h *Hooks) unclick(a Animation, x, y float32, button common.Key) error {
	if h.OnUnclick == nil {
		return nil
	}
	return h.OnUnclick(a, x, y, button)
}

func (h *Hooks) drag(a Animation, x, y float32, button common.Key) error {
	if h.OnDrag == nil {
		return nil
	}
	return h.OnDrag(a, x, y, button)
}

func (h *Hooks) hover(a Animation, x, y float32) error {
	if h.OnHover == nil {
		return nil
	}
	return h.OnHover(a, x, y)
}
