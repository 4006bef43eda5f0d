package engine

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
)

// dispatch routes one raw event to its hooks. Pointer buttons held between a press and its release
// are tracked here so motion can be classified as a drag or a hover.
func (a *animation) dispatch(ev window.Event) error {
	h := &a.hooks
	switch ev.Type {
	case window.EventPress:
		if ev.Key.IsPointer() {
			a.held[ev.Key] = true
			return h.click(a, ev.X, ev.Y, ev.Key)
		}
		// The specialized hooks fire before the generic press.
		if ev.Key == a.escapeKey {
			if err := h.escape(a); err != nil {
				return err
			}
		}
		if ev.Key == a.closeKey {
			if err := h.close(a); err != nil {
				return err
			}
		}
		return h.press(a, ev.Key)

	case window.EventRelease:
		if ev.Key.IsPointer() {
			delete(a.held, ev.Key)
			return h.unclick(a, ev.X, ev.Y, ev.Key)
		}
		return h.release(a, ev.Key)

	case window.EventMotion:
		dragged := false
		for _, btn := range common.PointerButtons {
			if !a.held[btn] {
				continue
			}
			dragged = true
			if err := h.drag(a, ev.X, ev.Y, btn); err != nil {
				return err
			}
		}
		if !dragged {
			return h.hover(a, ev.X, ev.Y)
		}
	}
	return nil
}
