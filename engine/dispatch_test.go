package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
	"github.com/google/go-cmp/cmp"
)

// dispatchHooks records every input hook with its arguments.
func dispatchHooks(rec *recorder) Hooks {
	return Hooks{
		OnPress:   func(_ Animation, k common.Key) error { rec.add("press %s", k); return nil },
		OnRelease: func(_ Animation, k common.Key) error { rec.add("release %s", k); return nil },
		OnClick: func(_ Animation, x, y float32, b common.Key) error {
			rec.add("click %v %v %s", x, y, b)
			return nil
		},
		OnUnclick: func(_ Animation, x, y float32, b common.Key) error {
			rec.add("unclick %v %v %s", x, y, b)
			return nil
		},
		OnDrag: func(_ Animation, x, y float32, b common.Key) error {
			rec.add("drag %v %v %s", x, y, b)
			return nil
		},
		OnHover:  func(_ Animation, x, y float32) error { rec.add("hover %v %v", x, y); return nil },
		OnEscape: func(Animation) error { rec.add("escape"); return nil },
		OnClose:  func(Animation) error { rec.add("close_request"); return nil },
	}
}

func newDispatchAnimation(t *testing.T, hooks Hooks, options ...AnimationBuilderOption) *animation {
	t.Helper()
	options = append([]AnimationBuilderOption{WithDisplay(&fakeDisplay{rec: &recorder{}})}, options...)
	a, err := NewAnimation(hooks, options...)
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	return a.(*animation)
}

func press(k common.Key, x, y float32) window.Event {
	return window.Event{Type: window.EventPress, Key: k, X: x, Y: y}
}

func release(k common.Key, x, y float32) window.Event {
	return window.Event{Type: window.EventRelease, Key: k, X: x, Y: y}
}

func motion(x, y float32) window.Event {
	return window.Event{Type: window.EventMotion, Key: common.KeyUnknown, X: x, Y: y}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name   string
		events []window.Event
		want   []string
	}{
		{
			name:   "key press and release",
			events: []window.Event{press(common.KeyA, 0, 0), release(common.KeyA, 0, 0)},
			want:   []string{"press A", "release A"},
		},
		{
			name:   "escape fires before press",
			events: []window.Event{press(common.KeyEscape, 0, 0)},
			want:   []string{"escape", "press Escape"},
		},
		{
			name:   "close fires before press",
			events: []window.Event{press(common.KeyWindowClose, 0, 0)},
			want:   []string{"close_request", "press WMClose"},
		},
		{
			name:   "escape release is a plain release",
			events: []window.Event{release(common.KeyEscape, 0, 0)},
			want:   []string{"release Escape"},
		},
		{
			name:   "click and unclick",
			events: []window.Event{press(common.MouseLeft, 0.25, 0.5), release(common.MouseLeft, 0.75, 1)},
			want:   []string{"click 0.25 0.5 LMB", "unclick 0.75 1 LMB"},
		},
		{
			name:   "hover without buttons",
			events: []window.Event{motion(0.5, 0.5)},
			want:   []string{"hover 0.5 0.5"},
		},
		{
			name: "drag while held then hover after release",
			events: []window.Event{
				press(common.MouseRight, 0, 0),
				motion(0.25, 0.25),
				release(common.MouseRight, 0.25, 0.25),
				motion(0.5, 0.5),
			},
			want: []string{"click 0 0 RMB", "drag 0.25 0.25 RMB", "unclick 0.25 0.25 RMB", "hover 0.5 0.5"},
		},
		{
			name: "drag once per held button",
			events: []window.Event{
				press(common.MouseRight, 0, 0),
				press(common.MouseLeft, 0, 0),
				press(common.MouseMiddle, 0, 0),
				motion(1, 1),
			},
			want: []string{
				"click 0 0 RMB", "click 0 0 LMB", "click 0 0 MMB",
				"drag 1 1 LMB", "drag 1 1 MMB", "drag 1 1 RMB",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			a := newDispatchAnimation(t, dispatchHooks(rec))
			for _, ev := range tt.events {
				if err := a.dispatch(ev); err != nil {
					t.Fatalf("dispatch(%v): %v", ev, err)
				}
			}
			if diff := cmp.Diff(tt.want, rec.calls); diff != "" {
				t.Errorf("unexpected hooks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultEscapeAndCloseStop(t *testing.T) {
	for _, k := range []common.Key{common.KeyEscape, common.KeyWindowClose} {
		t.Run(k.String(), func(t *testing.T) {
			rec := &recorder{}
			hooks := dispatchHooks(rec)
			hooks.OnEscape, hooks.OnClose = nil, nil
			a := newDispatchAnimation(t, hooks)
			a.running.Store(true)
			if err := a.dispatch(press(k, 0, 0)); err != nil {
				t.Fatalf("dispatch: %v", err)
			}
			if a.Running() {
				t.Error("default hook did not stop the animation")
			}
			if diff := cmp.Diff([]string{fmt.Sprintf("press %s", k)}, rec.calls); diff != "" {
				t.Errorf("unexpected hooks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCustomEscapeKey(t *testing.T) {
	rec := &recorder{}
	a := newDispatchAnimation(t, dispatchHooks(rec), WithEscapeKey(common.KeyQ))
	for _, ev := range []window.Event{press(common.KeyEscape, 0, 0), press(common.KeyQ, 0, 0)} {
		if err := a.dispatch(ev); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}
	if diff := cmp.Diff([]string{"press Escape", "escape", "press Q"}, rec.calls); diff != "" {
		t.Errorf("unexpected hooks (-want +got):\n%s", diff)
	}
}

func TestDispatchErrorStopsHooks(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	hooks := dispatchHooks(rec)
	hooks.OnEscape = func(Animation) error { return boom }
	a := newDispatchAnimation(t, hooks)
	if err := a.dispatch(press(common.KeyEscape, 0, 0)); err != boom {
		t.Fatalf("dispatch error = %v, want the hook error", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("press ran after escape failed: %v", rec.calls)
	}
}

func TestNilHooksAreNoOps(t *testing.T) {
	a := newDispatchAnimation(t, Hooks{})
	events := []window.Event{
		press(common.KeyA, 0, 0), release(common.KeyA, 0, 0),
		press(common.MouseLeft, 0, 0), motion(0.5, 0.5), release(common.MouseLeft, 0, 0), motion(0, 0),
	}
	for _, ev := range events {
		if err := a.dispatch(ev); err != nil {
			t.Errorf("dispatch(%v): %v", ev, err)
		}
	}
}
