package engine

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
)

func TestInputBlockLayout(t *testing.T) {
	s := newInputState()
	s.Activate()
	s.update(1.5, 7, mgl32.Vec2{0.25, 0.75})

	b, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("block is %d bytes, want 16", len(b))
	}
	le := binary.LittleEndian
	got := []float64{
		float64(math.Float32frombits(le.Uint32(b[0:]))),
		float64(int32(le.Uint32(b[4:]))),
		float64(math.Float32frombits(le.Uint32(b[8:]))),
		float64(math.Float32frombits(le.Uint32(b[12:]))),
	}
	if diff := cmp.Diff([]float64{1.5, 7, 0.25, 0.75}, got); diff != "" {
		t.Errorf("unexpected block (-want +got):\n%s", diff)
	}
}

func TestInputNotActivated(t *testing.T) {
	s := newInputState()
	checks := map[string]func() error{
		CellTime:  func() error { _, err := s.Time.Host(); return err },
		CellFrame: func() error { _, err := s.Frame.Host(); return err },
		CellMouse: func() error { _, err := s.Mouse.Host(); return err },
		"device":  func() error { _, err := s.Frame.Device(); return err },
		"inputs":  func() error { _, err := s.Bytes(); return err },
	}
	for name, read := range checks {
		err := read()
		if !errors.Is(err, ErrNotActivated) {
			t.Errorf("%s: error = %v, want ErrNotActivated", name, err)
			continue
		}
		var nae *NotActivatedError
		if !errors.As(err, &nae) || nae.Cell == "" {
			t.Errorf("%s: error does not name the cell: %v", name, err)
		}
	}
	if s.Time.State() != CellInactive || s.Active() {
		t.Error("fresh input state is active")
	}
}

func TestInputHostDeviceAgree(t *testing.T) {
	s := newInputState()
	s.Activate()
	s.Activate()
	if s.Mouse.State() != CellActive {
		t.Fatalf("Mouse state = %v, want Active", s.Mouse.State())
	}

	dev, err := s.Frame.Device()
	if err != nil {
		t.Fatalf("Device: %v", err)
	}
	for _, frame := range []int32{0, 1, 42, -3} {
		s.update(0, frame, mgl32.Vec2{})
		host, err := s.Frame.Host()
		if err != nil {
			t.Fatalf("Host: %v", err)
		}
		// The device view was taken once and still sees every update.
		if got := int32(binary.LittleEndian.Uint32(dev)); got != host || host != frame {
			t.Errorf("frame %d: host %d, device %d", frame, host, got)
		}
	}

	mouseDev, err := s.Mouse.Device()
	if err != nil {
		t.Fatalf("Device: %v", err)
	}
	s.update(0, 0, mgl32.Vec2{0.5, 0.125})
	host, _ := s.Mouse.Host()
	dev2 := mgl32.Vec2{
		math.Float32frombits(binary.LittleEndian.Uint32(mouseDev[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(mouseDev[4:])),
	}
	if host != dev2 {
		t.Errorf("mouse host %v, device %v", host, dev2)
	}
}
