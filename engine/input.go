package engine

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CellState is the activation state of one input cell. Activation is one way.
type CellState int

const (
	// CellInactive cells fail every read with ErrNotActivated.
	CellInactive CellState = iota
	// CellActive cells hold the value written at the last input refresh.
	CellActive
)

func (s CellState) String() string {
	switch s {
	case CellInactive:
		return "Inactive"
	case CellActive:
		return "Active"
	}
	return "Unknown"
}

// Names of the input cells, as reported by NotActivatedError.
const (
	CellTime  = "iTime"
	CellFrame = "iFrame"
	CellMouse = "iMouse"
)

// inputBlock is the backing storage of every input cell. Its layout matches the WGSL struct
//
//	struct Inputs { time: f32, frame: i32, mouse: vec2<f32> }
//
// which is 16 bytes under both std140 and WGSL uniform rules.
type inputBlock struct {
	Time  float32
	Frame int32
	Mouse mgl32.Vec2
}

// Uniform is one input value readable from the host and, as raw bytes, from the device.
// Both paths read the same memory inside the shared input block.
type Uniform[T any] struct {
	name  string
	state CellState
	value *T
}

// Name returns the cell name used in shaders and errors.
func (u *Uniform[T]) Name() string {
	return u.name
}

// State returns whether the cell has been activated.
func (u *Uniform[T]) State() CellState {
	return u.state
}

// Host returns the value for host code.
//
// Returns:
//   - T: the value written at the last input refresh
//   - error: *NotActivatedError if the cell is inactive
func (u *Uniform[T]) Host() (T, error) {
	if u.state != CellActive {
		var zero T
		return zero, &NotActivatedError{Cell: u.name}
	}
	return *u.value, nil
}

// Device returns the cell's bytes as uploaded to GPU memory. The slice aliases the backing block,
// so it always agrees with Host.
//
// Returns:
//   - []byte: view of the cell's memory
//   - error: *NotActivatedError if the cell is inactive
func (u *Uniform[T]) Device() ([]byte, error) {
	if u.state != CellActive {
		return nil, &NotActivatedError{Cell: u.name}
	}
	return common.StructToBytes(u.value), nil
}

// InputState holds the per-frame uniform inputs: seconds since start, frame index and cursor position.
type InputState struct {
	block *inputBlock

	Time  *Uniform[float32]
	Frame *Uniform[int32]
	Mouse *Uniform[mgl32.Vec2]
}

func newInputState() *InputState {
	b := &inputBlock{}
	return &InputState{
		block: b,
		Time:  &Uniform[float32]{name: CellTime, value: &b.Time},
		Frame: &Uniform[int32]{name: CellFrame, value: &b.Frame},
		Mouse: &Uniform[mgl32.Vec2]{name: CellMouse, value: &b.Mouse},
	}
}

// Activate makes every cell readable. Calling it again has no effect.
func (s *InputState) Activate() {
	s.Time.state = CellActive
	s.Frame.state = CellActive
	s.Mouse.state = CellActive
}

// Active reports whether the cells have been activated.
func (s *InputState) Active() bool {
	return s.Time.state == CellActive
}

// Bytes returns the whole input block for a GPU uniform upload. The slice aliases the block.
//
// Returns:
//   - []byte: 16 bytes laid out as time, frame, mouse.x, mouse.y
//   - error: *NotActivatedError if the input state is inactive
func (s *InputState) Bytes() ([]byte, error) {
	if !s.Active() {
		return nil, &NotActivatedError{Cell: "inputs"}
	}
	return common.StructToBytes(s.block), nil
}

func (s *InputState) update(seconds float32, frame int32, mouse mgl32.Vec2) {
	s.block.Time = seconds
	s.block.Frame = frame
	s.block.Mouse = mouse
}
