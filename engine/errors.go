package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotActivated is matched by every error returned for an input cell read before DefineInput.
	ErrNotActivated = errors.New("input not activated")

	// ErrAlreadyStarted is returned by Start on an animation that has already been started or closed.
	ErrAlreadyStarted = errors.New("animation already started")
)

// NotActivatedError reports which input cell was read before the input state was activated.
type NotActivatedError struct {
	Cell string
}

func (e *NotActivatedError) Error() string {
	return fmt.Sprintf("input %q read before activation: call DefineInput() in OnInit to use inputs", e.Cell)
}

func (e *NotActivatedError) Is(target error) bool {
	return target == ErrNotActivated
}
