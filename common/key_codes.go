package common

import "fmt"

// Key identifies a keyboard key or a pointer button carried by an input event.
// Keyboard values match GLFW key codes, which use ASCII values for printable keys.
// Pointer buttons and window sentinels live above the GLFW key range so the two never collide.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int32

// Virtual key codes for cross-platform input handling.
const (
	KeyUnknown Key = -1

	KeyW         Key = 87  // W key (ASCII)
	KeyA         Key = 65  // A key (ASCII)
	KeyS         Key = 83  // S key (ASCII)
	KeyD         Key = 68  // D key (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyE         Key = 69  // E key (ASCII)
	KeyR         Key = 82  // R key (ASCII)
	KeyC         Key = 67  // C key (ASCII)
	KeyP         Key = 80  // P key (ASCII)
	KeyV         Key = 86  // V key (ASCII)
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyEnter     Key = 257 // Enter key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyEscape    Key = 256 // Escape key (GLFW)

	KeyRight Key = 262 // Right arrow (GLFW)
	KeyLeft  Key = 263 // Left arrow (GLFW)
	KeyDown  Key = 264 // Down arrow (GLFW)
	KeyUp    Key = 265 // Up arrow (GLFW)

	Key0 Key = 48 // 0 key (ASCII)
	Key1 Key = 49 // 1 key (ASCII)
	Key2 Key = 50 // 2 key (ASCII)
	Key3 Key = 51 // 3 key (ASCII)
	Key4 Key = 52 // 4 key (ASCII)
	Key5 Key = 53 // 5 key (ASCII)
	Key6 Key = 54 // 6 key (ASCII)
	Key7 Key = 55 // 7 key (ASCII)
	Key8 Key = 56 // 8 key (ASCII)
	Key9 Key = 57 // 9 key (ASCII)

	KeyLeftShift  Key = 340 // Left Shift (GLFW)
	KeyRightShift Key = 344 // Right Shift (GLFW)
)

// Pointer buttons. Offsets from MouseLeft match GLFW mouse button numbers.
const (
	MouseLeft   Key = 1000
	MouseRight  Key = 1001
	MouseMiddle Key = 1002
)

// KeyWindowClose is the sentinel key delivered as a press when the platform asks the window to close.
const KeyWindowClose Key = 2000

// PointerButtons lists every pointer button in dispatch order.
var PointerButtons = [...]Key{MouseLeft, MouseMiddle, MouseRight}

// IsPointer reports whether k is a pointer button rather than a keyboard key.
//
// Returns:
//   - bool: true for MouseLeft, MouseMiddle and MouseRight
func (k Key) IsPointer() bool {
	return k >= MouseLeft && k <= MouseMiddle
}

func (k Key) String() string {
	switch k {
	case MouseLeft:
		return "LMB"
	case MouseMiddle:
		return "MMB"
	case MouseRight:
		return "RMB"
	case KeyWindowClose:
		return "WMClose"
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyEnter:
		return "Return"
	case KeyBackspace:
		return "BackSpace"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeftShift, KeyRightShift:
		return "Shift"
	case KeyUnknown:
		return "Unknown"
	}
	if k >= 32 && k < 127 {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}
