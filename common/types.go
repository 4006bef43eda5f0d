// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
//
// Positions exchanged with the engine (points, cursor, events) are normalized to [0, 1] with the origin
// at the bottom-left corner of the frame, x to the right and y up.
package common

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// PointSet is a point-overlay frame source. The engine borrows it and reads Positions once per frame;
// the producer may rewrite the slice between frames.
type PointSet struct {
	// Positions holds normalized point centers.
	Positions []mgl32.Vec2
}

// Len returns the number of points, treating a nil set as empty.
func (p *PointSet) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Positions)
}

// ColorFromHex converts a packed 0xRRGGBB value into an opaque color.
//
// Parameters:
//   - hex: packed 24-bit RGB value (e.g. 0xffffff for white)
//
// Returns:
//   - color.RGBA: the opaque color
func ColorFromHex(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xff,
	}
}

// ParseHexColor parses "#rrggbb", "#rrggbbaa", "0xrrggbb" or "rrggbb" into a color.
// Six digit forms are opaque.
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - color.RGBA: the parsed color
//   - error: error if the string is not a hex color
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return ColorFromHex(uint32(v)), nil
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
