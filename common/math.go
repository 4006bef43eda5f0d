package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// StructToBytes reinterprets a pointer to a value as a raw byte slice using unsafe.
// The returned slice has length equal to the value's size in memory and aliases it:
// writes through v are visible in the slice and the other way around.
//
// Parameters:
//   - v: pointer to the value to reinterpret
//
// Returns:
//   - []byte: byte slice view of the value's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Vec2 builds a two component vector.
func Vec2(x, y float32) mgl32.Vec2 {
	return mgl32.Vec2{x, y}
}

// Vec3 builds a three component vector.
func Vec3(x, y, z float32) mgl32.Vec3 {
	return mgl32.Vec3{x, y, z}
}

// Clamp constrains x to the closed range [lo, hi].
//
// Parameters:
//   - x: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: min(hi, max(lo, x))
func Clamp(x, lo, hi float32) float32 {
	return min(hi, max(lo, x))
}

// Saturate clamps x to [0, 1].
func Saturate(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Mix linearly interpolates between a and b: a + (b-a)*t.
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MixVec2 linearly interpolates between two vectors component-wise.
func MixVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// MixVec3 linearly interpolates between two vectors component-wise.
func MixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Step returns 0 when x < edge and 1 otherwise.
func Step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

// Sign returns -1, 0 or 1 following the sign of x.
func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Smoothstep performs Hermite interpolation between 0 and 1 when edge0 < x < edge1.
//
// Parameters:
//   - edge0: lower edge of the transition
//   - edge1: upper edge of the transition
//   - x: the source value
//
// Returns:
//   - float32: 0 below edge0, 1 above edge1, a smooth ramp in between
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		return Step(edge0, x)
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x, x - floor(x). The result is always in [0, 1).
func Fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

// Round rounds x half up to the nearest integer.
func Round(x float32) int {
	return int(math.Floor(float64(x) + 0.5))
}

// Atan returns the angle of (x, y) in radians, atan2(y, x).
func Atan(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
func Normalize(v mgl32.Vec2) mgl32.Vec2 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// Normalize3 returns v scaled to unit length. A zero vector is returned unchanged.
func Normalize3(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// Dot returns the dot product of two vectors.
func Dot(a, b mgl32.Vec2) float32 {
	return a.Dot(b)
}

// Cross returns the cross product of two vectors.
func Cross(a, b mgl32.Vec3) mgl32.Vec3 {
	return a.Cross(b)
}

// OuterProduct returns the 3x3 matrix a * b^T.
func OuterProduct(a, b mgl32.Vec3) mgl32.Mat3 {
	return a.OuterProd3(b)
}

// Length returns the euclidean length of v.
func Length(v mgl32.Vec2) float32 {
	return v.Len()
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b mgl32.Vec2) float32 {
	return a.Sub(b).Len()
}

// Reflect reflects the incident vector i about the unit normal n.
func Reflect(i, n mgl32.Vec2) mgl32.Vec2 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}
