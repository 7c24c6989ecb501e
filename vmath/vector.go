package vmath

import "math"

// Vec2 is a 2D vector. World positions are in metres, +y up.
type Vec2 struct {
	X, Y float64
}

// Zero2 is the zero vector.
var Zero2 = Vec2{}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// SquareLength avoids the sqrt for comparisons against squared radii.
func (v Vec2) SquareLength() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalise returns the unit vector, using the clamped-divisor guard so a
// zero-length input yields the zero vector instead of NaNs.
func (v Vec2) Normalise() Vec2 {
	invLen := 1.0 / math.Max(v.Length(), math.SmallestNonzeroFloat64)
	return Vec2{v.X * invLen, v.Y * invLen}
}

// NormaliseWithLength is Normalise for callers that already have the length.
func (v Vec2) NormaliseWithLength(length float64) Vec2 {
	invLen := 1.0 / math.Max(length, math.SmallestNonzeroFloat64)
	return Vec2{v.X * invLen, v.Y * invLen}
}

// Perpendicular returns the vector rotated 90 degrees counter-clockwise.
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Rotate rotates the vector by angle radians counter-clockwise around origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateAround rotates the vector by angle radians around center.
func (v Vec2) RotateAround(angle float64, center Vec2) Vec2 {
	return v.Sub(center).Rotate(angle).Add(center)
}

func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}
