package core

import (
	"fmt"
	"math"
)

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Subtract returns the difference of two vectors
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Multiply returns the vector scaled by a scalar
func (v Vec2) Multiply(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Negate returns the negative of the vector
func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector in the same direction.
// A zero vector yields NaN components.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	return Vec2{v.X / length, v.Y / length}
}

// Parallel reports whether the vectors point the same way within machine epsilon
func (v Vec2) Parallel(other Vec2) bool {
	return EqualFloats(v.Dot(other), v.Length()*other.Length())
}

// Orthogonal reports whether the dot product is zero within machine epsilon
func (v Vec2) Orthogonal(other Vec2) bool {
	return EqualFloats(v.Dot(other), 0)
}

// AngleTo returns the unclamped angle in radians between v and other
func (v Vec2) AngleTo(other Vec2) float64 {
	return math.Acos(v.Dot(other) / (v.Length() * other.Length()))
}

// Projection returns the projection of v onto other
func (v Vec2) Projection(other Vec2) Vec2 {
	return other.Multiply(v.Dot(other) / other.Dot(other))
}

func (v Vec2) String() string {
	return fmt.Sprintf("[%g %g]", v.X, v.Y)
}
