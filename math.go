package gnc

import (
	"math"
)

const (
	deg2rad = math.Pi / 180
)

// Vector is a three dimensional Cartesian vector.
type Vector struct {
	X, Y, Z float64
}

// NewVector returns a new Vector.
func NewVector(x, y, z float64) Vector {
	return Vector{x, y, z}
}

// VectorFromSlice returns a Vector from the first three items of a slice.
func VectorFromSlice(s []float64) Vector {
	return Vector{s[0], s[1], s[2]}
}

// Slice returns the components as a slice, mostly for gonum interop.
func (v Vector) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Add returns v+w.
func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v-w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns s*v.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v/s. There is no check on s: dividing by zero yields Inf or NaN components.
func (v Vector) Div(s float64) Vector {
	return Vector{v.X / s, v.Y / s, v.Z / s}
}

// Dot returns the inner product.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns v x w.
func (v Vector) Cross(w Vector) Vector {
	return Vector{v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X}
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit returns the unit vector, or the zero vector if the norm is exactly zero.
func (v Vector) Unit() Vector {
	n := v.Norm()
	if n == 0 {
		return Vector{}
	}
	return v.Div(n)
}

// IsNaN returns whether any component is NaN.
func (v Vector) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// Deg2rad converts degrees to radians.
func Deg2rad(a float64) float64 {
	return a * deg2rad
}

// Rad2deg converts radians to degrees.
func Rad2deg(a float64) float64 {
	return a / deg2rad
}

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		// -ε wraps to exactly 2π after rounding.
		a = 0
	}
	return a
}

// Clamp bounds v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// signedAngle returns the angle from a to b, positive about axis.
func signedAngle(a, b, axis Vector) float64 {
	return math.Atan2(axis.Dot(a.Cross(b)), a.Dot(b))
}
