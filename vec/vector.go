// Package vec provides the 2D vector type used for positions and directions in game units.
package vec

import (
	"fmt"
	"math"
)

// Vector is an immutable 2D vector. The y axis points up.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// New returns the vector (x, y).
func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Zero is the zero vector.
var Zero = Vector{}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	return o.Sub(v).Length()
}

// IsZero reports whether both components are exactly zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector pointing in the direction of v.
// The zero vector normalizes to itself.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
