// Package geom holds the 2D vector type shared by the simulation and the surfaces.
package geom

import "github.com/ungerik/go3d/float64/vec2"

// Vector is a 2D value. Operations return new values and never modify the
// receiver; the arithmetic is delegated to copies of vec2.T.
type Vector struct {
	X, Y float64
}

func V(x, y float64) Vector { return Vector{X: x, Y: y} }

func (v Vector) T() vec2.T { return vec2.T{v.X, v.Y} }

func FromT(t vec2.T) Vector { return Vector{X: t[0], Y: t[1]} }

func (v Vector) Add(o Vector) Vector {
	a, b := v.T(), o.T()
	return FromT(vec2.Add(&a, &b))
}

func (v Vector) Sub(o Vector) Vector {
	a, b := v.T(), o.T()
	return FromT(vec2.Sub(&a, &b))
}

func (v Vector) Scale(s float64) Vector {
	t := v.T()
	return FromT(t.Scaled(s))
}

// Mul scales each axis independently.
func (v Vector) Mul(o Vector) Vector { return Vector{v.X * o.X, v.Y * o.Y} }

func (v Vector) LenSq() float64 {
	t := v.T()
	return t.LengthSqr()
}

func (v Vector) Len() float64 {
	t := v.T()
	return t.Length()
}

// Unit returns the vector scaled to length 1, zero-safe.
func (v Vector) Unit() Vector {
	if v.X == 0 && v.Y == 0 {
		return Vector{}
	}
	t := v.T()
	return FromT(t.Normalized())
}

// ClampLen limits the length to max while preserving direction.
// Returns v unchanged if its length is already <= max or max <= 0.
func (v Vector) ClampLen(max float64) Vector {
	if max <= 0 {
		return v
	}
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Lerp interpolates between v (t=0) and o (t=1).
func (v Vector) Lerp(o Vector, t float64) Vector {
	return v.Add(o.Sub(v).Scale(t))
}

// Rect is an axis-aligned box, Min inclusive, Max inclusive.
type Rect struct {
	Min, Max Vector
}

// Inflate grows the box by m on every side.
func (r Rect) Inflate(m float64) Rect {
	return Rect{Min: Vector{r.Min.X - m, r.Min.Y - m}, Max: Vector{r.Max.X + m, r.Max.Y + m}}
}

func (r Rect) Contains(p Vector) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Size() Vector { return r.Max.Sub(r.Min) }
