package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	assert.Equal(t, V(4, 2), a.Add(b))
	assert.Equal(t, V(2, 6), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, V(3, -8), a.Mul(b))
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, 25.0, a.LenSq())

	// receiver untouched
	assert.Equal(t, V(3, 4), a)
}

func TestUnit(t *testing.T) {
	u := V(3, 4).Unit()
	assert.InDelta(t, 1.0, u.Len(), 1e-12)
	assert.InDelta(t, 0.6, u.X, 1e-12)
	assert.Equal(t, Vector{}, Vector{}.Unit(), "zero vector")
}

func TestClampLen(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		max  float64
		want float64
	}{
		{"below cap", V(1, 0), 5, 1},
		{"above cap", V(30, 40), 5, 5},
		{"disabled", V(30, 40), 0, 50},
		{"zero", Vector{}, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.v.ClampLen(tt.max).Len(), 1e-9)
		})
	}

	c := V(30, 40).ClampLen(5)
	assert.InDelta(t, math.Atan2(40, 30), math.Atan2(c.Y, c.X), 1e-12, "direction preserved")
}

func TestRect(t *testing.T) {
	r := Rect{Max: V(100, 50)}.Inflate(10)

	assert.Equal(t, V(-10, -10), r.Min)
	assert.Equal(t, V(110, 60), r.Max)
	assert.Equal(t, V(120, 70), r.Size())
	assert.True(t, r.Contains(V(-10, 60)), "edges are inside")
	assert.False(t, r.Contains(V(-10.01, 0)))
	assert.False(t, r.Contains(V(0, 60.01)))
}

func TestVec2RoundTrip(t *testing.T) {
	v := V(1.5, -2)
	assert.Equal(t, v, FromT(v.T()))

	a := V(1, 2)
	_ = a.Add(V(3, 4))
	assert.Equal(t, V(1, 2), a, "Add works on a copy")
}

func TestLerp(t *testing.T) {
	assert.Equal(t, V(5, 10), V(0, 0).Lerp(V(10, 20), 0.5))
}
