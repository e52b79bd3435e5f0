// Package field simulates the drifting point set and its connecting mesh.
//
// A Field is single-owner state: every method must be called from the same
// goroutine (the frame loop). Nothing here locks.
package field

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/meshfield/internal/geom"
)

// NoPointer parks the pointer far enough outside any surface that it
// repels nothing visible.
var NoPointer = geom.V(-1000, -1000)

type Field struct {
	params Params
	rng    *rand.Rand
	tri    Triangulator

	size    geom.Vector
	target  int
	points  []*Point
	edges   []Edge
	pointer geom.Vector

	frame     uint64
	meshDirty bool
	meshFail  bool
}

type Option func(*Field)

// WithRand sets the random source used for spawning.
func WithRand(r *rand.Rand) Option {
	return func(f *Field) { f.rng = r }
}

func WithTriangulator(t Triangulator) Option {
	return func(f *Field) { f.tri = t }
}

// New creates an empty field for a width×height surface. Points are
// spawned by the first Step.
func New(params Params, width, height float64, opts ...Option) *Field {
	if params.MeshInterval < 1 {
		params.MeshInterval = 1
	}
	f := &Field{
		params:  params,
		tri:     Delaunay{},
		size:    geom.V(width, height),
		pointer: NoPointer,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f.target = params.TargetCount(width, height)
	return f
}

func (f *Field) Params() Params { return f.params }

func (f *Field) Size() geom.Vector { return f.size }

// Target is the point count the field converges to.
func (f *Field) Target() int { return f.target }

func (f *Field) Frame() uint64 { return f.frame }

// Points returns the live collection. Callers must not append to or reorder it.
func (f *Field) Points() []*Point { return f.points }

// Edges returns the mesh from the last triangulation. Indices refer to Points.
func (f *Field) Edges() []Edge { return f.edges }

// Bounds is the surface rect inflated by the margin.
func (f *Field) Bounds() geom.Rect {
	return geom.Rect{Max: f.size}.Inflate(f.params.Margin)
}

// Radius is the reach of both the pointer repulsion and the neighbor count.
func (f *Field) Radius() float64 {
	return math.Min(f.size.X, f.size.Y) / radiusDivisor
}

func (f *Field) SetPointer(p geom.Vector) { f.pointer = p }

func (f *Field) ClearPointer() { f.pointer = NoPointer }

// Spawn appends a fresh point.
func (f *Field) Spawn() *Point {
	p := &Point{}
	f.Recycle(p)
	f.points = append(f.points, p)
	f.meshDirty = true
	return p
}

// Recycle gives p a new random position inside Bounds and a new random
// velocity scaled to the surface size. Opacity is left for the next Shade.
func (f *Field) Recycle(p *Point) {
	b := f.Bounds()
	span := b.Size()
	p.Position = geom.V(
		b.Min.X+f.rng.Float64()*span.X,
		b.Min.Y+f.rng.Float64()*span.Y,
	)
	p.Velocity = geom.V(
		(f.rng.Float64()*f.size.X-f.size.X/2)/velocityDivisor,
		(f.rng.Float64()*f.size.Y-f.size.Y/2)/velocityDivisor,
	)
}

// Fill spawns points up to Target and drops any surplus. It returns the
// number of points added or removed.
func (f *Field) Fill() int {
	changed := 0
	for len(f.points) < f.target {
		f.Spawn()
		changed++
	}
	if len(f.points) > f.target {
		changed += len(f.points) - f.target
		for i := f.target; i < len(f.points); i++ {
			f.points[i] = nil
		}
		f.points = f.points[:f.target]
		// old edges may point past the end
		f.edges = nil
		f.meshDirty = true
	}
	return changed
}

// Integrate applies pointer repulsion and moves every point by its
// velocity, scaled by timeScale (BaseFPS / actual fps).
func (f *Field) Integrate(timeScale float64) {
	radius := f.Radius()
	for _, p := range f.points {
		away := p.Position.Sub(f.pointer)
		if d := away.Len(); d > 0 && d <= radius {
			p.Velocity = p.Velocity.Add(away.Scale(1 / d))
		}
		p.Velocity = p.Velocity.ClampLen(f.params.MaxSpeed)
		p.Position = p.Position.Add(p.Velocity.Scale(timeScale))
	}
}

// RecycleEscaped recycles every point outside Bounds and returns how many it moved.
func (f *Field) RecycleEscaped() int {
	b := f.Bounds()
	n := 0
	for _, p := range f.points {
		if !b.Contains(p.Position) {
			f.Recycle(p)
			n++
		}
	}
	if n > 0 {
		f.meshDirty = true
	}
	return n
}

// Shade sets each point's opacity from how crowded its neighborhood is.
func (f *Field) Shade() {
	r := f.Radius()
	r2 := r * r
	div := opacityDivisor(f.target)
	for _, p := range f.points {
		count := 0
		for _, q := range f.points {
			if p.Position.Sub(q.Position).LenSq() < r2 {
				count++
			}
		}
		p.Opacity = float64(count*count) / div
	}
}

// Triangulate rebuilds the edge set from the current positions.
// On failure the edge set is emptied.
func (f *Field) Triangulate() error {
	f.meshDirty = false

	pos := make([]geom.Vector, len(f.points))
	for i, p := range f.points {
		pos[i] = p.Position
	}
	tris, err := f.tri.Triangulate(pos)
	if err != nil {
		if !f.meshFail {
			log.Printf("field: mesh unavailable, drawing points only: %v", err)
		}
		f.meshFail = true
		f.edges = nil
		return err
	}
	f.meshFail = false
	f.edges = Edges(tris)
	return nil
}

// Step advances one frame: spawn catch-up, physics, recycle, shading, and
// re-triangulation when due.
func (f *Field) Step(timeScale float64) {
	f.frame++

	f.Fill()
	f.Integrate(timeScale)
	f.RecycleEscaped()
	f.Shade()

	if f.meshDirty || f.frame%uint64(f.params.MeshInterval) == 0 {
		_ = f.Triangulate()
	}
}

// Resize rescales positions and velocities to a new surface size so the
// layout and apparent speed are preserved, then retargets the point count.
func (f *Field) Resize(width, height float64) {
	next := geom.V(width, height)
	if next == f.size {
		return
	}
	if f.size.X > 0 && f.size.Y > 0 {
		ratio := geom.V(width/f.size.X, height/f.size.Y)
		for _, p := range f.points {
			p.Position = p.Position.Mul(ratio)
			p.Velocity = p.Velocity.Mul(ratio)
		}
	}
	f.size = next
	f.target = f.params.TargetCount(width, height)
	if len(f.points) > f.target {
		f.Fill()
	}
	f.meshDirty = true
}
