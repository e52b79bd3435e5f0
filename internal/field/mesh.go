package field

import (
	"fmt"
	"sort"

	"github.com/fogleman/delaunay"

	"github.com/iburimskiy/meshfield/internal/geom"
)

// Triangulator turns a point set into a flat triangle index list where
// every consecutive triple is one triangle.
type Triangulator interface {
	Triangulate(points []geom.Vector) ([]int, error)
}

// Delaunay is the default Triangulator.
type Delaunay struct{}

func (Delaunay) Triangulate(points []geom.Vector) ([]int, error) {
	if len(points) < 3 {
		return nil, nil
	}
	in := make([]delaunay.Point, len(points))
	for i, p := range points {
		in[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	t, err := delaunay.Triangulate(in)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d points: %w", len(points), err)
	}
	return t.Triangles, nil
}

// Edge joins two point indices, A < B.
type Edge struct {
	A, B int
}

func newEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Edges extracts the unique undirected edges of a triangle index list,
// sorted by (A, B). Degenerate pairs and a trailing partial triple are skipped.
func Edges(triangles []int) []Edge {
	seen := make(map[Edge]struct{}, len(triangles))
	out := make([]Edge, 0, len(triangles))
	add := func(a, b int) {
		if a == b {
			return
		}
		e := newEdge(a, b)
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		add(a, b)
		add(b, c)
		add(a, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
