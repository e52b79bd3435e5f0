package field

import "github.com/iburimskiy/meshfield/internal/geom"

// Point is one particle. Points are owned by a Field and recycled in place
// when they drift out of bounds, so a *Point stays valid across frames.
type Point struct {
	Position geom.Vector
	Velocity geom.Vector
	Opacity  float64
}
