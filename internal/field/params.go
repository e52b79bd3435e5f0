package field

import "math"

// Default tuning.
const (
	DefaultMaxPoints    = 256
	DefaultAreaPerPoint = 5000.0
	DefaultMargin       = 100.0
	DefaultMeshInterval = 8
	DefaultMaxSpeed     = 12.0
	DefaultPointRadius  = 2.0
	DefaultLineWidth    = 2.0

	// BaseFPS is the rate velocities are expressed against.
	BaseFPS = 60.0

	// radiusDivisor sets both the pointer and the neighbor radius to min(w,h)/radiusDivisor.
	radiusDivisor = 10.0
	// velocityDivisor scales spawn velocity to the surface size.
	velocityDivisor = 500.0
)

// Params tunes a Field.
type Params struct {
	MaxPoints    int
	AreaPerPoint float64
	// Margin inflates the surface rect on each side; points are recycled once outside it.
	Margin float64
	// MeshInterval re-triangulates every n-th frame. 1 re-triangulates every frame.
	MeshInterval int
	// MaxSpeed caps velocity length in px per base frame. 0 disables the cap.
	MaxSpeed    float64
	PointRadius float64
	LineWidth   float64
}

func DefaultParams() Params {
	return Params{
		MaxPoints:    DefaultMaxPoints,
		AreaPerPoint: DefaultAreaPerPoint,
		Margin:       DefaultMargin,
		MeshInterval: DefaultMeshInterval,
		MaxSpeed:     DefaultMaxSpeed,
		PointRadius:  DefaultPointRadius,
		LineWidth:    DefaultLineWidth,
	}
}

// TargetCount returns how many points a width×height surface holds.
func (p Params) TargetCount(width, height float64) int {
	if width <= 0 || height <= 0 || p.AreaPerPoint <= 0 {
		return 0
	}
	n := int(math.Ceil(width * height / p.AreaPerPoint))
	if n > p.MaxPoints {
		n = p.MaxPoints
	}
	return n
}

// opacityDivisor is 2^(ceil(log2(target))-2).
func opacityDivisor(target int) float64 {
	if target <= 0 {
		return 1
	}
	return math.Pow(2, math.Ceil(math.Log2(float64(target)))-2)
}
