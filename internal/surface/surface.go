// Package surface provides the drawing targets the field renders onto.
//
// Two implementations exist: Ebiten draws into the window's screen image on
// the GPU, Raster draws into an in-memory RGBA image for headless snapshots.
package surface

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/meshfield/internal/geom"
)

// Surface is the small set of primitives a frame needs.
type Surface interface {
	// Clear fills the whole surface with bg.
	Clear(bg color.Color)
	// DrawCircle fills a circle.
	DrawCircle(center geom.Vector, radius float64, c color.Color)
	// DrawGradientLine strokes a segment whose color runs linearly from c1 at p1 to c2 at p2.
	DrawGradientLine(p1, p2 geom.Vector, width float64, c1, c2 color.Color)
	// Resize changes the backing size.
	Resize(width, height int)
	// Size reports the current backing size in pixels.
	Size() (width, height int)
}

// Gradient is a linear color ramp from C1 at P1 to C2 at P2, constant
// across the segment and clamped beyond its ends.
type Gradient struct {
	P1, P2 geom.Vector
	C1, C2 color.NRGBA
}

func NewGradient(p1, p2 geom.Vector, c1, c2 color.Color) Gradient {
	return Gradient{P1: p1, P2: p2, C1: toNRGBA(c1), C2: toNRGBA(c2)}
}

// ColorAt returns the straight-alpha color at q.
func (g Gradient) ColorAt(q geom.Vector) color.NRGBA {
	return gradientAt(g.C1, g.C2, project(g.P1, g.P2, q))
}

func gradientAt(c1, c2 color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	r, g, b := straight(c1).BlendRgb(straight(c2), t).Clamped().RGB255()
	a := float64(c1.A) + (float64(c2.A)-float64(c1.A))*t
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a + 0.5)}
}

// straight drops alpha without premultiplying, unlike colorful.MakeColor.
func straight(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 0xff, G: float64(c.G) / 0xff, B: float64(c.B) / 0xff}
}

// project returns where q falls along p1→p2, 0 at p1 and 1 at p2.
func project(p1, p2, q geom.Vector) float64 {
	d := p2.Sub(p1)
	l := d.LenSq()
	if l == 0 {
		return 0
	}
	w := q.Sub(p1)
	return (w.X*d.X + w.Y*d.Y) / l
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
