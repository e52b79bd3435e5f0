package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/iburimskiy/meshfield/internal/geom"
)

// circleSegments is the polygon resolution used for raster circles.
const circleSegments = 24

// Raster draws into an in-memory RGBA image with an anti-aliased
// scanline rasterizer. Used for headless snapshots and tests.
type Raster struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

func NewRaster(width, height int) *Raster {
	s := &Raster{}
	s.Resize(width, height)
	return s
}

// Image returns the backing image. It is replaced on Resize.
func (s *Raster) Image() *image.RGBA { return s.img }

func (s *Raster) Clear(bg color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (s *Raster) DrawCircle(center geom.Vector, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	s.reset()
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x := float32(center.X + radius*math.Cos(a))
		y := float32(center.Y + radius*math.Sin(a))
		if i == 0 {
			s.ras.MoveTo(x, y)
			continue
		}
		s.ras.LineTo(x, y)
	}
	s.ras.ClosePath()
	s.ras.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (s *Raster) DrawGradientLine(p1, p2 geom.Vector, width float64, c1, c2 color.Color) {
	if p1 == p2 || width <= 0 {
		return
	}
	d := p2.Sub(p1).Unit()
	n := geom.V(-d.Y, d.X).Scale(width / 2)

	corners := [4]geom.Vector{p1.Add(n), p2.Add(n), p2.Sub(n), p1.Sub(n)}
	s.reset()
	s.ras.MoveTo(float32(corners[0].X), float32(corners[0].Y))
	for _, c := range corners[1:] {
		s.ras.LineTo(float32(c.X), float32(c.Y))
	}
	s.ras.ClosePath()

	src := &gradientImage{NewGradient(p1, p2, c1, c2)}
	s.ras.Draw(s.img, s.img.Bounds(), src, image.Point{})
}

func (s *Raster) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.ras = vector.NewRasterizer(width, height)
}

func (s *Raster) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Raster) reset() {
	b := s.img.Bounds()
	s.ras.Reset(b.Dx(), b.Dy())
}

// gradientImage exposes a Gradient as an unbounded image.Image so it can
// be used as the rasterizer's source.
type gradientImage struct {
	Gradient
}

func (g *gradientImage) ColorModel() color.Model { return color.NRGBAModel }

func (g *gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *gradientImage) At(x, y int) color.Color {
	return g.ColorAt(geom.V(float64(x)+0.5, float64(y)+0.5))
}
