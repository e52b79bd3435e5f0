package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/meshfield/internal/geom"
	"github.com/iburimskiy/meshfield/internal/surface"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// screen is the surface.Surface backed by the ebiten image handed to Draw.
// Ebiten owns the backing buffer, so Resize only records the logical size.
type screen struct {
	img           *ebiten.Image
	width, height int

	// scratch buffers reused across lines
	vertices []ebiten.Vertex
	indices  []uint16
}

func newScreen() *screen {
	return &screen{}
}

// SetTarget points the surface at the image for the current frame.
func (s *screen) SetTarget(img *ebiten.Image) {
	s.img = img
	if img != nil {
		b := img.Bounds()
		s.width, s.height = b.Dx(), b.Dy()
	}
}

// Ready reports whether a target image is attached.
func (s *screen) Ready() bool { return s.img != nil }

func (s *screen) Clear(bg color.Color) {
	if s.img == nil {
		return
	}
	s.img.Fill(bg)
}

func (s *screen) DrawCircle(center geom.Vector, radius float64, c color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(center.X), float32(center.Y), float32(radius), c, true)
}

func (s *screen) DrawGradientLine(p1, p2 geom.Vector, width float64, c1, c2 color.Color) {
	if s.img == nil || p1 == p2 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(p1.X), float32(p1.Y))
	path.LineTo(float32(p2.X), float32(p2.Y))

	op := &vector.StrokeOptions{Width: float32(width)}
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)

	g := surface.NewGradient(p1, p2, c1, c2)
	for i := range s.vertices {
		v := &s.vertices[i]
		c := g.ColorAt(geom.V(float64(v.DstX), float64(v.DstY)))
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(c.R) / 0xff
		v.ColorG = float32(c.G) / 0xff
		v.ColorB = float32(c.B) / 0xff
		v.ColorA = float32(c.A) / 0xff
	}

	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (s *screen) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *screen) Size() (int, int) {
	return s.width, s.height
}
