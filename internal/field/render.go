package field

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/meshfield/internal/surface"
)

// Style holds the colors a frame is drawn with.
type Style struct {
	Color      colorful.Color
	Background colorful.Color
}

// Tint returns base with an alpha channel of min(1, opacity).
func Tint(base colorful.Color, opacity float64) color.NRGBA {
	r, g, b := base.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha(opacity)}
}

// TintHex formats Tint as #rrggbbaa.
func TintHex(base colorful.Color, opacity float64) string {
	return fmt.Sprintf("%s%02x", base.Clamped().Hex(), alpha(opacity))
}

func alpha(opacity float64) uint8 {
	if opacity <= 0 || math.IsNaN(opacity) {
		return 0
	}
	return uint8(math.Round(math.Min(1, opacity) * 255))
}

// Render draws the current snapshot: background, points, then edges.
func (f *Field) Render(s surface.Surface, st Style) {
	s.Clear(st.Background)

	for _, p := range f.points {
		s.DrawCircle(p.Position, f.params.PointRadius, Tint(st.Color, p.Opacity))
	}

	n := len(f.points)
	for _, e := range f.edges {
		if e.A >= n || e.B >= n {
			continue
		}
		a, b := f.points[e.A], f.points[e.B]
		s.DrawGradientLine(a.Position, b.Position, f.params.LineWidth,
			Tint(st.Color, a.Opacity), Tint(st.Color, b.Opacity))
	}
}
