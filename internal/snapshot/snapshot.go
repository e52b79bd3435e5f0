// Package snapshot renders the field headlessly to a PNG.
package snapshot

import (
	"fmt"
	"image/png"
	"io"
	"math/rand"

	"github.com/iburimskiy/meshfield/internal/config"
	"github.com/iburimskiy/meshfield/internal/field"
	"github.com/iburimskiy/meshfield/internal/geom"
	"github.com/iburimskiy/meshfield/internal/surface"
)

type Options struct {
	// Frames is how many steps run before the image is taken. At least 1.
	Frames int
	// Pointer, if set, repels points during every step.
	Pointer *geom.Vector
	Rand    *rand.Rand
}

// Render steps a field sized to the [window] section and returns the surface
// holding the final frame.
func Render(cfg config.Config, opts Options) (*surface.Raster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}
	if opts.Frames < 1 {
		opts.Frames = 1
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	var fopts []field.Option
	if opts.Rand != nil {
		fopts = append(fopts, field.WithRand(opts.Rand))
	}
	f := field.New(cfg.Params(), float64(w), float64(h), fopts...)
	if opts.Pointer != nil {
		f.SetPointer(*opts.Pointer)
	}

	timeScale := field.BaseFPS / cfg.FPS()
	for i := 0; i < opts.Frames; i++ {
		f.Step(timeScale)
	}
	// the throttled mesh may be up to MeshInterval-1 frames old
	_ = f.Triangulate()

	s := surface.NewRaster(w, h)
	f.Render(s, style)
	return s, nil
}

// Write renders and PNG-encodes the frame to out.
func Write(out io.Writer, cfg config.Config, opts Options) error {
	s, err := Render(cfg, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(out, s.Image()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
