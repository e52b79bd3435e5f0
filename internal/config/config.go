// Package config holds compiled-in defaults and loads overrides from an
// INI-style file.
//
//	[wallpaper]
//	color = 1 1 1
//	background-color = 0 0 0
//	fps = 60
//
//	[field]
//	max-points = 256
//	area-per-point = 5000
//	margin = 100
//	mesh-interval = 8
//	max-speed = 12
//	point-radius = 2
//	line-width = 2
//
//	[window]
//	width = 1280
//	height = 720
//	fullscreen = false
//	title = meshfield
package config

import (
	"errors"
	"fmt"
	"log"

	"gopkg.in/gcfg.v1"

	"github.com/iburimskiy/meshfield/internal/field"
	"github.com/iburimskiy/meshfield/internal/props"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "meshfield"

	DefaultColor      = "1 1 1"
	DefaultBackground = "0 0 0"
	DefaultFPS        = 60.0

	// PropertyBuffer is how many property updates may queue between frames.
	PropertyBuffer = 16
)

var ErrInvalid = errors.New("invalid config")

type WallpaperSection struct {
	Color      string
	Background string `gcfg:"background-color"`
	FPS        float64
}

type FieldSection struct {
	MaxPoints    int     `gcfg:"max-points"`
	AreaPerPoint float64 `gcfg:"area-per-point"`
	Margin       float64
	MeshInterval int     `gcfg:"mesh-interval"`
	MaxSpeed     float64 `gcfg:"max-speed"`
	PointRadius  float64 `gcfg:"point-radius"`
	LineWidth    float64 `gcfg:"line-width"`
}

type WindowSection struct {
	Width      int
	Height     int
	Fullscreen bool
	Title      string
}

type Config struct {
	Wallpaper WallpaperSection
	Field     FieldSection
	Window    WindowSection
}

func Default() Config {
	p := field.DefaultParams()
	return Config{
		Wallpaper: WallpaperSection{
			Color:      DefaultColor,
			Background: DefaultBackground,
			FPS:        DefaultFPS,
		},
		Field: FieldSection{
			MaxPoints:    p.MaxPoints,
			AreaPerPoint: p.AreaPerPoint,
			Margin:       p.Margin,
			MeshInterval: p.MeshInterval,
			MaxSpeed:     p.MaxSpeed,
			PointRadius:  p.PointRadius,
			LineWidth:    p.LineWidth,
		},
		Window: WindowSection{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
	}
}

// Load returns the defaults overridden by the file at path. An empty path
// means defaults only. Unknown variables are logged and skipped.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := readFatal(gcfg.ReadFileInto(&cfg, path), path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse is Load for in-memory config text.
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := readFatal(gcfg.ReadStringInto(&cfg, text), "<string>"); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFatal(err error, name string) error {
	if err == nil {
		return nil
	}
	if fatal := gcfg.FatalOnly(err); fatal != nil {
		return fmt.Errorf("read config %s: %w", name, fatal)
	}
	log.Printf("config %s: %v", name, err)
	return nil
}

// Validate reports the first nonsensical value, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if _, err := props.ParseColor(c.Wallpaper.Color); err != nil {
		return fmt.Errorf("%w: [wallpaper] color: %v", ErrInvalid, err)
	}
	if _, err := props.ParseColor(c.Wallpaper.Background); err != nil {
		return fmt.Errorf("%w: [wallpaper] background-color: %v", ErrInvalid, err)
	}
	if _, err := props.ParseFPS(c.Wallpaper.FPS); err != nil {
		return fmt.Errorf("%w: [wallpaper] fps: %v", ErrInvalid, err)
	}

	f := c.Field
	switch {
	case f.MaxPoints < 1:
		return fmt.Errorf("%w: [field] max-points must be positive, got %d", ErrInvalid, f.MaxPoints)
	case f.AreaPerPoint <= 0:
		return fmt.Errorf("%w: [field] area-per-point must be positive, got %g", ErrInvalid, f.AreaPerPoint)
	case f.Margin < 0:
		return fmt.Errorf("%w: [field] margin must not be negative, got %g", ErrInvalid, f.Margin)
	case f.MeshInterval < 1:
		return fmt.Errorf("%w: [field] mesh-interval must be at least 1, got %d", ErrInvalid, f.MeshInterval)
	case f.MaxSpeed < 0:
		return fmt.Errorf("%w: [field] max-speed must not be negative, got %g", ErrInvalid, f.MaxSpeed)
	case f.PointRadius <= 0:
		return fmt.Errorf("%w: [field] point-radius must be positive, got %g", ErrInvalid, f.PointRadius)
	case f.LineWidth <= 0:
		return fmt.Errorf("%w: [field] line-width must be positive, got %g", ErrInvalid, f.LineWidth)
	}

	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("%w: [window] size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// Params converts the [field] section.
func (c *Config) Params() field.Params {
	return field.Params{
		MaxPoints:    c.Field.MaxPoints,
		AreaPerPoint: c.Field.AreaPerPoint,
		Margin:       c.Field.Margin,
		MeshInterval: c.Field.MeshInterval,
		MaxSpeed:     c.Field.MaxSpeed,
		PointRadius:  c.Field.PointRadius,
		LineWidth:    c.Field.LineWidth,
	}
}

// Style parses the [wallpaper] colors.
func (c *Config) Style() (field.Style, error) {
	fg, err := props.ParseColor(c.Wallpaper.Color)
	if err != nil {
		return field.Style{}, err
	}
	bg, err := props.ParseColor(c.Wallpaper.Background)
	if err != nil {
		return field.Style{}, err
	}
	return field.Style{Color: fg, Background: bg}, nil
}

// FPS returns the validated, clamped frame rate.
func (c *Config) FPS() float64 {
	fps, err := props.ParseFPS(c.Wallpaper.FPS)
	if err != nil {
		return DefaultFPS
	}
	return fps
}
