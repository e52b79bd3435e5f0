// Package props decodes and validates the externally driven wallpaper
// properties (color, background_color, fps) and delivers them to the frame
// loop through a Bridge.
package props

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Recognized property keys.
const (
	KeyColor           = "color"
	KeyBackgroundColor = "background_color"
	KeyFPS             = "fps"
)

const (
	MinFPS = 1.0
	MaxFPS = 240.0
)

// ceilSlack keeps float noise (0.2*255 = 51.00000000000001) from rounding up a whole step.
const ceilSlack = 1e-9

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidFPS   = errors.New("invalid fps")
)

// Update is one batch of property changes. Nil fields are left as they are.
type Update struct {
	Color      *colorful.Color
	Background *colorful.Color
	FPS        *float64
}

func (u Update) Empty() bool {
	return u.Color == nil && u.Background == nil && u.FPS == nil
}

// Merge overlays the non-nil fields of next onto u.
func (u Update) Merge(next Update) Update {
	if next.Color != nil {
		u.Color = next.Color
	}
	if next.Background != nil {
		u.Background = next.Background
	}
	if next.FPS != nil {
		u.FPS = next.FPS
	}
	return u
}

// ParseColor accepts three space-separated unit floats ("1 0.5 0"), each
// clamped to [0,1] and rounded up to the next 8-bit step, or a hex string ("#ff8000").
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		return c, nil
	}

	fields := strings.Fields(s)
	if len(fields) != 3 {
		return colorful.Color{}, fmt.Errorf("%w: %q: want 3 components, got %d", ErrInvalidColor, s, len(fields))
	}
	var rgb [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) {
			return colorful.Color{}, fmt.Errorf("%w: %q: component %d is not a number", ErrInvalidColor, s, i)
		}
		v = math.Max(0, math.Min(1, v))
		rgb[i] = math.Max(0, math.Ceil(v*255-ceilSlack)) / 255
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// FormatColor renders c in the three-float form ParseColor reads.
func FormatColor(c colorful.Color) string {
	c = c.Clamped()
	return strconv.FormatFloat(c.R, 'g', -1, 64) + " " +
		strconv.FormatFloat(c.G, 'g', -1, 64) + " " +
		strconv.FormatFloat(c.B, 'g', -1, 64)
}

// ParseFPS rejects non-positive rates and clamps the rest to [MinFPS, MaxFPS].
func ParseFPS(v float64) (float64, error) {
	if math.IsNaN(v) || v <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFPS, v)
	}
	return math.Max(MinFPS, math.Min(MaxFPS, v)), nil
}

// Decode reads one JSON property object. Values may be wrapped the way
// wallpaper hosts send them ({"fps":{"value":30}}) or bare ({"fps":30}).
// Unknown keys are ignored. Invalid values are left out of the returned
// Update and reported together in the error, so valid keys still apply.
func Decode(data []byte) (Update, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Update{}, fmt.Errorf("decode properties: %w", err)
	}

	var (
		u    Update
		errs []error
	)
	if v, ok := raw[KeyColor]; ok {
		c, err := decodeColor(unwrap(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyColor, err))
		} else {
			u.Color = &c
		}
	}
	if v, ok := raw[KeyBackgroundColor]; ok {
		c, err := decodeColor(unwrap(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyBackgroundColor, err))
		} else {
			u.Background = &c
		}
	}
	if v, ok := raw[KeyFPS]; ok {
		f, err := decodeFPS(unwrap(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyFPS, err))
		} else {
			u.FPS = &f
		}
	}
	return u, errors.Join(errs...)
}

func unwrap(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var w struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(trimmed, &w); err != nil || w.Value == nil {
		return raw
	}
	return w.Value
}

func decodeColor(raw json.RawMessage) (colorful.Color, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %s is not a string", ErrInvalidColor, raw)
	}
	return ParseColor(s)
}

func decodeFPS(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return ParseFPS(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidFPS, raw)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFPS, s)
	}
	return ParseFPS(f)
}
