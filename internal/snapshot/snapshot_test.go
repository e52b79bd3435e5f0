package snapshot

import (
	"bytes"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/meshfield/internal/config"
	"github.com/iburimskiy/meshfield/internal/geom"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 200, 150
	cfg.Wallpaper.Background = "0 0 0.5"
	return cfg
}

func TestRenderDrawsSomething(t *testing.T) {
	s, err := Render(testConfig(), Options{Frames: 10, Rand: rand.New(rand.NewSource(3))})
	require.NoError(t, err)

	img := s.Image()
	assert.Equal(t, 200, img.Bounds().Dx())

	bg := img.RGBAAt(0, 0)
	lit := 0
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y) != bg {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0, "points or lines drawn over background")
}

func TestRenderRejectsInvalid(t *testing.T) {
	cfg := testConfig()
	cfg.Wallpaper.Color = "nope"
	_, err := Render(cfg, Options{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestWritePNG(t *testing.T) {
	p := geom.V(100, 75)
	var buf bytes.Buffer
	err := Write(&buf, testConfig(), Options{Frames: 3, Pointer: &p, Rand: rand.New(rand.NewSource(4))})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dy())
}
