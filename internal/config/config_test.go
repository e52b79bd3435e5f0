package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/meshfield/internal/field"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, field.DefaultParams(), cfg.Params())
	assert.Equal(t, DefaultFPS, cfg.FPS())

	st, err := cfg.Style()
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", st.Color.Hex())
	assert.Equal(t, "#000000", st.Background.Hex())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshfield.ini")
	text := `
[wallpaper]
color = 1 0.5 0
background-color = "#102030"
fps = 30

[field]
max-points = 128
mesh-interval = 1
max-speed = 0

[window]
fullscreen = true
title = desk
`
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.FPS())
	assert.Equal(t, 128, cfg.Field.MaxPoints)
	assert.Equal(t, 1, cfg.Field.MeshInterval)
	assert.Equal(t, 0.0, cfg.Field.MaxSpeed)
	assert.Equal(t, field.DefaultAreaPerPoint, cfg.Field.AreaPerPoint, "unset keys keep defaults")
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, "desk", cfg.Window.Title)
	assert.Equal(t, WindowWidth, cfg.Window.Width)

	st, err := cfg.Style()
	require.NoError(t, err)
	assert.Equal(t, "#ff8000", st.Color.Hex())
	assert.Equal(t, "#102030", st.Background.Hex())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}

func TestParseUnknownVariableIsNotFatal(t *testing.T) {
	cfg, err := Parse("[field]\nsparkle = 3\nmargin = 50\n")
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.Field.Margin)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bad color", "[wallpaper]\ncolor = red\n"},
		{"bad background", "[wallpaper]\nbackground-color = 1 1\n"},
		{"zero fps", "[wallpaper]\nfps = 0\n"},
		{"no points", "[field]\nmax-points = 0\n"},
		{"zero area", "[field]\narea-per-point = 0\n"},
		{"negative margin", "[field]\nmargin = -1\n"},
		{"zero interval", "[field]\nmesh-interval = 0\n"},
		{"negative speed", "[field]\nmax-speed = -2\n"},
		{"zero radius", "[field]\npoint-radius = 0\n"},
		{"zero line", "[field]\nline-width = 0\n"},
		{"zero window", "[window]\nwidth = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseClampsFPS(t *testing.T) {
	cfg, err := Parse("[wallpaper]\nfps = 1000\n")
	require.NoError(t, err)
	assert.Equal(t, 240.0, cfg.FPS())
}
