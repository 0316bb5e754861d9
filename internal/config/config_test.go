package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[window]
title = "demo"
width = 800

[loop]
frame_interval_ms = 5

[render]
clear_color = [0.1, 0.2, 0.3, 1.0]
shader_dir = "assets/shaders"
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 500, cfg.Window.Height, "untouched keys keep defaults")
	assert.Equal(t, 5*time.Millisecond, cfg.FrameInterval())
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, cfg.Render.ClearColor)
	assert.Equal(t, "assets/shaders", cfg.Render.ShaderDir)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[window]\ncolour = 3\n"))
	assert.Error(t, err)
}

func TestParseValidates(t *testing.T) {
	_, err := Parse([]byte("[render]\nnear = 10.0\nfar = 1.0\n"))
	assert.ErrorContains(t, err, "near/far")

	_, err = Parse([]byte("[window]\nwidth = 0\n"))
	assert.ErrorContains(t, err, "window size")
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "yaw.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestToggleWireframe(t *testing.T) {
	SetWireframeMode(false)
	assert.True(t, ToggleWireframeMode())
	assert.True(t, WireframeMode())
	assert.False(t, ToggleWireframeMode())
}
