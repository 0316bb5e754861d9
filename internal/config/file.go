// Package config holds the engine configuration file and the runtime render toggles.
package config

import (
	"bytes"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Window configures the platform window.
type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// Loop configures the run loop cadence.
type Loop struct {
	// FrameIntervalMS is the pause between frames.
	FrameIntervalMS int `toml:"frame_interval_ms"`
	// SlowFrameMS logs frames whose body takes longer; zero disables the check.
	SlowFrameMS int `toml:"slow_frame_ms"`
}

// Render configures the forward pass.
type Render struct {
	ClearColor [4]float32 `toml:"clear_color"`
	FOV        float32    `toml:"fov"`
	Near       float32    `toml:"near"`
	Far        float32    `toml:"far"`
	Wireframe  bool       `toml:"wireframe"`
	// ShaderDir, when set, holds scene.vert, scene.frag, skybox.vert and skybox.frag
	// used instead of the built-in programs.
	ShaderDir string `toml:"shader_dir"`
}

// Log configures the process logger.
type Log struct {
	Level string `toml:"level"`
}

// Config is the whole configuration file.
type Config struct {
	Window Window `toml:"window"`
	Loop   Loop   `toml:"loop"`
	Render Render `toml:"render"`
	Log    Log    `toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: Window{Title: "yaw", Width: 500, Height: 500},
		Loop:   Loop{FrameIntervalMS: 20, SlowFrameMS: 50},
		Render: Render{
			ClearColor: [4]float32{0, 0, 0, 1},
			FOV:        60,
			Near:       0.01,
			Far:        1000,
		},
		Log: Log{Level: "info"},
	}
}

// FrameInterval returns the loop pause as a duration.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.Loop.FrameIntervalMS) * time.Millisecond
}

// SlowFrame returns the slow-frame threshold, zero when disabled.
func (c Config) SlowFrame() time.Duration {
	return time.Duration(c.Loop.SlowFrameMS) * time.Millisecond
}

// Validate rejects values the loop cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Loop.FrameIntervalMS < 0:
		return errors.Errorf("loop.frame_interval_ms %d must not be negative", c.Loop.FrameIntervalMS)
	case c.Render.Near <= 0 || c.Render.Far <= c.Render.Near:
		return errors.Errorf("render near/far planes %v/%v out of order", c.Render.Near, c.Render.Far)
	}
	return nil
}

// Parse decodes a TOML document over the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path; an empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}
