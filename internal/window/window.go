// Package window opens the GLFW window and OpenGL context the engine renders into.
package window

import (
	"log/slog"

	"yaw/internal/config"
	"yaw/internal/graphics/gpu"
	"yaw/internal/graphics/gpu/opengl"
	"yaw/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// Window wraps a GLFW window whose context is current on the render thread
type Window struct {
	handle     *glfw.Window
	api        gpu.API
	clearColor [4]float32
	resized    bool
}

// Open initialises GLFW, creates the window and loads the GL bindings. It must be
// called on the thread that will render.
func Open(cfg config.Config, cb *input.Callback) (*Window, gpu.API, error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "init glfw")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "create window")
	}
	handle.MakeContextCurrent()

	api, err := opengl.Init()
	if err != nil {
		handle.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}
	slog.Info("opengl context ready", "version", api.Version())

	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		handle:     handle,
		api:        api,
		clearColor: cfg.Render.ClearColor,
	}

	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized = true
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		cb.HandleKey(input.Key(key), action != glfw.Release)
	})

	return w, api, nil
}

// ShouldClose reports whether the user asked to close the window
func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

// RequestClose flags the window as closing; the loop stops on its next check
func (w *Window) RequestClose() {
	w.handle.SetShouldClose(true)
}

// Clear wipes colour and depth and reports whether the framebuffer was resized
// since the previous call
func (w *Window) Clear() bool {
	c := w.clearColor
	w.api.ClearColor(c[0], c[1], c[2], c[3])
	w.api.Clear(gpu.ColorBuffer | gpu.DepthBuffer)
	resized := w.resized
	w.resized = false
	return resized
}

// Update presents the frame and pumps window events
func (w *Window) Update() {
	w.handle.SwapBuffers()
	glfw.PollEvents()
}

// Size returns the framebuffer size in pixels
func (w *Window) Size() (int, int) {
	return w.handle.GetFramebufferSize()
}

// CleanUp destroys the window and shuts GLFW down
func (w *Window) CleanUp() {
	w.handle.Destroy()
	glfw.Terminate()
}
