// Package renderer draws a world frame with the scene and skybox programs.
package renderer

import (
	_ "embed"
	"path/filepath"

	"yaw/internal/config"
	"yaw/internal/graphics"
	"yaw/internal/graphics/gpu"
	"yaw/internal/graphics/skybox"
	"yaw/internal/light"
	"yaw/internal/profiling"
	"yaw/internal/scene"

	"github.com/pkg/errors"
)

var (
	//go:embed shaders/scene.vert
	sceneVertShader string
	//go:embed shaders/scene.frag
	sceneFragShader string
	//go:embed shaders/skybox.vert
	skyboxVertShader string
	//go:embed shaders/skybox.frag
	skyboxFragShader string
)

// Renderer runs the forward pass: lit scene meshes, then the skybox
type Renderer struct {
	api          gpu.API
	sceneShader  *graphics.Shader
	skyboxShader *graphics.Shader

	width, height int
	sized         bool
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	shaderDir string
}

// WithShaderDir loads the programs from <dir>/scene.{vert,frag} and
// <dir>/skybox.{vert,frag}. An empty dir keeps the built-in sources.
func WithShaderDir(dir string) Option {
	return func(o *options) { o.shaderDir = dir }
}

// New configures the pipeline state and compiles both programs
func New(api gpu.API, opts ...Option) (*Renderer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	api.Enable(gpu.DepthTest)
	api.Enable(gpu.CullFace)

	sceneShader, err := loadShader(api, o.shaderDir, "scene", sceneVertShader, sceneFragShader)
	if err != nil {
		return nil, errors.Wrap(err, "scene shader")
	}
	skyboxShader, err := loadShader(api, o.shaderDir, "skybox", skyboxVertShader, skyboxFragShader)
	if err != nil {
		sceneShader.Delete()
		return nil, errors.Wrap(err, "skybox shader")
	}

	return &Renderer{
		api:          api,
		sceneShader:  sceneShader,
		skyboxShader: skyboxShader,
	}, nil
}

func loadShader(api gpu.API, dir, name, vertexSrc, fragmentSrc string) (*graphics.Shader, error) {
	if dir == "" {
		return graphics.NewShader(api, vertexSrc, fragmentSrc)
	}
	return graphics.NewShaderFromFiles(api, filepath.Join(dir, name+".vert"), filepath.Join(dir, name+".frag"))
}

// Render draws one frame. The caller holds the scene lock; sk may be nil.
func (r *Renderer) Render(sc *scene.Vertex, sl *light.SceneLight, resized bool, c *graphics.Camera, sk *skybox.Skybox, width, height int) error {
	if resized || !r.sized || width != r.width || height != r.height {
		r.api.Viewport(0, 0, int32(width), int32(height))
		r.width, r.height, r.sized = width, height, true
	}

	projection := c.GetProjectionMatrix(width, height)
	view := c.ViewMatrix()

	if err := func() error {
		defer profiling.Track("renderer.scene")()
		if err := sc.Sync(r.api); err != nil {
			return err
		}

		r.sceneShader.Use()
		r.sceneShader.SetUniform("projectionMatrix", projection)
		sl.Upload(r.sceneShader.SetUniform, view)

		// Apply wireframe polygon mode if toggled, then always reset to FILL after drawing
		if config.WireframeMode() {
			r.api.SetPolygonMode(gpu.Line)
			defer r.api.SetPolygonMode(gpu.Fill)
		}
		return sc.Draw(r.sceneShader, view)
	}(); err != nil {
		return errors.Wrap(err, "render scene")
	}

	if sk == nil {
		return nil
	}
	defer profiling.Track("renderer.skybox")()
	if !sk.Initialized() {
		if err := sk.Init(r.api); err != nil {
			return errors.Wrap(err, "init skybox")
		}
	}
	r.skyboxShader.Use()
	r.skyboxShader.SetUniform("projectionMatrix", projection)
	if err := sk.Draw(r.skyboxShader, view); err != nil {
		return errors.Wrap(err, "render skybox")
	}
	return nil
}

// CleanUp deletes both programs
func (r *Renderer) CleanUp() {
	r.api.UseProgram(0)
	r.sceneShader.Delete()
	r.skyboxShader.Delete()
}
