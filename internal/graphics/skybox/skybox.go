// Package skybox draws the flat-coloured box surrounding the scene.
package skybox

import (
	"yaw/internal/graphics/gpu"
	"yaw/internal/graphics/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Skybox is an inward-facing box centred on the camera.
type Skybox struct {
	Width, Length, Height float32
	Color                 mgl32.Vec3

	mesh *mesh.Mesh
}

// New returns a skybox of the given size and colour. GPU resources are created by Init.
func New(width, length, height float32, color mgl32.Vec3) *Skybox {
	return &Skybox{
		Width:  width,
		Length: length,
		Height: height,
		Color:  color,
		mesh:   mesh.Box(width, height, length, mesh.Material{Color: color}, true),
	}
}

func (s *Skybox) Init(api gpu.API) error { return s.mesh.Init(api) }

func (s *Skybox) Initialized() bool { return s.mesh.Initialized() }

// Draw renders the box with the view translation removed so it follows the camera.
func (s *Skybox) Draw(u mesh.Uniforms, view mgl32.Mat4) error {
	view.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	u.SetUniform("colour", s.Color)
	return s.mesh.Draw(identity{}, u, view)
}

// CleanUp releases the box buffers. Safe on a skybox that never reached the GPU.
func (s *Skybox) CleanUp() { s.mesh.CleanUp() }

type identity struct{}

func (identity) WorldMatrix() mgl32.Mat4 { return mgl32.Ident4() }
