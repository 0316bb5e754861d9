package mesh

import "github.com/go-gl/mathgl/mgl32"

// Material is the flat surface description pushed with every draw.
type Material struct {
	Color       mgl32.Vec3
	Reflectance float32
}

// NewMaterial returns a material of the given colour and reflectance.
func NewMaterial(r, g, b, reflectance float32) Material {
	return Material{Color: mgl32.Vec3{r, g, b}, Reflectance: reflectance}
}

// SetUniforms uploads the material as the GLSL struct named prefix.
func (m Material) SetUniforms(prefix string, set func(name string, value any)) {
	set(prefix+".color", m.Color)
	set(prefix+".reflectance", m.Reflectance)
}
