package graphics

import (
	"fmt"
	"log/slog"
	"os"

	"yaw/internal/graphics/gpu"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// UniformStruct is implemented by values uploaded as a GLSL struct. SetUniforms
// pushes every field as prefix + "." + field.
type UniformStruct interface {
	SetUniforms(prefix string, set func(name string, value any))
}

// Shader represents a linked shader program
type Shader struct {
	api       gpu.API
	ID        uint32
	locations map[string]int32
}

// NewShader compiles and links a program from vertex and fragment sources
func NewShader(api gpu.API, vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := api.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{api: api, ID: program, locations: make(map[string]int32)}, nil
}

// NewShaderFromFiles creates a shader program from vertex and fragment shader source files
func NewShaderFromFiles(api gpu.API, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read vertex shader file")
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read fragment shader file")
	}

	return NewShader(api, string(vertexSource), string(fragmentSource))
}

// Use activates the shader program
func (s *Shader) Use() {
	s.api.UseProgram(s.ID)
}

// Delete releases the program. The shader must not be used afterwards.
func (s *Shader) Delete() {
	if s.ID != 0 {
		s.api.DeleteProgram(s.ID)
		s.ID = 0
	}
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.api.UniformLocation(s.ID, name)
	s.locations[name] = loc
	return loc
}

// SetUniform uploads value to the named uniform of the active program.
// Unknown value types are logged and skipped.
func (s *Shader) SetUniform(name string, value any) {
	if st, ok := value.(UniformStruct); ok {
		st.SetUniforms(name, s.SetUniform)
		return
	}

	loc := s.location(name)
	if loc < 0 {
		// Optimised out by the driver, or a light slot the shader does not declare.
		return
	}
	switch v := value.(type) {
	case bool:
		var i int32
		if v {
			i = 1
		}
		s.api.Uniform1i(loc, i)
	case int:
		s.api.Uniform1i(loc, int32(v))
	case int32:
		s.api.Uniform1i(loc, v)
	case float32:
		s.api.Uniform1f(loc, v)
	case mgl32.Vec3:
		s.api.Uniform3f(loc, v[0], v[1], v[2])
	case mgl32.Vec4:
		s.api.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case mgl32.Mat4:
		m := [16]float32(v)
		s.api.UniformMatrix4(loc, &m)
	default:
		slog.Warn("unsupported uniform type", "name", name, "type", fmt.Sprintf("%T", value))
	}
}
