// Package opengl implements gpu.API on top of the OpenGL 4.1 core bindings.
package opengl

import (
	"strings"
	"unsafe"

	"yaw/internal/graphics/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

const floatSize = 4

// API forwards every call to the current GL context.
type API struct{}

// Init loads the GL function pointers. A context must be current on the calling thread.
func Init() (*API, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "load gl bindings")
	}
	return &API{}, nil
}

// Version reports the driver version string.
func (a *API) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (a *API) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (a *API) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (a *API) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (a *API) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (a *API) BindBuffer(target gpu.Target, buf uint32) { gl.BindBuffer(glTarget(target), buf) }

func (a *API) DeleteBuffer(buf uint32) { gl.DeleteBuffers(1, &buf) }

func (a *API) BufferFloat32(target gpu.Target, data []float32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(glTarget(target), len(data)*floatSize, ptr, gl.STATIC_DRAW)
}

func (a *API) BufferUint32(target gpu.Target, data []uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(glTarget(target), len(data)*4, ptr, gl.STATIC_DRAW)
}

func (a *API) VertexAttribPointer(index uint32, size int32) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, 0, 0)
}

func (a *API) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (a *API) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (a *API) DrawElements(mode gpu.Primitive, count int32) {
	gl.DrawElements(glPrimitive(mode), count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (a *API) ClearColor(r, g, b, alpha float32) { gl.ClearColor(r, g, b, alpha) }

func (a *API) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (a *API) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (a *API) Enable(c gpu.Capability) { gl.Enable(glCapability(c)) }

func (a *API) Disable(c gpu.Capability) { gl.Disable(glCapability(c)) }

func (a *API) SetPolygonMode(mode gpu.PolygonMode) {
	if mode == gpu.Line {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (a *API) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, errors.Wrap(err, "vertex shader")
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, errors.Wrap(err, "fragment shader")
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, errors.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func (a *API) UseProgram(program uint32) { gl.UseProgram(program) }

func (a *API) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (a *API) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (a *API) Uniform1i(loc int32, v int32) { gl.Uniform1i(loc, v) }

func (a *API) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

func (a *API) Uniform3f(loc int32, x, y, z float32) { gl.Uniform3f(loc, x, y, z) }

func (a *API) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }

func (a *API) UniformMatrix4(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (a *API) ReadPixels(x, y, width, height int32) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, errors.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func glTarget(t gpu.Target) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glPrimitive(p gpu.Primitive) uint32 {
	if p == gpu.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

func glCapability(c gpu.Capability) uint32 {
	if c == gpu.CullFace {
		return gl.CULL_FACE
	}
	return gl.DEPTH_TEST
}

var _ gpu.API = (*API)(nil)
