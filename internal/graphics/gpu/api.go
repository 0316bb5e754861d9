// Package gpu describes the slice of the OpenGL state machine the engine drives.
//
// Every call must happen on the thread that owns the graphics context.
package gpu

// Target selects the buffer binding point.
type Target uint32

const (
	ArrayBuffer Target = iota + 1
	ElementArrayBuffer
)

// Primitive is the topology handed to DrawElements.
type Primitive uint32

const (
	Triangles Primitive = iota + 1
	Lines
)

// Capability is a toggle passed to Enable/Disable.
type Capability uint32

const (
	DepthTest Capability = iota + 1
	CullFace
)

// PolygonMode controls how filled primitives are rasterised.
type PolygonMode uint32

const (
	Fill PolygonMode = iota + 1
	Line
)

// ClearMask selects the buffers wiped by Clear.
type ClearMask uint32

const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
)

// API is the graphics backend. Object names are the raw GL handles; zero is never a
// valid object.
type API interface {
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target Target, buf uint32)
	DeleteBuffer(buf uint32)
	BufferFloat32(target Target, data []float32)
	BufferUint32(target Target, data []uint32)

	// VertexAttribPointer describes tightly packed float components at offset zero.
	VertexAttribPointer(index uint32, size int32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	// DrawElements draws count unsigned int indices from the bound element buffer.
	DrawElements(mode Primitive, count int32)

	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)
	Enable(c Capability)
	Disable(c Capability)
	SetPolygonMode(mode PolygonMode)

	CreateProgram(vertexSrc, fragmentSrc string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, x, y, z float32)
	Uniform4f(loc int32, x, y, z, w float32)
	UniformMatrix4(loc int32, m *[16]float32)

	// ReadPixels returns the RGBA framebuffer rows bottom-up.
	ReadPixels(x, y, width, height int32) []byte
}
