// Package mesh owns GPU-side geometry: one vertex array with position, normal and
// index buffers per mesh.
package mesh

import (
	"sync"

	"yaw/internal/graphics/gpu"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	positionAttrib = 0
	normalAttrib   = 1
)

var (
	ErrNotInitialized     = errors.New("mesh: not initialized")
	ErrAlreadyInitialized = errors.New("mesh: already initialized")
	ErrReleased           = errors.New("mesh: released")
)

// Placed is anything drawn with a model matrix.
type Placed interface {
	WorldMatrix() mgl32.Mat4
}

// Uniforms receives the per-draw shader inputs.
type Uniforms interface {
	SetUniform(name string, value any)
}

type state int

const (
	stateNew state = iota
	stateLive
	stateReleased
)

// Mesh is immutable geometry plus the GPU handles created by Init.
type Mesh struct {
	vertices []float32
	normals  []float32
	indices  []uint32
	weight   int

	matMu    sync.RWMutex
	material Material

	api        gpu.API
	state      state
	vao        uint32
	vboVertex  uint32
	vboNorm    uint32
	vboIndices uint32
}

// New returns a mesh whose weight is the number of vertex components.
func New(vertices, normals []float32, indices []uint32, material Material) *Mesh {
	return NewWeighted(vertices, normals, indices, material, len(vertices))
}

// NewWeighted returns a mesh with an explicit vertex budget hint.
func NewWeighted(vertices, normals []float32, indices []uint32, material Material, weight int) *Mesh {
	return &Mesh{
		vertices: vertices,
		normals:  normals,
		indices:  indices,
		material: material,
		weight:   weight,
	}
}

func (m *Mesh) Vertices() []float32 { return m.vertices }
func (m *Mesh) Normals() []float32  { return m.normals }
func (m *Mesh) Indices() []uint32   { return m.indices }
func (m *Mesh) Weight() int         { return m.weight }

// Material returns the current material.
func (m *Mesh) Material() Material {
	m.matMu.RLock()
	defer m.matMu.RUnlock()
	return m.material
}

// SetMaterial replaces the material; it takes effect on the next draw.
func (m *Mesh) SetMaterial(mat Material) {
	m.matMu.Lock()
	m.material = mat
	m.matMu.Unlock()
}

// Initialized reports whether Init ran and CleanUp has not.
func (m *Mesh) Initialized() bool { return m.state == stateLive }

// Init creates the vertex array and uploads positions, normals and indices on the
// render thread. A released mesh is uploaded again with fresh handles.
func (m *Mesh) Init(api gpu.API) error {
	if m.state == stateLive {
		return ErrAlreadyInitialized
	}
	m.api = api

	m.vao = api.GenVertexArray()
	api.BindVertexArray(m.vao)

	m.vboVertex = api.GenBuffer()
	api.BindBuffer(gpu.ArrayBuffer, m.vboVertex)
	api.BufferFloat32(gpu.ArrayBuffer, m.vertices)
	api.VertexAttribPointer(positionAttrib, 3)

	m.vboNorm = api.GenBuffer()
	api.BindBuffer(gpu.ArrayBuffer, m.vboNorm)
	api.BufferFloat32(gpu.ArrayBuffer, m.normals)
	api.VertexAttribPointer(normalAttrib, 3)

	m.vboIndices = api.GenBuffer()
	api.BindBuffer(gpu.ElementArrayBuffer, m.vboIndices)
	api.BufferUint32(gpu.ElementArrayBuffer, m.indices)

	api.BindBuffer(gpu.ArrayBuffer, 0)
	api.BindVertexArray(0)

	m.state = stateLive
	return nil
}

func (m *Mesh) checkLive() error {
	switch m.state {
	case stateNew:
		return ErrNotInitialized
	case stateReleased:
		return ErrReleased
	}
	return nil
}

func (m *Mesh) bind() {
	m.api.BindVertexArray(m.vao)
	m.api.EnableVertexAttribArray(positionAttrib)
	m.api.EnableVertexAttribArray(normalAttrib)
}

func (m *Mesh) unbind() {
	m.api.DisableVertexAttribArray(positionAttrib)
	m.api.DisableVertexAttribArray(normalAttrib)
	m.api.BindVertexArray(0)
}

// Draw renders one item with modelViewMatrix = view * item.WorldMatrix().
func (m *Mesh) Draw(item Placed, u Uniforms, view mgl32.Mat4) error {
	if err := m.checkLive(); err != nil {
		return err
	}
	m.bind()
	u.SetUniform("material", m.Material())
	u.SetUniform("modelViewMatrix", view.Mul4(item.WorldMatrix()))
	m.api.DrawElements(gpu.Triangles, int32(len(m.indices)))
	m.unbind()
	return nil
}

// DrawBatch renders every item sharing this mesh. Buffers are bound and the
// material is pushed once; each item costs one matrix upload and one draw call.
func (m *Mesh) DrawBatch(items []Placed, u Uniforms, view mgl32.Mat4) error {
	if err := m.checkLive(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	m.bind()
	u.SetUniform("material", m.Material())
	count := int32(len(m.indices))
	for _, it := range items {
		u.SetUniform("modelViewMatrix", view.Mul4(it.WorldMatrix()))
		m.api.DrawElements(gpu.Triangles, count)
	}
	m.unbind()
	return nil
}

// CleanUp deletes the buffers and the vertex array. Draw fails afterwards until the
// next Init. A mesh that never reached the GPU, or was already released, is left alone.
func (m *Mesh) CleanUp() {
	if m.state != stateLive {
		if m.state == stateNew {
			m.state = stateReleased
		}
		return
	}
	api := m.api
	api.DisableVertexAttribArray(positionAttrib)

	api.BindBuffer(gpu.ArrayBuffer, 0)
	api.DeleteBuffer(m.vboVertex)
	api.DeleteBuffer(m.vboIndices)
	api.DeleteBuffer(m.vboNorm)

	api.BindVertexArray(0)
	api.DeleteVertexArray(m.vao)

	m.vao, m.vboVertex, m.vboNorm, m.vboIndices = 0, 0, 0, 0
	m.state = stateReleased
}
