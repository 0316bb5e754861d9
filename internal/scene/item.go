package scene

import (
	"sync"

	"yaw/internal/graphics/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Item is one placed instance of a mesh.
type Item struct {
	mesh *mesh.Mesh

	mu       sync.RWMutex
	position mgl32.Vec3
	rotation mgl32.Vec3 // degrees around x, y, z
	scale    float32
}

// NewItem places m at position with the given rotation (degrees) and uniform scale.
func NewItem(m *mesh.Mesh, position, rotation mgl32.Vec3, scale float32) *Item {
	return &Item{mesh: m, position: position, rotation: rotation, scale: scale}
}

func (it *Item) Mesh() *mesh.Mesh { return it.mesh }

func (it *Item) Position() mgl32.Vec3 {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.position
}

func (it *Item) Rotation() mgl32.Vec3 {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.rotation
}

func (it *Item) Scale() float32 {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.scale
}

func (it *Item) SetPosition(p mgl32.Vec3) {
	it.mu.Lock()
	it.position = p
	it.mu.Unlock()
}

func (it *Item) SetRotation(r mgl32.Vec3) {
	it.mu.Lock()
	it.rotation = r
	it.mu.Unlock()
}

func (it *Item) SetScale(s float32) {
	it.mu.Lock()
	it.scale = s
	it.mu.Unlock()
}

func (it *Item) Translate(d mgl32.Vec3) {
	it.mu.Lock()
	it.position = it.position.Add(d)
	it.mu.Unlock()
}

func (it *Item) Rotate(d mgl32.Vec3) {
	it.mu.Lock()
	it.rotation = it.rotation.Add(d)
	it.mu.Unlock()
}

// Rescale multiplies the current scale by f.
func (it *Item) Rescale(f float32) {
	it.mu.Lock()
	it.scale *= f
	it.mu.Unlock()
}

// WorldMatrix is T * Rx * Ry * Rz * S.
func (it *Item) WorldMatrix() mgl32.Mat4 {
	it.mu.RLock()
	p, r, s := it.position, it.rotation, it.scale
	it.mu.RUnlock()
	return mgl32.Translate3D(p[0], p[1], p[2]).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(r[0]))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(r[1]))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(r[2]))).
		Mul4(mgl32.Scale3D(s, s, s))
}
