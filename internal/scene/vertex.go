// Package scene holds the renderable items and the container that groups them by mesh.
package scene

import (
	"slices"
	"sync"

	"yaw/internal/graphics/gpu"
	"yaw/internal/graphics/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Vertex groups items by mesh so each mesh is bound once per frame.
//
// Add and Remove may be called from any goroutine. Sync, Draw and CleanUp run on
// the render thread with the container locked through Lock/Unlock.
type Vertex struct {
	mu     sync.Mutex
	meshes map[*mesh.Mesh][]mesh.Placed
	order  []*mesh.Mesh

	toInit  []*mesh.Mesh
	toClean []*mesh.Mesh
}

func NewVertex() *Vertex {
	return &Vertex{meshes: make(map[*mesh.Mesh][]mesh.Placed)}
}

// Lock serialises structural changes against the render pass.
func (v *Vertex) Lock() { v.mu.Lock() }

func (v *Vertex) Unlock() { v.mu.Unlock() }

// Add registers items; meshes seen for the first time are uploaded on the next Sync.
func (v *Vertex) Add(items ...*Item) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, it := range items {
		m := it.Mesh()
		list, ok := v.meshes[m]
		if !ok {
			v.order = append(v.order, m)
			v.toClean = remove(v.toClean, m)
			if !m.Initialized() {
				v.toInit = append(v.toInit, m)
			}
		}
		v.meshes[m] = append(list, it)
	}
}

// Remove unregisters items. A mesh left without items is released on the next Sync.
func (v *Vertex) Remove(items ...*Item) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, it := range items {
		m := it.Mesh()
		list, ok := v.meshes[m]
		if !ok {
			continue
		}
		i := slices.Index(list, mesh.Placed(it))
		if i < 0 {
			continue
		}
		list = slices.Delete(list, i, i+1)
		if len(list) > 0 {
			v.meshes[m] = list
			continue
		}
		delete(v.meshes, m)
		v.order = remove(v.order, m)
		if slices.Contains(v.toInit, m) {
			v.toInit = remove(v.toInit, m)
		} else {
			v.toClean = append(v.toClean, m)
		}
	}
}

// Len returns the number of registered items.
func (v *Vertex) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, list := range v.meshes {
		n += len(list)
	}
	return n
}

// Meshes returns the registered meshes in draw order.
func (v *Vertex) Meshes() []*mesh.Mesh {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.order)
}

// Weight sums the vertex budget hints of the registered meshes.
func (v *Vertex) Weight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	w := 0
	for _, m := range v.order {
		w += m.Weight()
	}
	return w
}

// Sync uploads newly added meshes and releases orphaned ones. Caller holds the lock.
func (v *Vertex) Sync(api gpu.API) error {
	for _, m := range v.toClean {
		m.CleanUp()
	}
	v.toClean = v.toClean[:0]

	for _, m := range v.toInit {
		if m.Initialized() {
			continue
		}
		if err := m.Init(api); err != nil {
			return errors.Wrap(err, "init mesh")
		}
	}
	v.toInit = v.toInit[:0]
	return nil
}

// Draw batches every mesh's items. Caller holds the lock.
func (v *Vertex) Draw(u mesh.Uniforms, view mgl32.Mat4) error {
	for _, m := range v.order {
		if err := m.DrawBatch(v.meshes[m], u, view); err != nil {
			return err
		}
	}
	return nil
}

// CleanUp releases every mesh the container knows about. Caller holds the lock.
func (v *Vertex) CleanUp() {
	for _, m := range v.order {
		m.CleanUp()
	}
	for _, m := range v.toClean {
		m.CleanUp()
	}
	v.meshes = make(map[*mesh.Mesh][]mesh.Placed)
	v.order, v.toInit, v.toClean = nil, nil, nil
}

func remove(list []*mesh.Mesh, m *mesh.Mesh) []*mesh.Mesh {
	if i := slices.Index(list, m); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
