package scene

import (
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Group moves a set of items together. Membership does not add items to a
// Vertex container; that is done separately.
type Group struct {
	Name string

	mu    sync.RWMutex
	items []*Item
}

func NewGroup(name string) *Group {
	return &Group{Name: name}
}

func (g *Group) Add(items ...*Item) {
	g.mu.Lock()
	g.items = append(g.items, items...)
	g.mu.Unlock()
}

// Remove drops it from the group and reports whether it was a member.
func (g *Group) Remove(it *Item) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := slices.Index(g.items, it)
	if i < 0 {
		return false
	}
	g.items = slices.Delete(g.items, i, i+1)
	return true
}

// Items returns a snapshot of the members.
func (g *Group) Items() []*Item {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.items)
}

func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}

func (g *Group) Translate(d mgl32.Vec3) {
	for _, it := range g.Items() {
		it.Translate(d)
	}
}

func (g *Group) Rotate(d mgl32.Vec3) {
	for _, it := range g.Items() {
		it.Rotate(d)
	}
}

// Scale multiplies every member's scale by f.
func (g *Group) Scale(f float32) {
	for _, it := range g.Items() {
		it.Rescale(f)
	}
}

// Center returns the mean position of the members, or the origin for an empty group.
func (g *Group) Center() mgl32.Vec3 {
	items := g.Items()
	if len(items) == 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	for _, it := range items {
		sum = sum.Add(it.Position())
	}
	return sum.Mul(1 / float32(len(items)))
}
