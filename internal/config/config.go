package config

import "sync"

// RenderSettings holds render toggles that can change while the loop runs
type RenderSettings struct {
	mu            sync.RWMutex
	wireframeMode bool
}

var globalRenderSettings = &RenderSettings{}

// WireframeMode reports whether scene meshes are drawn as lines
func WireframeMode() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframeMode
}

// SetWireframeMode switches line rendering on or off
func SetWireframeMode(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframeMode = enabled
}

// ToggleWireframeMode flips line rendering and returns the new state
func ToggleWireframeMode() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframeMode = !globalRenderSettings.wireframeMode
	return globalRenderSettings.wireframeMode
}
