// Package light holds the scene light set and its shader upload.
package light

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	MaxPointLights = 5
	MaxSpotLights  = 5
)

var ErrTooManyLights = errors.New("light: too many lights")

// Attenuation is constant + linear*d + exponent*d*d.
type Attenuation struct {
	Constant float32
	Linear   float32
	Exponent float32
}

// PointLight radiates from a position.
type PointLight struct {
	Color       mgl32.Vec3
	Position    mgl32.Vec3
	Intensity   float32
	Attenuation Attenuation
}

func NewPointLight(color, position mgl32.Vec3, intensity float32) *PointLight {
	return &PointLight{
		Color:       color,
		Position:    position,
		Intensity:   intensity,
		Attenuation: Attenuation{Constant: 1},
	}
}

// SpotLight is a point light restricted to a cone. CutOff is the cosine of the
// half-angle.
type SpotLight struct {
	PointLight
	ConeDirection mgl32.Vec3
	CutOff        float32
}

func NewSpotLight(pl PointLight, direction mgl32.Vec3, cutOffDegrees float32) *SpotLight {
	return &SpotLight{
		PointLight:    pl,
		ConeDirection: direction,
		CutOff:        float32(math.Cos(float64(mgl32.DegToRad(cutOffDegrees)))),
	}
}

// DirectionalLight lights everything from one direction with no attenuation.
type DirectionalLight struct {
	Color     mgl32.Vec3
	Direction mgl32.Vec3
	Intensity float32
}

// SceneLight is the single light set of a world.
type SceneLight struct {
	mu            sync.RWMutex
	ambient       mgl32.Vec3
	specularPower float32
	directional   *DirectionalLight
	points        []*PointLight
	spots         []*SpotLight
}

func NewSceneLight() *SceneLight {
	return &SceneLight{
		ambient:       mgl32.Vec3{0.3, 0.3, 0.3},
		specularPower: 10,
	}
}

func (s *SceneLight) Ambient() mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambient
}

func (s *SceneLight) SetAmbient(c mgl32.Vec3) {
	s.mu.Lock()
	s.ambient = c
	s.mu.Unlock()
}

func (s *SceneLight) SetSpecularPower(p float32) {
	s.mu.Lock()
	s.specularPower = p
	s.mu.Unlock()
}

// SetDirectional replaces the directional light; nil switches it off.
func (s *SceneLight) SetDirectional(d *DirectionalLight) {
	s.mu.Lock()
	s.directional = d
	s.mu.Unlock()
}

func (s *SceneLight) AddPoint(p *PointLight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.points) >= MaxPointLights {
		return errors.Wrapf(ErrTooManyLights, "point lights limited to %d", MaxPointLights)
	}
	s.points = append(s.points, p)
	return nil
}

func (s *SceneLight) RemovePoint(p *PointLight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.points, p); i >= 0 {
		s.points = slices.Delete(s.points, i, i+1)
	}
}

func (s *SceneLight) AddSpot(sp *SpotLight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.spots) >= MaxSpotLights {
		return errors.Wrapf(ErrTooManyLights, "spot lights limited to %d", MaxSpotLights)
	}
	s.spots = append(s.spots, sp)
	return nil
}

func (s *SceneLight) RemoveSpot(sp *SpotLight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.spots, sp); i >= 0 {
		s.spots = slices.Delete(s.spots, i, i+1)
	}
}

func (s *SceneLight) Points() []*PointLight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.points)
}

func (s *SceneLight) Spots() []*SpotLight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.spots)
}

// Upload pushes the light set with positions and directions moved to view space.
// Unused slots are zeroed so lights removed since the last frame go dark.
func (s *SceneLight) Upload(set func(name string, value any), view mgl32.Mat4) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set("ambientLight", s.ambient)
	set("specularPower", s.specularPower)

	for i := 0; i < MaxPointLights; i++ {
		name := fmt.Sprintf("pointLights[%d]", i)
		if i < len(s.points) {
			uploadPoint(set, name, *s.points[i], view)
		} else {
			set(name+".intensity", float32(0))
		}
	}
	for i := 0; i < MaxSpotLights; i++ {
		name := fmt.Sprintf("spotLights[%d]", i)
		if i >= len(s.spots) {
			set(name+".pl.intensity", float32(0))
			continue
		}
		sp := s.spots[i]
		uploadPoint(set, name+".pl", sp.PointLight, view)
		dir := view.Mul4x1(sp.ConeDirection.Vec4(0)).Vec3()
		set(name+".conedir", dir)
		set(name+".cutoff", sp.CutOff)
	}

	if d := s.directional; d != nil {
		dir := view.Mul4x1(d.Direction.Vec4(0)).Vec3()
		set("directionalLight.colour", d.Color)
		set("directionalLight.direction", dir)
		set("directionalLight.intensity", d.Intensity)
	} else {
		set("directionalLight.intensity", float32(0))
	}
}

func uploadPoint(set func(string, any), name string, p PointLight, view mgl32.Mat4) {
	pos := view.Mul4x1(p.Position.Vec4(1)).Vec3()
	set(name+".colour", p.Color)
	set(name+".position", pos)
	set(name+".intensity", p.Intensity)
	set(name+".att.constant", p.Attenuation.Constant)
	set(name+".att.linear", p.Attenuation.Linear)
	set(name+".att.exponent", p.Attenuation.Exponent)
}
