package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniforms map[string]any

func (u uniforms) set(name string, value any) { u[name] = value }

func TestPointLightLimit(t *testing.T) {
	sl := NewSceneLight()
	for i := 0; i < MaxPointLights; i++ {
		require.NoError(t, sl.AddPoint(NewPointLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 1)))
	}
	err := sl.AddPoint(NewPointLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 1))
	assert.ErrorIs(t, err, ErrTooManyLights)

	sl.RemovePoint(sl.Points()[0])
	assert.Len(t, sl.Points(), MaxPointLights-1)
}

func TestUploadTransformsToViewSpace(t *testing.T) {
	sl := NewSceneLight()
	require.NoError(t, sl.AddPoint(NewPointLight(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 2, 3}, 2)))
	sl.SetDirectional(&DirectionalLight{Color: mgl32.Vec3{1, 1, 1}, Direction: mgl32.Vec3{0, -1, 0}, Intensity: 1})

	u := uniforms{}
	view := mgl32.Translate3D(0, 0, -10)
	sl.Upload(u.set, view)

	assert.Equal(t, mgl32.Vec3{1, 2, -7}, u["pointLights[0].position"])
	assert.Equal(t, float32(2), u["pointLights[0].intensity"])
	assert.Equal(t, float32(0), u["pointLights[1].intensity"])
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, u["directionalLight.direction"], "directions ignore translation")
	assert.Equal(t, mgl32.Vec3{0.3, 0.3, 0.3}, u["ambientLight"])
}

func TestSpotCutOffIsCosine(t *testing.T) {
	sp := NewSpotLight(*NewPointLight(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 1), mgl32.Vec3{0, 0, -1}, 60)
	assert.InDelta(t, 0.5, sp.CutOff, 1e-6)

	sl := NewSceneLight()
	require.NoError(t, sl.AddSpot(sp))
	u := uniforms{}
	sl.Upload(u.set, mgl32.Ident4())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, u["spotLights[0].conedir"])
	assert.Equal(t, float32(0), u["spotLights[1].pl.intensity"])
}
