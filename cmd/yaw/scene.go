package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"yaw/internal/config"
	"yaw/internal/graphics/mesh"
	"yaw/internal/input"
	"yaw/internal/light"
	"yaw/internal/scene"
	"yaw/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	moveSpeed = 0.1
	turnSpeed = 1.5
)

var skyColors = []mgl32.Vec3{
	{0.1, 0.1, 0.3},
	{0.3, 0.1, 0.1},
	{0.1, 0.3, 0.1},
}

// populate fills the world with a ring of cubes, a floor and a light rig.
func populate(w *world.World) error {
	cube := mesh.Cube(1, mesh.NewMaterial(0.8, 0.4, 0.2, 0.5))
	ring := scene.NewGroup("ring")
	for i := 0; i < 8; i++ {
		angle := float64(mgl32.DegToRad(float32(i) * 45))
		pos := mgl32.Vec3{4 * float32(math.Sin(angle)), 0, 4 * float32(math.Cos(angle))}
		ring.Add(scene.NewItem(cube, pos, mgl32.Vec3{0, float32(i) * 45, 0}, 1))
	}
	ring.Translate(mgl32.Vec3{0, 0, -8})
	w.AddGroup(ring)

	floor := mesh.Box(20, 0.2, 20, mesh.NewMaterial(0.5, 0.5, 0.5, 0), false)
	w.SceneVertex().Add(scene.NewItem(floor, mgl32.Vec3{0, -1, -8}, mgl32.Vec3{}, 1))

	sl := w.SceneLight()
	sl.SetDirectional(&light.DirectionalLight{
		Color:     mgl32.Vec3{1, 1, 1},
		Direction: mgl32.Vec3{0, 1, 1}.Normalize(),
		Intensity: 0.6,
	})
	if err := sl.AddPoint(light.NewPointLight(mgl32.Vec3{1, 0.9, 0.7}, mgl32.Vec3{0, 3, -8}, 1)); err != nil {
		return err
	}
	spot := light.NewPointLight(mgl32.Vec3{0.6, 0.6, 1}, mgl32.Vec3{0, 6, -4}, 1)
	spot.Attenuation.Linear = 0.05
	if err := sl.AddSpot(light.NewSpotLight(*spot, mgl32.Vec3{0, -1, -0.5}, 25)); err != nil {
		return err
	}

	c := skyColors[0]
	w.SetSkyboxColor(200, 200, 200, c[0], c[1], c[2])
	return nil
}

// bindActions wires the one-shot key actions. They fire on the render thread, so
// anything that waits for a frame is moved off it.
func bindActions(w *world.World, requestClose func()) {
	cb := w.Callback()
	cb.OnPress(input.ActionToggleWireframe, func() {
		slog.Info("wireframe", "enabled", config.ToggleWireframeMode())
	})
	cb.OnPress(input.ActionClose, requestClose)
	cb.OnPress(input.ActionSnapshot, func() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			path := fmt.Sprintf("yaw-%s.bmp", time.Now().Format("20060102-150405"))
			if err := w.Snapshot(ctx, path); err != nil {
				slog.Error("snapshot", "err", err)
			}
		}()
	})
}

// animate moves the camera from held keys, spins the ring and cycles the sky colour
// until the world stops.
func animate(w *world.World, interval time.Duration) {
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()
	skyTick := time.NewTicker(3 * time.Second)
	defer skyTick.Stop()

	cb := w.Callback()
	sky := 0
	for {
		select {
		case <-w.Done():
			return
		case <-skyTick.C:
			sky = (sky + 1) % len(skyColors)
			c := skyColors[sky]
			w.SetSkyboxColor(200, 200, 200, c[0], c[1], c[2])
		case <-tick.C:
			var move, turn mgl32.Vec3
			if cb.IsActive(input.ActionMoveForward) {
				move[2] -= moveSpeed
			}
			if cb.IsActive(input.ActionMoveBackward) {
				move[2] += moveSpeed
			}
			if cb.IsActive(input.ActionMoveLeft) {
				move[0] -= moveSpeed
			}
			if cb.IsActive(input.ActionMoveRight) {
				move[0] += moveSpeed
			}
			if cb.IsActive(input.ActionMoveUp) {
				move[1] += moveSpeed
			}
			if cb.IsActive(input.ActionMoveDown) {
				move[1] -= moveSpeed
			}
			if cb.IsActive(input.ActionTurnLeft) {
				turn[1] -= turnSpeed
			}
			if cb.IsActive(input.ActionTurnRight) {
				turn[1] += turnSpeed
			}
			if cb.IsActive(input.ActionLookUp) {
				turn[0] -= turnSpeed
			}
			if cb.IsActive(input.ActionLookDown) {
				turn[0] += turnSpeed
			}
			cam := w.Camera()
			cam.Move(move)
			cam.Rotate(turn)

			for _, g := range w.Groups() {
				for _, it := range g.Items() {
					it.Rotate(mgl32.Vec3{0, 1, 0})
				}
			}
		}
	}
}
