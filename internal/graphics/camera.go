package graphics

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices.
//
// Position and rotation may be changed from any goroutine; the render thread calls
// Update once per frame and reads the snapshot through ViewMatrix.
type Camera struct {
	mu       sync.RWMutex
	position mgl32.Vec3
	rotation mgl32.Vec3 // pitch, yaw, roll in degrees

	FOV       float32
	NearPlane float32
	FarPlane  float32

	view mgl32.Mat4
}

func NewCamera() *Camera {
	c := &Camera{
		FOV:       60.0,
		NearPlane: 0.01,
		FarPlane:  1000.0,
	}
	c.view = c.computeView()
	return c
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position
}

// Rotation returns pitch, yaw and roll in degrees.
func (c *Camera) Rotation() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rotation
}

func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	c.position = p
	c.mu.Unlock()
}

func (c *Camera) SetRotation(r mgl32.Vec3) {
	c.mu.Lock()
	c.rotation = r
	c.mu.Unlock()
}

// Move translates the camera relative to where it is looking. Z moves along the
// view direction on the horizontal plane, X strafes and Y is absolute.
func (c *Camera) Move(offset mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	yaw := mgl32.DegToRad(c.rotation[1])
	sin, cos := sincos(yaw)
	if offset[2] != 0 {
		c.position[0] += -sin * offset[2]
		c.position[2] += cos * offset[2]
	}
	if offset[0] != 0 {
		c.position[0] += cos * offset[0]
		c.position[2] += sin * offset[0]
	}
	c.position[1] += offset[1]
}

// Rotate adds pitch, yaw and roll in degrees.
func (c *Camera) Rotate(delta mgl32.Vec3) {
	c.mu.Lock()
	c.rotation = c.rotation.Add(delta)
	c.mu.Unlock()
}

// Update recomputes the view matrix from the current position and rotation.
func (c *Camera) Update() {
	c.mu.Lock()
	c.view = c.computeView()
	c.mu.Unlock()
}

// ViewMatrix returns the matrix computed by the last Update.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

func (c *Camera) GetProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.NearPlane, c.FarPlane)
}

func (c *Camera) computeView() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(c.rotation[0])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.rotation[1]))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.rotation[2]))).
		Mul4(mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2]))
}

func sincos(rad float32) (float32, float32) {
	return float32(math.Sin(float64(rad))), float32(math.Cos(float64(rad)))
}
