// Package camera computes the per-frame model, view and projection matrices.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names the shaders bind the transforms to.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
)

// Camera holds the fixed viewing parameters. Angles are in degrees.
type Camera struct {
	// Projection
	FovY float32
	Near float32
	Far  float32

	// View: translate by -Distance along Z, then pitch about X, then yaw about Y.
	Distance float32
	Pitch    float32
	Yaw      float32

	// Model spin about +Y
	SpinRate float32 // degrees per second
}

// New returns the default viewer camera.
func New() *Camera {
	return &Camera{
		FovY:     45,
		Near:     0.1,
		Far:      100,
		Distance: 3,
		Pitch:    30,
		Yaw:      45,
		SpinRate: 15,
	}
}

// Transforms is the matrix set uploaded once per frame.
type Transforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// UniformSetter uploads a named 4x4 matrix to the active shader program.
type UniformSetter interface {
	SetMat4(name string, m mgl32.Mat4)
}

// Apply uploads all three matrices.
func (t Transforms) Apply(u UniformSetter) {
	u.SetMat4(UniformModel, t.Model)
	u.SetMat4(UniformView, t.View)
	u.SetMat4(UniformProjection, t.Projection)
}

// Compute builds the full transform set for a frame.
func (c *Camera) Compute(elapsedSeconds float32, width, height int) Transforms {
	return Transforms{
		Model:      c.Model(elapsedSeconds),
		View:       c.View(),
		Projection: c.Projection(width, height),
	}
}

// Model returns the mesh rotation after elapsedSeconds of spinning.
func (c *Camera) Model(elapsedSeconds float32) mgl32.Mat4 {
	return mgl32.Ident4().Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.SpinRate * elapsedSeconds)))
}

// View returns the fixed camera matrix looking at the origin.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.Ident4().
		Mul4(mgl32.Translate3D(0, 0, -c.Distance)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Yaw)))
}

// Projection returns the perspective matrix for a viewport.
// Non-positive dimensions are clamped to 1 so the aspect ratio stays finite.
func (c *Camera) Projection(width, height int) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), Aspect(width, height), c.Near, c.Far)
}

// Aspect returns width/height with both clamped to at least 1.
func Aspect(width, height int) float32 {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return float32(width) / float32(height)
}
