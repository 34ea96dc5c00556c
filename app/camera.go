package app

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera describes the viewing transform. The renderer only ever sees the
// product returned by ViewProjection.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	FOVYDeg float32
	Near    float32
	Far     float32
}

func DefaultCamera() Camera {
	return Camera{
		Eye:     mgl32.Vec3{1, 2, 3},
		Target:  mgl32.Vec3{0, 0, 0},
		Up:      mgl32.Vec3{0, 1, 0},
		FOVYDeg: 45,
		Near:    0.1,
		Far:     100,
	}
}

// View returns the camera view matrix.
func (c Camera) View() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Eye, c.Target, up)
}

// Projection returns a right-handed perspective matrix mapping view depth
// [-Near, -Far] to NDC z [0, 1], with NDC +Y pointing down so that row 0 of
// the framebuffer is the top of the image.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	fov := c.FOVYDeg
	if fov == 0 {
		fov = 45
	}
	near, far := c.Near, c.Far
	if near == 0 {
		near = 0.1
	}
	if far == 0 || far == near {
		far = near + 100
	}

	f := float32(1 / math.Tan(float64(mgl32.DegToRad(fov))/2))
	nf := 1 / (near - far)
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, -f, 0, 0,
		0, 0, far * nf, -1,
		0, 0, near * far * nf, 0,
	}
}

// ViewProjection returns Projection * View for a w x h target.
func (c Camera) ViewProjection(w, h int) mgl32.Mat4 {
	aspect := float32(1)
	if w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	return c.Projection(aspect).Mul4(c.View())
}

// OrbitController places a camera on a sphere around Target.
type OrbitController struct {
	Target mgl32.Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinRadius float32
	MaxRadius float32
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	m := mgl32.HomogRotate3DY(c.Yaw).Mul4(mgl32.HomogRotate3DX(c.Pitch))
	p := m.Mul4x1(mgl32.Vec4{0, 0, r, 1})

	cam.Eye = c.Target.Add(p.Vec3())
	cam.Target = c.Target
	if cam.Up == (mgl32.Vec3{}) {
		cam.Up = mgl32.Vec3{0, 1, 0}
	}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
}

func (c *OrbitController) Zoom(delta float32) {
	c.Radius += delta
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}
