// Package camera provides the orbit camera used to frame hair styles for
// rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hairtrace/pkg/hair"
	"github.com/Faultbox/hairtrace/pkg/math"
)

// ViewingPlane describes the primary rays of a frame. The direction through
// pixel (i, j) is i*X + j*Y + Z, starting at Point. Row 0 is the bottom row.
type ViewingPlane struct {
	Point math.Vec3
	X     math.Vec3 // one pixel to the right
	Y     math.Vec3 // one pixel up
	Z     math.Vec3 // direction through pixel (0, 0)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	FieldOfView float32 // vertical, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:    4.0,
		RotationX:   0.2,
		RotationY:   0.0,
		FieldOfView: gomath.Pi / 4,
		MinDistance: 0.01,
		MaxDistance: 1000.0,
		MinPitch:    -1.5,
		MaxPitch:    1.5,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ViewingPlane returns the per-pixel ray basis for a width x height image.
func (c *OrbitCamera) ViewingPlane(width, height int) ViewingPlane {
	eye := c.Position()
	forward := c.Center.Sub(eye).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	// World-space size of one pixel at unit distance.
	span := 2 * float32(gomath.Tan(float64(c.FieldOfView)/2)) / float32(max(height, 1))

	x := right.Scale(span)
	y := up.Scale(span)
	z := forward.Sub(x.Scale(float32(width) / 2)).Sub(y.Scale(float32(height) / 2))

	return ViewingPlane{Point: eye, X: x, Y: y, Z: z}
}

// Orbit rotates the camera around its center. Pitch is clamped.
func (c *OrbitCamera) Orbit(yaw, pitch float32) {
	c.RotationY += yaw
	c.RotationX += pitch

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// Zoom scales the orbit distance by factor, within the distance limits.
func (c *OrbitCamera) Zoom(factor float32) {
	c.Distance *= factor
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// for the whole box to fit in the vertical field of view.
func (c *OrbitCamera) FitToBounds(box hair.AABB) {
	c.Center = box.Origin.Add(box.Size.Scale(0.5))

	radius := box.Radius / 2
	if radius <= 0 {
		radius = 1
	}

	c.Distance = radius / float32(gomath.Sin(float64(c.FieldOfView)/2))
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.MaxDistance = c.Distance
	}
}
