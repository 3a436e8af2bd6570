// Package raytracer renders hair styles on the CPU by casting rays against a
// bounding volume hierarchy of flat line curves and shading hits with the
// Kajiya-Kay hair model.
package raytracer

import (
	gomath "math"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// Epsilon is the near plane of secondary rays, keeping them from hitting
// the surface they start on.
const Epsilon = 1e-3

// InvalidID marks a ray that has not hit any geometry.
const InvalidID = ^uint32(0)

// Hit holds the result of the nearest intersection.
type Hit struct {
	U, V   float32   // parametric coordinates on the curve
	Normal math.Vec3 // geometric normal; for line curves the segment direction
	PrimID uint32    // segment index
	GeomID uint32
}

// Ray is a half-line [TNear, TFar] along Direction from Origin. Intersects
// shrinks TFar to the nearest hit; OccludedBy sets it negative on any hit.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
	TNear     float32
	TFar      float32

	Hit Hit
}

// NewRay creates an unbounded ray that has not hit anything yet.
func NewRay(origin, direction math.Vec3, tnear float32) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TNear:     tnear,
		TFar:      float32(gomath.Inf(1)),
		Hit:       Hit{PrimID: InvalidID, GeomID: InvalidID},
	}
}

// Intersects finds the nearest hit in scene and reports whether there was one.
func (r *Ray) Intersects(scene *Scene) bool {
	scene.intersect(r)
	return r.HitSurface()
}

// OccludedBy reports whether anything in scene lies on the ray.
func (r *Ray) OccludedBy(scene *Scene) bool {
	if scene.occluded(r) {
		r.TFar = float32(gomath.Inf(-1))
	}
	return r.IsOccluded()
}

// HitSurface reports whether Intersects found a hit.
func (r *Ray) HitSurface() bool {
	return r.Hit.GeomID != InvalidID
}

// IsOccluded reports whether OccludedBy found a hit.
func (r *Ray) IsOccluded() bool {
	return r.TFar < 0
}

// UV returns the parametric hit coordinates.
func (r *Ray) UV() (u, v float32) {
	return r.Hit.U, r.Hit.V
}

// Normal returns the geometric normal at the hit.
func (r *Ray) Normal() math.Vec3 {
	return r.Hit.Normal
}

// Tangent returns the strand direction at the hit. Line curves report the
// segment direction as their geometric normal, so this is the same vector.
func (r *Ray) Tangent() math.Vec3 {
	return r.Normal()
}

// IntersectionPoint returns Origin + Direction*TFar.
func (r *Ray) IntersectionPoint() math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(r.TFar))
}
