package raytracer

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// ErrInvalidGeometry is returned when curve data cannot be turned into a
// scene.
var ErrInvalidGeometry = errors.New("invalid curve geometry")

// Geometry supplies flat linear curves: a (position, radius) pair per vertex
// and a line list of vertex index pairs. *hair.Style implements it.
type Geometry interface {
	PositionThickness() []math.Vec4
	SegmentIndices() []uint32
}

// maxLeafSize is the largest number of segments stored in one leaf.
const maxLeafSize = 4

// bounds is an axis-aligned box.
type bounds struct {
	min, max math.Vec3
}

func emptyBounds() bounds {
	inf := float32(gomath.Inf(1))
	return bounds{min: math.Splat(inf), max: math.Splat(-inf)}
}

func (b bounds) union(o bounds) bounds {
	return bounds{min: b.min.Min(o.min), max: b.max.Max(o.max)}
}

func (b bounds) grow(p math.Vec3) bounds {
	return bounds{min: b.min.Min(p), max: b.max.Max(p)}
}

func (b bounds) centroid() math.Vec3 {
	return b.min.Add(b.max).Scale(0.5)
}

// largestAxis returns the axis with the largest extent.
func (b bounds) largestAxis() int {
	size := b.max.Sub(b.min)
	axis := 0
	if size.Y > size.Axis(axis) {
		axis = 1
	}
	if size.Z > size.Axis(axis) {
		axis = 2
	}
	return axis
}

// hitBy tests the ray's [TNear, TFar] interval against the box slabs.
func (b bounds) hitBy(r *Ray) bool {
	tmin, tmax := r.TNear, r.TFar

	for axis := 0; axis < 3; axis++ {
		origin := r.Origin.Axis(axis)
		dir := r.Direction.Axis(axis)
		lo, hi := b.min.Axis(axis), b.max.Axis(axis)

		if dir == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmax < tmin {
			return false
		}
	}
	return true
}

// node is a flattened BVH node. Interior nodes store their left child at the
// next index and their right child at offset.
type node struct {
	bounds bounds
	offset uint32 // leaf: first entry in prims; interior: right child
	count  uint32 // segments in a leaf, 0 for interior nodes
}

type primRef struct {
	id       uint32
	bounds   bounds
	centroid math.Vec3
}

// Scene is an immutable acceleration structure over line curves. Queries
// are safe for concurrent use; Close must not overlap them.
type Scene struct {
	vertices []math.Vec4
	indices  []uint32
	nodes    []node
	prims    []uint32

	diagnostic DiagnosticFunc
	closed     bool
}

// NewScene reads the curve data from geom and builds the hierarchy. geom
// must not change while the scene is in use.
// Problems are reported through diag (DiagnosticUnknown is never passed on)
// and invalid data fails the build.
func NewScene(geom Geometry, diag DiagnosticFunc) (*Scene, error) {
	s := &Scene{
		vertices:   geom.PositionThickness(),
		indices:    geom.SegmentIndices(),
		diagnostic: filtered(diag),
	}

	if len(s.indices)%2 != 0 {
		msg := fmt.Sprintf("index count %d is not a multiple of 2", len(s.indices))
		s.diagnostic(DiagnosticInvalidArgument, msg)
		return nil, fmt.Errorf("%w: %s", ErrInvalidGeometry, msg)
	}

	refs := make([]primRef, len(s.indices)/2)
	for i := range refs {
		a, b := s.indices[2*i], s.indices[2*i+1]
		if int(a) >= len(s.vertices) || int(b) >= len(s.vertices) {
			msg := fmt.Sprintf("segment %d references vertex beyond %d", i, len(s.vertices))
			s.diagnostic(DiagnosticInvalidArgument, msg)
			return nil, fmt.Errorf("%w: %s", ErrInvalidGeometry, msg)
		}
		box := segmentBounds(s.vertices[a], s.vertices[b])
		refs[i] = primRef{id: uint32(i), bounds: box, centroid: box.centroid()}
	}

	if len(refs) == 0 {
		s.diagnostic(DiagnosticUnknown, "scene has no curve segments")
		return s, nil
	}

	s.nodes = make([]node, 0, 2*len(refs)/maxLeafSize+1)
	s.prims = make([]uint32, 0, len(refs))
	s.build(refs)
	return s, nil
}

// segmentBounds returns the box around a segment padded by its larger radius.
func segmentBounds(p0, p1 math.Vec4) bounds {
	r := math.Splat(max(abs(p0.W()), abs(p1.W())))
	a, b := p0.XYZ(), p1.XYZ()
	return bounds{min: a.Min(b).Sub(r), max: a.Max(b).Add(r)}
}

// build appends the subtree for refs and returns its node index. Segments
// are split at the median centroid along the axis of largest centroid spread.
func (s *Scene) build(refs []primRef) uint32 {
	index := uint32(len(s.nodes))
	s.nodes = append(s.nodes, node{})

	box, centroids := emptyBounds(), emptyBounds()
	for _, ref := range refs {
		box = box.union(ref.bounds)
		centroids = centroids.grow(ref.centroid)
	}

	if len(refs) <= maxLeafSize {
		s.nodes[index] = node{bounds: box, offset: uint32(len(s.prims)), count: uint32(len(refs))}
		for _, ref := range refs {
			s.prims = append(s.prims, ref.id)
		}
		return index
	}

	axis := centroids.largestAxis()
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].centroid.Axis(axis) < refs[j].centroid.Axis(axis)
	})

	mid := len(refs) / 2
	s.build(refs[:mid])
	right := s.build(refs[mid:])
	s.nodes[index] = node{bounds: box, offset: right}
	return index
}

// NodeCount returns the number of hierarchy nodes.
func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

// SegmentCount returns the number of curve segments in the scene.
func (s *Scene) SegmentCount() int {
	return len(s.indices) / 2
}

// Close releases the hierarchy. Later queries miss and report
// DiagnosticInvalidOperation.
func (s *Scene) Close() {
	s.vertices = nil
	s.indices = nil
	s.nodes = nil
	s.prims = nil
	s.closed = true
}

func (s *Scene) usable() bool {
	if s.closed {
		s.diagnostic(DiagnosticInvalidOperation, "query on a released scene")
		return false
	}
	return len(s.nodes) != 0
}

// intersect records the nearest hit in r.
func (s *Scene) intersect(r *Ray) {
	if !s.usable() {
		return
	}
	s.traverse(r, func(id uint32, t, u, v float32) bool {
		a := s.vertices[s.indices[2*id]].XYZ()
		b := s.vertices[s.indices[2*id+1]].XYZ()
		r.TFar = t
		r.Hit = Hit{U: u, V: v, Normal: b.Sub(a), PrimID: id, GeomID: 0}
		return false
	})
}

// occluded reports whether any segment lies within the ray interval.
func (s *Scene) occluded(r *Ray) bool {
	if !s.usable() {
		return false
	}
	found := false
	s.traverse(r, func(uint32, float32, float32, float32) bool {
		found = true
		return true
	})
	return found
}

// traverse walks the hierarchy depth first and calls onHit for every segment
// hit inside the current ray interval. onHit returns true to stop.
func (s *Scene) traverse(r *Ray, onHit func(id uint32, t, u, v float32) bool) {
	stack := make([]uint32, 1, 64)
	stack[0] = 0

	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &s.nodes[index]
		if !n.bounds.hitBy(r) {
			continue
		}

		if n.count == 0 {
			stack = append(stack, n.offset, index+1)
			continue
		}

		for _, id := range s.prims[n.offset : n.offset+n.count] {
			p0 := s.vertices[s.indices[2*id]]
			p1 := s.vertices[s.indices[2*id+1]]
			if t, u, v, ok := intersectSegment(r, p0, p1); ok {
				if onHit(id, t, u, v) {
					return
				}
			}
		}
	}
}

// intersectSegment intersects r with a flat curve of linearly interpolated
// radius between p0 and p1 (radius in W). The hit is the point of closest
// approach between the ray and the segment axis.
func intersectSegment(r *Ray, p0, p1 math.Vec4) (t, u, v float32, ok bool) {
	a, b := p0.XYZ(), p1.XYZ()
	e := b.Sub(a)
	d := r.Direction
	w := r.Origin.Sub(a)

	dd := d.Dot(d)
	if dd == 0 {
		return 0, 0, 0, false
	}
	de := d.Dot(e)
	ee := e.Dot(e)
	dw := d.Dot(w)
	ew := e.Dot(w)

	// Parameter along the segment.
	var s float32
	denom := dd*ee - de*de
	switch {
	case ee == 0:
		s = 0
	case denom > 1e-12*dd*ee:
		s = (dd*ew - de*dw) / denom
	default:
		s = ew / ee
	}
	s = min(max(s, 0), 1)

	q := a.Add(e.Scale(s))
	t = d.Dot(q.Sub(r.Origin)) / dd
	if t < r.TNear || t > r.TFar {
		return 0, 0, 0, false
	}

	off := r.Origin.Add(d.Scale(t)).Sub(q)
	dist2 := off.Dot(off)
	radius := abs(p0.W() + (p1.W()-p0.W())*s)
	if dist2 > radius*radius {
		return 0, 0, 0, false
	}

	if radius > 0 {
		v = float32(gomath.Sqrt(float64(dist2))) / radius
	}
	return t, s, v, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
