package hair

import "github.com/Faultbox/hairtrace/pkg/math"

// GenerateThickness sets every vertex thickness to radius, except the last
// vertex of each strand which tapers to zero.
func (s *Style) GenerateThickness(radius float32) {
	thickness := make([]float32, 0, s.VertexCount())

	for strand := 0; strand < s.StrandCount(); strand++ {
		for i, n := 0, s.strandSegments(strand); i < n; i++ {
			thickness = append(thickness, radius)
		}
		thickness = append(thickness, 0)
	}

	s.Thickness = thickness
}

// GenerateTangents derives per-vertex tangents by forward differences. The
// last vertex of a strand repeats the tangent of its predecessor; a strand
// made of a single vertex gets a zero tangent.
func (s *Style) GenerateTangents() {
	tangents := make([]math.Vec3, 0, s.VertexCount())

	vertex := 0
	for strand := 0; strand < s.StrandCount(); strand++ {
		segments := s.strandSegments(strand)
		if vertex+segments >= len(s.Vertices) {
			break
		}

		var tangent math.Vec3
		for i := 0; i < segments; i++ {
			tangent = s.Vertices[vertex+1].Sub(s.Vertices[vertex]).Normalize()
			tangents = append(tangents, tangent)
			vertex++
		}

		tangents = append(tangents, tangent)
		vertex++
	}

	s.Tangents = tangents
}

// GenerateIndices builds the line-list connectivity: one (v, v+1) pair per
// segment, never bridging two strands.
func (s *Style) GenerateIndices() {
	s.Indices = s.lineIndices()
}

// SegmentIndices returns the stored indices, or derives them from the strand
// layout when none are stored.
func (s *Style) SegmentIndices() []uint32 {
	if s.HasIndices() {
		return s.Indices
	}
	return s.lineIndices()
}

func (s *Style) lineIndices() []uint32 {
	indices := make([]uint32, 0, 2*max(s.SegmentCount(), 0))

	vertex := uint32(0)
	for strand := 0; strand < s.StrandCount(); strand++ {
		for i, n := 0, s.strandSegments(strand); i < n; i++ {
			indices = append(indices, vertex, vertex+1)
			vertex++
		}
		vertex++ // skip the tip
	}

	return indices
}

// GenerateBoundingBox computes and stores the bounding box of all vertices.
func (s *Style) GenerateBoundingBox() {
	lo, hi := s.extents()
	s.SetBoundingBox(lo, hi)
}

// ComputeBoundingBox returns the bounding box of all vertices without
// storing it.
func (s *Style) ComputeBoundingBox() AABB {
	lo, hi := s.extents()
	return aabb(lo, hi)
}

// extents is seeded from the first vertex so clouds that do not contain the
// origin get their true extrema.
func (s *Style) extents() (lo, hi math.Vec3) {
	if len(s.Vertices) == 0 {
		return lo, hi
	}

	lo, hi = s.Vertices[0], s.Vertices[0]
	for _, p := range s.Vertices[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}
