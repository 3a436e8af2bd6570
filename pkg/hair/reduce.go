package hair

import (
	gomath "math"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// Shuffle randomizes strand order without removing any strand.
func (s *Style) Shuffle(rng *XorShift64) {
	s.Reduce(1, rng)
}

// Reduce destructively drops strands picked at random from rng.
//
// ratio is the fraction of strands to discard: the loop keeps drawing while
// the pre-decremented budget strandCount-ceil(strandCount*ratio) stays
// non-zero, so it keeps one strand less than that budget. The budget is an
// unsigned count: whenever ceil(strandCount*ratio) reaches strandCount the
// budget starts at zero, the decrement wraps and every strand is drawn.
// That covers ratio 1, which is how Shuffle works, but also ratios just
// below 1 such as 0.95 of 10 strands.
//
// Each surviving strand keeps its vertices contiguous and in order; strand
// order is randomized. Indices are regenerated for the new layout.
func (s *Style) Reduce(ratio float32, rng *XorShift64) {
	ratio = min(max(ratio, 0), 1)

	strandCount := s.StrandCount()
	strandsLeft := uint32(strandCount) - uint32(gomath.Ceil(float64(float32(strandCount)*ratio)))

	offsets := s.strandOffsets()
	segments := append([]uint16(nil), s.Segments...)

	var (
		reducedSegments     = make([]uint16, 0, strandsLeft)
		reducedVertices     []math.Vec3
		reducedThickness    []float32
		reducedTangents     []math.Vec3
		reducedTransparency []float32
		reducedColor        []math.Vec3
	)

	for {
		strandsLeft--
		if strandsLeft == 0 || len(offsets) == 0 {
			break
		}

		pick := rng.Intn(len(offsets))

		segmentCount := uint16(s.DefaultSegmentCount)
		if len(segments) != 0 {
			segmentCount = segments[pick]
			last := len(segments) - 1
			segments[pick] = segments[last]
			segments = segments[:last]
		}
		reducedSegments = append(reducedSegments, segmentCount)

		start := offsets[pick]
		end := start + int(segmentCount) + 1

		if s.HasVertices() {
			reducedVertices = append(reducedVertices, s.Vertices[start:end]...)
		}
		if s.HasThickness() {
			reducedThickness = append(reducedThickness, s.Thickness[start:end]...)
		}
		if s.HasTangents() {
			reducedTangents = append(reducedTangents, s.Tangents[start:end]...)
		}
		if s.HasTransparency() {
			reducedTransparency = append(reducedTransparency, s.Transparency[start:end]...)
		}
		if s.HasColor() {
			reducedColor = append(reducedColor, s.Color[start:end]...)
		}

		last := len(offsets) - 1
		offsets[pick] = offsets[last]
		offsets = offsets[:last]
	}

	s.Segments = reducedSegments
	s.strandCount = uint32(len(reducedSegments))
	s.Vertices = reducedVertices

	s.GenerateIndices()

	s.Thickness = reducedThickness
	s.Tangents = reducedTangents
	s.Transparency = reducedTransparency
	s.Color = reducedColor
}

// strandOffsets returns the index of the first vertex of every strand.
func (s *Style) strandOffsets() []int {
	offsets := make([]int, s.StrandCount())

	vertex := 0
	for strand := range offsets {
		offsets[strand] = vertex
		vertex += s.strandSegments(strand) + 1
	}
	return offsets
}
