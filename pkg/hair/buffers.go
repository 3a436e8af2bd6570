package hair

import (
	"github.com/Faultbox/hairtrace/internal/parallel"
	"github.com/Faultbox/hairtrace/pkg/math"
)

// FallbackThickness is used for position/thickness data when the style has
// neither per-vertex thickness nor a non-zero default.
const FallbackThickness = 0.042

// Buffers is the per-vertex vertex data handed to renderers.
type Buffers struct {
	PositionThickness   []math.Vec4
	TangentTransparency []math.Vec4
	ColorTransparency   []math.Vec4
	Indices             []uint32
}

// Buffers builds all fused vertex buffers. The result is a snapshot: call it
// again after the style changes.
func (s *Style) Buffers() Buffers {
	return Buffers{
		PositionThickness:   s.PositionThickness(),
		TangentTransparency: s.TangentTransparency(),
		ColorTransparency:   s.ColorTransparency(),
		Indices:             s.SegmentIndices(),
	}
}

// PositionThickness returns (position, thickness) per vertex.
func (s *Style) PositionThickness() []math.Vec4 {
	out := make([]math.Vec4, s.VertexCount())

	thickness := s.DefaultThickness
	if thickness == 0 {
		thickness = FallbackThickness
	}

	parallel.For(len(out), func(i int) {
		t := thickness
		if s.HasThickness() {
			t = s.Thickness[i]
		}
		out[i] = s.Vertices[i].Vec4(t)
	})
	return out
}

// TangentTransparency returns (tangent, transparency) per vertex. Missing
// tangents read as zero.
func (s *Style) TangentTransparency() []math.Vec4 {
	out := make([]math.Vec4, s.VertexCount())

	parallel.For(len(out), func(i int) {
		var tangent math.Vec3
		if s.HasTangents() {
			tangent = s.Tangents[i]
		}
		out[i] = tangent.Vec4(s.transparencyAt(i))
	})
	return out
}

// ColorTransparency returns (color, transparency) per vertex.
func (s *Style) ColorTransparency() []math.Vec4 {
	out := make([]math.Vec4, s.VertexCount())

	parallel.For(len(out), func(i int) {
		color := s.DefaultColor
		if s.HasColor() {
			color = s.Color[i]
		}
		out[i] = color.Vec4(s.transparencyAt(i))
	})
	return out
}

func (s *Style) transparencyAt(i int) float32 {
	if s.HasTransparency() {
		return s.Transparency[i]
	}
	return s.DefaultTransparency
}
