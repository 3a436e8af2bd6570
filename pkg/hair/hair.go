// Package hair models strand-based hair styles: piecewise-linear strands with
// optional per-vertex thickness, transparency, color and tangents.
//
// A Style is exclusively owned by its caller. Mutating operations (Load,
// Reduce, the Generate* family) must not run concurrently with any other
// access to the same Style.
package hair

import (
	"bytes"
	"errors"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// InformationSize is the fixed size of the free-text header field.
const InformationSize = 64

// Style is an in-memory hair style.
//
// Optional arrays are "present" when non-empty. Every present per-vertex
// array must have exactly len(Vertices) elements.
type Style struct {
	Segments     []uint16    // segments per strand; empty means DefaultSegmentCount for all
	Vertices     []math.Vec3 // strand-major positions
	Thickness    []float32
	Transparency []float32
	Color        []math.Vec3
	Tangents     []math.Vec3
	Indices      []uint32 // line list, one pair per segment

	DefaultSegmentCount uint32
	DefaultThickness    float32
	DefaultTransparency float32
	DefaultColor        math.Vec3

	strandCount    uint32 // used only when Segments is empty
	boundsMin      math.Vec3
	boundsMax      math.Vec3
	hasBoundingBox bool
	information    [InformationSize]byte

	lastErr error
}

// AABB is an axis-aligned bounding box described by its origin and extent.
type AABB struct {
	Origin math.Vec3
	Radius float32 // length of the diagonal
	Size   math.Vec3
	Volume float32
}

// Min returns the minimum corner.
func (b AABB) Min() math.Vec3 {
	return b.Origin
}

// Max returns the maximum corner.
func (b AABB) Max() math.Vec3 {
	return b.Origin.Add(b.Size)
}

// OK reports whether the last fallible operation succeeded.
func (s *Style) OK() bool {
	return s.lastErr == nil
}

// Err returns the error recorded by the last fallible operation, or nil.
func (s *Style) Err() error {
	return s.lastErr
}

// LastError returns the kind of the last recorded error, ErrNone on success.
func (s *Style) LastError() Error {
	if s.lastErr == nil {
		return ErrNone
	}
	var kind Error
	if errors.As(s.lastErr, &kind) {
		return kind
	}
	return ErrInvalidFormat
}

func (s *Style) setErr(err error) error {
	s.lastErr = err
	return err
}

// StrandCount returns len(Segments) when segments are present, otherwise the
// manually set strand count.
func (s *Style) StrandCount() int {
	if len(s.Segments) != 0 {
		return len(s.Segments)
	}
	return int(s.strandCount)
}

// SetStrandCount sets the strand count used when no segments array exists.
func (s *Style) SetStrandCount(n uint32) {
	s.strandCount = n
}

// VertexCount returns the number of vertices.
func (s *Style) VertexCount() int {
	return len(s.Vertices)
}

// SegmentCount returns VertexCount - StrandCount: each strand has one more
// vertex than it has segments.
func (s *Style) SegmentCount() int {
	return s.VertexCount() - s.StrandCount()
}

// strandSegments returns the segment count of strand i.
func (s *Style) strandSegments(i int) int {
	if len(s.Segments) != 0 {
		return int(s.Segments[i])
	}
	return int(s.DefaultSegmentCount)
}

func (s *Style) HasSegments() bool     { return len(s.Segments) != 0 }
func (s *Style) HasVertices() bool     { return len(s.Vertices) != 0 }
func (s *Style) HasThickness() bool    { return len(s.Thickness) != 0 }
func (s *Style) HasTransparency() bool { return len(s.Transparency) != 0 }
func (s *Style) HasColor() bool        { return len(s.Color) != 0 }
func (s *Style) HasTangents() bool     { return len(s.Tangents) != 0 }
func (s *Style) HasIndices() bool      { return len(s.Indices) != 0 }

// HasBoundingBox reports whether a bounding box was generated or loaded.
func (s *Style) HasBoundingBox() bool {
	return s.hasBoundingBox
}

// SetBoundingBox stores an explicit bounding box.
func (s *Style) SetBoundingBox(min, max math.Vec3) {
	s.boundsMin, s.boundsMax = min, max
	s.hasBoundingBox = true
}

// BoundingBox returns the stored bounding box.
func (s *Style) BoundingBox() AABB {
	return aabb(s.boundsMin, s.boundsMax)
}

func aabb(min, max math.Vec3) AABB {
	size := max.Sub(min)
	return AABB{
		Origin: min,
		Radius: size.Length(),
		Size:   size,
		Volume: size.X * size.Y * size.Z,
	}
}

// Information returns the free-text header field without trailing NULs.
func (s *Style) Information() string {
	if i := bytes.IndexByte(s.information[:], 0); i >= 0 {
		return string(s.information[:i])
	}
	return string(s.information[:])
}

// SetInformation stores text in the header field, truncated to
// InformationSize bytes and NUL padded.
func (s *Style) SetInformation(info string) {
	s.information = [InformationSize]byte{}
	copy(s.information[:], info)
}

// SizeInBytes returns the serialized size of the style.
func (s *Style) SizeInBytes() int {
	size := headerSize
	size += len(s.Segments) * 2
	size += len(s.Vertices) * 12
	size += len(s.Thickness) * 4
	size += len(s.Transparency) * 4
	size += len(s.Color) * 12
	size += len(s.Tangents) * 12
	size += len(s.Indices) * 4
	return size
}

// Validate checks the structural invariants and records the result as the
// last error.
func (s *Style) Validate() error {
	if !s.formatIsValid() {
		return s.setErr(ErrInvalidFormat)
	}
	return s.setErr(nil)
}

func (s *Style) formatIsValid() bool {
	n := len(s.Vertices)
	if n == 0 {
		return false
	}
	if s.HasThickness() && len(s.Thickness) != n {
		return false
	}
	if s.HasTransparency() && len(s.Transparency) != n {
		return false
	}
	if s.HasColor() && len(s.Color) != n {
		return false
	}
	if s.HasTangents() && len(s.Tangents) != n {
		return false
	}
	if s.HasSegments() {
		total := 0
		for _, seg := range s.Segments {
			total += int(seg) + 1
		}
		if total != n {
			return false
		}
	} else if s.StrandCount()*(int(s.DefaultSegmentCount)+1) != n {
		return false
	}
	if s.HasIndices() {
		if len(s.Indices) != 2*s.SegmentCount() {
			return false
		}
		for _, index := range s.Indices {
			if int(index) >= n {
				return false
			}
		}
	}
	return true
}
