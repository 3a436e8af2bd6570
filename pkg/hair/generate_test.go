package hair

import (
	"reflect"
	"testing"

	"github.com/Faultbox/hairtrace/pkg/math"
)

func TestGenerateTangents(t *testing.T) {
	s := &Style{
		Segments: []uint16{2},
		Vertices: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
	}
	s.GenerateTangents()

	want := []math.Vec3{{X: 1}, {Y: 1}, {Y: 1}}
	if !reflect.DeepEqual(s.Tangents, want) {
		t.Errorf("tangents = %v, want %v", s.Tangents, want)
	}
}

func TestGenerateTangents_ShortStrands(t *testing.T) {
	tests := []struct {
		name     string
		segments []uint16
		vertices []math.Vec3
		want     []math.Vec3
	}{
		{
			name:     "single segment",
			segments: []uint16{1},
			vertices: []math.Vec3{{}, {Z: 3}},
			want:     []math.Vec3{{Z: 1}, {Z: 1}},
		},
		{
			name:     "single vertex strand",
			segments: []uint16{0},
			vertices: []math.Vec3{{X: 4}},
			want:     []math.Vec3{{}},
		},
		{
			name:     "single vertex after a strand",
			segments: []uint16{1, 0},
			vertices: []math.Vec3{{}, {Y: 2}, {X: 9}},
			want:     []math.Vec3{{Y: 1}, {Y: 1}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Style{Segments: tt.segments, Vertices: tt.vertices}
			s.GenerateTangents()
			if !reflect.DeepEqual(s.Tangents, tt.want) {
				t.Errorf("tangents = %v, want %v", s.Tangents, tt.want)
			}
		})
	}
}

func TestGenerateTangents_DefaultSegments(t *testing.T) {
	s := &Style{
		Vertices:            []math.Vec3{{}, {X: 2}, {X: 2, Y: 2}, {Z: 5}},
		DefaultSegmentCount: 1,
	}
	s.SetStrandCount(2)
	s.GenerateTangents()

	want := []math.Vec3{{X: 1}, {X: 1}}
	if len(s.Tangents) != 4 {
		t.Fatalf("len(tangents) = %d, want 4", len(s.Tangents))
	}
	for i := 0; i < 2; i++ {
		if s.Tangents[i] != want[i] {
			t.Errorf("tangent %d = %v, want %v", i, s.Tangents[i], want[i])
		}
	}
	if s.Tangents[2] != s.Tangents[3] {
		t.Errorf("tip tangent %v should repeat %v", s.Tangents[3], s.Tangents[2])
	}
	if l := s.Tangents[2].Length(); l < 0.999 || l > 1.001 {
		t.Errorf("tangent length %v, want ~1", l)
	}
}

func TestGenerateIndices(t *testing.T) {
	s := &Style{
		Segments: []uint16{2, 1},
		Vertices: make([]math.Vec3, 5),
	}
	s.GenerateIndices()

	want := []uint32{0, 1, 1, 2, 3, 4}
	if !reflect.DeepEqual(s.Indices, want) {
		t.Errorf("indices = %v, want %v", s.Indices, want)
	}
	if len(s.Indices) != 2*s.SegmentCount() {
		t.Errorf("len(indices) = %d, want %d", len(s.Indices), 2*s.SegmentCount())
	}
}

func TestGenerateThickness(t *testing.T) {
	s := &Style{
		Segments: []uint16{2, 0, 1},
		Vertices: make([]math.Vec3, 6),
	}
	s.GenerateThickness(0.5)

	want := []float32{0.5, 0.5, 0, 0, 0.5, 0}
	if !reflect.DeepEqual(s.Thickness, want) {
		t.Errorf("thickness = %v, want %v", s.Thickness, want)
	}
}

func TestGenerateBoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		vertices []math.Vec3
		min, max math.Vec3
	}{
		{
			name:     "straddles origin",
			vertices: []math.Vec3{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -4, Z: 1}},
			min:      math.Vec3{X: -1, Y: -4, Z: 0},
			max:      math.Vec3{X: 3, Y: 2, Z: 1},
		},
		{
			name:     "strictly positive",
			vertices: []math.Vec3{{X: 2, Y: 3, Z: 4}, {X: 5, Y: 6, Z: 7}},
			min:      math.Vec3{X: 2, Y: 3, Z: 4},
			max:      math.Vec3{X: 5, Y: 6, Z: 7},
		},
		{
			name:     "strictly negative",
			vertices: []math.Vec3{{X: -2, Y: -3, Z: -4}, {X: -5, Y: -6, Z: -7}},
			min:      math.Vec3{X: -5, Y: -6, Z: -7},
			max:      math.Vec3{X: -2, Y: -3, Z: -4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Style{Vertices: tt.vertices}
			s.GenerateBoundingBox()

			if !s.HasBoundingBox() {
				t.Fatal("HasBoundingBox() = false")
			}
			box := s.BoundingBox()
			if box.Min() != tt.min || box.Max() != tt.max {
				t.Errorf("box = [%v, %v], want [%v, %v]", box.Min(), box.Max(), tt.min, tt.max)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	s := &Style{Segments: []uint16{2, 1}, Vertices: make([]math.Vec3, 5)}
	if s.StrandCount() != 2 || s.SegmentCount() != 3 {
		t.Errorf("strands=%d segments=%d, want 2/3", s.StrandCount(), s.SegmentCount())
	}

	u := &Style{Vertices: make([]math.Vec3, 8), DefaultSegmentCount: 3}
	u.SetStrandCount(2)
	if u.StrandCount() != 2 || u.SegmentCount() != 6 {
		t.Errorf("strands=%d segments=%d, want 2/6", u.StrandCount(), u.SegmentCount())
	}
}
