package hair

import (
	"reflect"
	"testing"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// createTaggedStyle builds strands whose vertices encode (strand, vertex)
// in X and Y so reordering can be detected after sampling.
func createTaggedStyle(strands int) *Style {
	s := &Style{}
	for strand := 0; strand < strands; strand++ {
		segments := 1 + strand%4
		s.Segments = append(s.Segments, uint16(segments))
		for v := 0; v <= segments; v++ {
			p := math.Vec3{X: float32(strand), Y: float32(v)}
			s.Vertices = append(s.Vertices, p)
			s.Thickness = append(s.Thickness, float32(strand)+float32(v)/10)
			s.Color = append(s.Color, p)
		}
	}
	s.GenerateTangents()
	s.GenerateIndices()
	return s
}

// checkStrandsIntact verifies every strand is contiguous, ordered and that
// the attribute arrays stay aligned with the vertices.
func checkStrandsIntact(t *testing.T, s *Style) map[int]bool {
	t.Helper()

	n := s.VertexCount()
	if len(s.Thickness) != n || len(s.Color) != n || len(s.Tangents) != n {
		t.Fatalf("attribute lengths %d/%d/%d, want %d",
			len(s.Thickness), len(s.Color), len(s.Tangents), n)
	}

	expected := 0
	for _, seg := range s.Segments {
		expected += int(seg) + 1
	}
	if expected != n {
		t.Fatalf("sum(segments+1) = %d, vertex count %d", expected, n)
	}

	seen := make(map[int]bool)
	vertex := 0
	for _, seg := range s.Segments {
		strand := int(s.Vertices[vertex].X)
		if seen[strand] {
			t.Errorf("strand %d appears twice", strand)
		}
		seen[strand] = true
		if int(seg) != 1+strand%4 {
			t.Errorf("strand %d has %d segments, want %d", strand, seg, 1+strand%4)
		}

		for v := 0; v <= int(seg); v++ {
			p := s.Vertices[vertex]
			if int(p.X) != strand || int(p.Y) != v {
				t.Errorf("vertex %d = %v, want strand %d vertex %d", vertex, p, strand, v)
			}
			if s.Color[vertex] != p {
				t.Errorf("color %d not aligned with vertex", vertex)
			}
			if want := float32(strand) + float32(v)/10; s.Thickness[vertex] != want {
				t.Errorf("thickness %d = %v, want %v", vertex, s.Thickness[vertex], want)
			}
			vertex++
		}
	}

	if !reflect.DeepEqual(s.Indices, s.lineIndices()) {
		t.Error("indices were not regenerated for the new layout")
	}
	return seen
}

func TestReduce_Counts(t *testing.T) {
	tests := []struct {
		name    string
		strands int
		ratio   float32
		want    int
	}{
		// strands - ceil(strands*ratio) - 1 survive
		{"half", 10, 0.5, 4},
		{"quarter", 20, 0.25, 14},
		{"three quarters", 8, 0.75, 1},
		{"nothing discarded", 10, 0, 9},
		{"single strand", 1, 0, 0},
		// ceil(10*0.95) == 10: the budget wraps and nothing is dropped
		{"ceil reaches count", 10, 0.95, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTaggedStyle(tt.strands)
			s.Reduce(tt.ratio, NewXorShift64(42))

			if s.StrandCount() != tt.want {
				t.Fatalf("strand count = %d, want %d", s.StrandCount(), tt.want)
			}
			checkStrandsIntact(t, s)
		})
	}
}

func TestReduce_RatioOneShufflesEverything(t *testing.T) {
	const strands = 25
	s := createTaggedStyle(strands)
	original := append([]math.Vec3(nil), s.Vertices...)

	s.Reduce(1, NewXorShift64(7))

	if s.StrandCount() != strands {
		t.Fatalf("strand count = %d, want %d", s.StrandCount(), strands)
	}
	seen := checkStrandsIntact(t, s)
	if len(seen) != strands {
		t.Errorf("%d distinct strands survived, want %d", len(seen), strands)
	}
	if reflect.DeepEqual(original, s.Vertices) {
		t.Error("shuffle kept the original strand order")
	}
}

func TestShuffle_MatchesReduceOne(t *testing.T) {
	a := createTaggedStyle(12)
	b := createTaggedStyle(12)

	a.Shuffle(NewXorShift64(99))
	b.Reduce(1, NewXorShift64(99))

	if !reflect.DeepEqual(a.Vertices, b.Vertices) {
		t.Error("Shuffle and Reduce(1) diverged for the same seed")
	}
}

func TestReduce_Deterministic(t *testing.T) {
	a := createTaggedStyle(50)
	b := createTaggedStyle(50)

	a.Reduce(0.3, NewXorShift64(1234))
	b.Reduce(0.3, NewXorShift64(1234))

	if !reflect.DeepEqual(a.Vertices, b.Vertices) || !reflect.DeepEqual(a.Segments, b.Segments) {
		t.Error("same seed produced different reductions")
	}

	c := createTaggedStyle(50)
	c.Reduce(0.3, NewXorShift64(4321))
	if reflect.DeepEqual(a.Vertices, c.Vertices) {
		t.Error("different seeds produced identical reductions")
	}
}

func TestReduce_UniformSegments(t *testing.T) {
	s := &Style{DefaultSegmentCount: 2}
	for strand := 0; strand < 6; strand++ {
		for v := 0; v < 3; v++ {
			s.Vertices = append(s.Vertices, math.Vec3{X: float32(strand), Y: float32(v)})
		}
	}
	s.SetStrandCount(6)

	s.Reduce(0.5, NewXorShift64(5))

	if s.StrandCount() != 2 {
		t.Fatalf("strand count = %d, want 2", s.StrandCount())
	}
	if !reflect.DeepEqual(s.Segments, []uint16{2, 2}) {
		t.Errorf("segments = %v, want [2 2]", s.Segments)
	}
	if s.VertexCount() != 6 {
		t.Errorf("vertex count = %d, want 6", s.VertexCount())
	}
	if s.HasThickness() || s.HasColor() {
		t.Error("absent attributes should stay absent")
	}
}

func TestReduce_EmptyStyle(t *testing.T) {
	s := &Style{}
	s.Reduce(0.5, NewXorShift64(1))

	if s.StrandCount() != 0 || s.VertexCount() != 0 || len(s.Indices) != 0 {
		t.Errorf("empty style grew: %d strands, %d vertices", s.StrandCount(), s.VertexCount())
	}
}

func TestXorShift64(t *testing.T) {
	a := NewXorShift64(1)
	b := NewXorShift64(1)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("sequences with the same seed diverged")
		}
	}

	// Reference value for a single xorshift64 (13, 7, 17) step from 1.
	if got := NewXorShift64(1).Uint64(); got != 1082269761 {
		t.Errorf("first value = %d, want 1082269761", got)
	}

	zero := NewXorShift64(0)
	if zero.Uint64() == 0 {
		t.Error("zero seed must not lock the generator at zero")
	}

	r := NewXorShift64(3)
	for i := 0; i < 1000; i++ {
		if n := r.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn(7) = %d", n)
		}
		if f := r.Float64(); f < 0 || f > 1 {
			t.Fatalf("Float64() = %v", f)
		}
	}
}
