package hair

import (
	gomath "math"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// SynthOptions controls procedural style generation.
type SynthOptions struct {
	Strands     int     // number of strands
	Segments    int     // maximum segments per strand, at least half are used
	Length      float32 // approximate strand length
	ScalpRadius float32 // radius of the hemisphere the roots are placed on
	Thickness   float32 // strand radius written to the thickness array
	Curl        float32 // random bend applied at every vertex
	Color       bool    // emit a per-vertex color array
}

// DefaultSynthOptions returns a small, quick-to-render style.
func DefaultSynthOptions() SynthOptions {
	return SynthOptions{
		Strands:     2000,
		Segments:    16,
		Length:      1.2,
		ScalpRadius: 1.0,
		Thickness:   0.004,
		Curl:        0.15,
	}
}

var (
	gravity   = math.Vec3{X: 0, Y: -1, Z: 0}
	darkHair  = math.Vec3{X: 0.32, Y: 0.22, Z: 0.12}
	lightHair = math.Vec3{X: 0.80, Y: 0.57, Z: 0.32}
)

// Synthesize grows strands outward from a hemisphere, drawing every random
// decision from rng. Tangents, indices, thickness and the bounding box are
// generated.
func Synthesize(opts SynthOptions, rng *XorShift64) *Style {
	maxSegments := min(max(opts.Segments, 1), gomath.MaxUint16)
	step := opts.Length / float32(maxSegments)

	s := &Style{
		Segments:            make([]uint16, 0, opts.Strands),
		DefaultSegmentCount: uint32(maxSegments),
		DefaultThickness:    opts.Thickness,
		DefaultTransparency: 1,
		DefaultColor:        lightHair,
	}
	s.SetInformation("synthesized")

	for i, n := 0, opts.Strands; i < n; i++ {
		segments := maxSegments/2 + rng.Intn(maxSegments-maxSegments/2+1)
		segments = max(segments, 1)
		s.Segments = append(s.Segments, uint16(segments))

		dir := hemisphere(rng)
		p := dir.Scale(opts.ScalpRadius)
		tint := rng.Float32()
		color := darkHair.Scale(1 - tint).Add(lightHair.Scale(tint))

		for v := 0; v <= segments; v++ {
			s.Vertices = append(s.Vertices, p)
			if opts.Color {
				s.Color = append(s.Color, color)
			}

			jitter := math.Vec3{
				X: rng.Float32()*2 - 1,
				Y: rng.Float32()*2 - 1,
				Z: rng.Float32()*2 - 1,
			}
			dir = dir.Add(gravity.Scale(0.15)).Add(jitter.Scale(opts.Curl)).Normalize()
			p = p.Add(dir.Scale(step))
		}
	}

	s.GenerateThickness(opts.Thickness)
	s.GenerateTangents()
	s.GenerateIndices()
	s.GenerateBoundingBox()
	return s
}

// hemisphere returns a unit direction with a non-negative Y component.
func hemisphere(rng *XorShift64) math.Vec3 {
	y := rng.Float64()
	phi := 2 * gomath.Pi * rng.Float64()
	r := gomath.Sqrt(1 - y*y)
	return math.Vec3{
		X: float32(r * gomath.Cos(phi)),
		Y: float32(y),
		Z: float32(r * gomath.Sin(phi)),
	}
}
