package voxel

import (
	gomath "math"

	"github.com/Faultbox/hairtrace/internal/parallel"
	"github.com/Faultbox/hairtrace/pkg/hair"
	"github.com/Faultbox/hairtrace/pkg/math"
)

// grid accumulates splats before they are quantized into a Volume.
type grid struct {
	volume    *Volume
	voxelSize math.Vec3
	sums      []math.Vec3
}

func newGrid(s *hair.Style, res Resolution) *grid {
	bounds := s.BoundingBox()
	if !s.HasBoundingBox() {
		bounds = s.ComputeBoundingBox()
	}

	res.Width = max(res.Width, 1)
	res.Height = max(res.Height, 1)
	res.Depth = max(res.Depth, 1)

	size := bounds.Size.Div(math.Vec3{X: float32(res.Width), Y: float32(res.Height), Z: float32(res.Depth)})
	// A flat axis collapses onto its first voxel.
	if size.X <= 0 {
		size.X = 1
	}
	if size.Y <= 0 {
		size.Y = 1
	}
	if size.Z <= 0 {
		size.Z = 1
	}

	return &grid{
		volume: &Volume{
			Resolution: res,
			Bounds:     bounds,
			Densities:  make([]uint8, res.Count()),
			Tangents:   make([][4]int8, res.Count()),
		},
		voxelSize: size,
		sums:      make([]math.Vec3, res.Count()),
	}
}

// toVoxel maps a world position into continuous voxel coordinates.
func (g *grid) toVoxel(p math.Vec3) math.Vec3 {
	return p.Sub(g.volume.Bounds.Origin).Div(g.voxelSize)
}

// index floors voxel coordinates and clamps them into the grid.
func (g *grid) index(p math.Vec3) int {
	f := p.Floor()
	res := g.volume.Resolution
	return g.volume.Index(clampAxis(f.X, res.Width), clampAxis(f.Y, res.Height), clampAxis(f.Z, res.Depth))
}

func clampAxis(f float32, n int) int {
	switch {
	case f != f || f < 0: // NaN or below the grid
		return 0
	case f >= float32(n):
		return n - 1
	default:
		return int(f)
	}
}

// splat adds one contribution. Saturated voxels drop further contributions.
func (g *grid) splat(i int, tangent math.Vec3) {
	if g.volume.Densities[i] == MaxDensity {
		return
	}
	g.sums[i] = g.sums[i].Add(tangent)
	g.volume.Densities[i]++
}

// finish averages and quantizes the tangent sums.
func (g *grid) finish() *Volume {
	v := g.volume
	parallel.For(len(v.Densities), func(i int) {
		density := v.Densities[i]
		if density == 0 {
			v.Tangents[i] = [4]int8{}
			return
		}
		avg := g.sums[i].Div(math.Splat(float32(density))).Scale(127)
		v.Tangents[i] = [4]int8{quantize(avg.X), quantize(avg.Y), quantize(avg.Z), 0}
	})
	return v
}

func quantize(f float32) int8 {
	switch {
	case f != f:
		return 0
	case f > 127:
		return 127
	case f < -127:
		return -127
	default:
		return int8(f)
	}
}

// Vertices splats every vertex into the voxel containing it.
func Vertices(s *hair.Style, res Resolution) *Volume {
	g := newGrid(s, res)

	for i, p := range s.Vertices {
		var tangent math.Vec3
		if s.HasTangents() {
			tangent = s.Tangents[i]
		}
		g.splat(g.index(g.toVoxel(p)), tangent)
	}

	return g.finish()
}

// Segments walks every segment through the grid with a DDA-style stepper
// so every voxel the line passes through receives a contribution. The
// contributed tangent is the tangent of the segment's first vertex, or the
// segment direction when the style has no tangents.
func Segments(s *hair.Style, res Resolution) *Volume {
	g := newGrid(s, res)
	indices := s.SegmentIndices()

	for i := 0; i+1 < len(indices); i += 2 {
		a, b := s.Vertices[indices[i]], s.Vertices[indices[i+1]]

		tangent := b.Sub(a).Normalize()
		if s.HasTangents() {
			tangent = s.Tangents[indices[i]]
		}

		root := g.toVoxel(a)
		direction := g.toVoxel(b).Sub(root)
		steps := direction.Abs().MaxComponent()
		if steps <= 0 || gomath.IsInf(float64(steps), 0) {
			continue
		}
		direction = direction.Scale(1 / steps)

		for ; steps > 0; steps-- {
			g.splat(g.index(root), tangent)
			root = root.Add(direction)
		}
	}

	return g.finish()
}
