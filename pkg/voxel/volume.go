// Package voxel rasterizes hair styles into regular density/tangent grids.
package voxel

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/hairtrace/pkg/hair"
)

// MaxDensity is the saturation value of a voxel's occupancy count.
const MaxDensity = 255

// Resolution is the number of voxels along each axis.
type Resolution struct {
	Width, Height, Depth int
}

// Count returns the total number of voxels.
func (r Resolution) Count() int {
	return r.Width * r.Height * r.Depth
}

// Volume is a voxelized snapshot of a hair style. It holds no reference to
// the style it was built from.
type Volume struct {
	Resolution Resolution
	Bounds     hair.AABB

	// Densities holds one occupancy count per voxel, x fastest, then y, then z.
	Densities []uint8
	// Tangents holds the averaged tangent per voxel, quantized to [-127, 127].
	// The fourth component is unused.
	Tangents [][4]int8
}

// Index returns the linear index of voxel (x, y, z).
func (v *Volume) Index(x, y, z int) int {
	return x + y*v.Resolution.Width + z*v.Resolution.Width*v.Resolution.Height
}

// Density returns the density of voxel (x, y, z).
func (v *Volume) Density(x, y, z int) uint8 {
	return v.Densities[v.Index(x, y, z)]
}

// Tangent returns the quantized tangent of voxel (x, y, z).
func (v *Volume) Tangent(x, y, z int) [4]int8 {
	return v.Tangents[v.Index(x, y, z)]
}

// Normalize stretches densities linearly so the observed minimum maps to 0
// and the observed maximum to 255. A volume with a single density value is
// left unchanged.
func (v *Volume) Normalize() {
	if len(v.Densities) == 0 {
		return
	}

	lo, hi := uint8(MaxDensity), uint8(0)
	for _, d := range v.Densities {
		lo = min(lo, d)
		hi = max(hi, d)
	}
	if hi == lo {
		return
	}

	scaling := float32(MaxDensity) / float32(hi-lo)
	for i, d := range v.Densities {
		v.Densities[i] = uint8(float32(d-lo) * scaling)
	}
}

// WriteTo writes the raw density grid (no header).
func (v *Volume) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(v.Densities)
	return int64(n), err
}

// Save writes the raw density grid to path.
func (v *Volume) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating volume file: %w", err)
	}

	if _, err := v.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("writing densities: %w", err)
	}
	return file.Close()
}
