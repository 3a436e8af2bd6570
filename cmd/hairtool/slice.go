package main

import (
	"fmt"
	"image/color"

	"github.com/Faultbox/hairtrace/internal/framebuffer"
	"github.com/Faultbox/hairtrace/pkg/voxel"
)

// sliceColor maps a voxel to RGBA: the quantized tangent shifted into
// [1, 255] as RGB, the density as alpha. Empty voxels stay transparent.
func sliceColor(density uint8, tangent [4]int8) color.RGBA {
	if density == 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(int(tangent[0]) + 128),
		G: uint8(int(tangent[1]) + 128),
		B: uint8(int(tangent[2]) + 128),
		A: density,
	}
}

// saveSlice writes the XY plane at depth z as an image, +Y up.
func saveSlice(v *voxel.Volume, z int, path string) error {
	res := v.Resolution
	if z < 0 || z >= res.Depth {
		return fmt.Errorf("slice %d outside depth %d", z, res.Depth)
	}

	fb := framebuffer.New(res.Width, res.Height)
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			fb.SetPixel(x, y, sliceColor(v.Density(x, y, z), v.Tangent(x, y, z)))
		}
	}
	fb.FlipVertical()

	if err := fb.Save(path); err != nil {
		return fmt.Errorf("saving slice: %w", err)
	}
	return nil
}
