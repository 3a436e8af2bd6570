// Package framebuffer provides the CPU back buffer the ray tracer renders
// into, plus PNG and BMP encoding.
package framebuffer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Framebuffer is an RGBA8 image with its origin at the bottom-left corner,
// the way pixels are produced by the tracer. FlipVertical converts it to the
// top-left origin image encoders expect.
type Framebuffer struct {
	img *image.RGBA
}

// New creates a cleared framebuffer with the specified dimensions.
func New(width, height int) *Framebuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.img.Rect.Dx()
}

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.img.Rect.Dy()
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c color.RGBA) {
	pix := fb.img.Pix
	if c == (color.RGBA{}) {
		clear(pix)
		return
	}
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// SetPixel writes one pixel. Out-of-range coordinates are ignored.
// Distinct goroutines may write distinct pixels concurrently.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= fb.Width() || y >= fb.Height() {
		return
	}
	offset := fb.img.PixOffset(x, y)
	fb.img.Pix[offset+0] = c.R
	fb.img.Pix[offset+1] = c.G
	fb.img.Pix[offset+2] = c.B
	fb.img.Pix[offset+3] = c.A
}

// Pixel returns the pixel at (x, y).
func (fb *Framebuffer) Pixel(x, y int) color.RGBA {
	return fb.img.RGBAAt(x, y)
}

// Pixels returns the raw RGBA bytes, row by row.
func (fb *Framebuffer) Pixels() []byte {
	return fb.img.Pix
}

// FlipVertical mirrors the image around its horizontal center line.
func (fb *Framebuffer) FlipVertical() {
	height := fb.Height()
	rowSize := fb.Width() * 4
	tmp := make([]byte, rowSize)

	for y := 0; y < height/2; y++ {
		top := fb.img.Pix[y*fb.img.Stride : y*fb.img.Stride+rowSize]
		bottomY := height - 1 - y
		bottom := fb.img.Pix[bottomY*fb.img.Stride : bottomY*fb.img.Stride+rowSize]

		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// Image exposes the framebuffer as an image.Image without copying.
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// Save encodes the framebuffer to path. The format is chosen by extension:
// ".bmp" writes an uncompressed bitmap, anything else writes PNG.
func (fb *Framebuffer) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		if err := bmp.Encode(file, fb.img); err != nil {
			return fmt.Errorf("encoding BMP: %w", err)
		}
	default:
		if err := png.Encode(file, fb.img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}

	return file.Close()
}
