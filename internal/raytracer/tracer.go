package raytracer

import (
	"fmt"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hairtrace/internal/camera"
	"github.com/Faultbox/hairtrace/internal/framebuffer"
	"github.com/Faultbox/hairtrace/internal/logger"
	"github.com/Faultbox/hairtrace/internal/parallel"
	"github.com/Faultbox/hairtrace/pkg/math"
)

// Camera supplies the per-frame view. *camera.OrbitCamera implements it.
type Camera interface {
	ViewMatrix() math.Mat4
	ViewingPlane(width, height int) camera.ViewingPlane
}

// Options configures a Tracer.
type Options struct {
	Width, Height int
	ShadowsOff    bool
	Shading       Shading        // zero value means DefaultShading
	Background    color.RGBA     // written where primary rays miss
	Diagnostics   DiagnosticFunc // nil logs through the package logger
}

// Tracer renders one hair style into a back buffer.
type Tracer struct {
	scene      *Scene
	backBuffer *framebuffer.Framebuffer
	shading    Shading
	background color.RGBA
	shadowsOff bool
	log        *zap.Logger
}

// New builds the acceleration structure for geom. The build finishes before
// New returns; the scene is read-only afterwards.
func New(geom Geometry, opts Options) (*Tracer, error) {
	log := logger.Named("raytracer")

	diag := opts.Diagnostics
	if diag == nil {
		diag = logDiagnostics(log)
	}

	start := time.Now()
	scene, err := NewScene(geom, diag)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	log.Debug("scene built",
		zap.Int("segments", scene.SegmentCount()),
		zap.Int("nodes", scene.NodeCount()),
		zap.Duration("elapsed", time.Since(start)))

	shading := opts.Shading
	if shading == (Shading{}) {
		shading = DefaultShading()
	}

	return &Tracer{
		scene:      scene,
		backBuffer: framebuffer.New(opts.Width, opts.Height),
		shading:    shading,
		background: opts.Background,
		shadowsOff: opts.ShadowsOff,
		log:        log,
	}, nil
}

// Scene returns the acceleration structure.
func (t *Tracer) Scene() *Scene {
	return t.scene
}

// Framebuffer returns the back buffer written by Draw.
func (t *Tracer) Framebuffer() *framebuffer.Framebuffer {
	return t.backBuffer
}

// ToggleShadows switches shadow rays on or off.
func (t *Tracer) ToggleShadows() {
	t.shadowsOff = !t.shadowsOff
}

// ShadowsOff reports whether shadow rays are disabled.
func (t *Tracer) ShadowsOff() bool {
	return t.shadowsOff
}

// Draw fills the back buffer with the background, traces one primary ray per pixel and flips
// the result so row 0 is the top of the image. Rows are traced in parallel.
func (t *Tracer) Draw(cam Camera) {
	width, height := t.backBuffer.Width(), t.backBuffer.Height()
	plane := cam.ViewingPlane(width, height)
	view := cam.ViewMatrix()

	t.backBuffer.Fill(t.background)

	if t.scene.closed {
		t.scene.diagnostic(DiagnosticInvalidOperation, "draw after close")
		return
	}

	start := time.Now()
	parallel.For(height, func(j int) {
		for i := 0; i < width; i++ {
			if c, ok := t.trace(i, j, plane, view); ok {
				t.backBuffer.SetPixel(i, j, c)
			}
		}
	})
	t.backBuffer.FlipVertical()

	t.log.Debug("frame traced",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("shadows", !t.shadowsOff),
		zap.Duration("elapsed", time.Since(start)))
}

// Render draws a frame and saves it to path (PNG, or BMP for ".bmp").
func (t *Tracer) Render(cam Camera, path string) error {
	t.Draw(cam)
	if err := t.backBuffer.Save(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}

// Close releases the acceleration structure.
func (t *Tracer) Close() {
	t.scene.Close()
}

// trace shades pixel (i, j). It reports false when the primary ray misses.
func (t *Tracer) trace(i, j int, plane camera.ViewingPlane, view math.Mat4) (color.RGBA, bool) {
	x, y := float32(i), float32(j)
	direction := plane.X.Scale(x).Add(plane.Y.Scale(y)).Add(plane.Z).Normalize()

	ray := NewRay(plane.Point, direction, 0)
	if !ray.Intersects(t.scene) {
		return color.RGBA{}, false
	}

	sh := t.shading
	c := sh.HairColor.Scale(0.5).Vec4(1)

	shadowRay := NewRay(ray.IntersectionPoint(), sh.Light, Epsilon)
	tangent := view.TransformDirection(ray.Tangent()).Normalize()

	if t.shadowsOff || !shadowRay.OccludedBy(t.scene) {
		shading := kajiyaKay(sh.HairColor, sh.LightColor, sh.Shininess, tangent, sh.Light, sh.Eye)
		if t.shadowsOff {
			c = shading.Vec4(1)
		} else {
			c = c.XYZ().Add(shading.Scale(0.5)).Vec4(c.W())
		}
	}

	return color.RGBA{
		R: uint8(clampUnit(c[0]) * 255),
		G: uint8(clampUnit(c[1]) * 255),
		B: uint8(clampUnit(c[2]) * 255),
		A: uint8(clampUnit(c[3]) * 255),
	}, true
}
