package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	gomath "math"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/hairtrace/internal/camera"
	"github.com/Faultbox/hairtrace/internal/config"
	"github.com/Faultbox/hairtrace/internal/logger"
	"github.com/Faultbox/hairtrace/internal/raytracer"
	"github.com/Faultbox/hairtrace/pkg/hair"
	"github.com/Faultbox/hairtrace/pkg/voxel"
)

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: hairtool info <file.hair>")
	}

	style, err := hair.Load(args[0])
	if err != nil {
		return err
	}

	printInfo(os.Stdout, args[0], style)
	return nil
}

func printInfo(w io.Writer, path string, s *hair.Style) {
	fmt.Fprintf(w, "File:        %s\n", path)
	fmt.Fprintf(w, "Information: %s\n", s.Information())
	fmt.Fprintf(w, "Strands:     %d\n", s.StrandCount())
	fmt.Fprintf(w, "Vertices:    %d\n", s.VertexCount())
	fmt.Fprintf(w, "Segments:    %d\n", s.SegmentCount())
	fmt.Fprintf(w, "Size:        %.2f MB\n", float64(s.SizeInBytes())/(1024*1024))
	fmt.Fprintln(w)

	var arrays []string
	for _, a := range []struct {
		name    string
		present bool
	}{
		{"segments", s.HasSegments()},
		{"vertices", s.HasVertices()},
		{"thickness", s.HasThickness()},
		{"transparency", s.HasTransparency()},
		{"color", s.HasColor()},
		{"tangents", s.HasTangents()},
		{"indices", s.HasIndices()},
	} {
		if a.present {
			arrays = append(arrays, a.name)
		}
	}
	fmt.Fprintf(w, "Arrays:      %s\n", strings.Join(arrays, ", "))

	fmt.Fprintln(w, "Defaults:")
	fmt.Fprintf(w, "  segments     %d\n", s.DefaultSegmentCount)
	fmt.Fprintf(w, "  thickness    %g\n", s.DefaultThickness)
	fmt.Fprintf(w, "  transparency %g\n", s.DefaultTransparency)
	fmt.Fprintf(w, "  color        (%g, %g, %g)\n", s.DefaultColor.X, s.DefaultColor.Y, s.DefaultColor.Z)

	if s.HasBoundingBox() {
		box := s.BoundingBox()
		fmt.Fprintln(w, "Bounds:")
		fmt.Fprintf(w, "  origin       (%g, %g, %g)\n", box.Origin.X, box.Origin.Y, box.Origin.Z)
		fmt.Fprintf(w, "  size         (%g, %g, %g)\n", box.Size.X, box.Size.Y, box.Size.Z)
	}
}

func cmdSynth(cfg *config.Config, args []string) error {
	gen := cfg.Generate

	fs := flag.NewFlagSet("synth", flag.ContinueOnError)
	fs.IntVar(&gen.Strands, "strands", gen.Strands, "Number of strands")
	fs.IntVar(&gen.Segments, "segments", gen.Segments, "Maximum segments per strand")
	fs.BoolVar(&gen.Color, "color", gen.Color, "Write per-vertex colors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: hairtool synth [-strands n] [-segments n] [-color] <out.hair>")
	}

	opts := hair.SynthOptions{
		Strands:     gen.Strands,
		Segments:    gen.Segments,
		Length:      gen.Length,
		ScalpRadius: gen.ScalpRadius,
		Thickness:   gen.Thickness,
		Curl:        gen.Curl,
		Color:       gen.Color,
	}
	style := hair.Synthesize(opts, hair.NewXorShift64(gen.Seed))

	if err := style.Save(fs.Arg(0)); err != nil {
		return err
	}
	logger.Info("style synthesized",
		zap.String("output", fs.Arg(0)),
		zap.Int("strands", style.StrandCount()),
		zap.Int("vertices", style.VertexCount()))
	return nil
}

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	tangents := fs.Bool("tangents", true, "Generate tangents")
	indices := fs.Bool("indices", true, "Generate line indices")
	bounds := fs.Bool("bbox", true, "Generate the bounding box")
	thickness := fs.Float64("thickness", 0, "Generate tapered thickness with this root radius (0 = keep)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: hairtool generate [options] <in.hair> [out.hair]")
	}

	in := fs.Arg(0)
	out := in
	if fs.NArg() > 1 {
		out = fs.Arg(1)
	}

	style, err := hair.Load(in)
	if err != nil {
		return err
	}

	if *thickness > 0 {
		style.GenerateThickness(float32(*thickness))
	}
	if *tangents {
		style.GenerateTangents()
	}
	if *indices {
		style.GenerateIndices()
	}
	if *bounds {
		style.GenerateBoundingBox()
	}

	if err := style.Save(out); err != nil {
		return err
	}
	logger.Info("attributes generated", zap.String("output", out))
	return nil
}

func cmdReduce(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("reduce", flag.ContinueOnError)
	ratio := fs.Float64("ratio", float64(cfg.Reduce.Ratio), "Fraction of strands to discard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: hairtool reduce [-ratio r] <in.hair> <out.hair>")
	}
	if *ratio < 0 || *ratio > 1 {
		return fmt.Errorf("ratio %g outside [0, 1]", *ratio)
	}

	return resample(fs.Arg(0), fs.Arg(1), "strands reduced", func(s *hair.Style) {
		s.Reduce(float32(*ratio), hair.NewXorShift64(cfg.Reduce.Seed))
	})
}

func cmdShuffle(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: hairtool shuffle <in.hair> <out.hair>")
	}

	return resample(args[0], args[1], "strands shuffled", func(s *hair.Style) {
		s.Shuffle(hair.NewXorShift64(cfg.Reduce.Seed))
	})
}

// resample loads in, applies op and saves the result to out.
func resample(in, out, msg string, op func(*hair.Style)) error {
	style, err := hair.Load(in)
	if err != nil {
		return err
	}

	before := style.StrandCount()
	op(style)

	if err := style.Save(out); err != nil {
		return err
	}
	logger.Info(msg,
		zap.String("output", out),
		zap.Int("before", before),
		zap.Int("after", style.StrandCount()))
	return nil
}

func cmdVoxelize(cfg *config.Config, args []string) error {
	vc := cfg.Voxel

	fs := flag.NewFlagSet("voxelize", flag.ContinueOnError)
	fs.StringVar(&vc.Method, "method", vc.Method, "Splat \"vertices\" or walk \"segments\"")
	fs.BoolVar(&vc.Normalize, "normalize", vc.Normalize, "Stretch densities to the full byte range")
	fs.IntVar(&vc.Width, "nx", vc.Width, "Voxels along X")
	fs.IntVar(&vc.Height, "ny", vc.Height, "Voxels along Y")
	fs.IntVar(&vc.Depth, "nz", vc.Depth, "Voxels along Z")
	fs.StringVar(&vc.Slice, "slice", vc.Slice, "Also write the middle Z slice as an image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: hairtool voxelize [options] <in.hair> [out.raw]")
	}

	out := vc.Output
	if fs.NArg() > 1 {
		out = fs.Arg(1)
	}

	res := vc.Resolution()
	if res.Width <= 0 || res.Height <= 0 || res.Depth <= 0 {
		return fmt.Errorf("voxel resolution %dx%dx%d must be positive", res.Width, res.Height, res.Depth)
	}

	style, err := hair.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	done := logger.Timed("style voxelized", zap.String("method", vc.Method))

	var volume *voxel.Volume
	switch vc.Method {
	case "vertices":
		volume = voxel.Vertices(style, res)
	case "segments":
		volume = voxel.Segments(style, res)
	default:
		return fmt.Errorf("unknown voxel method %q", vc.Method)
	}

	if vc.Normalize {
		volume.Normalize()
	}

	if err := volume.Save(out); err != nil {
		return err
	}

	if vc.Slice != "" {
		if err := saveSlice(volume, res.Depth/2, vc.Slice); err != nil {
			return err
		}
	}

	filled := 0
	for _, d := range volume.Densities {
		if d != 0 {
			filled++
		}
	}
	done(zap.String("output", out), zap.Int("voxels", res.Count()), zap.Int("filled", filled))
	return nil
}

func cmdRender(cfg *config.Config, args []string) error {
	rc := cfg.Render

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fov := fs.Float64("fov", float64(rc.FieldOfView), "Vertical field of view in degrees")
	yaw := fs.Float64("yaw", float64(rc.Yaw), "Camera yaw in degrees")
	pitch := fs.Float64("pitch", float64(rc.Pitch), "Camera pitch in degrees")
	zoom := fs.Float64("zoom", float64(rc.Zoom), "Scale the framed camera distance (< 1 moves closer)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: hairtool render [options] <in.hair> [out.png]")
	}

	out := rc.Output
	if fs.NArg() > 1 {
		out = fs.Arg(1)
	}

	style, err := hair.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	box := style.ComputeBoundingBox()
	if style.HasBoundingBox() {
		box = style.BoundingBox()
	}

	cam := camera.NewOrbitCamera()
	cam.FieldOfView = radians(*fov)
	cam.FitToBounds(box)
	cam.RotationX, cam.RotationY = 0, 0
	cam.Orbit(radians(*yaw), radians(*pitch))
	if *zoom <= 0 {
		return fmt.Errorf("zoom %g must be positive", *zoom)
	}
	cam.Zoom(float32(*zoom))

	shading := raytracer.DefaultShading()
	if rc.Light != nil {
		shading.Light = raytracer.LightDirection(rc.Light.Azimuth, rc.Light.Elevation)
	}

	tracer, err := raytracer.New(style, raytracer.Options{
		Width:      rc.Width,
		Height:     rc.Height,
		ShadowsOff: !rc.Shadows,
		Shading:    shading,
		Background: color.RGBA{R: rc.Background[0], G: rc.Background[1], B: rc.Background[2], A: rc.Background[3]},
	})
	if err != nil {
		return err
	}
	defer tracer.Close()

	done := logger.Timed("frame rendered",
		zap.Int("width", rc.Width),
		zap.Int("height", rc.Height),
		zap.Bool("shadows", rc.Shadows))
	if err := tracer.Render(cam, out); err != nil {
		return err
	}
	done(zap.String("output", out))
	return nil
}

func cmdInitConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	user := fs.Bool("user", false, "Write to the per-user config directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		path string
		err  error
	)
	switch {
	case *user:
		path, err = cfg.SaveUser()
	case fs.NArg() > 0:
		path, err = fs.Arg(0), cfg.SaveTo(fs.Arg(0))
	default:
		path, err = config.FileName, cfg.SaveTo(config.FileName)
	}
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	logger.Info("config written", zap.String("path", path))
	return nil
}

func radians(deg float64) float32 {
	return float32(deg * gomath.Pi / 180)
}
