// Package config handles hairtool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/hairtrace/pkg/voxel"
)

// Config holds all tool settings.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Voxel    VoxelConfig    `yaml:"voxel"`
	Reduce   ReduceConfig   `yaml:"reduce"`
	Generate GenerateConfig `yaml:"generate"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RenderConfig holds ray tracer settings.
type RenderConfig struct {
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	Shadows     bool     `yaml:"shadows"`
	FieldOfView float32  `yaml:"field_of_view"` // degrees
	Yaw         float32  `yaml:"yaw"`           // degrees
	Pitch       float32  `yaml:"pitch"`         // degrees
	Zoom        float32  `yaml:"zoom"`          // distance factor after framing, < 1 moves closer
	Background  [4]uint8 `yaml:"background"`    // RGBA where rays miss
	Output      string   `yaml:"output"`        // .png or .bmp

	Light *LightConfig `yaml:"light,omitempty"` // nil keeps the built-in key light
}

// LightConfig places the directional light.
type LightConfig struct {
	Azimuth   float32 `yaml:"azimuth"`   // degrees around +Y, 0 = +Z
	Elevation float32 `yaml:"elevation"` // degrees above the horizon
}

// VoxelConfig holds voxelization settings.
type VoxelConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Depth     int    `yaml:"depth"`
	Method    string `yaml:"method"` // "vertices" or "segments"
	Normalize bool   `yaml:"normalize"`
	Output    string `yaml:"output"`
	Slice     string `yaml:"slice"` // optional image of the middle Z slice
}

// ReduceConfig holds strand sampling settings.
type ReduceConfig struct {
	Ratio float32 `yaml:"ratio"` // fraction of strands to discard
	Seed  uint64  `yaml:"seed"`
}

// GenerateConfig holds procedural style settings.
type GenerateConfig struct {
	Strands     int     `yaml:"strands"`
	Segments    int     `yaml:"segments"`
	Length      float32 `yaml:"length"`
	ScalpRadius float32 `yaml:"scalp_radius"`
	Thickness   float32 `yaml:"thickness"`
	Curl        float32 `yaml:"curl"`
	Color       bool    `yaml:"color"`
	Seed        uint64  `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:       1280,
			Height:      720,
			Shadows:     true,
			FieldOfView: 45,
			Yaw:         0,
			Pitch:       10,
			Zoom:        1,
			Output:      "render.png",
		},
		Voxel: VoxelConfig{
			Width:     256,
			Height:    256,
			Depth:     256,
			Method:    "segments",
			Normalize: false,
			Output:    "density.raw",
		},
		Reduce: ReduceConfig{
			Ratio: 0.5,
			Seed:  1,
		},
		Generate: GenerateConfig{
			Strands:     2000,
			Segments:    16,
			Length:      1.2,
			ScalpRadius: 1.0,
			Thickness:   0.004,
			Curl:        0.15,
			Color:       false,
			Seed:        1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Resolution returns the voxel grid size.
func (c VoxelConfig) Resolution() voxel.Resolution {
	return voxel.Resolution{Width: c.Width, Height: c.Height, Depth: c.Depth}
}

// Validate checks settings that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	if !(c.Render.Zoom > 0) {
		return fmt.Errorf("render zoom %g must be positive", c.Render.Zoom)
	}
	if c.Voxel.Width <= 0 || c.Voxel.Height <= 0 || c.Voxel.Depth <= 0 {
		return fmt.Errorf("voxel resolution %dx%dx%d must be positive", c.Voxel.Width, c.Voxel.Height, c.Voxel.Depth)
	}
	switch c.Voxel.Method {
	case "vertices", "segments":
	default:
		return fmt.Errorf("unknown voxel method %q", c.Voxel.Method)
	}
	if c.Reduce.Ratio < 0 || c.Reduce.Ratio > 1 {
		return fmt.Errorf("reduce ratio %g outside [0, 1]", c.Reduce.Ratio)
	}
	return nil
}
