// hairtool is a CLI utility for inspecting, editing, voxelizing and ray
// tracing strand-based hair styles.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/hairtrace/internal/config"
	"github.com/Faultbox/hairtrace/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	if err := run(cfg, command, args[1:]); err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, command string, args []string) error {
	switch command {
	case "info":
		return cmdInfo(args)
	case "synth":
		return cmdSynth(cfg, args)
	case "generate", "gen":
		return cmdGenerate(args)
	case "reduce":
		return cmdReduce(cfg, args)
	case "shuffle":
		return cmdShuffle(cfg, args)
	case "voxelize", "vox":
		return cmdVoxelize(cfg, args)
	case "render":
		return cmdRender(cfg, args)
	case "init-config":
		return cmdInitConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Println(`hairtool - hair style utility

Usage:
  hairtool [global flags] <command> [options]

Global flags:
  -config <file>   Config file (default $HAIRTOOL_CONFIG, ./hairtool.yaml,
                   then the user config directory)
  -debug           Enable debug logging
  -width, -height  Render size
  -no-shadows      Disable shadow rays
  -seed <n>        Random seed for synth, reduce and shuffle

Commands:
  info <file.hair>                    Show style information
  synth <out.hair>                    Generate a procedural style
  generate <in.hair> [out.hair]       Generate tangents, indices and bounds
  reduce <in.hair> <out.hair>         Randomly discard a fraction of strands
  shuffle <in.hair> <out.hair>        Randomize strand order
  voxelize <in.hair> [out.raw]        Write a raw density volume
  render <in.hair> [out.png|out.bmp]  Ray trace a frame
  init-config [-user] [path]          Write the current config as YAML

Examples:
  hairtool info ponytail.hair
  hairtool -seed 7 reduce -ratio 0.75 ponytail.hair sparse.hair
  hairtool voxelize -method vertices -normalize ponytail.hair density.raw
  hairtool voxelize -slice slice.png ponytail.hair density.raw
  hairtool -width 640 -height 480 render -yaw 30 -zoom 0.8 ponytail.hair frame.png`)
}
