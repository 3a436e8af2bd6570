package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Render width")
	flagHeight    = flag.Int("height", 0, "Render height")
	flagNoShadows = flag.Bool("no-shadows", false, "Disable shadow rays")
	flagSeed      = flag.Uint64("seed", 0, "Random seed for reduce, shuffle and synth")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments remaining after the global flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagNoShadows {
		cfg.Render.Shadows = false
	}
	if *flagSeed != 0 {
		cfg.Reduce.Seed = *flagSeed
		cfg.Generate.Seed = *flagSeed
	}
}
