package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file hairtool looks for.
const FileName = "hairtool.yaml"

// EnvConfig names an environment variable holding a config path. It is
// consulted after -config and before the search directories.
const EnvConfig = "HAIRTOOL_CONFIG"

// Load builds the configuration from defaults, then the first config file
// found, then the global command-line flags.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the config to load. An explicit -config or
// $HAIRTOOL_CONFIG path is returned as is, so a missing file is reported by
// the loader; otherwise the working directory and then ConfigDir are
// searched for hairtool.yaml.
func findConfigFile() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	for _, dir := range []string{".", ConfigDir()} {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user hairtool directory under the OS config
// root ($XDG_CONFIG_HOME or ~/.config, ~/Library/Application Support,
// %AppData%).
func ConfigDir() string {
	root, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, "hairtool")
}

// loadFromFile merges a YAML file into cfg. Keys hairtool does not know are
// rejected so a misspelled setting does not silently fall back to its
// default. An empty file changes nothing.
func loadFromFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
