// Package config reads project settings from a .tenten.yaml file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Find.
const FileName = ".tenten.yaml"

// Config holds build defaults. Command-line flags override these values.
type Config struct {
	Target     string `yaml:"target"`
	Title      string `yaml:"title"`
	Tempo      int    `yaml:"tempo"`
	ZeroClears bool   `yaml:"zero_clears"`
	OutDir     string `yaml:"out_dir"`

	// Path is the file the values came from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Target: "mtmc16",
		Title:  "Untitled",
		Tempo:  120,
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// default values. A relative out_dir is resolved against the file's
// directory.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}
	if cfg.Tempo < 0 {
		return cfg, errors.Errorf("%s: tempo must not be negative, got %d", path, cfg.Tempo)
	}

	if cfg.OutDir != "" && !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(filepath.Dir(path), cfg.OutDir)
	}
	cfg.Path = path
	return cfg, nil
}

// Find walks up from dir looking for FileName and returns its path, or ""
// when no directory up to the root has one.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving config search directory")
	}

	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "checking %s", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve finds and loads the configuration that applies to dir, falling
// back to Default when there is none.
func Resolve(dir string) (Config, error) {
	path, err := Find(dir)
	if err != nil {
		return Default(), err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
