// Package config loads joosc's project-level configuration file
// (joosc.yaml): source search paths, the default pipeline cutoff, and
// whether diagnostics render in color. There is no original_source
// counterpart — the original compiler took every setting from argv —
// so this is the natural place for the teacher's "project-level
// configuration" concern (the teacher's own dwscript.yaml-shaped unit
// search paths) in a compiler that otherwise has none.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is joosc.yaml's shape. Every field has a usable zero value,
// so a missing config file is equivalent to an empty one rather than
// an error.
type Config struct {
	// SourcePaths lists directories searched for .java sources in
	// addition to whatever paths are given on the command line.
	SourcePaths []string `yaml:"sourcePaths"`
	// Until is the default --until stage name, used when the flag is
	// not given explicitly.
	Until string `yaml:"until"`
	// Color selects whether diagnostics render with ANSI color by
	// default.
	Color bool `yaml:"color"`
}

// Default is the configuration a joosc invocation starts from before
// any joosc.yaml or flag is applied.
func Default() Config {
	return Config{Until: "all", Color: true}
}

// Load reads and parses path. A missing file is not an error — it
// returns Default() unchanged, since joosc.yaml is optional.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
