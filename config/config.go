// Package config loads the small set of tuning knobs this analysis
// exposes from a TOML file, walking up from a starting directory the
// way staticcheck locates its "staticcheck.conf": closer files
// override farther ones, and a compiled-in default supplies every knob
// that no file sets.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the knobs memssa.Option wires into a *memssa.MemorySSA
// (SPEC_FULL.md §2 ambient stack / §4.7).
type Config struct {
	// Trace enables section/dump tracing of LVN, GVN, and the
	// findAllReachingDefinitions fallback.
	Trace bool `toml:"trace"`

	// MaxIntervalsPerTarget bounds how many disjoint intervals a
	// single target may accumulate in a block's DefinitionsMap before
	// Update/Add panics with an InvariantError. Zero means unlimited.
	MaxIntervalsPerTarget int `toml:"max_intervals_per_target"`
}

var defaultConfig = Config{
	Trace:                 false,
	MaxIntervalsPerTarget: 0,
}

const configName = "memssa.conf"

// Load walks up from dir looking for memssa.conf files. It recurses to
// the parent directory first, so the merge happens on the way back
// down the call stack: a file closer to dir only overrides the two
// knobs it actually sets, leaving anything it omits at whatever a
// farther-up file (or defaultConfig, at the root) already decided.
func Load(dir string) (Config, error) {
	cfg := defaultConfig
	if parent := filepath.Dir(dir); parent != dir {
		parentCfg, err := Load(parent)
		if err != nil {
			return Config{}, err
		}
		cfg = parentCfg
	}

	f, err := os.Open(filepath.Join(dir, configName))
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return Config{}, err
	}
	defer f.Close()

	var local Config
	meta, err := toml.DecodeReader(f, &local)
	if err != nil {
		return Config{}, err
	}
	if meta.IsDefined("trace") {
		cfg.Trace = local.Trace
	}
	if meta.IsDefined("max_intervals_per_target") {
		cfg.MaxIntervalsPerTarget = local.MaxIntervalsPerTarget
	}
	return cfg, nil
}
