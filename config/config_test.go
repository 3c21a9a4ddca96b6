package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConf(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, configName), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadNoFilesReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != defaultConfig {
		t.Fatalf("Load() = %+v, want default %+v", cfg, defaultConfig)
	}
}

func TestLoadClosestFileWins(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, "trace = true\nmax_intervals_per_target = 8\n")

	leaf := filepath.Join(root, "leaf")
	if err := os.Mkdir(leaf, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeConf(t, leaf, "max_intervals_per_target = 64\n")

	cfg, err := Load(leaf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Trace {
		t.Fatalf("cfg.Trace = false, want true (inherited from root config)")
	}
	if cfg.MaxIntervalsPerTarget != 64 {
		t.Fatalf("cfg.MaxIntervalsPerTarget = %d, want 64 (leaf overrides root)", cfg.MaxIntervalsPerTarget)
	}
}

func TestLoadOnlyOverridesSetFields(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, "trace = true\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Trace {
		t.Fatalf("cfg.Trace = false, want true")
	}
	if cfg.MaxIntervalsPerTarget != defaultConfig.MaxIntervalsPerTarget {
		t.Fatalf("cfg.MaxIntervalsPerTarget = %d, want untouched default %d", cfg.MaxIntervalsPerTarget, defaultConfig.MaxIntervalsPerTarget)
	}
}
