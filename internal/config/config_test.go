package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "blackhole" {
		t.Errorf("expected scene blackhole, got %s", cfg.Scene)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if !cfg.Bridge.Enabled {
		t.Error("bridge should be enabled by default")
	}
	if cfg.Bridge.StaleMs != 1200 {
		t.Errorf("expected stale_ms 1200, got %d", cfg.Bridge.StaleMs)
	}
	if len(cfg.Bridge.Paths) == 0 {
		t.Error("bridge should ship with candidate paths")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("scene: doppler\nsound: true\nbridge:\n  stale_ms: 900\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scene != "doppler" {
		t.Errorf("expected scene doppler, got %s", cfg.Scene)
	}
	if !cfg.Sound {
		t.Error("sound should be enabled")
	}
	if cfg.Bridge.StaleMs != 900 {
		t.Errorf("expected stale_ms 900, got %d", cfg.Bridge.StaleMs)
	}
	// Untouched keys keep their defaults.
	if cfg.Window.Width != DefaultWidth {
		t.Errorf("window width should default to %d, got %d", DefaultWidth, cfg.Window.Width)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Scene = "higgs"
	cfg.Window.FPS = 120

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scene != "higgs" || loaded.Window.FPS != 120 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("doublependulum", "slowmo")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Dt >= DefaultDt {
		t.Errorf("slowmo preset should shrink dt, got %f", cfg.Dt)
	}

	if GetPreset("doublependulum", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("doppler")) < 2 {
		t.Error("doppler should have at least two presets")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent scene")
	}
}
