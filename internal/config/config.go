package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fabiuuh12/Physics-and-Programming/internal/bridge"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 800
	DefaultFPS    = 60
	DefaultDt     = 1.0 / 60.0
)

type Config struct {
	Scene   string       `yaml:"scene"`
	Dt      float64      `yaml:"dt"`
	Seed    int64        `yaml:"seed"`
	Sound   bool         `yaml:"sound"`
	DataDir string       `yaml:"data_dir"`
	Window  WindowConfig `yaml:"window"`
	Bridge  BridgeConfig `yaml:"bridge"`
}

type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	FPS    int  `yaml:"fps"`
	VSync  bool `yaml:"vsync"`
}

type BridgeConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Paths         []string `yaml:"paths"`
	StaleMs       int      `yaml:"stale_ms"`
	PinchWindowMs int      `yaml:"pinch_window_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:   "blackhole",
		Dt:      DefaultDt,
		DataDir: "runs",
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			VSync:  true,
		},
		Bridge: BridgeConfig{
			Enabled:       true,
			Paths:         append([]string(nil), bridge.DefaultPaths...),
			StaleMs:       int(bridge.StaleAfter.Milliseconds()),
			PinchWindowMs: int(bridge.PinchWindow.Milliseconds()),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
