package config

// Presets are named variations per scene. They only override what a
// scene exposes through the common knobs; scene-internal constants
// stay fixed.
var Presets = map[string]map[string]*Config{
	"blackhole": {
		"default": {Scene: "blackhole", Dt: DefaultDt},
		"slowmo":  {Scene: "blackhole", Dt: DefaultDt / 4},
	},
	"twobody": {
		"default": {Scene: "twobody", Dt: DefaultDt},
		"precise": {Scene: "twobody", Dt: 1.0 / 240.0},
	},
	"doublependulum": {
		"default": {Scene: "doublependulum", Dt: 1.0 / 120.0},
		"slowmo":  {Scene: "doublependulum", Dt: 1.0 / 480.0},
	},
	"lagrange": {
		"default": {Scene: "lagrange", Dt: DefaultDt},
	},
	"doppler": {
		"default": {Scene: "doppler", Dt: DefaultDt, Sound: true},
		"silent":  {Scene: "doppler", Dt: DefaultDt},
	},
	"doubleslit": {
		"default": {Scene: "doubleslit", Dt: DefaultDt},
	},
	"emfield": {
		"default": {Scene: "emfield", Dt: DefaultDt},
	},
	"fission": {
		"default": {Scene: "fission", Dt: DefaultDt},
	},
	"higgs": {
		"default": {Scene: "higgs", Dt: DefaultDt},
	},
	"wavepacket": {
		"default": {Scene: "wavepacket", Dt: DefaultDt},
	},
}

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
