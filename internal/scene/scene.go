// Package scene defines the contract between the simulations and the
// renderers. A Scene owns its state, advances it with Step, and
// describes itself each frame as a render-agnostic DrawList that both
// the raylib window and the terminal canvas know how to draw.
package scene

import (
	"math/rand"

	"github.com/fabiuuh12/Physics-and-Programming/internal/orbit"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

// Simulation speed band shared by the renderers: double pinches and
// the +/- keys step the time multiplier inside it.
const (
	SpeedMin  = 0.25
	SpeedMax  = 4.0
	SpeedStep = 0.25
)

// ClampSpeed saturates a speed multiplier against the band.
func ClampSpeed(v float64) float64 {
	if v < SpeedMin {
		return SpeedMin
	}
	if v > SpeedMax {
		return SpeedMax
	}
	return v
}

// Color is an 8-bit RGBA color in world space, independent of any
// renderer's color type.
type Color struct {
	R, G, B, A uint8
}

// CameraSpec tells the renderer where to look and how far the orbit
// camera may travel for this scene.
type CameraSpec struct {
	Target   vec.Vec3
	Yaw      float64
	Pitch    float64
	Distance float64
	MinDist  float64
	MaxDist  float64
}

// Limits converts the distance band into orbit camera limits.
func (c CameraSpec) Limits() orbit.Limits {
	return orbit.Limits{
		PitchLimit:  orbit.DefaultPitchLimit,
		MinDistance: c.MinDist,
		MaxDistance: c.MaxDist,
	}
}

// Scene is one interactive visualization.
type Scene interface {
	// Name is the registry key (lowercase, no spaces).
	Name() string
	// Title is the window/HUD headline.
	Title() string
	// Reset returns all state to its documented initial values.
	Reset(rng *rand.Rand)
	// Step advances the simulation by dt seconds of scene time.
	Step(dt float64)
	// Camera describes the initial orbit placement and limits.
	Camera() CameraSpec
	// Draw appends this frame's geometry.
	Draw(list *DrawList)
	// HUD returns the one-line status shown under the title.
	HUD() string
	// Metrics exposes scalar channels for recording and plots.
	Metrics() map[string]float64
}

// DensityStepper is implemented by scenes whose particle count can be
// nudged by the [ ] keys or a single-pinch gesture.
type DensityStepper interface {
	StepDensity(dir int)
}

// Triggerable is implemented by scenes with a scripted sequence that
// the space key starts (fission, higgs).
type Triggerable interface {
	Trigger()
}

// ModeSwitcher is implemented by scenes with an alternate mode behind
// the M key (fission/fusion).
type ModeSwitcher interface {
	SwitchMode()
}

// Sonifier is implemented by scenes that can drive the audio synth.
type Sonifier interface {
	// Frequency returns the current tone in Hz.
	Frequency() float64
}
