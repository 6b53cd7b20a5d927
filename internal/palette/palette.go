// Package palette maps physical quantities to colors. Ramps are built
// with go-colorful so interpolation happens in a perceptual space
// instead of per-channel byte arithmetic.
package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func blend(lo, hi colorful.Color, t float64, alpha uint8) scene.Color {
	c := lo.BlendLuv(hi, clamp01(t)).Clamped()
	r, g, b := c.RGB255()
	return scene.Color{R: r, G: g, B: b, A: alpha}
}

var (
	heatLow  = colorful.Color{R: 0.70, G: 0.39, B: 0.18} // dull ember
	heatHigh = colorful.Color{R: 0.98, G: 0.75, B: 0.31} // bright disk

	shiftRed  = colorful.Color{R: 0.96, G: 0.35, B: 0.30}
	shiftBlue = colorful.Color{R: 0.33, G: 0.62, B: 0.98}

	coolLow  = colorful.Color{R: 0.16, G: 0.33, B: 0.61}
	coolHigh = colorful.Color{R: 0.55, G: 0.83, B: 1.00}
)

// Heat colors accretion/burst particles by normalized temperature.
func Heat(t float64, alpha uint8) scene.Color {
	return blend(heatLow, heatHigh, t, alpha)
}

// DopplerShift colors a wavefront: 0 is fully red-shifted, 1 fully
// blue-shifted.
func DopplerShift(t float64, alpha uint8) scene.Color {
	return blend(shiftRed, shiftBlue, t, alpha)
}

// Cool is the blue ramp used for potential sheets and field lines.
func Cool(t float64, alpha uint8) scene.Color {
	return blend(coolLow, coolHigh, t, alpha)
}

// Intensity maps a 0..1 scalar field sample to a monochrome ramp.
func Intensity(t float64, alpha uint8) scene.Color {
	v := uint8(40 + 215*clamp01(t))
	return scene.Color{R: v, G: v, B: v, A: alpha}
}
