// Package orbit implements the yaw/pitch/distance camera shared by
// every visualization: mouse drag accumulates yaw and pitch, the wheel
// moves the camera along its view ray, and the live-control bridge
// feeds the same state through Rotate and Scale.
package orbit

import (
	"math"

	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

const (
	// DragSensitivity converts mouse pixels to radians.
	DragSensitivity = 0.0035

	// DefaultPitchLimit keeps the camera off the poles to avoid
	// gimbal flip.
	DefaultPitchLimit = 1.35
)

// Limits bound the camera state. Distance bands are scene specific.
type Limits struct {
	PitchLimit  float64
	MinDistance float64
	MaxDistance float64
}

// DefaultLimits matches the most common scene band.
func DefaultLimits() Limits {
	return Limits{PitchLimit: DefaultPitchLimit, MinDistance: 3.0, MaxDistance: 26.0}
}

// Camera is an orbit camera parameterized around a look-at target.
// All mutators saturate against Limits; none of them can fail.
type Camera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Limits   Limits
}

func NewCamera(yaw, pitch, distance float64, limits Limits) *Camera {
	c := &Camera{Yaw: yaw, Pitch: pitch, Distance: distance, Limits: limits}
	c.clamp()
	return c
}

// Drag applies a mouse delta while the primary button is held.
func (c *Camera) Drag(dx, dy float64) {
	c.Yaw -= dx * DragSensitivity
	c.Pitch += dy * DragSensitivity
	c.clamp()
}

// Zoom applies a scroll-wheel delta scaled by step world units.
func (c *Camera) Zoom(wheel, step float64) {
	c.Distance -= wheel * step
	c.clamp()
}

// Rotate applies incremental yaw/pitch in radians (bridge input).
func (c *Camera) Rotate(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch += dpitch
	c.clamp()
}

// Scale divides the distance by a zoom ratio (bridge input). Ratios
// above 1 move the camera closer.
func (c *Camera) Scale(ratio float64) {
	if ratio <= 0 {
		return
	}
	c.Distance /= ratio
	c.clamp()
}

// Offset is the camera position relative to the target.
func (c *Camera) Offset() vec.Vec3 {
	cp := math.Cos(c.Pitch)
	return vec.Vec3{
		X: c.Distance * cp * math.Cos(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: c.Distance * cp * math.Sin(c.Yaw),
	}
}

// Position places the camera around the target point.
func (c *Camera) Position(target vec.Vec3) vec.Vec3 {
	return target.Add(c.Offset())
}

func (c *Camera) clamp() {
	limit := c.Limits.PitchLimit
	if limit == 0 {
		limit = DefaultPitchLimit
	}
	c.Pitch = math.Max(-limit, math.Min(limit, c.Pitch))

	if c.Limits.MaxDistance > 0 {
		c.Distance = math.Max(c.Limits.MinDistance, math.Min(c.Limits.MaxDistance, c.Distance))
	}
}
