package orbit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

func TestPitchStaysClamped(t *testing.T) {
	c := NewCamera(0.78, 0.38, 11.0, DefaultLimits())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		c.Drag(rng.Float64()*400-200, rng.Float64()*400-200)
		if math.Abs(c.Pitch) > DefaultPitchLimit {
			t.Fatalf("pitch escaped clamp at step %d: %f", i, c.Pitch)
		}
	}
}

func TestDistanceStaysInBand(t *testing.T) {
	limits := Limits{PitchLimit: 1.35, MinDistance: 4.5, MaxDistance: 28.0}
	c := NewCamera(0, 0, 12.0, limits)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 10000; i++ {
		c.Zoom(rng.Float64()*20-10, 0.7)
		c.Scale(0.5 + rng.Float64()*1.5)
		if c.Distance < limits.MinDistance || c.Distance > limits.MaxDistance {
			t.Fatalf("distance escaped band at step %d: %f", i, c.Distance)
		}
	}
}

func TestOffsetFormula(t *testing.T) {
	c := NewCamera(0.5, 0.3, 10.0, DefaultLimits())

	off := c.Offset()
	cp := math.Cos(0.3)
	want := vec.Vec3{
		X: 10 * cp * math.Cos(0.5),
		Y: 10 * math.Sin(0.3),
		Z: 10 * cp * math.Sin(0.5),
	}

	if off.Sub(want).Length() > 1e-12 {
		t.Errorf("offset mismatch: got %+v want %+v", off, want)
	}

	if math.Abs(off.Length()-10) > 1e-12 {
		t.Errorf("offset length should equal distance, got %f", off.Length())
	}
}

func TestPositionTracksTarget(t *testing.T) {
	c := NewCamera(1.0, 0.2, 8.0, DefaultLimits())
	target := vec.Vec3{X: 2, Y: -1, Z: 3}

	p := c.Position(target)
	if p.Sub(target).Sub(c.Offset()).Length() > 1e-12 {
		t.Errorf("position should be target + offset")
	}
}

func TestDragDirection(t *testing.T) {
	c := NewCamera(0, 0, 10.0, DefaultLimits())

	c.Drag(100, 0)
	if c.Yaw >= 0 {
		t.Errorf("rightward drag should decrease yaw, got %f", c.Yaw)
	}

	c = NewCamera(0, 0, 10.0, DefaultLimits())
	c.Drag(0, 100)
	if c.Pitch <= 0 {
		t.Errorf("downward drag should increase pitch, got %f", c.Pitch)
	}
}

func TestScaleIgnoresNonPositiveRatio(t *testing.T) {
	c := NewCamera(0, 0, 10.0, DefaultLimits())
	c.Scale(0)
	c.Scale(-1)
	if c.Distance != 10.0 {
		t.Errorf("non-positive ratio should be ignored, got %f", c.Distance)
	}
}
