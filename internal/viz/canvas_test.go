package viz

import (
	"strings"
	"testing"

	"github.com/fabiuuh12/Physics-and-Programming/internal/orbit"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

func TestCanvasSetAndBits(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if !c.IsSet(0, 0) {
		t.Error("pixel (0,0) should be lit")
	}
	if c.IsSet(1, 0) {
		t.Error("pixel (1,0) should be dark")
	}

	// All eight sub-pixels of one cell produce a full braille block.
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			c.Set(2+x, 4+y)
		}
	}
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if []rune(lines[1])[1] != 0x28FF {
		t.Errorf("cell (1,1) should be full block, got %q", lines[1])
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 100)
	c.Line(-10, -10, 200, 200)
	// Reaching here without a panic is the point; the in-bounds part
	// of the line must still be drawn.
	if !c.IsSet(0, 0) {
		t.Error("diagonal should cross (0,0)")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(1, 1, 15, 9)
	if !c.IsSet(1, 1) || !c.IsSet(15, 9) {
		t.Error("line should light both endpoints")
	}
}

func TestCanvasStringDimensions(t *testing.T) {
	c := NewCanvas(7, 3)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 7 {
			t.Errorf("expected 7 cells per row, got %d", len([]rune(line)))
		}
	}
}

func TestProjectorCenterAndDepth(t *testing.T) {
	p := NewProjector()
	cam := orbit.NewCamera(0, 0, 10, orbit.Limits{PitchLimit: 1.35, MinDistance: 1, MaxDistance: 50})
	c := NewCanvas(40, 20)
	pw, ph := c.PixelSize()

	eye, right, up, forward := p.basis(cam)

	// The look-at target projects to the canvas center.
	x, y, depth, ok := p.project(vec.Vec3{}, eye, right, up, forward, pw, ph)
	if !ok {
		t.Fatal("target should be visible")
	}
	if x != pw/2 || y != ph/2 {
		t.Errorf("target projects to (%d,%d), want (%d,%d)", x, y, pw/2, ph/2)
	}
	if depth < 9.9 || depth > 10.1 {
		t.Errorf("target depth %f, want ~10", depth)
	}

	// A point behind the camera is rejected.
	behind := eye.Add(eye.Sub(vec.Vec3{}))
	if _, _, _, ok := p.project(behind, eye, right, up, forward, pw, ph); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestProjectorRendersDrawList(t *testing.T) {
	p := NewProjector()
	cam := orbit.NewCamera(0.3, 0.3, 8, orbit.DefaultLimits())
	c := NewCanvas(40, 20)

	var list scene.DrawList
	list.Sphere(vec.Vec3{}, 0.5, scene.Color{A: 255})
	list.Line(vec.Vec3{X: -1}, vec.Vec3{X: 1}, scene.Color{A: 255})
	p.Render(c, &list, cam)

	lit := 0
	pw, ph := c.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if c.IsSet(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("rendering a sphere and a line should light pixels")
	}
}
