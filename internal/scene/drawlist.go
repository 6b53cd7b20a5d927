package scene

import (
	"math"

	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

// DrawList collects world-space primitives for one frame. Renderers
// interpret them: raylib draws real spheres, the terminal canvas
// projects everything to braille pixels.
type DrawList struct {
	Points  []Point
	Lines   []Line
	Spheres []Sphere
}

type Point struct {
	Pos   vec.Vec3
	Color Color
}

type Line struct {
	A, B  vec.Vec3
	Color Color
}

type Sphere struct {
	Center vec.Vec3
	Radius float64
	Color  Color
}

func (d *DrawList) Clear() {
	d.Points = d.Points[:0]
	d.Lines = d.Lines[:0]
	d.Spheres = d.Spheres[:0]
}

func (d *DrawList) Point(p vec.Vec3, c Color) {
	d.Points = append(d.Points, Point{Pos: p, Color: c})
}

func (d *DrawList) Line(a, b vec.Vec3, c Color) {
	d.Lines = append(d.Lines, Line{A: a, B: b, Color: c})
}

func (d *DrawList) Sphere(center vec.Vec3, radius float64, c Color) {
	d.Spheres = append(d.Spheres, Sphere{Center: center, Radius: radius, Color: c})
}

// RingXZ appends a circle of segments in the XZ plane at height y.
func (d *DrawList) RingXZ(center vec.Vec3, radius float64, segments int, c Color) {
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		p0 := vec.Vec3{X: center.X + radius*math.Cos(a0), Y: center.Y, Z: center.Z + radius*math.Sin(a0)}
		p1 := vec.Vec3{X: center.X + radius*math.Cos(a1), Y: center.Y, Z: center.Z + radius*math.Sin(a1)}
		d.Line(p0, p1, c)
	}
}

// Arrow appends a shaft with a two-line head sized to the shaft.
func (d *DrawList) Arrow(from, to vec.Vec3, c Color) {
	d.Line(from, to, c)

	dir := to.Sub(from)
	l := dir.Length()
	if l < 1e-9 {
		return
	}
	dir = dir.Scale(1 / l)

	// Pick a perpendicular that is stable for near-vertical arrows.
	up := vec.Vec3{Y: 1}
	if math.Abs(dir.Y) > 0.9 {
		up = vec.Vec3{X: 1}
	}
	side := dir.Cross(up).Normalize().Scale(l * 0.12)
	back := to.Sub(dir.Scale(l * 0.22))

	d.Line(to, back.Add(side), c)
	d.Line(to, back.Sub(side), c)
}
