package viz

import (
	"math"
	"sort"

	"github.com/fabiuuh12/Physics-and-Programming/internal/orbit"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

// Projector maps world-space draw lists to canvas sub-pixels through
// the shared orbit camera.
type Projector struct {
	Target vec.Vec3
	FOV    float64
}

func NewProjector() *Projector {
	return &Projector{FOV: math.Pi / 4}
}

// basis returns the camera's right/up/forward axes for the current
// orbit placement.
func (p *Projector) basis(cam *orbit.Camera) (vec.Vec3, vec.Vec3, vec.Vec3, vec.Vec3) {
	eye := cam.Position(p.Target)
	forward := p.Target.Sub(eye).Normalize()

	worldUp := vec.Vec3{Y: 1}
	if math.Abs(forward.Y) > 0.999 {
		worldUp = vec.Vec3{Z: 1}
	}
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)
	return eye, right, up, forward
}

// project returns sub-pixel coordinates, view depth, and whether the
// point lies in front of the camera.
func (p *Projector) project(w vec.Vec3, eye, right, up, forward vec.Vec3, pw, ph int) (int, int, float64, bool) {
	rel := w.Sub(eye)
	depth := rel.Dot(forward)
	if depth < 1e-3 {
		return 0, 0, 0, false
	}

	focal := float64(ph) / (2 * math.Tan(p.FOV/2))
	// Character cells are roughly twice as tall as wide; halving the
	// vertical scale keeps circles circular.
	sx := pw/2 + int(rel.Dot(right)/depth*focal)
	sy := ph/2 - int(rel.Dot(up)/depth*focal*0.5)
	return sx, sy, depth, true
}

type projected struct {
	kind   int // 0 point, 1 line, 2 disc
	x0, y0 int
	x1, y1 int
	r      int
	depth  float64
}

// Render projects a frame's draw list and paints far-to-near so close
// geometry wins overlapping cells.
func (p *Projector) Render(c *Canvas, list *scene.DrawList, cam *orbit.Camera) {
	pw, ph := c.PixelSize()
	eye, right, up, forward := p.basis(cam)

	prims := make([]projected, 0, len(list.Points)+len(list.Lines)+len(list.Spheres))

	for _, pt := range list.Points {
		if x, y, d, ok := p.project(pt.Pos, eye, right, up, forward, pw, ph); ok {
			prims = append(prims, projected{kind: 0, x0: x, y0: y, depth: d})
		}
	}
	for _, ln := range list.Lines {
		x0, y0, d0, ok0 := p.project(ln.A, eye, right, up, forward, pw, ph)
		x1, y1, d1, ok1 := p.project(ln.B, eye, right, up, forward, pw, ph)
		if ok0 && ok1 {
			prims = append(prims, projected{kind: 1, x0: x0, y0: y0, x1: x1, y1: y1, depth: (d0 + d1) / 2})
		}
	}
	focal := float64(ph) / (2 * math.Tan(p.FOV/2))
	for _, sp := range list.Spheres {
		if x, y, d, ok := p.project(sp.Center, eye, right, up, forward, pw, ph); ok {
			r := int(sp.Radius / d * focal * 0.5)
			prims = append(prims, projected{kind: 2, x0: x, y0: y, r: r, depth: d})
		}
	}

	sort.Slice(prims, func(i, j int) bool { return prims[i].depth > prims[j].depth })

	for _, pr := range prims {
		switch pr.kind {
		case 0:
			c.Set(pr.x0, pr.y0)
		case 1:
			c.Line(pr.x0, pr.y0, pr.x1, pr.y1)
		case 2:
			c.Disc(pr.x0, pr.y0, pr.r)
		}
	}
}
