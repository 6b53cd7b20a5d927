package scenes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fabiuuh12/Physics-and-Programming/internal/dyn"
	"github.com/fabiuuh12/Physics-and-Programming/internal/integrators"
	"github.com/fabiuuh12/Physics-and-Programming/internal/palette"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

const (
	// Earth-Moon mass parameter. Unit separation, unit angular rate.
	lagrangeMu = 0.0121505856

	lagrangeSheetExtent = 1.9
	lagrangeSheetGrid   = 44
	lagrangeTrailMax    = 700
	probeEscapeRadius   = 4.0
)

// crtbpSystem is the planar circular restricted three-body problem in
// the co-rotating frame, state [x y vx vy].
type crtbpSystem struct {
	mu float64
}

func (s *crtbpSystem) StateDim() int { return 4 }

func (s *crtbpSystem) Derivative(st dyn.State, t float64) dyn.State {
	x, y, vx, vy := st[0], st[1], st[2], st[3]

	r1 := math.Sqrt((x+s.mu)*(x+s.mu) + y*y)
	r2 := math.Sqrt((x-1+s.mu)*(x-1+s.mu) + y*y)
	r13 := r1 * r1 * r1
	r23 := r2 * r2 * r2

	ax := x + 2*vy - (1-s.mu)*(x+s.mu)/r13 - s.mu*(x-1+s.mu)/r23
	ay := y - 2*vx - (1-s.mu)*y/r13 - s.mu*y/r23

	return dyn.State{vx, vy, ax, ay}
}

// effectivePotential is the rotating-frame pseudo-potential used for
// the sheet and the collinear point search.
func (s *crtbpSystem) effectivePotential(x, y float64) float64 {
	r1 := math.Sqrt((x+s.mu)*(x+s.mu) + y*y)
	r2 := math.Sqrt((x-1+s.mu)*(x-1+s.mu) + y*y)
	return -0.5*(x*x+y*y) - (1-s.mu)/math.Max(r1, 1e-6) - s.mu/math.Max(r2, 1e-6)
}

// axialForce is the x-acceleration of a particle at rest on the x
// axis; its roots are L1, L2 and L3.
func (s *crtbpSystem) axialForce(x float64) float64 {
	d := s.Derivative(dyn.State{x, 0, 0, 0}, 0)
	return d[2]
}

// collinearPoint bisects axialForce on [lo, hi]. The bracket must
// straddle exactly one root.
func (s *crtbpSystem) collinearPoint(lo, hi float64) float64 {
	flo := s.axialForce(lo)
	for i := 0; i < 80; i++ {
		mid := 0.5 * (lo + hi)
		fmid := s.axialForce(mid)
		if fmid == 0 {
			return mid
		}
		if (flo > 0) == (fmid > 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// Lagrange shows the five equilibrium points of the Earth-Moon system
// and lets a probe coast through the rotating frame.
type Lagrange struct {
	sys    *crtbpSystem
	integ  *integrators.RK4
	points [5]vec.Vec3

	probe       dyn.State
	probeActive bool
	t           float64
	trail       []vec.Vec3
}

func NewLagrange() *Lagrange {
	l := &Lagrange{
		sys:   &crtbpSystem{mu: lagrangeMu},
		integ: integrators.NewRK4(),
	}
	l.solvePoints()
	l.Reset(nil)
	return l
}

func (l *Lagrange) solvePoints() {
	mu := l.sys.mu
	moonX := 1 - mu

	l1 := l.sys.collinearPoint(mu+0.01, moonX-0.01)
	l2 := l.sys.collinearPoint(moonX+0.01, 2.0)
	l3 := l.sys.collinearPoint(-2.0, -mu-0.01)

	l.points[0] = vec.Vec3{X: l1}
	l.points[1] = vec.Vec3{X: l2}
	l.points[2] = vec.Vec3{X: l3}
	// L4/L5 form equilateral triangles with the primaries.
	l.points[3] = vec.Vec3{X: 0.5 - mu, Z: math.Sqrt(3) / 2}
	l.points[4] = vec.Vec3{X: 0.5 - mu, Z: -math.Sqrt(3) / 2}
}

// Points returns L1..L5 in rotating-frame coordinates.
func (l *Lagrange) Points() [5]vec.Vec3 { return l.points }

func (l *Lagrange) Name() string  { return "lagrange" }
func (l *Lagrange) Title() string { return "Lagrange Points (Rotating Frame)" }

func (l *Lagrange) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: 1.1, Pitch: 0.9, Distance: 4.2,
		MinDist: 1.5, MaxDist: 12.0,
	}
}

func (l *Lagrange) Reset(rng *rand.Rand) {
	l.t = 0
	l.probeActive = false
	l.probe = dyn.State{0, 0, 0, 0}
	l.trail = l.trail[:0]
}

// Trigger launches the probe near L4 with a small kick; triggering
// again while active resets it.
func (l *Lagrange) Trigger() {
	if l.probeActive {
		l.probeActive = false
		l.trail = l.trail[:0]
		return
	}
	l.probe = dyn.State{l.points[3].X + 0.02, l.points[3].Z, 0.015, -0.01}
	l.probeActive = true
	l.trail = l.trail[:0]
}

func (l *Lagrange) Step(dt float64) {
	l.t += dt
	if !l.probeActive {
		return
	}

	next := l.integ.Step(l.sys, l.probe, l.t, dt)
	if !next.IsValid() {
		l.probeActive = false
		return
	}
	l.probe = next

	r := math.Hypot(l.probe[0], l.probe[1])
	if r > probeEscapeRadius {
		l.probeActive = false
		return
	}
	l.trail = pushTrail(l.trail, vec.Vec3{X: l.probe[0], Z: l.probe[1]}, lagrangeTrailMax)
}

func (l *Lagrange) sheetHeight(x, z float64) float64 {
	u := l.sys.effectivePotential(x, z)
	// Potential diverges at the primaries; compress into a drawable band.
	return clamp((u+1.6)*0.9, -1.4, 0.6)
}

func (l *Lagrange) Draw(list *scene.DrawList) {
	cell := 2 * lagrangeSheetExtent / float64(lagrangeSheetGrid-1)
	for i := 0; i < lagrangeSheetGrid; i++ {
		z := -lagrangeSheetExtent + cell*float64(i)
		for j := 0; j < lagrangeSheetGrid-1; j++ {
			x0 := -lagrangeSheetExtent + cell*float64(j)
			x1 := x0 + cell
			p0 := vec.Vec3{X: x0, Y: l.sheetHeight(x0, z), Z: z}
			p1 := vec.Vec3{X: x1, Y: l.sheetHeight(x1, z), Z: z}
			depth := (p0.Y + 1.4) / 2.0
			list.Line(p0, p1, palette.Cool(depth, 70))
		}
	}

	mu := l.sys.mu
	list.Sphere(vec.Vec3{X: -mu}, 0.11, scene.Color{R: 110, G: 170, B: 255, A: 255})
	list.Sphere(vec.Vec3{X: 1 - mu}, 0.05, scene.Color{R: 200, G: 200, B: 210, A: 255})
	list.RingXZ(vec.Vec3{X: -mu}, 1.0, 96, scene.Color{R: 90, G: 100, B: 130, A: 50})

	markCol := scene.Color{R: 120, G: 255, B: 160, A: 255}
	for _, p := range l.points {
		list.Sphere(p, 0.035, markCol)
		list.Line(p, p.Add(vec.Vec3{Y: 0.25}), scene.Color{R: 120, G: 255, B: 160, A: 120})
	}

	if l.probeActive {
		drawTrail(list, l.trail, scene.Color{R: 255, G: 210, B: 120, A: 255})
		list.Sphere(vec.Vec3{X: l.probe[0], Z: l.probe[1]}, 0.045, scene.Color{R: 255, G: 230, B: 140, A: 255})
	}
}

func (l *Lagrange) HUD() string {
	probe := "probe: parked (space to launch)"
	if l.probeActive {
		probe = fmt.Sprintf("probe: x=%.3f z=%.3f", l.probe[0], l.probe[1])
	}
	return fmt.Sprintf("t=%.2f  mu=%.5f  %s", l.t, l.sys.mu, probe)
}

func (l *Lagrange) Metrics() map[string]float64 {
	m := map[string]float64{
		"l1_x": l.points[0].X,
		"l2_x": l.points[1].X,
		"l3_x": l.points[2].X,
	}
	if l.probeActive {
		m["probe_r"] = math.Hypot(l.probe[0], l.probe[1])
	}
	return m
}
