package scenes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fabiuuh12/Physics-and-Programming/internal/dyn"
	"github.com/fabiuuh12/Physics-and-Programming/internal/integrators"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

const (
	pendulumL1    = 1.35
	pendulumL2    = 1.25
	pendulumM1    = 1.0
	pendulumM2    = 1.0
	pendulumG     = 9.81
	ghostOffset   = 1e-3
	pendTrailMax  = 900
	pendTheta1At0 = 2.1
	pendTheta2At0 = 2.6
)

// pendulumSystem is the planar double pendulum, state [th1 th2 w1 w2].
type pendulumSystem struct{}

func (pendulumSystem) StateDim() int { return 4 }

func (pendulumSystem) Derivative(x dyn.State, t float64) dyn.State {
	th1, th2, w1, w2 := x[0], x[1], x[2], x[3]
	d := th1 - th2
	cd, sd := math.Cos(d), math.Sin(d)

	m := pendulumM1 + pendulumM2
	den := m - pendulumM2*cd*cd

	a1 := (-pendulumM2*pendulumL1*w1*w1*sd*cd +
		pendulumM2*pendulumG*math.Sin(th2)*cd -
		pendulumM2*pendulumL2*w2*w2*sd -
		m*pendulumG*math.Sin(th1)) / (pendulumL1 * den)

	a2 := (m*pendulumL1*w1*w1*sd +
		m*pendulumG*math.Sin(th1)*cd -
		m*pendulumG*math.Sin(th2) +
		pendulumM2*pendulumL2*w2*w2*sd*cd) / (pendulumL2 * den)

	return dyn.State{w1, w2, a1, a2}
}

func (pendulumSystem) Energy(x dyn.State) float64 {
	th1, th2, w1, w2 := x[0], x[1], x[2], x[3]

	v1sq := pendulumL1 * pendulumL1 * w1 * w1
	v2sq := v1sq + pendulumL2*pendulumL2*w2*w2 +
		2*pendulumL1*pendulumL2*w1*w2*math.Cos(th1-th2)

	ke := 0.5*pendulumM1*v1sq + 0.5*pendulumM2*v2sq
	pe := -(pendulumM1+pendulumM2)*pendulumG*pendulumL1*math.Cos(th1) -
		pendulumM2*pendulumG*pendulumL2*math.Cos(th2)

	return ke + pe
}

// DoublePendulum runs the reference pendulum next to a ghost started
// a hair apart so the chaotic divergence is visible.
type DoublePendulum struct {
	sys        pendulumSystem
	integ      *integrators.RK4
	ghostInteg *integrators.RK4

	state dyn.State
	ghost dyn.State
	t     float64

	trail []vec.Vec3
}

func NewDoublePendulum() *DoublePendulum {
	p := &DoublePendulum{
		integ:      integrators.NewRK4(),
		ghostInteg: integrators.NewRK4(),
	}
	p.Reset(nil)
	return p
}

func (p *DoublePendulum) Name() string  { return "doublependulum" }
func (p *DoublePendulum) Title() string { return "Double Pendulum Chaos" }

func (p *DoublePendulum) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Target: vec.Vec3{Y: -0.8},
		Yaw:    math.Pi / 2, Pitch: 0.1, Distance: 6.5,
		MinDist: 2.0, MaxDist: 16.0,
	}
}

func (p *DoublePendulum) Reset(rng *rand.Rand) {
	p.state = dyn.State{pendTheta1At0, pendTheta2At0, 0, 0}
	p.ghost = dyn.State{pendTheta1At0 + ghostOffset, pendTheta2At0, 0, 0}
	p.t = 0
	p.trail = p.trail[:0]
}

func (p *DoublePendulum) Step(dt float64) {
	next := p.integ.Step(p.sys, p.state, p.t, dt)
	ghostNext := p.ghostInteg.Step(p.sys, p.ghost, p.t, dt)
	if !next.IsValid() || !ghostNext.IsValid() {
		p.Reset(nil)
		return
	}
	p.state, p.ghost = next, ghostNext
	p.t += dt

	_, tip := p.bobs(p.state)
	p.trail = pushTrail(p.trail, tip, pendTrailMax)
}

// bobs maps angles to world positions, pivot at the origin.
func (p *DoublePendulum) bobs(x dyn.State) (vec.Vec3, vec.Vec3) {
	b1 := vec.Vec3{
		X: pendulumL1 * math.Sin(x[0]),
		Y: -pendulumL1 * math.Cos(x[0]),
	}
	b2 := vec.Vec3{
		X: b1.X + pendulumL2*math.Sin(x[1]),
		Y: b1.Y - pendulumL2*math.Cos(x[1]),
	}
	return b1, b2
}

// Divergence is the angle-space distance between the pendulum and its
// ghost.
func (p *DoublePendulum) Divergence() float64 {
	d1 := p.state[0] - p.ghost[0]
	d2 := p.state[1] - p.ghost[1]
	return math.Sqrt(d1*d1 + d2*d2)
}

func (p *DoublePendulum) Draw(list *scene.DrawList) {
	pivot := vec.Vec3{}
	b1, b2 := p.bobs(p.state)
	g1, g2 := p.bobs(p.ghost)

	drawTrail(list, p.trail, scene.Color{R: 140, G: 120, B: 255, A: 255})

	ghostCol := scene.Color{R: 110, G: 110, B: 120, A: 90}
	list.Line(pivot, g1, ghostCol)
	list.Line(g1, g2, ghostCol)
	list.Sphere(g1, 0.09, ghostCol)
	list.Sphere(g2, 0.09, ghostCol)

	rodCol := scene.Color{R: 210, G: 215, B: 230, A: 255}
	list.Line(pivot, b1, rodCol)
	list.Line(b1, b2, rodCol)
	list.Sphere(pivot, 0.06, rodCol)
	list.Sphere(b1, 0.13, scene.Color{R: 255, G: 170, B: 90, A: 255})
	list.Sphere(b2, 0.13, scene.Color{R: 255, G: 90, B: 110, A: 255})
}

func (p *DoublePendulum) HUD() string {
	return fmt.Sprintf("t=%.2f  E=%.4f  divergence=%.4f", p.t, p.sys.Energy(p.state), p.Divergence())
}

func (p *DoublePendulum) Metrics() map[string]float64 {
	return map[string]float64{
		"energy":     p.sys.Energy(p.state),
		"divergence": p.Divergence(),
		"theta1":     p.state[0],
		"theta2":     p.state[1],
	}
}
