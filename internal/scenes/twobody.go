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
	twoBodyG         = 1.0
	twoBodySoftening = 0.02
	twoBodyTrailMax  = 1200
)

// twoBodySystem is the pair under mutual softened gravity, state laid
// out as [ax ay az bx by bz avx avy avz bvx bvy bvz].
type twoBodySystem struct {
	massA, massB float64
}

func (s *twoBodySystem) StateDim() int { return 12 }

func (s *twoBodySystem) Derivative(x dyn.State, t float64) dyn.State {
	dx := make(dyn.State, 12)
	copy(dx[0:6], x[6:12])

	rx, ry, rz := x[3]-x[0], x[4]-x[1], x[5]-x[2]
	d2 := rx*rx + ry*ry + rz*rz + twoBodySoftening
	invD := 1.0 / math.Sqrt(d2)
	invD3 := invD * invD * invD

	// acceleration of A toward B and vice versa
	fA := twoBodyG * s.massB * invD3
	fB := twoBodyG * s.massA * invD3
	dx[6], dx[7], dx[8] = fA*rx, fA*ry, fA*rz
	dx[9], dx[10], dx[11] = -fB*rx, -fB*ry, -fB*rz

	return dx
}

func (s *twoBodySystem) Energy(x dyn.State) float64 {
	ke := 0.5*s.massA*(x[6]*x[6]+x[7]*x[7]+x[8]*x[8]) +
		0.5*s.massB*(x[9]*x[9]+x[10]*x[10]+x[11]*x[11])

	rx, ry, rz := x[3]-x[0], x[4]-x[1], x[5]-x[2]
	r := math.Sqrt(rx*rx + ry*ry + rz*rz + twoBodySoftening)
	pe := -twoBodyG * s.massA * s.massB / r

	return ke + pe
}

// TwoBody integrates a gravitational pair with RK4 and tracks the
// total mechanical energy so drift is visible in the HUD.
type TwoBody struct {
	sys     *twoBodySystem
	integ   *integrators.RK4
	state   dyn.State
	t       float64
	energy0 float64

	trailA, trailB []vec.Vec3
}

// TwoBodyCircularState is the equal-mass circular initial condition:
// bodies at ±1 on x with tangential speed 0.5.
func TwoBodyCircularState() dyn.State {
	return dyn.State{
		-1, 0, 0, 1, 0, 0,
		0, 0, -0.5, 0, 0, 0.5,
	}
}

func NewTwoBody() *TwoBody {
	tb := &TwoBody{
		sys:   &twoBodySystem{massA: 1.0, massB: 1.0},
		integ: integrators.NewRK4(),
	}
	tb.Reset(nil)
	return tb
}

func (tb *TwoBody) Name() string  { return "twobody" }
func (tb *TwoBody) Title() string { return "Two-Body Orbit (RK4)" }

func (tb *TwoBody) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: 0.6, Pitch: 0.45, Distance: 8.0,
		MinDist: 2.5, MaxDist: 22.0,
	}
}

func (tb *TwoBody) Reset(rng *rand.Rand) {
	tb.state = TwoBodyCircularState()
	tb.t = 0
	tb.energy0 = tb.sys.Energy(tb.state)
	tb.trailA = tb.trailA[:0]
	tb.trailB = tb.trailB[:0]
}

func (tb *TwoBody) Step(dt float64) {
	next := tb.integ.Step(tb.sys, tb.state, tb.t, dt)
	if !next.IsValid() {
		tb.Reset(nil)
		return
	}
	tb.state = next
	tb.t += dt

	tb.trailA = pushTrail(tb.trailA, vec.Vec3{X: tb.state[0], Y: tb.state[1], Z: tb.state[2]}, twoBodyTrailMax)
	tb.trailB = pushTrail(tb.trailB, vec.Vec3{X: tb.state[3], Y: tb.state[4], Z: tb.state[5]}, twoBodyTrailMax)
}

// System exposes the ODE for headless runs and tests.
func (tb *TwoBody) System() (dyn.System, dyn.State) {
	return tb.sys, tb.state.Clone()
}

func pushTrail(trail []vec.Vec3, p vec.Vec3, max int) []vec.Vec3 {
	trail = append(trail, p)
	if len(trail) > max {
		copy(trail, trail[len(trail)-max:])
		trail = trail[:max]
	}
	return trail
}

func drawTrail(list *scene.DrawList, trail []vec.Vec3, c scene.Color) {
	for i := 1; i < len(trail); i++ {
		fade := float64(i) / float64(len(trail))
		cc := c
		cc.A = uint8(25 + 170*fade)
		list.Line(trail[i-1], trail[i], cc)
	}
}

func (tb *TwoBody) Draw(list *scene.DrawList) {
	colA := scene.Color{R: 255, G: 200, B: 110, A: 255}
	colB := scene.Color{R: 120, G: 190, B: 255, A: 255}

	drawTrail(list, tb.trailA, colA)
	drawTrail(list, tb.trailB, colB)

	list.Sphere(vec.Vec3{X: tb.state[0], Y: tb.state[1], Z: tb.state[2]}, 0.22, colA)
	list.Sphere(vec.Vec3{X: tb.state[3], Y: tb.state[4], Z: tb.state[5]}, 0.22, colB)

	list.RingXZ(vec.Vec3{}, 1.0, 64, scene.Color{R: 80, G: 95, B: 130, A: 40})
}

func (tb *TwoBody) HUD() string {
	return fmt.Sprintf("t=%.3f  E=%.5f  drift=%.2e", tb.t, tb.sys.Energy(tb.state), tb.energyDrift())
}

func (tb *TwoBody) energyDrift() float64 {
	if tb.energy0 == 0 {
		return 0
	}
	return math.Abs(tb.sys.Energy(tb.state)-tb.energy0) / math.Abs(tb.energy0)
}

func (tb *TwoBody) Metrics() map[string]float64 {
	return map[string]float64{
		"energy":       tb.sys.Energy(tb.state),
		"energy_drift": tb.energyDrift(),
	}
}
