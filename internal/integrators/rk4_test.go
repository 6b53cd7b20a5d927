package integrators

import (
	"math"
	"testing"

	"github.com/fabiuuh12/Physics-and-Programming/internal/dyn"
)

type oscillator struct{}

func (o *oscillator) Derivative(x dyn.State, t float64) dyn.State {
	return dyn.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	sys := &oscillator{}
	integ := NewRK4()

	x := dyn.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4ScratchReuse(t *testing.T) {
	sys := &oscillator{}
	integ := NewRK4()

	// Stepping different dimensions must not panic or corrupt results.
	x2 := integ.Step(sys, dyn.State{1, 0}, 0, 0.01)
	if len(x2) != 2 {
		t.Fatalf("expected dim 2, got %d", len(x2))
	}

	x4 := integ.Step(&pair{}, dyn.State{1, 0, 0, 1}, 0, 0.01)
	if len(x4) != 4 {
		t.Fatalf("expected dim 4, got %d", len(x4))
	}
}

// pair is two uncoupled oscillators, state [x1 v1 x2 v2].
type pair struct{}

func (p *pair) Derivative(x dyn.State, t float64) dyn.State {
	return dyn.State{x[1], -x[0], x[3], -x[2]}
}

func (p *pair) StateDim() int { return 4 }

func TestEulerFirstOrder(t *testing.T) {
	sys := &oscillator{}
	integ := NewEuler()

	x := dyn.State{1.0, 0.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	// Euler drifts, but at dt=1e-3 over one unit of time the error
	// stays well below 1e-2.
	if math.Abs(x[0]-math.Cos(1.0)) > 1e-2 {
		t.Errorf("euler error too large: got %.6f, expected %.6f", x[0], math.Cos(1.0))
	}
}

func TestRK45ShrinksStepOnError(t *testing.T) {
	sys := &oscillator{}
	integ := NewRK45()

	_, dtNew, err := integ.StepAdaptive(sys, dyn.State{1, 0}, 0, 1.0, 1e-10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dtNew >= 1.0 {
		t.Errorf("expected shrunk step for tight tolerance, got %.4f", dtNew)
	}
}

func TestLeapfrogEnergyBounded(t *testing.T) {
	sys := &oscillator{}
	integ := NewLeapfrog()

	x := dyn.State{1.0, 0.0}
	dt := 0.05
	energy := func(s dyn.State) float64 { return 0.5*s[1]*s[1] + 0.5*s[0]*s[0] }
	e0 := energy(x)

	for i := 0; i < 10000; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	if math.Abs(energy(x)-e0)/e0 > 1e-2 {
		t.Errorf("symplectic energy drift too large: %.6f -> %.6f", e0, energy(x))
	}
}
