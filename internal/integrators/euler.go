package integrators

import "github.com/fabiuuh12/Physics-and-Programming/internal/dyn"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dyn.System, x dyn.State, t, dt float64) dyn.State {
	dx := sys.Derivative(x, t)
	result := make(dyn.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
