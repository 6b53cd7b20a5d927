package integrators

import "github.com/fabiuuh12/Physics-and-Programming/internal/dyn"

// Leapfrog is a symplectic kick-drift-kick integrator for states laid
// out as [positions..., velocities...]. Preferred for long gravitational
// runs where RK4's energy drift would accumulate.
type Leapfrog struct {
	scratch dyn.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys dyn.System, x dyn.State, t, dt float64) dyn.State {
	n := len(x)
	half := n / 2

	if len(l.scratch) != n {
		l.scratch = make(dyn.State, n)
	}

	result := make(dyn.State, n)
	dx := sys.Derivative(x, t)
	halfDt := dt * 0.5

	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}

	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	dxNew := sys.Derivative(l.scratch, t+dt)

	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}

	return result
}
