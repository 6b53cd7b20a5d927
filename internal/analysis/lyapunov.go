package analysis

import (
	"math"

	"github.com/fabiuuh12/Physics-and-Programming/internal/dyn"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Two trajectories start a distance perturbation apart; the average
// log growth rate of their separation, with periodic renormalization
// to keep the pair close, is the exponent.
func LyapunovExponent(sys dyn.System, integ dyn.Integrator, x0 dyn.State, dt, duration, perturbation float64) float64 {
	if len(x0) == 0 || perturbation <= 0 || dt <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation

	sumLog := 0.0
	count := 0

	for t := 0.0; t < duration; t += dt {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		if !x.IsValid() || !xp.IsValid() {
			break
		}

		sep := 0.0
		for i := range x {
			diff := xp[i] - x[i]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)
		if sep <= 0 {
			continue
		}

		sumLog += math.Log(sep / perturbation)
		count++

		// Renormalize so the pair stays in the linear regime.
		scale := perturbation / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
