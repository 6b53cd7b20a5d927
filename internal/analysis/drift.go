package analysis

import (
	"math"

	"github.com/fabiuuh12/Physics-and-Programming/internal/dyn"
)

// EnergyDrift integrates a conservative system and returns the maximum
// relative deviation of its energy from the initial value. It is the
// standard sanity check for an integrator/step-size pairing.
func EnergyDrift(sys dyn.System, ham dyn.Hamiltonian, integ dyn.Integrator, x0 dyn.State, dt, duration float64) float64 {
	e0 := ham.Energy(x0)
	if e0 == 0 || dt <= 0 {
		return 0
	}

	x := x0.Clone()
	maxDrift := 0.0
	for t := 0.0; t < duration; t += dt {
		x = integ.Step(sys, x, t, dt)
		if !x.IsValid() {
			return math.Inf(1)
		}
		drift := math.Abs(ham.Energy(x)-e0) / math.Abs(e0)
		if drift > maxDrift {
			maxDrift = drift
		}
	}
	return maxDrift
}

// Divergence returns the per-sample Euclidean distance between two
// recorded trajectories of equal dimension.
func Divergence(a, b [][]float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := range a[i] {
			if j >= len(b[i]) {
				break
			}
			d := a[i][j] - b[i][j]
			sum += d * d
		}
		out[i] = math.Sqrt(sum)
	}
	return out
}
