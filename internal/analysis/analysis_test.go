package analysis

import (
	"math"
	"testing"

	"github.com/fabiuuh12/Physics-and-Programming/internal/dyn"
	"github.com/fabiuuh12/Physics-and-Programming/internal/integrators"
)

// oscillator is the unit harmonic oscillator, state [x v].
type oscillator struct{}

func (oscillator) StateDim() int { return 2 }
func (oscillator) Derivative(x dyn.State, t float64) dyn.State {
	return dyn.State{x[1], -x[0]}
}
func (oscillator) Energy(x dyn.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

// exponential grows or shrinks at a fixed rate, so its largest
// Lyapunov exponent is the rate itself.
type exponential struct{ rate float64 }

func (exponential) StateDim() int { return 1 }
func (e exponential) Derivative(x dyn.State, t float64) dyn.State {
	return dyn.State{e.rate * x[0]}
}

func TestDominantFrequency(t *testing.T) {
	const (
		freq = 5.0
		dt   = 0.01
		n    = 1024
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	got := DominantFrequency(data, dt)
	if math.Abs(got-freq) > 0.2 {
		t.Errorf("dominant frequency %.3f, want %.1f", got, freq)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	data := make([]float64, 256)
	ps := PowerSpectrum(data)
	if len(ps) != 128 {
		t.Errorf("one-sided spectrum of 256 samples should have 128 bins, got %d", len(ps))
	}
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("too-short input should return nil")
	}
}

func TestLyapunovExponentMatchesLinearRate(t *testing.T) {
	integ := integrators.NewRK4()

	for _, rate := range []float64{0.7, -0.5} {
		sys := exponential{rate: rate}
		got := LyapunovExponent(sys, integ, dyn.State{1}, 0.01, 50, 1e-8)
		if math.Abs(got-rate) > 1e-3 {
			t.Errorf("rate %.2f: exponent %.5f", rate, got)
		}
	}
}

func TestEnergyDriftSmallForRK4(t *testing.T) {
	sys := oscillator{}
	drift := EnergyDrift(sys, sys, integrators.NewRK4(), dyn.State{1, 0}, 0.01, 100)
	if drift > 1e-6 {
		t.Errorf("oscillator drift %.3e too large for RK4 at dt=0.01", drift)
	}
	if drift == 0 {
		t.Error("drift should be positive but tiny")
	}
}

func TestDivergence(t *testing.T) {
	a := [][]float64{{0, 0}, {1, 0}, {2, 0}}
	b := [][]float64{{0, 0}, {1, 1}, {2, 2}}

	d := Divergence(a, b)
	want := []float64{0, 1, 2}
	for i := range want {
		if math.Abs(d[i]-want[i]) > 1e-12 {
			t.Errorf("d[%d] = %f, want %f", i, d[i], want[i])
		}
	}
}
