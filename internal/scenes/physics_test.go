package scenes

import (
	"math"
	"testing"

	"github.com/fabiuuh12/Physics-and-Programming/internal/integrators"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

func TestTwoBodyEnergyConservation(t *testing.T) {
	sys := &twoBodySystem{massA: 1, massB: 1}
	integ := integrators.NewRK4()

	state := TwoBodyCircularState()
	e0 := sys.Energy(state)

	dt := 0.005
	for i := 0; i < 10000; i++ {
		state = integ.Step(sys, state, float64(i)*dt, dt)
	}

	drift := math.Abs(sys.Energy(state)-e0) / math.Abs(e0)
	if drift > 1e-6 {
		t.Errorf("relative energy drift %.3e exceeds 1e-6 after 10k RK4 steps", drift)
	}
}

func TestTwoBodyMomentumConservation(t *testing.T) {
	sys := &twoBodySystem{massA: 1, massB: 1}
	integ := integrators.NewRK4()

	state := TwoBodyCircularState()
	dt := 0.005
	for i := 0; i < 5000; i++ {
		state = integ.Step(sys, state, float64(i)*dt, dt)
	}

	for k := 0; k < 3; k++ {
		p := state[6+k] + state[9+k]
		if math.Abs(p) > 1e-9 {
			t.Errorf("total momentum component %d = %.3e, want 0", k, p)
		}
	}
}

func TestDoublePendulumEnergyAndDivergence(t *testing.T) {
	p := NewDoublePendulum()
	e0 := p.sys.Energy(p.state)

	for i := 0; i < 4000; i++ {
		p.Step(0.001)
	}

	drift := math.Abs(p.sys.Energy(p.state)-e0) / math.Abs(e0)
	if drift > 1e-5 {
		t.Errorf("energy drift %.3e too large for dt=0.001", drift)
	}

	if p.Divergence() <= ghostOffset {
		t.Errorf("ghost should have diverged past the initial offset, got %.3e", p.Divergence())
	}
}

func TestLagrangePointsAreEquilibria(t *testing.T) {
	l := NewLagrange()
	pts := l.Points()

	// Collinear points sit where the axial force vanishes.
	for i := 0; i < 3; i++ {
		f := l.sys.axialForce(pts[i].X)
		if math.Abs(f) > 1e-8 {
			t.Errorf("L%d at x=%.6f has residual force %.3e", i+1, pts[i].X, f)
		}
	}

	// Earth-Moon values from the literature.
	if math.Abs(pts[0].X-0.8369) > 0.002 {
		t.Errorf("L1 = %.4f, expected near 0.8369", pts[0].X)
	}
	if math.Abs(pts[1].X-1.1557) > 0.002 {
		t.Errorf("L2 = %.4f, expected near 1.1557", pts[1].X)
	}
	if math.Abs(pts[2].X-(-1.0051)) > 0.002 {
		t.Errorf("L3 = %.4f, expected near -1.0051", pts[2].X)
	}

	// L4/L5 are equidistant from both primaries at unit range.
	mu := l.sys.mu
	for _, i := range []int{3, 4} {
		d1 := math.Hypot(pts[i].X+mu, pts[i].Z)
		d2 := math.Hypot(pts[i].X-1+mu, pts[i].Z)
		if math.Abs(d1-1) > 1e-12 || math.Abs(d2-1) > 1e-12 {
			t.Errorf("L%d not equilateral: d1=%f d2=%f", i+1, d1, d2)
		}
	}
}

func TestDopplerShellsAndFrequencies(t *testing.T) {
	d := NewDoppler()

	for i := 0; i < 120; i++ {
		d.Step(1.0 / 60.0)
	}

	if len(d.shells) == 0 {
		t.Fatal("no shells emitted after 2 seconds")
	}
	for _, s := range d.shells {
		r := (d.t - s.birth) * waveSpeed
		if r < 0 || r > shellMaxRadius {
			t.Errorf("shell radius %.3f outside [0, %.1f]", r, shellMaxRadius)
		}
	}

	m := d.Metrics()
	f0 := 1.0 / emitPeriod
	wantFront := f0 * waveSpeed / (waveSpeed - sourceSpeed)
	wantBack := f0 * waveSpeed / (waveSpeed + sourceSpeed)
	if math.Abs(m["freq_front"]-wantFront) > 1e-9 {
		t.Errorf("front frequency %.4f, want %.4f", m["freq_front"], wantFront)
	}
	if math.Abs(m["freq_back"]-wantBack) > 1e-9 {
		t.Errorf("back frequency %.4f, want %.4f", m["freq_back"], wantBack)
	}

	// Old shells must be culled once they cross the max radius.
	for i := 0; i < 60*20; i++ {
		d.Step(1.0 / 60.0)
	}
	maxShells := int(shellMaxRadius/(waveSpeed*emitPeriod)) + 1
	if len(d.shells) > maxShells {
		t.Errorf("%d live shells, cap should be about %d", len(d.shells), maxShells)
	}
}

func TestDopplerSonifierFrequency(t *testing.T) {
	d := NewDoppler()
	want := sonifyBaseHz * waveSpeed / (waveSpeed - sourceSpeed)
	if math.Abs(d.Frequency()-want) > 1e-9 {
		t.Errorf("Frequency() = %.3f, want %.3f", d.Frequency(), want)
	}
}

func TestDoubleSlitIntensity(t *testing.T) {
	if math.Abs(Intensity(0)-1) > 1e-12 {
		t.Errorf("central maximum = %f, want 1", Intensity(0))
	}

	// Pattern is symmetric about the axis.
	for _, theta := range []float64{0.05, 0.13, 0.31, 0.6} {
		a, b := Intensity(theta), Intensity(-theta)
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("I(%f)=%g but I(-%f)=%g", theta, a, theta, b)
		}
	}

	// Interference null at sin(theta) = lambda / (2d).
	null := math.Asin(slitWavelength / (2 * slitSeparation))
	if Intensity(null) > 1e-12 {
		t.Errorf("expected null at theta=%f, got %g", null, Intensity(null))
	}

	// First secondary maximum is dimmer than the central one.
	peak := math.Asin(slitWavelength / slitSeparation)
	if Intensity(peak) >= 1 {
		t.Errorf("secondary maximum %g should sit under the envelope", Intensity(peak))
	}
}

func TestEMFieldSuperposition(t *testing.T) {
	e := NewEMField()

	// Dipole field on the perpendicular bisector plane points from the
	// positive toward the negative charge (+x).
	f := e.FieldAt(vec.Vec3{Y: 1.2})
	if f.X <= 0 {
		t.Errorf("bisector field should point +x, got %v", f)
	}
	if math.Abs(f.Y) > 1e-9 || math.Abs(f.Z) > 1e-9 {
		t.Errorf("bisector field should have no lateral component, got %v", f)
	}

	// Field strength decays with distance.
	near := e.FieldAt(vec.Vec3{Y: 0.8}).Length()
	far := e.FieldAt(vec.Vec3{Y: 2.5}).Length()
	if far >= near {
		t.Errorf("field should decay: near=%f far=%f", near, far)
	}
}

func TestWavePacketDispersion(t *testing.T) {
	if math.Abs(Sigma(0)-packetSigma0) > 1e-12 {
		t.Errorf("Sigma(0) = %f, want %f", Sigma(0), packetSigma0)
	}

	prev := Sigma(0)
	for tau := 0.5; tau <= 5; tau += 0.5 {
		s := Sigma(tau)
		if s <= prev {
			t.Errorf("sigma should grow monotonically, Sigma(%f)=%f after %f", tau, s, prev)
		}
		prev = s
	}
}
