package compute

import (
	"math"
	"math/rand"
	"testing"
)

func TestCentralGravityMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := parallelThreshold * 2

	pos := make([]float64, n*3)
	vel := make([]float64, n*3)
	for i := range pos {
		pos[i] = rng.Float64()*10 - 5
		vel[i] = rng.Float64()*2 - 1
	}

	want := make([]float64, n*3)
	centralGravityRange(pos, vel, want, 12.0, 0.04, 0.025, 0, n)

	got := make([]float64, n*3)
	NewCPUBackend().CentralGravity(pos, vel, got, 12.0, 0.04, 0.025)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("parallel result diverges at %d: %g vs %g", i, got[i], want[i])
		}
	}
}

func TestCentralGravityPointsInward(t *testing.T) {
	pos := []float64{3, 0, 0}
	vel := []float64{0, 0, 0}
	acc := make([]float64, 3)

	NewCPUBackend().CentralGravity(pos, vel, acc, 12.0, 0.04, 0)

	if acc[0] >= 0 {
		t.Errorf("gravity should pull toward origin, got ax=%f", acc[0])
	}
	if acc[1] != 0 || acc[2] != 0 {
		t.Errorf("no lateral force expected, got %v", acc)
	}
}
