package scenes

import (
	"math/rand"
	"testing"
)

func stepFor(s interface{ Step(float64) }, seconds float64) {
	dt := 1.0 / 120.0
	for t := 0.0; t < seconds; t += dt {
		s.Step(dt)
	}
}

func TestFissionSequence(t *testing.T) {
	f := NewFission()

	if f.Stage() != "idle" {
		t.Fatalf("fresh scene should idle, got %q", f.Stage())
	}
	stepFor(f, 1.0)
	if f.Stage() != "idle" {
		t.Fatalf("fission must wait for a trigger, got %q", f.Stage())
	}

	f.Trigger()
	if f.Stage() != "approach" {
		t.Fatalf("trigger should start the approach, got %q", f.Stage())
	}

	stepFor(f, neutronApproachTime+0.05)
	if f.Stage() != "split" {
		t.Fatalf("expected split after %.2fs, got %q", neutronApproachTime, f.Stage())
	}

	stepFor(f, splitDuration+0.05)
	if f.Stage() != "burst" {
		t.Fatalf("expected burst after the split, got %q", f.Stage())
	}
	if f.FragmentCount() == 0 {
		t.Error("burst should spawn fragments")
	}
	if sep := f.Separation(); sep < 2*splitOffsetMax-1e-6 {
		t.Errorf("daughters should reach separation %.2f, got %.3f", 2*splitOffsetMax, sep)
	}

	stepFor(f, burstLifetime+0.2)
	if f.Stage() != "idle" || f.FragmentCount() != 0 {
		t.Errorf("sequence should return to idle with no fragments, got %q / %d",
			f.Stage(), f.FragmentCount())
	}
}

func TestFissionResetRestoresInitialState(t *testing.T) {
	f := NewFission()
	f.Trigger()
	stepFor(f, 2.5)

	f.Reset(rand.New(rand.NewSource(7)))
	if f.Stage() != "idle" {
		t.Errorf("reset should idle the script, got %q", f.Stage())
	}
	if f.FragmentCount() != 0 || f.Separation() != 0 {
		t.Errorf("reset should clear fragments and separation, got %d / %f",
			f.FragmentCount(), f.Separation())
	}
}

func TestFusionModeMergesBeforeBurst(t *testing.T) {
	f := NewFission()
	f.SwitchMode()
	if !f.Fusion() {
		t.Fatal("mode switch should enable fusion")
	}
	if sep := f.Separation(); sep != fusionStartGap {
		t.Fatalf("fusion starts at separation %.2f, got %.3f", fusionStartGap, sep)
	}

	f.Trigger()
	stepFor(f, fusionApproachTime+0.05)
	if f.Stage() != "burst" {
		t.Fatalf("fusion should burst right after the merge, got %q", f.Stage())
	}
	if f.Separation() != 0 {
		t.Errorf("merged nuclei should sit at separation 0, got %f", f.Separation())
	}

	f.SwitchMode()
	if f.Fusion() {
		t.Error("second switch should return to fission")
	}
}

func TestHiggsAutoCycle(t *testing.T) {
	h := NewHiggs()
	if !h.AutoCycle() {
		t.Fatal("auto-cycle should default on")
	}

	stepFor(h, idleRestartDelay+beamApproachTime+0.1)
	if h.Stage() != "higgs" {
		t.Fatalf("expected higgs creation, got %q", h.Stage())
	}
	if h.Events() != 1 {
		t.Errorf("one event expected, got %d", h.Events())
	}

	stepFor(h, higgsHoldTime+0.05)
	if h.Stage() != "decay" {
		t.Fatalf("expected decay stage, got %q", h.Stage())
	}

	// A second cycle starts on its own.
	stepFor(h, decayDuration+idleRestartDelay+beamApproachTime+0.2)
	if h.Events() < 2 {
		t.Errorf("auto-cycle should keep producing events, got %d", h.Events())
	}
}

func TestHiggsManualMode(t *testing.T) {
	h := NewHiggs()
	h.SwitchMode()
	if h.AutoCycle() {
		t.Fatal("switch should disable auto-cycle")
	}

	stepFor(h, 4.0)
	if h.Stage() != "idle" || h.Events() != 0 {
		t.Fatalf("manual mode must wait for a trigger, got %q / %d", h.Stage(), h.Events())
	}

	h.Trigger()
	stepFor(h, beamApproachTime+0.05)
	if h.Events() != 1 {
		t.Errorf("trigger should produce one event, got %d", h.Events())
	}
}

func TestBlackHoleDensityClamps(t *testing.T) {
	b := NewBlackHole()

	for i := 0; i < 40; i++ {
		b.StepDensity(1)
	}
	if got := len(b.disk); got != diskMaxCount {
		t.Errorf("density should clamp at %d, got %d", diskMaxCount, got)
	}

	for i := 0; i < 40; i++ {
		b.StepDensity(-1)
	}
	if got := len(b.disk); got != diskMinCount {
		t.Errorf("density should clamp at %d, got %d", diskMinCount, got)
	}
}

func TestBlackHoleMaintainsPopulation(t *testing.T) {
	b := NewBlackHole()
	stepFor(b, 20.0)

	if got := len(b.disk); got != diskDefaultCount {
		t.Errorf("disk should respawn to %d particles, got %d", diskDefaultCount, got)
	}
	if b.swallowed == 0 {
		t.Error("inspiraling dust should have crossed the horizon by now")
	}
	for _, d := range b.disk {
		if !d.pos.IsFinite() {
			t.Fatal("non-finite dust survived the cull")
		}
	}
}
