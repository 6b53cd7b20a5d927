// Package scenes holds the visualization catalog. Each scene is a
// self-contained simulation behind the scene.Scene interface; the
// registry is what the CLI, the GUI menu, and the terminal renderer
// enumerate.
package scenes

import "github.com/fabiuuh12/Physics-and-Programming/internal/scene"

// DefaultRegistry returns the full catalog.
func DefaultRegistry() *scene.Registry {
	r := scene.NewRegistry()
	r.Register("blackhole", "Black Hole + Accretion Disk", func() scene.Scene { return NewBlackHole() })
	r.Register("twobody", "Two-Body Orbit (RK4)", func() scene.Scene { return NewTwoBody() })
	r.Register("doublependulum", "Double Pendulum Chaos", func() scene.Scene { return NewDoublePendulum() })
	r.Register("lagrange", "Lagrange Points (Rotating Frame)", func() scene.Scene { return NewLagrange() })
	r.Register("doppler", "Doppler Wavefronts", func() scene.Scene { return NewDoppler() })
	r.Register("doubleslit", "Double-Slit Interference", func() scene.Scene { return NewDoubleSlit() })
	r.Register("emfield", "Electromagnetic Fields", func() scene.Scene { return NewEMField() })
	r.Register("fission", "Nuclear Fission / Fusion", func() scene.Scene { return NewFission() })
	r.Register("higgs", "Higgs Event Display", func() scene.Scene { return NewHiggs() })
	r.Register("wavepacket", "Quantum Wavepacket Dispersion", func() scene.Scene { return NewWavePacket() })
	return r
}
