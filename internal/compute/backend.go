// Package compute hosts the particle batch kernels behind the larger
// scenes. Only a CPU backend exists: the raylib window owns the GL
// context in every program here, so there is no second context to run
// compute shaders on.
package compute

// Backend evaluates accelerations for a batch of particles.
type Backend interface {
	Name() string
	// CentralGravity fills acc with -mu*r/|r|^3 softened gravity plus
	// linear drag for interleaved xyz positions and velocities.
	CentralGravity(pos, vel, acc []float64, mu, softening2, drag float64)
}

var active Backend = NewCPUBackend()

func Active() Backend {
	return active
}

func SetActive(b Backend) {
	if b != nil {
		active = b
	}
}
