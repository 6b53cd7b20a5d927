package compute

import (
	"math"
	"runtime"
	"sync"
)

// parallelThreshold is the particle count below which the goroutine
// fan-out costs more than it saves.
const parallelThreshold = 512

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{workers: runtime.NumCPU()}
}

func (c *CPUBackend) Name() string { return "cpu" }

func (c *CPUBackend) CentralGravity(pos, vel, acc []float64, mu, softening2, drag float64) {
	n := len(pos) / 3
	if n < parallelThreshold || c.workers < 2 {
		centralGravityRange(pos, vel, acc, mu, softening2, drag, 0, n)
		return
	}

	var wg sync.WaitGroup
	chunk := (n + c.workers - 1) / c.workers
	for w := 0; w < c.workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			centralGravityRange(pos, vel, acc, mu, softening2, drag, start, end)
		}(start, end)
	}
	wg.Wait()
}

func centralGravityRange(pos, vel, acc []float64, mu, softening2, drag float64, start, end int) {
	for i := start; i < end; i++ {
		x, y, z := pos[i*3], pos[i*3+1], pos[i*3+2]
		r2 := x*x + y*y + z*z + softening2
		invR := 1.0 / math.Sqrt(r2)
		g := -mu * invR * invR * invR

		acc[i*3] = g*x - drag*vel[i*3]
		acc[i*3+1] = g*y - drag*vel[i*3+1]
		acc[i*3+2] = g*z - drag*vel[i*3+2]
	}
}
