package scenes

import (
	"fmt"
	"math/rand"

	"github.com/fabiuuh12/Physics-and-Programming/internal/palette"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

const (
	waveSpeed       = 1.0
	sourceSpeed     = 0.55
	emitPeriod      = 0.25
	shellMaxRadius  = 8.0
	sourceTrackHalf = 5.0

	// Audible base tone for the rest-frame emission frequency.
	sonifyBaseHz = 220.0
)

type wavefront struct {
	origin vec.Vec3
	birth  float64
}

// Doppler emits expanding wavefront shells from a moving source so the
// front/back compression of the wave pattern is visible directly.
type Doppler struct {
	t         float64
	lastEmit  float64
	sourceX   float64
	direction float64
	shells    []wavefront
}

func NewDoppler() *Doppler {
	d := &Doppler{}
	d.Reset(nil)
	return d
}

func (d *Doppler) Name() string  { return "doppler" }
func (d *Doppler) Title() string { return "Doppler Wavefronts" }

func (d *Doppler) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: 0.9, Pitch: 1.0, Distance: 14.0,
		MinDist: 4.0, MaxDist: 30.0,
	}
}

func (d *Doppler) Reset(rng *rand.Rand) {
	d.t = 0
	d.lastEmit = -emitPeriod
	d.sourceX = -sourceTrackHalf
	d.direction = 1
	d.shells = d.shells[:0]
}

func (d *Doppler) Step(dt float64) {
	d.t += dt

	d.sourceX += d.direction * sourceSpeed * dt
	if d.sourceX > sourceTrackHalf {
		d.sourceX = sourceTrackHalf
		d.direction = -1
	} else if d.sourceX < -sourceTrackHalf {
		d.sourceX = -sourceTrackHalf
		d.direction = 1
	}

	for d.t-d.lastEmit >= emitPeriod {
		d.lastEmit += emitPeriod
		d.shells = append(d.shells, wavefront{
			origin: vec.Vec3{X: d.sourceX},
			birth:  d.lastEmit,
		})
	}

	kept := d.shells[:0]
	for _, s := range d.shells {
		if (d.t-s.birth)*waveSpeed <= shellMaxRadius {
			kept = append(kept, s)
		}
	}
	d.shells = kept
}

func (d *Doppler) frontRatio() float64 { return waveSpeed / (waveSpeed - sourceSpeed) }
func (d *Doppler) backRatio() float64  { return waveSpeed / (waveSpeed + sourceSpeed) }

// Frequency drives the sonifier with the front-observer tone.
func (d *Doppler) Frequency() float64 {
	return sonifyBaseHz * d.frontRatio()
}

func (d *Doppler) Draw(list *scene.DrawList) {
	list.Line(vec.Vec3{X: -sourceTrackHalf - 1}, vec.Vec3{X: sourceTrackHalf + 1},
		scene.Color{R: 90, G: 95, B: 120, A: 70})

	src := vec.Vec3{X: d.sourceX}
	for _, s := range d.shells {
		r := (d.t - s.birth) * waveSpeed
		fade := 1.0 - r/shellMaxRadius
		// Ahead of the motion the shells bunch up; shade them bluer.
		shift := 0.5 + 0.5*d.direction*sign(s.origin.X-d.sourceX+1e-9)
		if r < 1e-6 {
			shift = 0.5
		}
		list.RingXZ(s.origin, r, 72, palette.DopplerShift(shift, uint8(30+180*clamp(fade, 0, 1))))
	}

	list.Sphere(src, 0.18, scene.Color{R: 255, G: 235, B: 150, A: 255})
	list.Arrow(src, src.Add(vec.Vec3{X: d.direction * 1.2}), scene.Color{R: 255, G: 235, B: 150, A: 180})
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func (d *Doppler) HUD() string {
	f0 := 1.0 / emitPeriod
	return fmt.Sprintf("t=%.2f  f0=%.2f  front=%.2f  back=%.2f  shells=%d",
		d.t, f0, f0*d.frontRatio(), f0*d.backRatio(), len(d.shells))
}

func (d *Doppler) Metrics() map[string]float64 {
	f0 := 1.0 / emitPeriod
	return map[string]float64{
		"shells":     float64(len(d.shells)),
		"freq_front": f0 * d.frontRatio(),
		"freq_back":  f0 * d.backRatio(),
		"source_x":   d.sourceX,
	}
}
