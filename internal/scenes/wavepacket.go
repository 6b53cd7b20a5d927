package scenes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fabiuuh12/Physics-and-Programming/internal/palette"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

const (
	packetSigma0    = 0.45
	packetK0        = 6.0
	packetHBarM     = 0.35 // hbar/m in scene units
	packetSpan      = 7.0
	packetSamples   = 220
	packetRibbonZ   = 0.5
	packetWrapLimit = packetSpan * 0.9
)

// WavePacket shows a free Gaussian wavepacket dispersing: the envelope
// widens as sigma(t) while the carrier runs at the phase velocity and
// the packet itself at the group velocity.
type WavePacket struct {
	t       float64
	centerT float64 // time since the packet last wrapped
	origin  float64
}

func NewWavePacket() *WavePacket {
	w := &WavePacket{}
	w.Reset(nil)
	return w
}

func (w *WavePacket) Name() string  { return "wavepacket" }
func (w *WavePacket) Title() string { return "Quantum Wavepacket Dispersion" }

func (w *WavePacket) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: -0.85, Pitch: 0.5, Distance: 11.0,
		MinDist: 4.0, MaxDist: 24.0,
	}
}

func (w *WavePacket) Reset(rng *rand.Rand) {
	w.t = 0
	w.centerT = 0
	w.origin = -packetWrapLimit * 0.7
}

// Sigma is the dispersed width at elapsed time tau.
func Sigma(tau float64) float64 {
	spread := packetHBarM * tau / (2 * packetSigma0)
	return packetSigma0 * math.Sqrt(1+spread*spread)
}

func (w *WavePacket) center() float64 {
	return w.origin + packetHBarM*packetK0*w.centerT
}

func (w *WavePacket) Step(dt float64) {
	w.t += dt
	w.centerT += dt
	// Restart the packet once it leaves the stage so dispersion stays
	// readable instead of flattening forever.
	if w.center() > packetWrapLimit || Sigma(w.centerT) > packetSpan/3 {
		w.centerT = 0
	}
}

// probability is |psi|^2 at x for the current packet.
func (w *WavePacket) probability(x float64) float64 {
	s := Sigma(w.centerT)
	d := x - w.center()
	return math.Exp(-d*d/(2*s*s)) / (s * math.Sqrt(2*math.Pi))
}

func (w *WavePacket) Draw(list *scene.DrawList) {
	axis := scene.Color{R: 90, G: 95, B: 120, A: 110}
	list.Line(vec.Vec3{X: -packetSpan}, vec.Vec3{X: packetSpan}, axis)

	s := Sigma(w.centerT)
	c := w.center()
	norm := w.probability(c)
	step := 2 * packetSpan / float64(packetSamples-1)

	var prevEnv, prevRe vec.Vec3
	for i := 0; i < packetSamples; i++ {
		x := -packetSpan + step*float64(i)
		p := w.probability(x) / norm

		env := vec.Vec3{X: x, Y: p * 2.2}
		if i > 0 {
			list.Line(prevEnv, env, palette.Intensity(p, 230))
		}
		prevEnv = env

		// Carrier wave under the envelope, drawn on a parallel ribbon.
		phase := packetK0*(x-c) - 0.5*packetHBarM*packetK0*packetK0*w.centerT
		re := vec.Vec3{X: x, Y: p * 2.2 * math.Cos(phase), Z: packetRibbonZ}
		if i > 0 {
			list.Line(prevRe, re, scene.Color{R: 130, G: 180, B: 255, A: uint8(50 + 180*p)})
		}
		prevRe = re
	}

	list.Sphere(vec.Vec3{X: c}, 0.08, scene.Color{R: 255, G: 220, B: 140, A: 255})
	list.Line(vec.Vec3{X: c - s, Y: -0.25}, vec.Vec3{X: c + s, Y: -0.25},
		scene.Color{R: 255, G: 220, B: 140, A: 140})
}

func (w *WavePacket) HUD() string {
	return fmt.Sprintf("t=%.2f  sigma=%.3f  center=%.2f  v_group=%.2f",
		w.t, Sigma(w.centerT), w.center(), packetHBarM*packetK0)
}

func (w *WavePacket) Metrics() map[string]float64 {
	return map[string]float64{
		"sigma":  Sigma(w.centerT),
		"center": w.center(),
	}
}
