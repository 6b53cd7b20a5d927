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
	slitSeparation = 1.0
	slitWidth      = 0.25
	slitWavelength = 0.35
	screenDistance = 6.0
	screenHalfSpan = 4.0
	screenSamples  = 160
	fringeRows     = 26
)

// DoubleSlit renders the far-field two-slit interference pattern as an
// animated intensity surface between barrier and screen.
type DoubleSlit struct {
	t float64
}

func NewDoubleSlit() *DoubleSlit {
	d := &DoubleSlit{}
	d.Reset(nil)
	return d
}

func (d *DoubleSlit) Name() string  { return "doubleslit" }
func (d *DoubleSlit) Title() string { return "Double-Slit Interference" }

func (d *DoubleSlit) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Target: vec.Vec3{Z: screenDistance / 2},
		Yaw:    -0.7, Pitch: 0.55, Distance: 10.0,
		MinDist: 3.0, MaxDist: 24.0,
	}
}

func (d *DoubleSlit) Reset(rng *rand.Rand) { d.t = 0 }

func (d *DoubleSlit) Step(dt float64) { d.t += dt }

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-9 {
		return 1
	}
	return math.Sin(x) / x
}

// Intensity is the normalized far-field pattern at viewing angle
// theta: a cos² interference term under a single-slit sinc² envelope.
func Intensity(theta float64) float64 {
	s := math.Sin(theta)
	inter := math.Cos(math.Pi * slitSeparation * s / slitWavelength)
	env := sinc(math.Pi * slitWidth * s / slitWavelength)
	return inter * inter * env * env
}

func screenTheta(x float64) float64 {
	return math.Atan2(x, screenDistance)
}

func (d *DoubleSlit) drawBarrier(list *scene.DrawList) {
	col := scene.Color{R: 160, G: 165, B: 185, A: 200}
	half := slitSeparation / 2
	hw := slitWidth / 2

	list.Line(vec.Vec3{X: -screenHalfSpan}, vec.Vec3{X: -half - hw}, col)
	list.Line(vec.Vec3{X: -half + hw}, vec.Vec3{X: half - hw}, col)
	list.Line(vec.Vec3{X: half + hw}, vec.Vec3{X: screenHalfSpan}, col)

	slitCol := scene.Color{R: 255, G: 230, B: 150, A: 255}
	list.Sphere(vec.Vec3{X: -half}, 0.05, slitCol)
	list.Sphere(vec.Vec3{X: half}, 0.05, slitCol)
}

func (d *DoubleSlit) Draw(list *scene.DrawList) {
	d.drawBarrier(list)

	// Screen baseline and intensity curve standing on it.
	base := scene.Color{R: 90, G: 95, B: 120, A: 120}
	list.Line(vec.Vec3{X: -screenHalfSpan, Z: screenDistance}, vec.Vec3{X: screenHalfSpan, Z: screenDistance}, base)

	step := 2 * screenHalfSpan / float64(screenSamples-1)
	var prev vec.Vec3
	for i := 0; i < screenSamples; i++ {
		x := -screenHalfSpan + step*float64(i)
		in := Intensity(screenTheta(x))
		p := vec.Vec3{X: x, Y: in * 1.8, Z: screenDistance}
		if i > 0 {
			list.Line(prev, p, palette.Intensity(in, 255))
		}
		prev = p
	}

	// Shimmering fringe field between barrier and screen. The phase
	// travels at the wave speed so the fringes appear to flow forward.
	for r := 0; r < fringeRows; r++ {
		z := screenDistance * float64(r+1) / float64(fringeRows+1)
		for i := 0; i < screenSamples; i += 2 {
			x := -screenHalfSpan + step*float64(i)
			theta := math.Atan2(x, z)
			in := Intensity(theta)
			phase := 0.5 + 0.5*math.Sin(2*math.Pi*(z/slitWavelength-d.t/emitPeriod)*0.25)
			v := in * phase
			if v < 0.04 {
				continue
			}
			list.Point(vec.Vec3{X: x, Z: z}, palette.Intensity(v, uint8(40+200*v)))
		}
	}
}

func (d *DoubleSlit) HUD() string {
	return fmt.Sprintf("t=%.2f  d=%.2f  a=%.2f  lambda=%.2f", d.t, slitSeparation, slitWidth, slitWavelength)
}

func (d *DoubleSlit) Metrics() map[string]float64 {
	return map[string]float64{
		"central_peak": Intensity(0),
		"first_null":   Intensity(math.Asin(slitWavelength / (2 * slitSeparation))),
	}
}
