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
	fieldGridExtent = 3.0
	fieldGridStep   = 0.75
	arrowMaxLen     = 0.55
	wireCurrent     = 1.0
	wireRingCount   = 6
	testChargeQ     = -0.4
	testChargeMass  = 0.3
)

type pointCharge struct {
	pos vec.Vec3
	q   float64
}

// EMField shows the superposed electric field of a charge pair next to
// the magnetic rings of a straight current-carrying wire, with a test
// charge coasting through the E field.
type EMField struct {
	charges []pointCharge
	t       float64

	probePos vec.Vec3
	probeVel vec.Vec3
}

func NewEMField() *EMField {
	e := &EMField{}
	e.Reset(nil)
	return e
}

func (e *EMField) Name() string  { return "emfield" }
func (e *EMField) Title() string { return "Electromagnetic Fields" }

func (e *EMField) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: 0.75, Pitch: 0.5, Distance: 10.0,
		MinDist: 3.0, MaxDist: 22.0,
	}
}

func (e *EMField) Reset(rng *rand.Rand) {
	e.t = 0
	e.charges = []pointCharge{
		{pos: vec.Vec3{X: -1.3}, q: 1},
		{pos: vec.Vec3{X: 1.3}, q: -1},
	}
	e.probePos = vec.Vec3{X: -2.6, Y: 0.8}
	e.probeVel = vec.Vec3{X: 0.6}
}

// FieldAt superposes the Coulomb contributions of every charge.
func (e *EMField) FieldAt(p vec.Vec3) vec.Vec3 {
	var field vec.Vec3
	for _, c := range e.charges {
		r := p.Sub(c.pos)
		d2 := r.Dot(r) + 1e-4
		field = field.Add(r.Scale(c.q / (d2 * math.Sqrt(d2))))
	}
	return field
}

func (e *EMField) Step(dt float64) {
	e.t += dt

	// Test charge responds to E only; reset it when it leaves the box
	// or the integration blows up near a charge.
	force := e.FieldAt(e.probePos).Scale(testChargeQ)
	e.probeVel = e.probeVel.Add(force.Scale(dt / testChargeMass))
	e.probePos = e.probePos.Add(e.probeVel.Scale(dt))

	if !e.probePos.IsFinite() || e.probePos.Length() > fieldGridExtent*2 {
		e.probePos = vec.Vec3{X: -2.6, Y: 0.8}
		e.probeVel = vec.Vec3{X: 0.6}
	}
}

// arrowScale log-clamps a field magnitude into a drawable length.
func arrowScale(mag float64) float64 {
	if mag < 1e-9 {
		return 0
	}
	return arrowMaxLen * clamp(0.25+0.18*math.Log10(1+mag*10), 0, 1)
}

func (e *EMField) drawElectric(list *scene.DrawList) {
	for _, c := range e.charges {
		col := scene.Color{R: 255, G: 110, B: 110, A: 255}
		if c.q < 0 {
			col = scene.Color{R: 110, G: 150, B: 255, A: 255}
		}
		list.Sphere(c.pos, 0.16, col)
	}

	for x := -fieldGridExtent; x <= fieldGridExtent; x += fieldGridStep {
		for y := -fieldGridExtent / 2; y <= fieldGridExtent/2; y += fieldGridStep {
			for z := -fieldGridExtent / 2; z <= fieldGridExtent/2; z += fieldGridStep {
				p := vec.Vec3{X: x, Y: y, Z: z}
				f := e.FieldAt(p)
				mag := f.Length()
				l := arrowScale(mag)
				if l < 0.05 {
					continue
				}
				dir := f.Scale(1 / mag)
				list.Arrow(p, p.Add(dir.Scale(l)), palette.Cool(l/arrowMaxLen, 160))
			}
		}
	}

	list.Sphere(e.probePos, 0.08, scene.Color{R: 170, G: 255, B: 170, A: 255})
}

func (e *EMField) drawMagnetic(list *scene.DrawList) {
	// Wire along y, offset behind the charges. B circles the wire and
	// falls off as 1/r.
	wireX := 0.0
	wireZ := -3.2
	wireCol := scene.Color{R: 230, G: 200, B: 120, A: 255}
	list.Line(vec.Vec3{X: wireX, Y: -2.4, Z: wireZ}, vec.Vec3{X: wireX, Y: 2.4, Z: wireZ}, wireCol)
	list.Arrow(vec.Vec3{X: wireX, Y: 1.8, Z: wireZ}, vec.Vec3{X: wireX, Y: 2.4, Z: wireZ}, wireCol)

	for i := 1; i <= wireRingCount; i++ {
		r := 0.3 * float64(i)
		b := wireCurrent / r
		strength := clamp(b/(wireCurrent/0.3), 0, 1)
		for _, y := range []float64{-1.4, 0, 1.4} {
			list.RingXZ(vec.Vec3{X: wireX, Y: y, Z: wireZ}, r, 48,
				palette.Cool(strength, uint8(35+150*strength)))
		}
	}
}

func (e *EMField) Draw(list *scene.DrawList) {
	e.drawElectric(list)
	e.drawMagnetic(list)
}

func (e *EMField) HUD() string {
	f := e.FieldAt(e.probePos)
	return fmt.Sprintf("t=%.2f  |E at probe|=%.3f  probe v=%.2f", e.t, f.Length(), e.probeVel.Length())
}

func (e *EMField) Metrics() map[string]float64 {
	return map[string]float64{
		"probe_field": e.FieldAt(e.probePos).Length(),
		"probe_speed": e.probeVel.Length(),
	}
}
