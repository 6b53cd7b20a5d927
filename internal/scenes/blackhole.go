package scenes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fabiuuh12/Physics-and-Programming/internal/compute"
	"github.com/fabiuuh12/Physics-and-Programming/internal/palette"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

const (
	eventHorizonRadius = 0.65
	photonRingRadius   = 1.15
	diskInnerRadius    = 1.35
	diskOuterRadius    = 4.5
	gravityMu          = 12.0
	diskDrag           = 0.025
	sheetExtent        = 11.0
	sheetGrid          = 52
	escapeRadius       = 11.0

	diskDefaultCount = 520
	diskMinCount     = 120
	diskMaxCount     = 1400
	diskCountStep    = 100
)

type dust struct {
	pos  vec.Vec3
	vel  vec.Vec3
	size float64
	heat float64
}

// BlackHole renders an accretion disk spiraling into an event horizon
// above a warped spacetime sheet.
type BlackHole struct {
	rng       *rand.Rand
	disk      []dust
	desired   int
	swallowed int
	t         float64
	warpScale float64

	// scratch buffers for the compute backend
	pos, vel, acc []float64
}

func NewBlackHole() *BlackHole {
	b := &BlackHole{desired: diskDefaultCount}
	b.Reset(rand.New(rand.NewSource(1)))
	return b
}

func (b *BlackHole) Name() string  { return "blackhole" }
func (b *BlackHole) Title() string { return "Black Hole + Accretion Disk" }

func (b *BlackHole) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: 0.78, Pitch: 0.38, Distance: 11.0,
		MinDist: 3.0, MaxDist: 26.0,
	}
}

func (b *BlackHole) Reset(rng *rand.Rand) {
	if rng != nil {
		b.rng = rng
	}
	b.t = 0
	b.swallowed = 0
	b.warpScale = 1.0
	b.disk = b.disk[:0]
	for i := 0; i < b.desired; i++ {
		b.disk = append(b.disk, b.spawn())
	}
}

func (b *BlackHole) spawn() dust {
	r := randRange(b.rng, diskInnerRadius, diskOuterRadius)
	phi := randRange(b.rng, 0, 2*math.Pi)
	thickness := randRange(b.rng, -0.15, 0.15)

	pos := vec.Vec3{X: r * math.Cos(phi), Y: thickness, Z: r * math.Sin(phi)}

	orbitalSpeed := math.Sqrt(gravityMu / r)
	tangent := vec.Vec3{X: -math.Sin(phi), Z: math.Cos(phi)}
	vel := tangent.Scale(orbitalSpeed * randRange(b.rng, 0.92, 1.06))

	inward := pos.Neg().Normalize()
	vel = vel.Add(inward.Scale(randRange(b.rng, 0.03, 0.1)))
	vel.Y += randRange(b.rng, -0.05, 0.05)

	return dust{
		pos:  pos,
		vel:  vel,
		size: randRange(b.rng, 0.03, 0.07),
		heat: randRange(b.rng, 0.45, 1.0),
	}
}

func (b *BlackHole) Step(dt float64) {
	b.t += dt

	n := len(b.disk)
	if cap(b.pos) < n*3 {
		b.pos = make([]float64, n*3)
		b.vel = make([]float64, n*3)
		b.acc = make([]float64, n*3)
	}
	b.pos, b.vel, b.acc = b.pos[:n*3], b.vel[:n*3], b.acc[:n*3]

	for i, d := range b.disk {
		b.pos[i*3], b.pos[i*3+1], b.pos[i*3+2] = d.pos.X, d.pos.Y, d.pos.Z
		b.vel[i*3], b.vel[i*3+1], b.vel[i*3+2] = d.vel.X, d.vel.Y, d.vel.Z
	}

	compute.Active().CentralGravity(b.pos, b.vel, b.acc, gravityMu, 0.04, diskDrag)

	for i := range b.disk {
		d := &b.disk[i]
		d.vel.X += b.acc[i*3] * dt
		d.vel.Y += b.acc[i*3+1] * dt
		d.vel.Z += b.acc[i*3+2] * dt
		d.pos = d.pos.Add(d.vel.Scale(dt))

		radius := d.pos.Length()
		d.heat = clamp(1.25-(radius-diskInnerRadius)/(diskOuterRadius-diskInnerRadius), 0.2, 1.0)
	}

	// Swallow and escape culling, then respawn to the desired count.
	kept := b.disk[:0]
	for _, d := range b.disk {
		r := d.pos.Length()
		if r < eventHorizonRadius*1.02 {
			b.swallowed++
			continue
		}
		if r > escapeRadius || !d.pos.IsFinite() {
			continue
		}
		kept = append(kept, d)
	}
	b.disk = kept

	for len(b.disk) < b.desired {
		b.disk = append(b.disk, b.spawn())
	}
}

func (b *BlackHole) StepDensity(dir int) {
	b.desired = clampInt(b.desired+dir*diskCountStep, diskMinCount, diskMaxCount)
	b.Reset(nil)
}

func warpHeight(x, z, scale float64) float64 {
	r2 := x*x + z*z
	well := -2.8 / math.Sqrt(r2+0.45*0.45)
	return math.Max(-5.2, well*scale)
}

func (b *BlackHole) drawWarpSheet(list *scene.DrawList) {
	cell := 2.0 * sheetExtent / float64(sheetGrid-1)
	for i := 0; i < sheetGrid; i++ {
		z := -sheetExtent + cell*float64(i)
		for j := 0; j < sheetGrid-1; j++ {
			x0 := -sheetExtent + cell*float64(j)
			x1 := x0 + cell
			p0 := vec.Vec3{X: x0, Y: warpHeight(x0, z, b.warpScale), Z: z}
			p1 := vec.Vec3{X: x1, Y: warpHeight(x1, z, b.warpScale), Z: z}
			glow := 1.0 - math.Min(1.0, math.Abs(p0.Y)/5.2)
			list.Line(p0, p1, palette.Cool(glow, uint8(85+95*glow)))
		}
	}
	for j := 0; j < sheetGrid; j++ {
		x := -sheetExtent + cell*float64(j)
		for i := 0; i < sheetGrid-1; i++ {
			z0 := -sheetExtent + cell*float64(i)
			z1 := z0 + cell
			p0 := vec.Vec3{X: x, Y: warpHeight(x, z0, b.warpScale), Z: z0}
			p1 := vec.Vec3{X: x, Y: warpHeight(x, z1, b.warpScale), Z: z1}
			glow := 1.0 - math.Min(1.0, math.Abs(p0.Y)/5.2)
			list.Line(p0, p1, palette.Cool(glow, uint8(65+80*glow)))
		}
	}
}

func (b *BlackHole) Draw(list *scene.DrawList) {
	b.drawWarpSheet(list)

	list.RingXZ(vec.Vec3{}, diskInnerRadius, 96, scene.Color{R: 255, G: 140, B: 70, A: 70})
	list.RingXZ(vec.Vec3{}, photonRingRadius, 120, scene.Color{R: 150, G: 210, B: 255, A: 100})
	list.RingXZ(vec.Vec3{}, diskOuterRadius, 120, scene.Color{R: 90, G: 130, B: 190, A: 45})

	list.Sphere(vec.Vec3{}, photonRingRadius, scene.Color{R: 80, G: 130, B: 200, A: 18})
	list.Sphere(vec.Vec3{}, eventHorizonRadius, scene.Color{A: 255})

	for _, d := range b.disk {
		list.Sphere(d.pos, d.size, palette.Heat(d.heat, 220))
	}
}

func (b *BlackHole) HUD() string {
	return fmt.Sprintf("t=%.2f  particles=%d  swallowed=%d", b.t, len(b.disk), b.swallowed)
}

func (b *BlackHole) Metrics() map[string]float64 {
	return map[string]float64{
		"particles": float64(len(b.disk)),
		"swallowed": float64(b.swallowed),
	}
}
