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
	neutronApproachTime = 0.95
	splitOffsetMax      = 1.35
	splitDuration       = 1.1
	burstFragments      = 22
	burstSpeed          = 3.1
	burstLifetime       = 2.1
	fusionApproachTime  = 1.15
	fusionStartGap      = 1.8
	neutronStartX       = -4.2
)

type nuclearStage int

const (
	stageIdle nuclearStage = iota
	stageApproach
	stageSplit
	stageBurst
)

func (s nuclearStage) String() string {
	switch s {
	case stageApproach:
		return "approach"
	case stageSplit:
		return "split"
	case stageBurst:
		return "burst"
	default:
		return "idle"
	}
}

type fragment struct {
	pos vec.Vec3
	vel vec.Vec3
	age float64
}

// Fission plays a scripted fission sequence (neutron capture, split,
// energy burst) and, in its alternate mode, the fusion mirror of it
// (two nuclei merging, then the burst).
type Fission struct {
	rng    *rand.Rand
	fusion bool
	stage  nuclearStage
	timer  float64
	t      float64

	offset    float64 // half-separation of the daughter nuclei
	neutronX  float64
	fragments []fragment
	bursts    int
}

func NewFission() *Fission {
	f := &Fission{}
	f.Reset(rand.New(rand.NewSource(7)))
	return f
}

func (f *Fission) Name() string { return "fission" }

func (f *Fission) Title() string {
	if f.fusion {
		return "Nuclear Fusion"
	}
	return "Nuclear Fission"
}

func (f *Fission) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: 0.5, Pitch: 0.35, Distance: 9.0,
		MinDist: 3.0, MaxDist: 20.0,
	}
}

func (f *Fission) Reset(rng *rand.Rand) {
	if rng != nil {
		f.rng = rng
	}
	f.stage = stageIdle
	f.timer = 0
	f.t = 0
	f.neutronX = neutronStartX
	f.fragments = f.fragments[:0]
	f.bursts = 0
	if f.fusion {
		f.offset = fusionStartGap / 2
	} else {
		f.offset = 0
	}
}

// Trigger starts the sequence from idle; during a run it is ignored.
func (f *Fission) Trigger() {
	if f.stage != stageIdle {
		return
	}
	f.stage = stageApproach
	f.timer = 0
}

// SwitchMode flips between fission and fusion and restarts from idle.
func (f *Fission) SwitchMode() {
	f.fusion = !f.fusion
	f.Reset(nil)
}

func (f *Fission) Fusion() bool        { return f.fusion }
func (f *Fission) Stage() string       { return f.stage.String() }
func (f *Fission) FragmentCount() int  { return len(f.fragments) }
func (f *Fission) Separation() float64 { return 2 * f.offset }

func (f *Fission) spawnBurst(center vec.Vec3) {
	f.bursts++
	for i := 0; i < burstFragments; i++ {
		theta := randRange(f.rng, 0, 2*math.Pi)
		phi := math.Acos(randRange(f.rng, -1, 1))
		dir := vec.Vec3{
			X: math.Sin(phi) * math.Cos(theta),
			Y: math.Cos(phi),
			Z: math.Sin(phi) * math.Sin(theta),
		}
		f.fragments = append(f.fragments, fragment{
			pos: center,
			vel: dir.Scale(burstSpeed * randRange(f.rng, 0.8, 1.15)),
		})
	}
}

func (f *Fission) Step(dt float64) {
	f.t += dt
	f.timer += dt

	switch f.stage {
	case stageApproach:
		if f.fusion {
			frac := clamp(f.timer/fusionApproachTime, 0, 1)
			f.offset = (fusionStartGap / 2) * (1 - frac)
			if frac >= 1 {
				f.offset = 0
				f.stage = stageBurst
				f.timer = 0
				f.spawnBurst(vec.Vec3{})
			}
		} else {
			frac := clamp(f.timer/neutronApproachTime, 0, 1)
			f.neutronX = neutronStartX * (1 - frac)
			if frac >= 1 {
				f.stage = stageSplit
				f.timer = 0
			}
		}
	case stageSplit:
		frac := clamp(f.timer/splitDuration, 0, 1)
		// Ease out so the daughters decelerate as they separate.
		f.offset = splitOffsetMax * (1 - (1-frac)*(1-frac))
		if frac >= 1 {
			f.stage = stageBurst
			f.timer = 0
			f.spawnBurst(vec.Vec3{})
		}
	case stageBurst:
		if len(f.fragments) == 0 {
			f.stage = stageIdle
			f.timer = 0
			if f.fusion {
				f.offset = fusionStartGap / 2
			} else {
				f.neutronX = neutronStartX
				f.offset = 0
			}
		}
	}

	kept := f.fragments[:0]
	for _, fr := range f.fragments {
		fr.age += dt
		fr.pos = fr.pos.Add(fr.vel.Scale(dt))
		fr.vel = fr.vel.Scale(1 - 0.4*dt)
		if fr.age < burstLifetime && fr.pos.IsFinite() {
			kept = append(kept, fr)
		}
	}
	f.fragments = kept
}

func (f *Fission) drawNucleus(list *scene.DrawList, center vec.Vec3, radius float64, col scene.Color) {
	list.Sphere(center, radius, col)
	list.RingXZ(center, radius*1.25, 32, scene.Color{R: col.R, G: col.G, B: col.B, A: 60})
}

func (f *Fission) Draw(list *scene.DrawList) {
	heavy := scene.Color{R: 200, G: 140, B: 255, A: 255}
	light := scene.Color{R: 140, G: 200, B: 255, A: 255}

	if f.fusion {
		if f.stage == stageBurst && f.offset == 0 {
			f.drawNucleus(list, vec.Vec3{}, 0.55, heavy)
		} else {
			f.drawNucleus(list, vec.Vec3{X: -f.offset}, 0.35, light)
			f.drawNucleus(list, vec.Vec3{X: f.offset}, 0.35, light)
		}
	} else {
		if f.offset > 0 {
			f.drawNucleus(list, vec.Vec3{X: -f.offset}, 0.38, light)
			f.drawNucleus(list, vec.Vec3{X: f.offset}, 0.38, light)
		} else {
			f.drawNucleus(list, vec.Vec3{}, 0.5, heavy)
		}
		if f.stage == stageApproach || f.stage == stageIdle {
			list.Sphere(vec.Vec3{X: f.neutronX}, 0.12, scene.Color{R: 230, G: 230, B: 240, A: 255})
		}
	}

	for _, fr := range f.fragments {
		heat := 1 - fr.age/burstLifetime
		list.Sphere(fr.pos, 0.05+0.04*heat, palette.Heat(heat, uint8(255*heat)))
	}
}

func (f *Fission) HUD() string {
	mode := "fission"
	if f.fusion {
		mode = "fusion"
	}
	return fmt.Sprintf("t=%.2f  mode=%s  stage=%s  fragments=%d  (space: run, m: mode)",
		f.t, mode, f.stage, len(f.fragments))
}

func (f *Fission) Metrics() map[string]float64 {
	return map[string]float64{
		"fragments":  float64(len(f.fragments)),
		"separation": f.Separation(),
		"bursts":     float64(f.bursts),
	}
}
