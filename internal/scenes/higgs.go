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
	beamApproachTime = 1.15
	higgsHoldTime    = 0.8
	decayDuration    = 2.4
	beamStartX       = 4.6
	decayProducts    = 4
	idleRestartDelay = 1.0
)

type higgsStage int

const (
	higgsIdle higgsStage = iota
	higgsBeams
	higgsCreated
	higgsDecay
)

func (s higgsStage) String() string {
	switch s {
	case higgsBeams:
		return "beams"
	case higgsCreated:
		return "higgs"
	case higgsDecay:
		return "decay"
	default:
		return "idle"
	}
}

type decayTrack struct {
	dir   vec.Vec3
	speed float64
	color scene.Color
	curve float64
}

// Higgs plays a collider event as a stage script: two beams close in,
// a Higgs appears at the vertex, then decays into curved tracks. With
// auto-cycle on, the script loops on its own.
type Higgs struct {
	rng       *rand.Rand
	stage     higgsStage
	timer     float64
	t         float64
	autoCycle bool
	events    int

	tracks []decayTrack
}

func NewHiggs() *Higgs {
	h := &Higgs{autoCycle: true}
	h.Reset(rand.New(rand.NewSource(11)))
	return h
}

func (h *Higgs) Name() string  { return "higgs" }
func (h *Higgs) Title() string { return "Higgs Event Display" }

func (h *Higgs) Camera() scene.CameraSpec {
	return scene.CameraSpec{
		Yaw: 0.95, Pitch: 0.4, Distance: 8.5,
		MinDist: 3.0, MaxDist: 18.0,
	}
}

func (h *Higgs) Reset(rng *rand.Rand) {
	if rng != nil {
		h.rng = rng
	}
	h.stage = higgsIdle
	h.timer = 0
	h.t = 0
	h.events = 0
	h.tracks = h.tracks[:0]
}

// Trigger starts a collision from idle.
func (h *Higgs) Trigger() {
	if h.stage != higgsIdle {
		return
	}
	h.stage = higgsBeams
	h.timer = 0
}

// SwitchMode toggles automatic event cycling.
func (h *Higgs) SwitchMode() { h.autoCycle = !h.autoCycle }

func (h *Higgs) Stage() string   { return h.stage.String() }
func (h *Higgs) AutoCycle() bool { return h.autoCycle }
func (h *Higgs) Events() int     { return h.events }

func (h *Higgs) rollDecay() {
	h.tracks = h.tracks[:0]
	colors := []scene.Color{
		{R: 120, G: 200, B: 255, A: 255},
		{R: 255, G: 170, B: 110, A: 255},
		{R: 170, G: 255, B: 150, A: 255},
		{R: 255, G: 130, B: 200, A: 255},
	}
	for i := 0; i < decayProducts; i++ {
		theta := randRange(h.rng, 0, 2*math.Pi)
		phi := math.Acos(randRange(h.rng, -1, 1))
		h.tracks = append(h.tracks, decayTrack{
			dir: vec.Vec3{
				X: math.Sin(phi) * math.Cos(theta),
				Y: math.Cos(phi),
				Z: math.Sin(phi) * math.Sin(theta),
			},
			speed: randRange(h.rng, 1.4, 2.6),
			color: colors[i%len(colors)],
			curve: randRange(h.rng, -1.2, 1.2),
		})
	}
}

func (h *Higgs) Step(dt float64) {
	h.t += dt
	h.timer += dt

	switch h.stage {
	case higgsIdle:
		if h.autoCycle && h.timer >= idleRestartDelay {
			h.stage = higgsBeams
			h.timer = 0
		}
	case higgsBeams:
		if h.timer >= beamApproachTime {
			h.stage = higgsCreated
			h.timer = 0
			h.events++
		}
	case higgsCreated:
		if h.timer >= higgsHoldTime {
			h.stage = higgsDecay
			h.timer = 0
			h.rollDecay()
		}
	case higgsDecay:
		if h.timer >= decayDuration {
			h.stage = higgsIdle
			h.timer = 0
			h.tracks = h.tracks[:0]
		}
	}
}

// trackPoint bends each decay product in the detector field.
func trackPoint(tr decayTrack, s float64) vec.Vec3 {
	p := tr.dir.Scale(s * tr.speed)
	bend := tr.curve * s * s * 0.3
	return vec.Vec3{
		X: p.X*math.Cos(bend) - p.Z*math.Sin(bend),
		Y: p.Y,
		Z: p.X*math.Sin(bend) + p.Z*math.Cos(bend),
	}
}

func (h *Higgs) Draw(list *scene.DrawList) {
	// Detector barrel.
	for _, r := range []float64{1.6, 2.6, 3.4} {
		list.RingXZ(vec.Vec3{Y: -0.9}, r, 64, scene.Color{R: 80, G: 90, B: 120, A: 55})
		list.RingXZ(vec.Vec3{Y: 0.9}, r, 64, scene.Color{R: 80, G: 90, B: 120, A: 55})
	}
	beamline := scene.Color{R: 120, G: 130, B: 160, A: 90}
	list.Line(vec.Vec3{X: -beamStartX}, vec.Vec3{X: beamStartX}, beamline)

	beamCol := scene.Color{R: 255, G: 240, B: 170, A: 255}
	switch h.stage {
	case higgsBeams:
		frac := clamp(h.timer/beamApproachTime, 0, 1)
		x := beamStartX * (1 - frac)
		list.Sphere(vec.Vec3{X: -x}, 0.11, beamCol)
		list.Sphere(vec.Vec3{X: x}, 0.11, beamCol)
	case higgsCreated:
		pulse := 0.45 + 0.1*math.Sin(h.t*9)
		list.Sphere(vec.Vec3{}, pulse, scene.Color{R: 255, G: 255, B: 255, A: 255})
		list.RingXZ(vec.Vec3{}, pulse*1.8, 48, scene.Color{R: 255, G: 255, B: 255, A: 110})
	case higgsDecay:
		reach := h.timer / decayDuration
		for _, tr := range h.tracks {
			const segs = 24
			var prev vec.Vec3
			for i := 0; i <= segs; i++ {
				s := reach * float64(i) / segs
				p := trackPoint(tr, s)
				if i > 0 {
					list.Line(prev, p, tr.color)
				}
				prev = p
			}
			list.Sphere(prev, 0.07, tr.color)
		}
		glow := 1 - reach
		if glow > 0 {
			list.Sphere(vec.Vec3{}, 0.45*glow, palette.Heat(glow, uint8(200*glow)))
		}
	}
}

func (h *Higgs) HUD() string {
	auto := "off"
	if h.autoCycle {
		auto = "on"
	}
	return fmt.Sprintf("t=%.2f  stage=%s  events=%d  auto=%s  (space: collide, m: auto)",
		h.t, h.stage, h.events, auto)
}

func (h *Higgs) Metrics() map[string]float64 {
	return map[string]float64{
		"events": float64(h.events),
		"tracks": float64(len(h.tracks)),
	}
}
