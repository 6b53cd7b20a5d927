// Package gui is the raylib front end: a menu over the scene catalog
// and a run loop that steps the selected scene, orbits the shared
// camera, and draws the scene's DrawList in 3D.
package gui

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/fabiuuh12/Physics-and-Programming/internal/audio"
	"github.com/fabiuuh12/Physics-and-Programming/internal/bridge"
	"github.com/fabiuuh12/Physics-and-Programming/internal/orbit"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
)

// Theme colors (monochrome, accents only where physics needs them).
var (
	ColBg      = rl.NewColor(10, 10, 12, 255)
	ColAccent  = rl.NewColor(180, 180, 190, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 150, 255)
	ColTextDim = rl.NewColor(60, 60, 70, 255)
	ColGrid    = rl.NewColor(30, 30, 34, 255)
	ColLive    = rl.NewColor(85, 229, 138, 255)
)

const (
	wheelZoomStep = 0.65
	camLerpRate   = 5.0

	telemetryCapacity = 240
)

// Options configure a GUI session.
type Options struct {
	Width  int
	Height int
	FPS    int
	Dt     float64
	Sound  bool

	// Bridge is optional; nil runs keyboard/mouse only.
	Bridge *bridge.Controller
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 800, FPS: 60, Dt: 1.0 / 60.0}
}

type App struct {
	registry *scene.Registry
	names    []string
	selected int

	scn       scene.Scene
	sceneName string
	cam       *orbit.Camera
	target    rl.Vector3

	ctl   *bridge.Controller
	synth *audio.Synth

	dt      float64
	speed   float64
	elapsed float64
	running bool
	inMenu  bool

	width, height int32
	font          rl.Font

	metricName string
	telemetry  []float64

	// rlCam chases the orbit camera so manual and bridge input both
	// land smoothly.
	rlCam rl.Camera3D
}

func initWindow(width, height, fps int) {
	rl.InitWindow(int32(width), int32(height), "physviz")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds an App over the registry. With startScene empty the
// app opens on the menu; otherwise it loads that scene immediately.
func NewApp(registry *scene.Registry, startScene string, opts Options) (*App, error) {
	a := &App{
		registry: registry,
		names:    registry.Names(),
		ctl:      opts.Bridge,
		dt:       opts.Dt,
		speed:    1.0,
		inMenu:   startScene == "",
		width:    int32(opts.Width),
		height:   int32(opts.Height),
		font:     loadFont(),
	}

	if opts.Sound {
		a.synth = audio.NewSynth()
		if err := a.synth.Start(); err != nil {
			// Run silent: the synth stays inactive and the HUD says so.
			log.Printf("audio unavailable: %v", err)
			a.synth.Stop()
		}
	}

	if startScene != "" {
		if err := a.loadScene(startScene); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// RunInteractive opens the window on the scene menu and blocks until
// the user quits.
func RunInteractive(registry *scene.Registry, opts Options) error {
	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()
	app, err := NewApp(registry, "", opts)
	if err != nil {
		return err
	}
	defer app.shutdown()
	app.RunLoop()
	return nil
}

// Run opens the window directly on one scene.
func Run(registry *scene.Registry, name string, opts Options) error {
	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()
	app, err := NewApp(registry, name, opts)
	if err != nil {
		return err
	}
	defer app.shutdown()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) shutdown() {
	if a.synth != nil {
		a.synth.Stop()
	}
}

func (a *App) loadScene(name string) error {
	scn, err := a.registry.Get(name)
	if err != nil {
		return err
	}
	a.scn = scn
	a.sceneName = name
	a.elapsed = 0
	a.speed = 1.0
	a.running = true
	a.inMenu = false
	a.telemetry = a.telemetry[:0]
	a.metricName = headlineMetric(scn)

	spec := scn.Camera()
	a.cam = orbit.NewCamera(spec.Yaw, spec.Pitch, spec.Distance, spec.Limits())
	a.target = toVector3(spec.Target)

	pos := toVector3(a.cam.Position(spec.Target))
	a.rlCam = rl.NewCamera3D(pos, a.target, rl.NewVector3(0, 1, 0), 45.0, rl.CameraPerspective)

	for i, n := range a.names {
		if n == name {
			a.selected = i
		}
	}
	return nil
}

// headlineMetric picks the telemetry channel: energy when present,
// otherwise the first name in sorted order.
func headlineMetric(s scene.Scene) string {
	metrics := s.Metrics()
	if _, ok := metrics["energy"]; ok {
		return "energy"
	}
	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Update advances one frame. It returns false when the user quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	if a.inMenu {
		a.updateMenu()
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.inMenu = true
		a.running = false
		return true
	}

	a.updateCamera()
	a.updateKeys()

	if a.ctl != nil {
		a.ctl.Tick(a.cam, bridge.Hooks{
			SpeedStep: func(dir int) {
				a.speed = scene.ClampSpeed(a.speed + float64(dir)*scene.SpeedStep)
			},
			DensityStep: func(dir int) {
				if ds, ok := a.scn.(scene.DensityStepper); ok {
					ds.StepDensity(dir)
				}
			},
		})
	}

	if a.running {
		step := a.dt * a.speed
		a.scn.Step(step)
		a.elapsed += step
		a.recordTelemetry()
	}

	if a.synth != nil && a.synth.Active() {
		if son, ok := a.scn.(scene.Sonifier); ok {
			a.synth.SetFrequency(son.Frequency() * a.speed)
		}
	}

	// The displayed camera chases the orbit state so bridge jumps and
	// key taps land as glides.
	lerp := float32(camLerpRate * a.dt)
	if lerp > 1 {
		lerp = 1
	}
	want := toVector3(a.cam.Position(fromVector3(a.target)))
	a.rlCam.Position = rl.Vector3Lerp(a.rlCam.Position, want, lerp)
	a.rlCam.Target = a.target

	return true
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.selected--
	}
	if a.selected >= len(a.names) {
		a.selected = 0
	}
	if a.selected < 0 {
		a.selected = len(a.names) - 1
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		a.loadScene(a.names[a.selected])
	}
}

func (a *App) updateCamera() {
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		a.cam.Drag(float64(delta.X), float64(delta.Y))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.Zoom(float64(wheel), wheelZoomStep)
	}

	arrow := 1.2 * a.dt
	if rl.IsKeyDown(rl.KeyLeft) {
		a.cam.Rotate(-arrow, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.cam.Rotate(arrow, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.cam.Rotate(0, arrow)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.cam.Rotate(0, -arrow)
	}
}

func (a *App) updateKeys() {
	if rl.IsKeyPressed(rl.KeySpace) {
		if tr, ok := a.scn.(scene.Triggerable); ok {
			tr.Trigger()
		} else {
			a.running = !a.running
		}
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.scn.Reset(rand.New(rand.NewSource(time.Now().UnixNano())))
		a.elapsed = 0
		a.telemetry = a.telemetry[:0]
		spec := a.scn.Camera()
		a.cam = orbit.NewCamera(spec.Yaw, spec.Pitch, spec.Distance, spec.Limits())
		a.target = toVector3(spec.Target)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.selected = (a.selected + 1) % len(a.names)
		a.loadScene(a.names[a.selected])
	}
	if rl.IsKeyPressed(rl.KeyM) {
		if sw, ok := a.scn.(scene.ModeSwitcher); ok {
			sw.SwitchMode()
		}
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		if ds, ok := a.scn.(scene.DensityStepper); ok {
			ds.StepDensity(-1)
		}
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		if ds, ok := a.scn.(scene.DensityStepper); ok {
			ds.StepDensity(+1)
		}
	}
	if rl.IsKeyPressed(rl.KeyComma) || rl.IsKeyPressed(rl.KeyMinus) {
		a.speed = scene.ClampSpeed(a.speed - scene.SpeedStep)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) || rl.IsKeyPressed(rl.KeyEqual) {
		a.speed = scene.ClampSpeed(a.speed + scene.SpeedStep)
	}
}

func (a *App) recordTelemetry() {
	if a.metricName == "" {
		return
	}
	v, ok := a.scn.Metrics()[a.metricName]
	if !ok {
		return
	}
	a.telemetry = append(a.telemetry, v)
	if len(a.telemetry) > telemetryCapacity {
		a.telemetry = a.telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.inMenu {
		a.drawMenu()
	} else {
		a.drawScene()
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawMenu() {
	a.drawText("physviz", 50, 50, 40, ColSelect)
	a.drawText("Select Visualization", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.names {
		title := a.registry.Title(name)
		if i == a.selected {
			a.drawText(fmt.Sprintf("> %-16s %s", name, title), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %-16s %s", name, title), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT",
		int(a.width)-430, int(a.height)-40, 14, ColTextDim)
}

func (a *App) drawHUD() {
	a.drawText("physviz", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.scn.Title()), 140, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, int(a.width)-130, 30, 16, col)
	a.drawText(fmt.Sprintf("x%.2f", a.speed), int(a.width)-130, 52, 16, ColText)

	a.drawText(a.scn.HUD(), 30, 60, 16, ColAccent)

	a.drawTelemetry()

	if a.ctl != nil {
		line := a.ctl.StatusLine()
		col := ColTextDim
		if strings.HasPrefix(line, "bridge: live") {
			col = ColLive
		}
		a.drawText(line, 30, int(a.height)-70, 14, col)
	}
	if a.synth != nil {
		if a.synth.Active() {
			a.drawText("SOUND [ON]", 30, int(a.height)-92, 14, ColAccent)
		} else {
			a.drawText("SOUND [UNAVAILABLE]", 30, int(a.height)-92, 14, ColTextDim)
		}
	}

	a.drawText("[SPACE] TRIGGER/PAUSE  [R] RESET  [TAB] SCENE  [M] MODE  [</>] SPEED  [ESC] MENU  [Q] QUIT",
		30, int(a.height)-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), int(a.width)-110, int(a.height)-40, 14, ColTextDim)
}

func (a *App) drawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}

	rectX, rectY := 30, int(a.height)-180
	width, height := 360, 60

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("%s: %.4g", a.metricName, a.telemetry[len(a.telemetry)-1]),
		rectX, rectY+height+8, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
