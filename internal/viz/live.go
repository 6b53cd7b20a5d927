package viz

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/fabiuuh12/Physics-and-Programming/internal/bridge"
	"github.com/fabiuuh12/Physics-and-Programming/internal/orbit"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
)

const (
	canvasWidth     = 80
	canvasHeight    = 26
	historyCapacity = 600

	arrowStep = 0.08
	wheelStep = 0.65
)

type TickMsg time.Time

// Model is the terminal front end: one scene, the shared orbit camera,
// and an optional bridge controller, drawn on a braille canvas at
// 30 fps.
type Model struct {
	registry *scene.Registry
	names    []string
	index    int

	scn  scene.Scene
	cam  *orbit.Camera
	proj *Projector

	canvas *Canvas
	ctl    *bridge.Controller

	dt      float64
	speed   float64
	paused  bool
	elapsed float64

	metricName string
	history    []float64
}

func NewModel(registry *scene.Registry, name string, dt float64, ctl *bridge.Controller) (Model, error) {
	m := Model{
		registry: registry,
		names:    registry.Names(),
		proj:     NewProjector(),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		ctl:      ctl,
		dt:       dt,
		speed:    1.0,
	}
	for i, n := range m.names {
		if n == name {
			m.index = i
		}
	}
	if err := m.loadScene(name); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) loadScene(name string) error {
	scn, err := m.registry.Get(name)
	if err != nil {
		return err
	}
	m.scn = scn
	m.resetCamera()
	m.elapsed = 0
	m.history = m.history[:0]
	m.metricName = headlineMetric(scn)
	return nil
}

func (m *Model) resetCamera() {
	spec := m.scn.Camera()
	m.cam = orbit.NewCamera(spec.Yaw, spec.Pitch, spec.Distance, spec.Limits())
	m.proj.Target = spec.Target
}

// headlineMetric picks the chart channel: energy when present,
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

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
		case " ":
			if tr, ok := m.scn.(scene.Triggerable); ok {
				tr.Trigger()
			} else {
				m.paused = !m.paused
			}
		case "r":
			m.scn.Reset(rand.New(rand.NewSource(time.Now().UnixNano())))
			m.resetCamera()
			m.elapsed = 0
			m.history = m.history[:0]
		case "tab":
			m.index = (m.index + 1) % len(m.names)
			m.loadScene(m.names[m.index])
		case "shift+tab":
			m.index = (m.index + len(m.names) - 1) % len(m.names)
			m.loadScene(m.names[m.index])
		case "m":
			if sw, ok := m.scn.(scene.ModeSwitcher); ok {
				sw.SwitchMode()
			}
		case "[":
			if ds, ok := m.scn.(scene.DensityStepper); ok {
				ds.StepDensity(-1)
			}
		case "]":
			if ds, ok := m.scn.(scene.DensityStepper); ok {
				ds.StepDensity(+1)
			}
		case "left":
			m.cam.Rotate(-arrowStep, 0)
		case "right":
			m.cam.Rotate(arrowStep, 0)
		case "up":
			m.cam.Rotate(0, arrowStep)
		case "down":
			m.cam.Rotate(0, -arrowStep)
		case "+", "=":
			m.cam.Zoom(1, wheelStep)
		case "-", "_":
			m.cam.Zoom(-1, wheelStep)
		case ">":
			m.speed = scene.ClampSpeed(m.speed + scene.SpeedStep)
		case "<":
			m.speed = scene.ClampSpeed(m.speed - scene.SpeedStep)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
	case TickMsg:
		if m.ctl != nil {
			m.ctl.Tick(m.cam, bridge.Hooks{
				SpeedStep: func(dir int) {
					m.speed = scene.ClampSpeed(m.speed + float64(dir)*scene.SpeedStep)
				},
				DensityStep: func(dir int) {
					if ds, ok := m.scn.(scene.DensityStepper); ok {
						ds.StepDensity(dir)
					}
				},
			})
		}
		if !m.paused {
			step := m.dt * m.speed
			m.scn.Step(step)
			m.elapsed += step
			m.recordMetric()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) recordMetric() {
	if m.metricName == "" {
		return
	}
	v, ok := m.scn.Metrics()[m.metricName]
	if !ok {
		return
	}
	m.history = append(m.history, v)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	var list scene.DrawList
	m.scn.Draw(&list)
	m.proj.Render(m.canvas, &list, m.cam)

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.scn.Title())) + "\n")

	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	s.WriteString(statusStyle(!m.paused).Render(status))
	s.WriteString(valueStyle().Render(fmt.Sprintf("  x%.2f", m.speed)) + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4), asciigraph.Width(32), asciigraph.Caption(m.metricName))
		s.WriteString(graphStyle().Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle().Render("Time") + valueStyle().Render(fmt.Sprintf("%.2fs", m.elapsed)) + "\n")
	s.WriteString(labelStyle().Render("Camera") +
		valueStyle().Render(fmt.Sprintf("yaw=%.2f pitch=%.2f d=%.1f", m.cam.Yaw, m.cam.Pitch, m.cam.Distance)) + "\n")

	metrics := m.scn.Metrics()
	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		s.WriteString(labelStyle().Render(k) + valueStyle().Render(fmt.Sprintf("%.4g", metrics[k])) + "\n")
	}

	s.WriteString("\n" + valueStyle().Render(m.scn.HUD()) + "\n")
	if m.ctl != nil {
		s.WriteString(labelStyle().Render("Bridge") + valueStyle().Render(m.ctl.StatusLine()) + "\n")
	}

	s.WriteString(helpStyle().Render(
		"───────────────────────\n" +
			"SP:Trigger/Pause  R:Reset  Tab:Scene\n" +
			"Arrows:Orbit  +/-:Zoom  </>:Speed\n" +
			"[ ]:Density  M:Mode  T:Theme  Q:Quit"))

	side := panelStyle().Render(s.String())
	main := canvasStyle().Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, main, side)
}

// Run starts the interactive terminal session.
func Run(registry *scene.Registry, name string, dt float64, ctl *bridge.Controller) error {
	m, err := NewModel(registry, name, dt, ctl)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
