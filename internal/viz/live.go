package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/submoonsim/internal/config"
	"github.com/san-kum/submoonsim/internal/dynamo"
	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/sim"
	"github.com/san-kum/submoonsim/internal/telemetry"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 300
	orbitSegments   = 72
	gifPath         = "submoonsim.gif"
	svgPath         = "submoonsim.svg"
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Focus is the body the camera is centered on.
type Focus int

const (
	FocusStar Focus = iota
	FocusPlanet
	FocusMoon
	numFocus
)

func (f Focus) String() string {
	switch f {
	case FocusPlanet:
		return "planet"
	case FocusMoon:
		return "moon"
	default:
		return "star"
	}
}

// Model is the live view of one driver. The driver and engine are shared,
// so copies of Model made by Bubble Tea all see the same simulation.
type Model struct {
	driver    *sim.Driver
	collector *telemetry.Collector
	preset    string

	width, height int
	canvas        *Canvas
	camera        *Camera
	recorder      *Recorder
	theme         int

	initial      physics.Params
	initialSpeed float64
	paramKeys    []string
	selected     int

	showOrbits bool
	showHelp   bool
	focus      Focus
	frame      int
	history    []float64
	status     string
	lastErr    error
}

// NewModel builds a live view. collector may be nil.
func NewModel(d *sim.Driver, preset string, collector *telemetry.Collector) Model {
	m := Model{
		driver:       d,
		collector:    collector,
		preset:       preset,
		width:        width,
		height:       height,
		canvas:       NewCanvas(width, height),
		camera:       NewCamera(),
		recorder:     NewRecorder(Themes[0]),
		initial:      d.Engine().Params(),
		initialSpeed: d.Speed(),
		paramKeys:    config.ParamKeys(),
		showOrbits:   true,
		history:      make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the simulation on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.driver.Toggle()
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "+", "=":
			m.adjustSpeed(1)
		case "-", "_":
			m.adjustSpeed(-1)
		case "o":
			m.showOrbits = !m.showOrbits
		case "f":
			m.focus = (m.focus + 1) % numFocus
		case "v":
			m.camera.ToggleView()
		case "z":
			m.camera.ZoomIn()
		case "Z":
			m.camera.ZoomOut()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "g":
			m.toggleRecording()
		case "s":
			m.saveSnapshot()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.draw()
	case TickMsg:
		m.step()
		m.draw()
		m.recorder.Capture(m.canvas)
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	pos := m.driver.Frame()
	if !m.driver.Playing() {
		return
	}
	m.frame++
	if m.collector != nil {
		m.collector.OnTick(m.frame, m.driver.Engine().Snapshot())
	}
	m.history = append(m.history, pos.Submoon.Norm())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam nudges the selected parameter by whole bound steps and
// applies it without resetting the phases.
func (m *Model) adjustParam(steps int) {
	if len(m.paramKeys) == 0 {
		return
	}
	eng := m.driver.Engine()
	key := m.paramKeys[m.selected]
	p := eng.Params()
	v, err := p.Get(key)
	if err != nil {
		m.lastErr = err
		return
	}
	next, err := p.With(key, config.Nudge(key, v, steps))
	if err != nil {
		m.lastErr = err
		return
	}
	if _, err := eng.Update(next); err != nil {
		m.lastErr = err
		if m.collector != nil {
			m.collector.RecordConfigureError(err)
		}
		return
	}
	m.lastErr = nil
}

func (m *Model) adjustSpeed(steps int) {
	speed := config.Nudge(config.SpeedKey, m.driver.Speed(), steps)
	if err := m.driver.SetSpeed(speed); err != nil {
		m.lastErr = err
		return
	}
	m.lastErr = nil
}

// reset restores the starting parameters, speed and phases.
func (m *Model) reset() {
	if _, err := m.driver.Engine().Configure(m.initial); err != nil {
		m.lastErr = err
		return
	}
	_ = m.driver.SetSpeed(m.initialSpeed)
	m.history = m.history[:0]
	m.frame = 0
	m.lastErr = nil
	m.status = ""
}

func (m *Model) toggleRecording() {
	if !m.recorder.Active() {
		m.recorder = NewRecorder(Themes[m.theme])
		m.recorder.Start()
		m.status = "recording"
		return
	}
	n := m.recorder.Frames()
	if err := m.recorder.Save(gifPath); err != nil {
		m.lastErr = err
		m.status = ""
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", n, gifPath)
}

func (m *Model) saveSnapshot() {
	if err := writeSVG(svgPath, m.canvas.SVG(4, Themes[m.theme])); err != nil {
		m.lastErr = err
		return
	}
	m.status = "saved " + svgPath
}

func (m *Model) resize(w, h int) {
	cw := w - 56
	if cw < 20 {
		cw = 20
	}
	ch := h - 4
	if ch < 10 {
		ch = 10
	}
	if cw == m.width && ch == m.height {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// frameCamera centers the camera on the focused body and sizes the view
// to the orbit around it.
func (m *Model) frameCamera(s dynamo.Snapshot) {
	switch m.focus {
	case FocusPlanet:
		m.camera.Center = s.Positions.Planet
		m.camera.Extent = 1.25*s.Derived.MoonOrbitDistance + s.Derived.SubmoonOrbitDistance
	case FocusMoon:
		m.camera.Center = s.Positions.Moon
		m.camera.Extent = 1.5 * s.Derived.SubmoonOrbitDistance
	default:
		m.camera.Center = dynamo.Vec3{}
		m.camera.Extent = 1.1*s.Params.PlanetOrbitRadius + s.Derived.MoonOrbitDistance
	}
}

func (m *Model) draw() {
	s := m.driver.Engine().Snapshot()
	m.frameCamera(s)
	m.canvas.Clear()
	if !s.Configured {
		return
	}

	if m.showOrbits {
		m.canvas.SetPen(InkOrbit)
		m.drawOrbit(dynamo.Vec3{}, s.Params.PlanetOrbitRadius)
		m.drawOrbit(s.Positions.Planet, s.Derived.MoonOrbitDistance)
		m.drawOrbit(s.Positions.Moon, s.Derived.SubmoonOrbitDistance)
	}

	bodies := []struct {
		pos  dynamo.Vec3
		ink  Ink
		size int
		at   Focus
	}{
		{dynamo.Vec3{}, InkStar, 3, FocusStar},
		{s.Positions.Planet, InkPlanet, 2, FocusPlanet},
		{s.Positions.Moon, InkMoon, 1, FocusMoon},
		{s.Positions.Submoon, InkSubmoon, 0, -1},
	}
	for _, b := range bodies {
		size := b.size
		if b.at == m.focus {
			size++
		}
		x, y, ok := m.camera.Project(b.pos, m.canvas.SubWidth(), m.canvas.SubHeight())
		if !ok {
			continue
		}
		m.canvas.SetPen(b.ink)
		m.canvas.Disc(x, y, size)
	}
}

// drawOrbit traces a circle of radius r around center in the orbital plane.
func (m *Model) drawOrbit(center dynamo.Vec3, r float64) {
	if !(r > 0) {
		return
	}
	sw, sh := m.canvas.SubWidth(), m.canvas.SubHeight()
	var px, py int
	var prevOK bool
	for i := 0; i <= orbitSegments; i++ {
		theta := 2 * math.Pi * float64(i) / orbitSegments
		p := center.Add(dynamo.Vec3{X: r * math.Cos(theta), Z: r * math.Sin(theta)})
		x, y, ok := m.camera.Project(p, sw, sh)
		if ok && prevOK {
			m.canvas.DrawLine(px, py, x, y)
		} else if ok {
			m.canvas.Set(x, y)
		}
		px, py, prevOK = x, y, ok
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	s := m.driver.Engine().Snapshot()
	theme := Themes[m.theme]
	canvasView := canvasStyle.Render(m.canvas.Render(theme.Styles()))

	var b strings.Builder
	b.WriteString(headerStyle.Render("SUBMOON · "+strings.ToUpper(m.preset)) + "\n")

	status := StatusRunning.Render("PLAYING")
	if !m.driver.Playing() {
		status = StatusPaused.Render("PAUSED")
	}
	fmt.Fprintf(&b, "%s  ×%.1f  %s · %s", status, m.driver.Speed(), m.focus, m.camera.View)
	if m.recorder.Active() {
		b.WriteString("  " + StatusRecording.Render("● REC"))
	}
	b.WriteString("\n\n")

	stats := s.Stats
	tier, ok := tierStyles[stats.Tier]
	if !ok {
		tier = valueStyle
	}
	b.WriteString(labelStyle.Render("Score") + valueStyle.Render(fmt.Sprintf("%3d ", stats.Score)) + ProgressBar(float64(stats.Score)/100, 20) + "\n")
	b.WriteString(labelStyle.Render("Stability") + tier.Render(stats.Tier.String()) + "\n")
	b.WriteString(row("Lifetime", stats.Lifetime.String()))
	b.WriteString(row("Tidal", stats.Tidal.String()))

	b.WriteString("\n" + sectionStyle.Render("DERIVED") + "\n")
	d := s.Derived
	b.WriteString(row("Hill planet", fmt.Sprintf("%.3f", d.HillRadiusOfPlanet)))
	b.WriteString(row("Hill moon", fmt.Sprintf("%.3f", d.HillRadiusOfMoon)))
	b.WriteString(row("Roche limit", fmt.Sprintf("%.3f", d.RocheLimit)))
	b.WriteString(row("Moon orbit", fmt.Sprintf("%.3f", d.MoonOrbitDistance)))
	b.WriteString(row("Submoon orbit", fmt.Sprintf("%.4f", d.SubmoonOrbitDistance)))
	b.WriteString(row("Planet/moon", fmt.Sprintf("%.1f", stats.PlanetToMoonMassRatio)))
	b.WriteString(row("Moon/submoon", fmt.Sprintf("%.1f", stats.MoonToSubmoonMassRatio)))
	b.WriteString(row("Orbit ratio", fmt.Sprintf("%.3f", stats.OrbitRatio)))

	for _, c := range stats.CriticalParameters {
		b.WriteString(warnStyle.Render("! "+c) + "\n")
	}
	if d.MoonWithinRoche {
		b.WriteString(warnStyle.Render("! Moon inside the planet's Roche limit") + "\n")
	}
	for i, frozen := range s.Speeds.Frozen {
		if frozen {
			b.WriteString(warnStyle.Render(fmt.Sprintf("! %s orbit frozen", physics.Level(i))) + "\n")
		}
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Submoon–star distance"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	b.WriteString("\n" + sectionStyle.Render("PARAMETERS") + "\n")
	for i, k := range m.paramKeys {
		v, _ := s.Params.Get(k)
		bound := config.Bounds[k]
		ratio := 0.0
		if bound.Max > bound.Min {
			ratio = math.Max(0, math.Min(1, (v-bound.Min)/(bound.Max-bound.Min)))
		}
		const barWidth = 10
		filled := int(ratio * barWidth)
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-20s %s %.3g", k, bar, v)
		if i == m.selected {
			b.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.lastErr != nil {
		b.WriteString("\n" + errorStyle.Render(m.lastErr.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}

	b.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help\nTab/↑↓:Tune +/-:Speed O:Orbits F:Focus"))
	statsView := statsStyle.Render(b.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  R        - Reset parameters/phases  ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  +/-      - Faster/slower            ║
║  O        - Toggle orbit lines       ║
║  F        - Focus star/planet/moon   ║
║  V        - Top-down/inclined view   ║
║  z/Z      - Zoom in/out              ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  S        - Save SVG snapshot        ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
