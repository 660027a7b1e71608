package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/chili-epfl/states-of-matter/internal/engine"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	stepsPerTick    = 4
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the interactive view: one simulation model, a braille
// canvas for the container, and scrolling temperature and pressure
// histories.
type Model struct {
	sim    *engine.SimulationModel
	dt     float64
	canvas *Canvas

	running  bool
	showHelp bool
	heat     float64

	temperatureHistory []float64
	pressureHistory    []float64
}

func NewModel(sim *engine.SimulationModel, dt float64) Model {
	return Model{
		sim:                sim,
		dt:                 dt,
		canvas:             NewCanvas(canvasWidth, canvasHeight),
		running:            true,
		temperatureHistory: make([]float64, 0, historyCapacity),
		pressureHistory:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "r":
			m.sim.Reset()
			m.temperatureHistory = m.temperatureHistory[:0]
			m.pressureHistory = m.pressureHistory[:0]
		case "h", "up":
			m.adjustHeat(0.1)
		case "c", "down":
			m.adjustHeat(-0.1)
		case "0":
			m.heat = 0
			m.sim.SetHeatCoolAmount(0)
		case "s":
			m.sim.SetPhase(engine.PhaseSolid)
		case "l":
			m.sim.SetPhase(engine.PhaseLiquid)
		case "g":
			m.sim.SetPhase(engine.PhaseGas)
		case "n":
			m.cycleSubstance()
		case "[":
			m.sim.SetTargetContainerHeight(m.sim.TargetContainerHeight() - 2)
		case "]":
			m.sim.SetTargetContainerHeight(m.sim.TargetContainerHeight() + 2)
		case "L":
			m.sim.ReturnLid()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.sim.Step(m.dt)

	m.temperatureHistory = append(m.temperatureHistory, m.sim.Temperature())
	if len(m.temperatureHistory) > historyCapacity {
		m.temperatureHistory = m.temperatureHistory[1:]
	}
	m.pressureHistory = append(m.pressureHistory, m.sim.Pressure())
	if len(m.pressureHistory) > historyCapacity {
		m.pressureHistory = m.pressureHistory[1:]
	}
}

func (m *Model) adjustHeat(delta float64) {
	amount := m.heat + delta
	if amount > 1 {
		amount = 1
	}
	if amount < -1 {
		amount = -1
	}
	m.heat = amount
	m.sim.SetHeatCoolAmount(amount)
}

func (m *Model) cycleSubstance() {
	current := m.sim.Substance()
	for i, s := range engine.Substances {
		if s == current {
			next := engine.Substances[(i+1)%len(engine.Substances)]
			m.sim.SetSubstance(next)
			m.temperatureHistory = m.temperatureHistory[:0]
			m.pressureHistory = m.pressureHistory[:0]
			return
		}
	}
}

// draw renders the container outline and every atom onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	cw := float64(canvasWidth * 2)
	ch := float64(canvasHeight * 4)
	// The wall box is square; an exploded lid drifting above it clips.
	worldW := m.sim.ContainerWidth()
	scaleX := (cw - 4) / worldW
	scaleY := (ch - 4) / worldW

	toScreen := func(x, y float64) (int, int) {
		return 2 + int(x*scaleX), int(ch) - 2 - int(y*scaleY)
	}

	// Container walls and lid.
	x0, y0 := toScreen(0, 0)
	x1, yLid := toScreen(worldW, m.sim.ContainerHeight())
	if m.sim.IsExploded() {
		// Walls only; the lid is gone.
		c := m.canvas
		c.DrawLine(x0, y0, x1, y0)
		c.DrawLine(x0, y0, x0, yLid)
		c.DrawLine(x1, y0, x1, yLid)
	} else {
		m.canvas.DrawRect(x0, yLid, x1, y0)
	}

	for _, p := range m.sim.Particles() {
		px, py := toScreen(p.X, p.Y)
		r := int(p.Radius * scaleX / 2)
		m.canvas.FillCircle(px, py, r)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sim.Substance().String())) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.sim.IsExploded() {
		status = alertStyle.Render("EXPLODED - press L to return the lid")
	}
	s.WriteString(status + "\n\n")

	if len(m.temperatureHistory) > 1 {
		chart := asciigraph.Plot(m.temperatureHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Temperature"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.pressureHistory) > 1 {
		chart := asciigraph.Plot(m.pressureHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Pressure"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(m.sim.Phase().String()) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.3f", m.sim.Temperature())) + "\n")
	s.WriteString(labelStyle.Render("Set point") + valueStyle.Render(fmt.Sprintf("%.3f", m.sim.TemperatureSetPoint())) + "\n")
	s.WriteString(labelStyle.Render("Pressure") + valueStyle.Render(fmt.Sprintf("%.3f", m.sim.Pressure())) + "\n")
	s.WriteString(labelStyle.Render("Heat/cool") + valueStyle.Render(fmt.Sprintf("%+.1f", m.heat)) + "\n")
	s.WriteString(labelStyle.Render("Molecules") + valueStyle.Render(fmt.Sprintf("%d", m.sim.NumberOfMolecules())) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.sim.Elapsed())) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause .:Step R:Reset Q:Quit\nH/C:Heat-Cool 0:Off S/L/G:Phase\nN:Substance [ ]:Lid ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  .        - Single step while paused ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  H / Up   - More heating (+0.1)      ║
║  C / Down - More cooling (-0.1)      ║
║  0        - Heating off              ║
║  S / L / G - Seed solid/liquid/gas   ║
║  N        - Next substance           ║
║  [ / ]    - Lower / raise the lid    ║
║  Shift+L  - Return an exploded lid   ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
