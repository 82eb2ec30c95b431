package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/control"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/experiment"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/metrics"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/view"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	minCols         = 20
	minRows         = 8
	statsWidth      = 45
	canvasPadX      = 2
	canvasPadY      = 1
	frameRate       = 60
	historyCapacity = 600
)

type TickMsg time.Time

// Model is the terminal front end. It drives an experiment one frame at a
// time and draws the shared view.Frame onto a braille canvas.
type Model struct {
	exp     *experiment.Experiment
	ctrl    *control.Controller
	builder *view.Builder
	energy  *metrics.EnergyDrift
	log     hclog.Logger

	canvas     *Canvas
	cols, rows int

	// pointer is in viewport pixels, the same space the window front end uses.
	pointer    r2.Vec
	hasPointer bool
	lastDrag   r2.Vec

	ticksPerFrame int
	running       bool
	showHelp      bool
	energyHistory []float64
}

func NewModel(exp *experiment.Experiment, log hclog.Logger) Model {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	cfg := exp.Config()

	energy := metrics.NewEnergyDrift(exp.Gravity())
	exp.Setup([]sim.Metric{energy})

	perFrame := cfg.Clock.TickRate / frameRate
	if perFrame < 1 {
		perFrame = 1
	}

	return Model{
		exp:           exp,
		ctrl:          control.New(exp.State(), cfg.Tuning(), log.Named("control")),
		builder:       view.NewBuilder(cfg.View.OrbitColor),
		energy:        energy,
		log:           log,
		canvas:        NewCanvas(defaultCols, defaultRows),
		cols:          defaultCols,
		rows:          defaultRows,
		ticksPerFrame: perFrame,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the program in the alternate screen with full mouse tracking.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "?":
		m.showHelp = !m.showHelp
	// Terminals report presses, not held keys, so each press pans one tick.
	case "w":
		m.ctrl.PanHeld(control.Direction{Up: true})
	case "s":
		m.ctrl.PanHeld(control.Direction{Down: true})
	case "a":
		m.ctrl.PanHeld(control.Direction{Left: true})
	case "d":
		m.ctrl.PanHeld(control.Direction{Right: true})
	case "up":
		m.ctrl.SpeedUp()
	case "down":
		m.ctrl.SlowDown()
	case "+", "=":
		m.ctrl.Zoom(1)
	case "-":
		m.ctrl.Zoom(-1)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos, inside := m.cellToViewport(msg.X, msg.Y)
	m.pointer, m.hasPointer = pos, inside

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.ctrl.Zoom(1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.ctrl.Zoom(-1)
	case msg.Button == tea.MouseButtonMiddle && msg.Action == tea.MouseActionPress:
		m.ctrl.BeginDrag()
		m.lastDrag = pos
	case msg.Action == tea.MouseActionRelease:
		m.ctrl.EndDrag()
	case msg.Action == tea.MouseActionMotion && m.ctrl.Dragging():
		m.ctrl.Drag(r2.Sub(pos, m.lastDrag))
		m.lastDrag = pos
	}
}

func (m *Model) step() {
	for i := 0; i < m.ticksPerFrame; i++ {
		m.exp.Tick()
	}
	m.energyHistory = append(m.energyHistory, m.energy.Current())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	if err := m.exp.Reset(); err != nil {
		m.log.Error("reset failed", "error", err)
		return
	}
	m.ctrl.Rebind(m.exp.State())
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) resize(w, h int) {
	cols := w - statsWidth - 2*canvasPadX - 2
	rows := h - 2*canvasPadY
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.cols, m.rows = cols, rows
	m.canvas = NewCanvas(cols, rows)
}

// scale maps viewport pixels to braille sub-pixels.
func (m *Model) scale() (float64, float64) {
	cam := m.exp.State().Camera
	return float64(m.cols*2) / float64(cam.Width), float64(m.rows*4) / float64(cam.Height)
}

func (m *Model) toCanvas(v r2.Vec) (int, int) {
	sx, sy := m.scale()
	return int(math.Round(v.X * sx)), int(math.Round(v.Y * sy))
}

// cellToViewport maps a terminal cell to the viewport pixel under its centre.
// The second result is false outside the canvas.
func (m *Model) cellToViewport(x, y int) (r2.Vec, bool) {
	cx, cy := x-canvasPadX, y-canvasPadY
	inside := cx >= 0 && cy >= 0 && cx < m.cols && cy < m.rows
	sx, sy := m.scale()
	return r2.Vec{
		X: (float64(cx*2) + 1) / sx,
		Y: (float64(cy*4) + 2) / sy,
	}, inside
}

func (m *Model) frame() view.Frame {
	pointer := r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	if m.hasPointer {
		pointer = m.pointer
	}
	return m.builder.Build(m.exp.State(), pointer)
}

func (m *Model) draw(f view.Frame) {
	m.canvas.Clear()
	sx, sy := m.scale()

	for _, o := range f.Orbits {
		x, y := m.toCanvas(o.Center)
		m.canvas.DrawEllipse(x, y, o.Radius*sx, o.Radius*sy)
	}
	discs := append([]view.Disc{f.Sun}, f.Planets...)
	discs = append(discs, f.Asteroids...)
	for _, d := range discs {
		x, y := m.toCanvas(d.Center)
		m.canvas.FillEllipse(x, y, float64(d.Radius)*sx, float64(d.Radius)*sy)
	}
	if f.Tooltip != nil {
		if d, ok := hovered(f); ok {
			x0, y0 := m.toCanvas(d.Center)
			x1, y1 := m.toCanvas(f.Tooltip.Anchor)
			m.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
}

func hovered(f view.Frame) (view.Disc, bool) {
	if f.Tooltip == nil {
		return view.Disc{}, false
	}
	if f.Sun.Name == f.Tooltip.Target {
		return f.Sun, true
	}
	for _, p := range f.Planets {
		if p.Name == f.Tooltip.Target {
			return p, true
		}
	}
	return view.Disc{}, false
}

func (m Model) View() string {
	f := m.frame()
	m.draw(f)
	canvasView := canvasStyle.Render(m.canvas.String())

	st := m.exp.State()
	var s strings.Builder
	s.WriteString(headerStyle.Render("SOLAR SYSTEM") + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Ticks", fmt.Sprintf("%d", st.Clock.Ticks))
	row("Elapsed", fmt.Sprintf("%.3e", st.Clock.Elapsed))
	row("TimeStep", fmt.Sprintf("%.2e", st.Clock.TimeStep))
	row("Zoom", fmt.Sprintf("%.3f", st.Camera.Zoom))
	row("Bodies", fmt.Sprintf("%d", st.Population.Count()))
	row("Drift", fmt.Sprintf("%.2e", m.energy.Value()))

	if d, ok := hovered(f); ok {
		s.WriteString("\n" + swatch(d.Color.Hex()) + " " + tooltipStyle.Render(strings.Join(f.Tooltip.Lines, "\n")) + "\n")
	}

	s.WriteString("\n" + separator(statsWidth-6) + "\n")
	if m.showHelp {
		s.WriteString(helpStyle.Render(strings.Join(f.Overlay, "\n")+"\nSpace: Pause  R: Reset  Q: Quit") + "\n")
	} else {
		s.WriteString(helpStyle.Render("?: Controls  Q: Quit") + "\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
