package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/robosim-dev/swervesim/internal/arena"
	"github.com/robosim-dev/swervesim/internal/drivetrain"
	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/scenario"
)

const (
	canvasWidth  = 60
	canvasHeight = 24
	fieldView    = 6.0 // meters across the canvas
	trailCap     = 400
	speedHistory = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	slipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Build constructs a fresh arena plus drivetrain pair; the live view calls
// it again on reset.
type Build func() (*arena.Arena, *drivetrain.Drivetrain, error)

// Model runs a scenario against a drivetrain and renders a top-down field
// view of the chassis, its modules, and the path driven so far.
type Model struct {
	build    Build
	arena    *arena.Arena
	drive    *drivetrain.Drivetrain
	ctrl     *scenario.DriveController
	scenario scenario.Scenario

	t       float64
	running bool
	err     error

	canvas *Canvas
	trail  []geom.Vector2
	speeds []float64
}

// NewModel initializes the live view. The initial build error, if any, is
// surfaced in the view rather than returned.
func NewModel(build Build, sc scenario.Scenario) Model {
	m := Model{
		build:    build,
		scenario: sc,
		running:  true,
		canvas:   NewCanvas(canvasWidth, canvasHeight, fieldView),
		trail:    make([]geom.Vector2, 0, trailCap),
		speeds:   make([]float64, 0, speedHistory),
	}
	m.reset()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/50, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/50, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) reset() {
	a, d, err := m.build()
	if err != nil {
		m.err = err
		return
	}
	m.arena = a
	m.drive = d
	m.ctrl = scenario.NewDriveController(d, 12.0)
	m.t = 0
	m.err = nil
	m.trail = m.trail[:0]
	m.speeds = m.speeds[:0]
}

// step advances the simulation by one control period.
func (m *Model) step() {
	period := m.arena.Timing().Period
	m.ctrl.Drive(m.drive, m.scenario.Speeds(m.t), period)
	m.arena.Step()
	m.t += period

	pose := m.drive.Pose()
	m.trail = append(m.trail, pose.Position)
	if len(m.trail) > trailCap {
		m.trail = m.trail[1:]
	}
	m.speeds = append(m.speeds, m.drive.ChassisSpeedsFieldRelative().Translation().Norm())
	if len(m.speeds) > speedHistory {
		m.speeds = m.speeds[1:]
	}
}

// draw renders the chassis footprint, per-module wheel headings, and the
// driven trail onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.drive == nil {
		return
	}

	pose := m.drive.Pose()
	m.canvas.Center(pose.Position)

	for _, p := range m.trail {
		m.canvas.SetField(p)
	}

	modules := m.drive.Modules()
	corners := make([]geom.Vector2, len(modules))
	for i, mod := range modules {
		corners[i] = mod.Config().Position.RotateBy(pose.Heading).Add(pose.Position)
	}
	// Corner order is FL, FR, BL, BR; swap the back pair to walk the
	// perimeter.
	if len(corners) == 4 {
		corners[2], corners[3] = corners[3], corners[2]
	}
	m.canvas.DrawFieldPolygon(corners...)

	// Wheel heading whiskers, drawn outward from each module.
	for _, mod := range modules {
		center := mod.Config().Position.RotateBy(pose.Heading).Add(pose.Position)
		facing := pose.Heading.Radians() + mod.SteerAbsoluteAngle().Radians()
		tip := center.Add(geom.FromPolar(0.25, facing))
		m.canvas.DrawFieldLine(center, tip)
	}

	// Nose marker so the robot front reads at a glance.
	nose := pose.Position.Add(geom.FromPolar(0.3, pose.Heading.Radians()))
	m.canvas.DrawFieldLine(pose.Position, nose)
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario.Name())) + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed (m/s)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	pose := m.drive.Pose()
	actual := m.drive.ChassisSpeedsRobotRelative()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f) m", pose.Position.X, pose.Position.Y)) + "\n")
	s.WriteString(labelStyle.Render("Heading") + valueStyle.Render(fmt.Sprintf("%.1f rad", pose.Heading.Wrapped().Radians())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2f m/s", actual.Translation().Norm())) + "\n")
	s.WriteString(labelStyle.Render("Omega") + valueStyle.Render(fmt.Sprintf("%.2f rad/s", actual.Omega)) + "\n")
	s.WriteString(labelStyle.Render("Gyro") + valueStyle.Render(fmt.Sprintf("%.2f rad", m.drive.Gyro().Heading().Wrapped().Radians())) + "\n")

	slipping := 0
	for _, mod := range m.drive.Modules() {
		if mod.Slipping() {
			slipping++
		}
	}
	if slipping > 0 {
		s.WriteString(labelStyle.Render("Traction") + slipStyle.Render(fmt.Sprintf("%d module(s) slipping", slipping)) + "\n")
	} else {
		s.WriteString(labelStyle.Render("Traction") + valueStyle.Render("gripping") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
