package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	if err := newRootCmd(loadConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}

const (
	tempoStep      = 0.25
	tempoFrequency = 6.0
	tempoDamping   = 1.0
	snapshotPixels = 800
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
)

type tickMsg time.Time

type model struct {
	width          int
	height         int
	animator       *Animator
	canvas         *BrailleCanvas
	config         *Config
	logger         *slog.Logger
	mode           Mode
	resume         Mode
	selected       LineFamily
	tempo          float64
	tempoVelocity  float64
	tempoTarget    float64
	spring         harmonica.Spring
	errorMessage   string
	successMessage string
}

func initialModel(config *Config, logger *slog.Logger) (model, error) {
	if config.FPS < 1 {
		return model{}, fmt.Errorf("fps must be at least 1, got %d", config.FPS)
	}
	a := NewAnimator(config.Params, logger)
	if err := a.Configure(config.Side); err != nil {
		return model{}, err
	}
	return model{
		animator:    a,
		config:      config,
		logger:      logger,
		mode:        ModeRunning,
		tempo:       1,
		tempoTarget: 1,
		spring:      harmonica.NewSpring(harmonica.FPS(config.FPS), tempoFrequency, tempoDamping),
	}, nil
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.config.FPS), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas = NewBrailleCanvas(m.width, m.height-1, m.animator.Side())
		m.redraw()
		return m, nil

	case tickMsg:
		if m.mode == ModeRunning {
			m.step()
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	if m.mode == ModeHelp {
		m.mode = m.resume
		return m, nil
	}
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "?":
		m.resume = m.mode
		m.mode = ModeHelp
	case " ":
		if m.mode == ModePaused {
			m.mode = ModeRunning
		} else {
			m.mode = ModePaused
		}
	case "n":
		if m.mode == ModePaused {
			m.animator.Advance()
			m.redraw()
		}
	case "r":
		if err := m.animator.Configure(m.animator.Side()); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.tempo, m.tempoVelocity, m.tempoTarget = 1, 0, 1
		m.redraw()
		m.successMessage = "Reset"
	case "+", "=":
		m.tempoTarget = clampFloat(m.tempoTarget+tempoStep, minTempo, maxTempo)
	case "-", "_":
		m.tempoTarget = clampFloat(m.tempoTarget-tempoStep, minTempo, maxTempo)
	case "tab":
		m.selected = (m.selected + 1) % numFamilies
	case "shift+tab":
		m.selected = (m.selected + numFamilies - 1) % numFamilies
	case "s":
		m.saveSnapshot()
	case "y":
		if err := copyFrameSVG(m.animator); err != nil {
			m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		} else {
			m.successMessage = "Copied frame as SVG"
		}
	default:
		return m.handleNavigation(key, m.getNudgeSpeed(key))
	}
	return m, nil
}

// step advances one frame at the current (eased) tempo and redraws.
func (m *model) step() {
	m.tempo, m.tempoVelocity = m.spring.Update(m.tempo, m.tempoVelocity, m.tempoTarget)
	if m.tempo < 0 {
		m.tempo = 0
	}
	m.animator.AdvanceScaled(m.tempo)
	m.redraw()
}

func (m *model) redraw() {
	if m.canvas == nil {
		return
	}
	drawStill(m.animator, m.canvas)
}

// snapshotName names a snapshot after its frame when `sol11 frame -f N`
// would reproduce it, and after the wall clock otherwise.
func snapshotName(a *Animator, now time.Time) (name, caption string) {
	if a.OnSchedule() {
		return fmt.Sprintf("sol11-%05d.png", a.Frame()), fmt.Sprintf("Wall Drawing #11  frame %d", a.Frame())
	}
	return "sol11-" + now.Format("20060102-150405") + ".png", "Wall Drawing #11"
}

func (m *model) saveSnapshot() {
	name, caption := snapshotName(m.animator, time.Now())
	path := m.config.GetSavePath(name)
	if err := ExportPNG(path, m.animator, snapshotPixels, caption); err != nil {
		m.logger.Error("snapshot failed", "path", path, "err", err)
		m.errorMessage = fmt.Sprintf("Save failed: %v", err)
		return
	}
	m.logger.Info("snapshot saved", "path", path)
	m.successMessage = "Saved " + path
}

func (m model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}
	if m.canvas == nil {
		return ""
	}
	return m.canvas.String() + "\n" + m.statusLine()
}

func (m model) statusLine() string {
	a := m.animator
	parts := []string{
		statusStyle.Render("frame ") + valueStyle.Render(fmt.Sprintf("%d", a.Frame())),
		statusStyle.Render("tempo ") + valueStyle.Render(fmt.Sprintf("%.2fx", m.tempo)),
		statusStyle.Render(m.selected.String()+" ") + valueStyle.Render(fmt.Sprintf("%.2f/%.2f", a.Phase(m.selected), a.Spacing())),
	}
	if m.mode == ModePaused {
		parts = append(parts, pausedStyle.Render("PAUSED"))
	}
	switch {
	case m.errorMessage != "":
		parts = append(parts, errorStyle.Render(m.errorMessage))
	case m.successMessage != "":
		parts = append(parts, successStyle.Render(m.successMessage))
	default:
		parts = append(parts, statusStyle.Render("? help"))
	}
	return strings.Join(parts, statusStyle.Render("  |  "))
}

func (m model) helpView() string {
	helpLines := []string{
		"Wall Drawing #11",
		"",
		"  space        Pause / resume",
		"  n            Step one frame while paused",
		"  + / -        Speed up / slow down",
		"  tab          Select next line family",
		"  ←/h ↑/k      Shift the selected family back (Shift for 2x)",
		"  →/l ↓/j      Shift the selected family forward (Shift for 2x)",
		"  r            Reset phases",
		"  s            Save PNG snapshot",
		"  y            Copy frame to clipboard as SVG",
		"  q            Quit",
		"",
		"Any key closes this screen.",
	}
	box := helpStyle.Render(strings.Join(helpLines, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
