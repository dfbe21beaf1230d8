package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/algoviz/internal/capture"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type state int

const (
	stateMenu state = iota
	statePlay
)

type model struct {
	state  state
	cursor int

	registry *experiment.Registry
	algs     []*experiment.Algorithm
	cfg      *config.Config
	logger   *log.Logger

	exp    *experiment.Experiment
	engine *playback.Engine
	frames chan playback.Frame
	frame  playback.Frame

	recording *capture.Session
	notice    string

	width  int
	height int
}

// frameMsg carries a frame published by the engine.
type frameMsg playback.Frame

// NewInteractiveApp builds the player for cfg. It starts on the algorithm
// menu with cfg.Algorithm selected.
func NewInteractiveApp(cfg *config.Config, logger *log.Logger) (*model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := experiment.NewRegistry()
	algs := append(r.ByCategory(experiment.Sorting), r.ByCategory(experiment.Graph)...)

	exp, err := experiment.FromConfig(r, cfg, logger)
	if err != nil {
		return nil, err
	}

	m := &model{
		state:    stateMenu,
		registry: r,
		algs:     algs,
		cfg:      cfg,
		logger:   logger,
		exp:      exp,
		frames:   make(chan playback.Frame, 1),
		width:    80,
		height:   24,
	}
	for i, a := range algs {
		if a.ID == exp.Name() {
			m.cursor = i
		}
	}

	m.engine = playback.New(exp, exp.Input(),
		playback.WithSpeed(cfg.Speed()),
		playback.WithLogger(logger),
	)
	m.engine.Observe(m.publish)
	m.frame = m.engine.Frame()
	return m, nil
}

// publish hands f to the update loop, replacing any frame not yet read.
func (m *model) publish(f playback.Frame) {
	for {
		select {
		case m.frames <- f:
			return
		default:
		}
		select {
		case <-m.frames:
		default:
		}
	}
}

func waitFrame(ch <-chan playback.Frame) tea.Cmd {
	return func() tea.Msg { return frameMsg(<-ch) }
}

func (m *model) Init() tea.Cmd { return waitFrame(m.frames) }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		m.frame = playback.Frame(msg)
		return m, waitFrame(m.frames)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case statePlay:
		return m.playKey(msg)
	}
	return m, nil
}

func (m *model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quit()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algs)-1 {
			m.cursor++
		}
	case "enter", " ":
		if err := m.selectAlgorithm(m.algs[m.cursor]); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.state = statePlay
		return m, tea.ClearScreen
	}
	return m, nil
}

// selectAlgorithm switches the engine to alg. The current input is kept
// when alg works on the same kind of data.
func (m *model) selectAlgorithm(alg *experiment.Algorithm) error {
	in := m.engine.Input()
	if alg.Category != m.exp.Algorithm().Category {
		cfg := *m.cfg
		cfg.Algorithm = alg.ID
		var err error
		if in, err = experiment.InputFor(alg, &cfg); err != nil {
			return err
		}
	}

	exp, err := experiment.New(m.registry, experiment.Config{
		Algorithm: alg.ID,
		Input:     in,
		Seed:      m.cfg.Seed,
		Logger:    m.logger,
	})
	if err != nil {
		return err
	}

	m.exp = exp
	m.engine.Regenerate(in)
	m.engine.SetSource(exp)
	m.notice = ""
	return m.engine.Prepare()
}

func (m *model) playKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q", "ctrl+c":
		m.quit()
		return m, tea.Quit
	case "esc":
		m.engine.Pause()
		m.stopRecording()
		m.state = stateMenu
		return m, tea.ClearScreen
	case " ", "p":
		if err := m.engine.Toggle(); err != nil {
			m.notice = err.Error()
		}
	case "right", "l":
		m.engine.StepForward()
	case "left", "h":
		m.engine.StepBack()
	case "home":
		m.engine.Home()
	case "end":
		m.engine.End()
	case "r":
		m.engine.Reset()
	case "s":
		m.engine.Regenerate(m.exp.Shuffle())
		if err := m.engine.Prepare(); err != nil {
			m.notice = err.Error()
		}
	case "+", "=":
		m.setSpeed(config.NextSpeed(m.engine.Speed(), 1))
	case "-", "_":
		m.setSpeed(config.NextSpeed(m.engine.Speed(), -1))
	case "t":
		viz.SetTheme(viz.NextTheme().Name)
	case "g":
		m.toggleRecording()
	}
	return m, nil
}

func (m *model) setSpeed(d time.Duration) {
	if err := m.engine.SetSpeed(d); err != nil {
		m.notice = err.Error()
	}
}

func (m *model) toggleRecording() {
	if m.recording != nil {
		m.stopRecording()
		return
	}
	s := capture.NewSession(capture.Options{
		Width:  m.canvasWidth(),
		Height: m.canvasHeight(),
		Delay:  m.cfg.Export.FrameDelay,
		Loop:   m.cfg.Export.Loop,
		Theme:  viz.CurrentTheme,
	})
	s.Attach(m.engine)
	s.Capture(m.engine.Frame())
	m.recording = s
	m.notice = "recording"
}

func (m *model) stopRecording() {
	if m.recording == nil {
		return
	}
	s := m.recording
	m.recording = nil
	s.Close()

	if err := os.MkdirAll(m.cfg.DataDir, 0755); err != nil {
		m.notice = err.Error()
		return
	}
	name := fmt.Sprintf("%s-%s.gif", m.exp.Name(), time.Now().Format("20060102-150405"))
	path := filepath.Join(m.cfg.DataDir, name)
	if err := s.Save(path); err != nil {
		m.notice = err.Error()
		return
	}
	m.logger.Info("saved recording", "path", path, "frames", s.Len())
	m.notice = "saved " + path
}

func (m *model) quit() {
	m.stopRecording()
	m.engine.Close()
}

func (m *model) canvasWidth() int  { return max(m.width-6, 40) }
func (m *model) canvasHeight() int { return max(m.height-12, 10) }

func (m *model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case statePlay:
		return m.viewPlay()
	}
	return ""
}

func (m *model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("a l g o v i z") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	var category experiment.Category
	for i, a := range m.algs {
		if a.Category != category {
			category = a.Category
			b.WriteString("    " + dimmer.Render(string(category)) + "\n")
		}
		desc := a.TimeComplexity
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", a.Title)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", a.Title)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	if m.cursor < len(m.algs) {
		b.WriteString("      " + dim.Render(m.algs[m.cursor].Description) + "\n\n")
	}
	if m.notice != "" {
		b.WriteString("      " + viz.ErrorStyle.Render(m.notice) + "\n\n")
	}
	b.WriteString(dim.Render("      ↑↓ select   enter start   q quit") + "\n")

	return b.String()
}

func (m *model) viewPlay() string {
	f := m.frame
	canvas := viz.NewCanvas(m.canvasWidth(), m.canvasHeight())
	viz.DrawFrame(canvas, f)

	var b strings.Builder

	title := cyan.Render(m.exp.Algorithm().Title)
	if m.recording != nil {
		title += "  " + viz.StatusRecording.Render("● REC")
	}
	b.WriteString("\n   " + title + "\n")

	progress := 0.0
	if f.Total > 1 {
		progress = float64(f.Index) / float64(f.Total-1)
	}
	speed := dim.Render(fmt.Sprintf("%v/step", m.engine.Speed()))
	b.WriteString(fmt.Sprintf("   %s  %s\n\n", viz.ProgressBar(progress, 36), speed))

	for _, row := range strings.Split(strings.TrimRight(canvas.Render(viz.CurrentTheme), "\n"), "\n") {
		b.WriteString("   " + row + "\n")
	}

	b.WriteString("\n   " + viz.StatusLine(f) + "\n")
	if tr := m.engine.Trace(); tr != nil {
		b.WriteString("   " + viz.Legend(tr.Kind, viz.CurrentTheme) + "\n")
	}
	if m.notice != "" {
		b.WriteString("   " + dim.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + dim.Render("   space play  ←→ step  home/end  r reset  s shuffle  ±speed  g rec  t theme  esc menu  q quit") + "\n")

	return b.String()
}

func RunInteractive(cfg *config.Config, logger *log.Logger) error {
	m, err := NewInteractiveApp(cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
