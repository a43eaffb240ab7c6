package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textbetti/internal/domain"
	"textbetti/internal/report"
	"textbetti/internal/service"
	"textbetti/internal/topology"
)

// AnalysisPort is the TUI-facing subset of the analysis service.
type AnalysisPort interface {
	Analyze(ctx context.Context, req service.Request) (*service.Result, error)
}

type stage int

const (
	stageText stage = iota
	stageMode
	stageDelta
	stageResults
)

// Settings seed the parameter screens.
type Settings struct {
	// Context bounds every analysis started from the TUI. Nil means
	// context.Background().
	Context context.Context
	Text    string
	Mode    domain.SplitMode
	Delta   float64
	Steps   int
	Formula topology.Formula
}

type resultMsg struct {
	res *service.Result
	err error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service  AnalysisPort
	settings Settings
	ctx      context.Context
	cancel   context.CancelFunc
	stage    stage
	text     textarea.Model
	delta    textinput.Model
	viewport viewport.Model
	mode     domain.SplitMode
	preview  []float64
	result   *service.Result
	status   string
	running  bool
	ready    bool
}

// New creates a new TUI model instance.
func New(svc AnalysisPort, s Settings) Model {
	if s.Mode == "" {
		s.Mode = domain.SplitParagraph
	}
	if s.Steps <= 0 {
		s.Steps = service.DefaultSteps
	}
	if s.Delta <= 0 {
		s.Delta = 0.5
	}
	ta := textarea.New()
	ta.Placeholder = "Paste or type the text to analyze"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(s.Text)
	ta.Focus()

	ti := textinput.New()
	ti.Prompt = "delta> "
	ti.SetValue(strconv.FormatFloat(s.Delta, 'g', -1, 64))
	ti.CharLimit = 32

	parent := s.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	return Model{
		service:  svc,
		settings: s,
		ctx:      ctx,
		cancel:   cancel,
		text:     ta,
		delta:    ti,
		viewport: viewport.New(0, 0),
		mode:     s.Mode,
		status:   "Enter text, then ctrl+s to continue.",
	}
}

// Init initializes the model (text area cursor blink).
func (m Model) Init() tea.Cmd { return textarea.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := boxStyle.GetFrameSize()
		reserved := 3 + fh // header, status, spacer
		h := max(3, msg.Height-reserved)
		w := max(20, msg.Width-4)
		m.text.SetWidth(w)
		m.text.SetHeight(h)
		m.viewport.Width = w
		m.viewport.Height = h
		m.viewport.SetContent(m.renderResult())
		return m, nil
	case resultMsg:
		m.running = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.result = msg.res
		m.stage = stageResults
		m.status = "n: new analysis  esc: back  q: quit"
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m.quit()
		}
		switch m.stage {
		case stageText:
			return m.updateText(msg)
		case stageMode:
			return m.updateMode(msg)
		case stageDelta:
			return m.updateDelta(msg)
		case stageResults:
			return m.updateResults(msg)
		}
	}
	return m.forward(msg)
}

func (m Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlS {
		m.text.Blur()
		m.stage = stageMode
		m.status = "up/down: choose  enter: confirm  esc: back"
		return m, nil
	}
	return m.forward(msg)
}

func (m Model) updateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down", "k", "j", "tab":
		if m.mode == domain.SplitSentence {
			m.mode = domain.SplitParagraph
		} else {
			m.mode = domain.SplitSentence
		}
	case "enter":
		m.stage = stageDelta
		m.delta.Focus()
		m.status = "enter: confirm delta  esc: back"
	case "esc":
		m.stage = stageText
		m.text.Focus()
		m.status = "Enter text, then ctrl+s to continue."
	}
	return m, nil
}

func (m Model) updateDelta(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.delta.Blur()
		m.preview = nil
		m.stage = stageMode
		m.status = "up/down: choose  enter: confirm  esc: back"
		return m, nil
	case "enter":
		if m.running {
			return m, nil
		}
		delta, err := strconv.ParseFloat(strings.TrimSpace(m.delta.Value()), 64)
		if err != nil || delta <= 0 {
			m.preview = nil
			m.status = "Delta must be a positive number!"
			return m, nil
		}
		diameters, err := topology.Diameters(delta, m.settings.Steps)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.preview = diameters
		m.running = true
		m.status = "Computing Betti numbers..."
		return m, m.analyze(delta)
	}
	return m.forward(msg)
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc":
		m.stage = stageDelta
		m.delta.Focus()
		m.status = "enter: confirm delta  esc: back"
		return m, nil
	case "n":
		m.text.Reset()
		m.text.Focus()
		m.delta.Blur()
		m.result = nil
		m.preview = nil
		m.stage = stageText
		m.status = "Enter text, then ctrl+s to continue."
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// quit stops any running analysis before leaving the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// forward passes msg to the component that owns the current stage.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.stage {
	case stageText:
		m.text, cmd = m.text.Update(msg)
	case stageDelta:
		m.delta, cmd = m.delta.Update(msg)
	case stageResults:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) analyze(delta float64) tea.Cmd {
	req := service.Request{
		Text:    m.text.Value(),
		Mode:    m.mode,
		Delta:   delta,
		Steps:   m.settings.Steps,
		Formula: m.settings.Formula,
	}
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		res, err := svc.Analyze(ctx, req)
		return resultMsg{res: res, err: err}
	}
}

// View renders the TUI layout for the current stage.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var header, body string
	switch m.stage {
	case stageText:
		header = "Text to analyze"
		body = m.text.View()
	case stageMode:
		header = "Choose how to split the text"
		body = m.renderModeChoice()
	case stageDelta:
		header = "Diameter step"
		body = m.delta.View()
		if len(m.preview) > 0 {
			body += "\n\n" + mutedStyle.Render("Diameters: "+formatList(m.preview))
		}
	case stageResults:
		header = "Betti numbers by simplex diameter"
		body = m.viewport.View()
	}
	status := statusStyle.Render(m.status)
	return headerStyle.Render(header) + "\n" + boxStyle.Render(body) + "\n" + status
}

func (m Model) renderModeChoice() string {
	options := []struct {
		mode  domain.SplitMode
		label string
	}{
		{domain.SplitSentence, "By sentences"},
		{domain.SplitParagraph, "By paragraphs"},
	}
	lines := make([]string, len(options))
	for i, o := range options {
		if o.mode == m.mode {
			lines[i] = selectedStyle.Render("(•) " + o.label)
		} else {
			lines[i] = "( ) " + o.label
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No results yet."
	}
	const plotHeight = 8
	return report.Table(m.result) + "\n\n" +
		report.Plot("b0 vs diameter", m.result.Points, report.B0, plotHeight) + "\n" +
		report.Plot("b1 vs diameter", m.result.Points, report.B1, plotHeight)
}

func formatList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
