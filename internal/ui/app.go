package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proofylabs/proofy/internal/emoji"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/intake"
	"github.com/proofylabs/proofy/internal/session"
	"github.com/proofylabs/proofy/internal/signals"
)

// Model is the interactive forensic console. Navigation state lives in the
// session coordinator; the model holds only rendering concerns.
type Model struct {
	width  int
	height int

	coordinator *session.Coordinator
	analyzer    gateway.Analyzer
	media       *intake.Media
	catalog     *signals.Catalog
	timeout     time.Duration

	ready    bool
	quitting bool

	// Navigation state
	selectedIndex int
	maxIndex      int

	// Animation state
	spinnerFrame   int
	tick           int
	processingStep string

	// Colors and styles
	primaryColor   lipgloss.AdaptiveColor
	secondaryColor lipgloss.AdaptiveColor
	successColor   lipgloss.AdaptiveColor
	warningColor   lipgloss.AdaptiveColor
	errorColor     lipgloss.AdaptiveColor
	selectedColor  lipgloss.AdaptiveColor
}

// NewModel creates the interactive model. media may be nil, in which case the
// console opens on the home screen without starting an interrogation.
func NewModel(coordinator *session.Coordinator, analyzer gateway.Analyzer, media *intake.Media, catalog *signals.Catalog, timeout time.Duration) *Model {
	return &Model{
		coordinator:    coordinator,
		analyzer:       analyzer,
		media:          media,
		catalog:        catalog,
		timeout:        timeout,
		processingStep: emoji.GetEmoji("shield") + " Initializing Proofy...",
		primaryColor:   lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"},
		secondaryColor: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		successColor:   lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"},
		warningColor:   lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"},
		errorColor:     lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"},
		selectedColor:  lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
	}
}

// Init starts the interrogation when the console was launched with a file.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, tick()}
	if m.media != nil {
		cmds = append(cmds, m.startAnalysis())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case analysisCompleteMsg:
		return m.handleAnalysisComplete(msg)
	case analysisErrorMsg:
		return m.handleAnalysisError(msg)
	case analysisProgressMsg:
		return m.handleAnalysisProgress(msg)
	}

	return m, nil
}

func (m *Model) startAnalysis() tea.Cmd {
	if !m.coordinator.Submit(m.media.Preview()) {
		return nil
	}

	return tea.Sequence(
		func() tea.Msg {
			return analysisProgressMsg{step: emoji.GetEmoji("evidence") + " Deriving exhibit metadata..."}
		},
		func() tea.Msg {
			return analysisProgressMsg{step: emoji.GetEmoji("brain") + " Interrogating neural engine..."}
		},
		CreateAnalysisCommand(m.analyzer, m.media, m.timeout),
	)
}

// Handler functions for Update method

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.handleQuit()
	case "esc":
		return m.handleEscape()
	case "up", "k":
		return m.handleMoveUp()
	case "down", "j":
		return m.handleMoveDown()
	case "enter", " ":
		return m.handleSelection()
	case "r":
		return m.handleOpenReport()
	case "t":
		return m.handleOpenTimeline()
	case "h":
		return m.handleOpenTool(session.ViewHistory)
	case "s":
		return m.handleOpenTool(session.ViewSignalLibrary)
	case "g":
		return m.handleOpenTool(session.ViewReverseGrounding)
	case "x":
		return m.handleOpenTool(session.ViewTextLab)
	case "b":
		return m.handleOpenTool(session.ViewBatchTriage)
	case "l":
		return m.handleOpenTool(session.ViewLive)
	case "n":
		return m.handleReset()
	}
	return m, nil
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.coordinator.Close()
	return m, tea.Quit
}

func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	m.coordinator.Apply(session.GoBack{})
	m.resetSelection()
	return m, nil
}

func (m *Model) handleReset() (tea.Model, tea.Cmd) {
	m.coordinator.Apply(session.Reset{})
	m.resetSelection()
	return m, nil
}

func (m *Model) handleOpenReport() (tea.Model, tea.Cmd) {
	m.coordinator.Apply(session.OpenReport{})
	return m, nil
}

func (m *Model) handleOpenTimeline() (tea.Model, tea.Cmd) {
	m.coordinator.Apply(session.OpenTimeline{})
	return m, nil
}

func (m *Model) handleOpenTool(view session.View) (tea.Model, tea.Cmd) {
	m.coordinator.Apply(session.OpenTool{View: view})
	m.resetSelection()
	return m, nil
}

func (m *Model) handleMoveUp() (tea.Model, tea.Cmd) {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
	return m, nil
}

func (m *Model) handleMoveDown() (tea.Model, tea.Cmd) {
	if m.selectedIndex < m.maxIndex {
		m.selectedIndex++
	}
	return m, nil
}

func (m *Model) handleSelection() (tea.Model, tea.Cmd) {
	state := m.coordinator.State()
	if state.View == session.ViewHistory {
		entries := m.coordinator.History()
		if m.selectedIndex < len(entries) {
			m.coordinator.SelectFromHistory(entries[m.selectedIndex].ID)
			m.resetSelection()
		}
	}
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++
	m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
	return m, tick()
}

func (m *Model) handleAnalysisComplete(msg analysisCompleteMsg) (tea.Model, tea.Cmd) {
	m.coordinator.Complete(msg.result)
	m.resetSelection()
	return m, nil
}

func (m *Model) handleAnalysisError(msg analysisErrorMsg) (tea.Model, tea.Cmd) {
	m.coordinator.Fail(msg.err)
	m.resetSelection()
	return m, nil
}

func (m *Model) handleAnalysisProgress(msg analysisProgressMsg) (tea.Model, tea.Cmd) {
	m.processingStep = msg.step
	return m, nil
}

func (m *Model) resetSelection() {
	m.selectedIndex = 0
	m.updateMaxIndex()
}

// updateMaxIndex updates the maximum selectable index for the current view
func (m *Model) updateMaxIndex() {
	switch m.coordinator.State().View {
	case session.ViewHistory:
		m.maxIndex = max(0, len(m.coordinator.History())-1)
	case session.ViewSignalLibrary:
		if m.catalog != nil {
			m.maxIndex = max(0, m.catalog.Len()-1)
		}
	default:
		m.maxIndex = 0
	}
}

// Run launches the interactive console.
func Run(coordinator *session.Coordinator, analyzer gateway.Analyzer, media *intake.Media, catalog *signals.Catalog, timeout time.Duration) error {
	model := NewModel(coordinator, analyzer, media, catalog, timeout)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
