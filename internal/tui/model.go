package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/parcours/internal/catalog"
	"github.com/verte-zerg/parcours/internal/flow"
	"github.com/verte-zerg/parcours/internal/logger"
	"github.com/verte-zerg/parcours/internal/model"
	"github.com/verte-zerg/parcours/internal/navigation"
	"github.com/verte-zerg/parcours/internal/questions"
	"github.com/verte-zerg/parcours/internal/tracker"
)

const (
	// DefaultSplash is how long the title screen stays up.
	DefaultSplash = 2500 * time.Millisecond
	// DefaultAdvanceDelay separates a submitted answer from the next step.
	DefaultAdvanceDelay = 500 * time.Millisecond

	tickInterval      = time.Second
	questionsDeadline = 5 * time.Second
)

type screen int

const (
	screenSplash screen = iota
	screenSelector
	screenQuestionnaire
	screenLoading
	screenJourney
	screenCompletion
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D8D8D8"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cursorMark   = accentStyle.Render("›")
	selectedCard = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#EC4899"))
	idleCard = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Options configures the flow.
type Options struct {
	Catalog         *catalog.Catalog
	Questions       questions.Source
	Policy          navigation.Policy
	Splash          time.Duration
	AdvanceDelay    time.Duration
	QuestionTimeout time.Duration
	Log             *logger.Logger
	Clock           func() time.Time
}

type questionsLoadedMsg struct {
	bank []string
	err  error
}

// Model implements the Bubble Tea learning flow. It owns the session
// tracker while the mode selector is on screen.
type Model struct {
	opts Options
	log  *logger.Logger

	width  int
	height int
	screen screen

	splashTimer  *flow.Timer
	tickTimer    *flow.Timer
	revealTimer  *flow.Timer
	advanceTimer *flow.Timer
	timeoutTimer *flow.Timer

	tracker   *tracker.Tracker
	record    model.BehavioralRecord
	ranked    navigation.Result
	visible   []navigation.Annotated
	cursor    int
	focusedID string
	mode      model.NavigationItem

	form questionnaire

	journey       model.Journey
	session       *flow.Session
	bank          []string
	questionCount int
	content       model.Content
	prompt        string
	revealed      bool
	submitted     bool
	answerInput   textinput.Model
	contentView   viewport.Model

	moduleTable      table.Model
	suggestionCursor int
}

// NewModel constructs the flow model.
func NewModel(opts Options) *Model {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Policy == nil {
		opts.Policy = navigation.AlwaysShow{}
	}
	if opts.AdvanceDelay < 0 {
		opts.AdvanceDelay = 0
	}
	m := &Model{
		opts:         opts,
		log:          opts.Log,
		splashTimer:  flow.NewTimer("splash"),
		tickTimer:    flow.NewTimer("tick"),
		revealTimer:  flow.NewTimer("reveal"),
		advanceTimer: flow.NewTimer("advance"),
		timeoutTimer: flow.NewTimer("timeout"),
		answerInput:  newAnswerInput(),
		contentView:  viewport.New(60, 12),
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.opts.Splash <= 0 {
		return m.enterSelector()
	}
	m.screen = screenSplash
	return m.splashTimer.Schedule(m.opts.Splash)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case flow.TimerMsg:
		return m, m.handleTimer(msg)
	case questionsLoadedMsg:
		if msg.err != nil {
			m.log.Warn("no questions available", "mode", m.mode.ID, "error", msg.err)
		}
		return m, m.startJourney(msg.bank)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.shutdown()
			return m, tea.Quit
		}
		return m, m.handleKey(msg)
	}
	if m.screen == screenJourney && m.onQuestion() {
		var cmd tea.Cmd
		m.answerInput, cmd = m.answerInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body, footer string
	switch m.screen {
	case screenSplash:
		body = m.viewSplash()
	case screenSelector:
		body, footer = m.viewSelector(), m.selectorFooter()
	case screenQuestionnaire:
		body, footer = m.viewQuestionnaire(), "↑/↓ choisir · entrée valider · échap revenir"
	case screenLoading:
		body = mutedStyle.Render("Préparation de ton parcours…")
	case screenJourney:
		body, footer = m.viewJourney(), m.journeyFooter()
	case screenCompletion:
		body, footer = m.viewCompletion(), "↑/↓ choisir · entrée valider · q quitter"
	}
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return body
		}
		return body + "\n\n" + footerStyle.Render(footer)
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	content := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footerStyle.Render(ellipsize(footer, m.width)))
	return content + "\n" + footerLine
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.screen {
	case screenSplash:
		m.splashTimer.Cancel()
		return m.enterSelector()
	case screenSelector:
		return m.selectorKey(msg)
	case screenQuestionnaire:
		return m.questionnaireKey(msg)
	case screenJourney:
		return m.journeyKey(msg)
	case screenCompletion:
		return m.completionKey(msg)
	}
	return nil
}

func (m *Model) handleTimer(msg flow.TimerMsg) tea.Cmd {
	switch {
	case m.splashTimer.Fires(msg):
		return m.enterSelector()
	case m.tickTimer.Fires(msg):
		if m.screen != screenSelector || m.tracker == nil || m.tracker.Disposed() {
			return nil
		}
		m.tracker.Tick()
		m.refreshRanking()
		return m.tickTimer.Schedule(tickInterval)
	case m.revealTimer.Fires(msg):
		m.revealed = true
		return nil
	case m.timeoutTimer.Fires(msg):
		if m.screen != screenJourney || !m.onQuestion() || m.submitted {
			return nil
		}
		m.session.RecordAnswer("")
		m.log.Debug("question timed out", "step", m.currentStepID())
		return m.advanceStep()
	case m.advanceTimer.Fires(msg):
		if m.screen != screenJourney {
			return nil
		}
		return m.advanceStep()
	}
	return nil
}

func (m *Model) loadQuestions(mode string) tea.Cmd {
	src := m.opts.Questions
	if src == nil {
		return func() tea.Msg {
			return questionsLoadedMsg{err: questions.ErrEmptyBank}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), questionsDeadline)
		defer cancel()
		bank, err := src.Questions(ctx, mode)
		return questionsLoadedMsg{bank: bank, err: err}
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.contentView.Width = m.contentWidth()
	m.contentView.Height = max(3, m.height-10)
	m.answerInput.Width = max(10, m.contentWidth()-lipgloss.Width(m.answerInput.Prompt)-1)
	if m.screen == screenJourney && !m.onQuestion() {
		m.contentView.SetContent(m.renderContentBody())
	}
	if m.screen == screenCompletion {
		m.moduleTable.SetWidth(min(m.width, 60))
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := int(float64(m.width) * 0.70)
	if w < 20 {
		w = min(m.width, 20)
	}
	return w
}

// ellipsize cuts s to width display columns, marking the cut.
func ellipsize(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// shutdown releases the tracker and every pending timer.
func (m *Model) shutdown() {
	m.leaveSelector()
	m.splashTimer.Cancel()
	m.revealTimer.Cancel()
	m.advanceTimer.Cancel()
	m.timeoutTimer.Cancel()
}
