package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/parcours/internal/navigation"
	"github.com/verte-zerg/parcours/internal/tracker"
)

var reasonLabels = map[string]string{
	"based on your preferences":   "selon tes préférences",
	"start here to begin":         "commence par ici",
	"ideal for your current goal": "idéal pour ton objectif",
	"new content to discover":     "nouveau contenu à découvrir",
	"ideal for exploring":         "idéal pour explorer",
	"deepen your knowledge":       "approfondis tes connaissances",
	"put it into practice":        "mets-le en pratique",
	navigation.DefaultReason:      "recommandé pour toi",
}

func reasonLabel(reason string) string {
	if label, ok := reasonLabels[reason]; ok {
		return label
	}
	return reason
}

var stateLabels = map[string]string{
	"exploratory": "exploration",
	"focused":     "concentré",
	"hesitant":    "hésitant",
	"confident":   "confiant",
}

// enterSelector starts a fresh tracking session and its tick.
func (m *Model) enterSelector() tea.Cmd {
	m.screen = screenSelector
	m.tracker = tracker.New(tracker.WithClock(m.opts.Clock))
	m.tracker.Start()
	m.focusedID = ""
	m.cursor = 0
	m.refreshRanking()
	m.focus(0)
	m.log.Info("session started", "session", m.tracker.SessionID())
	return m.tickTimer.Schedule(tickInterval)
}

// leaveSelector ends the tracking session. Safe to call more than once.
func (m *Model) leaveSelector() {
	m.tickTimer.Cancel()
	if m.tracker == nil || m.tracker.Disposed() {
		return
	}
	if m.focusedID != "" {
		m.tracker.TrackHoverEnd(m.focusedID)
	}
	m.record = m.tracker.Snapshot()
	m.tracker.Dispose()
}

func (m *Model) refreshRanking() {
	m.record = m.tracker.Snapshot()
	m.ranked = navigation.Rank(m.opts.Catalog.Items(), m.record)
	visible := navigation.Visible(m.ranked.OrderedItems, m.record, m.opts.Policy)
	m.visible = navigation.Annotate(visible, m.ranked.Recommendations)
	m.cursor = 0
	for i, item := range m.visible {
		if item.ID == m.focusedID {
			m.cursor = i
			return
		}
	}
	// The focused item was hidden by the policy: move the hover to the
	// card under the cursor.
	if m.focusedID != "" {
		m.tracker.TrackHoverEnd(m.focusedID)
		m.focusedID = ""
		if len(m.visible) > 0 {
			m.focusedID = m.visible[0].ID
			m.tracker.TrackHoverStart(m.focusedID)
		}
	}
}

// focus moves the cursor to index i. Focus changes are hovers.
func (m *Model) focus(i int) {
	if i < 0 || i >= len(m.visible) {
		return
	}
	id := m.visible[i].ID
	if id == m.focusedID {
		m.cursor = i
		return
	}
	if m.focusedID != "" {
		m.tracker.TrackHoverEnd(m.focusedID)
	}
	m.tracker.TrackHoverStart(id)
	m.focusedID = id
	m.refreshRanking()
}

func (m *Model) selectorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k", "shift+tab":
		m.focus(m.cursor - 1)
	case "down", "j", "tab":
		m.focus(m.cursor + 1)
	case "v":
		if m.focusedID != "" {
			m.tracker.TrackView(m.focusedID)
		}
	case "enter", " ":
		return m.chooseMode()
	case "q", "esc":
		m.shutdown()
		return tea.Quit
	}
	return nil
}

func (m *Model) chooseMode() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	item := m.visible[m.cursor]
	m.tracker.TrackClick(item.ID, map[string]string{"type": item.Type})
	m.refreshRanking()
	m.log.Info("mode selected",
		"session", m.tracker.SessionID(),
		"mode", item.ID,
		"score", item.RelevanceScore,
		"recommended", item.IsRecommended,
		"mental_state", string(m.record.MentalState),
		"hesitation", m.record.HesitationLevel,
	)
	m.mode = item.NavigationItem
	m.leaveSelector()
	m.screen = screenQuestionnaire
	m.form = questionnaire{}
	return nil
}

func (m *Model) viewSelector() string {
	lines := []string{
		titleStyle.Render("Que veux-tu faire aujourd'hui ?"),
		mutedStyle.Render("Choisis un mode pour commencer ton parcours."),
		"",
	}
	width := min(m.contentWidth(), 56)
	for i, item := range m.visible {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color)).Bold(true).Render(item.Label)
		marker := " "
		if i == m.cursor {
			marker = cursorMark
		}
		card := []string{marker + " " + label, "  " + mutedStyle.Render(ellipsize(item.Description, width))}
		if item.IsRecommended {
			card = append(card, "  "+badgeStyle.Render(ellipsize("★ Recommandé · "+reasonLabel(item.Reason), width)))
		}
		style := idleCard
		if i == m.cursor {
			style = selectedCard
		}
		lines = append(lines, style.Width(width+4).Render(strings.Join(card, "\n")))
	}
	if len(m.visible) == 0 {
		lines = append(lines, mutedStyle.Render("Aucun mode disponible."))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) selectorFooter() string {
	state := string(m.record.MentalState)
	if label, ok := stateLabels[state]; ok {
		state = label
	}
	return fmt.Sprintf("État %s · hésitation %d/3 · %ds · ↑/↓ naviguer · entrée choisir · q quitter",
		state, m.record.HesitationLevel, m.record.TimeSpentSeconds)
}
