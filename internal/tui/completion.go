package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/parcours/internal/model"
)

type suggestion struct {
	label  string
	replay bool
}

var suggestionsByMode = map[string][]suggestion{
	"decouvrir": {
		{label: "Explorer d'autres concepts"},
		{label: "Passer à l'apprentissage"},
		{label: "Mettre en pratique"},
	},
	"apprendre": {
		{label: "Approfondir tes connaissances", replay: true},
		{label: "Tester tes acquis"},
		{label: "Découvrir de nouveaux sujets"},
	},
	"exercer": {
		{label: "Refaire les exercices", replay: true},
		{label: "Consolider avec la théorie"},
		{label: "Explorer d'autres pratiques"},
	},
}

func suggestionsFor(mode string) []suggestion {
	if s, ok := suggestionsByMode[mode]; ok {
		return s
	}
	return suggestionsByMode["decouvrir"]
}

func (m *Model) enterCompletion() tea.Cmd {
	m.revealTimer.Cancel()
	m.advanceTimer.Cancel()
	m.timeoutTimer.Cancel()
	m.answerInput.Blur()
	m.screen = screenCompletion
	m.suggestionCursor = 0
	m.moduleTable = buildModuleTable(m.journey.Modules)
	if m.width > 0 {
		m.moduleTable.SetWidth(min(m.width, 60))
	}
	asked, answered := m.session.Stats()
	m.log.Info("journey completed",
		"mode", m.mode.ID,
		"steps", len(m.session.Steps()),
		"asked", asked,
		"answered", answered,
	)
	return nil
}

func (m *Model) completionKey(msg tea.KeyMsg) tea.Cmd {
	options := suggestionsFor(m.mode.ID)
	switch msg.String() {
	case "up", "k":
		m.suggestionCursor = (m.suggestionCursor - 1 + len(options)) % len(options)
	case "down", "j":
		m.suggestionCursor = (m.suggestionCursor + 1) % len(options)
	case "enter", " ":
		picked := options[m.suggestionCursor]
		m.log.Info("suggestion picked", "mode", m.mode.ID, "suggestion", picked.label)
		if picked.replay {
			return m.startJourney(m.bank)
		}
		return m.enterSelector()
	case "q", "esc":
		m.shutdown()
		return tea.Quit
	}
	return nil
}

func buildModuleTable(modules []model.Module) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "", Width: 3},
		{Title: "Module", Width: 12},
		{Title: "Durée", Width: 10},
	}
	rows := make([]table.Row, 0, len(modules))
	for i, mod := range modules {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), mod.Icon, mod.Label, mod.Duration})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(1, len(rows)+1)),
	)
	t.SetStyles(moduleTableStyles())
	return t
}

func moduleTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func (m *Model) viewCompletion() string {
	asked, answered := m.session.Stats()
	lines := []string{
		accentStyle.Render("Parcours terminé !"),
		mutedStyle.Render(wrapText(m.journey.Description, m.contentWidth())),
		"",
		m.moduleTable.View(),
		"",
		bodyStyle.Render(fmt.Sprintf("Questions répondues : %d/%d", answered, asked)),
		"",
		titleStyle.Render("Et maintenant ?"),
	}
	for i, s := range suggestionsFor(m.mode.ID) {
		if i == m.suggestionCursor {
			lines = append(lines, cursorMark+" "+accentStyle.Render(s.label))
			continue
		}
		lines = append(lines, "  "+bodyStyle.Render(s.label))
	}
	return strings.Join(lines, "\n")
}
