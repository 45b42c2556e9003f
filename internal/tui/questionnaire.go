package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/parcours/internal/journey"
	"github.com/verte-zerg/parcours/internal/model"
)

type choice struct {
	label string
	value string
}

type formQuestion struct {
	title   string
	choices []choice
}

var formQuestions = []formQuestion{
	{
		title: "Quel est ton niveau ?",
		choices: []choice{
			{"Débutant", model.LevelDebutant},
			{"Intermédiaire", model.LevelIntermediaire},
			{"Avancé", model.LevelAvance},
		},
	},
	{
		title: "Qu'est-ce que tu cherches ?",
		choices: []choice{
			{"Comprendre les bases", model.IntentionComprendre},
			{"Voir des exemples", model.IntentionVoir},
			{"Pratiquer", model.IntentionPratiquer},
			{"Explorer librement", model.IntentionExplorer},
		},
	},
	{
		title: "Quel rythme te convient ?",
		choices: []choice{
			{"Doucement", model.RythmeDoucement},
			{"Rapidement", model.RythmeRapidement},
			{"Laisse-moi choisir pour toi", model.RythmeAuto},
		},
	},
	{
		title: "Comment préfères-tu apprendre ?",
		choices: []choice{
			{"Avec des exemples", model.StyleExemples},
			{"Avec des explications", model.StyleExplications},
			{"En vidéo", model.StyleVideos},
			{"En pratiquant", model.StylePratique},
		},
	},
}

// questionnaire collects the four journey answers in order.
type questionnaire struct {
	index  int
	cursor int
	values [4]string
}

func (q *questionnaire) done() bool {
	return q.index >= len(formQuestions)
}

func (q *questionnaire) move(delta int) {
	if q.done() {
		return
	}
	n := len(formQuestions[q.index].choices)
	q.cursor = (q.cursor + delta + n) % n
}

func (q *questionnaire) choose() {
	if q.done() {
		return
	}
	q.values[q.index] = formQuestions[q.index].choices[q.cursor].value
	q.index++
	q.cursor = 0
}

func (q *questionnaire) back() {
	if q.index == 0 {
		return
	}
	q.index--
	q.cursor = 0
	for i, c := range formQuestions[q.index].choices {
		if c.value == q.values[q.index] {
			q.cursor = i
		}
	}
}

func (q *questionnaire) answers() model.JourneyAnswers {
	return model.JourneyAnswers{
		Level:     q.values[0],
		Intention: q.values[1],
		Rythme:    q.values[2],
		Style:     q.values[3],
	}
}

func (m *Model) questionnaireKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.form.move(-1)
	case "down", "j":
		m.form.move(1)
	case "esc", "backspace":
		m.form.back()
	case "enter", " ":
		m.form.choose()
		if m.form.done() {
			return m.submitQuestionnaire()
		}
	case "q":
		m.shutdown()
		return tea.Quit
	}
	return nil
}

func (m *Model) submitQuestionnaire() tea.Cmd {
	answers := m.form.answers()
	m.journey = journey.Generate(answers)
	m.log.Info("journey generated",
		"mode", m.mode.ID,
		"level", answers.Level,
		"intention", answers.Intention,
		"rythme", answers.Rythme,
		"style", answers.Style,
		"modules", len(m.journey.Modules),
	)
	m.screen = screenLoading
	return m.loadQuestions(m.mode.ID)
}

func (m *Model) viewQuestionnaire() string {
	if m.form.done() {
		return ""
	}
	q := formQuestions[m.form.index]
	lines := []string{
		mutedStyle.Render(fmt.Sprintf("%s · question %d/%d", m.mode.Label, m.form.index+1, len(formQuestions))),
		titleStyle.Render(q.title),
		"",
	}
	for i, c := range q.choices {
		if i == m.form.cursor {
			lines = append(lines, cursorMark+" "+accentStyle.Render(c.label))
			continue
		}
		lines = append(lines, "  "+bodyStyle.Render(c.label))
	}
	return strings.Join(lines, "\n")
}
