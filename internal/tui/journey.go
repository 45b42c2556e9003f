package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/parcours/internal/flow"
	"github.com/verte-zerg/parcours/internal/questions"
)

const finalQuizTitle = "Quiz final"

func newAnswerInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "Ta réponse…"
	input.CharLimit = 500
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) startJourney(bank []string) tea.Cmd {
	m.bank = bank
	m.questionCount = 0
	m.session = flow.NewSession(flow.BuildSteps(m.journey))
	m.screen = screenJourney
	return m.enterStep()
}

func (m *Model) onQuestion() bool {
	if m.session == nil {
		return false
	}
	step, ok := m.session.Current()
	return ok && step.Kind == flow.StepQuestion
}

func (m *Model) currentStepID() string {
	if m.session == nil {
		return ""
	}
	step, _ := m.session.Current()
	return step.ID
}

// enterStep prepares the current step and arms its timers.
func (m *Model) enterStep() tea.Cmd {
	m.revealTimer.Cancel()
	m.advanceTimer.Cancel()
	m.timeoutTimer.Cancel()
	m.submitted = false

	step, ok := m.session.Current()
	if !ok {
		return m.enterCompletion()
	}
	switch step.Kind {
	case flow.StepContent:
		m.answerInput.Blur()
		m.content = m.opts.Catalog.Content(flow.ContentIDFor(step), step.Module.Label)
		m.contentView.SetContent(m.renderContentBody())
		m.contentView.GotoTop()
		delay := m.journey.Config.RevealDelayDuration()
		if delay <= 0 {
			m.revealed = true
			return nil
		}
		m.revealed = false
		return m.revealTimer.Schedule(delay)
	default:
		m.prompt = questions.Pick(m.bank, m.questionCount)
		m.questionCount++
		m.revealed = true
		m.answerInput.Reset()
		cmds := []tea.Cmd{m.answerInput.Focus()}
		if m.opts.QuestionTimeout > 0 {
			cmds = append(cmds, m.timeoutTimer.Schedule(m.opts.QuestionTimeout))
		}
		return tea.Batch(cmds...)
	}
}

func (m *Model) advanceStep() tea.Cmd {
	if m.session.Advance() {
		return m.enterStep()
	}
	return m.enterCompletion()
}

func (m *Model) journeyKey(msg tea.KeyMsg) tea.Cmd {
	if m.onQuestion() {
		return m.questionKey(msg)
	}
	switch msg.String() {
	case "enter", " ":
		if !m.revealed {
			return nil
		}
		return m.advanceStep()
	case "q", "esc":
		m.shutdown()
		return tea.Quit
	}
	var cmd tea.Cmd
	m.contentView, cmd = m.contentView.Update(msg)
	return cmd
}

func (m *Model) questionKey(msg tea.KeyMsg) tea.Cmd {
	if m.submitted {
		return nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitAnswer()
	case tea.KeyEsc:
		m.shutdown()
		return tea.Quit
	}
	var cmd tea.Cmd
	m.answerInput, cmd = m.answerInput.Update(msg)
	return cmd
}

// submitAnswer records the answer and replaces the pending question timeout
// with the short advance delay.
func (m *Model) submitAnswer() tea.Cmd {
	m.timeoutTimer.Cancel()
	answer := m.answerInput.Value()
	m.session.RecordAnswer(answer)
	m.submitted = true
	m.answerInput.Blur()
	m.log.Debug("answer submitted", "step", m.currentStepID(), "blank", strings.TrimSpace(answer) == "")
	return m.advanceTimer.Schedule(m.opts.AdvanceDelay)
}

func (m *Model) renderContentBody() string {
	return bodyStyle.Render(wrapText(m.content.Body, m.contentWidth()))
}

func (m *Model) viewJourney() string {
	step, ok := m.session.Current()
	if !ok {
		return ""
	}
	lines := []string{m.renderProgress(step), ""}
	switch step.Kind {
	case flow.StepContent:
		lines = append(lines,
			titleStyle.Render(step.Module.Icon+" "+m.content.Title),
			mutedStyle.Render(step.Module.Label+" · "+step.Module.Duration),
			"",
			m.contentView.View(),
			"",
		)
		if m.revealed {
			lines = append(lines, accentStyle.Render("Entrée pour continuer"))
		} else {
			lines = append(lines, "")
		}
	default:
		title := fmt.Sprintf("Question %d", step.ModuleIndex+1)
		if step.IsFinal {
			title = finalQuizTitle
		}
		lines = append(lines,
			titleStyle.Render(title),
			bodyStyle.Render(wrapText(m.prompt, m.contentWidth())),
			"",
			m.answerInput.View(),
			"",
		)
		if m.submitted {
			lines = append(lines, mutedStyle.Render("Réponse enregistrée."))
		} else {
			lines = append(lines, accentStyle.Render("Entrée pour valider"))
		}
	}
	return strings.Join(lines, "\n")
}

// renderProgress lists every module, or only the current one when the pace
// shows modules one at a time.
func (m *Model) renderProgress(step flow.Step) string {
	total := len(m.session.Steps())
	head := mutedStyle.Render(fmt.Sprintf("Étape %d/%d", m.session.Index()+1, total))
	if m.journey.Config.ShowOneAtATime || len(m.journey.Modules) == 0 {
		return head
	}
	parts := make([]string, 0, len(m.journey.Modules))
	for i, mod := range m.journey.Modules {
		label := mod.Icon + " " + mod.Label
		if i == step.ModuleIndex && !step.IsFinal {
			parts = append(parts, accentStyle.Render(label))
			continue
		}
		parts = append(parts, mutedStyle.Render(label))
	}
	return head + "  " + strings.Join(parts, mutedStyle.Render(" · "))
}

func (m *Model) journeyFooter() string {
	asked, answered := m.session.Stats()
	return fmt.Sprintf("%s · %d/%d réponses · échap quitter", m.mode.Label, answered, asked)
}
