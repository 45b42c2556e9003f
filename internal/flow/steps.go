// Package flow drives a generated journey step by step.
package flow

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/parcours/internal/model"
)

// StepKind distinguishes content from question steps.
type StepKind int

const (
	StepContent StepKind = iota
	StepQuestion
)

// FinalQuizID identifies the closing question step.
const FinalQuizID = "final_quiz"

// Step is one screen of a journey.
type Step struct {
	Kind        StepKind
	ID          string
	Module      model.Module
	ModuleIndex int
	IsFinal     bool
}

var (
	articleIDs  = []string{"article1", "article1b", "article2", "article3", "article4", "article5"}
	exerciseIDs = []string{"exercise1", "exercise2", "exercise3"}
)

// BuildSteps alternates a content step and a question step for every module
// and closes with a final quiz. A journey without modules has no steps.
func BuildSteps(j model.Journey) []Step {
	if len(j.Modules) == 0 {
		return nil
	}
	steps := make([]Step, 0, len(j.Modules)*2+1)
	for i, m := range j.Modules {
		steps = append(steps, Step{
			Kind:        StepContent,
			ID:          fmt.Sprintf("content_%s_%d", m.Type, i),
			Module:      m,
			ModuleIndex: i,
		})
		steps = append(steps, Step{
			Kind:        StepQuestion,
			ID:          fmt.Sprintf("question_%d", i),
			ModuleIndex: i,
		})
	}
	steps = append(steps, Step{
		Kind:        StepQuestion,
		ID:          FinalQuizID,
		ModuleIndex: len(j.Modules),
		IsFinal:     true,
	})
	return steps
}

// ContentIDFor maps a content step to a library entry.
func ContentIDFor(step Step) string {
	switch step.Module.Type {
	case model.ModuleArticle:
		return articleIDs[step.ModuleIndex%len(articleIDs)]
	case model.ModuleExercice:
		return exerciseIDs[step.ModuleIndex%len(exerciseIDs)]
	case model.ModuleExemple:
		return "article2"
	case model.ModuleResume:
		return "article3"
	default:
		return "article1"
	}
}

// Session walks the steps of one journey and counts answers.
type Session struct {
	steps    []Step
	index    int
	asked    int
	answered int
	done     bool
}

// NewSession starts at the first step.
func NewSession(steps []Step) *Session {
	return &Session{steps: steps, done: len(steps) == 0}
}

// Steps returns the step list.
func (s *Session) Steps() []Step {
	return s.steps
}

// Index returns the current position.
func (s *Session) Index() int {
	return s.index
}

// Current returns the active step.
func (s *Session) Current() (Step, bool) {
	if s.done || s.index >= len(s.steps) {
		return Step{}, false
	}
	return s.steps[s.index], true
}

// RecordAnswer counts an answer for the current question step. Blank
// answers count as asked only.
func (s *Session) RecordAnswer(answer string) {
	step, ok := s.Current()
	if !ok || step.Kind != StepQuestion {
		return
	}
	s.asked++
	if strings.TrimSpace(answer) != "" {
		s.answered++
	}
}

// Advance moves to the next step and reports whether the journey continues.
func (s *Session) Advance() bool {
	if s.done {
		return false
	}
	if s.index >= len(s.steps)-1 {
		s.done = true
		return false
	}
	s.index++
	return true
}

// Done reports whether the last step has been passed.
func (s *Session) Done() bool {
	return s.done
}

// Stats returns asked and answered question counts.
func (s *Session) Stats() (asked, answered int) {
	return s.asked, s.answered
}
