// Package journey builds personalized lesson plans from questionnaire answers.
package journey

import (
	"fmt"

	"github.com/verte-zerg/parcours/internal/model"
)

var catalog = map[model.ModuleKind]model.Module{
	model.ModuleArticle:  {Type: model.ModuleArticle, Label: "Article", Icon: "📖", Duration: "5-10 min"},
	model.ModuleVideo:    {Type: model.ModuleVideo, Label: "Vidéo", Icon: "🎬", Duration: "3-5 min"},
	model.ModuleExercice: {Type: model.ModuleExercice, Label: "Exercice", Icon: "💪", Duration: "10-15 min"},
	model.ModuleExemple:  {Type: model.ModuleExemple, Label: "Exemple", Icon: "💡", Duration: "2-3 min"},
	model.ModuleResume:   {Type: model.ModuleResume, Label: "Résumé", Icon: "📝", Duration: "2-5 min"},
}

var presets = map[string]model.PacingConfig{
	model.RythmeDoucement:  {TransitionDuration: 0.8, RevealDelay: 2000, ShowOneAtATime: true},
	model.RythmeRapidement: {TransitionDuration: 0.4, RevealDelay: 800, ShowOneAtATime: false},
	model.RythmeAuto:       {TransitionDuration: 0.6, RevealDelay: 1200, ShowOneAtATime: true},
}

// ModuleFor returns the catalog entry for kind.
func ModuleFor(kind model.ModuleKind) (model.Module, bool) {
	m, ok := catalog[kind]
	return m, ok
}

// Catalog returns the five module kinds in a fixed order.
func Catalog() []model.Module {
	kinds := []model.ModuleKind{
		model.ModuleArticle,
		model.ModuleVideo,
		model.ModuleExercice,
		model.ModuleExemple,
		model.ModuleResume,
	}
	out := make([]model.Module, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, catalog[k])
	}
	return out
}

// Preset returns the pacing preset for rythme. Unknown values use auto.
func Preset(rythme string) model.PacingConfig {
	if p, ok := presets[rythme]; ok {
		return p
	}
	return presets[model.RythmeAuto]
}

// Generate builds a journey. It never fails: unknown answers fall back to
// the default branches.
func Generate(answers model.JourneyAnswers) model.Journey {
	kinds := baseSequence(answers)
	kinds = adjustForLevel(kinds, answers.Level)
	kinds = topUpForStyle(kinds, answers.Style)

	modules := make([]model.Module, 0, len(kinds))
	for _, k := range kinds {
		modules = append(modules, catalog[k])
	}
	return model.Journey{
		Modules: modules,
		Config: model.JourneyConfig{
			JourneyAnswers: answers,
			PacingConfig:   Preset(answers.Rythme),
		},
		Description: Describe(answers),
	}
}

// Describe renders the answers as a sentence, in level/intention/pace/style order.
func Describe(answers model.JourneyAnswers) string {
	return fmt.Sprintf("Personalized journey for level %s, intention %q, pace %s, style %s",
		answers.Level, answers.Intention, answers.Rythme, answers.Style)
}

const (
	article  = model.ModuleArticle
	video    = model.ModuleVideo
	exercice = model.ModuleExercice
	exemple  = model.ModuleExemple
	resume   = model.ModuleResume
)

func baseSequence(a model.JourneyAnswers) []model.ModuleKind {
	switch a.Intention {
	case model.IntentionComprendre:
		switch a.Style {
		case model.StyleExemples:
			return []model.ModuleKind{article, exemple, video, exercice}
		case model.StyleExplications:
			return []model.ModuleKind{article, resume, video, exercice}
		case model.StyleVideos:
			return []model.ModuleKind{video, article, exemple, exercice}
		default:
			return []model.ModuleKind{article, exercice, video, exemple}
		}
	case model.IntentionVoir:
		if a.Style == model.StylePratique {
			return []model.ModuleKind{video, exercice, resume, exemple}
		}
		return []model.ModuleKind{video, resume, exemple, exercice}
	case model.IntentionPratiquer:
		if a.Style == model.StyleExplications {
			return []model.ModuleKind{exercice, resume, article, video}
		}
		return []model.ModuleKind{exercice, article, video, exemple}
	default:
		switch a.Level {
		case model.LevelDebutant:
			return []model.ModuleKind{video, article, exemple, exercice}
		case model.LevelIntermediaire:
			return []model.ModuleKind{article, video, exercice, exemple}
		default:
			return []model.ModuleKind{exercice, exemple, article, video}
		}
	}
}

func adjustForLevel(kinds []model.ModuleKind, level string) []model.ModuleKind {
	switch level {
	case model.LevelDebutant:
		out := kinds[:0]
		for _, k := range kinds {
			if k != resume {
				out = append(out, k)
			}
		}
		return out
	case model.LevelAvance:
		if !contains(kinds, exercice) {
			return append(kinds, exercice)
		}
	}
	return kinds
}

func topUpForStyle(kinds []model.ModuleKind, style string) []model.ModuleKind {
	if style == model.StyleExemples && !contains(kinds, exemple) {
		kinds = insertAt(kinds, 1, exemple)
	}
	if style == model.StyleVideos && !contains(kinds, video) {
		kinds = insertAt(kinds, 0, video)
	}
	if style == model.StylePratique && !contains(kinds, exercice) {
		kinds = insertAt(kinds, 0, exercice)
	}
	return kinds
}

func insertAt(kinds []model.ModuleKind, idx int, k model.ModuleKind) []model.ModuleKind {
	if idx > len(kinds) {
		idx = len(kinds)
	}
	out := make([]model.ModuleKind, 0, len(kinds)+1)
	out = append(out, kinds[:idx]...)
	out = append(out, k)
	return append(out, kinds[idx:]...)
}

func contains(kinds []model.ModuleKind, k model.ModuleKind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}
