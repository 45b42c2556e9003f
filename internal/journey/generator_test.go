package journey

import (
	"strings"
	"testing"

	"github.com/verte-zerg/parcours/internal/model"
)

func kindsOf(j model.Journey) []model.ModuleKind {
	out := make([]model.ModuleKind, len(j.Modules))
	for i, m := range j.Modules {
		out[i] = m.Type
	}
	return out
}

func assertKinds(t *testing.T, got, want []model.ModuleKind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestGenerateBeginnerComprendreExemples(t *testing.T) {
	answers := model.JourneyAnswers{
		Level:     model.LevelDebutant,
		Intention: model.IntentionComprendre,
		Rythme:    model.RythmeDoucement,
		Style:     model.StyleExemples,
	}
	j := Generate(answers)
	assertKinds(t, kindsOf(j), []model.ModuleKind{article, exemple, video, exercice})
	want := model.JourneyConfig{
		JourneyAnswers: answers,
		PacingConfig:   model.PacingConfig{TransitionDuration: 0.8, RevealDelay: 2000, ShowOneAtATime: true},
	}
	if j.Config != want {
		t.Fatalf("unexpected config: %+v", j.Config)
	}
	if j.Modules[1].Icon != "💡" || j.Modules[1].Duration != "2-3 min" {
		t.Fatalf("unexpected module metadata: %+v", j.Modules[1])
	}
}

func TestGenerateSequences(t *testing.T) {
	cases := []struct {
		name    string
		answers model.JourneyAnswers
		want    []model.ModuleKind
	}{
		{"comprendre explications", model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: model.IntentionComprendre, Style: model.StyleExplications}, []model.ModuleKind{article, resume, video, exercice}},
		{"comprendre explications beginner drops resume", model.JourneyAnswers{Level: model.LevelDebutant, Intention: model.IntentionComprendre, Style: model.StyleExplications}, []model.ModuleKind{article, video, exercice}},
		{"comprendre videos", model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: model.IntentionComprendre, Style: model.StyleVideos}, []model.ModuleKind{video, article, exemple, exercice}},
		{"comprendre pratique", model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: model.IntentionComprendre, Style: model.StylePratique}, []model.ModuleKind{article, exercice, video, exemple}},
		{"voir default", model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: model.IntentionVoir, Style: model.StyleVideos}, []model.ModuleKind{video, resume, exemple, exercice}},
		{"voir pratique", model.JourneyAnswers{Level: model.LevelAvance, Intention: model.IntentionVoir, Style: model.StylePratique}, []model.ModuleKind{video, exercice, resume, exemple}},
		{"pratiquer default", model.JourneyAnswers{Level: model.LevelAvance, Intention: model.IntentionPratiquer, Style: model.StyleExemples}, []model.ModuleKind{exercice, article, video, exemple}},
		{"pratiquer explications", model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: model.IntentionPratiquer, Style: model.StyleExplications}, []model.ModuleKind{exercice, resume, article, video}},
		{"explorer beginner", model.JourneyAnswers{Level: model.LevelDebutant, Intention: model.IntentionExplorer}, []model.ModuleKind{video, article, exemple, exercice}},
		{"explorer intermediate", model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: model.IntentionExplorer}, []model.ModuleKind{article, video, exercice, exemple}},
		{"explorer advanced", model.JourneyAnswers{Level: model.LevelAvance, Intention: model.IntentionExplorer}, []model.ModuleKind{exercice, exemple, article, video}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertKinds(t, kindsOf(Generate(tc.answers)), tc.want)
		})
	}
}

func TestUnknownIntentionFallsBackToExplorer(t *testing.T) {
	j := Generate(model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: "flaner"})
	assertKinds(t, kindsOf(j), []model.ModuleKind{article, video, exercice, exemple})

	j = Generate(model.JourneyAnswers{Level: "expert", Intention: ""})
	assertKinds(t, kindsOf(j), []model.ModuleKind{exercice, exemple, article, video})
}

func TestUnknownRythmeUsesAutoPreset(t *testing.T) {
	auto := model.PacingConfig{TransitionDuration: 0.6, RevealDelay: 1200, ShowOneAtATime: true}
	for _, rythme := range []string{"", "auto", "vite"} {
		j := Generate(model.JourneyAnswers{Rythme: rythme})
		if j.Config.PacingConfig != auto {
			t.Fatalf("expected auto preset for %q, got %+v", rythme, j.Config.PacingConfig)
		}
		if j.Config.Rythme != rythme {
			t.Fatalf("expected rythme echoed verbatim, got %q", j.Config.Rythme)
		}
	}
	fast := Preset(model.RythmeRapidement)
	if fast.TransitionDuration != 0.4 || fast.RevealDelay != 800 || fast.ShowOneAtATime {
		t.Fatalf("unexpected rapid preset: %+v", fast)
	}
}

func TestStyleTopUpDoesNotDuplicate(t *testing.T) {
	for _, style := range []string{model.StyleExemples, model.StyleVideos, model.StylePratique} {
		for _, intention := range []string{model.IntentionComprendre, model.IntentionVoir, model.IntentionPratiquer, model.IntentionExplorer} {
			j := Generate(model.JourneyAnswers{Level: model.LevelIntermediaire, Intention: intention, Style: style})
			seen := map[model.ModuleKind]int{}
			for _, m := range j.Modules {
				seen[m.Type]++
			}
			for kind, n := range seen {
				if n > 1 {
					t.Fatalf("%s/%s duplicated %s: %v", intention, style, kind, kindsOf(j))
				}
			}
		}
	}
}

func TestTopUpForStyleInsertsMissingModules(t *testing.T) {
	assertKinds(t, topUpForStyle([]model.ModuleKind{article, video}, model.StyleExemples), []model.ModuleKind{article, exemple, video})
	assertKinds(t, topUpForStyle([]model.ModuleKind{article}, model.StyleVideos), []model.ModuleKind{video, article})
	assertKinds(t, topUpForStyle([]model.ModuleKind{article}, model.StylePratique), []model.ModuleKind{exercice, article})
	assertKinds(t, topUpForStyle(nil, model.StyleExemples), []model.ModuleKind{exemple})
}

func TestAdvancedLevelAddsExercise(t *testing.T) {
	assertKinds(t, adjustForLevel([]model.ModuleKind{video, article}, model.LevelAvance), []model.ModuleKind{video, article, exercice})
	assertKinds(t, adjustForLevel([]model.ModuleKind{exercice, article}, model.LevelAvance), []model.ModuleKind{exercice, article})
}

func TestDescribeOrder(t *testing.T) {
	d := Describe(model.JourneyAnswers{Level: "debutant", Intention: "voir", Rythme: "auto", Style: "videos"})
	want := `Personalized journey for level debutant, intention "voir", pace auto, style videos`
	if d != want {
		t.Fatalf("expected %q, got %q", want, d)
	}
	if !strings.Contains(Generate(model.JourneyAnswers{Level: "debutant"}).Description, "level debutant") {
		t.Fatalf("expected description on generated journey")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := model.JourneyAnswers{Level: model.LevelAvance, Intention: model.IntentionVoir, Rythme: model.RythmeAuto, Style: model.StyleVideos}
	first := kindsOf(Generate(a))
	for i := 0; i < 5; i++ {
		assertKinds(t, kindsOf(Generate(a)), first)
	}
}

func TestCatalogHasFiveKinds(t *testing.T) {
	if got := len(Catalog()); got != 5 {
		t.Fatalf("expected 5 module kinds, got %d", got)
	}
	if _, ok := ModuleFor("podcast"); ok {
		t.Fatalf("expected unknown kind to be missing")
	}
}
