package mentalstate

import (
	"testing"

	"github.com/verte-zerg/parcours/internal/model"
)

func TestHesitationLevelThresholds(t *testing.T) {
	cases := []struct {
		name  string
		hover map[string]int64
		want  int
	}{
		{"empty", nil, 0},
		{"exactly 1000", map[string]int64{"a": 1000}, 0},
		{"above 1000", map[string]int64{"a": 1001}, 1},
		{"above 2000", map[string]int64{"a": 2500}, 2},
		{"above 3000", map[string]int64{"a": 3001}, 3},
		{"averaged", map[string]int64{"a": 4000, "b": 0}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HesitationLevel(tc.hover); got != tc.want {
				t.Fatalf("expected level %d, got %d", tc.want, got)
			}
		})
	}
}

func TestStateForPrecedence(t *testing.T) {
	// Hesitation outranks the idle rule.
	if got := StateFor(Signals{HesitationLevel: 2, Interactions: 0, TimeSpentSeconds: 5}); got != model.StateHesitant {
		t.Fatalf("expected hesitant, got %s", got)
	}
	// Hesitation outranks rapid clicks.
	if got := StateFor(Signals{HesitationLevel: 3, Interactions: 5, TimeSpentSeconds: 5}); got != model.StateHesitant {
		t.Fatalf("expected hesitant, got %s", got)
	}
	// Rapid clicks outrank early activity.
	if got := StateFor(Signals{Interactions: 4, TimeSpentSeconds: 10}); got != model.StateFocused {
		t.Fatalf("expected focused, got %s", got)
	}
}

func TestStateForEachRule(t *testing.T) {
	cases := []struct {
		name string
		in   Signals
		want model.MentalState
	}{
		{"fresh session", Signals{}, model.StateExploratory},
		{"idle over ten seconds", Signals{TimeSpentSeconds: 11}, model.StateHesitant},
		{"idle at ten seconds", Signals{TimeSpentSeconds: 10}, model.StateExploratory},
		{"one click early", Signals{Interactions: 1, TimeSpentSeconds: 20}, model.StateConfident},
		{"four clicks at thirty", Signals{Interactions: 4, TimeSpentSeconds: 30}, model.StateConfident},
		{"clicks after a minute", Signals{Interactions: 2, TimeSpentSeconds: 60}, model.StateExploratory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StateFor(tc.in); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestApplyRewritesDerivedFields(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.HoverTimes["decouvrir"] = 2500
	rec.MentalState = model.StateConfident
	Apply(&rec)
	if rec.HesitationLevel != 2 {
		t.Fatalf("expected hesitation 2, got %d", rec.HesitationLevel)
	}
	if rec.MentalState != model.StateHesitant {
		t.Fatalf("expected hesitant, got %s", rec.MentalState)
	}
}
