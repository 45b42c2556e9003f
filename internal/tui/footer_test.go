package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/parcours/internal/model"
)

func TestSelectorFooterFormats(t *testing.T) {
	m := &Model{
		record: model.BehavioralRecord{
			MentalState:      model.StateHesitant,
			HesitationLevel:  2,
			TimeSpentSeconds: 14,
		},
	}
	out := m.selectorFooter()
	if !containsAll(out, []string{"État hésitant", "hésitation 2/3", "14s"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestSelectorFooterUnknownState(t *testing.T) {
	m := &Model{record: model.BehavioralRecord{MentalState: "curious"}}
	if out := m.selectorFooter(); !strings.Contains(out, "État curious") {
		t.Fatalf("expected raw state label, got %s", out)
	}
}

func TestEllipsizeCountsDisplayWidth(t *testing.T) {
	if got := ellipsize("Découvrir", 20); got != "Découvrir" {
		t.Fatalf("expected short text unchanged, got %q", got)
	}
	if got := ellipsize("日本語テキスト", 7); got != "日本語…" {
		t.Fatalf("unexpected cut %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
