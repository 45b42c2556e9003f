package navigation

import (
	"testing"

	"github.com/verte-zerg/parcours/internal/model"
)

func testCatalog() []model.NavigationItem {
	return []model.NavigationItem{
		{ID: "decouvrir", Label: "Découvrir", Type: model.TypeDiscover, Complexity: model.ComplexitySimple},
		{ID: "apprendre", Label: "Apprendre", Type: model.TypeLearn, Complexity: model.ComplexityMedium},
		{ID: "exercer", Label: "S'exercer", Type: model.TypePractice, Complexity: model.ComplexityAdvanced},
	}
}

func scoreOf(t *testing.T, res Result, id string) int {
	t.Helper()
	for _, item := range res.OrderedItems {
		if item.ID == id {
			return item.RelevanceScore
		}
	}
	t.Fatalf("item %s not ranked", id)
	return 0
}

func TestRankHesitantScenario(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.MentalState = model.StateHesitant
	rec.HesitationLevel = 3

	res := Rank(testCatalog(), rec)
	if res.OrderedItems[0].ID != "decouvrir" {
		t.Fatalf("expected decouvrir first, got %s", res.OrderedItems[0].ID)
	}
	if got := res.OrderedItems[0].RelevanceScore; got != 27 {
		t.Fatalf("expected score 27, got %d", got)
	}
	if res.OrderedItems[0].Priority != model.PriorityHigh {
		t.Fatalf("expected high priority, got %s", res.OrderedItems[0].Priority)
	}
	if len(res.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(res.Recommendations))
	}
	if res.Recommendations[0].Reason != "start here to begin" {
		t.Fatalf("unexpected reason %q", res.Recommendations[0].Reason)
	}
	if res.MentalState != model.StateHesitant {
		t.Fatalf("expected mental state echoed, got %s", res.MentalState)
	}
}

func TestRankHesitantRecommendedItem(t *testing.T) {
	items := testCatalog()
	items[0].Recommended = true
	rec := model.NewBehavioralRecord()
	rec.MentalState = model.StateHesitant
	rec.HesitationLevel = 3

	res := Rank(items, rec)
	// 15 + 10 (hesitant recommended) + 12 + 8 (recommended).
	if got := scoreOf(t, res, "decouvrir"); got != 45 {
		t.Fatalf("expected 45, got %d", got)
	}
}

func TestRankStableOnTies(t *testing.T) {
	rec := model.NewBehavioralRecord()
	res := Rank(testCatalog(), rec)
	want := []string{"decouvrir", "apprendre", "exercer"}
	for i, id := range want {
		if res.OrderedItems[i].ID != id {
			t.Fatalf("expected catalog order on ties, got %v", res.OrderedItems)
		}
		if res.OrderedItems[i].RelevanceScore != 5 {
			t.Fatalf("expected exploratory score 5, got %d", res.OrderedItems[i].RelevanceScore)
		}
		if res.OrderedItems[i].Priority != model.PriorityLow {
			t.Fatalf("expected low priority, got %s", res.OrderedItems[i].Priority)
		}
	}
	if len(res.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", res.Recommendations)
	}
}

func TestRankIsDeterministic(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.MentalState = model.StateConfident
	rec.Preferences["apprendre"] = 2
	rec.HoverTimes["exercer"] = 2500
	rec.ClickPatterns = []string{"apprendre"}

	first := Rank(testCatalog(), rec)
	for i := 0; i < 10; i++ {
		again := Rank(testCatalog(), rec)
		for j := range first.OrderedItems {
			if first.OrderedItems[j] != again.OrderedItems[j] {
				t.Fatalf("ranking changed between passes: %v vs %v", first.OrderedItems, again.OrderedItems)
			}
		}
	}
}

func TestPreferenceMonotonicity(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.MentalState = model.StateFocused
	for _, item := range testCatalog() {
		before := Score(item, rec)
		bumped := rec.Clone()
		bumped.Preferences[item.ID]++
		after := Score(item, bumped)
		if after-before != 10 {
			t.Fatalf("expected +10 for %s, got %d", item.ID, after-before)
		}
	}
}

func TestSequenceBonusAndRepetitionPenalty(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.ClickPatterns = []string{"decouvrir"}
	rec.Preferences["decouvrir"] = 1

	res := Rank(testCatalog(), rec)
	if got := scoreOf(t, res, "apprendre"); got != 15 {
		t.Fatalf("expected apprendre 15, got %d", got)
	}
	if got := scoreOf(t, res, "decouvrir"); got != 12 {
		t.Fatalf("expected decouvrir 12, got %d", got)
	}
	if res.OrderedItems[0].ID != "apprendre" {
		t.Fatalf("expected apprendre first, got %s", res.OrderedItems[0].ID)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Reason != "deepen your knowledge" {
		t.Fatalf("unexpected recommendations %v", res.Recommendations)
	}
}

func TestLearnThenPracticeSequence(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.ClickPatterns = []string{"decouvrir", "apprendre"}
	if got := Score(testCatalog()[2], rec); got != 15 {
		t.Fatalf("expected exercer 15, got %d", got)
	}
}

func TestTimeSpentDiscoverBonus(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.TimeSpentSeconds = 31
	items := testCatalog()
	if got := Score(items[0], rec); got != 13 {
		t.Fatalf("expected 13, got %d", got)
	}
	rec.Preferences["decouvrir"] = 1
	if got := Score(items[0], rec); got != 15 {
		t.Fatalf("expected 15 without new-content bonus, got %d", got)
	}
}

func TestHoverBonus(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.HoverTimes["exercer"] = 2000
	if got := Score(testCatalog()[2], rec); got != 5 {
		t.Fatalf("expected no hover bonus at 2000ms, got %d", got)
	}
	rec.HoverTimes["exercer"] = 2001
	if got := Score(testCatalog()[2], rec); got != 10 {
		t.Fatalf("expected hover bonus, got %d", got)
	}
}

func TestRecommendationCap(t *testing.T) {
	rec := model.NewBehavioralRecord()
	for _, item := range testCatalog() {
		rec.Preferences[item.ID] = 3
	}
	res := Rank(testCatalog(), rec)
	if len(res.Recommendations) != MaxRecommendations {
		t.Fatalf("expected %d recommendations, got %d", MaxRecommendations, len(res.Recommendations))
	}
	for _, r := range res.Recommendations {
		if scoreOf(t, res, r.ID) < RecommendationThreshold {
			t.Fatalf("recommendation %s below threshold", r.ID)
		}
		if r.Reason != "based on your preferences" {
			t.Fatalf("unexpected reason %q", r.Reason)
		}
	}
}

func TestRankEmptyCatalog(t *testing.T) {
	res := Rank(nil, model.NewBehavioralRecord())
	if res.OrderedItems == nil || len(res.OrderedItems) != 0 {
		t.Fatalf("expected empty ranked list, got %v", res.OrderedItems)
	}
	if res.Recommendations == nil || len(res.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations, got %v", res.Recommendations)
	}
}

func TestAnnotate(t *testing.T) {
	rec := model.NewBehavioralRecord()
	rec.MentalState = model.StateHesitant
	rec.HesitationLevel = 2
	res := Rank(testCatalog(), rec)
	annotated := Annotate(res.OrderedItems, res.Recommendations)
	if len(annotated) != 3 {
		t.Fatalf("expected 3 annotated items, got %d", len(annotated))
	}
	if !annotated[0].IsRecommended || annotated[0].Reason == "" {
		t.Fatalf("expected first item to carry its recommendation")
	}
	if annotated[1].IsRecommended {
		t.Fatalf("expected second item without recommendation")
	}
}
