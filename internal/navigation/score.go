// Package navigation ranks navigation items against user behaviour.
package navigation

import (
	"sort"

	"github.com/verte-zerg/parcours/internal/model"
)

const (
	// RecommendationThreshold is the minimum score for a recommendation.
	RecommendationThreshold = 15
	// MaxRecommendations caps recommendations per pass.
	MaxRecommendations = 2
)

// Result is the outcome of one scoring pass.
type Result struct {
	OrderedItems    []model.ScoredItem     `json:"orderedItems"`
	Recommendations []model.Recommendation `json:"recommendations"`
	MentalState     model.MentalState      `json:"mentalState"`
}

// sequence bonuses: last click -> next suggested item.
var sequenceBonus = map[string]string{
	"decouvrir": "apprendre",
	"apprendre": "exercer",
}

// Score computes the relevance of item for rec.
func Score(item model.NavigationItem, rec model.BehavioralRecord) int {
	score := 0
	prefs := rec.Preferences[item.ID]

	score += prefs * 10

	if rec.HoverTimes[item.ID] > 2000 {
		score += 5
	}

	score += mentalStateBonus(item, rec.MentalState)

	if rec.TimeSpentSeconds > 30 && prefs == 0 && item.Type == model.TypeDiscover {
		score += 8
	}

	if rec.HesitationLevel >= 2 && (item.Recommended || item.Type == model.TypeDiscover) {
		score += 12
	}

	if n := len(rec.ClickPatterns); n > 0 {
		if next, ok := sequenceBonus[rec.ClickPatterns[n-1]]; ok && next == item.ID {
			score += 10
		}
	}

	if item.Recommended {
		score += 8
	}

	for _, id := range rec.ClickPatterns {
		if id == item.ID {
			score -= 3
			break
		}
	}
	return score
}

func mentalStateBonus(item model.NavigationItem, state model.MentalState) int {
	switch state {
	case model.StateHesitant:
		bonus := 0
		if item.Complexity == model.ComplexitySimple || item.Type == model.TypeDiscover {
			bonus += 15
		}
		if item.Recommended {
			bonus += 10
		}
		return bonus
	case model.StateFocused:
		if item.Type == model.TypeAction || item.Type == model.TypeLearn {
			return 15
		}
		return 0
	case model.StateConfident:
		if item.Complexity == model.ComplexityAdvanced || item.Type == model.TypePractice {
			return 15
		}
		return 0
	default:
		return 5
	}
}

// PriorityFor buckets a score.
func PriorityFor(score int) model.Priority {
	switch {
	case score >= 20:
		return model.PriorityHigh
	case score >= 10:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// Rank scores and orders items and derives recommendations. Equal scores
// keep catalog order.
func Rank(items []model.NavigationItem, rec model.BehavioralRecord) Result {
	scored := make([]model.ScoredItem, 0, len(items))
	for _, item := range items {
		s := Score(item, rec)
		scored = append(scored, model.ScoredItem{
			NavigationItem: item,
			RelevanceScore: s,
			Priority:       PriorityFor(s),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	recs := make([]model.Recommendation, 0, MaxRecommendations)
	for _, item := range scored {
		if len(recs) >= MaxRecommendations {
			break
		}
		if item.RelevanceScore < RecommendationThreshold {
			continue
		}
		recs = append(recs, model.Recommendation{
			ID:     item.ID,
			Label:  item.Label,
			Reason: ReasonFor(item.NavigationItem, rec),
		})
	}

	return Result{
		OrderedItems:    scored,
		Recommendations: recs,
		MentalState:     rec.MentalState,
	}
}

// Annotated is a ranked item with its recommendation, if any.
type Annotated struct {
	model.ScoredItem
	IsRecommended bool
	Reason        string
}

// Annotate joins ranked items with their recommendations.
func Annotate(items []model.ScoredItem, recs []model.Recommendation) []Annotated {
	byID := make(map[string]string, len(recs))
	for _, r := range recs {
		byID[r.ID] = r.Reason
	}
	out := make([]Annotated, 0, len(items))
	for _, item := range items {
		reason, ok := byID[item.ID]
		out = append(out, Annotated{ScoredItem: item, IsRecommended: ok, Reason: reason})
	}
	return out
}
