package navigation

import (
	"strings"

	"github.com/verte-zerg/parcours/internal/model"
)

// Policy decides whether a ranked item is shown at position index.
type Policy interface {
	ShouldShow(item model.ScoredItem, rec model.BehavioralRecord, index int) bool
}

// AlwaysShow shows every item. It is the active policy.
type AlwaysShow struct{}

// ShouldShow implements Policy.
func (AlwaysShow) ShouldShow(model.ScoredItem, model.BehavioralRecord, int) bool {
	return true
}

// StagedReveal reveals items progressively: the first two at once, a third
// at session start, then one by one at a pace set by the mental state.
// It is opt-in through configuration.
type StagedReveal struct{}

// ShouldShow implements Policy.
func (StagedReveal) ShouldShow(_ model.ScoredItem, rec model.BehavioralRecord, index int) bool {
	if index < 2 {
		return true
	}
	elapsed := float64(rec.TimeSpentSeconds)
	if elapsed < 1 && index < 3 {
		return true
	}
	step := float64(index - 2)
	switch rec.MentalState {
	case model.StateHesitant:
		return elapsed > step*3
	case model.StateConfident:
		return elapsed > step*1.5
	default:
		return elapsed > step*2
	}
}

// PolicyFor resolves a policy by name. Unknown names fall back to AlwaysShow.
func PolicyFor(name string) Policy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "staged":
		return StagedReveal{}
	default:
		return AlwaysShow{}
	}
}

// Visible filters ranked items through policy, keeping order.
func Visible(items []model.ScoredItem, rec model.BehavioralRecord, policy Policy) []model.ScoredItem {
	if policy == nil {
		policy = AlwaysShow{}
	}
	out := make([]model.ScoredItem, 0, len(items))
	for i, item := range items {
		if policy.ShouldShow(item, rec, i) {
			out = append(out, item)
		}
	}
	return out
}
