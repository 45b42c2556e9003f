package navigation

import "github.com/verte-zerg/parcours/internal/model"

// ReasonRule attaches a reason to a recommendation when Match holds.
type ReasonRule struct {
	Name   string
	Match  func(model.NavigationItem, model.BehavioralRecord) bool
	Reason string
}

// DefaultReason is used when no rule matches.
const DefaultReason = "recommended for you"

// ReasonRules is evaluated in order; the first match wins.
var ReasonRules = []ReasonRule{
	{
		Name:   "preference",
		Match:  func(it model.NavigationItem, r model.BehavioralRecord) bool { return r.Preferences[it.ID] != 0 },
		Reason: "based on your preferences",
	},
	{
		Name:   "hesitant",
		Match:  func(_ model.NavigationItem, r model.BehavioralRecord) bool { return r.MentalState == model.StateHesitant },
		Reason: "start here to begin",
	},
	{
		Name:   "focused",
		Match:  func(_ model.NavigationItem, r model.BehavioralRecord) bool { return r.MentalState == model.StateFocused },
		Reason: "ideal for your current goal",
	},
	{
		Name: "new-content",
		Match: func(it model.NavigationItem, r model.BehavioralRecord) bool {
			return r.TimeSpentSeconds > 30 && r.Preferences[it.ID] == 0
		},
		Reason: "new content to discover",
	},
	{
		Name:   "discover",
		Match:  func(it model.NavigationItem, _ model.BehavioralRecord) bool { return it.Type == model.TypeDiscover },
		Reason: "ideal for exploring",
	},
	{
		Name:   "learn",
		Match:  func(it model.NavigationItem, _ model.BehavioralRecord) bool { return it.Type == model.TypeLearn },
		Reason: "deepen your knowledge",
	},
	{
		Name:   "practice",
		Match:  func(it model.NavigationItem, _ model.BehavioralRecord) bool { return it.Type == model.TypePractice },
		Reason: "put it into practice",
	},
}

// ReasonFor returns the first matching reason for item.
func ReasonFor(item model.NavigationItem, rec model.BehavioralRecord) string {
	for _, rule := range ReasonRules {
		if rule.Match(item, rec) {
			return rule.Reason
		}
	}
	return DefaultReason
}
