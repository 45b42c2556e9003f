// Package mentalstate derives hesitation and mental state from behaviour.
package mentalstate

import "github.com/verte-zerg/parcours/internal/model"

// Signals are the inputs of the state cascade.
type Signals struct {
	HesitationLevel  int
	Interactions     int
	TimeSpentSeconds int
}

// Rule maps a predicate over Signals to a state.
type Rule struct {
	Name  string
	Match func(Signals) bool
	State model.MentalState
}

// Rules is evaluated in order; the first match wins. Several rules can hold
// at once, so the order is significant.
var Rules = []Rule{
	{
		Name:  "high-hesitation",
		Match: func(s Signals) bool { return s.HesitationLevel >= 2 },
		State: model.StateHesitant,
	},
	{
		Name:  "rapid-clicks",
		Match: func(s Signals) bool { return s.Interactions > 3 && s.TimeSpentSeconds < 30 },
		State: model.StateFocused,
	},
	{
		Name:  "idle",
		Match: func(s Signals) bool { return s.Interactions == 0 && s.TimeSpentSeconds > 10 },
		State: model.StateHesitant,
	},
	{
		Name:  "early-activity",
		Match: func(s Signals) bool { return s.Interactions > 0 && s.TimeSpentSeconds < 60 },
		State: model.StateConfident,
	},
}

// HesitationLevel buckets the average hover duration into 0..3.
func HesitationLevel(hoverTimes map[string]int64) int {
	var total int64
	for _, v := range hoverTimes {
		total += v
	}
	count := len(hoverTimes)
	if count < 1 {
		count = 1
	}
	avg := float64(total) / float64(count)
	switch {
	case avg > 3000:
		return 3
	case avg > 2000:
		return 2
	case avg > 1000:
		return 1
	default:
		return 0
	}
}

// StateFor runs the rule cascade.
func StateFor(s Signals) model.MentalState {
	for _, rule := range Rules {
		if rule.Match(s) {
			return rule.State
		}
	}
	return model.StateExploratory
}

// Classify computes the hesitation level and mental state.
func Classify(hoverTimes map[string]int64, interactions, timeSpentSeconds int) (int, model.MentalState) {
	level := HesitationLevel(hoverTimes)
	state := StateFor(Signals{
		HesitationLevel:  level,
		Interactions:     interactions,
		TimeSpentSeconds: timeSpentSeconds,
	})
	return level, state
}

// Apply rewrites the derived fields of rec in place.
func Apply(rec *model.BehavioralRecord) {
	rec.HesitationLevel, rec.MentalState = Classify(rec.HoverTimes, len(rec.Interactions), rec.TimeSpentSeconds)
}
