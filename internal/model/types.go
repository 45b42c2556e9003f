// Package model defines shared data structures.
package model

import "time"

// MentalState labels inferred user engagement.
type MentalState string

const (
	StateExploratory MentalState = "exploratory"
	StateFocused     MentalState = "focused"
	StateHesitant    MentalState = "hesitant"
	StateConfident   MentalState = "confident"
)

// Interaction is one recorded click.
type Interaction struct {
	ItemID           string            `json:"itemId"`
	TimestampMs      int64             `json:"timestamp"`
	TimeSpentAtClick int               `json:"timeSpent"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// BehavioralRecord is the session-scoped view of user behaviour.
// HesitationLevel and MentalState are derived from the other fields.
type BehavioralRecord struct {
	MentalState      MentalState      `json:"mentalState"`
	TimeSpentSeconds int              `json:"timeSpent"`
	Interactions     []Interaction    `json:"interactions"`
	HoverTimes       map[string]int64 `json:"hoverTimes"`
	ClickPatterns    []string         `json:"clickPatterns"`
	HesitationLevel  int              `json:"hesitationLevel"`
	Preferences      map[string]int   `json:"preferences"`
	CurrentFocus     string           `json:"currentFocus,omitempty"`
}

// NewBehavioralRecord returns an empty record in the default state.
func NewBehavioralRecord() BehavioralRecord {
	return BehavioralRecord{
		MentalState: StateExploratory,
		HoverTimes:  map[string]int64{},
		Preferences: map[string]int{},
	}
}

// Clone returns a deep copy of the record.
func (r BehavioralRecord) Clone() BehavioralRecord {
	out := r
	out.Interactions = make([]Interaction, len(r.Interactions))
	for i, in := range r.Interactions {
		out.Interactions[i] = in
		if in.Metadata != nil {
			md := make(map[string]string, len(in.Metadata))
			for k, v := range in.Metadata {
				md[k] = v
			}
			out.Interactions[i].Metadata = md
		}
	}
	out.ClickPatterns = append([]string(nil), r.ClickPatterns...)
	out.HoverTimes = make(map[string]int64, len(r.HoverTimes))
	for k, v := range r.HoverTimes {
		out.HoverTimes[k] = v
	}
	out.Preferences = make(map[string]int, len(r.Preferences))
	for k, v := range r.Preferences {
		out.Preferences[k] = v
	}
	return out
}

// Navigation item types and complexities used by the scoring rules.
const (
	TypeDiscover = "discover"
	TypeLearn    = "learn"
	TypePractice = "practice"
	TypeAction   = "action"

	ComplexitySimple   = "simple"
	ComplexityMedium   = "medium"
	ComplexityAdvanced = "advanced"
)

// NavigationItem is one entry of the static navigation catalog.
type NavigationItem struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
	Type        string `json:"type" yaml:"type"`
	Complexity  string `json:"complexity" yaml:"complexity"`
	Recommended bool   `json:"recommended" yaml:"recommended"`
}

// Priority buckets a relevance score.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ScoredItem is a NavigationItem with its relevance for one scoring pass.
type ScoredItem struct {
	NavigationItem
	RelevanceScore int      `json:"relevanceScore"`
	Priority       Priority `json:"priority"`
}

// Recommendation is a highlighted item with a human-readable reason.
type Recommendation struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// Questionnaire values. Unknown values are accepted and resolved to defaults.
const (
	LevelDebutant      = "debutant"
	LevelIntermediaire = "intermediaire"
	LevelAvance        = "avance"

	IntentionComprendre = "comprendre"
	IntentionVoir       = "voir"
	IntentionPratiquer  = "pratiquer"
	IntentionExplorer   = "explorer"

	RythmeDoucement  = "doucement"
	RythmeRapidement = "rapidement"
	RythmeAuto       = "auto"

	StyleExemples     = "exemples"
	StyleExplications = "explications"
	StyleVideos       = "videos"
	StylePratique     = "pratique"
)

// JourneyAnswers holds the four questionnaire answers.
type JourneyAnswers struct {
	Level     string `json:"level"`
	Intention string `json:"intention"`
	Rythme    string `json:"rythme"`
	Style     string `json:"style"`
}

// ModuleKind identifies one of the five content module kinds.
type ModuleKind string

const (
	ModuleArticle  ModuleKind = "article"
	ModuleVideo    ModuleKind = "video"
	ModuleExercice ModuleKind = "exercice"
	ModuleExemple  ModuleKind = "exemple"
	ModuleResume   ModuleKind = "resume"
)

// Module is one unit of learning content in a journey.
type Module struct {
	Type     ModuleKind `json:"type"`
	Label    string     `json:"label"`
	Icon     string     `json:"icon"`
	Duration string     `json:"duration"`
}

// PacingConfig controls reveal and transition timing.
type PacingConfig struct {
	TransitionDuration float64 `json:"transitionDuration"`
	RevealDelay        int     `json:"revealDelay"`
	ShowOneAtATime     bool    `json:"showOneAtATime"`
}

// RevealDelayDuration returns RevealDelay as a time.Duration.
func (p PacingConfig) RevealDelayDuration() time.Duration {
	return time.Duration(p.RevealDelay) * time.Millisecond
}

// JourneyConfig merges the answers with the selected pacing preset.
type JourneyConfig struct {
	JourneyAnswers
	PacingConfig
}

// Journey is the generated lesson plan.
type Journey struct {
	Modules     []Module      `json:"modules"`
	Config      JourneyConfig `json:"config"`
	Description string        `json:"description"`
}

// Content is a library entry shown by content steps.
type Content struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}
