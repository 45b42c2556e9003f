// Package tracker records per-session user behaviour.
package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/parcours/internal/mentalstate"
	"github.com/verte-zerg/parcours/internal/model"
)

// clickWindow bounds ClickPatterns.
const clickWindow = 5

// Tracker owns the BehavioralRecord of one session. It is not safe for
// concurrent use; callers serialize events the way a UI loop does.
type Tracker struct {
	id       string
	now      func() time.Time
	record   model.BehavioralRecord
	epoch    time.Time
	started  bool
	disposed bool
	hovers   map[string]time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithSessionID sets a fixed session id.
func WithSessionID(id string) Option {
	return func(t *Tracker) {
		if id != "" {
			t.id = id
		}
	}
}

// New creates a session tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		id:     uuid.NewString(),
		now:    time.Now,
		record: model.NewBehavioralRecord(),
		hovers: map[string]time.Time{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SessionID returns the session identifier.
func (t *Tracker) SessionID() string {
	return t.id
}

// Start establishes the session epoch. Later calls keep the first epoch.
func (t *Tracker) Start() {
	if t.started || t.disposed {
		return
	}
	t.started = true
	t.epoch = t.now()
}

// Started reports whether Start has been called.
func (t *Tracker) Started() bool {
	return t.started
}

// Tick recomputes the elapsed time. It is meant to run once per second.
func (t *Tracker) Tick() {
	if !t.started || t.disposed {
		return
	}
	elapsed := int(t.now().Sub(t.epoch).Milliseconds() / 1000)
	if elapsed < t.record.TimeSpentSeconds {
		return
	}
	t.record.TimeSpentSeconds = elapsed
	t.reclassify()
}

// TrackHoverStart marks the beginning of a hover over itemID.
func (t *Tracker) TrackHoverStart(itemID string) {
	if t.disposed {
		return
	}
	t.hovers[itemID] = t.now()
}

// TrackHoverEnd attributes the hover duration to itemID. Without a pending
// start it does nothing.
func (t *Tracker) TrackHoverEnd(itemID string) {
	start, ok := t.hovers[itemID]
	if !ok {
		return
	}
	delete(t.hovers, itemID)
	d := t.now().Sub(start).Milliseconds()
	if d < 0 {
		d = 0
	}
	t.record.HoverTimes[itemID] += d
	t.reclassify()
}

// TrackClick records a click on itemID.
func (t *Tracker) TrackClick(itemID string, metadata map[string]string) {
	if t.disposed {
		return
	}
	var md map[string]string
	if len(metadata) > 0 {
		md = make(map[string]string, len(metadata))
		for k, v := range metadata {
			md[k] = v
		}
	}
	t.record.Interactions = append(t.record.Interactions, model.Interaction{
		ItemID:           itemID,
		TimestampMs:      t.now().UnixMilli(),
		TimeSpentAtClick: t.record.TimeSpentSeconds,
		Metadata:         md,
	})
	patterns := append(t.record.ClickPatterns, itemID)
	if len(patterns) > clickWindow {
		patterns = append([]string(nil), patterns[len(patterns)-clickWindow:]...)
	}
	t.record.ClickPatterns = patterns
	t.record.Preferences[itemID]++
	t.record.CurrentFocus = itemID
	t.reclassify()
}

// TrackView moves the focus to itemID.
func (t *Tracker) TrackView(itemID string) {
	if t.disposed {
		return
	}
	t.record.CurrentFocus = itemID
}

// Snapshot returns a copy of the current record.
func (t *Tracker) Snapshot() model.BehavioralRecord {
	return t.record.Clone()
}

// Dispose ends the session. Pending hovers are dropped and ticks are ignored.
func (t *Tracker) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.hovers = map[string]time.Time{}
}

// Disposed reports whether Dispose has been called.
func (t *Tracker) Disposed() bool {
	return t.disposed
}

func (t *Tracker) reclassify() {
	mentalstate.Apply(&t.record)
}
