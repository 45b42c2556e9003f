package flow

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TimerMsg is delivered when a scheduled timer fires.
type TimerMsg struct {
	Name string
	Gen  uint64
	At   time.Time
}

// Timer is a cancelable one-shot callback for Bubble Tea programs. Each
// Schedule supersedes the previous one; a fired message whose generation is
// stale is ignored by Fires.
type Timer struct {
	name    string
	gen     uint64
	pending bool
}

// NewTimer returns a named timer.
func NewTimer(name string) *Timer {
	return &Timer{name: name}
}

// Schedule arms the timer and returns the command that fires it after d.
func (t *Timer) Schedule(d time.Duration) tea.Cmd {
	t.gen++
	t.pending = true
	gen, name := t.gen, t.name
	return tea.Tick(d, func(at time.Time) tea.Msg {
		return TimerMsg{Name: name, Gen: gen, At: at}
	})
}

// Cancel invalidates the pending firing. Calling it with nothing pending is
// a no-op.
func (t *Timer) Cancel() {
	if !t.pending {
		return
	}
	t.gen++
	t.pending = false
}

// Pending reports whether a firing is outstanding.
func (t *Timer) Pending() bool {
	return t.pending
}

// Msg returns the message the current firing will deliver.
func (t *Timer) Msg() TimerMsg {
	return TimerMsg{Name: t.name, Gen: t.gen}
}

// Fires reports whether msg is the current firing of this timer and
// consumes it.
func (t *Timer) Fires(msg TimerMsg) bool {
	if msg.Name != t.name || msg.Gen != t.gen || !t.pending {
		return false
	}
	t.pending = false
	return true
}
