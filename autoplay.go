package reel

import "time"

// AutoplayMode is the state of the autoplay scheduler.
type AutoplayMode uint8

const (
	// AutoplayIdle is the state before the first Start.
	AutoplayIdle AutoplayMode = iota
	// AutoplayArmed advances the preview cursor every interval.
	AutoplayArmed
	// AutoplaySuspended waits for the cooldown after the last interaction.
	AutoplaySuspended
	// AutoplayHeld is entered while the viewer is open; no advancement
	// happens regardless of suspension.
	AutoplayHeld
	// AutoplayStopped is terminal and entered on teardown.
	AutoplayStopped
)

func (m AutoplayMode) String() string {
	switch m {
	case AutoplayIdle:
		return "idle"
	case AutoplayArmed:
		return "armed"
	case AutoplaySuspended:
		return "suspended"
	case AutoplayHeld:
		return "held"
	case AutoplayStopped:
		return "stopped"
	}
	return "unknown"
}

// Autoplay is a cooperative timer driven by Tick. It has a single deadline, so
// re-arming replaces the previous schedule instead of adding a second one.
type Autoplay struct {
	interval time.Duration
	cooldown time.Duration

	mode     AutoplayMode
	next     time.Time
	resumeAt time.Time
}

// NewAutoplay creates an idle scheduler.
func NewAutoplay(interval, cooldown time.Duration) *Autoplay {
	return &Autoplay{interval: interval, cooldown: cooldown}
}

// Mode returns the current mode.
func (a *Autoplay) Mode() AutoplayMode {
	return a.mode
}

// Next returns the next advance deadline while armed.
func (a *Autoplay) Next() time.Time {
	return a.next
}

// ResumeAt returns the end of the current suspension window.
func (a *Autoplay) ResumeAt() time.Time {
	return a.resumeAt
}

// Start arms the scheduler. The first advance happens one interval after now.
func (a *Autoplay) Start(now time.Time) {
	if a.mode != AutoplayIdle {
		return
	}
	a.mode = AutoplayArmed
	a.next = now.Add(a.interval)
}

// Interact records a qualifying user interaction. The cooldown is measured
// from the most recent call, so repeated interaction keeps pushing the
// re-arm time forward. While held, the suspension is recorded and applied
// when the viewer closes.
func (a *Autoplay) Interact(now time.Time) {
	switch a.mode {
	case AutoplayStopped:
		return
	case AutoplayArmed, AutoplayIdle, AutoplaySuspended:
		a.mode = AutoplaySuspended
	}
	a.resumeAt = now.Add(a.cooldown)
}

// Hold halts advancement while the viewer is open.
func (a *Autoplay) Hold() {
	if a.mode == AutoplayStopped {
		return
	}
	a.mode = AutoplayHeld
}

// Release ends a Hold. Advancement resumes on the normal interval, never
// immediately, or stays suspended if an interaction cooldown is still running.
func (a *Autoplay) Release(now time.Time) {
	if a.mode != AutoplayHeld {
		return
	}
	if now.Before(a.resumeAt) {
		a.mode = AutoplaySuspended
		return
	}
	a.mode = AutoplayArmed
	a.next = now.Add(a.interval)
}

// Stop clears the timer permanently.
func (a *Autoplay) Stop() {
	a.mode = AutoplayStopped
	a.next = time.Time{}
}

// Tick reports whether the cursor should advance by one at now. Missed
// intervals collapse into a single advance.
func (a *Autoplay) Tick(now time.Time) bool {
	switch a.mode {
	case AutoplaySuspended:
		if now.Before(a.resumeAt) {
			return false
		}
		a.mode = AutoplayArmed
		a.next = a.resumeAt.Add(a.interval)
	case AutoplayArmed:
	default:
		return false
	}

	if now.Before(a.next) {
		return false
	}
	a.next = a.next.Add(a.interval)
	if !a.next.After(now) {
		a.next = now.Add(a.interval)
	}
	return true
}
