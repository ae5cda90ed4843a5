package reel

// Touch is one touch contact in a raw input frame.
type Touch struct {
	ID   int
	X, Y float64
}

// RawFrame is the pointer state sampled once per frame from the host: the
// mouse button and cursor, any touch contacts, wheel motion, and a cancel
// signal (for example a touch-cancel from the platform).
type RawFrame struct {
	MouseDown      bool
	MouseX, MouseY float64
	Touches        []Touch
	WheelX, WheelY float64
	Cancel         bool
}

// InputSource supplies one RawFrame per engine update.
type InputSource interface {
	Poll() RawFrame
}

// PointerEvent is the canonical event produced by the Normalizer. Secondary and
// SecondaryID are valid only when Dual is true. SecondaryID changes when the
// second contact is replaced by another one.
type PointerEvent struct {
	Phase       Phase
	Primary     Vec2
	Secondary   Vec2
	SecondaryID int
	Dual        bool
}

type pointerSource uint8

const (
	sourceNone pointerSource = iota
	sourceMouse
	sourceTouch
)

// Normalizer converts raw mouse and touch frames into a uniform
// start/move/end/cancel stream. It does no interpretation. The first touch
// contact of an interaction stays the primary point for its whole lifetime;
// a second contact arriving mid-session turns the stream into two-point mode
// without moving the start reference.
type Normalizer struct {
	source       pointerSource
	primaryID    int
	secondaryID  int
	hasSecondary bool
	last         Vec2
	lastSecond   Vec2
	// waitClear is set when the primary contact lifted while others stayed
	// down; no new session starts until every contact has lifted.
	waitClear bool
}

// Active reports whether an interaction is in progress.
func (n *Normalizer) Active() bool {
	return n.source != sourceNone
}

// Reset drops any in-progress interaction without emitting events.
func (n *Normalizer) Reset() {
	*n = Normalizer{}
}

// Normalize appends the events produced by frame f to buf and returns it.
func (n *Normalizer) Normalize(f RawFrame, buf []PointerEvent) []PointerEvent {
	if f.Cancel {
		if n.source != sourceNone {
			buf = append(buf, n.event(PhaseCancel))
		}
		n.Reset()
		n.waitClear = len(f.Touches) > 0 || f.MouseDown
		return buf
	}

	switch n.source {
	case sourceNone:
		return n.begin(f, buf)
	case sourceTouch:
		return n.trackTouch(f, buf)
	case sourceMouse:
		return n.trackMouse(f, buf)
	}
	return buf
}

func (n *Normalizer) begin(f RawFrame, buf []PointerEvent) []PointerEvent {
	if n.waitClear {
		if len(f.Touches) > 0 || f.MouseDown {
			return buf
		}
		n.waitClear = false
	}

	// Touch wins over the mouse when both report contact in the same frame.
	if len(f.Touches) > 0 {
		t := f.Touches[0]
		n.source = sourceTouch
		n.primaryID = t.ID
		n.last = Vec2{t.X, t.Y}
		if len(f.Touches) > 1 {
			s := f.Touches[1]
			n.hasSecondary = true
			n.secondaryID = s.ID
			n.lastSecond = Vec2{s.X, s.Y}
		}
		return append(buf, n.event(PhaseStart))
	}
	if f.MouseDown {
		n.source = sourceMouse
		n.last = Vec2{f.MouseX, f.MouseY}
		return append(buf, n.event(PhaseStart))
	}
	return buf
}

func (n *Normalizer) trackMouse(f RawFrame, buf []PointerEvent) []PointerEvent {
	pos := Vec2{f.MouseX, f.MouseY}
	if !f.MouseDown {
		n.last = pos
		buf = append(buf, n.event(PhaseEnd))
		n.Reset()
		return buf
	}
	if pos != n.last {
		n.last = pos
		buf = append(buf, n.event(PhaseMove))
	}
	return buf
}

func (n *Normalizer) trackTouch(f RawFrame, buf []PointerEvent) []PointerEvent {
	primary, ok := findTouch(f.Touches, n.primaryID)
	if !ok {
		// Touch contacts vanish on release; the end position is the last
		// one observed.
		buf = append(buf, n.event(PhaseEnd))
		remaining := len(f.Touches) > 0
		n.Reset()
		n.waitClear = remaining
		return buf
	}

	changed := false
	if pos := (Vec2{primary.X, primary.Y}); pos != n.last {
		n.last = pos
		changed = true
	}

	if n.hasSecondary {
		if s, ok := findTouch(f.Touches, n.secondaryID); ok {
			if pos := (Vec2{s.X, s.Y}); pos != n.lastSecond {
				n.lastSecond = pos
				changed = true
			}
		} else {
			n.hasSecondary = false
			changed = true
		}
	}
	if !n.hasSecondary {
		for _, t := range f.Touches {
			if t.ID != n.primaryID {
				n.hasSecondary = true
				n.secondaryID = t.ID
				n.lastSecond = Vec2{t.X, t.Y}
				changed = true
				break
			}
		}
	}

	if changed {
		buf = append(buf, n.event(PhaseMove))
	}
	return buf
}

func (n *Normalizer) event(phase Phase) PointerEvent {
	ev := PointerEvent{Phase: phase, Primary: n.last}
	if n.hasSecondary {
		ev.Dual = true
		ev.Secondary = n.lastSecond
		ev.SecondaryID = n.secondaryID
	}
	return ev
}

func findTouch(touches []Touch, id int) (Touch, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}
