package reel

import "math"

// Vec2 is a screen-space position or offset in pixels. The origin is the
// top-left corner with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Phase is the lifecycle stage of a normalized pointer event.
type Phase uint8

const (
	PhaseStart  Phase = iota // first contact or button press
	PhaseMove                // contact moved while held
	PhaseEnd                 // last contact lifted or button released
	PhaseCancel              // interaction aborted by the host
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	}
	return "unknown"
}

// GestureKind identifies the classification of a completed interaction.
type GestureKind uint8

const (
	GestureNone            GestureKind = iota // sub-threshold or delegated motion
	GestureTap                                // press and release without movement
	GestureHorizontalSwipe                    // dominant horizontal motion past the swipe minimum
	GestureVerticalSwipe                      // dominant vertical motion past the swipe minimum
	GesturePinchClose                         // two contacts moved together past the pinch delta
)

func (k GestureKind) String() string {
	switch k {
	case GestureNone:
		return "none"
	case GestureTap:
		return "tap"
	case GestureHorizontalSwipe:
		return "horizontal-swipe"
	case GestureVerticalSwipe:
		return "vertical-swipe"
	case GesturePinchClose:
		return "pinch-close"
	}
	return "unknown"
}

// Direction is the navigation direction of a swipe. For vertical swipes
// DirectionNext means "up" and DirectionPrevious means "down".
type Direction int8

const (
	DirectionPrevious Direction = -1
	DirectionNone     Direction = 0
	DirectionNext     Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirectionPrevious:
		return "previous"
	case DirectionNext:
		return "next"
	}
	return "none"
}

// EventType identifies an event emitted by the Engine.
type EventType uint8

const (
	EventStorySelected EventType = iota // an entry was opened or navigated to in the viewer
	EventViewerClosed                   // the viewer left the Open state
	EventCursorChanged                  // the preview cursor moved
	EventGesture                        // the classifier produced a gesture
	eventTypeCount
)

func (t EventType) String() string {
	switch t {
	case EventStorySelected:
		return "story-selected"
	case EventViewerClosed:
		return "viewer-closed"
	case EventCursorChanged:
		return "cursor-changed"
	case EventGesture:
		return "gesture"
	}
	return "unknown"
}

// CloseReason records why the viewer closed.
type CloseReason string

const (
	CloseExplicit CloseReason = "explicit" // CloseViewer called by the host
	ClosePinch    CloseReason = "pinch"    // pinch-to-dismiss
	CloseSwipe    CloseReason = "swipe"    // downward swipe in the viewer
	CloseRemoved  CloseReason = "removed"  // the open entry disappeared from the source
	CloseTeardown CloseReason = "teardown" // the engine was closed
)

// Event is delivered to registered handlers and to the EventStore.
type Event struct {
	Type    EventType
	Key     EntryKey // identity of the entry involved, zero for gesture-only events
	Cursor  int      // flattened index position, CursorEmpty when not applicable
	Reason  CloseReason
	Gesture Gesture
}
