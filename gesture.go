package reel

import (
	"math"
	"time"
)

// Layer is the presentation layer a surface belongs to. Only the topmost open
// layer receives input: the viewer when it is open, otherwise the expanded
// list when it is shown, otherwise the preview strip.
type Layer uint8

const (
	LayerPreview Layer = iota
	LayerList
	LayerViewer
)

// Region configures how the classifier treats gestures that start on a
// surface. Horizontal handling is fixed per region rather than inferred.
type Region struct {
	Name  string
	Layer Layer
	// DelegateHorizontal marks a horizontally scrollable container: dominant
	// horizontal motion is handed to native scrolling instead of being
	// claimed as a swipe.
	DelegateHorizontal bool
	HorizontalNav      bool
	VerticalNav        bool
	Pinch              bool
}

var (
	// RegionStrip is the compact preview strip. It scrolls horizontally and
	// uses vertical swipes to jump between categories.
	RegionStrip = Region{Name: "strip", Layer: LayerPreview, DelegateHorizontal: true, VerticalNav: true}
	// RegionViewer is the full-screen viewer.
	RegionViewer = Region{Name: "viewer", Layer: LayerViewer, HorizontalNav: true, VerticalNav: true, Pinch: true}
	// RegionList is the expanded list; it only accepts taps.
	RegionList = Region{Name: "list", Layer: LayerList}
)

// Claim reports, while a session is in progress, whether the classifier owns
// the gesture. Hosts suppress default scrolling for ClaimVertical and
// ClaimHorizontal and let it proceed for ClaimDelegated and ClaimUndecided.
type Claim uint8

const (
	ClaimUndecided Claim = iota
	ClaimVertical
	ClaimHorizontal
	ClaimDelegated
)

func (c Claim) String() string {
	switch c {
	case ClaimUndecided:
		return "undecided"
	case ClaimVertical:
		return "vertical"
	case ClaimHorizontal:
		return "horizontal"
	case ClaimDelegated:
		return "delegated"
	}
	return "unknown"
}

// Session is the per-interaction tracking state, created on start and
// discarded on end or cancel.
type Session struct {
	Region Region
	// Target is the id of the surface under the start position, if any.
	Target    string
	Start     Vec2
	Current   Vec2
	StartedAt time.Time
	UpdatedAt time.Time
	Moved     bool
	Claim     Claim
	// Dual is set once a second contact joined the session and stays set.
	Dual bool
	// InitialDist and CurrentDist are the inter-contact distances of the
	// current contact pair, measured from when SecondaryID went down.
	InitialDist float64
	CurrentDist float64
	SecondaryID int
	paired      bool
}

// Elapsed returns the time between start and the latest event.
func (s Session) Elapsed() time.Duration {
	return s.UpdatedAt.Sub(s.StartedAt)
}

// Gesture is a classification result.
type Gesture struct {
	Kind      GestureKind
	Direction Direction
	Start     Vec2
	Position  Vec2
	Region    Region
	// Target is the surface id the gesture applies to: the surface under the
	// release point for taps, the start surface otherwise.
	Target   string
	Duration time.Duration
	// Suppressed is set on a GestureNone result that was a tap swallowed by
	// the post-classification guard window.
	Suppressed bool
}

// Classifier resolves a normalized pointer stream into gestures. It holds at
// most one session; events are never buffered across interactions.
type Classifier struct {
	tapSlop    float64
	scrollSlop float64
	swipeMin   float64
	pinchDelta float64
	swipeGuard time.Duration
	pinchGuard time.Duration

	session Session
	active  bool

	swipeGuardUntil  time.Time
	swipeGuardTarget string
	pinchGuardUntil  time.Time
}

// NewClassifier creates a classifier using the thresholds in cfg.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{
		tapSlop:    cfg.TapSlop,
		scrollSlop: cfg.ScrollSlop,
		swipeMin:   cfg.SwipeMin,
		pinchDelta: cfg.PinchCloseDelta,
		swipeGuard: cfg.SwipeTapGuard,
		pinchGuard: cfg.PinchTapGuard,
	}
}

// Active reports whether a session is being tracked.
func (c *Classifier) Active() bool {
	return c.active
}

// Session returns the current session.
func (c *Classifier) Session() (Session, bool) {
	return c.session, c.active
}

// Begin starts a session at ev.Primary. Any previous session is discarded.
func (c *Classifier) Begin(ev PointerEvent, region Region, target string, now time.Time) {
	c.session = Session{
		Region:    region,
		Target:    target,
		Start:     ev.Primary,
		Current:   ev.Primary,
		StartedAt: now,
		UpdatedAt: now,
	}
	c.active = true
	if ev.Dual {
		c.enterDual(ev)
	}
}

func (c *Classifier) enterDual(ev PointerEvent) {
	d := ev.Primary.Dist(ev.Secondary)
	c.session.Dual = true
	c.session.paired = true
	c.session.SecondaryID = ev.SecondaryID
	c.session.InitialDist = d
	c.session.CurrentDist = d
}

// Move updates the session. It returns the current claim and, when the
// contacts pinched together past the threshold, a GesturePinchClose result
// that also terminates the session.
func (c *Classifier) Move(ev PointerEvent, now time.Time) (Claim, Gesture) {
	if !c.active {
		return ClaimUndecided, Gesture{}
	}
	s := &c.session
	s.Current = ev.Primary
	s.UpdatedAt = now

	switch {
	case !ev.Dual:
		s.paired = false
	case !s.paired || ev.SecondaryID != s.SecondaryID:
		// A new or replaced second contact starts a new baseline.
		c.enterDual(ev)
	default:
		s.CurrentDist = ev.Primary.Dist(ev.Secondary)
	}
	if ev.Dual && s.Region.Pinch && s.InitialDist-s.CurrentDist > c.pinchDelta {
		g := Gesture{
			Kind:     GesturePinchClose,
			Start:    s.Start,
			Position: ev.Primary,
			Region:   s.Region,
			Target:   s.Target,
			Duration: s.Elapsed(),
		}
		c.pinchGuardUntil = now.Add(c.pinchGuard)
		c.active = false
		return ClaimUndecided, g
	}

	dx := math.Abs(s.Start.X - s.Current.X)
	dy := math.Abs(s.Start.Y - s.Current.Y)

	// The claim is decided once per session from the first dominant axis.
	if s.Claim == ClaimUndecided {
		switch {
		case s.Region.DelegateHorizontal && dx > dy && dx > c.scrollSlop:
			s.Claim = ClaimDelegated
		case dy > dx && dy > c.scrollSlop:
			s.Claim = ClaimVertical
		case s.Region.HorizontalNav && dx > dy && dx > c.scrollSlop:
			s.Claim = ClaimHorizontal
		}
	}
	if dx > c.tapSlop || dy > c.tapSlop {
		s.Moved = true
	}
	return s.Claim, Gesture{}
}

// End finishes the session at ev.Primary and classifies it. releaseTarget is
// the surface id under the release position and is used to route taps.
func (c *Classifier) End(ev PointerEvent, releaseTarget string, now time.Time) Gesture {
	if !c.active {
		return Gesture{}
	}
	s := c.session
	c.active = false
	s.Current = ev.Primary
	s.UpdatedAt = now
	// A mouse release reports its own position, which may differ from the
	// last move.
	if math.Abs(s.Start.X-s.Current.X) > c.tapSlop || math.Abs(s.Start.Y-s.Current.Y) > c.tapSlop {
		s.Moved = true
	}

	g := Gesture{
		Start:    s.Start,
		Position: s.Current,
		Region:   s.Region,
		Target:   s.Target,
		Duration: s.Elapsed(),
	}

	if s.Claim == ClaimDelegated || s.Dual {
		return g
	}

	if !s.Moved {
		g.Target = releaseTarget
		if c.tapGuarded(releaseTarget, now) {
			g.Suppressed = true
			return g
		}
		g.Kind = GestureTap
		return g
	}

	dx := s.Start.X - s.Current.X
	dy := s.Start.Y - s.Current.Y
	absDx, absDy := math.Abs(dx), math.Abs(dy)

	switch {
	case absDy > absDx && absDy >= c.swipeMin && s.Region.VerticalNav:
		g.Kind = GestureVerticalSwipe
		g.Direction = directionOf(dy)
	case absDx > absDy && absDx >= c.swipeMin && s.Region.HorizontalNav:
		g.Kind = GestureHorizontalSwipe
		g.Direction = directionOf(dx)
	default:
		return g
	}

	c.swipeGuardUntil = now.Add(c.swipeGuard)
	c.swipeGuardTarget = s.Target
	return g
}

// Cancel discards the session without classification.
func (c *Classifier) Cancel() {
	c.active = false
	c.session = Session{}
}

// TapGuarded reports whether a tap on target at now would be suppressed.
func (c *Classifier) TapGuarded(target string, now time.Time) bool {
	return c.tapGuarded(target, now)
}

func (c *Classifier) tapGuarded(target string, now time.Time) bool {
	if now.Before(c.pinchGuardUntil) {
		return true
	}
	return target == c.swipeGuardTarget && now.Before(c.swipeGuardUntil)
}

// directionOf maps start-minus-end travel to a direction: positive travel
// (content pulled toward the start edge) means next.
func directionOf(delta float64) Direction {
	if delta > 0 {
		return DirectionNext
	}
	return DirectionPrevious
}
