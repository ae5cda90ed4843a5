package reel

import (
	"testing"
	"time"
)

// runSession drives c through a single-point session over pts, one frame
// apart, and returns the classification and the end time.
func runSession(c *Classifier, region Region, target string, start time.Time, pts ...Vec2) (Gesture, time.Time) {
	c.Begin(PointerEvent{Phase: PhaseStart, Primary: pts[0]}, region, target, start)
	now := start
	for _, p := range pts[1 : len(pts)-1] {
		now = now.Add(frameStep)
		c.Move(PointerEvent{Phase: PhaseMove, Primary: p}, now)
	}
	now = now.Add(frameStep)
	return c.End(PointerEvent{Phase: PhaseEnd, Primary: pts[len(pts)-1]}, target, now), now
}

// line returns frames+1 points from a to b.
func line(a, b Vec2, frames int) []Vec2 {
	pts := make([]Vec2, frames+1)
	for i := range pts {
		f := float64(i) / float64(frames)
		pts[i] = Vec2{a.X + (b.X-a.X)*f, a.Y + (b.Y-a.Y)*f}
	}
	return pts
}

func TestClassifySingleTouch(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		from   Vec2
		to     Vec2
		kind   GestureKind
		dir    Direction
	}{
		{"tap", RegionViewer, Vec2{100, 100}, Vec2{103, 102}, GestureTap, DirectionNone},
		{"tap at slop", RegionViewer, Vec2{100, 100}, Vec2{105, 105}, GestureTap, DirectionNone},
		{"tap on list", RegionList, Vec2{100, 100}, Vec2{101, 100}, GestureTap, DirectionNone},
		{"swipe up", RegionViewer, Vec2{200, 400}, Vec2{205, 300}, GestureVerticalSwipe, DirectionNext},
		{"swipe down", RegionViewer, Vec2{200, 300}, Vec2{195, 400}, GestureVerticalSwipe, DirectionPrevious},
		{"swipe left", RegionViewer, Vec2{300, 400}, Vec2{200, 410}, GestureHorizontalSwipe, DirectionNext},
		{"swipe right", RegionViewer, Vec2{200, 400}, Vec2{300, 390}, GestureHorizontalSwipe, DirectionPrevious},
		{"swipe at minimum", RegionViewer, Vec2{200, 400}, Vec2{200, 350}, GestureVerticalSwipe, DirectionNext},
		{"below minimum", RegionViewer, Vec2{200, 400}, Vec2{200, 351}, GestureNone, DirectionNone},
		{"diagonal", RegionViewer, Vec2{200, 400}, Vec2{300, 300}, GestureNone, DirectionNone},
		{"horizontal on list", RegionList, Vec2{300, 400}, Vec2{100, 400}, GestureNone, DirectionNone},
		{"vertical on list", RegionList, Vec2{300, 400}, Vec2{300, 200}, GestureNone, DirectionNone},
		{"horizontal on strip", RegionStrip, Vec2{300, 50}, Vec2{100, 50}, GestureNone, DirectionNone},
		{"vertical on strip", RegionStrip, Vec2{300, 100}, Vec2{300, 20}, GestureVerticalSwipe, DirectionNext},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(DefaultConfig())
			g, _ := runSession(c, tt.region, "s", t0, line(tt.from, tt.to, 4)...)
			if g.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", g.Kind, tt.kind)
			}
			if g.Direction != tt.dir {
				t.Errorf("Direction = %v, want %v", g.Direction, tt.dir)
			}
			if c.Active() {
				t.Error("session still active after End")
			}
		})
	}
}

func TestClassifyReleaseWithoutMove(t *testing.T) {
	// A mouse release can jump straight to a far position.
	c := NewClassifier(DefaultConfig())
	g, _ := runSession(c, RegionViewer, "viewer", t0, Vec2{300, 400}, Vec2{200, 400})
	if g.Kind != GestureHorizontalSwipe || g.Direction != DirectionNext {
		t.Errorf("got %v %v, want horizontal-swipe next", g.Kind, g.Direction)
	}
}

func TestClassifyClaim(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		to     Vec2
		want   Claim
	}{
		{"undecided", RegionViewer, Vec2{108, 100}, ClaimUndecided},
		{"viewer horizontal", RegionViewer, Vec2{120, 102}, ClaimHorizontal},
		{"viewer vertical", RegionViewer, Vec2{102, 130}, ClaimVertical},
		{"strip horizontal delegates", RegionStrip, Vec2{130, 102}, ClaimDelegated},
		{"strip vertical", RegionStrip, Vec2{101, 80}, ClaimVertical},
		{"list horizontal", RegionList, Vec2{140, 100}, ClaimUndecided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(DefaultConfig())
			c.Begin(PointerEvent{Primary: Vec2{100, 100}}, tt.region, "", t0)
			claim, g := c.Move(PointerEvent{Phase: PhaseMove, Primary: tt.to}, t0.Add(frameStep))
			if claim != tt.want {
				t.Errorf("claim = %v, want %v", claim, tt.want)
			}
			if g.Kind != GestureNone {
				t.Errorf("Move returned %v", g.Kind)
			}
		})
	}
}

func TestClassifyClaimIsSticky(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	c.Begin(PointerEvent{Primary: Vec2{100, 100}}, RegionStrip, "", t0)
	claim, _ := c.Move(PointerEvent{Primary: Vec2{130, 100}}, t0.Add(frameStep))
	if claim != ClaimDelegated {
		t.Fatalf("claim = %v, want delegated", claim)
	}
	// Turning vertical afterwards does not re-decide.
	claim, _ = c.Move(PointerEvent{Primary: Vec2{130, 250}}, t0.Add(2*frameStep))
	if claim != ClaimDelegated {
		t.Errorf("claim = %v, want delegated", claim)
	}
	g := c.End(PointerEvent{Primary: Vec2{130, 250}}, "", t0.Add(3*frameStep))
	if g.Kind != GestureNone {
		t.Errorf("delegated session classified as %v", g.Kind)
	}
}

func TestClassifyTapTargetsReleaseSurface(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	c.Begin(PointerEvent{Primary: Vec2{10, 10}}, RegionStrip, "strip/0", t0)
	g := c.End(PointerEvent{Primary: Vec2{12, 10}}, "strip/1", t0.Add(frameStep))
	if g.Kind != GestureTap || g.Target != "strip/1" {
		t.Errorf("got %v on %q, want tap on strip/1", g.Kind, g.Target)
	}
}

func pinchEvent(cx, cy, dist float64) PointerEvent {
	return PointerEvent{
		Phase:     PhaseMove,
		Primary:   Vec2{cx - dist/2, cy},
		Secondary: Vec2{cx + dist/2, cy},
		Dual:      true,
	}
}

func TestClassifyPinch(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		from   float64
		to     float64
		want   GestureKind
	}{
		{"close", RegionViewer, 200, 140, GesturePinchClose},
		{"exactly delta", RegionViewer, 200, 150, GestureNone},
		{"spread", RegionViewer, 140, 300, GestureNone},
		{"strip has no pinch", RegionStrip, 200, 100, GestureNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(DefaultConfig())
			start := pinchEvent(240, 400, tt.from)
			start.Phase = PhaseStart
			c.Begin(start, tt.region, "viewer", t0)

			var got GestureKind
			for i := 1; i <= 4; i++ {
				d := tt.from + (tt.to-tt.from)*float64(i)/4
				_, g := c.Move(pinchEvent(240, 400, d), t0.Add(time.Duration(i)*frameStep))
				if g.Kind != GestureNone {
					got = g.Kind
					break
				}
			}
			if got != tt.want {
				t.Errorf("Kind = %v, want %v", got, tt.want)
			}
			if tt.want == GesturePinchClose && c.Active() {
				t.Error("pinch close should end the session")
			}
			if tt.want == GestureNone {
				end := c.End(pinchEvent(240, 400, tt.to), "viewer", t0.Add(time.Second))
				if end.Kind != GestureNone {
					t.Errorf("two-point session ended as %v", end.Kind)
				}
			}
		})
	}
}

func TestClassifySecondContactMidSession(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	c.Begin(PointerEvent{Primary: Vec2{140, 400}}, RegionViewer, "viewer", t0)
	// Second finger arrives 200px away; the start reference is unchanged.
	c.Move(pinchEvent(240, 400, 200), t0.Add(frameStep))
	s, _ := c.Session()
	if !s.Dual || s.InitialDist != 200 || s.Start != (Vec2{140, 400}) {
		t.Fatalf("session = %+v", s)
	}
	_, g := c.Move(pinchEvent(240, 400, 120), t0.Add(2*frameStep))
	if g.Kind != GesturePinchClose {
		t.Errorf("Kind = %v, want pinch-close", g.Kind)
	}
}

func TestClassifyReplacedSecondContact(t *testing.T) {
	pair := func(id int, x float64) PointerEvent {
		return PointerEvent{
			Primary:     Vec2{100, 400},
			Secondary:   Vec2{x, 400},
			SecondaryID: id,
			Dual:        true,
		}
	}
	single := PointerEvent{Primary: Vec2{100, 400}}

	tests := []struct {
		name  string
		moves []PointerEvent
	}{
		{"lift then land", []PointerEvent{single, pair(3, 200)}},
		{"swap in one frame", []PointerEvent{pair(3, 200)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(DefaultConfig())
			start := pair(2, 300)
			start.Phase = PhaseStart
			c.Begin(start, RegionViewer, "viewer", t0)

			now := t0
			for _, ev := range tt.moves {
				now = now.Add(frameStep)
				ev.Phase = PhaseMove
				if _, g := c.Move(ev, now); g.Kind != GestureNone {
					t.Fatalf("Kind = %v, want none", g.Kind)
				}
			}
			s, _ := c.Session()
			if s.InitialDist != 100 || s.SecondaryID != 3 {
				t.Errorf("InitialDist = %v, SecondaryID = %d, want 100, 3", s.InitialDist, s.SecondaryID)
			}

			// The new pair still pinches closed against its own baseline.
			_, g := c.Move(pair(3, 140), now.Add(frameStep))
			if g.Kind != GesturePinchClose {
				t.Errorf("Kind = %v, want pinch-close", g.Kind)
			}
		})
	}
}

func TestSwipeTapGuard(t *testing.T) {
	tests := []struct {
		name   string
		after  time.Duration
		target string
		want   GestureKind
	}{
		{"inside window", 100 * time.Millisecond, "viewer", GestureNone},
		{"after window", 200 * time.Millisecond, "viewer", GestureTap},
		{"other target", 100 * time.Millisecond, "strip/1", GestureTap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(DefaultConfig())
			g, end := runSession(c, RegionViewer, "viewer", t0, line(Vec2{300, 400}, Vec2{150, 400}, 4)...)
			if g.Kind != GestureHorizontalSwipe {
				t.Fatalf("setup swipe = %v", g.Kind)
			}
			at := end.Add(tt.after)
			c.Begin(PointerEvent{Primary: Vec2{240, 400}}, RegionViewer, tt.target, at.Add(-frameStep))
			tap := c.End(PointerEvent{Primary: Vec2{240, 400}}, tt.target, at)
			if tap.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", tap.Kind, tt.want)
			}
			if tt.want == GestureNone && !tap.Suppressed {
				t.Error("suppressed tap should be flagged")
			}
		})
	}
}

func TestPinchTapGuard(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	start := pinchEvent(240, 400, 200)
	c.Begin(start, RegionViewer, "viewer", t0)
	_, g := c.Move(pinchEvent(240, 400, 100), t0.Add(frameStep))
	if g.Kind != GesturePinchClose {
		t.Fatalf("setup pinch = %v", g.Kind)
	}
	closedAt := t0.Add(frameStep)

	// The guard covers every target.
	if !c.TapGuarded("strip/3", closedAt.Add(500*time.Millisecond)) {
		t.Error("tap 500ms after pinch should be guarded")
	}
	if c.TapGuarded("strip/3", closedAt.Add(time.Second)) {
		t.Error("tap 1s after pinch should not be guarded")
	}
}

func TestClassifierCancel(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	c.Begin(PointerEvent{Primary: Vec2{10, 10}}, RegionViewer, "viewer", t0)
	c.Cancel()
	if c.Active() {
		t.Fatal("Active after Cancel")
	}
	if g := c.End(PointerEvent{Primary: Vec2{10, 10}}, "viewer", t0.Add(frameStep)); g.Kind != GestureNone {
		t.Errorf("End after Cancel = %v, want none", g.Kind)
	}
}

func TestClassifierCustomThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SwipeMin = 120
	c := NewClassifier(cfg)
	g, _ := runSession(c, RegionViewer, "", t0, line(Vec2{200, 400}, Vec2{200, 300}, 4)...)
	if g.Kind != GestureNone {
		t.Errorf("100px with SwipeMin 120 = %v, want none", g.Kind)
	}
}

func TestClaimString(t *testing.T) {
	tests := []struct {
		c    Claim
		want string
	}{
		{ClaimUndecided, "undecided"},
		{ClaimVertical, "vertical"},
		{ClaimHorizontal, "horizontal"},
		{ClaimDelegated, "delegated"},
		{Claim(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Claim(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
