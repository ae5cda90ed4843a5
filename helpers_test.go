package reel

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const frameStep = 16 * time.Millisecond

// sampleCategories flattens to:
//
//	0 category:food  1 story:pizza  2 story:sushi
//	3 category:travel
//	4 category:tech  5 story:phone
func sampleCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food", Icon: "food.png", Background: "food-bg.png", Stories: []Story{
			{ID: "pizza", Name: "Pizza", Description: "Wood fired.", Images: []Image{
				{URL: "pizza-desktop.png", FormFactor: FormFactorDesktop},
				{URL: "pizza-mobile.png", FormFactor: FormFactorMobile},
			}},
			{ID: "sushi", Name: "Sushi"},
		}},
		{ID: "travel", Name: "Travel", Background: "travel-bg.png"},
		{ID: "tech", Name: "Tech", Stories: []Story{
			{ID: "phone", Name: "Phone", Description: "A new phone."},
		}},
	}
}

// Test layout, 480x800 screen.
const (
	screenW   = 480
	screenH   = 800
	stripH    = 110
	iconSize  = 80
	iconPitch = 92
	listY     = 150
	listPitch = 24
)

// iconCenter returns the screen position of the centre of strip icon i with
// the strip unscrolled.
func iconCenter(i int) (float64, float64) {
	return float64(12+i*iconPitch) + iconSize/2, 12 + iconSize/2
}

func listRowCenter(i int) (float64, float64) {
	return screenW / 2, float64(listY+i*listPitch) + 10
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestEngine returns an engine loaded with sampleCategories and the test
// layout registered, plus the strip viewport.
func newTestEngine(t *testing.T) (*Engine, *Viewport) {
	t.Helper()
	e := NewEngine(DefaultConfig())
	e.SetLogger(quietLogger())
	e.SetSource(sampleCategories())
	return e, layoutTestSurfaces(e)
}

func layoutTestSurfaces(e *Engine) *Viewport {
	e.ClearSurfaces()
	n := e.Index().Len()
	strip := &Viewport{
		Bounds:       HitRect{Width: screenW, Height: stripH},
		ContentWidth: float64(12 + n*iconPitch),
	}
	for i := 0; i < n; i++ {
		e.AddSurface(&Surface{
			ID:       fmt.Sprintf("strip/%d", i),
			Region:   RegionStrip,
			Bounds:   HitRect{X: float64(12 + i*iconPitch), Y: 12, Width: iconSize, Height: iconSize},
			Entry:    i,
			Viewport: strip,
		})
		e.AddSurface(&Surface{
			ID:     fmt.Sprintf("list/%d", i),
			Region: RegionList,
			Bounds: HitRect{X: 24, Y: float64(listY + i*listPitch), Width: screenW - 48, Height: 22},
			Entry:  i,
		})
	}
	e.AddSurface(&Surface{
		ID:     "viewer",
		Region: RegionViewer,
		Bounds: HitRect{Width: screenW, Height: screenH},
		Entry:  CursorEmpty,
	})
	return strip
}

// clock drives an engine with a fixed frame step.
type clock struct {
	e   *Engine
	now time.Time
}

func newClock(e *Engine) *clock {
	c := &clock{e: e, now: t0}
	e.Update(c.now)
	return c
}

// frame runs one Update and advances the clock.
func (c *clock) frame() {
	c.now = c.now.Add(frameStep)
	c.e.Update(c.now)
}

// drain runs frames until every injected frame is consumed.
func (c *clock) drain() {
	for i := 0; c.e.Pending() > 0 && i < 1000; i++ {
		c.frame()
	}
}

// advance moves the clock forward by d without running any frame in between,
// then runs one frame.
func (c *clock) advance(d time.Duration) {
	c.now = c.now.Add(d - frameStep)
	c.frame()
}

// recorder collects events by type.
type recorder struct {
	events []Event
}

func record(e *Engine) *recorder {
	r := &recorder{}
	fn := func(ev Event) { r.events = append(r.events, ev) }
	e.OnStorySelected(fn)
	e.OnViewerClosed(fn)
	e.OnCursorChanged(fn)
	e.OnGesture(fn)
	return r
}

func (r *recorder) of(t EventType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
