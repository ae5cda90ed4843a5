package reel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle. Points on the
// edge are inside.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Surface is an addressable element that can receive gestures: a category or
// story icon, the viewer, or a list row.
type Surface struct {
	ID     string
	Region Region
	// Bounds is in screen coordinates, or in content coordinates of
	// Viewport when Viewport is set.
	Bounds HitRect
	// Entry is the flattened index position this surface opens, or
	// CursorEmpty for surfaces that do not address an entry.
	Entry    int
	Viewport *Viewport
}

// contains tests a screen position against the surface, going through its
// viewport when it has one.
func (s *Surface) contains(p Vec2) bool {
	if s.Viewport == nil {
		return s.Bounds.Contains(p.X, p.Y)
	}
	if !s.Viewport.Bounds.Contains(p.X, p.Y) {
		return false
	}
	cx, cy := s.Viewport.ScreenToContent(p.X, p.Y)
	return s.Bounds.Contains(cx, cy)
}

// Viewport is a horizontally scrollable container such as the preview strip.
// Delegated horizontal gestures and wheel motion scroll it.
type Viewport struct {
	// Bounds is the on-screen rectangle of the container.
	Bounds HitRect
	// ContentWidth is the total width of the scrolled content.
	ContentWidth float64
	// ScrollX is the content offset shown at the left edge of Bounds.
	ScrollX float64

	scrollTween *gween.Tween
}

// ScreenToContent converts a screen position into content coordinates.
func (v *Viewport) ScreenToContent(x, y float64) (float64, float64) {
	return x - v.Bounds.X + v.ScrollX, y - v.Bounds.Y
}

// MaxScroll returns the largest valid ScrollX.
func (v *Viewport) MaxScroll() float64 {
	return max(0, v.ContentWidth-v.Bounds.Width)
}

// ScrollBy moves the content by dx, clamped to the content, and cancels any
// running scroll animation.
func (v *Viewport) ScrollBy(dx float64) {
	v.scrollTween = nil
	v.ScrollX = clamp(v.ScrollX+dx, 0, v.MaxScroll())
}

// ScrollTo animates ScrollX to x over duration seconds. A non-positive
// duration jumps immediately.
func (v *Viewport) ScrollTo(x float64, duration float32, easeFn ease.TweenFunc) {
	x = clamp(x, 0, v.MaxScroll())
	if duration <= 0 {
		v.scrollTween = nil
		v.ScrollX = x
		return
	}
	v.scrollTween = gween.New(float32(v.ScrollX), float32(x), duration, easeFn)
}

// Reveal scrolls so the content span [x, x+w] is centred when it is not fully
// visible.
func (v *Viewport) Reveal(x, w float64, duration float32, easeFn ease.TweenFunc) {
	if x >= v.ScrollX && x+w <= v.ScrollX+v.Bounds.Width {
		return
	}
	v.ScrollTo(x+w/2-v.Bounds.Width/2, duration, easeFn)
}

// Scrolling reports whether a scroll animation is running.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(dt)
	v.ScrollX = float64(val)
	if done {
		v.scrollTween = nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
