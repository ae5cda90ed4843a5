package reel

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition animates a single value, such as the viewer opacity, between two
// points. Call Update each frame; Value holds the current value.
type Transition struct {
	tween *gween.Tween
	Value float64
	Done  bool
}

// NewTransition creates a transition from -> to over d. A non-positive
// duration completes immediately.
func NewTransition(from, to float64, d time.Duration, fn ease.TweenFunc) *Transition {
	if d <= 0 {
		return &Transition{Value: to, Done: true}
	}
	return &Transition{
		tween: gween.New(float32(from), float32(to), float32(d.Seconds()), fn),
		Value: from,
	}
}

// Update advances the transition by dt seconds.
func (t *Transition) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	t.Value = float64(val)
	t.Done = finished
}
