package reel

// InjectPress queues a mouse press at the given screen coordinates. Injected
// frames are consumed one per Update and take precedence over the input
// source.
func (e *Engine) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, RawFrame{MouseDown: true, MouseX: x, MouseY: y})
}

// InjectMove queues a mouse move with the button held down.
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, RawFrame{MouseDown: true, MouseX: x, MouseY: y})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (e *Engine) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, RawFrame{MouseX: x, MouseY: y})
}

// InjectTap queues a press followed by a release at the same position.
// Consumes two frames.
func (e *Engine) InjectTap(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectSwipe queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and release at (toX, toY). Minimum frames is 2.
func (e *Engine) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// InjectTouches queues a raw frame with the given touch contacts. An empty
// call queues a frame where every contact has lifted.
func (e *Engine) InjectTouches(touches ...Touch) {
	e.injectQueue = append(e.injectQueue, RawFrame{Touches: touches})
}

// InjectPinch queues a two-finger gesture centred on (cx, cy) whose contacts
// start fromDist apart and end toDist apart over frames frames, followed by a
// frame with both contacts lifted. Minimum frames is 2.
func (e *Engine) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		half := (fromDist + (toDist-fromDist)*t) / 2
		e.InjectTouches(
			Touch{ID: 1, X: cx - half, Y: cy},
			Touch{ID: 2, X: cx + half, Y: cy},
		)
	}
	e.InjectTouches()
}

// InjectCancel queues a frame that cancels the interaction in progress.
func (e *Engine) InjectCancel() {
	e.injectQueue = append(e.injectQueue, RawFrame{Cancel: true})
}

// InjectWheel queues a wheel frame with the cursor at (x, y).
func (e *Engine) InjectWheel(x, y, dx, dy float64) {
	e.injectQueue = append(e.injectQueue, RawFrame{MouseX: x, MouseY: y, WheelX: dx, WheelY: dy})
}

// Pending returns the number of injected frames not yet consumed.
func (e *Engine) Pending() int {
	return len(e.injectQueue)
}

func (e *Engine) popInjected() (RawFrame, bool) {
	if len(e.injectQueue) == 0 {
		return RawFrame{}, false
	}
	f := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
	return f, true
}
