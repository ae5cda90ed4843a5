package reel

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
)

// wheelStep is the scroll distance in pixels per wheel notch.
const wheelStep = 40.0

// Engine is the story carousel interaction engine. It owns the flattened
// index, the preview and viewer cursors, the gesture classifier and the
// autoplay scheduler; nothing else writes them.
//
// Engine is not safe for concurrent use. Call every method from the host loop
// except QueueSource, which may be called from any goroutine.
type Engine struct {
	cfg        Config
	index      *Index
	normalizer Normalizer
	classifier *Classifier
	autoplay   *Autoplay
	viewer     Viewer
	preview    int
	images     *ImageResolver
	fade       *Transition
	generation uint64

	surfaces  []*Surface
	viewports []*Viewport

	// Drag-to-scroll state for a session that started on a scrolled surface.
	dragViewport *Viewport
	dragOrigin   float64

	handlers handlerRegistry
	store    EventStore

	input       InputSource
	injectQueue []RawFrame
	testRunner  *TestRunner
	evBuf       []PointerEvent

	pendingMu  sync.Mutex
	pending    []Category
	hasPending bool

	logger    *logrus.Logger
	log       *logrus.Entry
	sessionID uuid.UUID
	debug     bool

	now     time.Time
	started bool
	closed  bool
}

// NewEngine creates an engine with an empty index. Source data arrives later
// through SetSource or QueueSource.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		cfg:        cfg,
		index:      NewIndex(nil),
		classifier: NewClassifier(cfg),
		autoplay:   NewAutoplay(cfg.AutoplayInterval, cfg.AutoplayCooldown),
		viewer:     newViewer(),
		preview:    CursorEmpty,
		images:     NewImageResolver(cfg.ImageCacheTTL),
		fade:       &Transition{Done: true},
		sessionID:  uuid.New(),
	}
	e.SetLogger(newLogger())
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Index returns the flattened index. Callers must treat it as read-only.
func (e *Engine) Index() *Index { return e.index }

// Viewer returns the viewer state for reading.
func (e *Engine) Viewer() *Viewer { return &e.viewer }

// PreviewCursor returns the preview strip cursor.
func (e *Engine) PreviewCursor() int { return e.preview }

// ViewerCursor returns the viewer cursor.
func (e *Engine) ViewerCursor() int { return e.viewer.cursor }

// AutoplayMode returns the autoplay scheduler mode.
func (e *Engine) AutoplayMode() AutoplayMode { return e.autoplay.Mode() }

// AutoplayResumeAt returns when the current interaction cooldown ends.
func (e *Engine) AutoplayResumeAt() time.Time { return e.autoplay.ResumeAt() }

// Generation increments every time the source snapshot is replaced. Hosts
// compare it to know when to lay out their surfaces again.
func (e *Engine) Generation() uint64 { return e.generation }

// ViewerAlpha returns the viewer opacity in [0, 1] for rendering.
func (e *Engine) ViewerAlpha() float64 { return e.fade.Value }

// Claim returns the claim of the gesture in progress, so hosts know whether
// to suppress default scrolling.
func (e *Engine) Claim() Claim {
	if s, ok := e.classifier.Session(); ok {
		return s.Claim
	}
	return ClaimUndecided
}

// ImageFor resolves the image for an entry using the configured form factor.
func (e *Engine) ImageFor(entry Entry) string {
	return e.images.Resolve(entry, e.cfg.FormFactor)
}

// SetInput sets the source polled once per Update.
func (e *Engine) SetInput(src InputSource) {
	e.input = src
}

// --- Source data ---

// SetSource replaces the source snapshot and rebuilds the index. The preview
// cursor is clamped into the new bounds; an open viewer is re-resolved by
// entry identity and closes when its entry no longer exists.
func (e *Engine) SetSource(categories []Category) {
	e.index.Rebuild(categories)
	e.images.Flush()
	e.generation++

	if e.viewer.IsOpen() {
		if e.viewer.resync(e.index) {
			e.preview = e.viewer.cursor
		} else {
			e.closeViewer(CloseRemoved)
			e.viewer.cursor = e.index.Clamp(e.viewer.cursor)
		}
	} else {
		e.viewer.resync(e.index)
	}

	prev := e.preview
	e.preview = e.index.Clamp(e.preview)

	if e.debug {
		e.log.WithFields(logrus.Fields{
			"categories": len(categories),
			"entries":    e.index.Len(),
			"preview":    e.preview,
			"generation": e.generation,
		}).Debug("source rebuilt")
	}
	if e.preview != prev || e.preview != CursorEmpty {
		e.emitCursor()
	}
}

// QueueSource stores a snapshot to be applied at the start of the next
// Update. It is safe to call from any goroutine, for example when an
// asynchronous fetch completes.
func (e *Engine) QueueSource(categories []Category) {
	e.pendingMu.Lock()
	e.pending = slices.Clone(categories)
	e.hasPending = true
	e.pendingMu.Unlock()
}

func (e *Engine) applyPending() {
	e.pendingMu.Lock()
	cats, ok := e.pending, e.hasPending
	e.pending, e.hasPending = nil, false
	e.pendingMu.Unlock()
	if ok {
		e.SetSource(cats)
	}
}

// --- Frame loop ---

// Update runs one frame at now: pending source data, the test runner, one
// input frame (injected frames take precedence over the input source),
// autoplay, and animations.
func (e *Engine) Update(now time.Time) {
	if e.closed {
		return
	}
	var dt float32
	if e.started {
		dt = max(0, float32(now.Sub(e.now).Seconds()))
	} else {
		e.started = true
		e.autoplay.Start(now)
	}
	e.now = now

	e.applyPending()

	if e.testRunner != nil {
		e.testRunner.step(e)
	}

	if f, ok := e.popInjected(); ok {
		e.HandleFrame(f, now)
	} else if e.input != nil {
		e.HandleFrame(e.input.Poll(), now)
	}

	if e.autoplay.Tick(now) {
		e.advancePreview()
	}

	e.fade.Update(dt)
	for _, vp := range e.viewports {
		vp.update(dt)
	}
}

// HandleFrame feeds one raw input frame through the normalizer and classifier.
func (e *Engine) HandleFrame(f RawFrame, now time.Time) {
	if e.closed {
		return
	}
	e.now = now
	if f.WheelX != 0 || f.WheelY != 0 {
		e.wheel(f)
	}
	e.evBuf = e.normalizer.Normalize(f, e.evBuf[:0])
	for _, ev := range e.evBuf {
		e.HandlePointer(ev, now)
	}
}

// HandlePointer processes a single normalized event. Events of one
// interaction must arrive in order.
func (e *Engine) HandlePointer(ev PointerEvent, now time.Time) {
	if e.closed {
		return
	}
	e.now = now
	switch ev.Phase {
	case PhaseStart:
		e.autoplay.Interact(now)
		region, target := e.layerRegion(), ""
		e.dragViewport = nil
		if s := e.hitTest(ev.Primary); s != nil {
			region, target = s.Region, s.ID
			if s.Viewport != nil {
				e.dragViewport = s.Viewport
				e.dragOrigin = s.Viewport.ScrollX
			}
		}
		e.classifier.Begin(ev, region, target, now)

	case PhaseMove:
		session, _ := e.classifier.Session()
		claim, g := e.classifier.Move(ev, now)
		if g.Kind == GesturePinchClose {
			e.dispatch(g)
			return
		}
		if claim == ClaimDelegated && e.dragViewport != nil {
			e.autoplay.Interact(now)
			want := e.dragOrigin + session.Start.X - ev.Primary.X
			e.dragViewport.ScrollBy(want - e.dragViewport.ScrollX)
		}

	case PhaseEnd:
		target := ""
		if s := e.hitTest(ev.Primary); s != nil {
			target = s.ID
		}
		e.dispatch(e.classifier.End(ev, target, now))
		e.dragViewport = nil

	case PhaseCancel:
		e.classifier.Cancel()
		e.dragViewport = nil
	}
}

// Interact reports a qualifying interaction the engine did not observe
// itself, such as a native scroll. It suspends autoplay for the cooldown.
func (e *Engine) Interact() {
	e.autoplay.Interact(e.now)
}

func (e *Engine) wheel(f RawFrame) {
	e.autoplay.Interact(e.now)
	delta := f.WheelX
	if delta == 0 {
		delta = f.WheelY
	}
	if s := e.hitTest(Vec2{f.MouseX, f.MouseY}); s != nil && s.Viewport != nil {
		s.Viewport.ScrollBy(-delta * wheelStep)
	}
}

// Close tears the engine down: the viewer closes, the autoplay timer is
// cleared and further updates are ignored.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closeViewer(CloseTeardown)
	e.autoplay.Stop()
	e.classifier.Cancel()
	e.normalizer.Reset()
	e.injectQueue = nil
	e.closed = true
}

// --- Gesture dispatch ---

func (e *Engine) dispatch(g Gesture) {
	if g.Kind == GestureNone {
		if g.Suppressed && e.debug {
			e.log.WithField("target", g.Target).Debug("tap suppressed by guard window")
		}
		return
	}
	e.logGesture(g)
	e.emit(Event{Type: EventGesture, Cursor: e.preview, Gesture: g})

	switch g.Kind {
	case GestureTap:
		e.tap(g)
	case GestureHorizontalSwipe:
		if e.viewer.IsOpen() && !e.viewer.detail {
			e.StepViewer(int(g.Direction))
		}
	case GestureVerticalSwipe:
		e.verticalSwipe(g)
	case GesturePinchClose:
		e.closeViewer(ClosePinch)
	}
}

func (e *Engine) tap(g Gesture) {
	s := e.Surface(g.Target)
	if s == nil {
		return
	}
	switch s.Region.Layer {
	case LayerViewer:
		if !e.viewer.IsOpen() || e.viewer.detail {
			return
		}
		if s.Entry != CursorEmpty {
			e.OpenViewer(s.Entry)
			return
		}
		// Left third steps back, the rest steps forward.
		if g.Position.X < s.Bounds.X+s.Bounds.Width/3 {
			e.StepViewer(-1)
		} else {
			e.StepViewer(1)
		}
	case LayerList:
		if s.Entry != CursorEmpty {
			e.SelectFromList(s.Entry)
		}
	case LayerPreview:
		if s.Entry != CursorEmpty {
			e.OpenViewer(s.Entry)
		}
	}
}

func (e *Engine) verticalSwipe(g Gesture) {
	switch g.Region.Layer {
	case LayerViewer:
		if !e.viewer.IsOpen() {
			return
		}
		if g.Direction == DirectionNext {
			e.OpenDetail()
			return
		}
		if e.viewer.detail {
			e.CloseDetail()
			return
		}
		e.closeViewer(CloseSwipe)
	case LayerPreview:
		e.setPreview(e.index.StepCategory(e.preview, g.Direction))
	}
}

// --- Viewer synchronization ---

// OpenViewer opens the viewer at the given index position. It returns false
// when the index is empty.
func (e *Engine) OpenViewer(cursor int) bool {
	wasOpen := e.viewer.IsOpen()
	if !e.viewer.open(e.index, cursor) {
		return false
	}
	e.autoplay.Hold()
	if !wasOpen {
		e.fade = NewTransition(e.fade.Value, 1, e.cfg.TransitionDuration, ease.OutQuad)
	}
	if e.debug {
		e.log.WithFields(logrus.Fields{
			"cursor": e.viewer.cursor,
			"entry":  e.viewer.key.String(),
		}).Debug("viewer opened")
	}
	e.emitSelected()
	e.setPreview(e.viewer.cursor)
	return true
}

// OpenEntry opens the viewer at the entry with the given identity.
func (e *Engine) OpenEntry(key EntryKey) bool {
	pos := e.index.Find(key)
	if pos == CursorEmpty {
		return false
	}
	return e.OpenViewer(pos)
}

// StepViewer moves the viewer cursor by delta with wraparound and mirrors it
// to the preview cursor.
func (e *Engine) StepViewer(delta int) bool {
	if !e.viewer.step(e.index, delta) {
		return false
	}
	e.emitSelected()
	e.setPreview(e.viewer.cursor)
	return true
}

// CloseViewer closes the viewer. The cursors are left unchanged.
func (e *Engine) CloseViewer() bool {
	return e.closeViewer(CloseExplicit)
}

func (e *Engine) closeViewer(reason CloseReason) bool {
	if !e.viewer.close() {
		return false
	}
	e.autoplay.Release(e.now)
	e.fade = NewTransition(e.fade.Value, 0, e.cfg.TransitionDuration, ease.InQuad)
	if e.debug {
		e.log.WithFields(logrus.Fields{
			"cursor": e.viewer.cursor,
			"reason": string(reason),
		}).Debug("viewer closed")
	}
	e.emit(Event{Type: EventViewerClosed, Key: e.viewer.key, Cursor: e.viewer.cursor, Reason: reason})
	return true
}

// OpenDetail shows the read-more overlay for the current viewer entry. It
// requires an open viewer and an entry with a description.
func (e *Engine) OpenDetail() bool {
	return e.viewer.openDetail(e.index)
}

// CloseDetail hides the read-more overlay. The viewer stays open.
func (e *Engine) CloseDetail() bool {
	return e.viewer.closeDetail()
}

// ExpandList switches the browsing surface to the expanded list.
func (e *Engine) ExpandList() {
	e.viewer.list = ListExpanded
}

// CollapseList switches the browsing surface back to the preview strip.
func (e *Engine) CollapseList() {
	e.viewer.list = ListCollapsed
}

// SelectFromList opens the viewer at cursor and collapses the list.
func (e *Engine) SelectFromList(cursor int) bool {
	if !e.OpenViewer(cursor) {
		return false
	}
	e.viewer.list = ListCollapsed
	return true
}

func (e *Engine) emitSelected() {
	e.emit(Event{Type: EventStorySelected, Key: e.viewer.key, Cursor: e.viewer.cursor})
}

// --- Preview cursor ---

func (e *Engine) advancePreview() {
	if e.viewer.IsOpen() || e.index.Len() <= 1 {
		return
	}
	next := e.index.Step(e.preview, 1)
	if e.debug {
		e.log.WithFields(logrus.Fields{"from": e.preview, "to": next}).Debug("autoplay advance")
	}
	e.setPreview(next)
}

func (e *Engine) setPreview(c int) {
	if c == e.preview {
		return
	}
	e.preview = c
	e.emitCursor()
	e.revealPreview()
}

func (e *Engine) emitCursor() {
	var key EntryKey
	if entry, ok := e.index.EntryAt(e.preview); ok {
		key = entry.Key()
	}
	e.emit(Event{Type: EventCursorChanged, Key: key, Cursor: e.preview})
}

// revealPreview scrolls the strip so the icon of the preview entry is visible.
func (e *Engine) revealPreview() {
	for _, s := range e.surfaces {
		if s.Region.Layer == LayerPreview && s.Entry == e.preview && s.Viewport != nil {
			s.Viewport.Reveal(s.Bounds.X, s.Bounds.Width, float32(e.cfg.TransitionDuration.Seconds()), ease.OutQuad)
			return
		}
	}
}

// --- Surfaces ---

// AddSurface registers an addressable surface. Later surfaces are on top of
// earlier ones for hit testing.
func (e *Engine) AddSurface(s *Surface) {
	e.surfaces = append(e.surfaces, s)
	if s.Viewport != nil && !slices.Contains(e.viewports, s.Viewport) {
		e.viewports = append(e.viewports, s.Viewport)
	}
}

// RemoveSurface unregisters the surface with the given id.
func (e *Engine) RemoveSurface(id string) {
	e.surfaces = slices.DeleteFunc(e.surfaces, func(s *Surface) bool { return s.ID == id })
	e.viewports = e.viewports[:0]
	for _, s := range e.surfaces {
		if s.Viewport != nil && !slices.Contains(e.viewports, s.Viewport) {
			e.viewports = append(e.viewports, s.Viewport)
		}
	}
}

// ClearSurfaces unregisters every surface.
func (e *Engine) ClearSurfaces() {
	e.surfaces = e.surfaces[:0]
	e.viewports = e.viewports[:0]
	e.dragViewport = nil
}

// Surface returns the surface with the given id, or nil.
func (e *Engine) Surface(id string) *Surface {
	if id == "" {
		return nil
	}
	for _, s := range e.surfaces {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Surfaces returns the registered surfaces. The returned slice MUST NOT be
// mutated.
func (e *Engine) Surfaces() []*Surface {
	return e.surfaces
}

// ActiveLayer returns the layer currently receiving input.
func (e *Engine) ActiveLayer() Layer {
	switch {
	case e.viewer.IsOpen():
		return LayerViewer
	case e.viewer.list == ListExpanded:
		return LayerList
	}
	return LayerPreview
}

func (e *Engine) layerRegion() Region {
	switch e.ActiveLayer() {
	case LayerViewer:
		return RegionViewer
	case LayerList:
		return RegionList
	}
	return RegionStrip
}

// hitTest finds the topmost surface of the active layer containing p.
func (e *Engine) hitTest(p Vec2) *Surface {
	layer := e.ActiveLayer()
	for i := len(e.surfaces) - 1; i >= 0; i-- {
		s := e.surfaces[i]
		if s.Region.Layer == layer && s.contains(p) {
			return s
		}
	}
	return nil
}
