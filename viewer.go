package reel

// ViewerState is the open/closed state of the full-screen viewer.
type ViewerState uint8

const (
	ViewerClosed ViewerState = iota
	ViewerOpen
)

func (s ViewerState) String() string {
	if s == ViewerOpen {
		return "open"
	}
	return "closed"
}

// ListMode is the state of the non-modal browsing surface.
type ListMode uint8

const (
	ListCollapsed ListMode = iota
	ListExpanded
)

func (m ListMode) String() string {
	if m == ListExpanded {
		return "expanded"
	}
	return "collapsed"
}

// Viewer tracks the viewer cursor, the read-more overlay and the list mode.
// While open it remembers the identity of the displayed entry so it can be
// re-resolved after the index is rebuilt.
type Viewer struct {
	state  ViewerState
	cursor int
	key    EntryKey
	detail bool
	list   ListMode
}

func newViewer() Viewer {
	return Viewer{cursor: CursorEmpty}
}

// State returns the viewer state.
func (v *Viewer) State() ViewerState { return v.state }

// IsOpen reports whether the viewer is open.
func (v *Viewer) IsOpen() bool { return v.state == ViewerOpen }

// Cursor returns the viewer cursor. It keeps its last value after closing.
func (v *Viewer) Cursor() int { return v.cursor }

// Key returns the identity of the entry shown (or last shown).
func (v *Viewer) Key() EntryKey { return v.key }

// DetailOpen reports whether the read-more overlay is shown.
func (v *Viewer) DetailOpen() bool { return v.detail }

// ListMode returns the browsing surface mode.
func (v *Viewer) ListMode() ListMode { return v.list }

// open shows the entry at cursor. It fails when the index is empty.
func (v *Viewer) open(ix *Index, cursor int) bool {
	c := ix.Clamp(cursor)
	e, ok := ix.EntryAt(c)
	if !ok {
		return false
	}
	v.state = ViewerOpen
	v.cursor = c
	v.key = e.Key()
	v.detail = false
	return true
}

// step moves the viewer cursor by delta with wraparound. The detail overlay
// belongs to the previous entry and is dismissed.
func (v *Viewer) step(ix *Index, delta int) bool {
	if v.state != ViewerOpen {
		return false
	}
	c := ix.Step(v.cursor, delta)
	e, ok := ix.EntryAt(c)
	if !ok {
		return false
	}
	v.cursor = c
	v.key = e.Key()
	v.detail = false
	return true
}

// close leaves the Open state without touching the cursor.
func (v *Viewer) close() bool {
	if v.state != ViewerOpen {
		return false
	}
	v.state = ViewerClosed
	v.detail = false
	return true
}

func (v *Viewer) openDetail(ix *Index) bool {
	if v.state != ViewerOpen || v.detail {
		return false
	}
	e, ok := ix.EntryAt(v.cursor)
	if !ok || e.Description() == "" {
		return false
	}
	v.detail = true
	return true
}

func (v *Viewer) closeDetail() bool {
	if !v.detail {
		return false
	}
	v.detail = false
	return true
}

// resync re-resolves the open entry by identity after a rebuild. It returns
// false when the entry no longer exists; the caller must then close.
func (v *Viewer) resync(ix *Index) bool {
	if v.state != ViewerOpen {
		v.cursor = ix.Clamp(v.cursor)
		return true
	}
	pos := ix.Find(v.key)
	if pos == CursorEmpty {
		return false
	}
	v.cursor = pos
	return true
}
