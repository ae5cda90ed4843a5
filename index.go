package reel

// CursorEmpty is the sentinel cursor returned when the index has no entries.
const CursorEmpty = -1

// EntryKind distinguishes category overview entries from story entries.
type EntryKind uint8

const (
	EntryCategory EntryKind = iota + 1
	EntryStory
)

func (k EntryKind) String() string {
	switch k {
	case EntryCategory:
		return "category"
	case EntryStory:
		return "story"
	}
	return "unknown"
}

// EntryKey identifies an entry independently of its position, so it survives
// index rebuilds.
type EntryKey struct {
	Kind EntryKind
	ID   string
}

// IsZero reports whether k is the zero key.
func (k EntryKey) IsZero() bool {
	return k.Kind == 0 && k.ID == ""
}

func (k EntryKey) String() string {
	if k.IsZero() {
		return ""
	}
	return k.Kind.String() + ":" + k.ID
}

// Entry is one position of the flattened index. Category is always set; Story
// is set only for story entries.
type Entry struct {
	Kind     EntryKind
	Category *Category
	Story    *Story
	// Group is the position of the entry's category in the source order.
	Group int
}

// Key returns the entry identity.
func (e Entry) Key() EntryKey {
	if e.Kind == EntryStory {
		return EntryKey{Kind: EntryStory, ID: e.Story.ID}
	}
	return EntryKey{Kind: EntryCategory, ID: e.Category.ID}
}

// Name returns the display name.
func (e Entry) Name() string {
	if e.Kind == EntryStory {
		return e.Story.Name
	}
	return e.Category.Name
}

// Description returns the long-form description. Category entries have none.
func (e Entry) Description() string {
	if e.Kind == EntryStory {
		return e.Story.Description
	}
	return ""
}

// Index is the flattened sequence: for each category in source order, one
// category entry followed by all its stories in source order.
type Index struct {
	categories []Category
	entries    []Entry
	byKey      map[EntryKey]int
}

// NewIndex builds an index over a source snapshot.
func NewIndex(categories []Category) *Index {
	ix := &Index{}
	ix.Rebuild(categories)
	return ix
}

// Rebuild replaces the sequence with one built from a new snapshot. The
// category slice is copied; stories are shared read-only.
func (ix *Index) Rebuild(categories []Category) {
	ix.categories = append(ix.categories[:0:0], categories...)

	n := len(ix.categories)
	for i := range ix.categories {
		n += len(ix.categories[i].Stories)
	}
	ix.entries = make([]Entry, 0, n)
	ix.byKey = make(map[EntryKey]int, n)

	for i := range ix.categories {
		cat := &ix.categories[i]
		ix.add(Entry{Kind: EntryCategory, Category: cat, Group: i})
		for j := range cat.Stories {
			ix.add(Entry{Kind: EntryStory, Category: cat, Story: &cat.Stories[j], Group: i})
		}
	}
}

func (ix *Index) add(e Entry) {
	key := e.Key()
	// First occurrence wins for identity lookups.
	if _, ok := ix.byKey[key]; !ok {
		ix.byKey[key] = len(ix.entries)
	}
	ix.entries = append(ix.entries, e)
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Clamp moves cursor into [0, Len()). It returns CursorEmpty when the index is
// empty and 0 for negative cursors (including CursorEmpty) otherwise.
func (ix *Index) Clamp(cursor int) int {
	n := len(ix.entries)
	switch {
	case n == 0:
		return CursorEmpty
	case cursor < 0:
		return 0
	case cursor >= n:
		return n - 1
	}
	return cursor
}

// Step returns (cursor + delta) mod Len(), wrapping in both directions. An
// empty index yields CursorEmpty. CursorEmpty sits before the first entry:
// stepping it forward by one lands on 0 and back by one on the last entry.
func (ix *Index) Step(cursor, delta int) int {
	n := len(ix.entries)
	if n == 0 {
		return CursorEmpty
	}
	c := ix.Clamp(cursor)
	if cursor == CursorEmpty && delta > 0 {
		c = -1
	}
	return ((c+delta)%n + n) % n
}

// EntryAt returns the entry at cursor. ok is false when the cursor is out of
// range or the index is empty.
func (ix *Index) EntryAt(cursor int) (Entry, bool) {
	if cursor < 0 || cursor >= len(ix.entries) {
		return Entry{}, false
	}
	return ix.entries[cursor], true
}

// Find returns the position of the entry with the given identity, or
// CursorEmpty.
func (ix *Index) Find(key EntryKey) int {
	if pos, ok := ix.byKey[key]; ok {
		return pos
	}
	return CursorEmpty
}

// StepCategory moves from cursor to the category entry of the next (dir > 0)
// or previous (dir < 0) category, wrapping around. Stepping back from a story
// lands on the category entry of the story's own group first.
func (ix *Index) StepCategory(cursor int, dir Direction) int {
	n := len(ix.entries)
	if n == 0 {
		return CursorEmpty
	}
	c := ix.Clamp(cursor)
	switch {
	case dir > 0:
		for i := 1; i <= n; i++ {
			p := (c + i) % n
			if ix.entries[p].Kind == EntryCategory {
				return p
			}
		}
	case dir < 0:
		for i := 1; i <= n; i++ {
			p := ((c-i)%n + n) % n
			if ix.entries[p].Kind == EntryCategory {
				return p
			}
		}
	}
	return c
}
