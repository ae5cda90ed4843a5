package reel

import "testing"

func TestViewerOpenClamps(t *testing.T) {
	ix := NewIndex(sampleCategories())
	v := newViewer()
	if !v.open(ix, 42) {
		t.Fatal("open failed")
	}
	if v.Cursor() != 5 || v.Key() != (EntryKey{EntryStory, "phone"}) {
		t.Errorf("cursor=%d key=%v, want 5 story:phone", v.Cursor(), v.Key())
	}
	if v.State() != ViewerOpen {
		t.Errorf("State = %v, want open", v.State())
	}
}

func TestViewerCloseKeepsCursor(t *testing.T) {
	ix := NewIndex(sampleCategories())
	v := newViewer()
	v.open(ix, 2)
	v.openDetail(ix)
	if !v.close() {
		t.Fatal("close failed")
	}
	if v.Cursor() != 2 || v.DetailOpen() {
		t.Errorf("cursor=%d detail=%v, want 2 false", v.Cursor(), v.DetailOpen())
	}
	if v.close() {
		t.Error("second close reported a change")
	}
	if v.step(ix, 1) {
		t.Error("step succeeded while closed")
	}
}

func TestViewerStepDismissesDetail(t *testing.T) {
	ix := NewIndex(sampleCategories())
	v := newViewer()
	v.open(ix, 1)
	if !v.openDetail(ix) {
		t.Fatal("openDetail failed")
	}
	v.step(ix, 1)
	if v.DetailOpen() {
		t.Error("detail still open after step")
	}
}

func TestViewerResync(t *testing.T) {
	ix := NewIndex(sampleCategories())
	v := newViewer()
	v.open(ix, 2)

	ix.Rebuild(sampleCategories()[:1])
	if !v.resync(ix) || v.Cursor() != 2 {
		t.Errorf("resync kept: ok cursor=%d, want 2", v.Cursor())
	}

	ix.Rebuild(sampleCategories()[1:])
	if v.resync(ix) {
		t.Error("resync succeeded for a removed entry")
	}

	v.close()
	ix.Rebuild(nil)
	if !v.resync(ix) || v.Cursor() != CursorEmpty {
		t.Errorf("closed resync cursor = %d, want CursorEmpty", v.Cursor())
	}
}
