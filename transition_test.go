package reel

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTransition(t *testing.T) {
	tr := NewTransition(0, 1, 100*time.Millisecond, ease.Linear)
	if tr.Done || tr.Value != 0 {
		t.Fatalf("start = %v done=%v", tr.Value, tr.Done)
	}
	tr.Update(0.05)
	if tr.Done {
		t.Error("Done halfway")
	}
	if tr.Value < 0.49 || tr.Value > 0.51 {
		t.Errorf("Value halfway = %v, want ~0.5", tr.Value)
	}
	tr.Update(0.05)
	if !tr.Done || tr.Value != 1 {
		t.Errorf("end = %v done=%v, want 1 done", tr.Value, tr.Done)
	}
	tr.Update(0.1)
	if tr.Value != 1 {
		t.Errorf("Value after done = %v", tr.Value)
	}
}

func TestTransitionZeroDuration(t *testing.T) {
	tr := NewTransition(1, 0, 0, ease.InQuad)
	if !tr.Done || tr.Value != 0 {
		t.Errorf("zero duration = %v done=%v, want 0 done", tr.Value, tr.Done)
	}
}
