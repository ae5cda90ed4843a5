package reel

import (
	"errors"
	"os"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "tap", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "swipe", "fromX": 300, "fromY": 400, "toX": 100, "toY": 400, "frames": 5},
			{"action": "open", "cursor": 2}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "tap" || runner.steps[0].X != 100 || runner.steps[0].Y != 200 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "wait" || runner.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].FromX != 300 || runner.steps[2].ToX != 100 || runner.steps[2].Frames != 5 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Cursor != 2 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScriptYAML(t *testing.T) {
	data, err := os.ReadFile("testdata/script.yaml")
	if err != nil {
		t.Fatal(err)
	}
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[4]; st.Action != "pinch" || st.From != 200 || st.To != 120 {
		t.Errorf("pinch step = %+v", st)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := LoadTestScript([]byte(`steps: [`)); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if !errors.Is(err, ErrEmptyScript) {
		t.Errorf("err = %v, want ErrEmptyScript", err)
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerScript(t *testing.T) {
	e, _ := newTestEngine(t)
	data, err := os.ReadFile("testdata/script.yaml")
	if err != nil {
		t.Fatal(err)
	}
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	rec := record(e)
	e.SetTestRunner(runner)

	c := newClock(e)
	for i := 0; i < 200 && !runner.Done(); i++ {
		c.frame()
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}

	// tap icon 1 -> open pizza, swipe left -> sushi, pinch -> close.
	sel := rec.of(EventStorySelected)
	if len(sel) != 2 || sel[0].Cursor != 1 || sel[1].Cursor != 2 {
		t.Errorf("StorySelected = %+v", sel)
	}
	closed := rec.of(EventViewerClosed)
	if len(closed) != 1 || closed[0].Reason != ClosePinch {
		t.Errorf("ViewerClosed = %+v", closed)
	}
	if e.Viewer().IsOpen() || e.PreviewCursor() != 2 {
		t.Errorf("open=%v preview=%d, want closed at 2", e.Viewer().IsOpen(), e.PreviewCursor())
	}
}

func TestRunnerHostActions(t *testing.T) {
	e, _ := newTestEngine(t)
	runner, err := LoadTestScript([]byte(`
steps:
  - action: expand
  - action: open
    cursor: 1
  - action: detail
  - action: step
    cursor: 1
  - action: close
  - action: collapse
`))
	if err != nil {
		t.Fatal(err)
	}
	var detailSeen bool
	e.OnStorySelected(func(Event) {
		if e.Viewer().DetailOpen() {
			detailSeen = true
		}
	})
	e.SetTestRunner(runner)

	c := newClock(e)
	for i := 0; i < 20 && !runner.Done(); i++ {
		c.frame()
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if e.Viewer().IsOpen() || e.ViewerCursor() != 2 {
		t.Errorf("open=%v cursor=%d, want closed at 2", e.Viewer().IsOpen(), e.ViewerCursor())
	}
	if detailSeen {
		t.Error("detail stayed open across a step")
	}
	if e.Viewer().ListMode() != ListCollapsed {
		t.Error("list not collapsed")
	}
}
