package reel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned by LoadTestScript for a script without steps.
var ErrEmptyScript = errors.New("no steps")

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action" yaml:"action"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	From   float64 `json:"from,omitempty" yaml:"from,omitempty"`
	To     float64 `json:"to,omitempty" yaml:"to,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	Cursor int     `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// testScript is the top-level structure of a test script.
type testScript struct {
	Steps []testStep `json:"steps" yaml:"steps"`
}

// TestRunner sequences injected input and host actions across frames for
// scripted sessions. Attach it to an Engine via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON or YAML test script. Supported actions are
// tap, swipe, pinch, cancel, wheel, wait, open, close, step, detail,
// expand and collapse.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	var err error
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, &script)
	} else {
		err = yaml.Unmarshal(data, &script)
	}
	if err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "tap", "swipe", "pinch", "cancel", "wheel", "wait",
		"open", "close", "step", "detail", "expand", "collapse":
		return true
	}
	return false
}

// SetTestRunner attaches a TestRunner. Its step method runs at the start of
// every Update, before input is processed.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		e.InjectTap(st.X, st.Y)
	case "swipe":
		e.InjectSwipe(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		e.InjectPinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "cancel":
		e.InjectCancel()
	case "wheel":
		e.InjectWheel(st.X, st.Y, st.ToX, st.ToY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "open":
		e.OpenViewer(st.Cursor)
	case "close":
		e.CloseViewer()
	case "step":
		e.StepViewer(st.Cursor)
	case "detail":
		if !e.OpenDetail() {
			e.CloseDetail()
		}
	case "expand":
		e.ExpandList()
	case "collapse":
		e.CollapseList()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
