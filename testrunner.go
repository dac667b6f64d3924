package sitecam

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Button  string  `json:"button,omitempty"` // "left", "middle" or "right"
	From    float64 `json:"from,omitempty"`   // pinch start distance
	To      float64 `json:"to,omitempty"`     // pinch end distance
	DeltaY  float64 `json:"deltaY,omitempty"`
	Ctrl    bool    `json:"ctrl,omitempty"`
	Animate bool    `json:"animate,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, camera commands and screenshots
// across frames for automated testing. Attach to a Controller via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var knownActions = map[string]bool{
	"drag": true, "click": true, "doubleclick": true, "pinch": true,
	"wheel": true, "wait": true, "reset": true, "recenter": true,
	"screenshot": true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func parseButton(s string) (MouseButton, error) {
	switch s {
	case "", "left":
		return MouseButtonLeft, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "right":
		return MouseButtonRight, nil
	}
	return MouseButtonLeft, fmt.Errorf("unknown button %q", s)
}

// SetTestRunner attaches a TestRunner. Its step method is called from
// Update before injected input is processed.
func (c *Controller) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Update.
func (r *TestRunner) step(c *Controller) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
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
	case "screenshot":
		if c.OnScreenshot != nil {
			c.OnScreenshot(st.Label)
		}
	case "click":
		c.InjectClick(st.X, st.Y)
	case "doubleclick":
		c.InjectDoubleClick(st.X, st.Y)
	case "drag":
		button, _ := parseButton(st.Button)
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, button)
	case "pinch":
		c.InjectPinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "wheel":
		var mods KeyModifiers
		if st.Ctrl {
			mods |= ModCtrl
		}
		c.InjectWheel(st.X, st.Y, st.DeltaY, mods)
	case "reset":
		c.ResetRotation()
	case "recenter":
		c.RecenterCamera(RecenterOptions{Animate: st.Animate})
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
