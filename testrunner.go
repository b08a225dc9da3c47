package ambient

import (
	"encoding/json"
	"fmt"
	"time"
)

// scenarioStep is a single action in a scenario script.
type scenarioStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Interval float64 `json:"interval,omitempty"` // milliseconds per frame
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
}

// scenarioScript is the top-level JSON structure for a scenario.
type scenarioScript struct {
	Steps []scenarioStep `json:"steps"`
}

// Scenario replays a scripted sequence of lifecycle calls and frames against
// an engine driven by a ManualClock. Scripts look like:
//
//	{"steps": [
//	  {"action": "start"},
//	  {"action": "frames", "frames": 120, "interval": 16},
//	  {"action": "resize", "width": 320, "height": 200},
//	  {"action": "snapshot", "label": "after-resize"},
//	  {"action": "stop"}
//	]}
type Scenario struct {
	steps     []scenarioStep
	snapshots []string
}

// LoadScenario parses a JSON scenario script.
func LoadScenario(jsonData []byte) (*Scenario, error) {
	var script scenarioScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scenario: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "start", "stop", "frames", "resize", "snapshot":
		default:
			return nil, fmt.Errorf("parse scenario: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Scenario{steps: script.Steps}, nil
}

// Len returns the number of steps.
func (s *Scenario) Len() int {
	return len(s.steps)
}

// Snapshots returns the paths written by snapshot steps of the last Play.
func (s *Scenario) Snapshots() []string {
	return s.snapshots
}

// Play executes every step in order. The engine must have been created with
// WithClock(clock) and initialized. Play stops at the first failing step.
func (s *Scenario) Play(e *Engine, clock *ManualClock) error {
	s.snapshots = s.snapshots[:0]
	for i, st := range s.steps {
		if err := s.step(e, clock, st); err != nil {
			return fmt.Errorf("scenario step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func (s *Scenario) step(e *Engine, clock *ManualClock, st scenarioStep) error {
	switch st.Action {
	case "start":
		return e.Start()
	case "stop":
		return e.Stop()
	case "frames":
		interval := st.Interval
		if interval <= 0 {
			interval = float64(DefaultFrameInterval) / float64(time.Millisecond)
		}
		frames := max(st.Frames, 1)
		clock.Run(frames, time.Duration(interval*float64(time.Millisecond)))
	case "resize":
		e.Resize(st.Width, st.Height)
	case "snapshot":
		path, err := e.Snapshot(st.Label)
		if err != nil {
			return err
		}
		s.snapshots = append(s.snapshots, path)
	}
	return nil
}
