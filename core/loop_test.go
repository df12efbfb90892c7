package core

import (
	"strings"
	"testing"
)

type recordingIndicator struct {
	shown []SystemMode
}

func (r *recordingIndicator) ShowMode(m SystemMode) {
	r.shown = append(r.shown, m)
}

func TestControllerTogglesOncePerChange(t *testing.T) {
	s := NewStore()
	out := &mockOutput{}
	c := NewController(s, out, nil, nil)
	c.Start()

	if c.Poll() {
		t.Error("Poll reported a change with no presses")
	}

	for i := 0; i < 5; i++ {
		s.HandleButtonEdge()
		if !c.Poll() {
			t.Errorf("Poll %d did not observe the press", i)
		}
		c.Poll()
	}

	if out.toggles != 5 {
		t.Errorf("Expected 5 toggles, got %d", out.toggles)
	}
	if !out.Get() {
		t.Error("Expected output high after an odd number of toggles")
	}
	if c.LastCount() != 5 {
		t.Errorf("Expected last count 5, got %d", c.LastCount())
	}
}

func TestControllerCoalescesBurst(t *testing.T) {
	s := NewStore()
	out := &mockOutput{}
	c := NewController(s, out, nil, nil)
	c.Start()

	for i := 0; i < 4; i++ {
		s.HandleButtonEdge()
	}
	c.Poll()

	// Several presses between polls are one observed change.
	if out.toggles != 1 {
		t.Errorf("Expected 1 toggle for a burst, got %d", out.toggles)
	}
	if c.LastCount() != 4 {
		t.Errorf("Expected last count 4, got %d", c.LastCount())
	}
}

func TestControllerStartUsesCurrentCount(t *testing.T) {
	s := NewStore()
	s.HandleButtonEdge()
	s.HandleButtonEdge()

	out := &mockOutput{}
	c := NewController(s, out, nil, nil)
	c.Start()

	if c.Poll() {
		t.Error("Presses before Start must not count as a change")
	}
	if out.toggles != 0 {
		t.Errorf("Expected no toggles, got %d", out.toggles)
	}
}

func TestControllerWrapIsAChange(t *testing.T) {
	s := NewStore()
	Critical(func(cs CS) { s.shared.Borrow(cs).presses = ^uint32(0) })

	out := &mockOutput{}
	c := NewController(s, out, nil, nil)
	c.Start()

	s.HandleButtonEdge()
	if !c.Poll() {
		t.Error("Wrap to 0 not observed as a change")
	}
}

func TestControllerDrivesModeMachine(t *testing.T) {
	s := NewStore()
	out := &mockOutput{}
	clock := &manualClock{}
	ind := &recordingIndicator{}

	c := NewController(s, out, NewActivityPolicy(testConfig()), clock.read)
	c.SetIndicator(ind)
	c.Start()

	// Three quick presses: standalone -> continuous.
	for i := 0; i < 3; i++ {
		s.HandleButtonEdge()
		c.Poll()
		clock.advance(100)
	}
	if s.Mode() != ModeContinuous {
		t.Fatalf("Expected continuous, got %s", s.Mode())
	}

	// Quiet for the timeout: continuous -> sleep.
	clock.advance(5000)
	c.Poll()
	if s.Mode() != ModeSleep {
		t.Fatalf("Expected sleep, got %s", s.Mode())
	}

	// Any edge wakes: sleep -> standalone.
	s.HandleButtonEdge()
	c.Poll()
	if s.Mode() != ModeStandalone {
		t.Fatalf("Expected standalone, got %s", s.Mode())
	}

	want := []SystemMode{ModeStandalone, ModeContinuous, ModeSleep, ModeStandalone}
	if len(ind.shown) != len(want) {
		t.Fatalf("Expected indicator updates %v, got %v", want, ind.shown)
	}
	for i := range want {
		if ind.shown[i] != want[i] {
			t.Errorf("Indicator update %d: expected %s, got %s", i, want[i], ind.shown[i])
		}
	}
	if out.toggles != 4 {
		t.Errorf("Expected 4 toggles, got %d", out.toggles)
	}
}

func TestControllerDebugLines(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)
	defer func() {
		SetDebugEnabled(false)
		SetDebugWriter(nil)
	}()

	s := NewStore()
	clock := &manualClock{}
	c := NewController(s, &mockOutput{}, NewActivityPolicy(testConfig()), clock.read)
	c.Start()

	for i := 0; i < 3; i++ {
		s.HandleButtonEdge()
		c.Poll()
	}

	if len(lines) != 4 {
		t.Fatalf("Expected 3 press lines and 1 mode line, got %q", lines)
	}
	if lines[0] != "press count=1 mode=standalone" {
		t.Errorf("Unexpected press line %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "mode from=standalone to=continuous") {
		t.Errorf("Unexpected mode line %q", lines[3])
	}
}

func TestControllerSilentWithoutDebug(t *testing.T) {
	called := false
	SetDebugWriter(func(string) { called = true })
	defer SetDebugWriter(nil)

	s := NewStore()
	c := NewController(s, &mockOutput{}, nil, nil)
	c.Start()
	s.HandleButtonEdge()
	c.Poll()

	if called {
		t.Error("Debug writer called while debug disabled")
	}
}

func TestControllerPolicyWithoutClockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a policy without a clock")
		}
	}()
	NewController(NewStore(), &mockOutput{}, NewActivityPolicy(testConfig()), nil)
}

func TestControllerTimeoutFollowsClock(t *testing.T) {
	s := NewStore()
	clock := &manualClock{}
	c := NewController(s, &mockOutput{}, NewActivityPolicy(testConfig()), clock.read)
	c.Start()

	for i := 0; i < 3; i++ {
		s.HandleButtonEdge()
		c.Poll()
	}
	if s.Mode() != ModeContinuous {
		t.Fatalf("Expected continuous, got %s", s.Mode())
	}

	clock.advance(5000)
	c.Poll()
	if s.Mode() != ModeSleep {
		t.Errorf("Expected sleep once the clock passed the timeout, got %s", s.Mode())
	}
}
