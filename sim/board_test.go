package sim

import (
	"errors"
	"runtime"
	"testing"

	"pressfw/config"
	"pressfw/core"
)

func newBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(nil)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

// Scenario A: fresh boot, no edges.
func TestFreshBoot(t *testing.T) {
	b := newBoard(t)

	for i := 0; i < 10; i++ {
		b.Step()
	}

	if got := b.Store.PressCount(); got != 0 {
		t.Errorf("Expected count 0, got %d", got)
	}
	if b.LED.Get() {
		t.Error("Expected LED low")
	}
	if b.LED.Toggles() != 0 {
		t.Errorf("Expected no toggles, got %d", b.LED.Toggles())
	}
	if b.Store.Mode() != core.ModeStandalone {
		t.Errorf("Expected standalone, got %s", b.Store.Mode())
	}
}

// Scenario B: five edges, polled one at a time.
func TestFiveEdgesPolledBetween(t *testing.T) {
	b := newBoard(t)

	for i := 0; i < 5; i++ {
		b.Advance(1000)
		b.Edge()
		b.Step()
	}

	if b.LED.Toggles() != 5 {
		t.Errorf("Expected 5 toggles, got %d", b.LED.Toggles())
	}
	if got := b.Store.PressCount(); got != 5 {
		t.Errorf("Expected count 5, got %d", got)
	}
	if b.Button.Acks() != 5 {
		t.Errorf("Expected 5 acknowledged edges, got %d", b.Button.Acks())
	}
	if b.Button.Pending() {
		t.Error("Pending flag left set")
	}
}

// Scenario C: a second install is rejected and changes nothing.
func TestSecondInstallRejected(t *testing.T) {
	b := newBoard(t)
	intruder := &Button{}

	err := b.Store.InstallButton(intruder)
	if !errors.Is(err, core.ErrButtonInstalled) {
		t.Fatalf("Expected ErrButtonInstalled, got %v", err)
	}

	for i := 0; i < 5; i++ {
		b.Advance(1000)
		b.Edge()
		b.Step()
	}

	if b.LED.Toggles() != 5 {
		t.Errorf("Expected 5 toggles, got %d", b.LED.Toggles())
	}
	if got := b.Store.PressCount(); got != 5 {
		t.Errorf("Expected count 5, got %d", got)
	}
	if intruder.Acks() != 0 {
		t.Errorf("Rejected handle was used %d times", intruder.Acks())
	}
	if b.Button.Acks() != 5 {
		t.Errorf("Installed handle acknowledged %d edges, expected 5", b.Button.Acks())
	}
}

// Scenario D: a fault inside the ISR's critical section halts the board.
func TestFaultMidCriticalSectionHalts(t *testing.T) {
	b := newBoard(t)
	b.InstallHalt()
	defer core.SetHaltFunc(nil)

	var reports [][]byte
	core.SetFaultWriter(func(p []byte) { reports = append(reports, append([]byte(nil), p...)) })
	defer core.SetFaultWriter(nil)

	stop := make(chan struct{})
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		b.RunLoop(stop)
	}()

	edges := make(chan struct{})
	isrDone := make(chan struct{})
	go func() {
		defer close(isrDone)
		b.ServeInterrupts(edges)
	}()

	edges <- struct{}{}
	for b.Store.PressCount() != 1 {
		runtime.Gosched()
	}
	b.Button.FailNextCheck(&core.FaultContext{Reason: "busfault", PC: 0x0800_1000})
	edges <- struct{}{}

	<-b.HaltedCh()
	<-isrDone
	<-loopDone
	close(stop)

	if core.Faults() != 1 {
		t.Errorf("Expected fault handler invoked once, got %d", core.Faults())
	}
	if core.Masked() {
		t.Error("Fault left the interrupt mask held")
	}
	if got := b.Store.PressCount(); got != 1 {
		t.Errorf("Faulted ISR must not finish its write: count %d", got)
	}

	polls := b.Polls()
	if b.Step() {
		t.Error("Loop observed a change after halt")
	}
	if b.Polls() != polls {
		t.Error("Main loop ran after halt")
	}
	if len(reports) == 0 {
		t.Fatal("No fault report written")
	}
	if want := `fault reason="busfault" pc=0x08001000`; string(reports[0][:len(want)]) != want {
		t.Errorf("Unexpected report %q", reports[0])
	}
}

func TestStuckFlagRetriggers(t *testing.T) {
	b := newBoard(t)
	b.Button.SetStuck(true)

	b.Edge()
	// The flag never clears, so the interrupt fires again on its own.
	for i := 0; i < 3 && b.Button.Pending(); i++ {
		b.interrupt()
	}
	b.Step()

	if got := b.Store.PressCount(); got != 4 {
		t.Errorf("Expected count 4, got %d", got)
	}
	if b.LED.Toggles() != 1 {
		t.Errorf("Expected one observed change, got %d", b.LED.Toggles())
	}
}

func TestModeCycleOnBoard(t *testing.T) {
	cfg := config.DefaultConfig()
	b, err := NewBoard(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := uint32(0); i < cfg.ActivityPresses; i++ {
		b.Edge()
		b.Step()
		b.Advance(10)
	}
	if b.Store.Mode() != core.ModeContinuous {
		t.Fatalf("Expected continuous, got %s", b.Store.Mode())
	}

	b.Advance(cfg.InactivityTimeoutMS)
	b.Step()
	if b.Store.Mode() != core.ModeSleep {
		t.Fatalf("Expected sleep, got %s", b.Store.Mode())
	}

	b.Edge()
	b.Step()
	if b.Store.Mode() != core.ModeStandalone {
		t.Fatalf("Expected standalone, got %s", b.Store.Mode())
	}
}

func TestBurstAfterIdleEntersContinuous(t *testing.T) {
	cfg := config.DefaultConfig()
	b, err := NewBoard(cfg)
	if err != nil {
		t.Fatal(err)
	}

	b.Step()
	b.Advance(1900)
	b.Step()

	// The burst starts just before and ends just after the 2000ms mark.
	for i := uint32(0); i < cfg.ActivityPresses; i++ {
		b.Edge()
		b.Step()
		b.Advance(50)
	}

	if b.Store.Mode() != core.ModeContinuous {
		t.Errorf("Expected continuous after a %dms burst, got %s", 50*(cfg.ActivityPresses-1), b.Store.Mode())
	}
}

func TestSlowPressesStayStandalone(t *testing.T) {
	cfg := config.DefaultConfig()
	b, err := NewBoard(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := uint32(0); i < 2*cfg.ActivityPresses; i++ {
		b.Edge()
		b.Step()
		b.Advance(cfg.ActivityWindowMS / (cfg.ActivityPresses - 2))
	}

	if b.Store.Mode() != core.ModeStandalone {
		t.Errorf("Expected standalone for presses spread past the window, got %s", b.Store.Mode())
	}
}
