// Package sim runs the firmware core on a simulated board: a button line
// with an interrupt pending flag, an LED, a millisecond clock and a way to
// inject hardware faults. The ISR runs on its own goroutine when tests need
// real interleaving; the simulated interrupt mask in core keeps it exclusive
// with the main loop.
package sim

import (
	"runtime"
	"sync"
	"sync/atomic"

	"pressfw/config"
	"pressfw/core"
)

// Button is a simulated falling-edge input. Its pending flag is set by Press
// and read by the ISR, both under a critical section.
type Button struct {
	pending bool
	stuck   bool
	fault   *core.FaultContext

	acks   uint32
	clears uint32
}

// Press latches a falling edge, as the interrupt controller would.
func (b *Button) Press() {
	core.Critical(func(cs core.CS) {
		b.pending = true
	})
}

// SetStuck makes ClearInterruptPending ineffective, so the line re-triggers.
func (b *Button) SetStuck(stuck bool) {
	core.Critical(func(cs core.CS) {
		b.stuck = stuck
	})
}

// FailNextCheck arms a hardware fault that fires inside the next ISR, while
// the critical section is held.
func (b *Button) FailNextCheck(ctx *core.FaultContext) {
	core.Critical(func(cs core.CS) {
		b.fault = ctx
	})
}

// CheckInterrupt implements core.ButtonHandle.
func (b *Button) CheckInterrupt() bool {
	if f := b.fault; f != nil {
		b.fault = nil
		panic(f)
	}
	if b.pending {
		b.acks++
		return true
	}
	return false
}

// ClearInterruptPending implements core.ButtonHandle.
func (b *Button) ClearInterruptPending() {
	b.clears++
	if !b.stuck {
		b.pending = false
	}
}

// Pending reports whether an edge is latched.
func (b *Button) Pending() bool {
	var p bool
	core.Critical(func(cs core.CS) { p = b.pending })
	return p
}

// Acks returns how many edges the ISR acknowledged.
func (b *Button) Acks() uint32 {
	var n uint32
	core.Critical(func(cs core.CS) { n = b.acks })
	return n
}

// LED is a simulated output pin. It starts low.
type LED struct {
	high    atomic.Bool
	toggles atomic.Uint32
}

// Toggle implements core.Output.
func (l *LED) Toggle() {
	l.high.Store(!l.high.Load())
	l.toggles.Add(1)
}

// Get implements core.Output.
func (l *LED) Get() bool {
	return l.high.Load()
}

// Toggles returns how many times the LED has flipped.
func (l *LED) Toggles() uint32 {
	return l.toggles.Load()
}

// Board is a booted device: the button handed to the store, the LED wired
// to the controller, and the loop started.
type Board struct {
	Store      *core.Store
	Button     *Button
	LED        *LED
	Controller *core.Controller

	now    atomic.Uint32
	halted atomic.Bool
	haltCh chan struct{}
	once   sync.Once
	polls  atomic.Uint32
}

// NewBoard performs the bootstrap sequence with cfg (nil for defaults):
// configure the button, move it into a fresh store, attach the LED and
// take the loop's baseline reading.
func NewBoard(cfg *config.Config) (*Board, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	b := &Board{
		Store:  core.NewStore(),
		Button: &Button{},
		LED:    &LED{},
		haltCh: make(chan struct{}),
	}
	if err := b.Store.InstallButton(b.Button); err != nil {
		return nil, err
	}

	b.Controller = core.NewController(b.Store, b.LED, core.NewActivityPolicy(cfg), b.Now)
	b.Controller.Start()
	return b, nil
}

// Now returns the simulated millisecond clock.
func (b *Board) Now() uint32 {
	return b.now.Load()
}

// Advance moves the clock forward by ms.
func (b *Board) Advance(ms uint32) {
	b.now.Add(ms)
}

// Edge delivers one falling edge: latch the flag and run the ISR body in the
// calling goroutine, behind the fault trap.
func (b *Board) Edge() {
	b.Button.Press()
	b.interrupt()
}

func (b *Board) interrupt() {
	if b.halted.Load() {
		return
	}
	core.Trap(b.Store.HandleButtonEdge)
}

// Step runs one main loop iteration unless the board has halted.
func (b *Board) Step() bool {
	if b.halted.Load() {
		return false
	}
	b.polls.Add(1)
	return b.Controller.Poll()
}

// Polls returns the number of main loop iterations executed.
func (b *Board) Polls() uint32 {
	return b.polls.Load()
}

// Halted reports whether a fault stopped the board.
func (b *Board) Halted() bool {
	return b.halted.Load()
}

// HaltedCh is closed when the board halts.
func (b *Board) HaltedCh() <-chan struct{} {
	return b.haltCh
}

// InstallHalt makes a fault stop this board: the faulting goroutine ends and
// neither the loop nor the ISR runs again. It replaces the core halt hook.
func (b *Board) InstallHalt() {
	core.ResetFaults()
	core.SetHaltFunc(func() {
		b.halted.Store(true)
		b.once.Do(func() { close(b.haltCh) })
		runtime.Goexit()
	})
}

// RunLoop polls until stop is closed or the board halts. It runs behind the
// fault trap, so a fault inside a poll ends this goroutine.
func (b *Board) RunLoop(stop <-chan struct{}) {
	core.Trap(func() {
		for !b.halted.Load() {
			select {
			case <-stop:
				return
			default:
			}
			b.Step()
		}
	})
}

// ServeInterrupts runs the ISR for each value received on edges until the
// channel closes or the board halts. It is the interrupt context.
func (b *Board) ServeInterrupts(edges <-chan struct{}) {
	for range edges {
		if b.halted.Load() {
			return
		}
		b.Edge()
	}
}
