//go:build rp2040

package main

import "runtime/volatile"

// latchedButton is the RP2040 button handle. TinyGo's GPIO interrupt
// dispatcher acknowledges the IO bank status before calling back, so the
// handle keeps its own pending bit, set on entry to the callback.
type latchedButton struct {
	pending volatile.Register8
}

func (b *latchedButton) latch() {
	b.pending.Set(1)
}

// CheckInterrupt implements core.ButtonHandle.
func (b *latchedButton) CheckInterrupt() bool {
	return b.pending.Get() != 0
}

// ClearInterruptPending implements core.ButtonHandle.
func (b *latchedButton) ClearInterruptPending() {
	b.pending.Set(0)
}
