//go:build stm32l4x6

package main

import (
	"device/stm32"
	"runtime/volatile"
)

// extiButton owns one EXTI line. TinyGo's EXTI dispatcher clears the line's
// PR1 bit before it calls the pin callback, so PR1 alone cannot tell the ISR
// an edge arrived. The handle latches its own pending bit on entry to the
// callback, as the RP2040 handle does, and also reports an edge that
// re-latched PR1 since the dispatcher ran.
type extiButton struct {
	mask    uint32
	pending volatile.Register8
}

func newEXTIButton(line uint8) *extiButton {
	return &extiButton{mask: 1 << line}
}

func (b *extiButton) latch() {
	b.pending.Set(1)
}

// CheckInterrupt implements core.ButtonHandle.
func (b *extiButton) CheckInterrupt() bool {
	return b.pending.Get() != 0 || stm32.EXTI.PR1.HasBits(b.mask)
}

// ClearInterruptPending implements core.ButtonHandle. PR1 is
// write-one-to-clear.
func (b *extiButton) ClearInterruptPending() {
	b.pending.Set(0)
	stm32.EXTI.PR1.Set(b.mask)
}
