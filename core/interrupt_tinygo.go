//go:build tinygo

package core

import "runtime/interrupt"

// State is the interrupt-enable state saved on entry to a critical section.
type State = interrupt.State

// disableInterrupts masks all maskable interrupts and returns the state to
// restore. Calls nest: an inner restore leaves interrupts masked when the
// outer section masked them first.
func disableInterrupts() State {
	return interrupt.Disable()
}

// restoreInterrupts puts back the state saved by disableInterrupts.
func restoreInterrupts(state State) {
	interrupt.Restore(state)
}
