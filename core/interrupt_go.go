//go:build !tinygo

package core

import (
	"sync"
	"sync/atomic"
)

// State is the saved interrupt state. Host builds have a single global mask,
// so there is nothing to save.
type State uintptr

var (
	// maskMu stands in for the CPU's interrupt mask on regular Go. The
	// simulated interrupt context and the main loop run on separate
	// goroutines and both take it through Critical.
	maskMu sync.Mutex
	masked atomic.Bool
)

// disableInterrupts blocks until the simulated mask is free, then takes it.
// It is not reentrant: nested critical sections deadlock on the host.
func disableInterrupts() State {
	maskMu.Lock()
	masked.Store(true)
	return 0
}

// restoreInterrupts releases the simulated mask.
func restoreInterrupts(state State) {
	masked.Store(false)
	maskMu.Unlock()
}

// Masked reports whether a critical section currently holds the simulated
// interrupt mask.
func Masked() bool {
	return masked.Load()
}
