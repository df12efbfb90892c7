//go:build tinygo && !cortexm

package core

import "runtime/interrupt"

// halt masks interrupts and spins until reset.
func halt() {
	interrupt.Disable()
	for {
	}
}
