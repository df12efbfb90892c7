//go:build tinygo && cortexm

package core

import (
	"device/arm"
	"runtime/interrupt"
)

// halt masks interrupts and sleeps the core until reset.
func halt() {
	interrupt.Disable()
	for {
		arm.Asm("wfi")
	}
}
