package core

// ButtonHandle is exclusive ownership of one digital input line configured
// as a falling-edge interrupt source. Bootstrap creates it and moves it into
// a Store exactly once; after that only the ISR touches it, from inside a
// critical section.
type ButtonHandle interface {
	// CheckInterrupt reports whether the line has a pending edge and
	// acknowledges it at the peripheral.
	CheckInterrupt() bool

	// ClearInterruptPending clears the pending flag at the hardware level.
	// If the flag does not clear, the interrupt fires again right away.
	ClearInterruptPending()
}
