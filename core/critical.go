package core

// CS is proof that the holder runs inside a critical section. Only Critical
// hands out a valid one; a zero CS is rejected by Mutex.Borrow.
type CS struct {
	live bool
}

// Critical runs fn with maskable interrupts disabled and restores the
// previous interrupt state when fn returns or panics. A panic keeps
// unwinding after the restore so it can reach the fault handler.
//
// Keep fn to a few memory operations: while it runs, the edge interrupt it
// protects against cannot be serviced. The ISR takes Critical exactly once per
// invocation and must not call it again from inside fn.
func Critical(fn func(cs CS)) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn(CS{live: true})
}

// Mutex owns a value that is shared between interrupt and thread context.
// The value is reachable only through Borrow, which requires a CS.
type Mutex[T any] struct {
	v T
}

// NewMutex wraps v.
func NewMutex[T any](v T) Mutex[T] {
	return Mutex[T]{v: v}
}

// Borrow returns the protected value for the duration of the critical
// section that produced cs. The pointer must not be kept after fn returns.
func (m *Mutex[T]) Borrow(cs CS) *T {
	if !cs.live {
		panic("core: borrow outside critical section")
	}
	return &m.v
}
