package core

// cells is everything shared between the ISR and the main loop. Any field
// added here must be read and written through the same Critical call as the
// others so composite reads stay consistent.
type cells struct {
	button  ButtonHandle
	presses uint32
	mode    SystemMode
}

// Store owns the button handle, the press counter and the system mode for the
// life of the program. All access goes through a critical section.
type Store struct {
	shared Mutex[cells]
}

// Snapshot is a consistent view of the counter and the mode.
type Snapshot struct {
	Count uint32
	Mode  SystemMode
}

var defaultStore = NewStore()

// DefaultStore returns the store shared by a target's ISR and main loop.
func DefaultStore() *Store {
	return defaultStore
}

// NewStore returns an empty store: no button, zero presses, InitialMode.
func NewStore() *Store {
	return &Store{shared: NewMutex(cells{mode: InitialMode})}
}

// InstallButton moves h into the store. It succeeds once; later calls
// return ErrButtonInstalled and keep the original handle.
func (s *Store) InstallButton(h ButtonHandle) error {
	if h == nil {
		return ErrNilButton
	}
	var err error
	Critical(func(cs CS) {
		c := s.shared.Borrow(cs)
		if c.button != nil {
			err = ErrButtonInstalled
			return
		}
		c.button = h
	})
	return err
}

// HasButton reports whether a button has been installed.
func (s *Store) HasButton() bool {
	var ok bool
	Critical(func(cs CS) {
		ok = s.shared.Borrow(cs).button != nil
	})
	return ok
}

// RecordPress adds one press, wrapping at 2^32. It runs inside the caller's
// critical section, which in practice is the ISR's.
func (s *Store) RecordPress(cs CS) uint32 {
	c := s.shared.Borrow(cs)
	c.presses++
	return c.presses
}

// PressCount returns the number of presses recorded so far, modulo 2^32.
func (s *Store) PressCount() uint32 {
	var n uint32
	Critical(func(cs CS) {
		n = s.shared.Borrow(cs).presses
	})
	return n
}

// Mode returns the current system mode.
func (s *Store) Mode() SystemMode {
	var m SystemMode
	Critical(func(cs CS) {
		m = s.shared.Borrow(cs).mode
	})
	return m
}

// SetMode overwrites the system mode.
func (s *Store) SetMode(m SystemMode) error {
	if !m.Valid() {
		return ErrInvalidMode
	}
	Critical(func(cs CS) {
		s.shared.Borrow(cs).mode = m
	})
	return nil
}

// ApplySignal feeds sig to the mode state machine and stores the result.
// The read and the write happen in one critical section.
func (s *Store) ApplySignal(sig Signal) (from, to SystemMode) {
	Critical(func(cs CS) {
		c := s.shared.Borrow(cs)
		from = c.mode
		c.mode = Transition(from, sig)
		to = c.mode
	})
	return from, to
}

// Snapshot reads the counter and the mode together.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	Critical(func(cs CS) {
		c := s.shared.Borrow(cs)
		snap = Snapshot{Count: c.presses, Mode: c.mode}
	})
	return snap
}
