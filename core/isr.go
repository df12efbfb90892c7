package core

// HandleButtonEdge is the body of the button's falling-edge interrupt.
// It takes one critical section, acknowledges and clears the edge if a button
// is installed, and records the press. An edge that arrives before bootstrap
// installs the button is still counted; the missing handle is not an error.
//
// It has no loops and no fallible steps so it always finishes quickly.
func (s *Store) HandleButtonEdge() {
	Critical(func(cs CS) {
		c := s.shared.Borrow(cs)
		if c.button != nil && c.button.CheckInterrupt() {
			c.button.ClearInterruptPending()
		}
		n := s.RecordPress(cs)
		recordEdge(n)
	})
}
